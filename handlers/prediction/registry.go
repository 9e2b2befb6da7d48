package prediction

import (
	"fmt"

	"github.com/Meesho/BharatMLStack/prediction-gateway/pkg/api/seldon"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoregistry"
)

// Resolver looks up the message types named by "@type" in custom payloads.
type Resolver interface {
	protoregistry.MessageTypeResolver
	protoregistry.ExtensionTypeResolver
}

// GlobalTypes knows the two default Seldon payloads.
var GlobalTypes = mustTypes()

// NewTypes returns a registry with the default Seldon payloads plus msgs.
// Registering a full name twice is an error.
func NewTypes(msgs ...proto.Message) (*protoregistry.Types, error) {
	types := new(protoregistry.Types)
	defaults := []proto.Message{&seldon.DefaultCustomPredictRequest{}, &seldon.DefaultCustomPredictReply{}}
	for _, m := range append(defaults, msgs...) {
		if err := types.RegisterMessage(m.ProtoReflect().Type()); err != nil {
			return nil, fmt.Errorf("register %s: %w", m.ProtoReflect().Descriptor().FullName(), err)
		}
	}
	return types, nil
}

func mustTypes() *protoregistry.Types {
	types, err := NewTypes()
	if err != nil {
		panic(err)
	}
	return types
}
