package prediction

import (
	"bytes"
	"encoding/json"
	"fmt"

	ierrors "github.com/Meesho/BharatMLStack/prediction-gateway/internal/errors"
	"github.com/Meesho/BharatMLStack/prediction-gateway/pkg/api/seldon"
	"google.golang.org/protobuf/encoding/protojson"
)

// Translator converts between the RPC messages and the backend's JSON
// documents using the proto3 JSON mapping. Custom payloads must name a type
// known to Types.
type Translator struct {
	Types Resolver
}

func NewTranslator(types Resolver) *Translator {
	if types == nil {
		types = GlobalTypes
	}
	return &Translator{Types: types}
}

func (t *Translator) RequestToJSON(req *seldon.ClassificationRequest) (JSONNode, error) {
	if req == nil {
		return nil, parsingError("nil request")
	}
	raw, err := protojson.MarshalOptions{Resolver: t.Types}.Marshal(req)
	if err != nil {
		return nil, parsingError("encode request: %v", err)
	}
	return DecodeJSON(raw)
}

// ReplyFromJSON accepts both lowerCamel and proto field names. Unknown
// fields and unknown "@type" values are errors.
func (t *Translator) ReplyFromJSON(node JSONNode) (*seldon.ClassificationReply, error) {
	raw, err := objectBytes(node)
	if err != nil {
		return nil, err
	}
	reply := &seldon.ClassificationReply{}
	if err := (protojson.UnmarshalOptions{Resolver: t.Types}).Unmarshal(raw, reply); err != nil {
		return nil, parsingError("decode reply: %v", err)
	}
	return reply, nil
}

func (t *Translator) ResultFromJSON(node JSONNode) (*PredictionResult, error) {
	raw, err := objectBytes(node)
	if err != nil {
		return nil, err
	}
	result := &PredictionResult{}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(result); err != nil {
		return nil, parsingError("decode result: %v", err)
	}
	if result.Predictions == nil {
		result.Predictions = []Prediction{}
	}
	return result, nil
}

// DecodeJSON parses raw into a JSONNode, keeping numbers as json.Number.
func DecodeJSON(raw []byte) (JSONNode, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var node JSONNode
	if err := dec.Decode(&node); err != nil {
		return nil, parsingError("invalid JSON: %v", err)
	}
	if dec.More() {
		return nil, parsingError("trailing data after JSON value")
	}
	return node, nil
}

func objectBytes(node JSONNode) ([]byte, error) {
	if _, ok := node.(map[string]interface{}); !ok {
		return nil, parsingError("expected a JSON object, got %T", node)
	}
	raw, err := json.Marshal(node)
	if err != nil {
		return nil, parsingError("encode node: %v", err)
	}
	return raw, nil
}

func parsingError(format string, args ...interface{}) error {
	return &ierrors.ParsingError{ErrorMsg: fmt.Sprintf(format, args...)}
}
