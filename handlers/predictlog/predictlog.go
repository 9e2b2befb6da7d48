// Package predictlog records every answered classification.
package predictlog

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Meesho/BharatMLStack/prediction-gateway/pkg/api/seldon"
	"github.com/Meesho/BharatMLStack/prediction-gateway/pkg/callcontext"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
)

// Logger receives one call per successful classification.
type Logger interface {
	Log(ctx context.Context, tenant string, req *seldon.ClassificationRequest, reply *seldon.ClassificationReply) error
}

// Record is the serialized form sinks write. Request and Reply hold the
// proto3 JSON rendering of the messages.
type Record struct {
	Client    string          `json:"client"`
	RequestID string          `json:"requestId,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
	Request   json.RawMessage `json:"request"`
	Reply     json.RawMessage `json:"reply"`
}

func NewRecord(ctx context.Context, tenant string, req *seldon.ClassificationRequest, reply *seldon.ClassificationReply) (*Record, error) {
	request, err := encodeMessage(req)
	if err != nil {
		return nil, err
	}
	response, err := encodeMessage(reply)
	if err != nil {
		return nil, err
	}
	r := &Record{
		Client:    tenant,
		Timestamp: time.Now().UTC(),
		Request:   request,
		Reply:     response,
	}
	if cc, ok := callcontext.FromContext(ctx); ok {
		r.RequestID = cc.RequestID
	}
	return r, nil
}

// encodeMessage renders m as proto3 JSON. Custom payloads resolve against
// the global registry, which holds every linked-in message type.
func encodeMessage(m proto.Message) (json.RawMessage, error) {
	if m == nil || !m.ProtoReflect().IsValid() {
		return json.RawMessage("null"), nil
	}
	return protojson.Marshal(m)
}

func (r *Record) Marshal() ([]byte, error) {
	return json.Marshal(r)
}

// Nop discards everything.
type Nop struct{}

func (Nop) Log(context.Context, string, *seldon.ClassificationRequest, *seldon.ClassificationReply) error {
	return nil
}
