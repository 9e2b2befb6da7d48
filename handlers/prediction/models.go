package prediction

import (
	"context"

	"github.com/Meesho/BharatMLStack/prediction-gateway/handlers/options"
	"github.com/Meesho/BharatMLStack/prediction-gateway/pkg/api/seldon"
)

// JSONNode is a decoded JSON document: nil, bool, string, json.Number,
// []interface{} or map[string]interface{}.
type JSONNode = interface{}

// Backend performs one JSON round trip against a prediction service.
type Backend interface {
	Predict(ctx context.Context, tenant string, payload JSONNode, opts options.Holder) (JSONNode, error)
}

// Algorithm is an in-process predictor selected by name per tenant.
type Algorithm interface {
	Name() string
	Predict(ctx context.Context, tenant string, req *seldon.ClassificationRequest, opts options.Holder) (*seldon.ClassificationReply, error)
}

type Prediction struct {
	Prediction     float64 `json:"prediction"`
	PredictedClass string  `json:"predictedClass"`
	Confidence     float64 `json:"confidence"`
}

type ResultMeta struct {
	Puid      string `json:"puid,omitempty"`
	ModelName string `json:"modelName,omitempty"`
	Variation string `json:"variation,omitempty"`
}

// PredictionResult is the reply shape of the JSON prediction path.
type PredictionResult struct {
	Meta        ResultMeta   `json:"meta"`
	Predictions []Prediction `json:"predictions"`
	Custom      JSONNode     `json:"custom,omitempty"`
}
