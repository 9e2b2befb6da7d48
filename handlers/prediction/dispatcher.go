package prediction

import (
	"context"
	"fmt"
	"sync"

	"github.com/Meesho/BharatMLStack/prediction-gateway/handlers/options"
	ierrors "github.com/Meesho/BharatMLStack/prediction-gateway/internal/errors"
	"github.com/Meesho/BharatMLStack/prediction-gateway/pkg/api/seldon"
	"github.com/Meesho/BharatMLStack/prediction-gateway/pkg/metrics"
	"github.com/Meesho/BharatMLStack/prediction-gateway/pkg/tracing"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Dispatcher routes a tenant's request to the backend its options select.
// Every failure leaves as ErrBackend; the cause is only logged.
type Dispatcher struct {
	external   Backend
	translator *Translator

	mu         sync.RWMutex
	algorithms map[string]Algorithm
}

func NewDispatcher(external Backend, translator *Translator, algorithms ...Algorithm) *Dispatcher {
	if translator == nil {
		translator = NewTranslator(nil)
	}
	d := &Dispatcher{
		external:   external,
		translator: translator,
		algorithms: map[string]Algorithm{},
	}
	for _, a := range algorithms {
		if err := d.Register(a); err != nil {
			log.Error().Err(err).Msg("Skipping algorithm")
		}
	}
	return d
}

// Register adds an in-process algorithm. The name "external" is reserved
// for the external backend and cannot be taken.
func (d *Dispatcher) Register(a Algorithm) error {
	if a.Name() == options.DefaultAlgorithm {
		return fmt.Errorf("algorithm name %q is reserved", a.Name())
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.algorithms[a.Name()] = a
	return nil
}

func (d *Dispatcher) Predict(ctx context.Context, tenant string, req *seldon.ClassificationRequest, opts options.Holder) (*seldon.ClassificationReply, error) {
	name := options.Algorithm(opts)
	if name != options.DefaultAlgorithm {
		algorithm, ok := d.algorithm(name)
		if !ok {
			return nil, d.fail(tenant, name, "unknown_algorithm", fmt.Errorf("no algorithm registered as %q", name))
		}
		reply, err := algorithm.Predict(ctx, tenant, req, opts)
		if err != nil {
			return nil, d.fail(tenant, name, "algorithm", err)
		}
		return reply, nil
	}

	payload, err := d.translator.RequestToJSON(req)
	if err != nil {
		return nil, d.fail(tenant, name, "translate_request", err)
	}
	node, err := d.callExternal(ctx, tenant, payload, opts)
	if err != nil {
		return nil, d.fail(tenant, name, "backend", err)
	}
	reply, err := d.translator.ReplyFromJSON(node)
	if err != nil {
		return nil, d.fail(tenant, name, "translate_reply", err)
	}
	return reply, nil
}

// PredictJSON sends an already-built JSON document to the external backend
// and decodes the answer as a PredictionResult.
func (d *Dispatcher) PredictJSON(ctx context.Context, tenant string, payload JSONNode, opts options.Holder) (*PredictionResult, error) {
	node, err := d.callExternal(ctx, tenant, payload, opts)
	if err != nil {
		return nil, d.fail(tenant, options.DefaultAlgorithm, "backend", err)
	}
	result, err := d.translator.ResultFromJSON(node)
	if err != nil {
		return nil, d.fail(tenant, options.DefaultAlgorithm, "translate_reply", err)
	}
	return result, nil
}

func (d *Dispatcher) callExternal(ctx context.Context, tenant string, payload JSONNode, opts options.Holder) (JSONNode, error) {
	if d.external == nil {
		return nil, fmt.Errorf("no external backend configured")
	}
	ctx, span := tracing.GetTracer("prediction").Start(ctx, "external.predict",
		trace.WithAttributes(attribute.String("client", tenant)))
	defer span.End()
	node, err := d.external.Predict(ctx, tenant, payload, opts)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, "external prediction failed")
	}
	return node, err
}

func (d *Dispatcher) algorithm(name string) (Algorithm, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	a, ok := d.algorithms[name]
	return a, ok
}

func (d *Dispatcher) fail(tenant, algorithm, stage string, cause error) error {
	log.Error().Err(cause).
		Str("client", tenant).
		Str("algorithm", algorithm).
		Str("stage", stage).
		Msg("Prediction failed")
	metrics.Count(metrics.DispatcherErrorCount, 1, []string{metrics.Tag("algorithm", algorithm), metrics.Tag("stage", stage)})
	return ierrors.NewBackendError("prediction failed at "+stage, cause)
}
