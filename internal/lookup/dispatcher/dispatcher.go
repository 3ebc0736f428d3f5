// Package dispatcher routes lookups to the one provider configured for the deployment.
package dispatcher

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"ninlookup/internal/lookup/metrics"
	"ninlookup/internal/lookup/models"
	"ninlookup/internal/lookup/providers"
	"ninlookup/internal/lookup/tracer"
	"ninlookup/pkg/requestcontext"
)

// FallbackProvider serves lookups when the configured name is empty or unknown.
const FallbackProvider = providers.NameMock

// Dispatcher delegates to a single provider chosen at construction. There is no retry,
// no timeout of its own and no fallback between providers at call time.
type Dispatcher struct {
	provider providers.Provider
	tracer   tracer.Tracer
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

type Option func(*Dispatcher)

func WithTracer(t tracer.Tracer) Option {
	return func(d *Dispatcher) { d.tracer = t }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(d *Dispatcher) { d.metrics = m }
}

// New resolves active against the registry once. Unknown or empty names fall back to the
// mock provider, which must therefore be registered.
func New(registry *providers.Registry, active string, logger *slog.Logger, opts ...Option) (*Dispatcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	name := strings.ToLower(strings.TrimSpace(active))
	p, ok := registry.Get(name)
	if !ok {
		p, ok = registry.Get(FallbackProvider)
		if !ok {
			return nil, fmt.Errorf("provider %q not registered and fallback %q missing", name, FallbackProvider)
		}
		if name != "" {
			logger.Warn("unknown provider configured, using fallback",
				"configured", name,
				"provider", FallbackProvider,
				"registered", registry.Names(),
			)
		}
	}

	d := &Dispatcher{
		provider: p,
		tracer:   tracer.NewNoop(),
		logger:   logger,
	}
	for _, opt := range opts {
		opt(d)
	}
	logger.Info("lookup provider selected", "provider", p.Name())
	return d, nil
}

// Provider is the name of the resolved adapter; it is persisted on every record.
func (d *Dispatcher) Provider() string {
	return d.provider.Name()
}

// Lookup returns the adapter's result unmodified.
func (d *Dispatcher) Lookup(ctx context.Context, input models.Input) providers.Result {
	ctx, span := d.tracer.Start(ctx, tracer.SpanDispatch,
		tracer.String(tracer.AttrProvider, d.provider.Name()),
		tracer.String(tracer.AttrMethod, input.Method.String()),
		tracer.String(tracer.AttrIdentifier, tracer.HashIdentifier(primaryIdentifier(input))),
	)

	start := time.Now()
	res := d.provider.Lookup(ctx, input)
	elapsed := time.Since(start)

	span.AddEvent(tracer.EventProviderAnswered, tracer.Duration("elapsed_ms", elapsed))
	span.SetAttributes(tracer.Bool(tracer.AttrOK, res.OK()))

	var category string
	if res.OK() {
		span.SetAttributes(tracer.String(tracer.AttrStatus, res.Status()))
		span.End(nil)
	} else {
		category = string(providers.GetCategory(res.Err()))
		span.SetAttributes(tracer.String(tracer.AttrErrorCategory, category))
		span.End(res.Err())
		d.logger.WarnContext(ctx, "provider lookup failed",
			"provider", d.provider.Name(),
			"method", input.Method,
			"category", category,
			"error", res.Err(),
			"request_id", requestcontext.RequestID(ctx),
		)
	}

	if d.metrics != nil {
		d.metrics.ObserveLookup(d.provider.Name(), input.Method.String(), res.OK(), category, elapsed.Seconds())
	}
	return res
}

// primaryIdentifier picks the value a lookup is keyed on, for hashing into traces.
func primaryIdentifier(input models.Input) string {
	switch input.Method {
	case models.MethodPhone:
		return input.Payload.Get(models.FieldPhone)
	case models.MethodEmail:
		return input.Payload.Get(models.FieldEmail)
	case models.MethodTrackingID:
		return input.Payload.Get(models.FieldTrackingID)
	default:
		return input.Payload.Get(models.FieldNIN)
	}
}
