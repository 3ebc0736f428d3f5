// Package tracer is the tracing seam for lookups. Code depends on Tracer and Span only;
// OTelTracer adapts OpenTelemetry for production and NoopTracer serves tests.
package tracer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Span represents an active trace span.
type Span interface {
	// End completes the span. A non-nil err marks it failed. Call exactly once.
	End(err error)

	SetAttributes(attrs ...Attribute)

	AddEvent(name string, attrs ...Attribute)
}

// Tracer creates spans. Implementations must be safe for concurrent use.
type Tracer interface {
	// Start creates a span; the returned context carries it to child operations.
	//
	//   ctx, span := tracer.Start(ctx, tracer.SpanDispatch,
	//       tracer.String(tracer.AttrProvider, "mock"),
	//   )
	//   defer span.End(nil)
	Start(ctx context.Context, name string, attrs ...Attribute) (context.Context, Span)
}

// Attribute represents a key-value pair attached to spans.
type Attribute struct {
	Key   string
	Value any
}

func String(key, value string) Attribute {
	return Attribute{Key: key, Value: value}
}

func Bool(key string, value bool) Attribute {
	return Attribute{Key: key, Value: value}
}

func Int64(key string, value int64) Attribute {
	return Attribute{Key: key, Value: value}
}

// Duration creates a duration attribute in milliseconds.
func Duration(key string, value time.Duration) Attribute {
	return Attribute{Key: key, Value: value.Milliseconds()}
}

// HashIdentifier returns a short SHA-256 prefix of an identity value so traces can be
// correlated without carrying the NIN or phone number.
func HashIdentifier(v string) string {
	if v == "" {
		return ""
	}
	hash := sha256.Sum256([]byte(v))
	return hex.EncodeToString(hash[:8])
}

// Span names.
const (
	SpanDispatch = "lookup.dispatch"
)

// Attribute keys.
const (
	AttrProvider      = "lookup.provider"
	AttrMethod        = "lookup.method"
	AttrIdentifier    = "lookup.identifier_hash"
	AttrOK            = "lookup.ok"
	AttrStatus        = "lookup.status"
	AttrErrorCategory = "lookup.error_category"
)

// Event names.
const (
	EventProviderAnswered = "provider.answered"
)
