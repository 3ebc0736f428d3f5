package tracer_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"ninlookup/internal/lookup/tracer"
)

func TestNoopTracer(t *testing.T) {
	ctx := context.Background()
	newCtx, span := tracer.NewNoop().Start(ctx, "test.span", tracer.String("key", "value"))

	assert.Equal(t, ctx, newCtx)
	require.NotNil(t, span)
	span.SetAttributes(tracer.Bool("flag", true))
	span.AddEvent("test.event", tracer.Int64("count", 42))
	span.End(errors.New("ignored"))
}

func TestOTelTracerRecordsSpans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	tr := tracer.NewOTel(tracer.WithTracerProvider(tp))

	_, span := tr.Start(context.Background(), tracer.SpanDispatch, tracer.String(tracer.AttrProvider, "mock"))
	span.SetAttributes(tracer.Bool(tracer.AttrOK, false), tracer.Int64("n", 3))
	span.AddEvent(tracer.EventProviderAnswered)
	span.End(errors.New("upstream said no"))

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	got := ended[0]
	assert.Equal(t, tracer.SpanDispatch, got.Name())
	assert.Contains(t, got.Attributes(), attribute.String(tracer.AttrProvider, "mock"))
	assert.Contains(t, got.Attributes(), attribute.Bool(tracer.AttrOK, false))
	assert.Equal(t, codes.Error, got.Status().Code)
	assert.Equal(t, "upstream said no", got.Status().Description)
	require.NotEmpty(t, got.Events())
}

func TestHashIdentifier(t *testing.T) {
	assert.Empty(t, tracer.HashIdentifier(""))
	h := tracer.HashIdentifier("12345678901")
	assert.Len(t, h, 16)
	assert.Equal(t, h, tracer.HashIdentifier("12345678901"))
	assert.NotEqual(t, h, tracer.HashIdentifier("12345678902"))
	assert.NotContains(t, h, "12345678901")
}
