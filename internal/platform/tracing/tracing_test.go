package tracing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoopTracer(t *testing.T) {
	tracer := NewNoop()
	ctx, span := tracer.Start(context.Background(), SpanRequest, String(AttrMethod, "GET"))
	require.NotNil(t, span)
	assert.Equal(t, context.Background(), ctx)

	span.SetAttributes(Int(AttrStatus, 200))
	span.AddEvent("retry")
	span.End(nil)
}

// Without a configured SDK the global provider is a no-op; the adapter
// must still produce working spans.
func TestOTelTracerWithoutSDK(t *testing.T) {
	tracer := NewOTel()
	ctx, span := tracer.Start(context.Background(), SpanHealthCheck,
		String(AttrEndpoint, "/system/health"),
		Bool("cached", false),
		Duration("elapsed", 20*time.Millisecond),
	)
	require.NotNil(t, ctx)
	require.NotNil(t, span)

	span.SetAttributes(Int(AttrStatus, 503))
	span.End(errors.New("backend unreachable"))
}

func TestAttributeConstructors(t *testing.T) {
	assert.Equal(t, Attribute{Key: "k", Value: "v"}, String("k", "v"))
	assert.Equal(t, Attribute{Key: "k", Value: true}, Bool("k", true))
	assert.Equal(t, Attribute{Key: "k", Value: 3}, Int("k", 3))
	assert.Equal(t, Attribute{Key: "k", Value: int64(1500)}, Duration("k", 1500*time.Millisecond))
}
