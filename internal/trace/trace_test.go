package trace

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartSpan_Disabled(t *testing.T) {
	require.NoError(t, Init(false, "test", nil))

	ctx, span := StartSpan(context.Background(), "noop")
	span.End()

	assert.False(t, Enabled())
	_, _, ok := GetTraceFields(ctx)
	assert.False(t, ok)
}

func TestStartSpan_Enabled(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Init(true, "test", &buf))
	t.Cleanup(func() {
		_ = Shutdown(context.Background())
		enabled = false
		tracer = nil
		tracerProvider = nil
	})

	ctx, span := StartSpan(context.Background(), "sheets.read")
	traceID, spanID, ok := GetTraceFields(ctx)
	span.End()

	assert.True(t, ok)
	assert.NotEmpty(t, traceID)
	assert.NotEmpty(t, spanID)

	require.NoError(t, Shutdown(context.Background()))
	assert.Contains(t, buf.String(), "sheets.read")
}
