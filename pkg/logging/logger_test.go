package logging_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jayjaychukwu/reconcilation/pkg/logging"
)

func TestDefaultLogger(t *testing.T) {
	logger := logging.Default()
	require.NotNil(t, logger)
}

func TestNewCapturesOutput(t *testing.T) {
	tl := logging.NewTestLogger(t)
	tl.Info().Str("task_id", "abc-123").Msg("reconciliation queued")

	assert.True(t, tl.Contains("reconciliation queued"))
	assert.True(t, tl.Contains("abc-123"))
	assert.Len(t, tl.Lines(), 1)
}

func TestContextRoundTrip(t *testing.T) {
	tl := logging.NewTestLogger(t)
	ctx := logging.WithLogger(context.Background(), tl.Logger)

	got := logging.FromContext(ctx)
	require.NotNil(t, got)
	got.Info().Msg("from context")
	assert.True(t, tl.Contains("from context"))
}

func TestFromContextFallsBack(t *testing.T) {
	assert.Equal(t, logging.Default(), logging.FromContext(context.Background()))
	assert.Equal(t, logging.Default(), logging.FromContext(nil)) //nolint:staticcheck // nil context fallback is the point
}

func TestWithRequestID(t *testing.T) {
	tl := logging.NewTestLogger(t)
	ctx := logging.WithLogger(context.Background(), tl.Logger)
	ctx = logging.WithRequestID(ctx, "req-42")

	assert.Equal(t, "req-42", logging.RequestID(ctx))
	logging.Ctx(ctx).Info().Msg("stamped")
	assert.True(t, tl.Contains("req-42"))
}

func TestRequestIDMissing(t *testing.T) {
	assert.Empty(t, logging.RequestID(context.Background()))
}
