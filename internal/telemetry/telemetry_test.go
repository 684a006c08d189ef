package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestInitTracer_DisabledWithoutCollector(t *testing.T) {
	shutdown, err := InitTracer(context.Background(), "jobmonitor", "", zap.NewNop())
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NotPanics(t, shutdown)
}
