package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestEnabled(t *testing.T) {
	t.Setenv(EndpointEnv, "")
	assert.False(t, Enabled())

	t.Setenv(EndpointEnv, "localhost:4317")
	assert.True(t, Enabled())
}

func TestSetup_Disabled(t *testing.T) {
	t.Setenv(EndpointEnv, "")

	shutdown, err := Setup(context.Background(), "startmaja", "test")
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
}
