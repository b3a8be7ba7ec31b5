package app

import (
	"os"
	"testing"

	"github.com/nucleron/yaplc/internal/testutil"
	"github.com/stretchr/testify/require"
)

// SetupAppTest creates a new app instance with debug logging captured in a
// buffer. Set YAPLC_TEST_LOGS=true to dump the logs after the test.
func SetupAppTest(t *testing.T, cfg Config) (*App, *testutil.SafeBuffer) {
	t.Helper()

	cfg.LogLevel = "debug"
	validated, err := NewConfig(cfg)
	require.NoError(t, err)

	logBuffer := &testutil.SafeBuffer{}
	testApp := NewApp(logBuffer, validated)

	t.Cleanup(func() {
		if os.Getenv("YAPLC_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
		}
	})

	return testApp, logBuffer
}
