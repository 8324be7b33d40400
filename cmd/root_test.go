package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmarsters/satellite-imagery-aesthetics/internal/config"
)

func resetFlags(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		cfgPath, transport, logLevel, dataPath = "", "", "", ""
		port = 0
	})
}

func TestLoadConfigFlagOverrides(t *testing.T) {
	resetFlags(t)

	cfgPath = filepath.Join(t.TempDir(), "cfg.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("transport: stdio\nport: 1234\n"), 0644))

	transport = "sse"
	port = 4321
	logLevel = "debug"

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, config.TransportSSE, cfg.Transport)
	assert.Equal(t, 4321, cfg.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadConfigRejectsBadTransportFlag(t *testing.T) {
	resetFlags(t)

	cfgPath = filepath.Join(t.TempDir(), "absent.yaml")
	transport = "telepathy"

	_, err := loadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown transport")
}

func TestValidateEmbeddedDataset(t *testing.T) {
	require.NoError(t, validateCmd.RunE(validateCmd, nil))
}

func TestValidateRejectsBrokenDataset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("imagery_profiles: {}\n"), 0644))

	err := validateCmd.RunE(validateCmd, []string{path})
	require.Error(t, err)
}
