package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LoopTracer/looptracer-landing/internal/config"
)

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, config.ServiceName+" "+config.Version+"\n", out.String())
}

func TestLoadEnvFile(t *testing.T) {
	assert.NoError(t, loadEnvFile(""))
	assert.NoError(t, loadEnvFile(filepath.Join(t.TempDir(), "missing.env")))

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("GAS_LEADS_ENDPOINT=https://script.example/exec\n"), 0o600))
	t.Setenv("GAS_LEADS_ENDPOINT", "")
	require.NoError(t, os.Unsetenv("GAS_LEADS_ENDPOINT"))

	require.NoError(t, loadEnvFile(path))

	cfg, err := config.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "https://script.example/exec", cfg.Relay.LeadsEndpoint)
}
