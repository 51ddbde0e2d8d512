package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
}

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	fs.Bool("debug", false, "")
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load(newFlags(t, "-u", "my-script", "-f", "file.js"))
	require.NoError(t, err)

	assert.Equal(t, "my-script", cfg.URI)
	assert.Equal(t, "file.js", cfg.File)
	assert.Equal(t, "http://localhost:4000", cfg.Server)
	assert.True(t, cfg.Watch)
	assert.Equal(t, 100*time.Millisecond, cfg.SettleDelay)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Empty(t, cfg.StatusAddr)
	assert.NoError(t, cfg.Validate())

	assert.Equal(t, "http://localhost:4000/api/scripts/my-script", cfg.Target().URL())
}

func TestLoadFlagsOverride(t *testing.T) {
	isolate(t)

	cfg, err := Load(newFlags(t,
		"--uri", "a", "--file", "b.js",
		"--server", "https://example.com",
		"--watch=false",
		"--settle-delay", "250ms",
		"--status-addr", ":4100",
		"--debug",
	))
	require.NoError(t, err)

	assert.Equal(t, "https://example.com", cfg.Server)
	assert.False(t, cfg.Watch)
	assert.Equal(t, 250*time.Millisecond, cfg.SettleDelay)
	assert.Equal(t, ":4100", cfg.StatusAddr)
	assert.True(t, cfg.Debug)
}

func TestLoadEnvAndFile(t *testing.T) {
	isolate(t)

	require.NoError(t, os.WriteFile("config.yaml", []byte("server: http://files:4000\nuri: from-file\ntimeout: 5s\n"), 0644))
	t.Setenv("DEPLOYER_URI", "from-env")

	cfg, err := Load(newFlags(t, "-f", "x.js"))
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.URI)
	assert.Equal(t, "http://files:4000", cfg.Server)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
}

func TestLoadExplicitConfigMissing(t *testing.T) {
	isolate(t)

	_, err := Load(newFlags(t, "--config", filepath.Join(t.TempDir(), "nope.yaml")))
	assert.Error(t, err)
}

func TestLoadMalformedConfig(t *testing.T) {
	isolate(t)

	require.NoError(t, os.WriteFile("config.yaml", []byte("server: [unterminated\n"), 0644))

	_, err := Load(newFlags(t))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default
	err := cfg.Validate()
	assert.ErrorContains(t, err, "uri is required")
	assert.ErrorContains(t, err, "file is required")

	cfg.URI, cfg.File = "a", "b"
	assert.NoError(t, cfg.Validate())

	cfg.SettleDelay = 0
	assert.ErrorContains(t, cfg.Validate(), "settle delay")
}
