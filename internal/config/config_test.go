package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("AUTHSHELL_BACKEND_BASE_URL", "https://api.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com", cfg.Backend.BaseURL)
	assert.Equal(t, DefaultProvider, cfg.Backend.Provider)
	assert.Equal(t, DefaultExchangeTimeout, cfg.Backend.ExchangeTimeout)
	assert.Equal(t, DefaultRoleTimeout, cfg.Backend.RoleTimeout)
	assert.Equal(t, DefaultScheme, cfg.DeepLink.Scheme)
	assert.Equal(t, DefaultLaunchURLEnv, cfg.Bridge.LaunchURLEnv)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 8787, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadRequiresBackendBaseURL(t *testing.T) {
	chdir(t, t.TempDir())

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "backend.base_url")
}

func TestLoadTrimsTrailingSlash(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("AUTHSHELL_BACKEND_BASE_URL", "https://api.example.com/")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com", cfg.Backend.BaseURL)
}

func TestLoadFromConfigFile(t *testing.T) {
	dir := t.TempDir()
	yaml := `
server:
  host: 0.0.0.0
  port: 9000
backend:
  base_url: https://backend.example.com
  provider: google
deeplink:
  scheme: myapp://auth
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))
	chdir(t, dir)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "https://backend.example.com", cfg.Backend.BaseURL)
	assert.Equal(t, "google", cfg.Backend.Provider)
	assert.Equal(t, "myapp://auth", cfg.DeepLink.Scheme)
}

func TestBuildTargetDefaultsToWeb(t *testing.T) {
	assert.Equal(t, "web", BuildTarget())
	assert.False(t, IsMobileBuild())
}
