package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	_, res := NormalizeAndValidate(Default())
	assert.True(t, res.OK(), res.Errors)
	assert.Empty(t, res.Warnings)
}

func TestDefault_NoRemoteTimeout(t *testing.T) {
	cfg := Default()
	assert.Zero(t, cfg.Remote.TimeoutSeconds)
	assert.Zero(t, cfg.RemoteTimeout())

	cfg.Remote.Temperature = 0
	_, res := NormalizeAndValidate(cfg)
	assert.True(t, res.OK(), res.Errors)
}

func TestShippedConfigMatchesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "config", "config.yml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("observer:\n  debounce_ms: 500\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 500, cfg.Observer.DebounceMS)
	assert.Equal(t, DefaultPort, cfg.App.Port)
	assert.Equal(t, 1500, cfg.Remote.DescriptionLimit)
}

func TestNormalizeAndValidate(t *testing.T) {
	cfg := Default()
	cfg.App.Port = 0
	cfg.Remote.Endpoint = "  ftp://example.com  "
	cfg.Remote.MaxTokens = 50
	cfg.Observer.DebounceMS = 0
	cfg.Scan.RequestsPerSec = 10

	out, res := NormalizeAndValidate(cfg)
	assert.False(t, res.OK())
	assert.Equal(t, "ftp://example.com", out.Remote.Endpoint)
	assert.Contains(t, res.Errors, "app.port must be 1..65535")
	assert.Contains(t, res.Errors, "remote.endpoint must be an http(s) URL")
	assert.Contains(t, res.Errors, "observer.debounce_ms must be > 0")
	assert.Len(t, res.Warnings, 2)

	assert.Error(t, Validate(cfg))
	assert.NoError(t, Validate(Default()))
}

func TestEnsureUserConfig(t *testing.T) {
	dir := t.TempDir()

	// no shipped default: built-in defaults are written
	path, err := EnsureUserConfig(dir, filepath.Join(dir, "missing.yml"))
	require.NoError(t, err)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	// existing file is left alone
	require.NoError(t, os.WriteFile(path, []byte("app:\n  port: 9999\n"), 0o644))
	path2, err := EnsureUserConfig(dir, "unused")
	require.NoError(t, err)
	assert.Equal(t, path, path2)
	cfg, err = Load(path2)
	require.NoError(t, err)
	assert.Equal(t, 9999, cfg.App.Port)
}

func TestSaveAtomic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")

	cfg := Default()
	require.NoError(t, SaveAtomic(path, cfg))

	cfg.Render.MaxFlags = 2
	require.NoError(t, SaveAtomic(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Render.MaxFlags)

	bak, err := Load(path + ".bak")
	require.NoError(t, err)
	assert.Equal(t, 5, bak.Render.MaxFlags)

	bad := Default()
	bad.Scan.Workers = 0
	assert.Error(t, SaveAtomic(path, bad))
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvPort, "40000")
	t.Setenv(EnvModel, "llama-3.3-70b-versatile")
	t.Setenv(EnvEndpoint, "")

	cfg := Default()
	ApplyEnv(&cfg)
	assert.Equal(t, 40000, cfg.App.Port)
	assert.Equal(t, "llama-3.3-70b-versatile", cfg.Remote.Model)
	assert.Equal(t, Default().Remote.Endpoint, cfg.Remote.Endpoint)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("JOBFLAG_TEST_DOTENV=from-file\n"), 0o644))
	t.Setenv("JOBFLAG_TEST_DOTENV", "")
	os.Unsetenv("JOBFLAG_TEST_DOTENV")

	LoadDotEnv(dir)
	assert.Equal(t, "from-file", os.Getenv("JOBFLAG_TEST_DOTENV"))
}

func TestDataDir(t *testing.T) {
	t.Setenv(EnvDataDir, "")
	assert.Equal(t, ".", DataDir())
	t.Setenv(EnvDataDir, "/tmp/jobflag")
	assert.Equal(t, "/tmp/jobflag", DataDir())
}
