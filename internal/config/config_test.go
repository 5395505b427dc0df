package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvAPIURL, EnvStore, EnvRedisURL, EnvLogLevel, EnvTimeout} {
		t.Setenv(k, "")
	}
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	clearEnv(t)

	c, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}

func TestLoadFromYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `api_url: https://rag.example.com/api
timeout: 3s
log_level: debug
store:
  backend: file
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://rag.example.com/api", c.APIURL)
	assert.Equal(t, 3*time.Second, c.Timeout)
	assert.Equal(t, "debug", c.LogLevel)
	assert.Equal(t, "file", c.Store.Backend)
}

func TestEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api_url: http://file\n"), 0o600))

	t.Setenv(EnvAPIURL, "http://env")
	t.Setenv(EnvStore, "redis")
	t.Setenv(EnvRedisURL, "redis://localhost:6379/0")
	t.Setenv(EnvTimeout, "250ms")

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://env", c.APIURL)
	assert.Equal(t, "redis", c.Store.Backend)
	assert.Equal(t, "redis://localhost:6379/0", c.Store.RedisURL)
	assert.Equal(t, 250*time.Millisecond, c.Timeout)
}

func TestLoadRejectsInvalidSettings(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	unknown := filepath.Join(dir, "unknown.yaml")
	require.NoError(t, os.WriteFile(unknown, []byte("store:\n  backend: floppy\n"), 0o600))
	_, err := Load(unknown)
	assert.ErrorContains(t, err, "unknown store backend")

	redis := filepath.Join(dir, "redis.yaml")
	require.NoError(t, os.WriteFile(redis, []byte("store:\n  backend: redis\n"), 0o600))
	_, err = Load(redis)
	assert.ErrorContains(t, err, "redis_url")

	t.Setenv(EnvTimeout, "soon")
	_, err = Load(filepath.Join(dir, "absent.yaml"))
	assert.Error(t, err)
}

func TestSetAndSave(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")

	c := Default()
	require.NoError(t, c.Set("api_url", "http://10.0.0.5:8080/api"))
	require.NoError(t, c.Set("store.backend", "file"))
	require.NoError(t, c.Set("timeout", "30s"))
	assert.Error(t, c.Set("colour", "blue"))
	assert.Error(t, c.Set("timeout", "forever"))
	require.NoError(t, Save(path, c))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, c, loaded)
}

func TestLoadFileIgnoresEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api_url: http://file\n"), 0o600))
	t.Setenv(EnvAPIURL, "http://env")

	c, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "http://file", c.APIURL)
}

func TestSaveCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom", "dir", "ragflow.yaml")
	require.NoError(t, Save(path, Default()))
	assert.FileExists(t, path)
}
