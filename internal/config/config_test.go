package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clientEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"STOREFRONT_API_URL", "GO_ENV", "LOG_LEVEL", "REQUEST_TIMEOUT_SECONDS",
		"CREDENTIAL_STORE", "CREDENTIAL_DSN", "STOREFRONT_PROFILE", "TRACE_EXPORTER", "BREAKER_MAX_FAILURES",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clientEnv(t)
	t.Setenv("STOREFRONT_API_URL", "http://localhost:8080/")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", cfg.APIURL)
	assert.Equal(t, "dev", cfg.GoEnv)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "sqlite", cfg.CredentialStore)
	assert.Equal(t, "default", cfg.Profile)
	assert.Equal(t, uint32(5), cfg.BreakerMaxFailures)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "missing url", env: map[string]string{}},
		{name: "relative url", env: map[string]string{"STOREFRONT_API_URL": "localhost"}},
		{name: "bad env", env: map[string]string{"STOREFRONT_API_URL": "http://x", "GO_ENV": "staging"}},
		{name: "bad timeout", env: map[string]string{"STOREFRONT_API_URL": "http://x", "REQUEST_TIMEOUT_SECONDS": "ten"}},
		{name: "zero timeout", env: map[string]string{"STOREFRONT_API_URL": "http://x", "REQUEST_TIMEOUT_SECONDS": "0"}},
		{name: "bad store", env: map[string]string{"STOREFRONT_API_URL": "http://x", "CREDENTIAL_STORE": "etcd"}},
		{name: "redis without dsn", env: map[string]string{"STOREFRONT_API_URL": "http://x", "CREDENTIAL_STORE": "redis"}},
		{name: "bad exporter", env: map[string]string{"STOREFRONT_API_URL": "http://x", "TRACE_EXPORTER": "jaeger"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clientEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadFakeAPI(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("GO_ENV", "dev")
	t.Setenv("FAKEAPI_SEED", "false")

	cfg, err := LoadFakeAPI()

	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Port)
	assert.NotEmpty(t, cfg.JWTSecret)
	assert.False(t, cfg.Seed)

	t.Setenv("GO_ENV", "prod")
	_, err = LoadFakeAPI()
	assert.Error(t, err)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("STOREFRONT_TEST_KEY=from-file\n"), 0o600))
	t.Setenv("STOREFRONT_TEST_KEY", "")
	require.NoError(t, os.Unsetenv("STOREFRONT_TEST_KEY"))

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "from-file", os.Getenv("STOREFRONT_TEST_KEY"))

	// missing file is fine
	assert.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env")))
}
