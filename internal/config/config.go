package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is the client configuration.
type Config struct {
	APIURL string // remote API base, without the /api suffix

	GoEnv    string // dev/prod
	LogLevel string

	RequestTimeout time.Duration

	CredentialStore string // sqlite/postgres/redis/memory
	CredentialDSN   string // sqlite path, postgres DSN or redis addr
	Profile         string // credential key, lets several accounts share one store

	TraceExporter      string // "" or stdout
	BreakerMaxFailures uint32
}

// FakeAPIConfig is what cmd/fakeapi needs.
type FakeAPIConfig struct {
	Port      string
	JWTSecret string
	GoEnv     string
	LogLevel  string
	Seed      bool
}

// LoadDotEnv reads .env when it exists; a missing file is not an error.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// Load reads the client configuration from the environment.
func Load() (Config, error) {
	timeoutSec, err := atoiDefault("REQUEST_TIMEOUT_SECONDS", 10)
	if err != nil {
		return Config{}, err
	}
	maxFailures, err := atoiDefault("BREAKER_MAX_FAILURES", 5)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		APIURL: strings.TrimRight(os.Getenv("STOREFRONT_API_URL"), "/"),

		GoEnv:    getenv("GO_ENV", "dev"),
		LogLevel: os.Getenv("LOG_LEVEL"),

		RequestTimeout: time.Duration(timeoutSec) * time.Second,

		CredentialStore: getenv("CREDENTIAL_STORE", "sqlite"),
		CredentialDSN:   os.Getenv("CREDENTIAL_DSN"),
		Profile:         getenv("STOREFRONT_PROFILE", "default"),

		TraceExporter:      os.Getenv("TRACE_EXPORTER"),
		BreakerMaxFailures: uint32(maxFailures),
	}

	// required checks
	if cfg.APIURL == "" {
		return Config{}, fmt.Errorf("STOREFRONT_API_URL is required")
	}
	u, err := url.Parse(cfg.APIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return Config{}, fmt.Errorf("STOREFRONT_API_URL must be an absolute URL")
	}
	if cfg.GoEnv != "dev" && cfg.GoEnv != "prod" {
		return Config{}, fmt.Errorf("GO_ENV must be dev or prod")
	}
	if timeoutSec <= 0 {
		return Config{}, fmt.Errorf("REQUEST_TIMEOUT_SECONDS must be > 0")
	}
	if maxFailures <= 0 {
		return Config{}, fmt.Errorf("BREAKER_MAX_FAILURES must be > 0")
	}
	switch cfg.CredentialStore {
	case "sqlite", "postgres", "memory":
	case "redis":
		if cfg.CredentialDSN == "" {
			return Config{}, fmt.Errorf("CREDENTIAL_DSN is required for redis")
		}
	default:
		return Config{}, fmt.Errorf("CREDENTIAL_STORE must be sqlite, postgres, redis or memory")
	}
	switch cfg.TraceExporter {
	case "", "stdout":
	default:
		return Config{}, fmt.Errorf("TRACE_EXPORTER must be empty or stdout")
	}

	return cfg, nil
}

// LoadFakeAPI reads the fake API configuration.
func LoadFakeAPI() (FakeAPIConfig, error) {
	cfg := FakeAPIConfig{
		Port:      getenv("PORT", "8080"),
		JWTSecret: os.Getenv("JWT_SECRET"),
		GoEnv:     getenv("GO_ENV", "dev"),
		LogLevel:  os.Getenv("LOG_LEVEL"),
		Seed:      envBool("FAKEAPI_SEED", true),
	}

	if cfg.JWTSecret == "" {
		if cfg.GoEnv == "prod" {
			return FakeAPIConfig{}, fmt.Errorf("JWT_SECRET is required")
		}
		cfg.JWTSecret = "dev_secret_change_me"
	}
	if cfg.Port[0] != ':' {
		cfg.Port = ":" + cfg.Port
	}

	return cfg, nil
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func atoiDefault(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be number: %w", key, err)
	}
	return i, nil
}

func envBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	switch v {
	case "1", "true", "TRUE", "True":
		return true
	case "0", "false", "FALSE", "False":
		return false
	default:
		return def
	}
}
