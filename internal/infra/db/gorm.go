package db

import (
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Connect opens the credential database and returns *gorm.DB.
func Connect(driver string, dsn string) (*gorm.DB, error) {
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}

	switch driver {
	case DriverSQLite:
		if dsn == "" {
			p, err := DefaultSQLitePath()
			if err != nil {
				return nil, err
			}
			dsn = p
		}
		if dsn != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(dsn), 0o700); err != nil {
				return nil, fmt.Errorf("create credential dir: %w", err)
			}
		}
		return gorm.Open(sqlite.Open(dsn), cfg)

	case DriverPostgres:
		// DATABASE_URL wins when no DSN is configured
		if dsn == "" {
			dsn = os.Getenv("DATABASE_URL")
		}
		if dsn == "" {
			dsn = fmt.Sprintf(
				"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
				getenv("POSTGRES_HOST", "localhost"),
				getenv("POSTGRES_PORT", "5432"),
				getenv("POSTGRES_USER", "postgres"),
				getenv("POSTGRES_PASSWORD", "postgres"),
				getenv("POSTGRES_DB", "storefront"),
				getenv("POSTGRES_SSLMODE", "disable"),
			)
		}
		return gorm.Open(postgres.Open(dsn), cfg)

	default:
		return nil, fmt.Errorf("unsupported credential driver %q", driver)
	}
}

// DefaultSQLitePath is ~/.config/storefront/credentials.db (per OS config dir).
func DefaultSQLitePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "storefront", "credentials.db"), nil
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}
