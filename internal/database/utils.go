package database

import (
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/lib/pq"

	"github.com/salesflow/crm/config"
)

// GetConnectionPoolSettings returns pool settings for the environment. Explicit
// config values win over these defaults.
func GetConnectionPoolSettings(cfg *config.DatabaseConfig) (maxOpen, maxIdle int, maxLifetime time.Duration) {
	maxOpen, maxIdle, maxLifetime = 25, 25, 20*time.Minute

	// smaller pools for tests, the suite opens many databases
	if os.Getenv("ENVIRONMENT") == "test" || os.Getenv("INTEGRATION_TESTS") == "true" {
		maxOpen, maxIdle, maxLifetime = 10, 5, 2*time.Minute
	}

	if cfg == nil {
		return
	}
	if cfg.MaxOpenConns > 0 {
		maxOpen = cfg.MaxOpenConns
	}
	if cfg.MaxIdleConns > 0 {
		maxIdle = cfg.MaxIdleConns
	}
	if maxIdle > maxOpen {
		maxIdle = maxOpen
	}
	if cfg.ConnMaxLifetime > 0 {
		maxLifetime = cfg.ConnMaxLifetime
	}
	return
}

// GetSystemDSN returns the DSN for the CRM database
func GetSystemDSN(cfg *config.DatabaseConfig) string {
	return buildDSN(cfg, cfg.DBName)
}

// GetPostgresDSN returns the DSN for the maintenance database, used to create the CRM database
func GetPostgresDSN(cfg *config.DatabaseConfig) string {
	return buildDSN(cfg, "postgres")
}

func buildDSN(cfg *config.DatabaseConfig, dbName string) string {
	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Path:     "/" + dbName,
		RawQuery: "sslmode=" + url.QueryEscape(sslMode),
	}
	return u.String()
}

// Open connects to the CRM database, verifies the connection and applies pool settings.
func Open(cfg *config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", GetSystemDSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	maxOpen, maxIdle, maxLifetime := GetConnectionPoolSettings(cfg)
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxIdle)
	db.SetConnMaxLifetime(maxLifetime)
	db.SetConnMaxIdleTime(maxLifetime / 2)
	return db, nil
}

// EnsureSystemDatabaseExists creates the CRM database if it doesn't exist
func EnsureSystemDatabaseExists(dsn string, dbName string) error {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL server: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping PostgreSQL server: %w", err)
	}
	return ensureDatabase(db, dbName)
}

func ensureDatabase(db *sql.DB, dbName string) error {
	var exists bool
	err := db.QueryRow("SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)", dbName).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check if database exists: %w", err)
	}
	if exists {
		return nil
	}

	if _, err := db.Exec("CREATE DATABASE " + pq.QuoteIdentifier(dbName)); err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	return nil
}
