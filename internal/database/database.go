package database

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"communityClient/internal/config"
)

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	session_key TEXT PRIMARY KEY,
	token       TEXT NOT NULL,
	user_json   TEXT NOT NULL,
	updated_at  TIMESTAMP NOT NULL
)`

type MethodsDB interface {
	CloseDB() error
	RunMigrations() error
	HealthCheck() error
}

type DB struct {
	*sqlx.DB
}

// ConnectDB opens the local session database. sqlite3 is the default, postgres can be
// used to share sessions between hosts.
func ConnectDB(cfg *config.Config) (*DB, error) {
	switch cfg.DB.Driver {
	case "sqlite3":
		if err := os.MkdirAll(filepath.Dir(cfg.DB.DSN), 0o700); err != nil {
			return nil, fmt.Errorf("failed to create session directory: %w", err)
		}
	case "postgres":
	default:
		return nil, fmt.Errorf("unsupported session database driver %q", cfg.DB.Driver)
	}

	log.Printf("connecting to session database: driver=%s", cfg.DB.Driver)

	db, err := sqlx.Connect(cfg.DB.Driver, cfg.DB.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to session database: %w", err)
	}

	if cfg.DB.Driver == "sqlite3" {
		// sqlite serialises writers
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(5)
		db.SetMaxIdleConns(2)
		db.SetConnMaxLifetime(30 * time.Minute)
	}

	dbStruct := &DB{db}

	if err := dbStruct.RunMigrations(); err != nil {
		dbStruct.CloseDB()
		return nil, err
	}

	if err := dbStruct.HealthCheck(); err != nil {
		dbStruct.CloseDB()
		return nil, fmt.Errorf("session database health check failed: %w", err)
	}

	return dbStruct, nil
}

func (db *DB) CloseDB() error {
	if db == nil || db.DB == nil {
		return nil
	}
	return db.DB.Close()
}

func (db *DB) RunMigrations() error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to apply session schema: %w", err)
	}
	return nil
}

func (db *DB) HealthCheck() error {
	if db == nil || db.DB == nil {
		return fmt.Errorf("session database is not initialised")
	}

	return db.Ping()
}
