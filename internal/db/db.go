// Package db opens the SQLite database holding admin accounts and, with the
// sqlite store driver, the persisted catalog.
package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// Open opens the database at dbPath, creating its parent directory when
// needed, and applies the connection pragmas.
//
// The pool is capped at one connection: an in-memory database exists per
// connection, and catalog writes replace a single row.
func Open(dbPath string) (*sql.DB, error) {
	dbPath = strings.TrimSpace(dbPath)
	if dbPath == "" {
		return nil, fmt.Errorf("open sqlite database: empty path")
	}

	memory := isMemory(dbPath)
	if !memory {
		if dir := filepath.Dir(dbPath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create database directory: %w", err)
			}
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	db.SetMaxOpenConns(1)

	for _, pragma := range pragmas(memory) {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("set sqlite pragma %q: %w", pragma, err)
		}
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite database: %w", err)
	}

	return db, nil
}

func isMemory(dbPath string) bool {
	return dbPath == MemoryPath || strings.Contains(dbPath, "mode=memory")
}

// WAL has no effect on in-memory databases.
func pragmas(memory bool) []string {
	out := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	if !memory {
		out = append(out, "PRAGMA journal_mode = WAL", "PRAGMA synchronous = NORMAL")
	}
	return out
}
