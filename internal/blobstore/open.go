package blobstore

import (
	"context"
	"database/sql"
	"fmt"
	"io"
)

// Drivers accepted by Open.
const (
	DriverSQLite = "sqlite"
	DriverBadger = "badger"
	DriverMongo  = "mongo"
	DriverMemory = "memory"
)

// Store is a closable key-value blob store.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	io.Closer
}

// Options selects and configures a store backend.
type Options struct {
	Driver     string
	SQL        *sql.DB // used by DriverSQLite
	BadgerPath string
	MongoURI   string
	MongoDB    string
}

// Open returns the backend named by opts.Driver.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Driver {
	case "", DriverSQLite:
		if opts.SQL == nil {
			return nil, fmt.Errorf("sqlite blob store requires a database handle")
		}
		return NewSQLite(opts.SQL), nil
	case DriverBadger:
		return OpenBadger(opts.BadgerPath)
	case DriverMongo:
		return ConnectMongo(ctx, opts.MongoURI, opts.MongoDB)
	case DriverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown blob store driver %q", opts.Driver)
	}
}
