// Package database defines the contract between the generation pipeline and
// the database drivers.
//
// The pipeline talks only to DB and Conn. Each worker checks a Conn out of
// the pool for the table it is processing, so no connection is ever used by
// two goroutines at once.
package database

import (
	"context"

	"github.com/koustreak/tablegen/internal/schema"
)

// DB is a pool of connections to one database.
// Implementations are safe for concurrent use by multiple goroutines.
type DB interface {
	// Ping verifies the database is reachable.
	Ping(ctx context.Context) error

	// Close releases all resources held by the connection pool.
	Close()

	// ListTables returns the names of all base tables visible to the
	// connection, in catalog order.
	ListTables(ctx context.Context) ([]string, error)

	// Acquire checks a connection out of the pool. The caller owns it
	// until Release.
	Acquire(ctx context.Context) (Conn, error)
}

// Conn is a single pooled connection, owned by one goroutine at a time.
type Conn interface {
	// Describe runs a metadata-only query against table and returns its
	// column descriptors in result order. Derived fields are left empty.
	Describe(ctx context.Context, table string) ([]schema.Column, error)

	// Release returns the connection to the pool.
	Release()
}
