package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/koustreak/tablegen/internal/database"
	"github.com/koustreak/tablegen/internal/schema"
)

// Driver is a PostgreSQL implementation of database.DB backed by pgxpool.
// It is safe for concurrent use by multiple goroutines.
type Driver struct {
	pool         *pgxpool.Pool
	queryTimeout func(context.Context) (context.Context, context.CancelFunc)
}

// New connects to PostgreSQL using the provided Config and returns a Driver.
// It calls Ping to validate the connection before returning.
func New(ctx context.Context, cfg *database.Config) (*Driver, error) {
	poolCfg, err := buildPoolConfig(cfg)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, mapError(err, "failed to create connection pool")
	}

	d := &Driver{pool: pool, queryTimeout: database.QueryDeadline(cfg.QueryTimeout)}

	if err := d.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return d, nil
}

// --- database.DB implementation ---

// Ping verifies the database is reachable by acquiring and releasing a connection.
func (d *Driver) Ping(ctx context.Context) error {
	if err := d.pool.Ping(ctx); err != nil {
		return mapError(err, "ping failed")
	}
	return nil
}

// Close drains the connection pool. Call when the application shuts down.
func (d *Driver) Close() {
	d.pool.Close()
}

// ListTables returns all base tables in the schemas on the search path, so
// that every returned name resolves unqualified.
func (d *Driver) ListTables(ctx context.Context) ([]string, error) {
	const q = `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = ANY (current_schemas(false))
		  AND table_type   = 'BASE TABLE'
		ORDER BY table_name`

	rows, err := d.pool.Query(ctx, q)
	if err != nil {
		return nil, mapError(err, "failed to list tables")
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, mapError(err, "failed to scan table name")
		}
		tables = append(tables, name)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "error iterating tables")
	}
	return tables, nil
}

// Acquire checks a connection out of the pool.
func (d *Driver) Acquire(ctx context.Context) (database.Conn, error) {
	c, err := d.pool.Acquire(ctx)
	if err != nil {
		return nil, mapError(err, "failed to acquire connection")
	}
	return &conn{conn: c, queryTimeout: d.queryTimeout}, nil
}

// conn is a pooled connection owned by one worker.
type conn struct {
	conn         *pgxpool.Conn
	queryTimeout func(context.Context) (context.Context, context.CancelFunc)
}

// Describe reads the RowDescription of a metadata-only query.
func (c *conn) Describe(ctx context.Context, table string) ([]schema.Column, error) {
	q, err := database.DescribeQuery(table, database.DialectPostgres)
	if err != nil {
		return nil, err
	}

	ctx, cancel := c.queryTimeout(ctx)
	defer cancel()

	rows, err := c.conn.Query(ctx, q)
	if err != nil {
		return nil, mapError(err, "metadata query failed")
	}
	fields := append(rows.FieldDescriptions()[:0:0], rows.FieldDescriptions()...)
	for rows.Next() {
		// WHERE 1>2 never yields rows; drain to read the command tag.
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, mapError(err, fmt.Sprintf("metadata query on %s failed", table))
	}

	typeMap := c.conn.Conn().TypeMap()
	columns := make([]schema.Column, 0, len(fields))
	for _, fd := range fields {
		typeName := ""
		if t, ok := typeMap.TypeForOID(fd.DataTypeOID); ok {
			typeName = t.Name
		}
		columns = append(columns, describeField(fd, typeName, table))
	}
	return columns, nil
}

// Release returns the connection to the pool.
func (c *conn) Release() {
	c.conn.Release()
}
