// Package sqldb implements database.DB on top of database/sql.
//
// The engine-specific parts (driver name, catalog query, type names, error
// codes) come from a Dialect supplied by the mysql, sqlite and pq packages.
package sqldb

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/koustreak/tablegen/internal/database"
	"github.com/koustreak/tablegen/internal/errs"
	"github.com/koustreak/tablegen/internal/schema"
)

// Driver is a database.DB backed by a *sql.DB pool.
// It is safe for concurrent use by multiple goroutines.
type Driver struct {
	db           *sql.DB
	dialect      *Dialect
	queryTimeout func(context.Context) (context.Context, context.CancelFunc)
}

// Open opens a pool for dialect using cfg and pings it before returning.
func Open(ctx context.Context, dialect *Dialect, cfg *database.Config) (*Driver, error) {
	db, err := sql.Open(dialect.DriverName, cfg.DSN)
	if err != nil {
		return nil, errs.Wrap(errs.ErrKindInvalidInput, "invalid DSN", err)
	}
	configurePool(db, cfg)

	d := NewFromDB(db, dialect, cfg.QueryTimeout)

	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = defaultConnectTimeout
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := d.Ping(pingCtx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return d, nil
}

// NewFromDB wraps an already-open pool.
func NewFromDB(db *sql.DB, dialect *Dialect, queryTimeout time.Duration) *Driver {
	return &Driver{db: db, dialect: dialect, queryTimeout: database.QueryDeadline(queryTimeout)}
}

// --- database.DB implementation ---

func (d *Driver) Ping(ctx context.Context) error {
	if err := d.db.PingContext(ctx); err != nil {
		return d.dialect.mapError(err, "ping failed")
	}
	return nil
}

func (d *Driver) Close() {
	_ = d.db.Close()
}

func (d *Driver) ListTables(ctx context.Context) ([]string, error) {
	rows, err := d.db.QueryContext(ctx, d.dialect.ListTablesQuery)
	if err != nil {
		return nil, d.dialect.mapError(err, "failed to list tables")
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, d.dialect.mapError(err, "failed to scan table name")
		}
		tables = append(tables, name)
	}
	if err := rows.Err(); err != nil {
		return nil, d.dialect.mapError(err, "error iterating tables")
	}
	return tables, nil
}

func (d *Driver) Acquire(ctx context.Context) (database.Conn, error) {
	c, err := d.db.Conn(ctx)
	if err != nil {
		return nil, d.dialect.mapError(err, "failed to acquire connection")
	}
	return &conn{conn: c, driver: d}, nil
}

// conn is a dedicated *sql.Conn owned by one worker.
type conn struct {
	conn   *sql.Conn
	driver *Driver
}

func (c *conn) Describe(ctx context.Context, table string) ([]schema.Column, error) {
	dialect := c.driver.dialect

	q, err := database.DescribeQuery(table, dialect.Quoting)
	if err != nil {
		return nil, err
	}

	ctx, cancel := c.driver.queryTimeout(ctx)
	defer cancel()

	rows, err := c.conn.QueryContext(ctx, q)
	if err != nil {
		return nil, dialect.mapError(err, fmt.Sprintf("metadata query on %s failed", table))
	}
	defer rows.Close()

	types, err := rows.ColumnTypes()
	if err != nil {
		return nil, dialect.mapError(err, "failed to read column types")
	}

	columns := make([]schema.Column, 0, len(types))
	for _, ct := range types {
		columns = append(columns, describeColumn(dialect, ct, table))
	}

	for rows.Next() {
		// WHERE 1>2 never yields rows.
	}
	if err := rows.Err(); err != nil {
		return nil, dialect.mapError(err, fmt.Sprintf("metadata query on %s failed", table))
	}
	return columns, nil
}

func (c *conn) Release() {
	_ = c.conn.Close()
}

// describeColumn builds a descriptor from database/sql column type data.
// Parameters spelled in the declared type name win; otherwise precision and
// scale come from what the driver reports.
func describeColumn(dialect *Dialect, ct *sql.ColumnType, table string) schema.Column {
	typeName := ct.DatabaseTypeName()
	info := ParseTypeName(typeName)

	col := schema.Column{
		Name:     ct.Name(),
		Label:    ct.Name(),
		TypeCode: dialect.resolve(info),
		TypeName: typeName,
		Table:    table,
	}
	if st := ct.ScanType(); st != nil {
		col.SourceType = st.String()
	}

	length, hasLength := ct.Length()
	hasLength = hasLength && length > 0 && length <= maxLength

	switch precision, scale, ok := ct.DecimalSize(); {
	case len(info.Params) > 0:
		col.Precision = info.Params[0]
		if len(info.Params) > 1 {
			col.Scale = info.Params[1]
		}
	case ok && precision > 0:
		col.Precision, col.Scale = int(precision), int(scale)
	case hasLength:
		col.Precision = int(length)
	}

	col.DisplaySize = col.Precision
	if hasLength {
		col.DisplaySize = int(length)
	}
	return col
}

// maxLength caps reported lengths; TEXT and BLOB columns report the
// maximum of their storage class.
const maxLength = 1<<31 - 1
