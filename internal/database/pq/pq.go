// Package pq connects to PostgreSQL through lib/pq and database/sql.
// Use it where pgx is not an option; the postgres package is the default.
package pq

import (
	"context"
	"strings"

	"github.com/koustreak/tablegen/internal/database"
	"github.com/koustreak/tablegen/internal/database/sqldb"
	"github.com/koustreak/tablegen/internal/schema"

	_ "github.com/lib/pq" // register "postgres" driver
)

const listTables = `
	SELECT table_name
	FROM information_schema.tables
	WHERE table_schema = ANY (current_schemas(false))
	  AND table_type   = 'BASE TABLE'
	ORDER BY table_name`

// Dialect describes PostgreSQL to the shared database/sql driver.
var Dialect = &sqldb.Dialect{
	Name:            "pq",
	DriverName:      "postgres",
	Quoting:         database.DialectPostgres,
	ListTablesQuery: listTables,
	TypeCodes:       typeCodes,
	Fallback:        arrayType,
	MapError:        mapError,
}

// New opens a lib/pq pool using cfg and pings it before returning.
func New(ctx context.Context, cfg *database.Config) (*sqldb.Driver, error) {
	return sqldb.Open(ctx, Dialect, cfg)
}

// typeCodes keys are the pg_type names lib/pq reports, upper-cased.
var typeCodes = map[string]schema.Code{
	"BOOL":        schema.CodeBit,
	"BIT":         schema.CodeBit,
	"BYTEA":       schema.CodeBinary,
	"CHAR":        schema.CodeChar,
	"BPCHAR":      schema.CodeChar,
	"NAME":        schema.CodeVarChar,
	"TEXT":        schema.CodeVarChar,
	"VARCHAR":     schema.CodeVarChar,
	"INT2":        schema.CodeSmallInt,
	"INT4":        schema.CodeInteger,
	"INT8":        schema.CodeBigInt,
	"OID":         schema.CodeBigInt,
	"FLOAT4":      schema.CodeReal,
	"FLOAT8":      schema.CodeDouble,
	"NUMERIC":     schema.CodeNumeric,
	"DATE":        schema.CodeDate,
	"TIME":        schema.CodeTime,
	"TIMESTAMP":   schema.CodeTimestamp,
	"TIMESTAMPTZ": schema.CodeTimestamp,
}

// arrayType recognises array types, which lib/pq names "_" + element type.
func arrayType(name string) (schema.Code, bool) {
	if strings.HasPrefix(name, "_") {
		return schema.CodeArray, true
	}
	return 0, false
}
