// Package sqlite reads SQLite database files through modernc.org/sqlite.
package sqlite

import (
	"context"
	"strings"

	"github.com/koustreak/tablegen/internal/database"
	"github.com/koustreak/tablegen/internal/database/sqldb"
	"github.com/koustreak/tablegen/internal/schema"

	_ "modernc.org/sqlite" // register "sqlite" driver
)

const listTables = `
	SELECT name
	FROM sqlite_master
	WHERE type = 'table'
	  AND name NOT LIKE 'sqlite_%'
	ORDER BY name`

// Dialect describes SQLite to the shared database/sql driver.
var Dialect = &sqldb.Dialect{
	Name:            "sqlite",
	DriverName:      "sqlite",
	Quoting:         database.DialectSQLite,
	ListTablesQuery: listTables,
	TypeCodes:       typeCodes,
	Fallback:        affinity,
	MapError:        mapError,
}

// New opens the database file named by cfg.DSN.
func New(ctx context.Context, cfg *database.Config) (*sqldb.Driver, error) {
	return sqldb.Open(ctx, Dialect, cfg)
}

// typeCodes covers the declared type names commonly used in DDL. Anything
// else goes through SQLite's column affinity rules.
var typeCodes = map[string]schema.Code{
	"BOOLEAN":   schema.CodeBit,
	"BIT":       schema.CodeBit,
	"TINYINT":   schema.CodeTinyInt,
	"SMALLINT":  schema.CodeSmallInt,
	"INT":       schema.CodeInteger,
	"INTEGER":   schema.CodeInteger,
	"BIGINT":    schema.CodeBigInt,
	"REAL":      schema.CodeReal,
	"FLOAT":     schema.CodeDouble,
	"DOUBLE":    schema.CodeDouble,
	"NUMERIC":   schema.CodeNumeric,
	"DECIMAL":   schema.CodeDecimal,
	"CHAR":      schema.CodeChar,
	"VARCHAR":   schema.CodeVarChar,
	"TEXT":      schema.CodeVarChar,
	"CLOB":      schema.CodeClob,
	"BLOB":      schema.CodeBlob,
	"DATE":      schema.CodeDate,
	"TIME":      schema.CodeTime,
	"DATETIME":  schema.CodeTimestamp,
	"TIMESTAMP": schema.CodeTimestamp,
}

// affinity applies the rules from https://www.sqlite.org/datatype3.html
// section 3.1 to a declared type name.
func affinity(name string) (schema.Code, bool) {
	switch {
	case strings.Contains(name, "INT"):
		return schema.CodeBigInt, true
	case strings.Contains(name, "CHAR"),
		strings.Contains(name, "CLOB"),
		strings.Contains(name, "TEXT"):
		return schema.CodeVarChar, true
	case name == "", strings.Contains(name, "BLOB"):
		return schema.CodeBlob, true
	case strings.Contains(name, "REAL"),
		strings.Contains(name, "FLOA"),
		strings.Contains(name, "DOUB"):
		return schema.CodeDouble, true
	default:
		return schema.CodeNumeric, true
	}
}
