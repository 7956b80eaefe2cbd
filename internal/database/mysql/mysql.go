// Package mysql connects to MySQL and MariaDB through go-sql-driver/mysql.
package mysql

import (
	"context"

	"github.com/koustreak/tablegen/internal/database"
	"github.com/koustreak/tablegen/internal/database/sqldb"
	"github.com/koustreak/tablegen/internal/schema"

	_ "github.com/go-sql-driver/mysql" // register "mysql" driver
)

const listTables = `
	SELECT table_name
	FROM information_schema.tables
	WHERE table_schema = DATABASE()
	  AND table_type   = 'BASE TABLE'
	ORDER BY table_name`

// Dialect describes MySQL to the shared database/sql driver.
var Dialect = &sqldb.Dialect{
	Name:            "mysql",
	DriverName:      "mysql",
	Quoting:         database.DialectMySQL,
	ListTablesQuery: listTables,
	TypeCodes:       typeCodes,
	MapError:        mapError,
}

// New opens a MySQL pool using cfg and pings it before returning.
func New(ctx context.Context, cfg *database.Config) (*sqldb.Driver, error) {
	return sqldb.Open(ctx, Dialect, cfg)
}

// typeCodes maps the names reported by DatabaseTypeName to SQL type codes.
// go-sql-driver reports unsigned integers as "UNSIGNED INT" and friends;
// the prefix is stripped before lookup.
var typeCodes = map[string]schema.Code{
	"BIT":        schema.CodeBit,
	"BOOL":       schema.CodeBit,
	"BOOLEAN":    schema.CodeBit,
	"TINYINT":    schema.CodeTinyInt,
	"SMALLINT":   schema.CodeSmallInt,
	"MEDIUMINT":  schema.CodeInteger,
	"INT":        schema.CodeInteger,
	"INTEGER":    schema.CodeInteger,
	"BIGINT":     schema.CodeBigInt,
	"FLOAT":      schema.CodeReal,
	"DOUBLE":     schema.CodeDouble,
	"DECIMAL":    schema.CodeDecimal,
	"NUMERIC":    schema.CodeNumeric,
	"CHAR":       schema.CodeChar,
	"VARCHAR":    schema.CodeVarChar,
	"TINYTEXT":   schema.CodeVarChar,
	"TEXT":       schema.CodeLongVarChar,
	"MEDIUMTEXT": schema.CodeLongVarChar,
	"LONGTEXT":   schema.CodeLongVarChar,
	"ENUM":       schema.CodeChar,
	"SET":        schema.CodeChar,
	"JSON":       schema.CodeLongVarChar,
	"BINARY":     schema.CodeBinary,
	"VARBINARY":  schema.CodeVarBinary,
	"TINYBLOB":   schema.CodeVarBinary,
	"BLOB":       schema.CodeLongVarBinary,
	"MEDIUMBLOB": schema.CodeLongVarBinary,
	"LONGBLOB":   schema.CodeLongVarBinary,
	"GEOMETRY":   schema.CodeBinary,
	"DATE":       schema.CodeDate,
	"TIME":       schema.CodeTime,
	"DATETIME":   schema.CodeTimestamp,
	"TIMESTAMP":  schema.CodeTimestamp,
	"YEAR":       schema.CodeSmallInt,
}
