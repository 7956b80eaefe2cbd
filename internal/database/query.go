package database

import (
	"regexp"
	"strings"

	"github.com/koustreak/tablegen/internal/errs"
)

// Dialect controls identifier quoting in generated SQL.
type Dialect int

const (
	// DialectPostgres quotes identifiers with double quotes.
	DialectPostgres Dialect = iota

	// DialectMySQL quotes identifiers with backticks.
	DialectMySQL

	// DialectSQLite quotes identifiers with double quotes.
	DialectSQLite
)

// plainIdent matches an unquoted, optionally schema- or catalog-qualified name.
var plainIdent = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_$#]*(\.[A-Za-z_][A-Za-z0-9_$#]*){0,2}$`)

// DescribeQuery returns the metadata-only query for table: it selects every
// column but can never return a row.
//
// Plain identifiers are used verbatim so the database applies its own case
// folding, exactly as a hand-written query would. Anything else is quoted as a
// single identifier.
func DescribeQuery(table string, d Dialect) (string, error) {
	if strings.TrimSpace(table) == "" {
		return "", errs.New(errs.ErrKindInvalidInput, "table name is empty")
	}
	return "SELECT * FROM " + TableRef(table, d) + " WHERE 1>2", nil
}

// TableRef renders table for use in a FROM clause.
func TableRef(table string, d Dialect) string {
	if plainIdent.MatchString(table) {
		return table
	}
	return QuoteIdent(table, d)
}

// QuoteIdent wraps a SQL identifier in the dialect's quote character,
// doubling any embedded quote.
func QuoteIdent(name string, d Dialect) string {
	if d == DialectMySQL {
		return "`" + strings.ReplaceAll(name, "`", "``") + "`"
	}
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
