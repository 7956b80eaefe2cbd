package sqldb

import (
	"strconv"
	"strings"

	"github.com/koustreak/tablegen/internal/database"
	"github.com/koustreak/tablegen/internal/errs"
	"github.com/koustreak/tablegen/internal/schema"
)

// Dialect adapts the shared database/sql driver to one engine.
type Dialect struct {
	// Name is used in log and error messages.
	Name string

	// DriverName is the name registered with database/sql.
	DriverName string

	// Quoting selects the identifier quote used in metadata queries.
	Quoting database.Dialect

	// ListTablesQuery returns one table name per row.
	ListTablesQuery string

	// TypeCodes maps a normalised native type name (upper case, without
	// parameters) to a SQL type code.
	TypeCodes map[string]schema.Code

	// Fallback, if set, resolves names missing from TypeCodes.
	Fallback func(name string) (schema.Code, bool)

	// MapError translates native driver errors.
	MapError func(err error, msg string) *errs.Error
}

// TypeInfo is a native type name split into its parts.
type TypeInfo struct {
	Base     string // "VARCHAR", "DECIMAL", "INT"
	Params   []int  // numbers inside the parentheses, if any
	Unsigned bool
}

// ParseTypeName normalises names such as "varchar(100)", "NUMERIC(10, 2)"
// or "UNSIGNED INT".
func ParseTypeName(name string) TypeInfo {
	s := strings.ToUpper(strings.TrimSpace(name))

	var info TypeInfo
	if open := strings.IndexByte(s, '('); open >= 0 {
		inner := s[open+1:]
		if end := strings.IndexByte(inner, ')'); end >= 0 {
			for _, part := range strings.Split(inner[:end], ",") {
				if n, err := strconv.Atoi(strings.TrimSpace(part)); err == nil {
					info.Params = append(info.Params, n)
				}
			}
			s = s[:open] + inner[end+1:]
		} else {
			s = s[:open]
		}
	}

	fields := strings.Fields(s)
	kept := fields[:0]
	for _, f := range fields {
		if f == "UNSIGNED" {
			info.Unsigned = true
			continue
		}
		if f == "ZEROFILL" || f == "SIGNED" {
			continue
		}
		kept = append(kept, f)
	}
	info.Base = strings.Join(kept, " ")
	return info
}

// resolve returns the SQL type code for a native type name.
func (d *Dialect) resolve(info TypeInfo) schema.Code {
	code, ok := d.TypeCodes[info.Base]
	if !ok && d.Fallback != nil {
		code, ok = d.Fallback(info.Base)
	}
	if !ok {
		return schema.CodeOther
	}
	if info.Unsigned {
		return promoteUnsigned(code)
	}
	return code
}

// promoteUnsigned widens an unsigned integer to the next signed code that
// holds its full range.
func promoteUnsigned(code schema.Code) schema.Code {
	switch code {
	case schema.CodeTinyInt:
		return schema.CodeSmallInt
	case schema.CodeSmallInt:
		return schema.CodeInteger
	case schema.CodeInteger:
		return schema.CodeBigInt
	case schema.CodeBigInt:
		return schema.CodeDecimal
	default:
		return code
	}
}

func (d *Dialect) mapError(err error, msg string) *errs.Error {
	if d.MapError != nil {
		return d.MapError(err, msg)
	}
	return errs.Wrap(errs.ErrKindQueryFailed, msg, err)
}
