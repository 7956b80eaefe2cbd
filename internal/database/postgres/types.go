package postgres

import (
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/koustreak/tablegen/internal/schema"
)

// oidCodes maps built-in type OIDs to SQL type codes, following what the
// PostgreSQL JDBC driver reports. Types outside this table surface as
// CodeOther.
var oidCodes = map[uint32]schema.Code{
	pgtype.BoolOID:        schema.CodeBit,
	pgtype.BitOID:         schema.CodeBit,
	pgtype.ByteaOID:       schema.CodeBinary,
	pgtype.QCharOID:       schema.CodeChar,
	pgtype.NameOID:        schema.CodeVarChar,
	pgtype.Int8OID:        schema.CodeBigInt,
	pgtype.Int2OID:        schema.CodeSmallInt,
	pgtype.Int4OID:        schema.CodeInteger,
	pgtype.TextOID:        schema.CodeVarChar,
	pgtype.OIDOID:         schema.CodeBigInt,
	pgtype.Float4OID:      schema.CodeReal,
	pgtype.Float8OID:      schema.CodeDouble,
	pgtype.BPCharOID:      schema.CodeChar,
	pgtype.VarcharOID:     schema.CodeVarChar,
	pgtype.DateOID:        schema.CodeDate,
	pgtype.TimeOID:        schema.CodeTime,
	pgtype.TimestampOID:   schema.CodeTimestamp,
	pgtype.TimestamptzOID: schema.CodeTimestamp,
	pgtype.NumericOID:     schema.CodeNumeric,

	pgtype.BoolArrayOID:    schema.CodeArray,
	pgtype.Int2ArrayOID:    schema.CodeArray,
	pgtype.Int4ArrayOID:    schema.CodeArray,
	pgtype.Int8ArrayOID:    schema.CodeArray,
	pgtype.TextArrayOID:    schema.CodeArray,
	pgtype.VarcharArrayOID: schema.CodeArray,
	pgtype.Float4ArrayOID:  schema.CodeArray,
	pgtype.Float8ArrayOID:  schema.CodeArray,
	pgtype.NumericArrayOID: schema.CodeArray,
	pgtype.UUIDArrayOID:    schema.CodeArray,
}

// fixedPrecision is the precision reported for types without a modifier.
var fixedPrecision = map[schema.Code]int{
	schema.CodeBit:      1,
	schema.CodeSmallInt: 5,
	schema.CodeInteger:  10,
	schema.CodeBigInt:   19,
	schema.CodeReal:     8,
	schema.CodeDouble:   17,
	schema.CodeDate:     13,
}

// scanTypes names the Go type pgx scans each code into by default.
var scanTypes = map[schema.Code]string{
	schema.CodeBit:       "bool",
	schema.CodeBinary:    "[]uint8",
	schema.CodeChar:      "string",
	schema.CodeVarChar:   "string",
	schema.CodeSmallInt:  "int16",
	schema.CodeInteger:   "int32",
	schema.CodeBigInt:    "int64",
	schema.CodeReal:      "float32",
	schema.CodeDouble:    "float64",
	schema.CodeDate:      "time.Time",
	schema.CodeTime:      "pgtype.Time",
	schema.CodeTimestamp: "time.Time",
	schema.CodeNumeric:   "pgtype.Numeric",
	schema.CodeArray:     "[]interface {}",
}

// defaultTimePrecision is the fractional-seconds precision of time and
// timestamp columns declared without one.
const defaultTimePrecision = 6

// describeField converts one RowDescription entry into a column descriptor.
func describeField(fd pgconn.FieldDescription, typeName, table string) schema.Column {
	code, ok := oidCodes[fd.DataTypeOID]
	if !ok {
		code = schema.CodeOther
	}
	precision, scale := precisionScale(code, fd.TypeModifier)

	return schema.Column{
		Name:        fd.Name,
		Label:       fd.Name,
		TypeCode:    code,
		TypeName:    typeName,
		Precision:   precision,
		Scale:       scale,
		DisplaySize: displaySize(code, precision, scale),
		SourceType:  scanTypes[code],
		Table:       table,
	}
}

// precisionScale decodes the type modifier the server sends with a column.
// A modifier of -1 means none was declared.
func precisionScale(code schema.Code, typmod int32) (int, int) {
	switch code {
	case schema.CodeNumeric:
		if typmod < 4 {
			return 0, 0
		}
		mod := typmod - 4
		return int((mod >> 16) & 0xffff), int(mod & 0xffff)
	case schema.CodeChar, schema.CodeVarChar:
		if typmod < 4 {
			return 0, 0
		}
		return int(typmod - 4), 0
	case schema.CodeTime, schema.CodeTimestamp:
		if typmod < 0 {
			return defaultTimePrecision, 0
		}
		return int(typmod), 0
	}
	return fixedPrecision[code], 0
}

func displaySize(code schema.Code, precision, scale int) int {
	switch code {
	case schema.CodeNumeric, schema.CodeSmallInt, schema.CodeInteger, schema.CodeBigInt:
		size := precision + 1 // sign
		if scale > 0 {
			size++ // decimal point
		}
		return size
	}
	return precision
}
