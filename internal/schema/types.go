package schema

import "fmt"

// Code is an ANSI/JDBC SQL type code as reported by column metadata.
// Drivers translate their native type identifiers into one of these.
type Code int

const (
	CodeBit           Code = -7
	CodeTinyInt       Code = -6
	CodeBigInt        Code = -5
	CodeLongVarBinary Code = -4
	CodeVarBinary     Code = -3
	CodeBinary        Code = -2
	CodeLongVarChar   Code = -1
	CodeNull          Code = 0
	CodeChar          Code = 1
	CodeNumeric       Code = 2
	CodeDecimal       Code = 3
	CodeInteger       Code = 4
	CodeSmallInt      Code = 5
	CodeFloat         Code = 6
	CodeReal          Code = 7
	CodeDouble        Code = 8
	CodeVarChar       Code = 12
	CodeBoolean       Code = 16
	CodeDate          Code = 91
	CodeTime          Code = 92
	CodeTimestamp     Code = 93
	CodeOther         Code = 1111
	CodeJavaObject    Code = 2000
	CodeDistinct      Code = 2001
	CodeStruct        Code = 2002
	CodeArray         Code = 2003
	CodeBlob          Code = 2004
	CodeClob          Code = 2005
	CodeRef           Code = 2006
)

var codeNames = map[Code]string{
	CodeBit:           "BIT",
	CodeTinyInt:       "TINYINT",
	CodeBigInt:        "BIGINT",
	CodeLongVarBinary: "LONGVARBINARY",
	CodeVarBinary:     "VARBINARY",
	CodeBinary:        "BINARY",
	CodeLongVarChar:   "LONGVARCHAR",
	CodeNull:          "NULL",
	CodeChar:          "CHAR",
	CodeNumeric:       "NUMERIC",
	CodeDecimal:       "DECIMAL",
	CodeInteger:       "INTEGER",
	CodeSmallInt:      "SMALLINT",
	CodeFloat:         "FLOAT",
	CodeReal:          "REAL",
	CodeDouble:        "DOUBLE",
	CodeVarChar:       "VARCHAR",
	CodeBoolean:       "BOOLEAN",
	CodeDate:          "DATE",
	CodeTime:          "TIME",
	CodeTimestamp:     "TIMESTAMP",
	CodeOther:         "OTHER",
	CodeJavaObject:    "JAVA_OBJECT",
	CodeDistinct:      "DISTINCT",
	CodeStruct:        "STRUCT",
	CodeArray:         "ARRAY",
	CodeBlob:          "BLOB",
	CodeClob:          "CLOB",
	CodeRef:           "REF",
}

func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Code(%d)", int(c))
}

// Column describes one column of a metadata-only query result.
//
// The descriptor fields are filled by the database driver. TargetType and
// PropertyName are derived once by Resolve.
type Column struct {
	Name        string
	Label       string
	TypeCode    Code
	TypeName    string // native type name, e.g. "varchar", "NUMERIC"
	Precision   int
	Scale       int
	DisplaySize int
	SourceType  string // type the driver scans the column into, e.g. "string"
	Table       string
	Schema      string
	Catalog     string

	TargetType   Semantic
	PropertyName string
}

// Resolve computes the derived fields of c.
func (c *Column) Resolve() error {
	target, err := Map(c.TypeCode, c.Precision, c.Scale)
	if err != nil {
		return fmt.Errorf("column %s: %w", c.Name, err)
	}
	c.TargetType = target
	c.PropertyName = PropertyName(c.Name)
	return nil
}

// Table is a table name together with its introspected columns, in result order.
type Table struct {
	Name    string
	Columns []Column
}
