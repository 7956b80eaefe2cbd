package schema

import "github.com/koustreak/tablegen/internal/errs"

// Semantic is the language-neutral type a column maps to.
type Semantic int

const (
	SemanticInvalid Semantic = iota
	SemanticText
	SemanticDecimal
	SemanticBoolean
	SemanticInt32
	SemanticInt64
	SemanticFloat32
	SemanticFloat64
	SemanticBytes
	SemanticDate
	SemanticTime
	SemanticDateTime
	SemanticClob
	SemanticBlob
	SemanticArray
	SemanticStruct
	SemanticRef
	SemanticObject
)

func (s Semantic) String() string {
	switch s {
	case SemanticText:
		return "text"
	case SemanticDecimal:
		return "decimal"
	case SemanticBoolean:
		return "boolean"
	case SemanticInt32:
		return "int32"
	case SemanticInt64:
		return "int64"
	case SemanticFloat32:
		return "float32"
	case SemanticFloat64:
		return "float64"
	case SemanticBytes:
		return "bytes"
	case SemanticDate:
		return "date"
	case SemanticTime:
		return "time"
	case SemanticDateTime:
		return "datetime"
	case SemanticClob:
		return "clob"
	case SemanticBlob:
		return "blob"
	case SemanticArray:
		return "array"
	case SemanticStruct:
		return "struct"
	case SemanticRef:
		return "ref"
	case SemanticObject:
		return "object"
	default:
		return "invalid"
	}
}

// baseTypes is read-only after package initialisation.
var baseTypes = map[Code]Semantic{
	CodeChar:          SemanticText,
	CodeVarChar:       SemanticText,
	CodeLongVarChar:   SemanticText,
	CodeNumeric:       SemanticDecimal,
	CodeDecimal:       SemanticDecimal,
	CodeBit:           SemanticBoolean,
	CodeTinyInt:       SemanticInt32,
	CodeSmallInt:      SemanticInt32,
	CodeInteger:       SemanticInt32,
	CodeBigInt:        SemanticInt64,
	CodeReal:          SemanticFloat32,
	CodeFloat:         SemanticFloat64,
	CodeDouble:        SemanticFloat64,
	CodeBinary:        SemanticBytes,
	CodeVarBinary:     SemanticBytes,
	CodeLongVarBinary: SemanticBytes,
	CodeDate:          SemanticDate,
	CodeTime:          SemanticTime,
	CodeTimestamp:     SemanticDateTime,
	CodeClob:          SemanticClob,
	CodeBlob:          SemanticBlob,
	CodeArray:         SemanticArray,
	CodeStruct:        SemanticStruct,
	CodeRef:           SemanticRef,
	CodeJavaObject:    SemanticObject,
}

// Map returns the semantic type for a column type code.
//
// NUMERIC(1,0) maps to boolean and any other unscaled NUMERIC to a 64-bit
// integer; those two rules win over the base table. Codes without a
// mapping return an ErrKindUnsupportedType error.
func Map(code Code, precision, scale int) (Semantic, error) {
	base, ok := baseTypes[code]
	if !ok {
		return SemanticInvalid, errs.Newf(errs.ErrKindUnsupportedType, "unsupported type code %s", code)
	}

	if code == CodeNumeric && scale == 0 {
		if precision == 1 {
			return SemanticBoolean, nil
		}
		return SemanticInt64, nil
	}
	return base, nil
}
