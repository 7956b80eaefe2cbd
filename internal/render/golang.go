package render

import (
	"bytes"
	"go/token"
	"path"
	"strings"
	"unicode"

	"github.com/dave/jennifer/jen"
	"golang.org/x/tools/imports"
	"mvdan.cc/gofumpt/format"

	"github.com/koustreak/tablegen/internal/schema"
)

const decimalPkg = "github.com/shopspring/decimal"

// goType returns the field type for a semantic type.
func goType(s schema.Semantic) jen.Code {
	switch s {
	case schema.SemanticText, schema.SemanticClob, schema.SemanticRef:
		return jen.String()
	case schema.SemanticDecimal:
		return jen.Qual(decimalPkg, "Decimal")
	case schema.SemanticBoolean:
		return jen.Bool()
	case schema.SemanticInt32:
		return jen.Int32()
	case schema.SemanticInt64:
		return jen.Int64()
	case schema.SemanticFloat32:
		return jen.Float32()
	case schema.SemanticFloat64:
		return jen.Float64()
	case schema.SemanticBytes, schema.SemanticBlob:
		return jen.Index().Byte()
	case schema.SemanticDate, schema.SemanticTime, schema.SemanticDateTime:
		return jen.Qual("time", "Time")
	case schema.SemanticArray:
		return jen.Index().Id("any")
	case schema.SemanticStruct:
		return jen.Map(jen.String()).Id("any")
	default:
		return jen.Id("any")
	}
}

// goIdent makes a property name usable as a Go identifier.
func goIdent(name string) string {
	if token.IsKeyword(name) || name == "any" {
		return name + "_"
	}
	return name
}

// goPackage derives the package clause from the last namespace segment.
func goPackage(namespace string) string {
	last := namespace
	if i := strings.LastIndexByte(namespace, '.'); i >= 0 {
		last = namespace[i+1:]
	}

	var sb strings.Builder
	for _, r := range strings.ToLower(last) {
		if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
		}
	}
	pkg := sb.String()
	if pkg == "" || unicode.IsDigit(rune(pkg[0])) || token.IsKeyword(pkg) {
		pkg = "pojo" + pkg
	}
	return pkg
}

func receiverName(typeName string) string {
	for _, r := range typeName {
		return string(unicode.ToLower(r))
	}
	return "r"
}

func (r *Renderer) goRecord(t *schema.Table) (Artifact, error) {
	typeName := r.TypeName(t.Name)
	recv := receiverName(typeName)
	param := "v"
	if recv == param {
		param = "value"
	}

	f := jen.NewFile(goPackage(r.opts.Namespace))
	f.HeaderComment("Code generated by tablegen. DO NOT EDIT.")
	f.ImportName(decimalPkg, "decimal")

	f.Commentf("%s maps a row of table %s.", typeName, t.Name)
	f.Type().Id(typeName).StructFunc(func(g *jen.Group) {
		for i := range t.Columns {
			c := &t.Columns[i]
			g.Id(goIdent(c.PropertyName)).Add(goType(c.TargetType)).Tag(map[string]string{"db": c.Name})
		}
	})

	for i := range t.Columns {
		c := &t.Columns[i]
		field := goIdent(c.PropertyName)
		accessor := schema.TypeName(c.Name)

		f.Line()
		f.Func().Params(jen.Id(recv).Op("*").Id(typeName)).Id("Get" + accessor).Params().Add(goType(c.TargetType)).Block(
			jen.Return(jen.Id(recv).Dot(field)),
		)
		f.Line()
		f.Func().Params(jen.Id(recv).Op("*").Id(typeName)).Id("Set" + accessor).Params(jen.Id(param).Add(goType(c.TargetType))).Block(
			jen.Id(recv).Dot(field).Op("=").Id(param),
		)
	}

	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return Artifact{}, renderFailed("go record", err)
	}

	filename := path.Join(strings.ReplaceAll(r.opts.Namespace, ".", "/"), typeName+".go")
	withImports, err := imports.Process(filename, buf.Bytes(), nil)
	if err != nil {
		return Artifact{}, renderFailed("go record", err)
	}
	formatted, err := format.Source(withImports, format.Options{ExtraRules: true})
	if err != nil {
		return Artifact{}, renderFailed("go record", err)
	}

	return Artifact{
		Kind:      KindRecordType,
		Namespace: r.opts.Namespace,
		BaseName:  typeName,
		Ext:       ".go",
		Content:   formatted,
	}, nil
}
