package render

import (
	"bytes"
	"embed"
	"sort"
	"text/template"

	"github.com/koustreak/tablegen/internal/schema"
)

//go:embed templates
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))

const javaSerializable = "java.io.Serializable"

// javaTypes is read-only after package initialisation.
var javaTypes = map[schema.Semantic]string{
	schema.SemanticText:     "String",
	schema.SemanticDecimal:  "BigDecimal",
	schema.SemanticBoolean:  "Boolean",
	schema.SemanticInt32:    "Integer",
	schema.SemanticInt64:    "Long",
	schema.SemanticFloat32:  "Float",
	schema.SemanticFloat64:  "Double",
	schema.SemanticBytes:    "byte[]",
	schema.SemanticDate:     "Date",
	schema.SemanticTime:     "Time",
	schema.SemanticDateTime: "Timestamp",
	schema.SemanticClob:     "Clob",
	schema.SemanticBlob:     "Blob",
	schema.SemanticArray:    "Array",
	schema.SemanticStruct:   "Struct",
	schema.SemanticRef:      "Ref",
	schema.SemanticObject:   "Object",
}

// javaImports lists the import each Java type needs. Types in java.lang
// and primitives need none.
var javaImports = map[string]string{
	"BigDecimal": "java.math.BigDecimal",
	"Date":       "java.util.Date",
	"Time":       "java.sql.Time",
	"Timestamp":  "java.sql.Timestamp",
	"Clob":       "java.sql.Clob",
	"Blob":       "java.sql.Blob",
	"Array":      "java.sql.Array",
	"Struct":     "java.sql.Struct",
	"Ref":        "java.sql.Ref",
}

type javaField struct {
	Type     string
	Property string
	Accessor string
}

type javaView struct {
	Namespace string
	TypeName  string
	Imports   []string
	Fields    []javaField
}

func (r *Renderer) javaRecord(t *schema.Table) (Artifact, error) {
	view := javaView{
		Namespace: r.opts.Namespace,
		TypeName:  r.TypeName(t.Name),
		Fields:    make([]javaField, 0, len(t.Columns)),
	}

	seen := map[string]bool{javaSerializable: true}
	view.Imports = append(view.Imports, javaSerializable)

	for i := range t.Columns {
		c := &t.Columns[i]
		typ := javaTypes[c.TargetType]
		if imp, ok := javaImports[typ]; ok && !seen[imp] {
			seen[imp] = true
			view.Imports = append(view.Imports, imp)
		}
		view.Fields = append(view.Fields, javaField{
			Type:     typ,
			Property: c.PropertyName,
			Accessor: schema.TypeName(c.Name),
		})
	}
	sort.Strings(view.Imports)

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "record.java.tmpl", view); err != nil {
		return Artifact{}, renderFailed("java record", err)
	}

	return Artifact{
		Kind:      KindRecordType,
		Namespace: r.opts.Namespace,
		BaseName:  view.TypeName,
		Ext:       ".java",
		Content:   buf.Bytes(),
	}, nil
}
