package render

import (
	"bytes"
	"encoding/xml"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/koustreak/tablegen/internal/schema"
)

type mappingView struct {
	Namespace     string
	TypeName      string
	Table         string
	Alias         string
	BaseColumns   string
	InsertColumns string
	InsertParams  string
	Assignments   string
}

// MappingDescriptor renders the XML statement document for t.
//
// Columns are qualified with the table alias, the first character of the
// upper-cased table name. Bound parameters use the column property names.
func (r *Renderer) MappingDescriptor(t *schema.Table) (Artifact, error) {
	if err := checkTable(t); err != nil {
		return Artifact{}, err
	}

	alias := Alias(t.Name)
	n := len(t.Columns)
	base := make([]string, 0, n)
	cols := make([]string, 0, n)
	params := make([]string, 0, n)
	sets := make([]string, 0, n)

	for i := range t.Columns {
		c := &t.Columns[i]
		name := escape(c.Name)
		param := ":" + escape(c.PropertyName)
		base = append(base, alias+"."+name)
		cols = append(cols, name)
		params = append(params, param)
		sets = append(sets, name+" = "+param)
	}

	typeName := r.TypeName(t.Name)
	view := mappingView{
		Namespace:     escape(r.opts.Namespace),
		TypeName:      escape(typeName),
		Table:         escape(t.Name),
		Alias:         alias,
		BaseColumns:   strings.Join(base, ", "),
		InsertColumns: strings.Join(cols, ", "),
		InsertParams:  strings.Join(params, ", "),
		Assignments:   strings.Join(sets, ",\n\t\t    "),
	}

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "mapping.xml.tmpl", view); err != nil {
		return Artifact{}, renderFailed("mapping descriptor", err)
	}

	return Artifact{
		Kind:      KindMappingDescriptor,
		Namespace: r.opts.Namespace,
		BaseName:  typeName,
		Ext:       ".xml",
		Content:   buf.Bytes(),
	}, nil
}

// Alias returns the single-letter table alias used in generated SQL.
func Alias(table string) string {
	r, _ := utf8.DecodeRuneInString(strings.TrimSpace(table))
	if r == utf8.RuneError {
		return "T"
	}
	return escape(string(unicode.ToUpper(r)))
}

func escape(s string) string {
	var sb strings.Builder
	_ = xml.EscapeText(&sb, []byte(s))
	return sb.String()
}
