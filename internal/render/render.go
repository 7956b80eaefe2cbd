// Package render turns an introspected table into generated source artifacts:
// a record type (Java class or Go struct) and an XML mapping descriptor.
//
// Renderers are pure. They never touch the filesystem and are safe for
// concurrent use by multiple workers.
package render

import (
	"fmt"
	"strings"

	"github.com/jinzhu/inflection"

	"github.com/koustreak/tablegen/internal/errs"
	"github.com/koustreak/tablegen/internal/schema"
)

// Kind distinguishes the two artifacts produced per table.
type Kind int

const (
	KindRecordType Kind = iota
	KindMappingDescriptor
)

func (k Kind) String() string {
	switch k {
	case KindRecordType:
		return "record type"
	case KindMappingDescriptor:
		return "mapping descriptor"
	default:
		return "unknown"
	}
}

// Lang selects the language of the record type.
type Lang string

const (
	LangJava Lang = "java"
	LangGo   Lang = "go"
)

// Valid reports whether l is a supported target language.
func (l Lang) Valid() bool {
	return l == LangJava || l == LangGo
}

// Artifact is one rendered file, not yet persisted.
type Artifact struct {
	Kind      Kind
	Namespace string // dot-delimited, e.g. "com.acme.pojo"
	BaseName  string // file name without extension
	Ext       string // extension including the dot
	Content   []byte
}

// FileName returns BaseName + Ext.
func (a Artifact) FileName() string {
	return a.BaseName + a.Ext
}

// Options controls naming and the target language.
type Options struct {
	Namespace string
	Lang      Lang
	Suffix    string // appended to the type name, e.g. "Entity"
	Singular  bool   // singularise the table name before appending Suffix
}

// DefaultOptions returns the settings of a run with no overrides.
func DefaultOptions() Options {
	return Options{
		Namespace: "pojo",
		Lang:      LangJava,
		Suffix:    "Entity",
	}
}

// Renderer renders the artifacts of one table.
type Renderer struct {
	opts Options
}

// New validates opts and returns a Renderer.
func New(opts Options) (*Renderer, error) {
	if opts.Lang == "" {
		opts.Lang = LangJava
	}
	if !opts.Lang.Valid() {
		return nil, errs.Newf(errs.ErrKindInvalidInput, "unsupported language %q", opts.Lang)
	}
	opts.Namespace = strings.Trim(strings.TrimSpace(opts.Namespace), ".")
	if opts.Namespace == "" {
		opts.Namespace = "pojo"
	}
	return &Renderer{opts: opts}, nil
}

// Options returns the normalised options.
func (r *Renderer) Options() Options {
	return r.opts
}

// TypeName returns the record type name for table:
// "ACCOUNTS" -> "AccountsEntity".
func (r *Renderer) TypeName(table string) string {
	name := schema.TypeName(table)
	if r.opts.Singular {
		name = inflection.Singular(name)
	}
	return name + r.opts.Suffix
}

// Render renders both artifacts for t. Nothing is returned unless both
// succeed, so a table never ends up with half its files.
func (r *Renderer) Render(t *schema.Table) ([]Artifact, error) {
	if err := checkTable(t); err != nil {
		return nil, err
	}

	record, err := r.RecordType(t)
	if err != nil {
		return nil, err
	}
	mapping, err := r.MappingDescriptor(t)
	if err != nil {
		return nil, err
	}
	return []Artifact{record, mapping}, nil
}

// RecordType renders the record type in the configured language.
func (r *Renderer) RecordType(t *schema.Table) (Artifact, error) {
	if err := checkTable(t); err != nil {
		return Artifact{}, err
	}

	switch r.opts.Lang {
	case LangGo:
		return r.goRecord(t)
	default:
		return r.javaRecord(t)
	}
}

func checkTable(t *schema.Table) error {
	if t == nil || strings.TrimSpace(t.Name) == "" {
		return errs.New(errs.ErrKindInvalidInput, "invalid table name")
	}
	if len(t.Columns) == 0 {
		return errs.New(errs.ErrKindNoColumns, "no columns found in table")
	}
	seen := make(map[string]string, len(t.Columns))
	for i := range t.Columns {
		c := &t.Columns[i]
		if c.TargetType == schema.SemanticInvalid {
			return errs.Newf(errs.ErrKindRenderFailed, "column %s has no resolved type", c.Name)
		}
		if c.PropertyName == "" {
			return errs.Newf(errs.ErrKindRenderFailed, "column %q has no usable property name", c.Name)
		}
		if prev, dup := seen[c.PropertyName]; dup {
			return errs.Newf(errs.ErrKindRenderFailed, "columns %s and %s map to the same property %s", prev, c.Name, c.PropertyName)
		}
		seen[c.PropertyName] = c.Name
	}
	return nil
}

func renderFailed(what string, err error) error {
	return errs.Wrap(errs.ErrKindRenderFailed, fmt.Sprintf("failed to render %s", what), err)
}
