package generator

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/koustreak/tablegen/internal/database"
	"github.com/koustreak/tablegen/internal/errs"
	"github.com/koustreak/tablegen/internal/logger"
	"github.com/koustreak/tablegen/internal/output"
	"github.com/koustreak/tablegen/internal/render"
	"github.com/koustreak/tablegen/internal/schema"
)

// fakeDB serves canned column descriptors and counts how often each table
// is described.
type fakeDB struct {
	mu        sync.Mutex
	tables    map[string][]schema.Column
	order     []string
	listErr   error
	described map[string]int
	acquired  int
	released  int
}

func newFakeDB() *fakeDB {
	return &fakeDB{tables: map[string][]schema.Column{}, described: map[string]int{}}
}

func (f *fakeDB) add(table string, cols ...schema.Column) *fakeDB {
	f.tables[table] = cols
	f.order = append(f.order, table)
	return f
}

func (f *fakeDB) Ping(context.Context) error { return nil }
func (f *fakeDB) Close()                     {}

func (f *fakeDB) ListTables(context.Context) ([]string, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]string(nil), f.order...), nil
}

func (f *fakeDB) Acquire(context.Context) (database.Conn, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.acquired++
	return &fakeConn{db: f}, nil
}

func (f *fakeDB) count(table string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.described[table]
}

type fakeConn struct {
	db       *fakeDB
	released bool
}

func (c *fakeConn) Describe(_ context.Context, table string) ([]schema.Column, error) {
	if c.released {
		return nil, errors.New("describe on released connection")
	}
	c.db.mu.Lock()
	defer c.db.mu.Unlock()
	c.db.described[table]++
	cols, ok := c.db.tables[table]
	if !ok {
		return nil, errs.Newf(errs.ErrKindNotFound, "relation %q does not exist", table)
	}
	// Callers resolve the descriptors in place.
	return append([]schema.Column(nil), cols...), nil
}

func (c *fakeConn) Release() {
	c.released = true
	c.db.mu.Lock()
	c.db.released++
	c.db.mu.Unlock()
}

type fakeLister struct {
	names []string
	err   error
	panic bool
}

func (l fakeLister) ListTables(context.Context) ([]string, error) {
	if l.panic {
		panic("catalog exploded")
	}
	return l.names, l.err
}

// syncBuffer collects log output from concurrent tasks.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newTestLogger(level string) (*logger.Logger, *syncBuffer) {
	buf := &syncBuffer{}
	return logger.New(&logger.Config{Level: level, Format: "text", Output: buf}), buf
}

func col(name string, code schema.Code, precision, scale int) schema.Column {
	return schema.Column{Name: name, Label: name, TypeCode: code, Precision: precision, Scale: scale}
}

func accountsColumns() []schema.Column {
	return []schema.Column{
		col("ID", schema.CodeInteger, 10, 0),
		col("EMAIL", schema.CodeVarChar, 100, 0),
		col("BALANCE", schema.CodeNumeric, 10, 2),
		col("ACTIVE", schema.CodeNumeric, 1, 0),
	}
}

func newPipeline(t *testing.T, root string) (*render.Renderer, output.Writer) {
	t.Helper()
	r, err := render.New(render.DefaultOptions())
	require.NoError(t, err)
	return r, output.NewFS(root)
}
