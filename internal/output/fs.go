package output

import (
	"context"
	"os"
	"path/filepath"

	"github.com/koustreak/tablegen/internal/errs"
	"github.com/koustreak/tablegen/internal/render"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// FS writes artifacts to root/<namespace as directories>/<file>.
type FS struct {
	root string
}

// NewFS returns a writer rooted at root. An empty root means "out".
func NewFS(root string) *FS {
	if root == "" {
		root = "out"
	}
	return &FS{root: root}
}

// Dir returns the directory that receives artifacts of namespace.
func (w *FS) Dir(namespace string) string {
	return filepath.Join(append([]string{w.root}, namespacePath(namespace)...)...)
}

// Write creates any missing directories, then creates or truncates the
// target file and writes the content in full.
func (w *FS) Write(ctx context.Context, a render.Artifact) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", errs.Wrap(errs.ErrKindInterrupted, "write cancelled", err)
	}

	dir := w.Dir(a.Namespace)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return "", errs.Wrap(errs.ErrKindWriteFailed, "could not create target dir "+dir, err)
	}

	target := filepath.Join(dir, a.FileName())
	if err := os.WriteFile(target, a.Content, filePerm); err != nil {
		return "", errs.Wrap(errs.ErrKindWriteFailed, "could not write "+a.Kind.String()+" file", err)
	}
	return target, nil
}
