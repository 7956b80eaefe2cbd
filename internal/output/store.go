package output

import (
	"context"
	"path"

	"github.com/koustreak/tablegen/internal/errs"
	"github.com/koustreak/tablegen/internal/filestore"
	"github.com/koustreak/tablegen/internal/render"
)

var contentTypes = map[string]string{
	".java": "text/x-java-source",
	".go":   "text/x-go",
	".xml":  "application/xml",
}

// Store uploads artifacts to bucket under prefix/<namespace path>/<file>.
type Store struct {
	store  filestore.Store
	bucket string
	prefix string
}

// NewStore returns a writer that uploads to bucket through store.
func NewStore(store filestore.Store, bucket, prefix string) *Store {
	return &Store{store: store, bucket: bucket, prefix: prefix}
}

// Prepare creates the bucket when it does not exist yet.
func (w *Store) Prepare(ctx context.Context) error {
	return w.store.EnsureBucket(ctx, w.bucket)
}

// Key returns the object key for a.
func (w *Store) Key(a render.Artifact) string {
	parts := append([]string{w.prefix}, namespacePath(a.Namespace)...)
	return path.Join(append(parts, a.FileName())...)
}

// Write uploads a and returns its minio://bucket/key location. An existing
// object with the same key is replaced.
func (w *Store) Write(ctx context.Context, a render.Artifact) (string, error) {
	key := w.Key(a)
	info, err := w.store.PutObject(ctx, w.bucket, key, a.Content, filestore.PutOptions{
		ContentType: contentTypes[a.Ext],
	})
	if err != nil {
		if errs.IsInterrupted(err) {
			return "", err
		}
		return "", errs.Wrap(errs.ErrKindWriteFailed, "could not upload "+a.Kind.String()+" file", err)
	}
	if info != nil && info.Key != "" {
		key = info.Key
	}
	return "minio://" + w.bucket + "/" + key, nil
}
