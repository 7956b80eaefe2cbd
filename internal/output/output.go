// Package output persists rendered artifacts, either below a local output
// root or in an object store bucket.
package output

import (
	"context"
	"strings"

	"github.com/koustreak/tablegen/internal/render"
)

// Writer persists one artifact and returns where it ended up.
// Implementations are safe for concurrent use; every write either replaces
// the target completely or reports a WriteFailed error.
type Writer interface {
	Write(ctx context.Context, a render.Artifact) (string, error)
}

// namespacePath splits a dot-delimited namespace into path segments,
// dropping empty ones.
func namespacePath(namespace string) []string {
	parts := strings.Split(namespace, ".")
	segments := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			segments = append(segments, p)
		}
	}
	return segments
}
