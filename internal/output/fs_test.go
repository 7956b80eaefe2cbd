package output

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koustreak/tablegen/internal/errs"
	"github.com/koustreak/tablegen/internal/render"
)

func artifact(content string) render.Artifact {
	return render.Artifact{
		Kind:      render.KindRecordType,
		Namespace: "com.acme.pojo",
		BaseName:  "AccountsEntity",
		Ext:       ".java",
		Content:   []byte(content),
	}
}

func TestFS_CreatesDirectoryChain(t *testing.T) {
	root := filepath.Join(t.TempDir(), "does", "not", "exist")
	w := NewFS(root)

	got, err := w.Write(context.Background(), artifact("class A {}"))
	require.NoError(t, err)

	want := filepath.Join(root, "com", "acme", "pojo", "AccountsEntity.java")
	assert.Equal(t, want, got)

	data, err := os.ReadFile(want)
	require.NoError(t, err)
	assert.Equal(t, "class A {}", string(data))
}

func TestFS_OverwriteTruncates(t *testing.T) {
	w := NewFS(t.TempDir())
	ctx := context.Background()

	_, err := w.Write(ctx, artifact("a much longer first version"))
	require.NoError(t, err)
	path, err := w.Write(ctx, artifact("short"))
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "short", string(data))
}

func TestFS_DefaultRoot(t *testing.T) {
	w := NewFS("")
	assert.Equal(t, filepath.Join("out", "pojo"), w.Dir("pojo"))
	assert.Equal(t, filepath.Join("out", "a", "b"), w.Dir(".a..b."))
}

func TestFS_WriteFailed(t *testing.T) {
	root := t.TempDir()
	// A regular file where a directory is needed.
	blocker := filepath.Join(root, "com")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	_, err := NewFS(root).Write(context.Background(), artifact("class A {}"))
	require.Error(t, err)
	assert.True(t, errs.IsWriteFailed(err))
}

func TestFS_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewFS(t.TempDir()).Write(ctx, artifact("x"))
	assert.True(t, errs.IsInterrupted(err))
}
