package thumbnail

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(nil, t.TempDir())
	require.NoError(t, err)
	return store
}

func writeSource(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestPutPreservesExtensionAndContent(t *testing.T) {
	store := newTestStore(t)
	source := writeSource(t, "render.webp", "webp bytes")

	filename, err := store.Put(source, "abc123_1700000000")
	require.NoError(t, err)
	assert.Equal(t, "abc123_1700000000.webp", filename)

	path, err := store.Resolve(filename)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "webp bytes", string(data))
}

func TestPutPreservesModTime(t *testing.T) {
	store := newTestStore(t)
	source := writeSource(t, "old.png", "png bytes")
	mtime := time.Date(2023, 6, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, os.Chtimes(source, mtime, mtime))

	filename, err := store.Put(source, "id")
	require.NoError(t, err)

	path, err := store.Resolve(filename)
	require.NoError(t, err)
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(mtime))
}

func TestPutMissingSource(t *testing.T) {
	store := newTestStore(t)
	_, err := store.Put(filepath.Join(t.TempDir(), "nope.png"), "id")
	assert.ErrorIs(t, err, ErrSourceMissing)
}

func TestDeleteRemovesFile(t *testing.T) {
	store := newTestStore(t)
	filename, err := store.Put(writeSource(t, "a.png", "x"), "id")
	require.NoError(t, err)

	require.NoError(t, store.Delete(filename))
	_, err = store.Resolve(filename)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteToleratesMissing(t *testing.T) {
	store := newTestStore(t)
	assert.NoError(t, store.Delete("never-stored.png"))
	assert.NoError(t, store.Delete(""))
}

func TestResolveRejectsTraversal(t *testing.T) {
	store := newTestStore(t)

	for _, name := range []string{"../secret.png", "a/b.png", "..", ""} {
		_, err := store.Resolve(name)
		assert.ErrorIs(t, err, ErrNotFound, "name %q", name)
	}
}
