package history

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(nil, t.TempDir())
	require.NoError(t, err)
	return store
}

func TestStoreLoadMissingReturnsEmpty(t *testing.T) {
	store := newTestStore(t)
	entries := store.Load("nope")
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestStoreSaveLoadRoundTrip(t *testing.T) {
	store := newTestStore(t)
	entries := []Entry{
		{ID: "b", Timestamp: 2, Prompt: "a cat in a hat", Metadata: map[string]any{"seed": float64(42)}},
		{ID: "a", Timestamp: 1, Prompt: "a dog", Thumbnail: "a_1.png", Metadata: map[string]any{}, Favorite: true},
	}
	require.NoError(t, store.Save("pets", entries))

	loaded := store.Load("pets")
	assert.Equal(t, entries, loaded)

	// saving what was loaded must be byte-stable
	require.NoError(t, store.Save("pets", loaded))
	assert.Equal(t, entries, store.Load("pets"))
}

func TestStoreLoadCorruptReturnsEmpty(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, os.WriteFile(store.Path("broken"), []byte("{not json"), 0o644))

	entries := store.Load("broken")
	assert.Empty(t, entries)
}

func TestStoreSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(nil, dir)
	require.NoError(t, err)
	require.NoError(t, store.Save("x", []Entry{{ID: "1", Prompt: "p"}}))

	files, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "prompt_history_x.json", files[0].Name())
}

func TestStoreSaveFailureReturnsError(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(nil, dir)
	require.NoError(t, err)
	// a directory squatting on the target path makes the final rename fail
	require.NoError(t, os.Mkdir(store.Path("bad"), 0o755))

	assert.Error(t, store.Save("bad", []Entry{{ID: "1", Prompt: "p"}}))
}

func TestStoreListNames(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Save("zeta", []Entry{}))
	require.NoError(t, store.Save("alpha", []Entry{}))
	require.NoError(t, store.Save("default", []Entry{}))
	// unrelated files are ignored
	require.NoError(t, os.WriteFile(filepath.Join(filepath.Dir(store.Path("x")), "notes.txt"), []byte("hi"), 0o644))

	names, err := store.ListNames()
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "default", "zeta"}, names)
}

func TestStorePathUsesSanitizedName(t *testing.T) {
	store := newTestStore(t)
	assert.Equal(t, filepath.Base(store.Path("my set!")), "prompt_history_myset.json")
	assert.Equal(t, filepath.Base(store.Path("")), "prompt_history_default.json")
}
