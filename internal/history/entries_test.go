package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleEntries() []Entry {
	return []Entry{
		{ID: "3", Prompt: "c", Thumbnail: "c.png"},
		{ID: "2", Prompt: "b"},
		{ID: "1", Prompt: "a", Favorite: true},
	}
}

func TestRemoveByID(t *testing.T) {
	entries, removed, found := removeByID(sampleEntries(), "2")
	assert.True(t, found)
	assert.Equal(t, "b", removed.Prompt)
	assert.Equal(t, []string{"3", "1"}, ids(entries))

	entries, _, found = removeByID(sampleEntries(), "nope")
	assert.False(t, found)
	assert.Len(t, entries, 3)
}

func TestClearThumbnail(t *testing.T) {
	entries := sampleEntries()
	previous, found := clearThumbnail(entries, "3")
	assert.True(t, found)
	assert.Equal(t, "c.png", previous)
	assert.Empty(t, entries[0].Thumbnail)

	_, found = clearThumbnail(entries, "nope")
	assert.False(t, found)
}

func TestToggleFavorite(t *testing.T) {
	entries := sampleEntries()

	v, found := toggleFavorite(entries, "2")
	assert.True(t, found)
	assert.True(t, v)

	v, found = toggleFavorite(entries, "2")
	assert.True(t, found)
	assert.False(t, v)

	_, found = toggleFavorite(entries, "nope")
	assert.False(t, found)
}

func ids(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}
