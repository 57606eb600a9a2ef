package history

// In-memory transformations over a loaded entry list. Callers own the
// load-mutate-save sequence and any thumbnail file cleanup.

// findByPrompt returns the index of the first entry with the given prompt
// text, or -1. Histories are small; a linear scan is fine.
func findByPrompt(entries []Entry, prompt string) int {
	for i := range entries {
		if entries[i].Prompt == prompt {
			return i
		}
	}
	return -1
}

// removeByID removes the entry with the given id, preserving the order of
// the rest. The removed entry is returned so its thumbnail can be cleaned up.
func removeByID(entries []Entry, id string) ([]Entry, Entry, bool) {
	for i := range entries {
		if entries[i].ID == id {
			removed := entries[i]
			return append(entries[:i], entries[i+1:]...), removed, true
		}
	}
	return entries, Entry{}, false
}

// clearThumbnail nulls the thumbnail reference of the entry with the given
// id, returning the previous filename.
func clearThumbnail(entries []Entry, id string) (previous string, found bool) {
	for i := range entries {
		if entries[i].ID == id {
			previous = entries[i].Thumbnail
			entries[i].Thumbnail = ""
			return previous, true
		}
	}
	return "", false
}

// toggleFavorite flips the favorite flag of the entry with the given id and
// returns the new value.
func toggleFavorite(entries []Entry, id string) (newValue, found bool) {
	for i := range entries {
		if entries[i].ID == id {
			entries[i].Favorite = !entries[i].Favorite
			return entries[i].Favorite, true
		}
	}
	return false, false
}
