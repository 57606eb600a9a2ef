package history

// Entry is one saved prompt within a history. Prompt text is the natural
// key: SavePrompt merges repeated saves of the same trimmed text into the
// existing entry instead of appending a duplicate.
type Entry struct {
	ID        string         `json:"id"`
	Timestamp int64          `json:"timestamp"`
	Prompt    string         `json:"prompt"`
	Thumbnail string         `json:"thumbnail,omitempty"`
	Metadata  map[string]any `json:"metadata"`
	Favorite  bool           `json:"favorite"`
}

// SaveRequest carries the inputs of a prompt save. ImagePath, when set, is
// an absolute path to an image the thumbnail store copies in. Metadata, when
// non-nil, replaces the entry's metadata wholesale.
type SaveRequest struct {
	HistoryName string
	Prompt      string
	ImagePath   string
	Metadata    map[string]any
}
