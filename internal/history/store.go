package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
)

const (
	filePrefix = "prompt_history_"
	fileSuffix = ".json"
)

// Store persists histories as one pretty-printed JSON array per history,
// named prompt_history_<sanitized name>.json under the root directory.
// Every save is a full overwrite; there is no append log and no cache.
type Store struct {
	root   string
	logger *slog.Logger
}

// NewStore creates a history store rooted at dir, creating it if needed.
func NewStore(log *slog.Logger, dir string) (*Store, error) {
	if log == nil {
		log = slog.Default()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}
	return &Store{
		root:   dir,
		logger: log.With(slog.String("store", "history")),
	}, nil
}

// Path returns the file a history name maps to.
func (s *Store) Path(name string) string {
	return filepath.Join(s.root, filePrefix+SanitizeName(name)+fileSuffix)
}

// Load reads the named history. A missing file is an empty history, and so
// is a file that no longer decodes: corruption is logged and tolerated, never
// surfaced as an error (the next save overwrites it).
func (s *Store) Load(name string) []Entry {
	path := s.Path(name)
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("history read failed", slog.String("path", path), slog.Any("error", err))
		}
		return []Entry{}
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		s.logger.Warn("history decode failed, returning empty list", slog.String("path", path), slog.Any("error", err))
		return []Entry{}
	}
	if entries == nil {
		entries = []Entry{}
	}
	return entries
}

// Save overwrites the named history with the full entry list. The write goes
// through a uniquely named temp file in the same directory and a rename, so a
// crash mid-write never leaves a half-written history behind.
func (s *Store) Save(name string, entries []Entry) error {
	if entries == nil {
		entries = []Entry{}
	}
	data, err := json.MarshalIndent(entries, "", "    ")
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	path := s.Path(name)
	tmp := filepath.Join(s.root, "."+uuid.NewString()+".tmp")
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write history: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace history: %w", err)
	}
	return nil
}

// ListNames enumerates the stored history names, sorted ascending.
func (s *Store) ListNames() ([]string, error) {
	dirEntries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("list histories: %w", err)
	}
	names := []string{}
	for _, de := range dirEntries {
		if de.IsDir() {
			continue
		}
		fn := de.Name()
		if !strings.HasPrefix(fn, filePrefix) || !strings.HasSuffix(fn, fileSuffix) {
			continue
		}
		names = append(names, strings.TrimSuffix(strings.TrimPrefix(fn, filePrefix), fileSuffix))
	}
	sort.Strings(names)
	return names, nil
}
