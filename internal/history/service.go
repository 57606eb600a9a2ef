// Package history stores named, file-backed lists of prompt entries and
// implements the insert-or-merge logic over them.
package history

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// ErrEntryNotFound reports that no entry with the requested id exists.
var ErrEntryNotFound = errors.New("entry not found")

// ThumbnailStore is the part of the thumbnail store the service drives:
// attaching new thumbnails and cleaning up replaced or orphaned ones.
type ThumbnailStore interface {
	Put(sourcePath, id string) (string, error)
	Delete(filename string) error
}

// Service coordinates the history store and the thumbnail store. All
// operations reload the history from disk, mutate it in memory, and persist
// it with a full overwrite; a per-history mutex serializes that sequence so
// concurrent requests against the same history cannot lose updates.
//
// Write failures are logged and swallowed: callers see success even when a
// save did not durably complete. That matches the contract the host's
// front-end already depends on.
type Service struct {
	store  *Store
	thumbs ThumbnailStore
	logger *slog.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex

	now func() time.Time
}

// NewService creates a history service over the given stores.
func NewService(log *slog.Logger, store *Store, thumbs ThumbnailStore) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		store:  store,
		thumbs: thumbs,
		logger: log.With(slog.String("service", "history")),
		locks:  map[string]*sync.Mutex{},
		now:    time.Now,
	}
}

// List returns all entries of the named history, newest first.
func (s *Service) List(ctx context.Context, historyName string) []Entry {
	unlock := s.lock(historyName)
	defer unlock()
	return s.store.Load(historyName)
}

// ListNames returns the names of all stored histories, sorted ascending.
func (s *Service) ListNames(ctx context.Context) ([]string, error) {
	return s.store.ListNames()
}

// SavePrompt records a prompt into the named history. A prompt that is
// already present (exact match on trimmed text) is merged into: a new image
// replaces the previous thumbnail, given metadata replaces the stored
// metadata wholesale, and with neither the call is a no-op confirmation.
// A new prompt is inserted at the top of the list. Blank prompts are
// rejected silently.
func (s *Service) SavePrompt(ctx context.Context, req SaveRequest) {
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		s.logger.Warn("empty prompt text received, skipping save")
		return
	}

	unlock := s.lock(req.HistoryName)
	defer unlock()

	entries := s.store.Load(req.HistoryName)
	now := s.now().Unix()

	var thumbnailFilename string
	if req.ImagePath != "" {
		// hash+timestamp keeps the stored name unique per save event, so
		// repeated updates of one prompt never reuse a filename
		id := fmt.Sprintf("%s_%d", hashText(prompt), now)
		filename, err := s.thumbs.Put(req.ImagePath, id)
		if err != nil {
			s.logger.Warn("could not store thumbnail",
				slog.String("source", req.ImagePath), slog.Any("error", err))
		} else {
			thumbnailFilename = filename
		}
	}

	var orphan string
	if i := findByPrompt(entries, prompt); i >= 0 {
		switch {
		case thumbnailFilename != "":
			previous := entries[i].Thumbnail
			entries[i].Thumbnail = thumbnailFilename
			entries[i].Timestamp = now
			if previous != "" && previous != thumbnailFilename {
				orphan = previous
			}
			s.logger.Info("existing prompt updated",
				slog.String("id", entries[i].ID), slog.String("thumbnail", thumbnailFilename))
		case req.Metadata == nil:
			s.logger.Info("existing prompt found, awaiting image or metadata",
				slog.String("id", entries[i].ID))
		}
		if req.Metadata != nil {
			entries[i].Metadata = req.Metadata
		}
	} else {
		entry := Entry{
			ID:        hashText(fmt.Sprintf("%s%d", prompt, now)),
			Timestamp: now,
			Prompt:    prompt,
			Thumbnail: thumbnailFilename,
			Metadata:  req.Metadata,
			Favorite:  false,
		}
		if entry.Metadata == nil {
			entry.Metadata = map[string]any{}
		}
		entries = append([]Entry{entry}, entries...)
		s.logger.Info("new prompt added", slog.String("id", entry.ID))
	}

	s.persist(req.HistoryName, entries)

	// only after the entry points at the new file; a failed delete leaves an
	// orphaned file, never a dangling reference
	if orphan != "" {
		if err := s.thumbs.Delete(orphan); err != nil {
			s.logger.Warn("could not delete old thumbnail",
				slog.String("file", orphan), slog.Any("error", err))
		}
	}
}

// DeleteEntry removes the entry with the given id from the named history and
// deletes its thumbnail file, if any.
func (s *Service) DeleteEntry(ctx context.Context, historyName, id string) error {
	unlock := s.lock(historyName)
	defer unlock()

	entries := s.store.Load(historyName)
	entries, removed, found := removeByID(entries, id)
	if !found {
		return ErrEntryNotFound
	}

	s.persist(historyName, entries)

	if removed.Thumbnail != "" {
		if err := s.thumbs.Delete(removed.Thumbnail); err != nil {
			s.logger.Warn("could not delete thumbnail",
				slog.String("file", removed.Thumbnail), slog.Any("error", err))
		}
	}
	s.logger.Info("prompt entry deleted", slog.String("id", id))
	return nil
}

// ClearThumbnail detaches and deletes the thumbnail of the entry with the
// given id, leaving the entry itself in place.
func (s *Service) ClearThumbnail(ctx context.Context, historyName, id string) error {
	unlock := s.lock(historyName)
	defer unlock()

	entries := s.store.Load(historyName)
	previous, found := clearThumbnail(entries, id)
	if !found {
		return ErrEntryNotFound
	}

	s.persist(historyName, entries)

	if previous != "" {
		if err := s.thumbs.Delete(previous); err != nil {
			s.logger.Warn("could not delete thumbnail",
				slog.String("file", previous), slog.Any("error", err))
		}
	}
	s.logger.Info("thumbnail removed from entry", slog.String("id", id))
	return nil
}

// ToggleFavorite flips the favorite flag of the entry with the given id and
// returns the new value.
func (s *Service) ToggleFavorite(ctx context.Context, historyName, id string) (bool, error) {
	unlock := s.lock(historyName)
	defer unlock()

	entries := s.store.Load(historyName)
	newValue, found := toggleFavorite(entries, id)
	if !found {
		return false, ErrEntryNotFound
	}

	s.persist(historyName, entries)

	s.logger.Info("favorite status changed", slog.String("id", id), slog.Bool("favorite", newValue))
	return newValue, nil
}

// persist is the swallow point for write failures (see Service doc).
func (s *Service) persist(historyName string, entries []Entry) {
	if err := s.store.Save(historyName, entries); err != nil {
		s.logger.Error("could not save history",
			slog.String("history", SanitizeName(historyName)), slog.Any("error", err))
	}
}

// lock serializes access per sanitized history name.
func (s *Service) lock(historyName string) func() {
	name := SanitizeName(historyName)
	s.mu.Lock()
	l, ok := s.locks[name]
	if !ok {
		l = &sync.Mutex{}
		s.locks[name] = l
	}
	s.mu.Unlock()
	l.Lock()
	return l.Unlock
}

func hashText(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:16])
}
