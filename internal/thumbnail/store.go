// Package thumbnail manages the directory of thumbnail images attached to
// prompt history entries.
package thumbnail

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrSourceMissing reports that the image to copy in does not exist.
	ErrSourceMissing = errors.New("source image not found")
	// ErrNotFound reports that no stored thumbnail matches the filename.
	ErrNotFound = errors.New("thumbnail not found")
)

// Store keeps thumbnail files in a single managed directory. Files are named
// <id><original extension>; the id is chosen by the caller.
type Store struct {
	dir    string
	logger *slog.Logger
}

// NewStore creates a thumbnail store at dir, creating it if needed.
func NewStore(log *slog.Logger, dir string) (*Store, error) {
	if log == nil {
		log = slog.Default()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create thumbnail dir: %w", err)
	}
	return &Store{
		dir:    dir,
		logger: log.With(slog.String("store", "thumbnail")),
	}, nil
}

// Put copies the image at sourcePath into the store under id, preserving the
// source extension and modification time. Returns the stored filename.
func (s *Store) Put(sourcePath, id string) (string, error) {
	info, err := os.Stat(sourcePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrSourceMissing
		}
		return "", fmt.Errorf("stat source image: %w", err)
	}

	filename := id + filepath.Ext(sourcePath)
	target := filepath.Join(s.dir, filename)

	src, err := os.Open(sourcePath)
	if err != nil {
		return "", fmt.Errorf("open source image: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("create thumbnail: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		_ = os.Remove(target)
		return "", fmt.Errorf("copy thumbnail: %w", err)
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(target)
		return "", fmt.Errorf("close thumbnail: %w", err)
	}
	// carry the source mtime over, like a plain file copy would
	if err := os.Chtimes(target, info.ModTime(), info.ModTime()); err != nil {
		s.logger.Warn("could not set thumbnail mtime", slog.String("file", filename), slog.Any("error", err))
	}

	s.logger.Info("thumbnail stored", slog.String("file", filename))
	return filename, nil
}

// Delete removes the named thumbnail file. A missing file is not an error.
func (s *Store) Delete(filename string) error {
	if filename == "" {
		return nil
	}
	path, err := s.Resolve(filename)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return err
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("remove thumbnail: %w", err)
	}
	s.logger.Info("thumbnail deleted", slog.String("file", filename))
	return nil
}

// Resolve returns the absolute path of a stored thumbnail, or ErrNotFound.
// Filenames containing path separators or parent references never resolve.
func (s *Store) Resolve(filename string) (string, error) {
	if filename == "" || filename != filepath.Base(filename) || strings.Contains(filename, "..") {
		return "", ErrNotFound
	}
	path := filepath.Join(s.dir, filename)
	if _, err := os.Stat(path); err != nil {
		return "", ErrNotFound
	}
	return path, nil
}
