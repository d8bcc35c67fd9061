package publish

import (
	"errors"
	"fmt"
	"io/fs"
	"sync"

	"github.com/spf13/afero"

	"github.com/ironsmile/artframe/src/artwork"
	"github.com/ironsmile/artframe/src/helpers"
)

// StatusFile is the display status shared with the renderer.
type StatusFile struct {
	fs   afero.Fs
	path string

	mu sync.Mutex
}

// NewStatusFile returns the status file at path.
func NewStatusFile(fs afero.Fs, path string) *StatusFile {
	return &StatusFile{
		fs:   fs,
		path: path,
	}
}

// Path returns the location of the status file.
func (s *StatusFile) Path() string {
	return s.path
}

// Set atomically replaces the status.
func (s *StatusFile) Set(status artwork.Status) error {
	if _, err := artwork.ParseStatus(string(status)); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := helpers.WriteFileAtomic(s.fs, s.path, []byte(status), 0o644); err != nil {
		return fmt.Errorf("writing display status: %w", err)
	}

	return nil
}

// Get returns the current status. A missing status file means the display is
// running.
func (s *StatusFile) Get() (artwork.Status, error) {
	content, err := afero.ReadFile(s.fs, s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return artwork.StatusRunning, nil
	} else if err != nil {
		return "", fmt.Errorf("reading display status: %w", err)
	}

	return artwork.ParseStatus(string(content))
}
