// Package publish writes the currently displayed artwork for the renderer. The
// renderer is a separate process which shares nothing with the daemon but a
// directory with three files: the image, its metadata and the display status.
// Every file is replaced atomically so the renderer never reads a partially
// written one.
package publish

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"

	"github.com/ironsmile/artframe/src/artwork"
	"github.com/ironsmile/artframe/src/config"
	"github.com/ironsmile/artframe/src/helpers"
)

// ErrNothingPublished is returned when there is no published artwork yet.
var ErrNothingPublished = errors.New("no artwork has been published")

// Files are the names of the published files within the publish directory.
type Files struct {
	Image    string
	Metadata string
	Status   string
	QR       string
}

// FilesFromConfig returns the file names configured in cfg.
func FilesFromConfig(cfg config.Publish) Files {
	return Files{
		Image:    cfg.ImageFile,
		Metadata: cfg.MetadataFile,
		Status:   cfg.StatusFile,
		QR:       cfg.QRFile,
	}
}

// Target is the publish directory. Publishing is serialized within the
// process. Readers in other processes rely only on the atomic renames.
type Target struct {
	fs    afero.Fs
	dir   string
	files Files

	mu sync.Mutex
}

// NewTarget returns a Target for the directory dir of fs.
func NewTarget(fs afero.Fs, dir string, files Files) *Target {
	return &Target{
		fs:    fs,
		dir:   dir,
		files: files,
	}
}

// Dir returns the publish directory.
func (t *Target) Dir() string {
	return t.dir
}

// Files returns the names of the published files.
func (t *Target) Files() Files {
	return t.files
}

// ImagePath returns the full path of the published image.
func (t *Target) ImagePath() string {
	return filepath.Join(t.dir, t.files.Image)
}

// MetadataPath returns the full path of the published metadata.
func (t *Target) MetadataPath() string {
	return filepath.Join(t.dir, t.files.Metadata)
}

// StatusPath returns the full path of the display status file.
func (t *Target) StatusPath() string {
	return filepath.Join(t.dir, t.files.Status)
}

// Publish makes image and md the current artwork. The image is replaced
// first and the metadata second, so a reader which notices new metadata is
// guaranteed to find the new image too. When the metadata could not be
// written the previous image is put back. The status file is never touched.
func (t *Target) Publish(image []byte, md artwork.Metadata) error {
	encoded, err := json.MarshalIndent(md.WithDefaults(), "", "  ")
	if err != nil {
		return fmt.Errorf("encoding metadata: %w", err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	previous, err := afero.ReadFile(t.fs, t.ImagePath())
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("reading the published image: %w", err)
	}
	hadPrevious := err == nil

	if err := helpers.WriteFileAtomic(t.fs, t.ImagePath(), image, 0o644); err != nil {
		return fmt.Errorf("publishing image: %w", err)
	}

	if err := helpers.WriteFileAtomic(t.fs, t.MetadataPath(), encoded, 0o644); err != nil {
		err = fmt.Errorf("publishing metadata: %w", err)
		if rerr := t.restoreImage(previous, hadPrevious); rerr != nil {
			return errors.Join(err, rerr)
		}
		return err
	}

	return nil
}

// restoreImage puts back the image which was published before a failed
// Publish. When there was none the new image is removed.
func (t *Target) restoreImage(previous []byte, hadPrevious bool) error {
	if !hadPrevious {
		err := t.fs.Remove(t.ImagePath())
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("removing the unpublished image: %w", err)
		}
		return nil
	}

	if err := helpers.WriteFileAtomic(t.fs, t.ImagePath(), previous, 0o644); err != nil {
		return fmt.Errorf("restoring the previous image: %w", err)
	}
	return nil
}

// Current returns the metadata of the published artwork.
func (t *Target) Current() (artwork.Metadata, error) {
	content, err := afero.ReadFile(t.fs, t.MetadataPath())
	if errors.Is(err, fs.ErrNotExist) {
		return artwork.Metadata{}, ErrNothingPublished
	} else if err != nil {
		return artwork.Metadata{}, fmt.Errorf("reading metadata: %w", err)
	}

	var md artwork.Metadata
	if err := json.Unmarshal(content, &md); err != nil {
		return artwork.Metadata{}, fmt.Errorf("decoding metadata: %w", err)
	}

	return md, nil
}

// Image returns the published image.
func (t *Target) Image() ([]byte, error) {
	data, err := afero.ReadFile(t.fs, t.ImagePath())
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNothingPublished
	} else if err != nil {
		return nil, fmt.Errorf("reading image: %w", err)
	}

	return data, nil
}
