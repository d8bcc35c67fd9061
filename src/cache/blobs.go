package cache

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/ironsmile/artframe/src/helpers"
)

// ErrBlobNotFound is returned by Blobs.Read for missing blobs.
var ErrBlobNotFound = errors.New("blob not found")

// blobExt is the extension of the blob files. All cached images are JPEGs.
const blobExt = ".jpg"

// Blobs is the storage for the cached image bytes. Keys are fingerprints.
type Blobs interface {
	// Write stores data under key durably. A reader never sees a partially
	// written blob.
	Write(ctx context.Context, key string, data []byte) error

	// Read returns the blob for key or ErrBlobNotFound.
	Read(ctx context.Context, key string) ([]byte, error)

	// Exists reports whether there is a blob for key.
	Exists(ctx context.Context, key string) (bool, error)

	// Remove deletes the blob for key. Removing a missing blob is not an
	// error.
	Remove(ctx context.Context, key string) error

	// Keys returns the keys of all stored blobs.
	Keys(ctx context.Context) ([]string, error)
}

// FSBlobs stores blobs as files in a directory. Files are spread in sub
// directories named after the first two characters of their key.
type FSBlobs struct {
	fs   afero.Fs
	root string
}

// NewFSBlobs returns Blobs which are stored under the root directory of fs.
func NewFSBlobs(fs afero.Fs, root string) *FSBlobs {
	return &FSBlobs{
		fs:   fs,
		root: root,
	}
}

func (b *FSBlobs) path(key string) (string, error) {
	if !validKey(key) {
		return "", fmt.Errorf("invalid blob key `%s`", key)
	}

	return filepath.Join(b.root, key[:2], key+blobExt), nil
}

// Write implements Blobs.
func (b *FSBlobs) Write(_ context.Context, key string, data []byte) error {
	path, err := b.path(key)
	if err != nil {
		return err
	}

	return helpers.WriteFileAtomic(b.fs, path, data, 0o644)
}

// Read implements Blobs.
func (b *FSBlobs) Read(_ context.Context, key string) ([]byte, error) {
	path, err := b.path(key)
	if err != nil {
		return nil, err
	}

	data, err := afero.ReadFile(b.fs, path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrBlobNotFound
	} else if err != nil {
		return nil, fmt.Errorf("reading blob: %w", err)
	}

	return data, nil
}

// Exists implements Blobs.
func (b *FSBlobs) Exists(_ context.Context, key string) (bool, error) {
	path, err := b.path(key)
	if err != nil {
		return false, err
	}

	return afero.Exists(b.fs, path)
}

// Remove implements Blobs.
func (b *FSBlobs) Remove(_ context.Context, key string) error {
	path, err := b.path(key)
	if err != nil {
		return err
	}

	if err := b.fs.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing blob: %w", err)
	}

	return nil
}

// Keys implements Blobs. Left over temporary files are not keys and are
// removed while walking.
func (b *FSBlobs) Keys(_ context.Context) ([]string, error) {
	var keys []string

	err := afero.Walk(b.fs, b.root, func(path string, info os.FileInfo, err error) error {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		} else if err != nil {
			return err
		}

		if info.IsDir() {
			return nil
		}

		name := info.Name()
		if strings.HasPrefix(name, ".") {
			_ = b.fs.Remove(path)
			return nil
		}

		key := strings.TrimSuffix(name, blobExt)
		if key == name || !validKey(key) {
			return nil
		}

		keys = append(keys, key)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking blob directory: %w", err)
	}

	return keys, nil
}

// validKey reports whether key is usable as a file name and object key. Cache
// keys are hex encoded fingerprints.
func validKey(key string) bool {
	if len(key) < 2 {
		return false
	}

	for _, r := range key {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r == '-' || r == '_':
		default:
			return false
		}
	}

	return true
}
