package publish

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/spf13/afero"

	"github.com/ironsmile/artframe/src/artwork"
)

func testFiles() Files {
	return Files{
		Image:    "current_album_art.jpg",
		Metadata: "current_metadata.json",
		Status:   "display_status.txt",
		QR:       "control_qr.png",
	}
}

// TestPublishAndCurrent publishes artwork and reads it back.
func TestPublishAndCurrent(t *testing.T) {
	target := NewTarget(afero.NewMemMapFs(), "/display", testFiles())

	if _, err := target.Current(); !errors.Is(err, ErrNothingPublished) {
		t.Fatalf("expected ErrNothingPublished before publishing but got %v", err)
	}
	if _, err := target.Image(); !errors.Is(err, ErrNothingPublished) {
		t.Fatalf("expected ErrNothingPublished for the image but got %v", err)
	}

	md := artwork.Metadata{
		Title:       "Speak to Me",
		Artist:      "Pink Floyd",
		Genre:       "Rock",
		Fingerprint: "abcdef",
	}
	image := []byte("jpeg bytes")

	if err := target.Publish(image, md); err != nil {
		t.Fatalf("publishing failed: %s", err)
	}

	found, err := target.Current()
	if err != nil {
		t.Fatalf("reading metadata failed: %s", err)
	}

	expected := md
	expected.Album = artwork.UnknownAlbum
	if found != expected {
		t.Errorf("expected metadata %+v but got %+v", expected, found)
	}

	foundImage, err := target.Image()
	if err != nil {
		t.Fatalf("reading image failed: %s", err)
	}
	if !bytes.Equal(foundImage, image) {
		t.Errorf("expected image `%s` but got `%s`", image, foundImage)
	}
}

// TestPublishDoesNotTouchStatus makes sure publishing leaves the display status
// file alone.
func TestPublishDoesNotTouchStatus(t *testing.T) {
	fs := afero.NewMemMapFs()
	target := NewTarget(fs, "/display", testFiles())
	status := NewStatusFile(fs, target.StatusPath())

	if err := status.Set(artwork.StatusPaused); err != nil {
		t.Fatalf("setting status failed: %s", err)
	}

	if err := target.Publish([]byte("img"), artwork.Metadata{Title: "t"}); err != nil {
		t.Fatalf("publishing failed: %s", err)
	}

	st, err := status.Get()
	if err != nil {
		t.Fatalf("reading status failed: %s", err)
	}
	if st != artwork.StatusPaused {
		t.Errorf("expected status %s but got %s", artwork.StatusPaused, st)
	}
}

// TestPublishLeavesNoTemporaryFiles checks that only the published files are
// left in the directory after publishing.
func TestPublishLeavesNoTemporaryFiles(t *testing.T) {
	dir := t.TempDir()
	target := NewTarget(afero.NewOsFs(), dir, testFiles())

	for i := 0; i < 3; i++ {
		md := artwork.Metadata{Title: fmt.Sprintf("title %d", i)}
		if err := target.Publish([]byte{byte(i)}, md); err != nil {
			t.Fatalf("publishing failed: %s", err)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("reading directory: %s", err)
	}

	var names []string
	for _, entry := range entries {
		names = append(names, entry.Name())
	}

	if len(names) != 2 {
		t.Errorf("expected only the image and metadata files but found %v", names)
	}
}

// TestConcurrentReadersSeeWholeFiles publishes two different artworks over and
// over while readers read the published files. A reader must never see a file
// which is not one of the complete versions.
func TestConcurrentReadersSeeWholeFiles(t *testing.T) {
	dir := t.TempDir()
	target := NewTarget(afero.NewOsFs(), dir, testFiles())

	versions := []struct {
		image []byte
		md    artwork.Metadata
	}{
		{
			image: bytes.Repeat([]byte{0xAA}, 64*1024),
			md:    artwork.Metadata{Title: "first", Artist: "a", Album: "b", Fingerprint: "1111"},
		},
		{
			image: bytes.Repeat([]byte{0x55}, 96*1024),
			md:    artwork.Metadata{Title: "second", Artist: "c", Album: "d", Fingerprint: "2222"},
		},
	}

	if err := target.Publish(versions[0].image, versions[0].md); err != nil {
		t.Fatalf("initial publish failed: %s", err)
	}

	stop := make(chan struct{})
	var wg sync.WaitGroup
	errs := make(chan error, 4)

	for r := 0; r < 2; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}

				image, err := os.ReadFile(filepath.Join(dir, testFiles().Image))
				if err != nil {
					errs <- fmt.Errorf("reading image: %w", err)
					return
				}
				if !bytes.Equal(image, versions[0].image) &&
					!bytes.Equal(image, versions[1].image) {
					errs <- fmt.Errorf("read a partial image of %d bytes", len(image))
					return
				}

				content, err := os.ReadFile(filepath.Join(dir, testFiles().Metadata))
				if err != nil {
					errs <- fmt.Errorf("reading metadata: %w", err)
					return
				}
				var md artwork.Metadata
				if err := json.Unmarshal(content, &md); err != nil {
					errs <- fmt.Errorf("read partial metadata: %w", err)
					return
				}
			}
		}()
	}

	for i := 0; i < 100; i++ {
		v := versions[i%2]
		if err := target.Publish(v.image, v.md); err != nil {
			t.Errorf("publishing failed: %s", err)
			break
		}
	}

	close(stop)
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
}

// failingRenameFs fails every rename into a file called failOn.
type failingRenameFs struct {
	afero.Fs
	failOn string
}

func (f failingRenameFs) Rename(oldname, newname string) error {
	if filepath.Base(newname) == f.failOn {
		return errors.New("disk is full")
	}
	return f.Fs.Rename(oldname, newname)
}

// TestPublishMetadataFailure makes sure a publish which could not write the
// metadata leaves the previously published artwork whole.
func TestPublishMetadataFailure(t *testing.T) {
	t.Run("previous artwork is restored", func(t *testing.T) {
		memFs := afero.NewMemMapFs()
		oldMd := artwork.Metadata{Title: "Money", Fingerprint: "old"}
		err := NewTarget(memFs, "/display", testFiles()).Publish([]byte("old image"), oldMd)
		if err != nil {
			t.Fatalf("publishing failed: %s", err)
		}

		failing := failingRenameFs{Fs: memFs, failOn: testFiles().Metadata}
		target := NewTarget(failing, "/display", testFiles())

		newMd := artwork.Metadata{Title: "Time", Fingerprint: "new"}
		if err := target.Publish([]byte("new image"), newMd); err == nil {
			t.Fatalf("expected an error when the metadata cannot be written")
		}

		image, err := target.Image()
		if err != nil {
			t.Fatalf("reading image failed: %s", err)
		}
		if string(image) != "old image" {
			t.Errorf("expected the previous image to be restored but got `%s`", image)
		}

		md, err := target.Current()
		if err != nil {
			t.Fatalf("reading metadata failed: %s", err)
		}
		if md.Fingerprint != "old" {
			t.Errorf("expected the previous metadata but got %+v", md)
		}
	})

	t.Run("nothing published before", func(t *testing.T) {
		failing := failingRenameFs{Fs: afero.NewMemMapFs(), failOn: testFiles().Metadata}
		target := NewTarget(failing, "/display", testFiles())

		md := artwork.Metadata{Title: "Time", Fingerprint: "new"}
		if err := target.Publish([]byte("new image"), md); err == nil {
			t.Fatalf("expected an error when the metadata cannot be written")
		}

		if _, err := target.Image(); !errors.Is(err, ErrNothingPublished) {
			t.Errorf("expected no published image but got %v", err)
		}
	})
}
