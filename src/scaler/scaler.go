// Package scaler normalizes artwork images. Every image is center-cropped to a
// square, scaled to the requested size and re-encoded as JPEG. The work is done
// by a pool of worker goroutines so that a burst of requests does not decode
// more images at once than there are CPUs.
package scaler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"runtime"

	// The following are all image formats supported as input.
	_ "image/gif"
	_ "image/png"

	// Additional image formats from the x repository.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/vp8"
	_ "golang.org/x/image/webp"

	"golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrCancelled is returned when one is trying to interact with a stopped
	// scaler.
	ErrCancelled = errors.New("normalize operation on cancelled Scaler")

	// ErrDecode is returned when the input is not an image in any of the
	// supported formats.
	ErrDecode = errors.New("image could not be decoded")

	// ErrEncode is returned when the normalized image could not be encoded.
	ErrEncode = errors.New("image could not be encoded")
)

// DefaultQuality is the JPEG quality used when the scaler is created with an
// invalid one.
const DefaultQuality = 95

// maxPixels limits the size of the images which will be decoded at all.
const maxPixels = 12000 * 12000

// Image is a normalized artwork image.
type Image struct {
	// Data is the JPEG encoded image.
	Data    []byte
	Width   int
	Height  int
	Quality int
}

// description is a normalization instruction.
type description struct {
	// Raw is the source image in any supported format.
	Raw []byte

	// Size is the width and height of the result image.
	Size int

	// Result is the channel on which the result image is returned.
	Result chan result
}

type result struct {
	img Image
	err error
}

// Scaler is a utility type which could be used for normalizing images.
type Scaler struct {
	ctx           context.Context
	cancelContext context.CancelFunc
	quality       int

	work chan description
}

// Normalize center-crops the image in raw to a square, scales it to size x size
// pixels and encodes it as JPEG with the quality of the scaler. The result
// depends only on raw and size.
func (s *Scaler) Normalize(
	ctx context.Context,
	raw []byte,
	size int,
) (Image, error) {
	if s.ctx.Err() != nil {
		return Image{}, ErrCancelled
	}

	if size <= 0 {
		return Image{}, fmt.Errorf("%w: invalid target size %d", ErrEncode, size)
	}

	desc := description{
		Raw:    raw,
		Size:   size,
		Result: make(chan result, 1),
	}

	select {
	case s.work <- desc:
	case <-s.ctx.Done():
		return Image{}, ErrCancelled
	case <-ctx.Done():
		return Image{}, fmt.Errorf(
			"ctx done while waiting to send normalize op: %w", ctx.Err(),
		)
	}

	select {
	case res := <-desc.Result:
		return res.img, res.err
	case <-ctx.Done():
		return Image{}, fmt.Errorf("ctx done while normalizing: %w", ctx.Err())
	}
}

func (s *Scaler) worker() error {
	for {
		select {
		case <-s.ctx.Done():
			return nil
		case desc := <-s.work:
			img, err := s.normalize(desc.Raw, desc.Size)
			desc.Result <- result{img: img, err: err}
		}
	}
}

func (s *Scaler) normalize(raw []byte, size int) (Image, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return Image{}, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.Width*cfg.Height > maxPixels {
		return Image{}, fmt.Errorf("%w: unsupported dimensions %dx%d",
			ErrDecode, cfg.Width, cfg.Height)
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return Image{}, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	dst := image.NewRGBA(image.Rect(0, 0, size, size))

	draw.CatmullRom.Scale(
		dst,
		dst.Bounds(),
		img,
		CenterSquare(img.Bounds()),
		draw.Src,
		nil,
	)

	var dstJPEG bytes.Buffer
	if err := jpeg.Encode(&dstJPEG, dst, &jpeg.Options{Quality: s.quality}); err != nil {
		return Image{}, fmt.Errorf("%w: %w", ErrEncode, err)
	}

	return Image{
		Data:    dstJPEG.Bytes(),
		Width:   size,
		Height:  size,
		Quality: s.quality,
	}, nil
}

// CenterSquare returns the largest square which is centered in r.
func CenterSquare(r image.Rectangle) image.Rectangle {
	w, h := r.Dx(), r.Dy()
	side := min(w, h)

	x0 := r.Min.X + (w-side)/2
	y0 := r.Min.Y + (h-side)/2

	return image.Rect(x0, y0, x0+side, y0+side)
}

// Cancel stops the scaler and all of its operations. Users may not use
// any further methods on cancelled scalers.
func (s *Scaler) Cancel() {
	s.cancelContext()
}

// New returns a new scaler, ready for use. It stops when ctx is done. Images
// are encoded with the given JPEG quality which must be in [1, 100].
func New(ctx context.Context, quality int) *Scaler {
	ctx, cancel := context.WithCancel(ctx)

	if quality < 1 || quality > 100 {
		quality = DefaultQuality
	}

	s := &Scaler{
		ctx:           ctx,
		cancelContext: cancel,
		quality:       quality,
		work:          make(chan description),
	}

	var g errgroup.Group
	for i := 0; i < runtime.NumCPU(); i++ {
		g.Go(s.worker)
	}

	return s
}
