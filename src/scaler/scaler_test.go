package scaler_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
	"time"

	"github.com/ironsmile/artframe/src/assert"
	"github.com/ironsmile/artframe/src/scaler"
)

var (
	red   = color.RGBA{R: 255, A: 255}
	green = color.RGBA{G: 255, A: 255}
	blue  = color.RGBA{B: 255, A: 255}
)

// stripedPNG returns a w x h PNG image which is red in its left quarter, blue
// in its right quarter and green in between.
func stripedPNG(t *testing.T, w, h int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		c := green
		switch {
		case x < w/4:
			c = red
		case x >= w-w/4:
			c = blue
		}
		for y := 0; y < h; y++ {
			img.Set(x, y, c)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding test image: %s", err)
	}
	return buf.Bytes()
}

// isGreenish is tolerant to the JPEG compression artifacts.
func isGreenish(c color.Color) bool {
	r, g, b, _ := c.RGBA()
	return g>>8 > 200 && r>>8 < 60 && b>>8 < 60
}

// TestNormalizeCropsAndScales makes a landscape image with coloured side stripes
// and checks that the stripes are cropped away and the result is square.
func TestNormalizeCropsAndScales(t *testing.T) {
	sclr := scaler.New(context.Background(), 95)
	defer sclr.Cancel()

	// 400x200: the centered square is x in [100, 300), all green.
	raw := stripedPNG(t, 400, 200)

	img, err := sclr.Normalize(context.Background(), raw, 64)
	assert.NilErr(t, err)

	assert.Equal(t, 64, img.Width)
	assert.Equal(t, 64, img.Height)
	assert.Equal(t, 95, img.Quality)

	decoded, err := jpeg.Decode(bytes.NewReader(img.Data))
	assert.NilErr(t, err, "result is not a JPEG")

	bounds := decoded.Bounds()
	assert.Equal(t, 64, bounds.Dx())
	assert.Equal(t, 64, bounds.Dy())

	for _, pt := range []image.Point{
		{2, 2}, {61, 2}, {2, 61}, {61, 61}, {32, 32},
	} {
		if c := decoded.At(pt.X, pt.Y); !isGreenish(c) {
			t.Errorf("pixel at %v was expected to be green but it is %v", pt, c)
		}
	}
}

// TestNormalizeIsDeterministic checks that the same input always produces the
// same bytes.
func TestNormalizeIsDeterministic(t *testing.T) {
	sclr := scaler.New(context.Background(), 80)
	defer sclr.Cancel()

	raw := stripedPNG(t, 120, 300)

	first, err := sclr.Normalize(context.Background(), raw, 50)
	assert.NilErr(t, err)

	second, err := sclr.Normalize(context.Background(), raw, 50)
	assert.NilErr(t, err)

	assert.BytesEqual(t, first.Data, second.Data)
}

// TestNormalizeErrors checks the error classification of bad inputs.
func TestNormalizeErrors(t *testing.T) {
	sclr := scaler.New(context.Background(), 0)
	defer sclr.Cancel()

	tests := []struct {
		desc     string
		raw      []byte
		size     int
		expected error
	}{
		{
			desc:     "not an image",
			raw:      []byte("not actually an image"),
			size:     100,
			expected: scaler.ErrDecode,
		},
		{
			desc:     "empty input",
			raw:      nil,
			size:     100,
			expected: scaler.ErrDecode,
		},
		{
			desc:     "truncated png",
			raw:      stripedPNG(t, 50, 50)[:60],
			size:     100,
			expected: scaler.ErrDecode,
		},
		{
			desc:     "invalid size",
			raw:      stripedPNG(t, 50, 50),
			size:     0,
			expected: scaler.ErrEncode,
		},
	}

	for _, test := range tests {
		t.Run(test.desc, func(t *testing.T) {
			_, err := sclr.Normalize(context.Background(), test.raw, test.size)
			assert.ErrorIs(t, err, test.expected)
		})
	}
}

// TestCenterSquare checks the crop rectangle for various shapes.
func TestCenterSquare(t *testing.T) {
	tests := []struct {
		desc     string
		in       image.Rectangle
		expected image.Rectangle
	}{
		{"square", image.Rect(0, 0, 10, 10), image.Rect(0, 0, 10, 10)},
		{"landscape", image.Rect(0, 0, 300, 100), image.Rect(100, 0, 200, 100)},
		{"portrait", image.Rect(0, 0, 100, 301), image.Rect(0, 100, 100, 200)},
		{"offset", image.Rect(10, 20, 50, 40), image.Rect(20, 20, 40, 40)},
	}

	for _, test := range tests {
		t.Run(test.desc, func(t *testing.T) {
			assert.Equal(t, test.expected, scaler.CenterSquare(test.in))
		})
	}
}

// TestScalerCancel makes sure that the Scaler is not usable after cancel and that
// cancel actually stops its workers.
func TestScalerCancel(t *testing.T) {
	tests := []struct {
		desc            string
		cancelledScaler func() *scaler.Scaler
	}{
		{
			desc: "cancelled after using its own cancel func",
			cancelledScaler: func() *scaler.Scaler {
				ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
				defer cancel()

				sclr := scaler.New(ctx, 95)
				sclr.Cancel()
				return sclr
			},
		},
		{
			desc: "cancelled after its context is cancelled",
			cancelledScaler: func() *scaler.Scaler {
				ctx, cancel := context.WithCancel(context.Background())

				sclr := scaler.New(ctx, 95)
				cancel()
				return sclr
			},
		},
	}

	for _, test := range tests {
		t.Run(test.desc, func(t *testing.T) {
			sclr := test.cancelledScaler()

			_, err := sclr.Normalize(context.Background(), stripedPNG(t, 10, 10), 5)
			if !errors.Is(err, scaler.ErrCancelled) {
				t.Errorf("using cancelled scaler did not cause scaler.ErrCancelled: %v", err)
			}
		})
	}
}
