package publish

import (
	"fmt"
	"path/filepath"

	"github.com/skip2/go-qrcode"

	"github.com/ironsmile/artframe/src/helpers"
)

// ControlQR returns a PNG image with a QR code which encodes the address of the
// control interface. The renderer shows it so that phones can find the daemon.
func ControlQR(address string, size int) ([]byte, error) {
	if address == "" {
		return nil, fmt.Errorf("empty control address")
	}

	qr, err := qrcode.New(address, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("creating QR code: %w", err)
	}

	png, err := qr.PNG(size)
	if err != nil {
		return nil, fmt.Errorf("encoding QR code: %w", err)
	}

	return png, nil
}

// PublishControlQR writes the control QR code into the publish directory.
func (t *Target) PublishControlQR(address string, size int) error {
	if t.files.QR == "" {
		return fmt.Errorf("no QR code file name configured")
	}

	png, err := ControlQR(address, size)
	if err != nil {
		return err
	}

	path := filepath.Join(t.dir, t.files.QR)
	if err := helpers.WriteFileAtomic(t.fs, path, png, 0o644); err != nil {
		return fmt.Errorf("publishing QR code: %w", err)
	}

	return nil
}
