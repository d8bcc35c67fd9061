package webserver

import (
	"fmt"
	"net/http"

	"github.com/ironsmile/artframe/src/publish"
)

const qrCodeSize = 500

// NewQRHandler returns a http.Handler which serves a PNG QR code with the
// address of the control interface. The address is taken from the "address"
// query value, then from controlURL and finally from the Host of the request.
func NewQRHandler(controlURL string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		address := r.URL.Query().Get("address")
		if address == "" {
			address = controlURL
		}
		if address == "" {
			address = fmt.Sprintf("http://%s/", r.Host)
		}

		png, err := publish.ControlQR(address, qrCodeSize)
		if err != nil {
			errMsg := fmt.Sprintf("Error creating QR code: %s.", err)
			http.Error(w, errMsg, http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "image/png")
		if _, err := w.Write(png); err != nil {
			errMsg := fmt.Sprintf("Error writing out QR code: %s.", err)
			http.Error(w, errMsg, http.StatusInternalServerError)
			return
		}
	})
}
