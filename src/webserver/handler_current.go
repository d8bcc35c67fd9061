package webserver

import (
	"bytes"
	"net/http"
	"time"

	"github.com/ironsmile/artframe/src/control"
)

// NewCurrentHandler returns a http.Handler which responds with the metadata of
// the displayed artwork.
func NewCurrentHandler(ctrl control.Controller) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		md, err := ctrl.Current(req.Context())
		if err != nil {
			writeError(w, err)
			return
		}

		writeOK(w, response{Metadata: &md})
	})
}

// NewCurrentArtworkHandler returns a http.Handler which serves the displayed
// image itself.
func NewCurrentArtworkHandler(ctrl control.Controller) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		img, err := ctrl.CurrentImage(req.Context())
		if err != nil {
			writeError(w, err)
			return
		}

		w.Header().Set("Content-Type", "image/jpeg")
		w.Header().Set("Cache-Control", "no-cache")
		http.ServeContent(w, req, "current.jpg", time.Time{}, bytes.NewReader(img))
	})
}
