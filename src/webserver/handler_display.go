package webserver

import (
	"context"
	"net/http"

	"github.com/ironsmile/artframe/src/control"
)

// NewDisplayHandler returns a http.Handler which changes the display status
// with op. On success message is returned to the client.
func NewDisplayHandler(op func(context.Context) error, message string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if err := op(req.Context()); err != nil {
			writeError(w, err)
			return
		}

		writeOK(w, response{Message: message})
	})
}

// NewStatusHandler returns a http.Handler which responds with the display
// status.
func NewStatusHandler(ctrl control.Controller) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		st, err := ctrl.Status(req.Context())
		if err != nil {
			writeError(w, err)
			return
		}

		writeOK(w, response{Status: st})
	})
}
