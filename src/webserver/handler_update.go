package webserver

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/ironsmile/artframe/src/control"
	"github.com/ironsmile/artframe/src/webserver/webutils"
)

// updateRequest is the body of a POST /update request.
type updateRequest struct {
	Search string `json:"search"`
}

// NewUpdateHandler returns a http.Handler which changes the displayed artwork
// to the one found for the searched music.
func NewUpdateHandler(ctrl control.Controller) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		var updateReq updateRequest
		dec := json.NewDecoder(req.Body)
		if err := dec.Decode(&updateReq); err != nil {
			webutils.JSONError(
				w,
				fmt.Sprintf("Cannot decode update JSON: %s", err),
				http.StatusBadRequest,
			)
			return
		}

		// Resolving through all providers with retries may take longer than
		// the server timeouts. The client still has to get a JSON answer.
		rc := http.NewResponseController(w)
		_ = rc.SetReadDeadline(time.Time{})
		_ = rc.SetWriteDeadline(time.Time{})

		md, err := ctrl.Update(req.Context(), updateReq.Search)
		if err != nil {
			log.Printf("Update for `%s` failed: %s\n", updateReq.Search, err)
			writeError(w, err)
			return
		}

		writeOK(w, response{
			Message:  fmt.Sprintf("Now displaying %s by %s", md.Title, md.Artist),
			Metadata: &md,
		})
	})
}
