package webserver

import (
	"errors"
	"net/http"

	"github.com/ironsmile/artframe/src/acquire"
	"github.com/ironsmile/artframe/src/artwork"
	"github.com/ironsmile/artframe/src/cache"
	"github.com/ironsmile/artframe/src/publish"
	"github.com/ironsmile/artframe/src/webserver/webutils"
)

// response is the JSON object returned by the control API. Only the fields
// relevant for the endpoint are set.
type response struct {
	Success  bool              `json:"success"`
	Message  string            `json:"message,omitempty"`
	Metadata *artwork.Metadata `json:"metadata,omitempty"`
	Status   artwork.Status    `json:"status,omitempty"`
	Stats    *cache.Stats      `json:"stats,omitempty"`
	Entries  []cacheEntry      `json:"entries,omitempty"`
}

// cacheEntry describes a single cached artwork. Times are Unix timestamps in
// seconds.
type cacheEntry struct {
	Fingerprint  string `json:"fingerprint"`
	SizeBytes    int64  `json:"size_bytes"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	Quality      int    `json:"quality"`
	CreatedAt    int64  `json:"created_at"`
	LastAccessed int64  `json:"last_accessed"`
	AccessCount  int64  `json:"access_count"`
	SourceURL    string `json:"source_url,omitempty"`

	Metadata *artwork.Metadata `json:"metadata,omitempty"`
}

// errorStatus returns the HTTP status code for an error of the controller.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, acquire.ErrEmptyTerm):
		return http.StatusBadRequest
	case errors.Is(err, acquire.ErrNotFound),
		errors.Is(err, publish.ErrNothingPublished):
		return http.StatusNotFound
	case errors.Is(err, acquire.ErrBusy):
		return http.StatusServiceUnavailable
	case errors.Is(err, acquire.ErrAllProvidersFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// writeError writes err as JSON with a status code depending on its kind.
func writeError(w http.ResponseWriter, err error) {
	webutils.JSONError(w, err.Error(), errorStatus(err))
}

func writeOK(w http.ResponseWriter, resp response) {
	resp.Success = true
	webutils.JSONResponse(w, resp, http.StatusOK)
}
