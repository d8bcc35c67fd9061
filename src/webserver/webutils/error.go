// Package webutils contains helpers for writing the JSON responses of the
// control API.
package webutils

import (
	"encoding/json"
	"log"
	"net/http"
)

// JSONError writes a JSON object with an error message and sets the HTTP status code.
func JSONError(w http.ResponseWriter, message string, statusCode int) {
	JSONResponse(w, jsonErrorMessage{Message: message}, statusCode)
}

// JSONResponse writes resp encoded as JSON with the HTTP status code.
func JSONResponse(w http.ResponseWriter, resp any, statusCode int) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)

	enc := json.NewEncoder(w)
	if err := enc.Encode(resp); err != nil {
		log.Printf("error writing JSON response body: %s", err)
	}
}

type jsonErrorMessage struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
