// Package artwork holds the types shared by the acquisition pipeline, the cache
// and the publish target: the published metadata record, the display status
// token and the functions for deriving cache keys.
package artwork

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// Defaults used when a provider does not return a value for one of the
// mandatory metadata fields.
const (
	UnknownTitle  = "Unknown Title"
	UnknownArtist = "Unknown Artist"
	UnknownAlbum  = "Unknown Album"
)

// Metadata is what gets published next to the current artwork. Title, Artist
// and Album are always set. The rest are empty when unknown.
type Metadata struct {
	Title       string `json:"title"`
	Artist      string `json:"artist"`
	Album       string `json:"album"`
	Genre       string `json:"genre,omitempty"`
	ReleaseDate string `json:"release_date,omitempty"`
	TrackTime   string `json:"track_time,omitempty"`
	PreviewURL  string `json:"preview_url,omitempty"`
	SourceURL   string `json:"source_url,omitempty"`

	// Provider is the name of the provider which resolved this artwork.
	Provider string `json:"provider,omitempty"`

	// ArtworkURL is where the artwork was downloaded from.
	ArtworkURL string `json:"artwork_url,omitempty"`

	// Fingerprint identifies the published image. Readers may compare it
	// between two reads to find out whether the artwork changed.
	Fingerprint string `json:"fingerprint,omitempty"`
}

// WithDefaults returns a copy of md where the empty mandatory fields are
// replaced with their "Unknown" values.
func (md Metadata) WithDefaults() Metadata {
	if strings.TrimSpace(md.Title) == "" {
		md.Title = UnknownTitle
	}
	if strings.TrimSpace(md.Artist) == "" {
		md.Artist = UnknownArtist
	}
	if strings.TrimSpace(md.Album) == "" {
		md.Album = UnknownAlbum
	}
	return md
}

// FormatDuration formats a track duration in milliseconds as M:SS. Zero or
// negative durations are formatted as an empty string.
func FormatDuration(millis int64) string {
	if millis <= 0 {
		return ""
	}

	seconds := millis / 1000
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// NormalizeTerm trims the search term and collapses every run of white space
// into a single space.
func NormalizeTerm(term string) string {
	return strings.Join(strings.Fields(term), " ")
}

// TermKey is the key under which a search term is remembered. Terms which
// differ only in letter case or white space share the same key.
func TermKey(term string) string {
	return strings.ToLower(NormalizeTerm(term))
}

// Fingerprint returns the cache key for the artwork at sourceURL normalized to
// a square with side `size`. It is stable for the same URL and size.
func Fingerprint(sourceURL string, size int) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s\n%d", strings.TrimSpace(sourceURL), size)
	return hex.EncodeToString(h.Sum(nil))
}
