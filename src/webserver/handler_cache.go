package webserver

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/ironsmile/artframe/src/artwork"
	"github.com/ironsmile/artframe/src/cache"
	"github.com/ironsmile/artframe/src/control"
)

// NewCacheStatsHandler returns a http.Handler which responds with the usage
// of the artwork cache.
func NewCacheStatsHandler(ctrl control.Controller) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		stats, err := ctrl.CacheStats(req.Context())
		if err != nil {
			writeError(w, err)
			return
		}

		writeOK(w, response{Stats: &stats})
	})
}

// NewCacheListHandler returns a http.Handler which lists the cached artwork,
// most recently used first.
func NewCacheListHandler(ctrl control.Controller) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		records, err := ctrl.CacheList(req.Context())
		if err != nil {
			writeError(w, err)
			return
		}

		entries := make([]cacheEntry, 0, len(records))
		for _, rec := range records {
			entries = append(entries, toCacheEntry(rec))
		}

		writeOK(w, response{Entries: entries})
	})
}

// NewCacheClearHandler returns a http.Handler which empties the artwork cache.
func NewCacheClearHandler(ctrl control.Controller) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if err := ctrl.CacheClear(req.Context()); err != nil {
			writeError(w, err)
			return
		}

		writeOK(w, response{Message: "Cache cleared"})
	})
}

func toCacheEntry(rec cache.Record) cacheEntry {
	entry := cacheEntry{
		Fingerprint:  rec.Fingerprint,
		SizeBytes:    rec.SizeBytes,
		Width:        rec.Width,
		Height:       rec.Height,
		Quality:      rec.Quality,
		CreatedAt:    rec.CreatedAt.Unix(),
		LastAccessed: rec.LastAccessed.Unix(),
		AccessCount:  rec.AccessCount,
		SourceURL:    rec.SourceURL,
	}

	if len(rec.Metadata) == 0 {
		return entry
	}

	var md artwork.Metadata
	if err := json.Unmarshal(rec.Metadata, &md); err != nil {
		log.Printf("Cached metadata for %s is broken: %s\n", rec.Fingerprint, err)
		return entry
	}
	entry.Metadata = &md

	return entry
}
