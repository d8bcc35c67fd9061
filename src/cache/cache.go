// Package cache implements the durable, size-bounded artwork cache. Artwork is
// keyed by its fingerprint. The image bytes live in a blob area (a directory or
// an S3 bucket) and an sqlite index keeps the size and the access times of
// every record. The least recently used records are evicted when the total
// size goes over the capacity.
//
// A record is visible only after both its blob and its index row are written.
// All index operations are executed one at a time by a single database worker.
package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"time"

	// Imported for its side effect of registering the sqlite3 driver.
	_ "github.com/mattn/go-sqlite3"
)

var (
	// ErrNotFound is returned by Get when there is no readable record for
	// a fingerprint.
	ErrNotFound = errors.New("artwork not in cache")

	// ErrWriteFailed is returned by Put when the record could not be stored.
	// The cache is left as it was before the call.
	ErrWriteFailed = errors.New("writing to cache failed")

	// ErrClosed is returned for operations on a closed Store.
	ErrClosed = errors.New("cache is closed")
)

// Info describes the artwork stored with Put.
type Info struct {
	Width   int
	Height  int
	Quality int

	// SourceURL is where the artwork was downloaded from.
	SourceURL string

	// Metadata is opaque to the cache and returned as it is with the record.
	Metadata []byte
}

// Record is a cached artwork.
type Record struct {
	Fingerprint string

	// Data is the image. It is nil for records returned by List.
	Data []byte

	Width        int
	Height       int
	Quality      int
	SizeBytes    int64
	CreatedAt    time.Time
	LastAccessed time.Time
	AccessCount  int64
	SourceURL    string
	Metadata     []byte
}

// Stats is a snapshot of the cache usage.
type Stats struct {
	EntryCount    int64 `json:"entry_count"`
	TotalBytes    int64 `json:"total_bytes"`
	CapacityBytes int64 `json:"capacity_bytes"`
	TotalAccesses int64 `json:"total_accesses"`
}

// Store is the artwork cache. It is safe for concurrent use.
type Store struct {
	db       *sql.DB
	blobs    Blobs
	capacity int64
	now      func() time.Time

	ctx        context.Context
	cancel     context.CancelFunc
	dbExecutes chan databaseExecutable
	workerDone chan struct{}
}

// Open opens or creates the cache index at dbPath and brings its schema up to
// date with the migrations in sqlFiles. Index rows whose blobs are missing and
// blobs without index rows are removed. Finally records are evicted until the
// cache fits in capacityBytes.
func Open(
	ctx context.Context,
	dbPath string,
	sqlFiles fs.FS,
	blobs Blobs,
	capacityBytes int64,
) (*Store, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("creating cache directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening cache index: %w", err)
	}

	if err := applyMigrations(db, sqlFiles); err != nil {
		db.Close()
		return nil, err
	}

	s := newStore(ctx, db, blobs, capacityBytes)

	if err := s.sweep(ctx); err != nil {
		s.Close()
		return nil, fmt.Errorf("checking cache consistency: %w", err)
	}

	if _, err := s.EvictIfOverCapacity(ctx); err != nil {
		s.Close()
		return nil, fmt.Errorf("initial cache eviction: %w", err)
	}

	return s, nil
}

// newStore starts the database worker for an already migrated db.
func newStore(
	ctx context.Context,
	db *sql.DB,
	blobs Blobs,
	capacityBytes int64,
) *Store {
	// There is only ever one user of the connection. This also makes an
	// in-memory database usable since every new connection would be an
	// empty database.
	db.SetMaxOpenConns(1)

	ctx, cancel := context.WithCancel(ctx)
	s := &Store{
		db:         db,
		blobs:      blobs,
		capacity:   capacityBytes,
		now:        time.Now,
		ctx:        ctx,
		cancel:     cancel,
		dbExecutes: make(chan databaseExecutable),
		workerDone: make(chan struct{}),
	}
	go s.databaseWorker()

	return s
}

// Close stops the database worker and closes the index. Blobs are left alone.
func (s *Store) Close() error {
	s.cancel()
	<-s.workerDone
	return s.db.Close()
}

// Capacity returns the maximum total size of the cached images in bytes.
func (s *Store) Capacity() int64 {
	return s.capacity
}

// Get returns the record for fp or ErrNotFound. It marks the record as the
// most recently used one. A record whose blob can no longer be read is dropped
// and reported as missing.
func (s *Store) Get(ctx context.Context, fp string) (Record, error) {
	var rec Record

	work := func(db *sql.DB) error {
		row := db.QueryRow(`
			SELECT
				fingerprint, size_bytes, width, height, quality,
				created_at, last_accessed, access_count, source_url, metadata
			FROM artworks
			WHERE fingerprint = ?
		`, fp)

		var err error
		rec, err = scanRecord(row)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		} else if err != nil {
			return fmt.Errorf("querying cache index: %w", err)
		}

		rec.Data, err = s.blobs.Read(ctx, fp)
		if errors.Is(err, ErrBlobNotFound) {
			log.Printf("Cache blob for %s is missing, dropping its record\n", fp)
			if _, err := db.Exec(`DELETE FROM artworks WHERE fingerprint = ?`, fp); err != nil {
				log.Printf("Error dropping cache record %s: %s\n", fp, err)
			}
			return ErrNotFound
		} else if err != nil {
			return fmt.Errorf("reading cache blob: %w", err)
		}

		now := s.now()
		_, err = db.Exec(`
			UPDATE artworks
			SET last_accessed = ?, access_count = access_count + 1
			WHERE fingerprint = ?
		`, now.UnixNano(), fp)
		if err != nil {
			return fmt.Errorf("updating access time: %w", err)
		}

		rec.LastAccessed = now
		rec.AccessCount++
		return nil
	}

	if err := s.executeDBJobAndWait(ctx, work); err != nil {
		return Record{}, err
	}

	return rec, nil
}

// Put stores data under fp. It does nothing when fp is already cached. The
// blob is written durably before the index row is committed. On failure an
// error wrapping ErrWriteFailed is returned and nothing is left in the cache.
//
// Put never evicts. Call EvictIfOverCapacity afterwards.
func (s *Store) Put(ctx context.Context, fp string, data []byte, info Info) error {
	if fp == "" {
		return fmt.Errorf("%w: empty fingerprint", ErrWriteFailed)
	}

	exists, err := s.exists(ctx, fp)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	if exists {
		return nil
	}

	if err := s.blobs.Write(ctx, fp, data); err != nil {
		return fmt.Errorf("%w: blob: %w", ErrWriteFailed, err)
	}

	metadata := string(info.Metadata)
	work := func(db *sql.DB) error {
		now := s.now().UnixNano()
		_, err := db.Exec(`
			INSERT OR IGNORE INTO artworks (
				fingerprint, size_bytes, width, height, quality,
				created_at, last_accessed, access_count, source_url, metadata
			) VALUES (?, ?, ?, ?, ?, ?, ?, 0, ?, ?)
		`,
			fp, int64(len(data)), info.Width, info.Height, info.Quality,
			now, now, info.SourceURL, metadata,
		)
		return err
	}

	if err := s.executeDBJobAndWait(ctx, work); err != nil {
		if rmErr := s.blobs.Remove(context.WithoutCancel(ctx), fp); rmErr != nil {
			log.Printf("Error removing cache blob %s after failed write: %s\n", fp, rmErr)
		}
		return fmt.Errorf("%w: index: %w", ErrWriteFailed, err)
	}

	return nil
}

func (s *Store) exists(ctx context.Context, fp string) (bool, error) {
	var found bool
	work := func(db *sql.DB) error {
		var one int
		err := db.QueryRow(
			`SELECT 1 FROM artworks WHERE fingerprint = ?`, fp,
		).Scan(&one)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		} else if err != nil {
			return fmt.Errorf("querying cache index: %w", err)
		}
		found = true
		return nil
	}

	if err := s.executeDBJobAndWait(ctx, work); err != nil {
		return false, err
	}
	return found, nil
}

// EvictIfOverCapacity removes the least recently used records until the total
// size of the cache is not above its capacity. Records which were never read
// are ordered by their creation time. It returns the number of removed records.
//
// Every record is removed together with its blob in a single database job so
// concurrent Gets see either the whole record or nothing.
func (s *Store) EvictIfOverCapacity(ctx context.Context) (int, error) {
	var evicted int

	work := func(db *sql.DB) error {
		var total int64
		err := db.QueryRow(
			`SELECT COALESCE(SUM(size_bytes), 0) FROM artworks`,
		).Scan(&total)
		if err != nil {
			return fmt.Errorf("querying cache size: %w", err)
		}

		for total > s.capacity {
			var (
				fp   string
				size int64
			)
			err := db.QueryRow(`
				SELECT fingerprint, size_bytes
				FROM artworks
				ORDER BY last_accessed ASC, created_at ASC, fingerprint ASC
				LIMIT 1
			`).Scan(&fp, &size)
			if errors.Is(err, sql.ErrNoRows) {
				return nil
			} else if err != nil {
				return fmt.Errorf("finding least recently used: %w", err)
			}

			if _, err := db.Exec(`DELETE FROM artworks WHERE fingerprint = ?`, fp); err != nil {
				return fmt.Errorf("removing cache record: %w", err)
			}

			if err := s.blobs.Remove(ctx, fp); err != nil {
				log.Printf("Error removing evicted cache blob %s: %s\n", fp, err)
			}

			total -= size
			evicted++
		}

		return nil
	}

	if err := s.executeDBJobAndWait(ctx, work); err != nil {
		return evicted, err
	}

	if evicted > 0 {
		log.Printf("Evicted %d artworks from the cache\n", evicted)
	}

	return evicted, nil
}

// Stats returns the current cache usage.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	stats := Stats{CapacityBytes: s.capacity}

	work := func(db *sql.DB) error {
		return db.QueryRow(`
			SELECT
				COUNT(*),
				COALESCE(SUM(size_bytes), 0),
				COALESCE(SUM(access_count), 0)
			FROM artworks
		`).Scan(&stats.EntryCount, &stats.TotalBytes, &stats.TotalAccesses)
	}

	if err := s.executeDBJobAndWait(ctx, work); err != nil {
		return Stats{}, fmt.Errorf("querying cache stats: %w", err)
	}

	return stats, nil
}

// List returns all records without their image data. The most recently used
// records are first.
func (s *Store) List(ctx context.Context) ([]Record, error) {
	var records []Record

	work := func(db *sql.DB) error {
		rows, err := db.Query(`
			SELECT
				fingerprint, size_bytes, width, height, quality,
				created_at, last_accessed, access_count, source_url, metadata
			FROM artworks
			ORDER BY last_accessed DESC, created_at DESC, fingerprint ASC
		`)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			rec, err := scanRecord(rows)
			if err != nil {
				return err
			}
			records = append(records, rec)
		}

		return rows.Err()
	}

	if err := s.executeDBJobAndWait(ctx, work); err != nil {
		return nil, fmt.Errorf("listing cache: %w", err)
	}

	return records, nil
}

// Clear removes every record and its blob.
func (s *Store) Clear(ctx context.Context) error {
	work := func(db *sql.DB) error {
		fps, err := queryFingerprints(db)
		if err != nil {
			return err
		}

		if _, err := db.Exec(`DELETE FROM artworks`); err != nil {
			return fmt.Errorf("deleting cache records: %w", err)
		}

		for _, fp := range fps {
			if err := s.blobs.Remove(ctx, fp); err != nil {
				log.Printf("Error removing cache blob %s: %s\n", fp, err)
			}
		}

		log.Printf("Cleared %d artworks from the cache\n", len(fps))
		return nil
	}

	return s.executeDBJobAndWait(ctx, work)
}

// sweep drops the index rows without blobs and the blobs without index rows.
func (s *Store) sweep(ctx context.Context) error {
	work := func(db *sql.DB) error {
		fps, err := queryFingerprints(db)
		if err != nil {
			return err
		}

		indexed := make(map[string]struct{}, len(fps))
		for _, fp := range fps {
			ok, err := s.blobs.Exists(ctx, fp)
			if err != nil {
				return fmt.Errorf("checking blob %s: %w", fp, err)
			}
			if ok {
				indexed[fp] = struct{}{}
				continue
			}

			log.Printf("Cache blob for %s is missing, dropping its record\n", fp)
			if _, err := db.Exec(`DELETE FROM artworks WHERE fingerprint = ?`, fp); err != nil {
				return fmt.Errorf("dropping cache record: %w", err)
			}
		}

		keys, err := s.blobs.Keys(ctx)
		if err != nil {
			return fmt.Errorf("listing blobs: %w", err)
		}
		for _, key := range keys {
			if _, ok := indexed[key]; ok {
				continue
			}
			log.Printf("Removing cache blob %s without a record\n", key)
			if err := s.blobs.Remove(ctx, key); err != nil {
				log.Printf("Error removing cache blob %s: %s\n", key, err)
			}
		}

		return nil
	}

	return s.executeDBJobAndWait(ctx, work)
}

func queryFingerprints(db *sql.DB) ([]string, error) {
	rows, err := db.Query(`SELECT fingerprint FROM artworks`)
	if err != nil {
		return nil, fmt.Errorf("querying cache index: %w", err)
	}
	defer rows.Close()

	var fps []string
	for rows.Next() {
		var fp string
		if err := rows.Scan(&fp); err != nil {
			return nil, fmt.Errorf("scanning fingerprint: %w", err)
		}
		fps = append(fps, fp)
	}

	return fps, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (Record, error) {
	var (
		rec          Record
		createdAt    int64
		lastAccessed int64
		metadata     string
	)

	err := row.Scan(
		&rec.Fingerprint,
		&rec.SizeBytes,
		&rec.Width,
		&rec.Height,
		&rec.Quality,
		&createdAt,
		&lastAccessed,
		&rec.AccessCount,
		&rec.SourceURL,
		&metadata,
	)
	if err != nil {
		return Record{}, err
	}

	rec.CreatedAt = time.Unix(0, createdAt)
	rec.LastAccessed = time.Unix(0, lastAccessed)
	if metadata != "" {
		rec.Metadata = []byte(metadata)
	}

	return rec, nil
}
