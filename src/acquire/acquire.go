// Package acquire resolves a search term to album artwork and publishes it.
// The Coordinator asks the providers in order, normalizes the found artwork,
// keeps it in the content cache and finally hands it to the publish target.
package acquire

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/ironsmile/artframe/src/art"
	"github.com/ironsmile/artframe/src/artwork"
	"github.com/ironsmile/artframe/src/cache"
	"github.com/ironsmile/artframe/src/retry"
	"github.com/ironsmile/artframe/src/scaler"
)

// All the errors returned by ResolveAndPublish wrap one of these.
var (
	// ErrEmptyTerm is returned for search terms without any letters.
	ErrEmptyTerm = errors.New("empty search term")

	// ErrNotFound means that no provider knows the searched music.
	ErrNotFound = errors.New("no artwork found")

	// ErrAllProvidersFailed means that at least one provider failed for a
	// reason other than not knowing the music and none succeeded.
	ErrAllProvidersFailed = errors.New("all artwork providers failed")

	// ErrBusy is returned when the caller gave up while another resolve was
	// in progress.
	ErrBusy = errors.New("another artwork resolve is in progress")

	// ErrInternal is returned for failures which are not the providers'
	// fault. For example failing to publish.
	ErrInternal = errors.New("internal error")
)

// Fetcher downloads the artwork of a candidate found by a provider.
type Fetcher interface {
	Fetch(ctx context.Context, p art.Provider, c art.Candidate) ([]byte, error)
}

// Normalizer converts raw artwork into the published image format.
type Normalizer interface {
	Normalize(ctx context.Context, raw []byte, size int) (scaler.Image, error)
}

// Cache is the content cache of normalized artwork.
type Cache interface {
	Get(ctx context.Context, fp string) (cache.Record, error)
	Put(ctx context.Context, fp string, data []byte, info cache.Info) error
	EvictIfOverCapacity(ctx context.Context) (int, error)
}

// Publisher makes artwork visible to the renderer.
type Publisher interface {
	Publish(image []byte, md artwork.Metadata) error
}

// Options holds everything a Coordinator needs.
type Options struct {
	Providers  []art.Provider
	Fetcher    Fetcher
	Normalizer Normalizer
	Cache      Cache
	Target     Publisher

	// Size is the side of the published square image in pixels.
	Size int

	// Retry is used for every provider search and every download.
	Retry retry.Policy

	// HintEntries is how many search terms are remembered together with the
	// artwork they resolved to. HintTTL is for how long.
	HintEntries int
	HintTTL     time.Duration
}

// hint is what a search term resolved to last time.
type hint struct {
	fingerprint string
	metadata    artwork.Metadata
}

// Coordinator runs the resolve and publish pipeline. Resolves are queued and
// run one at a time so two of them never publish at the same time.
type Coordinator struct {
	providers  []art.Provider
	fetcher    Fetcher
	normalizer Normalizer
	cache      Cache
	target     Publisher
	size       int
	policy     retry.Policy

	hints *expirable.LRU[string, hint]
	slot  chan struct{}
}

// New returns a Coordinator configured with opts.
func New(opts Options) *Coordinator {
	policy := opts.Retry
	if policy.Retryable == nil {
		policy.Retryable = art.Retryable
	}

	hintEntries := opts.HintEntries
	if hintEntries <= 0 {
		hintEntries = 100
	}

	return &Coordinator{
		providers:  opts.Providers,
		fetcher:    opts.Fetcher,
		normalizer: opts.Normalizer,
		cache:      opts.Cache,
		target:     opts.Target,
		size:       opts.Size,
		policy:     policy,
		hints:      expirable.NewLRU[string, hint](hintEntries, nil, opts.HintTTL),
		slot:       make(chan struct{}, 1),
	}
}

// ResolveAndPublish finds artwork for term and publishes it. When another
// resolve is in progress the call waits for it. If ctx is done while waiting
// ErrBusy is returned. Once started the resolve is not cancelled by ctx. On
// error the published artwork is left as it was.
func (c *Coordinator) ResolveAndPublish(
	ctx context.Context,
	term string,
) (artwork.Metadata, error) {
	term = artwork.NormalizeTerm(term)
	if term == "" {
		return artwork.Metadata{}, ErrEmptyTerm
	}

	select {
	case c.slot <- struct{}{}:
	case <-ctx.Done():
		return artwork.Metadata{}, fmt.Errorf("%w: %w", ErrBusy, ctx.Err())
	}
	defer func() { <-c.slot }()

	return c.resolve(context.WithoutCancel(ctx), term)
}

// ForgetHints drops all remembered search terms.
func (c *Coordinator) ForgetHints() {
	c.hints.Purge()
}

func (c *Coordinator) resolve(ctx context.Context, term string) (artwork.Metadata, error) {
	key := artwork.TermKey(term)

	if md, ok := c.publishFromHint(ctx, key); ok {
		log.Printf("Published cached artwork for `%s`\n", term)
		return md, nil
	}

	var (
		errs        []error
		allNotFound = true
	)
	for _, provider := range c.providers {
		image, md, err := c.acquire(ctx, provider, term)
		if errors.Is(err, scaler.ErrCancelled) {
			return artwork.Metadata{}, fmt.Errorf("%w: %w", ErrInternal, err)
		}
		if err != nil {
			log.Printf("Provider %s for `%s`: %s\n", provider.Name(), term, err)
			errs = append(errs, fmt.Errorf("%s: %w", provider.Name(), err))
			if !errors.Is(err, art.ErrNotFound) {
				allNotFound = false
			}
			continue
		}

		if err := c.target.Publish(image, md); err != nil {
			return artwork.Metadata{}, fmt.Errorf("%w: %w", ErrInternal, err)
		}

		c.hints.Add(key, hint{fingerprint: md.Fingerprint, metadata: md})
		log.Printf("Published artwork for `%s` from %s\n", term, provider.Name())
		return md, nil
	}

	if len(errs) == 0 {
		return artwork.Metadata{}, fmt.Errorf("%w: no providers configured", ErrNotFound)
	}

	if allNotFound {
		return artwork.Metadata{}, fmt.Errorf("%w: %w", ErrNotFound, errors.Join(errs...))
	}

	return artwork.Metadata{}, fmt.Errorf(
		"%w: %w", ErrAllProvidersFailed, errors.Join(errs...),
	)
}

// publishFromHint publishes what the term resolved to last time, provided that
// its artwork is still cached.
func (c *Coordinator) publishFromHint(ctx context.Context, key string) (artwork.Metadata, bool) {
	h, ok := c.hints.Get(key)
	if !ok {
		return artwork.Metadata{}, false
	}

	rec, err := c.cache.Get(ctx, h.fingerprint)
	if errors.Is(err, cache.ErrNotFound) {
		c.hints.Remove(key)
		return artwork.Metadata{}, false
	} else if err != nil {
		log.Printf("Reading cached artwork %s: %s\n", h.fingerprint, err)
		return artwork.Metadata{}, false
	}

	if err := c.target.Publish(rec.Data, h.metadata); err != nil {
		log.Printf("Publishing cached artwork %s: %s\n", h.fingerprint, err)
		return artwork.Metadata{}, false
	}

	return h.metadata, true
}

// acquire searches a single provider and returns the normalized artwork of
// its best match together with the metadata to publish.
func (c *Coordinator) acquire(
	ctx context.Context,
	provider art.Provider,
	term string,
) ([]byte, artwork.Metadata, error) {
	candidate, err := retry.Do(ctx, c.policy, func(ctx context.Context) (art.Candidate, error) {
		return provider.Search(ctx, term)
	})
	if err != nil {
		return nil, artwork.Metadata{}, fmt.Errorf("searching: %w", err)
	}
	if candidate.ArtworkURL == "" {
		return nil, artwork.Metadata{}, fmt.Errorf("match without artwork: %w", art.ErrNotFound)
	}

	fp := artwork.Fingerprint(candidate.ArtworkURL, c.size)
	md := candidate.Metadata()
	md.Fingerprint = fp

	rec, err := c.cache.Get(ctx, fp)
	if err == nil {
		return rec.Data, md, nil
	} else if !errors.Is(err, cache.ErrNotFound) {
		log.Printf("Reading cached artwork %s: %s\n", fp, err)
	}

	raw, err := retry.Do(ctx, c.policy, func(ctx context.Context) ([]byte, error) {
		return c.fetcher.Fetch(ctx, provider, candidate)
	})
	if err != nil {
		return nil, artwork.Metadata{}, fmt.Errorf("downloading artwork: %w", err)
	}

	img, err := c.normalizer.Normalize(ctx, raw, c.size)
	if err != nil {
		return nil, artwork.Metadata{}, fmt.Errorf("normalizing artwork: %w", err)
	}

	c.store(ctx, fp, img, md)
	return img.Data, md, nil
}

// store puts the normalized artwork in the cache. Failures are only logged
// since the artwork can be published without being cached.
func (c *Coordinator) store(
	ctx context.Context,
	fp string,
	img scaler.Image,
	md artwork.Metadata,
) {
	encoded, err := json.Marshal(md)
	if err != nil {
		log.Printf("Encoding metadata for the cache: %s\n", err)
	}

	info := cache.Info{
		Width:     img.Width,
		Height:    img.Height,
		Quality:   img.Quality,
		SourceURL: md.ArtworkURL,
		Metadata:  encoded,
	}

	if err := c.cache.Put(ctx, fp, img.Data, info); err != nil {
		log.Printf("Caching artwork %s: %s\n", fp, err)
		return
	}

	if evicted, err := c.cache.EvictIfOverCapacity(ctx); err != nil {
		log.Printf("Cache eviction: %s\n", err)
	} else if evicted > 0 {
		log.Printf("Evicted %d artworks from the cache\n", evicted)
	}
}
