package art

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// MaxImageSize is the biggest artwork in bytes which will be downloaded.
const MaxImageSize = 10 * 1024 * 1024

// Downloader fetches artwork images over HTTP. It is used for the candidates
// of providers which are not ArtworkFetchers.
type Downloader struct {
	// MaxBytes limits the size of the downloaded images. Bigger images fail
	// with ErrImageTooBig.
	MaxBytes int64

	useragent string
	timeout   time.Duration
	client    *http.Client
}

// NewDownloader returns a Downloader with MaxImageSize limit.
func NewDownloader(useragent string, timeout time.Duration) *Downloader {
	return &Downloader{
		MaxBytes:  MaxImageSize,
		useragent: useragent,
		timeout:   timeout,
		client:    http.DefaultClient,
	}
}

// Download returns the body of imageURL. Errors are classified the same way
// as the provider errors.
func (d *Downloader) Download(ctx context.Context, imageURL string) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating artwork download req: %w: %w",
			ErrMalformed, err)
	}
	req.Header.Set("User-Agent", d.useragent)

	reqCtx, cancel := withTimeout(ctx, d.timeout)
	defer cancel()
	req = req.WithContext(reqCtx)

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, transportError(ctx, "artwork download", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, statusError("artwork download", resp.StatusCode)
	}

	if resp.ContentLength > d.MaxBytes {
		return nil, fmt.Errorf("artwork of %d bytes: %w", resp.ContentLength, ErrImageTooBig)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, d.MaxBytes+1))
	if err != nil {
		return nil, transportError(ctx, "artwork download", err)
	}

	if int64(len(data)) > d.MaxBytes {
		return nil, fmt.Errorf("artwork bigger than %d bytes: %w", d.MaxBytes, ErrImageTooBig)
	}

	if len(data) == 0 {
		return nil, fmt.Errorf("empty artwork body: %w", ErrMalformed)
	}

	return data, nil
}

// Fetch returns the artwork of the candidate. The provider's own ArtworkFetcher
// is used when it has one.
func (d *Downloader) Fetch(ctx context.Context, p Provider, c Candidate) ([]byte, error) {
	if fetcher, ok := p.(ArtworkFetcher); ok {
		return fetcher.FetchArtwork(ctx, c)
	}
	return d.Download(ctx, c.ArtworkURL)
}
