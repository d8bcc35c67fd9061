package art

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/ironsmile/artframe/src/artwork"
)

// maxResponseSize limits how much of a provider search response is read.
const maxResponseSize = 5 * 1024 * 1024

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -generate

var (
	// ErrNotFound is returned when a provider has no match for the search
	// term or the match has no artwork. Retrying will not help.
	ErrNotFound = errors.New("artwork not found")

	// ErrRateLimited is returned when a provider refuses to serve more
	// requests for now.
	ErrRateLimited = errors.New("rate limited by provider")

	// ErrUnavailable is returned for network failures and server side errors.
	ErrUnavailable = errors.New("provider unavailable")

	// ErrMalformed is returned when a provider response could not be
	// understood.
	ErrMalformed = errors.New("malformed provider response")

	// ErrImageTooBig is returned when some image has been found but it is
	// deemed too big to handle.
	ErrImageTooBig = errors.New("image is too big")
)

// Retryable reports whether err is a transient provider failure for which
// another attempt may succeed.
func Retryable(err error) bool {
	return errors.Is(err, ErrRateLimited) || errors.Is(err, ErrUnavailable)
}

// Candidate is the best match a provider found for a search term.
type Candidate struct {
	// Provider is the name of the provider which found this candidate.
	Provider string

	Title       string
	Artist      string
	Album       string
	Genre       string
	ReleaseDate string

	// TrackTimeMillis is the track duration. Zero when unknown.
	TrackTimeMillis int64

	PreviewURL string

	// SourceURL is the page of the track or release at the provider.
	SourceURL string

	// ArtworkURL is the canonical URL of the artwork in ArtworkSize x
	// ArtworkSize pixels.
	ArtworkURL  string
	ArtworkSize int

	// ReleaseIDs are the MusicBrainz release IDs which matched, best first.
	// Only set by the MusicBrainz provider.
	ReleaseIDs []string
}

// Metadata returns the displayable metadata for this candidate. The mandatory
// fields are populated with their defaults when missing.
func (c Candidate) Metadata() artwork.Metadata {
	releaseDate := c.ReleaseDate
	if len(releaseDate) > 10 {
		releaseDate = releaseDate[:10]
	}

	return artwork.Metadata{
		Title:       c.Title,
		Artist:      c.Artist,
		Album:       c.Album,
		Genre:       c.Genre,
		ReleaseDate: releaseDate,
		TrackTime:   artwork.FormatDuration(c.TrackTimeMillis),
		PreviewURL:  c.PreviewURL,
		SourceURL:   c.SourceURL,
		Provider:    c.Provider,
		ArtworkURL:  c.ArtworkURL,
	}.WithDefaults()
}

//counterfeiter:generate . Provider

// Provider is a source of album artwork.
type Provider interface {
	// Name returns a short identifier of the provider, used in logs and
	// in the published metadata.
	Name() string

	// Search returns the best candidate for term. It returns ErrNotFound when
	// there is none.
	Search(ctx context.Context, term string) (Candidate, error)
}

//counterfeiter:generate . ArtworkFetcher

// ArtworkFetcher is implemented by providers which need their own way of
// downloading the artwork of their candidates. For the rest the artwork is
// downloaded from Candidate.ArtworkURL.
type ArtworkFetcher interface {
	FetchArtwork(ctx context.Context, c Candidate) ([]byte, error)
}

// statusError classifies a non-successful HTTP status code from a provider.
func statusError(provider string, statusCode int) error {
	switch {
	case statusCode == http.StatusNotFound:
		return fmt.Errorf("%s returned HTTP %d: %w", provider, statusCode, ErrNotFound)
	case statusCode == http.StatusForbidden ||
		statusCode == http.StatusTooManyRequests:
		return fmt.Errorf("%s returned HTTP %d: %w", provider, statusCode, ErrRateLimited)
	case statusCode >= 500:
		return fmt.Errorf("%s returned HTTP %d: %w", provider, statusCode, ErrUnavailable)
	default:
		return fmt.Errorf("%s returned HTTP %d: %w", provider, statusCode, ErrMalformed)
	}
}

// transportError wraps an error returned by the HTTP client. Cancellation of
// the caller's context is kept as it is so that it is not retried.
func transportError(ctx context.Context, provider string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("%s request: %w", provider, ctxErr)
	}
	return fmt.Errorf("%s request: %w: %w", provider, ErrUnavailable, err)
}

// readBody reads the whole body of a provider response. A body cut short by
// the network is a transport error, not a malformed response.
func readBody(ctx context.Context, provider string, body io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(body, maxResponseSize))
	if err != nil {
		return nil, transportError(ctx, provider, fmt.Errorf("reading response: %w", err))
	}
	return data, nil
}
