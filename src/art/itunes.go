package art

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const iTunesSearchEndpoint = "%s/search"

// ITunesName is the name of the iTunes provider.
const ITunesName = "itunes"

// ITunesClient finds artwork with the iTunes Search API. It searches for songs
// and picks the result which best matches the search term. It is safe for
// concurrent use.
type ITunesClient struct {
	// Limit is the number of results requested from the API. The best one
	// is chosen among them.
	Limit int

	// Country is the two-letter country code of the store which is searched.
	// Empty means the API default.
	Country string

	size      int
	useragent string
	timeout   time.Duration
	limiter   *rate.Limiter
	client    *http.Client

	apiHost string
}

// NewITunesClient returns a client which produces artwork URLs for size x size
// pixels images. No more than requestsPerSecond requests are made.
func NewITunesClient(
	useragent string,
	size int,
	requestsPerSecond float64,
	timeout time.Duration,
) *ITunesClient {
	return &ITunesClient{
		Limit:     5,
		size:      size,
		useragent: useragent,
		timeout:   timeout,
		limiter:   newLimiter(requestsPerSecond),
		client:    http.DefaultClient,
		apiHost:   "https://itunes.apple.com",
	}
}

// Name implements Provider.
func (c *ITunesClient) Name() string {
	return ITunesName
}

// Search implements Provider.
func (c *ITunesClient) Search(ctx context.Context, term string) (Candidate, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return Candidate{}, fmt.Errorf("waiting for iTunes rate limiter: %w", err)
	}

	searchURL := fmt.Sprintf(iTunesSearchEndpoint, c.apiHost)
	req, err := http.NewRequest(http.MethodGet, searchURL, nil)
	if err != nil {
		return Candidate{}, fmt.Errorf("error creating iTunes search req: %w", err)
	}

	query := req.URL.Query()
	query.Set("term", term)
	query.Set("entity", "song")
	query.Set("media", "music")
	query.Set("limit", strconv.Itoa(c.Limit))
	if c.Country != "" {
		query.Set("country", c.Country)
	}
	req.URL.RawQuery = query.Encode()
	req.Header.Set("User-Agent", c.useragent)

	reqCtx, cancel := withTimeout(ctx, c.timeout)
	defer cancel()
	req = req.WithContext(reqCtx)

	resp, err := c.client.Do(req)
	if err != nil {
		return Candidate{}, transportError(ctx, ITunesName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return Candidate{}, statusError(ITunesName, resp.StatusCode)
	}

	body, err := readBody(ctx, ITunesName, resp.Body)
	if err != nil {
		return Candidate{}, err
	}

	var found iTunesSearchResponse
	if err := json.Unmarshal(body, &found); err != nil {
		return Candidate{}, fmt.Errorf("decoding iTunes response: %w: %w",
			ErrMalformed, err)
	}

	if len(found.Results) == 0 {
		return Candidate{}, fmt.Errorf("no iTunes results for `%s`: %w", term, ErrNotFound)
	}

	best := bestITunesMatch(found.Results, term)

	artworkURL := best.ArtworkURL100
	if artworkURL == "" {
		artworkURL = best.ArtworkURL60
	}
	if artworkURL == "" {
		return Candidate{}, fmt.Errorf("iTunes match for `%s` has no artwork: %w",
			term, ErrNotFound)
	}

	return Candidate{
		Provider:        ITunesName,
		Title:           best.TrackName,
		Artist:          best.ArtistName,
		Album:           best.CollectionName,
		Genre:           best.PrimaryGenreName,
		ReleaseDate:     best.ReleaseDate,
		TrackTimeMillis: best.TrackTimeMillis,
		PreviewURL:      best.PreviewURL,
		SourceURL:       best.TrackViewURL,
		ArtworkURL:      iTunesArtworkURL(artworkURL, c.size),
		ArtworkSize:     c.size,
	}, nil
}

// iTunesArtworkURL rewrites the size segment of an iTunes artwork URL such as
// ".../100x100bb.jpg" so that it points to a size x size image.
func iTunesArtworkURL(artworkURL string, size int) string {
	sized := fmt.Sprintf("/%dx%dbb.", size, size)
	for _, small := range []string{"/100x100bb.", "/60x60bb."} {
		if strings.Contains(artworkURL, small) {
			return strings.Replace(artworkURL, small, sized, 1)
		}
	}
	return artworkURL
}

// bestITunesMatch scores all results against the term and returns the first
// one with the highest score.
func bestITunesMatch(results []iTunesResult, term string) iTunesResult {
	search := strings.ToLower(term)

	bestScore := -1
	var best iTunesResult
	for _, res := range results {
		score := scoreITunesResult(res, search)
		if score > bestScore {
			bestScore = score
			best = res
		}
	}

	return best
}

func scoreITunesResult(res iTunesResult, search string) int {
	var (
		track  = strings.ToLower(res.TrackName)
		artist = strings.ToLower(res.ArtistName)
		album  = strings.ToLower(res.CollectionName)
		score  int
	)

	if track != "" && (search == track || search == artist+" "+track) {
		score += 100
	} else if overlaps(search, track) {
		score += 50
	}

	if overlaps(search, artist) {
		score += 30
	}

	if overlaps(search, album) {
		score += 20
	}

	if res.ArtworkURL100 != "" {
		score += 10
	}

	return score
}

// overlaps reports whether one of the strings contains the other. Empty
// strings overlap with nothing.
func overlaps(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// The following are structures only used to decode the JSON response from the
// iTunes Search API. Only the fields we are interested in.
type iTunesSearchResponse struct {
	ResultCount int            `json:"resultCount"`
	Results     []iTunesResult `json:"results"`
}

type iTunesResult struct {
	TrackName        string `json:"trackName"`
	ArtistName       string `json:"artistName"`
	CollectionName   string `json:"collectionName"`
	PrimaryGenreName string `json:"primaryGenreName"`
	ReleaseDate      string `json:"releaseDate"`
	TrackTimeMillis  int64  `json:"trackTimeMillis"`
	PreviewURL       string `json:"previewUrl"`
	TrackViewURL     string `json:"trackViewUrl"`
	ArtworkURL60     string `json:"artworkUrl60"`
	ArtworkURL100    string `json:"artworkUrl100"`
}

func newLimiter(requestsPerSecond float64) *rate.Limiter {
	if requestsPerSecond <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Limit(requestsPerSecond), 1)
}

func withTimeout(
	ctx context.Context,
	timeout time.Duration,
) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
