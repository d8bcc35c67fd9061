package art

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"sort"
	"strings"
	"time"

	"golang.org/x/time/rate"
	cca "gopkg.in/mineo/gocaa.v1"
)

const (
	musicBrainzReleaseEndpoint = "%s/ws/2/release/"
	musicBrainzReleasePage     = "https://musicbrainz.org/release/%s"
	coverArtArchiveFrontURL    = "https://coverartarchive.org/release/%s/front-%d"
)

// MusicBrainzName is the name of the MusicBrainz provider.
const MusicBrainzName = "musicbrainz"

// caaSizes are the thumbnail sizes served by the Cover Art Archive.
var caaSizes = []int{250, 500, 1200}

// MusicBrainzClient is a client for finding artwork in the Cover Art Archive.
// It is safe for concurrent use.
//
// Getting images from the Cover Art Archive works in two steps:
//
// * Gets a list of mbids (aka release IDs) from the MusicBrainz API which are
// above MinScore.
//
// * Uses the mbids for fetching a cover art from the Cover Art Archive. The first
// release ID which has a cover art wins.
//
// Why a list of mbids? Because a certain album may have many records in MusicBrainz
// which correspond to different releases for this album. Perhaps for multiple years
// or countries. Generally all releases have the same cover art. So we accept any of
// them.
type MusicBrainzClient struct {
	// MinScore is the minimal accepted score above which a release is considered
	// a match for the search in the MusicBrainz API. The API returns a list of
	// matches and every one of them comes with a "score" metric in 0-100 scale
	// which represents how good a match is this result for the query. 100 means
	// absolutely sure. By lowering this score you may receive more images but
	// some of them may be inaccurate.
	MinScore int

	size      int
	useragent string
	timeout   time.Duration
	limiter   *rate.Limiter
	client    *http.Client
	caaClient CAAClient

	musicBrainzAPIHost string
}

// NewMusicBrainzClient returns fully configured MusicBrainzClient.
//
// The kind people at MusicBrainz provide their API at no cost for everyone
// to use. For that reason they have kindly asked for all applications to
// throttle their usage as much as possible and do not exceed one request
// per second. So we are good citizen and throttle ourselves.
// More info: https://musicbrainz.org/doc/XML_Web_Service/Rate_Limiting
//
// The user agent is used for representing itself when contacting the MusicBrainz
// API. It is required so that they can use it for throttling and filtering out
// bad applications.
func NewMusicBrainzClient(
	useragent string,
	size int,
	requestsPerSecond float64,
	timeout time.Duration,
) *MusicBrainzClient {
	return &MusicBrainzClient{
		MinScore:           90,
		size:               size,
		useragent:          useragent,
		timeout:            timeout,
		limiter:            newLimiter(requestsPerSecond),
		client:             http.DefaultClient,
		caaClient:          cca.NewCAAClient(useragent),
		musicBrainzAPIHost: "https://musicbrainz.org",
	}
}

// Name implements Provider.
func (c *MusicBrainzClient) Name() string {
	return MusicBrainzName
}

// Search implements Provider. The candidate is the best scoring release and
// carries the IDs of all other releases which scored above MinScore.
func (c *MusicBrainzClient) Search(ctx context.Context, term string) (Candidate, error) {
	releases, err := c.searchReleases(ctx, term)
	if err != nil {
		return Candidate{}, err
	}

	best := releases[0]
	releaseIDs := make([]string, 0, len(releases))
	for _, release := range releases {
		releaseIDs = append(releaseIDs, release.ID)
	}

	caaSize := c.caaSize()
	return Candidate{
		Provider:    MusicBrainzName,
		Title:       best.Title,
		Artist:      best.artist(),
		Album:       best.Title,
		ReleaseDate: best.Date,
		SourceURL:   fmt.Sprintf(musicBrainzReleasePage, best.ID),
		ArtworkURL:  fmt.Sprintf(coverArtArchiveFrontURL, best.ID, caaSize),
		ArtworkSize: caaSize,
		ReleaseIDs:  releaseIDs,
	}, nil
}

// FetchArtwork implements ArtworkFetcher. It tries the releases of the
// candidate in order and returns the first front image found.
func (c *MusicBrainzClient) FetchArtwork(
	ctx context.Context,
	cand Candidate,
) ([]byte, error) {
	if len(cand.ReleaseIDs) == 0 {
		return nil, fmt.Errorf("candidate has no MusicBrainz releases: %w", ErrNotFound)
	}

	for _, mbidStr := range cand.ReleaseIDs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		img, err := c.getReleaseFront(ctx, mbidStr, c.caaSize())
		if err == nil {
			log.Printf(
				"Downloaded image for artist(%s) album(%s) with mbID %s\n",
				cand.Artist,
				cand.Album,
				mbidStr,
			)
			return img.Data, nil
		}

		var httpErr cca.HTTPError
		if errors.As(err, &httpErr) {
			if httpErr.StatusCode == http.StatusNotFound {
				continue
			}
			return nil, statusError("cover art archive", httpErr.StatusCode)
		}

		return nil, fmt.Errorf("cover art archive for %s: %w", mbidStr, err)
	}

	return nil, fmt.Errorf("no cover art for any release of `%s`: %w",
		cand.Album, ErrNotFound)
}

// getReleaseFront calls the Cover Art Archive client. The client knows
// nothing about contexts and timeouts so it is run in its own goroutine and
// abandoned when the request takes longer than c.timeout or ctx is done.
func (c *MusicBrainzClient) getReleaseFront(
	ctx context.Context,
	mbidStr string,
	size int,
) (cca.CoverArtImage, error) {
	type result struct {
		img cca.CoverArtImage
		err error
	}

	reqCtx, cancel := withTimeout(ctx, c.timeout)
	defer cancel()

	done := make(chan result, 1)
	go func() {
		img, err := c.callCAA(mbidStr, size)
		done <- result{img: img, err: err}
	}()

	select {
	case res := <-done:
		return res.img, res.err
	case <-reqCtx.Done():
		return cca.CoverArtImage{}, transportError(ctx, "cover art archive", reqCtx.Err())
	}
}

// callCAA gets the front image of a release. The client dereferences a nil
// response on transport errors so panics are turned into ErrUnavailable.
func (c *MusicBrainzClient) callCAA(
	mbidStr string,
	size int,
) (img cca.CoverArtImage, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: cover art archive request failed: %v",
				ErrUnavailable, r)
		}
	}()

	return c.caaClient.GetReleaseFront(cca.StringToUUID(mbidStr), size)
}

// caaSize returns the smallest Cover Art Archive thumbnail size which is at
// least as big as the target size.
func (c *MusicBrainzClient) caaSize() int {
	for _, size := range caaSizes {
		if size >= c.size {
			return size
		}
	}
	return caaSizes[len(caaSizes)-1]
}

// searchReleases uses the MusicBrainz API to retrieve a list of matching
// releases for term, best scoring first.
func (c *MusicBrainzClient) searchReleases(
	ctx context.Context,
	term string,
) ([]mbRelease, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("waiting for MusicBrainz rate limiter: %w", err)
	}

	mbURL := fmt.Sprintf(musicBrainzReleaseEndpoint, c.musicBrainzAPIHost)
	req, err := http.NewRequest(http.MethodGet, mbURL, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating music brainz XML API req: %w", err)
	}

	query := req.URL.Query()
	query.Add("query", term)
	req.URL.RawQuery = query.Encode()
	req.Header.Set("User-Agent", c.useragent)

	reqCtx, cancel := withTimeout(ctx, c.timeout)
	defer cancel()
	req = req.WithContext(reqCtx)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, transportError(ctx, MusicBrainzName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, statusError(MusicBrainzName, resp.StatusCode)
	}

	body, err := readBody(ctx, MusicBrainzName, resp.Body)
	if err != nil {
		return nil, err
	}

	root := mbReleaseMetadata{}
	if err := xml.Unmarshal(body, &root); err != nil {
		return nil, fmt.Errorf("decoding music brainz XML API response: %w: %w",
			ErrMalformed, err)
	}

	var releases []mbRelease
	for _, release := range root.ReleaseList.Releases {
		if release.Score >= c.MinScore && release.ID != "" {
			releases = append(releases, release)
		}
	}

	if len(releases) < 1 {
		return nil, fmt.Errorf("no MusicBrainz releases for `%s`: %w", term, ErrNotFound)
	}

	sort.SliceStable(releases, func(i, j int) bool {
		return releases[i].Score > releases[j].Score
	})

	return releases, nil
}

// The following are structures only used to decode the XML response from MusicBrainz
// API. And only the stuff we are interested and nothing more.
type mbReleaseMetadata struct {
	ReleaseList mbReleaseList `xml:"release-list"`
}

type mbReleaseList struct {
	Releases []mbRelease `xml:"release"`
}

type mbRelease struct {
	ID           string         `xml:"id,attr"`
	Score        int            `xml:"score,attr"`
	Title        string         `xml:"title"`
	Date         string         `xml:"date"`
	ArtistCredit []mbNameCredit `xml:"artist-credit>name-credit"`
}

type mbNameCredit struct {
	JoinPhrase string   `xml:"joinphrase,attr"`
	Name       string   `xml:"name"`
	Artist     mbArtist `xml:"artist"`
}

type mbArtist struct {
	Name string `xml:"name"`
}

// artist returns the credited artist name of the release.
func (r mbRelease) artist() string {
	var sb strings.Builder
	for _, credit := range r.ArtistCredit {
		name := credit.Name
		if name == "" {
			name = credit.Artist.Name
		}
		sb.WriteString(name)
		sb.WriteString(credit.JoinPhrase)
	}
	return strings.TrimSpace(sb.String())
}
