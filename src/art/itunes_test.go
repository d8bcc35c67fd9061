package art_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/ironsmile/artframe/src/art"
	"github.com/ironsmile/artframe/src/assert"
)

const pinkFloydResponse = `{
	"resultCount": 3,
	"results": [
		{
			"trackName": "Money",
			"artistName": "Pink Floyd",
			"collectionName": "The Dark Side of the Moon",
			"artworkUrl100": "https://is1.mzstatic.com/image/thumb/money/100x100bb.jpg"
		},
		{
			"trackName": "Speak to Me",
			"artistName": "Pink Floyd",
			"collectionName": "The Dark Side of the Moon",
			"primaryGenreName": "Rock",
			"releaseDate": "1973-03-01T08:00:00Z",
			"trackTimeMillis": 67960,
			"previewUrl": "https://audio.example.com/speak.m4a",
			"trackViewUrl": "https://music.apple.com/speak-to-me",
			"artworkUrl60": "https://is1.mzstatic.com/image/thumb/dsotm/60x60bb.jpg",
			"artworkUrl100": "https://is1.mzstatic.com/image/thumb/dsotm/100x100bb.jpg"
		},
		{
			"trackName": "Speak to Me (Live)",
			"artistName": "Pink Floyd",
			"collectionName": "Live at Wembley",
			"artworkUrl100": "https://is1.mzstatic.com/image/thumb/live/100x100bb.jpg"
		}
	]
}`

func newITunesClient(url string) *art.ITunesClient {
	c := art.NewITunesClient("artframe/testing", 720, 0, 5*time.Second)
	c.SetITunesAPIURL(url)
	return c
}

// TestITunesSearch checks the golden path of the iTunes provider: the query is
// built correctly, the best result is chosen and the artwork URL is resized.
func TestITunesSearch(t *testing.T) {
	var serverErrors []string

	handler := func(w http.ResponseWriter, req *http.Request) {
		if req.URL.Path != "/search" {
			serverErrors = append(serverErrors, "unexpected path "+req.URL.Path)
			w.WriteHeader(http.StatusNotFound)
			return
		}

		query := req.URL.Query()
		expected := map[string]string{
			"term":   "Pink Floyd Speak to Me",
			"entity": "song",
			"media":  "music",
			"limit":  "5",
		}
		for key, val := range expected {
			if query.Get(key) != val {
				serverErrors = append(serverErrors, fmt.Sprintf(
					"query %s: expected `%s` but got `%s`", key, val, query.Get(key),
				))
			}
		}

		if req.Header.Get("User-Agent") != "artframe/testing" {
			serverErrors = append(serverErrors, "wrong user agent")
		}

		fmt.Fprint(w, pinkFloydResponse)
	}
	srv := httptest.NewServer(http.HandlerFunc(handler))
	defer srv.Close()

	c := newITunesClient(srv.URL)
	cand, err := c.Search(context.Background(), "Pink Floyd Speak to Me")

	for _, se := range serverErrors {
		t.Error(se)
	}
	assert.NilErr(t, err)

	assert.Equal(t, "itunes", cand.Provider)
	assert.Equal(t, "Speak to Me", cand.Title)
	assert.Equal(t, "Pink Floyd", cand.Artist)
	assert.Equal(t, "The Dark Side of the Moon", cand.Album)
	assert.Equal(t, "Rock", cand.Genre)
	assert.Equal(t, int64(67960), cand.TrackTimeMillis)
	assert.Equal(t, 720, cand.ArtworkSize)
	assert.Equal(
		t,
		"https://is1.mzstatic.com/image/thumb/dsotm/720x720bb.jpg",
		cand.ArtworkURL,
	)

	md := cand.Metadata()
	assert.Equal(t, "1973-03-01", md.ReleaseDate)
	assert.Equal(t, "1:07", md.TrackTime)
	assert.Equal(t, "https://music.apple.com/speak-to-me", md.SourceURL)
}

// TestITunesSearchErrors checks the classification of all failure modes of the
// iTunes provider.
func TestITunesSearchErrors(t *testing.T) {
	tests := []struct {
		desc      string
		status    int
		body      string
		expected  error
		retryable bool
	}{
		{
			desc:      "rate limited",
			status:    http.StatusTooManyRequests,
			expected:  art.ErrRateLimited,
			retryable: true,
		},
		{
			desc:      "forbidden means throttled",
			status:    http.StatusForbidden,
			expected:  art.ErrRateLimited,
			retryable: true,
		},
		{
			desc:      "server error",
			status:    http.StatusServiceUnavailable,
			expected:  art.ErrUnavailable,
			retryable: true,
		},
		{
			desc:     "broken JSON",
			status:   http.StatusOK,
			body:     `{"results": [`,
			expected: art.ErrMalformed,
		},
		{
			desc:     "no results",
			status:   http.StatusOK,
			body:     `{"resultCount": 0, "results": []}`,
			expected: art.ErrNotFound,
		},
		{
			desc:     "no artwork",
			status:   http.StatusOK,
			body:     `{"resultCount": 1, "results": [{"trackName": "Speak to Me"}]}`,
			expected: art.ErrNotFound,
		},
	}

	for _, test := range tests {
		t.Run(test.desc, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(
				func(w http.ResponseWriter, _ *http.Request) {
					w.WriteHeader(test.status)
					fmt.Fprint(w, test.body)
				},
			))
			defer srv.Close()

			_, err := newITunesClient(srv.URL).Search(context.Background(), "anything")
			assert.ErrorIs(t, err, test.expected)
			assert.Equal(t, test.retryable, art.Retryable(err))
		})
	}
}

// TestITunesSearchUnreachable makes sure network failures are retryable.
func TestITunesSearchUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := newITunesClient(url).Search(context.Background(), "anything")
	assert.ErrorIs(t, err, art.ErrUnavailable)
	assert.Equal(t, true, art.Retryable(err))
}

// TestITunesSearchCancelled makes sure a cancelled search is not retryable.
func TestITunesSearchCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, pinkFloydResponse)
		},
	))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newITunesClient(srv.URL).Search(ctx, "anything")
	assert.NotNilErr(t, err)
	assert.Equal(t, false, art.Retryable(err))
}

// TestITunesSearchCutOffBody makes sure a response body which the network
// cut short is retried instead of being reported as malformed.
func TestITunesSearchCutOffBody(t *testing.T) {
	srv := httptest.NewServer(cutOffBody(t, pinkFloydResponse[:120]))
	defer srv.Close()

	_, err := newITunesClient(srv.URL).Search(context.Background(), "anything")
	assert.ErrorIs(t, err, art.ErrUnavailable)
	assert.Equal(t, true, art.Retryable(err))
	if errors.Is(err, art.ErrMalformed) {
		t.Errorf("cut off body reported as malformed: %s", err)
	}
}

// cutOffBody returns a handler which promises a much bigger body than partial,
// writes partial and then closes the connection.
func cutOffBody(t *testing.T, partial string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Length", strconv.Itoa(len(partial)+5000))
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, partial)
		w.(http.Flusher).Flush()

		conn, _, err := w.(http.Hijacker).Hijack()
		if err != nil {
			t.Errorf("hijacking the connection: %s", err)
			return
		}
		conn.Close()
	}
}
