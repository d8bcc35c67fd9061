package art_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ironsmile/artframe/src/art"
	"github.com/ironsmile/artframe/src/art/artfakes"
	"github.com/ironsmile/artframe/src/assert"
)

func TestDownloaderDownload(t *testing.T) {
	image := bytes.Repeat([]byte{0xff}, 64)

	mux := http.NewServeMux()
	mux.HandleFunc("/ok.jpg", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(image)
	})
	mux.HandleFunc("/big.jpg", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(bytes.Repeat([]byte{0xff}, 100))
	})
	mux.HandleFunc("/empty.jpg", func(w http.ResponseWriter, _ *http.Request) {})
	mux.HandleFunc("/slow-down.jpg", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	d := art.NewDownloader("artframe/testing", 5*time.Second)
	d.MaxBytes = 80

	tests := []struct {
		desc     string
		path     string
		expected error
	}{
		{"too big", "/big.jpg", art.ErrImageTooBig},
		{"missing", "/missing.jpg", art.ErrNotFound},
		{"empty", "/empty.jpg", art.ErrMalformed},
		{"rate limited", "/slow-down.jpg", art.ErrRateLimited},
	}

	for _, test := range tests {
		t.Run(test.desc, func(t *testing.T) {
			_, err := d.Download(context.Background(), srv.URL+test.path)
			assert.ErrorIs(t, err, test.expected)
		})
	}

	t.Run("golden path", func(t *testing.T) {
		data, err := d.Download(context.Background(), srv.URL+"/ok.jpg")
		assert.NilErr(t, err)
		assert.BytesEqual(t, image, data)
	})
}

// fetchingProvider is a provider which downloads its own artwork.
type fetchingProvider struct {
	*artfakes.FakeProvider
	*artfakes.FakeArtworkFetcher
}

func TestDownloaderFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("from the URL"))
		},
	))
	defer srv.Close()

	d := art.NewDownloader("artframe/testing", 5*time.Second)
	cand := art.Candidate{ArtworkURL: srv.URL + "/cover.jpg"}

	plain := &artfakes.FakeProvider{}
	data, err := d.Fetch(context.Background(), plain, cand)
	assert.NilErr(t, err)
	assert.Equal(t, "from the URL", string(data))

	fetcher := &artfakes.FakeArtworkFetcher{}
	fetcher.FetchArtworkReturns([]byte("from the provider"), nil)
	data, err = d.Fetch(
		context.Background(),
		fetchingProvider{&artfakes.FakeProvider{}, fetcher},
		cand,
	)
	assert.NilErr(t, err)
	assert.Equal(t, "from the provider", string(data))
	assert.Equal(t, 1, fetcher.FetchArtworkCallCount())
}
