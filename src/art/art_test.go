package art_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/ironsmile/artframe/src/art"
	"github.com/ironsmile/artframe/src/artwork"
	"github.com/ironsmile/artframe/src/assert"
	"github.com/ironsmile/artframe/src/config"
)

func TestRetryable(t *testing.T) {
	tests := []struct {
		err      error
		expected bool
	}{
		{art.ErrRateLimited, true},
		{fmt.Errorf("wrapped: %w", art.ErrUnavailable), true},
		{art.ErrNotFound, false},
		{art.ErrMalformed, false},
		{art.ErrImageTooBig, false},
		{errors.New("something else"), false},
		{nil, false},
	}

	for _, test := range tests {
		assert.Equal(t, test.expected, art.Retryable(test.err), "%v", test.err)
	}
}

func TestCandidateMetadataDefaults(t *testing.T) {
	md := art.Candidate{
		Provider:    "itunes",
		ReleaseDate: "2001-05-14T07:00:00Z",
		ArtworkURL:  "https://example.com/a.jpg",
	}.Metadata()

	assert.Equal(t, artwork.UnknownTitle, md.Title)
	assert.Equal(t, artwork.UnknownArtist, md.Artist)
	assert.Equal(t, artwork.UnknownAlbum, md.Album)
	assert.Equal(t, "2001-05-14", md.ReleaseDate)
	assert.Equal(t, "", md.TrackTime)
	assert.Equal(t, "itunes", md.Provider)
	assert.Equal(t, "https://example.com/a.jpg", md.ArtworkURL)
}

func TestNewProviders(t *testing.T) {
	cfg := config.Defaults()
	cfg.Providers = []string{config.ProviderMusicBrainz, config.ProviderITunes}

	providers, err := art.NewProviders(cfg, "artframe/testing")
	assert.NilErr(t, err)
	assert.Equal(t, 2, len(providers))
	assert.Equal(t, art.MusicBrainzName, providers[0].Name())
	assert.Equal(t, art.ITunesName, providers[1].Name())

	if _, ok := providers[0].(art.ArtworkFetcher); !ok {
		t.Errorf("MusicBrainz provider is expected to fetch its own artwork")
	}

	cfg.Providers = []string{"spotify"}
	_, err = art.NewProviders(cfg, "artframe/testing")
	assert.NotNilErr(t, err)

	cfg.Providers = nil
	_, err = art.NewProviders(cfg, "artframe/testing")
	assert.NotNilErr(t, err)
}
