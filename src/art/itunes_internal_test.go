package art

import (
	"testing"

	"github.com/ironsmile/artframe/src/assert"
)

func TestScoreITunesResult(t *testing.T) {
	tests := []struct {
		desc     string
		res      iTunesResult
		search   string
		expected int
	}{
		{
			desc:     "exact title",
			res:      iTunesResult{TrackName: "Time"},
			search:   "time",
			expected: 100,
		},
		{
			desc:     "artist and title",
			res:      iTunesResult{TrackName: "Time", ArtistName: "Pink Floyd"},
			search:   "pink floyd time",
			expected: 100 + 30,
		},
		{
			desc: "everything",
			res: iTunesResult{
				TrackName:      "Money",
				ArtistName:     "Pink Floyd",
				CollectionName: "The Dark Side of the Moon",
				ArtworkURL100:  "https://example.com/100x100bb.jpg",
			},
			search:   "money",
			expected: 100 + 10,
		},
		{
			desc:     "title containment",
			res:      iTunesResult{TrackName: "Money (2011 Remaster)"},
			search:   "money",
			expected: 50,
		},
		{
			desc:     "album only",
			res:      iTunesResult{TrackName: "Eclipse", CollectionName: "Moon"},
			search:   "the dark side of the moon",
			expected: 20,
		},
		{
			desc:     "empty fields score nothing",
			res:      iTunesResult{},
			search:   "anything",
			expected: 0,
		},
	}

	for _, test := range tests {
		t.Run(test.desc, func(t *testing.T) {
			assert.Equal(t, test.expected, scoreITunesResult(test.res, test.search))
		})
	}
}

func TestBestITunesMatchFirstWins(t *testing.T) {
	results := []iTunesResult{
		{TrackName: "Other", CollectionName: "First"},
		{TrackName: "Another", CollectionName: "Second"},
	}

	best := bestITunesMatch(results, "nothing matches")
	assert.Equal(t, "First", best.CollectionName)
}

func TestITunesArtworkURL(t *testing.T) {
	tests := []struct {
		in       string
		size     int
		expected string
	}{
		{
			in:       "https://is1.mzstatic.com/a/100x100bb.jpg",
			size:     720,
			expected: "https://is1.mzstatic.com/a/720x720bb.jpg",
		},
		{
			in:       "https://is1.mzstatic.com/a/60x60bb.jpg",
			size:     600,
			expected: "https://is1.mzstatic.com/a/600x600bb.jpg",
		},
		{
			in:       "https://example.com/cover.png",
			size:     720,
			expected: "https://example.com/cover.png",
		},
	}

	for _, test := range tests {
		assert.Equal(t, test.expected, iTunesArtworkURL(test.in, test.size))
	}
}
