package version_test

import (
	"bytes"
	"runtime"
	"strings"
	"testing"

	"github.com/ironsmile/artframe/src/version"
)

// TestVersionPrinting makes sure some things are always part of the printed version
// string.
func TestVersionPrinting(t *testing.T) {
	if version.Version == "" {
		t.Fatalf("version.Version cannot be completely empty")
	}

	var buff bytes.Buffer
	version.Print(&buff)

	if !strings.Contains(buff.String(), version.Version) {
		t.Errorf("printed version does not contain the actual version string")
	}

	if !strings.Contains(buff.String(), runtime.Version()) {
		t.Errorf("printed version does not contain Golang version")
	}
}

// TestUserAgent checks that the user agent identifies the application and its
// version since the MusicBrainz API rejects anonymous clients.
func TestUserAgent(t *testing.T) {
	ua := version.UserAgent()
	if !strings.HasPrefix(ua, "artframe/") {
		t.Errorf("user agent `%s` does not start with the application name", ua)
	}
	if !strings.Contains(ua, version.Version) {
		t.Errorf("user agent `%s` does not contain the version", ua)
	}
}
