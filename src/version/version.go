/*
Package version provides version information and utilities.
*/
package version

import (
	"fmt"
	"io"
	"runtime"
)

// Version stores the current version of artframe. It is set during building with
// -ldflags "-X github.com/ironsmile/artframe/src/version.Version=...".
var Version = "dev-unreleased"

// UserAgent returns the User-Agent used when talking to the artwork providers.
// MusicBrainz asks every application to identify itself with a contact URL.
func UserAgent() string {
	return fmt.Sprintf(
		"artframe/%s ( https://github.com/ironsmile/artframe )",
		Version,
	)
}

// Print writes a plain text version information in out.
func Print(out io.Writer) {
	fmt.Fprintf(out, "artframe album art display %s\n", Version)
	fmt.Fprintf(out, "Build with %s\n", runtime.Version())
}
