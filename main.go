// artframe finds album artwork for the music being played and publishes it
// for a picture frame display.
//
// This file is only here to make installing with go install easier and to
// embed the static files. Everything else lives in the src directory.
package main

import (
	"embed"
	"fmt"
	"io/fs"
	"os"

	"github.com/ironsmile/artframe/src"
)

var (
	// sqlFilesFS the migrations directory which contains SQL
	// migrations for sql-migrate. If the embedded directory name
	// changes, remember to change it in main() too.
	//
	//go:embed sqls
	sqlFilesFS embed.FS

	// httpRootFS is the directory which contains the static files
	// of the control UI. If the embedded directory name changes
	// remember to change it in main() too.
	//
	//go:embed http_root
	httpRootFS embed.FS
)

func main() {
	fsRoot, err := fs.Sub(httpRootFS, "http_root")
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading HTTP root subFS: %s\n", err)
		os.Exit(1)
	}

	sqls, err := fs.Sub(sqlFilesFS, "sqls")
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading sqls subFS: %s\n", err)
		os.Exit(1)
	}

	src.Main(fsRoot, sqls)
}
