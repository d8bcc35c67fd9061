// Package daemon holds what is needed for running artframe as a long lived
// process: the command line flags shared by the entry points and the signals
// on which the process stops.
package daemon

import "flag"

var (
	// Debug makes the daemon log to the standard error even when a log file
	// is configured.
	Debug bool

	// PidFile is where the process ID is written. Empty means nowhere.
	PidFile string
)

func init() {
	flag.BoolVar(&Debug, "D", false, "Debug mode. Logs to the standard error.")
	flag.StringVar(&PidFile, "pidfile", "", "Pidfile. Default is none.")
}
