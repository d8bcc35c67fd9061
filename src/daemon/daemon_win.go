//go:build windows

package daemon

import "os"

// StopSignals contains all the signals which will make our daemon stop and
// remove its pidfile.
var StopSignals = []os.Signal{
	os.Interrupt,
}
