package artwork

import (
	"fmt"
	"strings"
)

// Status is the display status token shared with the renderer.
type Status string

// All the possible display statuses.
const (
	StatusRunning Status = "RUNNING"
	StatusPaused  Status = "PAUSED"
	StatusStopped Status = "STOPPED"
)

// ParseStatus parses a status token. Surrounding white space and letter case
// are ignored.
func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToUpper(strings.TrimSpace(s)))
	switch st {
	case StatusRunning, StatusPaused, StatusStopped:
		return st, nil
	default:
		return "", fmt.Errorf("unknown display status `%s`", s)
	}
}
