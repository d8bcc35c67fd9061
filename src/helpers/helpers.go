// Package helpers contains few helpers functions which are used throughout the project.
package helpers

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/afero"
)

// ArtframeDir is the name of the artframe directory in the user's home directory.
// Configuration, the image cache and the published files live there unless
// configured otherwise.
const ArtframeDir = ".artframe"

// ProjectUserPath returns the directory which holds the user's artframe data.
// It is not created by this function.
func ProjectUserPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}

	return filepath.Join(home, ArtframeDir), nil
}

// AbsolutePath returns `path` if it is absolute. Otherwise it joins it with
// `root`.
func AbsolutePath(path, root string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

// SetLogsFile sets the file where the standard logger writes. The file is
// created together with its parent directories when missing and logs are
// appended to it.
func SetLogsFile(fs afero.Fs, logFilePath string) error {
	if err := fs.MkdirAll(filepath.Dir(logFilePath), 0o755); err != nil {
		return fmt.Errorf("creating log file directory: %w", err)
	}

	logFile, err := fs.OpenFile(
		logFilePath,
		os.O_APPEND|os.O_WRONLY|os.O_CREATE,
		0o644,
	)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}

	log.SetOutput(logFile)
	return nil
}

// SetUpPidFile writes the current process ID in pidFile.
func SetUpPidFile(fs afero.Fs, pidFile string) error {
	pid := strconv.Itoa(os.Getpid())
	if err := afero.WriteFile(fs, pidFile, []byte(pid), 0o644); err != nil {
		return fmt.Errorf("writing pid file: %w", err)
	}
	return nil
}

// RemovePidFile removes the pid file created with SetUpPidFile. Errors are only
// logged since there is nothing to be done about them at exit.
func RemovePidFile(fs afero.Fs, pidFile string) {
	if err := fs.Remove(pidFile); err != nil {
		log.Printf("Error removing pid file %s: %s\n", pidFile, err)
	}
}
