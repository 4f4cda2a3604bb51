// Package debug provides optional file-based debug logging.
//
// Logging is a no-op until Init is called, or until InitFromEnv finds the
// CHIPFLOW_DEBUG environment variable set to a file path. The terminal
// belongs to the UI, so nothing is ever written to stdout or stderr.
package debug

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// EnvVar names the environment variable read by InitFromEnv.
const EnvVar = "CHIPFLOW_DEBUG"

var (
	out io.Writer
	f   *os.File
	mu  sync.Mutex
)

// Init starts appending debug messages to the file at path, creating its
// directory if needed.
func Init(path string) error {
	mu.Lock()
	defer mu.Unlock()

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open debug log: %w", err)
	}

	closeLocked()
	f = file
	out = file
	return nil
}

// InitFromEnv calls Init with the path in CHIPFLOW_DEBUG, if set.
func InitFromEnv() error {
	path := os.Getenv(EnvVar)
	if path == "" {
		return nil
	}
	return Init(path)
}

// SetOutput sends debug messages to w instead of a file. nil disables logging.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	closeLocked()
	out = w
}

// Enabled reports whether messages are currently written anywhere.
func Enabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return out != nil
}

// Close stops logging and closes the log file.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	return closeLocked()
}

func closeLocked() error {
	out = nil
	if f == nil {
		return nil
	}
	err := f.Close()
	f = nil
	return err
}

// Log writes a timestamped message to the debug log.
func Log(format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()

	if out == nil {
		return
	}

	timestamp := time.Now().Format("15:04:05.000")
	fmt.Fprintf(out, "[%s] %s\n", timestamp, fmt.Sprintf(format, args...))
}
