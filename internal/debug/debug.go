package debug

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// EnvVar names the environment variable holding the debug log path.
const EnvVar = "PANEL_DEBUG"

var (
	out      io.Writer
	logFile  *os.File
	mu       sync.Mutex
	resolved bool
)

// Init initializes debug logging to the specified file path.
// If path is empty, uses "debug.log" in the current directory.
func Init(path string) error {
	mu.Lock()
	defer mu.Unlock()
	resolved = true
	return initLocked(path)
}

// initLocked does the actual init work. Caller must hold mu.
func initLocked(path string) error {
	if path == "" {
		path = "debug.log"
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open debug log: %w", err)
	}

	if logFile != nil {
		logFile.Close()
	}
	logFile = f
	out = f
	return nil
}

// SetOutput redirects debug output to w. Passing nil disables logging.
// Mostly useful in tests.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	resolved = true
	out = w
}

// Close closes the debug log file.
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	out = nil
	resolved = false
	if logFile != nil {
		err := logFile.Close()
		logFile = nil
		return err
	}
	return nil
}

// Enabled reports whether log lines are currently written anywhere.
func Enabled() bool {
	mu.Lock()
	defer mu.Unlock()
	resolveLocked()
	return out != nil
}

func resolveLocked() {
	if resolved {
		return
	}
	resolved = true
	if path := os.Getenv(EnvVar); path != "" {
		// A log we cannot open leaves logging disabled.
		_ = initLocked(path)
	}
}

// Log writes a message to the debug log with a timestamp.
func Log(format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()

	resolveLocked()
	if out == nil {
		return
	}

	timestamp := time.Now().Format("15:04:05.000")
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(out, "[%s] %s\n", timestamp, msg)
	if logFile != nil {
		logFile.Sync()
	}
}
