package debug

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const (
	envVar  = "CRUNCHSETUP_DEBUG"
	logName = "crunchsetup-debug.log"
)

var (
	enabled  bool
	logFile  *os.File
	mu       sync.Mutex
	initOnce sync.Once
)

// Init initializes the debug logger based on CRUNCHSETUP_DEBUG env var
func Init() {
	initOnce.Do(func() {
		v := strings.ToLower(os.Getenv(envVar))
		if v != "1" && v != "true" {
			return
		}

		var err error
		logFile, err = os.OpenFile(GetLogPath(), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create debug log: %v\n", err)
			return
		}
		enabled = true

		Log("Debug logging enabled, writing to: %s", GetLogPath())
	})
}

// Enabled returns whether debug mode is enabled
func Enabled() bool {
	return enabled
}

// Log writes a debug message if debug mode is enabled
func Log(format string, args ...interface{}) {
	if !enabled || logFile == nil {
		return
	}

	mu.Lock()
	defer mu.Unlock()

	timestamp := time.Now().Format("15:04:05.000")
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(logFile, "[%s] %s\n", timestamp, msg)
	logFile.Sync()
}

// LogError logs an error message
func LogError(context string, err error) {
	if err != nil {
		Log("ERROR [%s]: %v", context, err)
	}
}

// Close closes the debug log file
func Close() {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
	enabled = false
}

// GetLogPath returns the path to the debug log file
func GetLogPath() string {
	return filepath.Join(os.TempDir(), logName)
}
