package log

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Logger manages the log files written by a generation run.
//
// Three files are kept under the configured logs directory:
//
//	00_last_results.log  - everything, in order
//	01_cycles.log        - cyclic package pairs and how they were broken
//	02_debug.log         - debug output (only populated when debug is enabled)
type Logger struct {
	resultsFile *os.File
	cyclesFile  *os.File
	debugFile   *os.File
	debug       bool
	mu          sync.Mutex
}

// NewLogger creates a new logger writing under logsPath.
func NewLogger(logsPath string, debug bool) (*Logger, error) {
	if err := os.MkdirAll(logsPath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create logs directory: %w", err)
	}

	l := &Logger{debug: debug}

	var err error
	l.resultsFile, err = os.Create(filepath.Join(logsPath, "00_last_results.log"))
	if err != nil {
		return nil, err
	}
	l.cyclesFile, err = os.Create(filepath.Join(logsPath, "01_cycles.log"))
	if err != nil {
		return nil, err
	}
	l.debugFile, err = os.Create(filepath.Join(logsPath, "02_debug.log"))
	if err != nil {
		return nil, err
	}

	l.writeHeaders()

	return l, nil
}

// Close closes all log files
func (l *Logger) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.resultsFile != nil {
		l.resultsFile.Close()
	}
	if l.cyclesFile != nil {
		l.cyclesFile.Close()
	}
	if l.debugFile != nil {
		l.debugFile.Close()
	}
}

func (l *Logger) writeHeaders() {
	timestamp := time.Now().Format(time.RFC3339)

	fmt.Fprintf(l.resultsFile, "sdkgen generation log - %s\n", timestamp)
	fmt.Fprintf(l.resultsFile, "%s\n\n", strings.Repeat("=", 70))

	fmt.Fprintf(l.cyclesFile, "Cyclic package dependencies - %s\n\n", timestamp)
	fmt.Fprintf(l.debugFile, "Debug log - %s\n\n", timestamp)
}

// Cycle logs a detected cycle and which side was broken.
func (l *Logger) Cycle(loser, winner, lane string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	msg := fmt.Sprintf("%s <-> %s (%s): broke edge %s -> %s\n", loser, winner, lane, winner, loser)
	l.cyclesFile.WriteString(msg)
	l.resultsFile.WriteString("CYCLE: " + msg)

	l.cyclesFile.Sync()
	l.resultsFile.Sync()
}

// Info logs an informational message
func (l *Logger) Info(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	timestamp := time.Now().Format("15:04:05")
	l.resultsFile.WriteString(fmt.Sprintf("[%s] INFO: %s\n", timestamp, fmt.Sprintf(format, args...)))
	l.resultsFile.Sync()
}

// Debug logs debug information when debug mode is enabled
func (l *Logger) Debug(format string, args ...any) {
	if !l.debug {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	timestamp := time.Now().Format("15:04:05")
	l.debugFile.WriteString(fmt.Sprintf("[%s] %s\n", timestamp, fmt.Sprintf(format, args...)))
	l.debugFile.Sync()
}

// Warn logs a warning message
func (l *Logger) Warn(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	timestamp := time.Now().Format("15:04:05")
	l.resultsFile.WriteString(fmt.Sprintf("[%s] WARN: %s\n", timestamp, fmt.Sprintf(format, args...)))
	l.resultsFile.Sync()
}

// Error logs an error message to both the results and debug logs
func (l *Logger) Error(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	timestamp := time.Now().Format("15:04:05")
	errMsg := fmt.Sprintf("[%s] ERROR: %s\n", timestamp, fmt.Sprintf(format, args...))

	l.resultsFile.WriteString(errMsg)
	l.debugFile.WriteString(errMsg)

	l.resultsFile.Sync()
	l.debugFile.Sync()
}

// WriteSummary writes a generation summary to the results log
func (l *Logger) WriteSummary(packages, files int, bytes int64, duration time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintf(l.resultsFile, "\n%s\n", strings.Repeat("=", 70))
	fmt.Fprintf(l.resultsFile, "GENERATION SUMMARY\n")
	fmt.Fprintf(l.resultsFile, "%s\n", strings.Repeat("=", 70))
	fmt.Fprintf(l.resultsFile, "Packages:          %d\n", packages)
	fmt.Fprintf(l.resultsFile, "Files written:     %d\n", files)
	fmt.Fprintf(l.resultsFile, "Bytes written:     %d\n", bytes)
	fmt.Fprintf(l.resultsFile, "Duration:          %s\n", duration)
	fmt.Fprintf(l.resultsFile, "%s\n", strings.Repeat("=", 70))

	l.resultsFile.Sync()
}
