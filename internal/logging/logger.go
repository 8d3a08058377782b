// Package logging provides the single logging entry point for demo-app
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
)

// Logger wraps the standard logger with an optional file sink
type Logger struct {
	*log.Logger
	file *os.File
	mu   sync.Mutex
}

var (
	defaultLogger *Logger
	once          sync.Once
	debug         atomic.Bool
)

func init() {
	debug.Store(os.Getenv("DEBUG") == "true")
}

// Initialize tees log output to stdout and <logDir>/demo-app.log
func Initialize(logDir string) error {
	var initErr error
	once.Do(func() {
		if err := os.MkdirAll(logDir, 0750); err != nil {
			initErr = fmt.Errorf("failed to create log directory: %w", err)
			return
		}

		logPath := filepath.Join(logDir, "demo-app.log")
		file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			initErr = fmt.Errorf("failed to open log file: %w", err)
			return
		}

		multiWriter := io.MultiWriter(os.Stdout, file)

		defaultLogger = &Logger{
			Logger: log.New(multiWriter, "", log.LstdFlags|log.Lshortfile),
			file:   file,
		}

		log.SetOutput(multiWriter)
		log.SetFlags(log.LstdFlags | log.Lshortfile)

		log.Printf("Logging initialized: %s", logPath)
	})
	return initErr
}

// Close closes the log file and sends output back to stdout only
func Close() error {
	l := defaultLogger
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	log.SetOutput(os.Stdout)
	defaultLogger = nil
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

// SetDebug toggles Debug output
func SetDebug(enabled bool) {
	debug.Store(enabled)
}

// DebugEnabled reports whether Debug messages are written
func DebugEnabled() bool {
	return debug.Load()
}

func output(msg string) {
	if defaultLogger != nil {
		_ = defaultLogger.Output(3, msg)
	} else {
		_ = log.Output(3, msg)
	}
}

// Printf logs a formatted message
func Printf(format string, v ...interface{}) {
	output(fmt.Sprintf(format, v...))
}

// Error logs an error message
func Error(format string, v ...interface{}) {
	output(fmt.Sprintf("[ERROR] "+format, v...))
}

// Warning logs a warning message
func Warning(format string, v ...interface{}) {
	output(fmt.Sprintf("[WARN] "+format, v...))
}

// Info logs an info message
func Info(format string, v ...interface{}) {
	output(fmt.Sprintf("[INFO] "+format, v...))
}

// Debug logs a debug message (only when debug output is enabled)
func Debug(format string, v ...interface{}) {
	if debug.Load() {
		output(fmt.Sprintf("[DEBUG] "+format, v...))
	}
}
