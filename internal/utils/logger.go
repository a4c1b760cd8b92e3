package utils

import (
	"io"
	"log"
	"os"
	"sync"
)

// Log levels
const (
	INFO  = "INFO"
	WARN  = "WARN"
	ERROR = "ERROR"
	DEBUG = "DEBUG"
)

var (
	instance *Logger
	once     sync.Once
	mu       sync.RWMutex
	fallback = NewWriterLogger(os.Stderr, io.Discard)
)

// Logger struct
type Logger struct {
	infoLogger  *log.Logger
	warnLogger  *log.Logger
	errorLogger *log.Logger
	debugLogger *log.Logger
	file        *os.File
}

// NewLogger creates the logger instance (singleton). An empty logFilePath
// logs to stdout only.
func NewLogger(logFilePath string, debugMode bool) *Logger {
	once.Do(func() {
		var file *os.File
		var out io.Writer = os.Stdout

		if logFilePath != "" {
			f, err := os.OpenFile(logFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
			if err != nil {
				log.Printf("Failed to open log file, logging to stdout only: %v", err)
			} else {
				file = f
				// Create a multi-writer to log to both the file and console
				out = io.MultiWriter(f, os.Stdout)
			}
		}

		var debugWriter io.Writer = io.Discard
		if debugMode {
			debugWriter = out
		} else if file != nil {
			debugWriter = file
		}

		logger := NewWriterLogger(out, debugWriter)
		logger.file = file

		mu.Lock()
		instance = logger
		mu.Unlock()
	})
	return GetLogger()
}

// NewWriterLogger builds a standalone logger over the given writers. It does
// not touch the singleton; tests and embedded helpers use it to capture output.
func NewWriterLogger(out, debug io.Writer) *Logger {
	if out == nil {
		out = io.Discard
	}
	if debug == nil {
		debug = io.Discard
	}
	return &Logger{
		infoLogger:  log.New(out, "["+INFO+"] ", log.Ldate|log.Ltime),
		warnLogger:  log.New(out, "["+WARN+"] ", log.Ldate|log.Ltime),
		errorLogger: log.New(out, "["+ERROR+"] ", log.Ldate|log.Ltime),
		debugLogger: log.New(debug, "["+DEBUG+"] ", log.Ldate|log.Ltime),
	}
}

// GetLogger retrieves the singleton logger instance. Until NewLogger runs it
// returns a stderr logger with debug output suppressed and leaves the
// singleton unset.
func GetLogger() *Logger {
	mu.RLock()
	defer mu.RUnlock()
	if instance == nil {
		return fallback
	}
	return instance
}

// Close releases the log file, if any.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}

// Logging methods
func (l *Logger) Info(message string) {
	l.infoLogger.Println(message)
}

func (l *Logger) Warn(message string) {
	l.warnLogger.Println(message)
}

func (l *Logger) Error(message string) {
	l.errorLogger.Println(message)
}

func (l *Logger) Debug(message string) {
	l.debugLogger.Println(message)
}
