package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strings"
	"sync"
	"time"
)

type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
	FATAL
)

var (
	levelNames = map[Level]string{
		DEBUG: "DEBUG",
		INFO:  "INFO",
		WARN:  "WARN",
		ERROR: "ERROR",
		FATAL: "FATAL",
	}

	levelColors = map[Level]string{
		DEBUG: "\033[36m", // Cyan
		INFO:  "\033[32m", // Green
		WARN:  "\033[33m", // Yellow
		ERROR: "\033[31m", // Red
		FATAL: "\033[35m", // Magenta
	}

	reset = "\033[0m"

	// shared so every component logger follows a single SetDefaultOutput call
	outputMu      sync.RWMutex
	defaultOutput io.Writer = os.Stdout
	defaultLevel            = INFO
)

// Fields are key/value pairs appended to a log line in key order.
type Fields map[string]interface{}

type Logger struct {
	level      Level
	out        io.Writer
	service    string
	useColors  bool
	showTime   bool
	showCaller bool
	mu         sync.Mutex
}

// SetDefaultOutput changes where loggers created afterwards (and loggers
// without an explicit writer) write. The TUI points this at a file because it
// owns the terminal.
func SetDefaultOutput(w io.Writer) {
	outputMu.Lock()
	defer outputMu.Unlock()
	defaultOutput = w
}

// SetDefaultLevel sets the level of loggers created afterwards when
// LOG_LEVEL is unset.
func SetDefaultLevel(level Level) {
	outputMu.Lock()
	defer outputMu.Unlock()
	defaultLevel = level
}

func ParseLevel(s string) Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return DEBUG
	case "WARN":
		return WARN
	case "ERROR":
		return ERROR
	case "FATAL":
		return FATAL
	}
	return INFO
}

func New(service string) *Logger {
	outputMu.RLock()
	level := defaultLevel
	outputMu.RUnlock()
	if envLevel := os.Getenv("LOG_LEVEL"); envLevel != "" {
		level = ParseLevel(envLevel)
	}

	useColors := os.Getenv("LOG_COLORS") != "false"

	return &Logger{
		level:      level,
		service:    service,
		useColors:  useColors,
		showTime:   true,
		showCaller: false,
	}
}

// NewWithWriter builds an uncolored logger bound to w, mostly for tests.
func NewWithWriter(service string, w io.Writer, level Level) *Logger {
	return &Logger{
		level:     level,
		out:       w,
		service:   service,
		useColors: false,
		showTime:  true,
	}
}

func (l *Logger) writer() io.Writer {
	if l.out != nil {
		return l.out
	}
	outputMu.RLock()
	defer outputMu.RUnlock()
	return defaultOutput
}

func (l *Logger) log(level Level, msg string, fields Fields) {
	if level < l.level {
		return
	}

	var buf strings.Builder

	// Timestamp
	if l.showTime {
		buf.WriteString(time.Now().Format("15:04:05"))
		buf.WriteString(" ")
	}

	// Level with color
	if l.useColors {
		buf.WriteString(levelColors[level])
	}
	buf.WriteString(fmt.Sprintf("%-5s", levelNames[level]))
	if l.useColors {
		buf.WriteString(reset)
	}
	buf.WriteString(" ")

	// Service name
	if l.service != "" {
		if l.useColors {
			buf.WriteString("\033[90m") // Gray
		}
		buf.WriteString("[")
		buf.WriteString(l.service)
		buf.WriteString("]")
		if l.useColors {
			buf.WriteString(reset)
		}
		buf.WriteString(" ")
	}

	buf.WriteString(msg)

	if len(fields) > 0 {
		keys := make([]string, 0, len(fields))
		for k := range fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			buf.WriteString(" ")
			buf.WriteString(k)
			buf.WriteString("=")
			buf.WriteString(formatValue(fields[k]))
		}
	}

	l.mu.Lock()
	fmt.Fprintln(l.writer(), buf.String())
	l.mu.Unlock()

	if level == FATAL {
		os.Exit(1)
	}
}

func formatValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return "<nil>"
	case string:
		if val == "" || strings.ContainsAny(val, " =\"") {
			return fmt.Sprintf("%q", val)
		}
		return val
	case time.Time:
		return val.Format(time.RFC3339)
	case error:
		return fmt.Sprintf("%q", val.Error())
	default:
		return fmt.Sprintf("%v", val)
	}
}

func (l *Logger) Debug(format string, args ...interface{}) {
	l.log(DEBUG, fmt.Sprintf(format, args...), nil)
}

func (l *Logger) Info(format string, args ...interface{}) {
	l.log(INFO, fmt.Sprintf(format, args...), nil)
}

func (l *Logger) Warn(format string, args ...interface{}) {
	l.log(WARN, fmt.Sprintf(format, args...), nil)
}

func (l *Logger) Error(format string, args ...interface{}) {
	l.log(ERROR, fmt.Sprintf(format, args...), nil)
}

func (l *Logger) Fatal(format string, args ...interface{}) {
	l.log(FATAL, fmt.Sprintf(format, args...), nil)
}

// DebugFields and ErrorFields emit a message followed by structured fields.
func (l *Logger) DebugFields(msg string, fields Fields) {
	l.log(DEBUG, msg, fields)
}

func (l *Logger) ErrorFields(msg string, fields Fields) {
	l.log(ERROR, msg, fields)
}

// SetStdLog redirects standard log package to use this logger
func (l *Logger) SetStdLog() {
	log.SetOutput(&stdLogWriter{logger: l})
	log.SetFlags(0)
}

type stdLogWriter struct {
	logger *Logger
}

func (w *stdLogWriter) Write(p []byte) (n int, err error) {
	msg := strings.TrimSpace(string(p))
	w.logger.Info("%s", msg)
	return len(p), nil
}
