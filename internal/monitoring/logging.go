package monitoring

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

// LogLevel represents the severity level of a log message
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the string representation of the log level
func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func (l LogLevel) slogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ParseLogLevel accepts debug, info, warn or error.
func ParseLogLevel(s string) (LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	}
	return LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// LogFormat represents the output format for logs
type LogFormat int

const (
	FormatConsole LogFormat = iota
	FormatText
	FormatJSON
)

// ParseLogFormat accepts console, text or json.
func ParseLogFormat(s string) (LogFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "console", "":
		return FormatConsole, nil
	case "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	}
	return FormatConsole, fmt.Errorf("unknown log format %q", s)
}

// Logger is the generator's structured logger.
type Logger struct {
	logger *slog.Logger
	level  LogLevel
}

// LoggerConfig configures the logger
type LoggerConfig struct {
	Level     LogLevel
	Format    LogFormat
	Output    io.Writer
	Component string
	Version   string
}

// NewLogger creates a logger writing in the configured format.
func NewLogger(config LoggerConfig) *Logger {
	if config.Output == nil {
		config.Output = os.Stderr
	}

	opts := &slog.HandlerOptions{
		Level: config.Level.slogLevel(),
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && len(groups) == 0 {
				a.Value = slog.StringValue(a.Value.Time().Format(time.RFC3339Nano))
			}
			return a
		},
	}

	var handler slog.Handler
	switch config.Format {
	case FormatJSON:
		handler = slog.NewJSONHandler(config.Output, opts)
	case FormatText:
		handler = slog.NewTextHandler(config.Output, opts)
	default:
		handler = NewConsoleHandler(config.Output, opts)
	}

	logger := slog.New(handler)
	if config.Component != "" {
		logger = logger.With("component", config.Component)
	}
	if config.Version != "" && config.Format != FormatConsole {
		logger = logger.With("version", config.Version)
	}

	return &Logger{logger: logger, level: config.Level}
}

// NewCLILogger builds the obfx-gen logger. OBFX_LOG_LEVEL and
// OBFX_LOG_FORMAT override the defaults; verbose lowers the level to debug.
func NewCLILogger(output io.Writer, verbose bool, version string) *Logger {
	level := LevelInfo
	if verbose {
		level = LevelDebug
	}
	if env := os.Getenv("OBFX_LOG_LEVEL"); env != "" {
		if l, err := ParseLogLevel(env); err == nil {
			level = l
		}
	}

	format := FormatConsole
	if env := os.Getenv("OBFX_LOG_FORMAT"); env != "" {
		if f, err := ParseLogFormat(env); err == nil {
			format = f
		}
	}

	return NewLogger(LoggerConfig{
		Level:     level,
		Format:    format,
		Output:    output,
		Component: "obfx-gen",
		Version:   version,
	})
}

// With returns a logger that adds args to every record.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{logger: l.logger.With(args...), level: l.level}
}

// Enabled reports whether records at level are emitted.
func (l *Logger) Enabled(level LogLevel) bool {
	return level >= l.level
}

func (l *Logger) Debug(msg string, args ...any) {
	l.logger.Log(context.Background(), slog.LevelDebug, msg, args...)
}

func (l *Logger) Info(msg string, args ...any) {
	l.logger.Log(context.Background(), slog.LevelInfo, msg, args...)
}

func (l *Logger) Warn(msg string, args ...any) {
	l.logger.Log(context.Background(), slog.LevelWarn, msg, args...)
}

func (l *Logger) Error(msg string, args ...any) {
	l.logger.Log(context.Background(), slog.LevelError, msg, args...)
}

// LogSealed records one sealed literal. Only its name, type and key
// parameters are logged, never the value.
func (l *Logger) LogSealed(name, typeName, level, profile string, words int) {
	l.Debug("sealed literal",
		"literal", name,
		"type", typeName,
		"strength", level,
		"profile", profile,
		"words", words,
	)
}

// LogFile records the outcome for one output file.
func (l *Logger) LogFile(path string, literals int, duration time.Duration, err error) {
	if err != nil {
		l.Error("generation failed",
			"file", path,
			"error", err.Error(),
			"error_type", fmt.Sprintf("%T", err),
		)
		return
	}
	l.Info("generated",
		"file", path,
		"literals", literals,
		"duration_ms", duration.Milliseconds(),
	)
}

// ConsoleHandler prints compact colourised lines for terminals.
type ConsoleHandler struct {
	handler slog.Handler
	output  io.Writer
	attrs   []slog.Attr
}

// NewConsoleHandler creates a new console handler
func NewConsoleHandler(output io.Writer, opts *slog.HandlerOptions) *ConsoleHandler {
	return &ConsoleHandler{
		handler: slog.NewTextHandler(output, opts),
		output:  output,
	}
}

func (h *ConsoleHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

func (h *ConsoleHandler) Handle(ctx context.Context, record slog.Record) error {
	var levelStr string
	switch record.Level {
	case slog.LevelDebug:
		levelStr = "\033[36mDEBUG\033[0m"
	case slog.LevelInfo:
		levelStr = "\033[32mINFO\033[0m"
	case slog.LevelWarn:
		levelStr = "\033[33mWARN\033[0m"
	case slog.LevelError:
		levelStr = "\033[31mERROR\033[0m"
	default:
		levelStr = record.Level.String()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s [%s] %s", record.Time.Format("15:04:05.000"), levelStr, record.Message)

	write := func(a slog.Attr) bool {
		if a.Key != "component" {
			fmt.Fprintf(&b, " %s=%s", a.Key, a.Value)
		}
		return true
	}
	for _, a := range h.attrs {
		write(a)
	}
	record.Attrs(write)
	b.WriteByte('\n')

	_, err := io.WriteString(h.output, b.String())
	return err
}

func (h *ConsoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ConsoleHandler{
		handler: h.handler.WithAttrs(attrs),
		output:  h.output,
		attrs:   append(append([]slog.Attr(nil), h.attrs...), attrs...),
	}
}

func (h *ConsoleHandler) WithGroup(name string) slog.Handler {
	return &ConsoleHandler{
		handler: h.handler.WithGroup(name),
		output:  h.output,
		attrs:   h.attrs,
	}
}
