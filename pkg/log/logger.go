package log

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Category selects the log stream a message is written to.
type Category string

const (
	Application   Category = "application"
	DiscordEvents Category = "discord_events"
	Sheets        Category = "sheets"
	Catalog       Category = "catalog"
	Errors        Category = "error"
)

var categories = []Category{Application, DiscordEvents, Sheets, Catalog, Errors}

// Options configures SetupLogger.
type Options struct {
	// Dir receives one rotated file per category. Empty disables file output.
	Dir   string
	Level slog.Level
	// Console defaults to stdout (stderr for the error category) when nil.
	Console io.Writer
	// MaxSizeMB and MaxBackups bound each rotated file.
	MaxSizeMB  int
	MaxBackups int
}

// Logger owns the per-category handlers and their files.
type Logger struct {
	streams map[Category]*slog.Logger
	files   []*lumberjack.Logger
}

// Entry is a logger bound to a category and a set of fields.
type Entry struct {
	l *slog.Logger
}

var (
	mu sync.RWMutex
	// GlobalLogger is set by SetupLogger. Category helpers fall back to stdout before that.
	GlobalLogger *Logger
)

// SetupLogger installs the global logger. Calling it again replaces the previous
// logger and closes its files.
func SetupLogger(opts Options) error {
	l, err := New(opts)
	if err != nil {
		return err
	}
	mu.Lock()
	prev := GlobalLogger
	GlobalLogger = l
	mu.Unlock()
	if prev != nil {
		_ = prev.Close()
	}
	return nil
}

// New builds a Logger without installing it.
func New(opts Options) (*Logger, error) {
	if opts.MaxSizeMB <= 0 {
		opts.MaxSizeMB = 10
	}
	if opts.MaxBackups <= 0 {
		opts.MaxBackups = 5
	}
	if opts.Dir != "" {
		if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
	}

	l := &Logger{streams: make(map[Category]*slog.Logger, len(categories))}
	for _, c := range categories {
		var console io.Writer = os.Stdout
		if c == Errors {
			console = os.Stderr
		}
		if opts.Console != nil {
			console = opts.Console
		}

		out := console
		if opts.Dir != "" {
			f := &lumberjack.Logger{
				Filename:   filepath.Join(opts.Dir, string(c)+".log"),
				MaxSize:    opts.MaxSizeMB,
				MaxBackups: opts.MaxBackups,
				Compress:   true,
			}
			l.files = append(l.files, f)
			out = io.MultiWriter(console, f)
		}
		h := slog.NewTextHandler(out, &slog.HandlerOptions{Level: opts.Level})
		l.streams[c] = slog.New(h).With("category", string(c))
	}
	return l, nil
}

// Close closes the rotated files.
func (l *Logger) Close() error {
	if l == nil {
		return nil
	}
	var errs []error
	for _, f := range l.files {
		if err := f.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Category returns the entry for c.
func (l *Logger) Category(c Category) *Entry {
	if l == nil {
		return &Entry{l: slog.Default().With("category", string(c))}
	}
	if s, ok := l.streams[c]; ok {
		return &Entry{l: s}
	}
	return &Entry{l: l.streams[Application]}
}

func category(c Category) *Entry {
	mu.RLock()
	l := GlobalLogger
	mu.RUnlock()
	return l.Category(c)
}

// ApplicationLogger logs bootstrap and lifecycle messages.
func ApplicationLogger() *Entry { return category(Application) }

// DiscordLogger logs gateway and interaction traffic.
func DiscordLogger() *Entry { return category(DiscordEvents) }

// SheetsLogger logs row store calls.
func SheetsLogger() *Entry { return category(Sheets) }

// CatalogLogger logs NexusMods requests.
func CatalogLogger() *Entry { return category(Catalog) }

// ErrorLogger logs failures.
func ErrorLogger() *Entry { return category(Errors) }

// ParseLevel converts LOG_LEVEL values; unknown values mean INFO.
func ParseLevel(level string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithField returns a copy of e with key set.
func (e *Entry) WithField(key string, value any) *Entry {
	return &Entry{l: e.l.With(key, normalize(value))}
}

// WithFields returns a copy of e with all fields set.
func (e *Entry) WithFields(fields map[string]any) *Entry {
	args := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, k, normalize(v))
	}
	return &Entry{l: e.l.With(args...)}
}

// WithError attaches err as a string; a nil error returns e unchanged.
func (e *Entry) WithError(err error) *Entry {
	if err == nil {
		return e
	}
	return e.WithField("error", err.Error())
}

func (e *Entry) Debug(msg string) { e.l.Log(context.Background(), slog.LevelDebug, msg) }
func (e *Entry) Info(msg string)  { e.l.Log(context.Background(), slog.LevelInfo, msg) }
func (e *Entry) Warn(msg string)  { e.l.Log(context.Background(), slog.LevelWarn, msg) }
func (e *Entry) Error(msg string) { e.l.Log(context.Background(), slog.LevelError, msg) }

func (e *Entry) Debugf(format string, v ...any) { e.Debug(fmt.Sprintf(format, v...)) }
func (e *Entry) Infof(format string, v ...any)  { e.Info(fmt.Sprintf(format, v...)) }
func (e *Entry) Warnf(format string, v ...any)  { e.Warn(fmt.Sprintf(format, v...)) }
func (e *Entry) Errorf(format string, v ...any) { e.Error(fmt.Sprintf(format, v...)) }

// ErrorWithErr logs msg with err attached.
func (e *Entry) ErrorWithErr(msg string, err error) {
	e.WithError(err).Error(msg)
}

func normalize(v any) any {
	switch x := v.(type) {
	case error:
		if x == nil {
			return nil
		}
		return x.Error()
	case fmt.Stringer:
		if x == nil {
			return nil
		}
		return x.String()
	default:
		return v
	}
}
