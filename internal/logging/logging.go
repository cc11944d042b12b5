package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Supported output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Options configures a logger.
type Options struct {
	Level  string    // panic, fatal, error, warn, info, debug, trace
	Format string    // "text" or "json"
	Out    io.Writer // defaults to os.Stderr
}

// New returns a logger configured from opts.
func New(opts Options) (*logrus.Logger, error) {
	l := logrus.New()

	out := opts.Out
	if out == nil {
		out = os.Stderr
	}
	l.SetOutput(out)

	level := opts.Level
	if level == "" {
		level = "info"
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level %q: %w", level, err)
	}
	l.SetLevel(lvl)

	switch strings.ToLower(opts.Format) {
	case "", FormatText:
		l.SetFormatter(&logrus.TextFormatter{
			DisableTimestamp: false,
			FullTimestamp:    true,
		})
	case FormatJSON:
		l.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, fmt.Errorf("unknown log format %q: supported formats are %q and %q", opts.Format, FormatText, FormatJSON)
	}

	return l, nil
}

// Discard returns a logger that drops every record.
func Discard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// OrDiscard returns l, or a discarding logger when l is nil.
func OrDiscard(l logrus.FieldLogger) logrus.FieldLogger {
	if l == nil {
		return Discard()
	}
	return l
}
