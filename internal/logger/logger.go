// Package logger holds the process-wide logrus logger.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Log is the global logger; it is usable before Init, logging to stderr at
// info level.
var Log = logrus.New()

// Init configures the global logger. Empty level or format fall back to the
// LOG_LEVEL and LOG_FORMAT environment variables, then to "info" and "text".
// Output goes to out; the terminal belongs to the screen while playing, so
// callers usually pass a file.
func Init(level, format string, out io.Writer) {
	if level == "" {
		level = os.Getenv("LOG_LEVEL")
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	Log.SetLevel(lvl)

	if format == "" {
		format = os.Getenv("LOG_FORMAT")
	}
	if strings.ToLower(format) == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			DisableColors: true,
		})
	}

	if out == nil {
		out = os.Stderr
	}
	Log.SetOutput(out)
}

// OpenFile opens (appending) the named log file; "-" or "" selects stderr.
// The returned closer is always safe to call.
func OpenFile(name string) (io.Writer, func() error, error) {
	if name == "" || name == "-" {
		return os.Stderr, func() error { return nil }, nil
	}
	f, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, func() error { return nil }, errors.Wrap(err, "opening log file")
	}
	return f, f.Close, nil
}

// Component returns an entry tagged with the given component name.
func Component(name string) *logrus.Entry {
	return Log.WithField("component", name)
}
