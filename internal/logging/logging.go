package logging

import (
	"context"
	"io"
	"os"
	"strings"

	"newsrelay/internal/config"

	"github.com/sirupsen/logrus"
)

type ctxKey struct{}

// Init configures the standard logrus logger from cfg. The returned closer
// releases the log file when output is a path; it is a no-op otherwise.
func Init(cfg config.LoggingConfig) io.Closer {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		logrus.Warnf("Invalid log level '%s', using 'info' instead. Error: %v", cfg.Level, err)
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	format := strings.ToLower(cfg.Format)
	if format == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		format = "text"
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	output, closer, target := openOutput(cfg.Output)
	logrus.SetOutput(output)

	logrus.WithFields(logrus.Fields{
		"level":  level.String(),
		"format": format,
		"output": target,
	}).Debug("logger configured")
	return closer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// openOutput resolves stdout, stderr or a file path, falling back to stdout
// when the file cannot be opened.
func openOutput(name string) (io.Writer, io.Closer, string) {
	switch strings.ToLower(name) {
	case "", "stdout":
		return os.Stdout, nopCloser{}, "stdout"
	case "stderr":
		return os.Stderr, nopCloser{}, "stderr"
	}
	file, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		logrus.Warnf("Failed to open log file '%s', using 'stdout' instead. Error: %v", name, err)
		return os.Stdout, nopCloser{}, "stdout"
	}
	return file, file, name
}

// WithRequestID returns a context whose logger carries the request id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, logrus.WithField("request_id", id))
}

// FromContext returns the request-scoped entry, or a bare one.
func FromContext(ctx context.Context) *logrus.Entry {
	if entry, ok := ctx.Value(ctxKey{}).(*logrus.Entry); ok {
		return entry
	}
	return logrus.NewEntry(logrus.StandardLogger())
}
