// Package logger holds the process-wide logrus entry and threads
// request-scoped entries through a context.Context.
package logger

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Output formats accepted by SetLogFormat.
const (
	FormatText = "fmt"
	FormatJSON = "json"
)

var (
	// L is the process-wide entry. Commands and workers derive their
	// entries from it.
	L = logrus.NewEntry(newBase())
	// G returns the entry carried by a context.
	G = GetLogger
)

type ctxKey struct{}

// jsonKeys renames logrus' default keys for log shippers.
var jsonKeys = logrus.FieldMap{
	logrus.FieldKeyTime:  "timestamp",
	logrus.FieldKeyLevel: "level",
	logrus.FieldKeyMsg:   "message",
}

func newBase() *logrus.Logger {
	base := logrus.New()
	base.SetFormatter(formatterFor(FormatText))
	return base
}

// formatterFor picks the formatter for name; anything other than json
// gets the text formatter.
func formatterFor(name string) logrus.Formatter {
	if strings.EqualFold(strings.TrimSpace(name), FormatJSON) {
		return &logrus.JSONFormatter{FieldMap: jsonKeys, TimestampFormat: time.RFC3339}
	}
	return &logrus.TextFormatter{FullTimestamp: true, TimestampFormat: time.RFC3339}
}

// WithLogger returns a copy of ctx carrying entry.
func WithLogger(ctx context.Context, entry *logrus.Entry) context.Context {
	return context.WithValue(ctx, ctxKey{}, entry.WithContext(ctx))
}

// GetLogger returns the entry stored by WithLogger, falling back to L.
func GetLogger(ctx context.Context) *logrus.Entry {
	if entry, ok := ctx.Value(ctxKey{}).(*logrus.Entry); ok && entry != nil {
		return entry
	}
	return L.WithContext(ctx)
}

// SetLogLevel applies a level name such as "debug" or "warn". An empty name
// leaves the level unchanged.
func SetLogLevel(name string) error {
	if strings.TrimSpace(name) == "" {
		return nil
	}
	lvl, err := logrus.ParseLevel(strings.TrimSpace(name))
	if err != nil {
		return err
	}
	L.Logger.SetLevel(lvl)
	return nil
}

func SetLogFormat(name string) {
	L.Logger.SetFormatter(formatterFor(name))
}

func SetLogOutput(w io.Writer) {
	L.Logger.SetOutput(w)
}
