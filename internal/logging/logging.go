// Package logging builds the structured logger used across citetrack and
// carries it through context.Context.
package logging

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// TimeFormat is the timestamp layout, e.g. "14:32:01.45".
const TimeFormat = "15:04:05.00"

// New creates a logger writing to w at the given level.
func New(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      TimeFormat,
		Level:           level,
	})
}

// Discard returns a logger that drops everything. Handy in tests.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}

// ParseLevel maps a config string to a log level. The empty string means
// info and "warning" is accepted as an alias for warn.
func ParseLevel(s string) (log.Level, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "":
		return log.InfoLevel, nil
	case "warning":
		return log.WarnLevel, nil
	}
	level, err := log.ParseLevel(s)
	if err != nil {
		return log.InfoLevel, fmt.Errorf("unknown log level %q: %w", s, err)
	}
	return level, nil
}

// Progress logs completion of an operation with its elapsed time.
type Progress struct {
	logger *log.Logger
	start  time.Time
}

// NewProgress starts timing an operation.
func NewProgress(l *log.Logger) *Progress {
	return &Progress{logger: l, start: time.Now()}
}

// Done logs msg with the elapsed time, e.g. "Ingested 42 records (1.234s)".
func (p *Progress) Done(msg string, keyvals ...any) {
	p.logger.Info(fmt.Sprintf("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond)), keyvals...)
}

type ctxKey int

const loggerKey ctxKey = 0

// WithLogger returns a copy of ctx carrying l.
func WithLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// FromContext returns the logger stored in ctx, or log.Default() if none.
func FromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
