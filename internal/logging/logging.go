// Package logging builds the process logger and adapts it to the
// calculation engine's Logger interface.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rgehrsitz/finhealth/internal/calculation"
	"github.com/sirupsen/logrus"
)

// Output formats
const (
	FormatText = "text"
	FormatJSON = "json"
)

// New creates a logrus logger writing to stderr at the given level and format
func New(level, format string) (*logrus.Logger, error) {
	return NewWithWriter(os.Stderr, level, format)
}

// NewWithWriter is New with an explicit destination
func NewWithWriter(w io.Writer, level, format string) (*logrus.Logger, error) {
	logger := logrus.New()
	logger.SetOutput(w)

	lvl, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	logger.SetLevel(lvl)

	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatText:
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case FormatJSON:
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, fmt.Errorf("unknown log format %q (want text or json)", format)
	}
	return logger, nil
}

// CalculationLogger routes engine messages to a logrus entry
type CalculationLogger struct {
	entry *logrus.Entry
}

var _ calculation.Logger = (*CalculationLogger)(nil)

// NewCalculationLogger wraps logger, tagging every line with component=calculation
func NewCalculationLogger(logger *logrus.Logger) *CalculationLogger {
	return &CalculationLogger{entry: logger.WithField("component", "calculation")}
}

func (l *CalculationLogger) Debugf(format string, args ...any) { l.entry.Debugf(format, args...) }
func (l *CalculationLogger) Infof(format string, args ...any)  { l.entry.Infof(format, args...) }
func (l *CalculationLogger) Warnf(format string, args ...any)  { l.entry.Warnf(format, args...) }
func (l *CalculationLogger) Errorf(format string, args ...any) { l.entry.Errorf(format, args...) }
