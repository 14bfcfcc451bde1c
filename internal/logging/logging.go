// Package logging builds the process logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// New returns a logger writing to stdout. format is "json" (default) or "text".
func New(level, format string) (*logrus.Logger, error) {
	return NewWithOutput(os.Stdout, level, format)
}

func NewWithOutput(w io.Writer, level, format string) (*logrus.Logger, error) {
	log := logrus.New()
	log.SetOutput(w)

	lvl, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	log.SetLevel(lvl)

	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "json":
		log.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02T15:04:05.000Z07:00"})
	case "text":
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return nil, fmt.Errorf("invalid LOG_FORMAT %q (json or text)", format)
	}
	return log, nil
}
