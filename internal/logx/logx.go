// Package logx builds the process logger.
package logx

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

// Config selects the level, format ("text" or "json") and destination.
type Config struct {
	Level  string
	Format string
	Output io.Writer
}

// New returns a logger for cfg. Output defaults to stderr. Text output is
// colored only on a terminal and when NO_COLOR is unset.
func New(cfg Config) (*logrus.Logger, error) {
	level := logrus.InfoLevel
	if s := strings.TrimSpace(cfg.Level); s != "" {
		parsed, err := logrus.ParseLevel(s)
		if err != nil {
			return nil, fmt.Errorf("logx: %w", err)
		}
		level = parsed
	}
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetLevel(level)
	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02T15:04:05.000Z07:00"})
	case "", "text":
		color := isTerminal(out) && strings.TrimSpace(os.Getenv("NO_COLOR")) == ""
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:    true,
			ForceColors:      color,
			DisableColors:    !color,
			QuoteEmptyFields: true,
		})
	default:
		return nil, fmt.Errorf("logx: unknown format %q", cfg.Format)
	}
	return logger, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
