package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/natefinch/lumberjack"
	"github.com/rs/zerolog"

	"github.com/de-tools/ai-foundry/pkg/services/config"
)

// New builds the process logger. Console output goes to stderr so that
// reports written to stdout stay machine readable.
func New(s config.LogSettings, verbose bool) (zerolog.Logger, io.Closer, error) {
	return newLogger(os.Stderr, s, verbose)
}

func newLogger(out io.Writer, s config.LogSettings, verbose bool) (zerolog.Logger, io.Closer, error) {
	level, err := zerolog.ParseLevel(s.Level)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("invalid log level %q: %w", s.Level, err)
	}
	if level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	if verbose {
		level = zerolog.DebugLevel
	}

	writer := out
	if s.Format == "console" {
		writer = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	}

	var closer io.Closer = nopCloser{}
	if s.File != "" {
		file := &lumberjack.Logger{
			Filename:   s.File,
			MaxSize:    20, // MB
			MaxBackups: 5,
			MaxAge:     28, // days
			Compress:   true,
		}
		writer = zerolog.MultiLevelWriter(writer, file)
		closer = file
	}

	logger := zerolog.New(writer).Level(level).With().Timestamp().Logger()
	return logger, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
