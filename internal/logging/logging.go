package logging

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

const FileName = "shatilah.log"

type Options struct {
	Level string
	// File is appended to. Empty means Writer (or stderr) only.
	File   string
	Writer io.Writer
}

// New builds the process logger. The TUI owns the terminal, so callers
// normally log to a file inside the store directory.
//
// A bad level or an unopenable file still yields a usable logger; the
// problem is returned alongside it.
func New(opts Options) (zerolog.Logger, io.Closer, error) {
	level, levelErr := ParseLevel(opts.Level)

	var w io.Writer = os.Stderr
	if opts.Writer != nil {
		w = opts.Writer
	}
	closer := io.Closer(nopCloser{})

	var fileErr error
	if strings.TrimSpace(opts.File) != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			fileErr = err
		} else if f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err != nil {
			fileErr = err
		} else {
			closer = f
			if opts.Writer != nil {
				w = io.MultiWriter(opts.Writer, f)
			} else {
				w = f
			}
		}
	}

	zerolog.CallerMarshalFunc = func(_ uintptr, file string, line int) string {
		return filepath.Base(file) + ":" + strconv.Itoa(line)
	}
	logger := zerolog.New(w).Level(level).With().Timestamp().Caller().Logger()

	return logger, closer, errors.Join(levelErr, fileErr)
}

func ParseLevel(s string) (zerolog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return zerolog.InfoLevel, nil
	case "debug":
		return zerolog.DebugLevel, nil
	case "warn", "warning":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	case "off", "disabled":
		return zerolog.Disabled, nil
	default:
		return zerolog.InfoLevel, fmt.Errorf("invalid log level %q", s)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
