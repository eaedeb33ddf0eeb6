package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Level string
	JSON  bool
	// Out defaults to stderr so command output on stdout stays clean.
	Out io.Writer
	App string
}

func New(opt Options) (zerolog.Logger, error) {
	level, err := ParseLevel(opt.Level)
	if err != nil {
		return zerolog.Nop(), err
	}
	out := opt.Out
	if out == nil {
		out = os.Stderr
	}
	if !opt.JSON {
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
			NoColor:    os.Getenv("NO_COLOR") != "",
		}
	}
	app := strings.TrimSpace(opt.App)
	if app == "" {
		app = "kanban"
	}
	logger := zerolog.New(out).Level(level).With().Timestamp().Str("app", app).Logger()
	log.Logger = logger
	return logger, nil
}

func ParseLevel(s string) (zerolog.Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return zerolog.InfoLevel, nil
	}
	level, err := zerolog.ParseLevel(s)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q", s)
	}
	return level, nil
}

// OpenFile opens dir/kanban.log for appending. The terminal UI owns the
// screen, so it logs here instead of stderr.
func OpenFile(dir string) (*os.File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(filepath.Join(dir, "kanban.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}
