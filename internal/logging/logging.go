package logging

import (
	"io"
	"os"
	"strings"
	"sync"

	"restaurant-seating/internal/config"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	mu     sync.Mutex
	out    io.Writer = os.Stdout
	closer io.Closer
)

// Init configures the global zerolog logger. When cfg.File is set, log lines
// go to both stdout and a size-capped file that rotates one backup.
func Init(cfg config.LogConfig) error {
	level := zerolog.InfoLevel
	if v := strings.TrimSpace(cfg.Level); v != "" {
		if parsed, err := zerolog.ParseLevel(strings.ToLower(v)); err == nil {
			level = parsed
		}
	}

	var base io.Writer = os.Stdout
	var fileCloser io.Closer
	if path := strings.TrimSpace(cfg.File); path != "" {
		fw, err := newRotatingWriter(path, cfg.MaxMB)
		if err != nil {
			return err
		}
		base = io.MultiWriter(os.Stdout, fw)
		fileCloser = fw
	}

	output := base
	if cfg.Pretty {
		output = zerolog.ConsoleWriter{Out: base}
	}

	zerolog.SetGlobalLevel(level)
	logger := zerolog.New(output).With().Timestamp().Logger()
	if cfg.SampleEvery > 1 {
		logger = logger.Sample(&zerolog.BasicSampler{N: uint32(cfg.SampleEvery)})
	}
	log.Logger = logger

	mu.Lock()
	prev := closer
	out = base
	closer = fileCloser
	mu.Unlock()
	if prev != nil {
		_ = prev.Close()
	}
	return nil
}

// Writer is the raw destination selected by Init. The HTTP request logger
// writes its JSON lines here so both loggers share one sink.
func Writer() io.Writer {
	mu.Lock()
	defer mu.Unlock()
	return out
}

func Close() error {
	mu.Lock()
	c := closer
	closer = nil
	out = os.Stdout
	mu.Unlock()
	if c == nil {
		return nil
	}
	return c.Close()
}
