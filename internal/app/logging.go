package app

import (
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
	"gopkg.in/natefinch/lumberjack.v2"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// NewLogger writes to the rotating log file from cfg, and also to stderr when
// verbose is set. A log.file of "off" disables the file.
func NewLogger(cfg Config, verbose bool, stderr io.Writer) (hclog.Logger, io.Closer) {
	if stderr == nil {
		stderr = os.Stderr
	}
	level := hclog.LevelFromString(cfg.LogLevel)
	if level == hclog.NoLevel {
		level = hclog.Info
	}

	var writers []io.Writer
	var closer io.Closer = nopCloser{}
	if file := strings.TrimSpace(cfg.LogFile); file != "" && !strings.EqualFold(file, "off") {
		rotating := &lumberjack.Logger{
			Filename:   file,
			MaxSize:    5,
			MaxBackups: 3,
			MaxAge:     30,
		}
		writers = append(writers, rotating)
		closer = rotating
	}
	if verbose {
		writers = append(writers, stderr)
		if level > hclog.Debug {
			level = hclog.Debug
		}
	}
	if len(writers) == 0 {
		return hclog.NewNullLogger(), closer
	}

	logger := hclog.New(&hclog.LoggerOptions{
		Name:   "foodlog",
		Output: io.MultiWriter(writers...),
		Level:  level,
	})
	return logger, closer
}
