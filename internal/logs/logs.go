package logs

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

const defaultFilePath = "./logs/urldefang.log"

type Options struct {
	Level          string
	Output         string    // stdout|file|both
	Console        io.Writer // replaces os.Stdout for the stdout output (the CLI logs to stderr)
	Pretty         bool      // human-readable console lines instead of JSON
	FilePath       string
	FileMaxSizeMB  int
	FileMaxBackups int
	FileMaxAgeDays int
	FileCompress   bool
}

func New(level string) zerolog.Logger {
	return NewWithOptions(Options{Level: level, Output: "stdout"})
}

func ParseLevel(s string) zerolog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

func NewWithOptions(opt Options) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	console := opt.Console
	if console == nil {
		console = os.Stdout
	}
	if opt.Pretty {
		console = zerolog.ConsoleWriter{Out: console, TimeFormat: time.Kitchen}
	}

	var writers []io.Writer
	if opt.Output == "stdout" || opt.Output == "both" || opt.Output == "" {
		writers = append(writers, console)
	}
	if opt.Output == "file" || opt.Output == "both" {
		writers = append(writers, fileWriter(opt))
	}
	var w io.Writer
	switch len(writers) {
	case 0:
		w = console
	case 1:
		w = writers[0]
	default:
		w = zerolog.MultiLevelWriter(writers...)
	}
	return zerolog.New(w).With().Timestamp().Logger().Level(ParseLevel(opt.Level))
}

func fileWriter(opt Options) io.Writer {
	if opt.FilePath == "" {
		opt.FilePath = defaultFilePath
	}
	_ = os.MkdirAll(filepath.Dir(opt.FilePath), 0o755)
	return &lumberjack.Logger{
		Filename:   opt.FilePath,
		MaxSize:    max(1, opt.FileMaxSizeMB),
		MaxBackups: max(0, opt.FileMaxBackups),
		MaxAge:     max(0, opt.FileMaxAgeDays),
		Compress:   opt.FileCompress,
	}
}
