// Package logging provides zerolog construction and context helpers shared by
// every ghscout component.
//
// A single logger is built per CLI invocation from the resolved configuration,
// tagged with a trace ID, and carried through context.Context so that the
// cache, API client, and data service log with the same fields.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Output formats and destinations.
const (
	FormatConsole = "console"
	FormatJSON    = "json"

	OutputStderr = "stderr"
	OutputFile   = "file"
)

// Config controls how NewLogger builds a logger.
type Config struct {
	// Level is a zerolog level name (trace, debug, info, warn, error).
	Level string

	// Format is FormatConsole or FormatJSON.
	Format string

	// Output is OutputStderr or OutputFile.
	Output string

	// File is the log file path used when Output is OutputFile.
	File string

	// Caller adds file:line to every event.
	Caller bool
}

// Result is the logger produced by NewLogger together with its file handle.
type Result struct {
	Logger zerolog.Logger

	// FilePath is the log file in use, empty when logging to stderr.
	FilePath string

	// FallbackReason explains why file logging was abandoned, if it was.
	FallbackReason string

	file *os.File
}

// UsingFile reports whether log events are written to a file.
func (r *Result) UsingFile() bool {
	return r.file != nil
}

// Close releases the log file handle, if any.
func (r *Result) Close() error {
	if r == nil || r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}

// NewLogger builds a logger from cfg. A file that cannot be opened falls back
// to stderr and records the reason on the result.
func NewLogger(cfg Config) *Result {
	return newLogger(cfg, os.Stderr)
}

func newLogger(cfg Config, stderr io.Writer) *Result {
	res := &Result{}

	var out io.Writer = stderr
	if cfg.Output == OutputFile && cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
		if err != nil {
			res.FallbackReason = err.Error()
		} else {
			res.file = f
			res.FilePath = cfg.File
			out = f
		}
	}

	if strings.EqualFold(cfg.Format, FormatConsole) || cfg.Format == "" {
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
			NoColor:    res.file != nil,
		}
	}

	ctx := zerolog.New(out).Level(ParseLevel(cfg.Level)).With().Timestamp()
	if cfg.Caller {
		ctx = ctx.Caller()
	}
	res.Logger = ctx.Logger()
	return res
}

// ParseLevel parses a level name, defaulting to info when it is empty or unknown.
func ParseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || level == "" {
		return zerolog.InfoLevel
	}
	return lvl
}

// ComponentLogger returns a child logger tagged with the component name.
func ComponentLogger(l zerolog.Logger, component string) zerolog.Logger {
	return l.With().Str("component", component).Logger()
}

// PrintFallbackWarning tells the user that file logging could not be set up.
func PrintFallbackWarning(w io.Writer, reason string) {
	_, _ = fmt.Fprintf(w, "Warning: could not open log file, logging to stderr: %s\n", reason)
}
