// Package logger configures the global zerolog logger for the CLI.
//
// Diagnostics go to a JSON log file under the aidev home directory, never to
// the terminal: stdout belongs to the launched tool (or to exported config),
// and stderr is reserved for user-facing status lines. Passing verbose adds a
// human-readable console writer on stderr for debugging.
package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init configures the process-wide zerolog logger. Every entry carries a
// session id so one invocation's lines can be correlated in the shared file.
func Init(logDir, level string, verbose bool) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	var writers []io.Writer
	if err := os.MkdirAll(logDir, 0o700); err == nil {
		f, ferr := os.OpenFile(filepath.Join(logDir, "aidev.log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
		if ferr == nil {
			writers = append(writers, f)
		}
	}
	if verbose {
		writers = append(writers, zerolog.ConsoleWriter{Out: os.Stderr})
	}

	if len(writers) == 0 {
		log.Logger = zerolog.Nop()
		return
	}

	log.Logger = zerolog.New(zerolog.MultiLevelWriter(writers...)).With().
		Timestamp().
		Str("session", uuid.NewString()).
		Logger()
}

// Silence replaces the global logger with a no-op logger. Tests use it to
// keep expected warnings out of their output.
func Silence() {
	log.Logger = zerolog.Nop()
}
