package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Setup builds the process logger. Debug output is enabled by the debug flag
// or by a verbose level of 2 and above.
func Setup(debug bool, verbose int, format string) zerolog.Logger {
	return New(os.Stderr, debug, verbose, format)
}

// New builds a logger writing to w.
func New(w io.Writer, debug bool, verbose int, format string) zerolog.Logger {
	level := Level(debug, verbose)

	logger := zerolog.New(w).Level(level).With().Timestamp().Logger()

	if format != FormatJSON {
		logger = logger.Output(zerolog.ConsoleWriter{Out: w, FormatTimestamp: func(i any) string {
			return time.Now().Format(time.RFC3339)
		}}).Level(level)
	}

	if debug {
		logger = logger.With().Caller().Stack().Logger()
	}

	return logger
}

// Level maps the debug flag and verbose level onto a zerolog level.
func Level(debug bool, verbose int) zerolog.Level {
	if debug || verbose >= 2 {
		return zerolog.DebugLevel
	}
	return zerolog.InfoLevel
}
