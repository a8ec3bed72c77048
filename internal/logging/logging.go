// Package logging provides utilities for secure logging and error presentation.
// It includes a shared debug logger and functions for masking sensitive
// information in log messages, so that passwords, tokens, and reset artifacts
// are not accidentally exposed in logs or error messages shown to users.
package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Debug is the shared debug logger. It discards everything unless
// BEPPOFIT_VERBOSE=1 is set, in which case it writes human-readable
// output to stderr.
var Debug = newDebugLogger()

func newDebugLogger() zerolog.Logger {
	if os.Getenv("BEPPOFIT_VERBOSE") != "1" {
		return zerolog.New(io.Discard)
	}
	w := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	return zerolog.New(w).With().Timestamp().Logger().Level(zerolog.DebugLevel)
}
