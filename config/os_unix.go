//go:build !windows

package config

import (
	"os"

	"golang.org/x/term"
)

const reservedNameChars = "/:"

// EnableColorOutput reports whether log levels written to stream may be
// colorized.
func EnableColorOutput(stream *os.File) bool {
	return colorAllowed() && term.IsTerminal(int(stream.Fd()))
}
