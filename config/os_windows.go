//go:build windows

package config

import (
	"os"

	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"
	"golang.org/x/term"
)

const reservedNameChars = `<>":/\|?*;`

// vt100 is ENABLE_VIRTUAL_TERMINAL_PROCESSING console mode flag.
const vt100 uint32 = 0x4

// EnableColorOutput reports whether log levels written to stream may be
// colorized and switches console to VT100 sequence processing when they may.
// Consoles older than Windows 10 do not understand escape sequences.
func EnableColorOutput(stream *os.File) bool {
	if !colorAllowed() || !term.IsTerminal(int(stream.Fd())) {
		return false
	}
	if major, err := windowsMajorVersion(); err != nil || major < 10 {
		return false
	}

	h := windows.Handle(stream.Fd())
	var mode uint32
	if err := windows.GetConsoleMode(h, &mode); err != nil {
		return false
	}
	return windows.SetConsoleMode(h, mode|vt100) == nil
}

func windowsMajorVersion() (uint64, error) {
	k, err := registry.OpenKey(registry.LOCAL_MACHINE, `SOFTWARE\Microsoft\Windows NT\CurrentVersion`, registry.QUERY_VALUE)
	if err != nil {
		return 0, err
	}
	defer k.Close()

	v, _, err := k.GetIntegerValue("CurrentMajorVersionNumber")
	return v, err
}
