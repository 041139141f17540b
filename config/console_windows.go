//go:build windows

package config

import (
	"os"

	"golang.org/x/sys/windows"
	"golang.org/x/term"
)

// EnableColorOutput reports whether stream is a console able to process
// VT100 sequences, switching processing on when it is off. Consoles before
// Windows 10 cannot do it.
func EnableColorOutput(stream *os.File) bool {
	if os.Getenv("NO_COLOR") != "" || windows.RtlGetVersion().MajorVersion < 10 {
		return false
	}
	if !term.IsTerminal(int(stream.Fd())) {
		return false
	}
	h := windows.Handle(stream.Fd())
	var mode uint32
	if err := windows.GetConsoleMode(h, &mode); err != nil {
		return false
	}
	if mode&windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING != 0 {
		return true
	}
	return windows.SetConsoleMode(h, mode|windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING) == nil
}
