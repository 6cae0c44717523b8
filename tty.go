//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package main

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// terminalFlusher drops keystrokes typed ahead while a command ran, so
// they do not leak into the list view after the command line closes.
type terminalFlusher struct {
	fd int
}

func newTerminalFlusher(f *os.File) terminalFlusher {
	return terminalFlusher{fd: int(f.Fd())}
}

// FlushInput rewrites the current termios with the flush variant of the
// set request, which discards pending input.
func (t terminalFlusher) FlushInput() error {
	termios, err := unix.IoctlGetTermios(t.fd, ioctlGetTermios)
	if err != nil {
		return fmt.Errorf("get termios: %w", err)
	}
	if err := unix.IoctlSetTermios(t.fd, ioctlSetTermiosFlush, termios); err != nil {
		return fmt.Errorf("flush input: %w", err)
	}
	return nil
}
