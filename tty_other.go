//go:build !(linux || darwin || freebsd || netbsd || openbsd || dragonfly)

package main

import "os"

type terminalFlusher struct{}

func newTerminalFlusher(*os.File) terminalFlusher { return terminalFlusher{} }

func (terminalFlusher) FlushInput() error { return nil }
