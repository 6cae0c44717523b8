package main

import (
	"time"

	"sweeptop/internal/proclist"
)

// TUI messages for the Elm architecture

// tickMsg is sent periodically to trigger auto-refresh
type tickMsg time.Time

// refreshMsg contains the updated process list or an error
type refreshMsg struct {
	processes []proclist.Process
	err       error
}

// killResultMsg reports the result of a kill operation
type killResultMsg struct {
	err       error
	pid       int
	port      int
	remaining int // how many left to kill
}
