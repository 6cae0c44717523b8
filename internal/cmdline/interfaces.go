package cmdline

import "sweeptop/internal/proclist"

// ProcessList is the process list the sort and tree commands reorder.
type ProcessList interface {
	ChangeSortOrder(t proclist.SortType)
	ResolveSortType(name string) (proclist.SortType, bool)
}

// ProcessController opens processes for the kill command and launches
// programs for exec.
type ProcessController interface {
	Open(pid int) (ProcessHandle, error)
	Spawn(cmdline string) error
}

// ProcessHandle is an opened process.
type ProcessHandle interface {
	Terminate() error
	Close() error
}

// InputFlusher discards key input that is queued but not yet read.
type InputFlusher interface {
	FlushInput() error
}

// Exiter ends the host program.
type Exiter interface {
	Exit(code int)
}

// ExitFunc adapts a function to Exiter.
type ExitFunc func(code int)

func (f ExitFunc) Exit(code int) { f(code) }
