package cmdline

import (
	"errors"
	"fmt"
	"strconv"
	"syscall"

	"sweeptop/internal/proclist"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrUsage          = errors.New("bad arguments")
	ErrInvalidPID     = errors.New("invalid pid")
	ErrUnknownColumn  = errors.New("unknown column")
	ErrUnavailable    = errors.New("not available")
)

// CommandError is a command failure. Error returns the text shown on the
// status line; Unwrap returns the cause.
type CommandError struct {
	Msg string
	Err error
}

func (e *CommandError) Error() string {
	return e.Msg
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

func failf(cause error, format string, args ...any) *CommandError {
	return &CommandError{Msg: fmt.Sprintf(format, args...), Err: cause}
}

// dispatch runs a parsed command. There is exactly one case per Kind.
func (s *Session) dispatch(cmd *Command) error {
	kind, ok := Lookup(cmd.Name)
	if !ok {
		return failf(ErrUnknownCommand, "Not an editor command: %s", cmd.Name)
	}

	switch kind {
	case KindExec:
		return s.execCommand(cmd.Args)
	case KindKill:
		return s.killCommand(cmd.Args)
	case KindQuit:
		return s.quitCommand(cmd.Args)
	case KindSort:
		return s.sortCommand(cmd.Args)
	case KindTree:
		return s.treeCommand(cmd.Args)
	default:
		panic(fmt.Sprintf("cmdline: unhandled command kind %d", kind))
	}
}

// execCommand launches a program and does not wait for it.
func (s *Session) execCommand(args []string) error {
	if len(args) != 1 {
		return failf(ErrUsage, "Usage: exec COMMAND")
	}
	if s.procs == nil {
		return failf(ErrUnavailable, "exec: %v", ErrUnavailable)
	}

	if err := s.procs.Spawn(args[0]); err != nil {
		return failf(err, "Failed to create process: %s", errorCode(err))
	}
	s.logger.Info("spawned process", "command", args[0])
	return nil
}

// killCommand terminates each listed pid. A pid that does not parse or cannot
// be opened is skipped; a pid that cannot be terminated stops the command.
// Only the last failure is returned.
func (s *Session) killCommand(args []string) error {
	if len(args) == 0 {
		return failf(ErrUsage, "Usage: kill PID(s)")
	}
	if s.procs == nil {
		return failf(ErrUnavailable, "kill: %v", ErrUnavailable)
	}

	var last error
	for _, arg := range args {
		// pids are positive pid_t values
		pid, err := strconv.ParseInt(arg, 10, 32)
		if err != nil || pid <= 0 {
			last = failf(ErrInvalidPID, "Not a valid pid: %s", arg)
			s.logger.Warn("kill: invalid pid", "arg", arg)
			continue
		}

		h, err := s.procs.Open(int(pid))
		if err != nil {
			last = failf(err, "Could not open process: %d: %s", pid, errorCode(err))
			s.logger.Warn("kill: open failed", "pid", pid, "error", err)
			continue
		}

		err = h.Terminate()
		if cerr := h.Close(); cerr != nil {
			s.logger.Debug("kill: close handle failed", "pid", pid, "error", cerr)
		}
		if err != nil {
			s.logger.Warn("kill: terminate failed", "pid", pid, "error", err)
			return failf(err, "Failed to kill process: %d: %s", pid, errorCode(err))
		}
		s.logger.Info("killed process", "pid", pid)
	}

	return last
}

func (s *Session) quitCommand([]string) error {
	s.logger.Info("quit requested")
	s.exit.Exit(0)
	return nil
}

// sortCommand reorders the process list by a named column. An unknown column
// leaves the order unchanged.
func (s *Session) sortCommand(args []string) error {
	if len(args) != 1 {
		return failf(ErrUsage, "Usage: sort COLUMN")
	}
	if s.list == nil {
		return failf(ErrUnavailable, "sort: %v", ErrUnavailable)
	}

	t, ok := s.list.ResolveSortType(args[0])
	if !ok {
		return failf(ErrUnknownColumn, "Unknown column: %s", args[0])
	}
	s.list.ChangeSortOrder(t)
	return nil
}

func (s *Session) treeCommand(args []string) error {
	if len(args) != 0 {
		return failf(ErrUsage, "Error: trailing characters")
	}
	if s.list == nil {
		return failf(ErrUnavailable, "tree: %v", ErrUnavailable)
	}

	s.list.ChangeSortOrder(proclist.SortByTree)
	return nil
}

// errorCode formats the OS error number carried by err, if any.
func errorCode(err error) string {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return fmt.Sprintf("0x%08x (%s)", uint32(errno), errno.Error())
	}
	return err.Error()
}
