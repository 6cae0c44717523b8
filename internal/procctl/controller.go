// Package procctl sends signals to processes and launches new ones.
package procctl

import (
	"errors"
	"fmt"
	"math"
	"os/exec"
	"strings"
	"syscall"

	"github.com/google/shlex"
	"golang.org/x/sys/unix"
)

// ErrEmptyCommand is returned by Spawn for a blank command line.
var ErrEmptyCommand = errors.New("empty command line")

// Controller opens, signals and spawns processes. Terminate sends Signal.
type Controller struct {
	Signal unix.Signal
}

// New returns a Controller that terminates processes with sig
func New(sig unix.Signal) *Controller {
	return &Controller{Signal: sig}
}

// Handle refers to an opened process until Close is called.
type Handle struct {
	pid    int
	fd     int // pidfd, or -1 when signalling by pid
	signal unix.Signal
}

// Open resolves pid to a handle. It fails when the process does not exist or
// cannot be signalled by the caller. pid must fit in a pid_t and be positive,
// so it can never address a process group or every process.
func (c *Controller) Open(pid int) (*Handle, error) {
	if pid <= 0 || pid > math.MaxInt32 {
		return nil, fmt.Errorf("invalid pid %d: %w", pid, unix.EINVAL)
	}
	return openProcess(pid, c.signal())
}

// Kill opens pid and terminates it
func (c *Controller) Kill(pid int) error {
	h, err := c.Open(pid)
	if err != nil {
		return err
	}
	defer h.Close()
	return h.Terminate()
}

// Spawn starts cmdline in its own session with stdio on the null device and does not wait for
// it. The child is reaped in the background.
func (c *Controller) Spawn(cmdline string) error {
	args, err := shlex.Split(cmdline)
	if err != nil {
		return fmt.Errorf("split %q: %w", cmdline, err)
	}
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return ErrEmptyCommand
	}

	cmd := exec.Command(args[0], args[1:]...)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	if err := cmd.Start(); err != nil {
		return err
	}

	go func() {
		_ = cmd.Wait()
	}()

	return nil
}

// PID returns the process id the handle refers to
func (h *Handle) PID() int {
	return h.pid
}

func (c *Controller) signal() unix.Signal {
	if c.Signal == 0 {
		return unix.SIGTERM
	}
	return c.Signal
}

// ParseSignal accepts "TERM", "SIGTERM", "kill", "9" style names
func ParseSignal(name string) (unix.Signal, error) {
	s := strings.ToUpper(strings.TrimSpace(name))
	if s == "" {
		return unix.SIGTERM, nil
	}
	if !strings.HasPrefix(s, "SIG") {
		s = "SIG" + s
	}
	if sig := unix.SignalNum(s); sig != 0 {
		return sig, nil
	}
	return 0, fmt.Errorf("unknown signal %q", name)
}
