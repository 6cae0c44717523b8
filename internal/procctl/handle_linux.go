package procctl

import (
	"errors"

	"golang.org/x/sys/unix"
)

// openProcess pins the process with a pidfd so a recycled pid is never
// signalled. Where pidfd_open is unavailable (old kernels, seccomp filters)
// it falls back to kill(2).
func openProcess(pid int, sig unix.Signal) (*Handle, error) {
	fd, err := unix.PidfdOpen(pid, 0)
	if err == nil {
		return &Handle{pid: pid, fd: fd, signal: sig}, nil
	}
	if errors.Is(err, unix.ESRCH) {
		return nil, err
	}
	if err := unix.Kill(pid, 0); err != nil {
		return nil, err
	}
	return &Handle{pid: pid, fd: -1, signal: sig}, nil
}

// Terminate signals the process
func (h *Handle) Terminate() error {
	if h.fd >= 0 {
		return unix.PidfdSendSignal(h.fd, h.signal, nil, 0)
	}
	return unix.Kill(h.pid, h.signal)
}

// Close releases the handle
func (h *Handle) Close() error {
	if h.fd < 0 {
		return nil
	}
	fd := h.fd
	h.fd = -1
	return unix.Close(fd)
}
