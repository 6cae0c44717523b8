//go:build unix && !linux

package procctl

import "golang.org/x/sys/unix"

// openProcess checks the process exists and may be signalled.
func openProcess(pid int, sig unix.Signal) (*Handle, error) {
	if err := unix.Kill(pid, 0); err != nil {
		return nil, err
	}
	return &Handle{pid: pid, fd: -1, signal: sig}, nil
}

// Terminate signals the process
func (h *Handle) Terminate() error {
	return unix.Kill(h.pid, h.signal)
}

// Close releases the handle
func (h *Handle) Close() error {
	return nil
}
