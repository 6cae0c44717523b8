// Package proclist holds the process list shown by sweeptop: discovery of
// processes listening on TCP ports and the ordering applied to them.
package proclist

// Process represents a process listening on one or more ports
type Process struct {
	PID     int
	PPID    int
	Ports   []int
	Name    string
	User    string
	Command string
}

// LowestPort returns the lowest port number for this process
func (p Process) LowestPort() int {
	if len(p.Ports) == 0 {
		return 0
	}
	return p.Ports[0] // Ports are kept sorted, so first is lowest
}

// Scanner discovers listening processes. LsofScanner is the default.
type Scanner interface {
	Scan() ([]Process, error)
}
