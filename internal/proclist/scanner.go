package proclist

import (
	"errors"
	"os/exec"
	"slices"
	"strconv"
	"strings"
)

// LsofScanner lists processes listening on TCP ports using lsof, and looks up
// the parent pid and full command line of each one with ps.
type LsofScanner struct{}

// Scan returns all processes listening on TCP ports
func (LsofScanner) Scan() ([]Process, error) {
	// -iTCP: only TCP connections
	// -sTCP:LISTEN: only listening sockets
	// -n: no hostname resolution
	// -P: no port name resolution
	cmd := exec.Command("lsof", "-iTCP", "-sTCP:LISTEN", "-n", "-P")
	output, err := cmd.Output()
	if err != nil {
		// lsof returns exit code 1 if no results, which is fine
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
			return []Process{}, nil
		}
		return nil, err
	}

	return parseLsofOutput(string(output), lookupProcessInfo)
}

// processInfo is what ps knows about a pid that lsof does not
type processInfo struct {
	PPID    int
	Command string
}

// parseLsofOutput parses the lsof output into Process structs, grouping ports by PID.
// lookup is called once per PID.
func parseLsofOutput(output string, lookup func(pid int) processInfo) ([]Process, error) {
	lines := strings.Split(output, "\n")
	processMap := make(map[int]*Process)
	order := make([]int, 0)
	seenPorts := make(map[int]bool) // same port bound on several interfaces

	for i, line := range lines {
		if i == 0 || strings.TrimSpace(line) == "" {
			continue
		}

		// COMMAND PID USER FD TYPE DEVICE SIZE/OFF NODE NAME
		// node    123 user 22u IPv4 ...    0t0      TCP  *:3000 (LISTEN)
		fields := strings.Fields(line)
		if len(fields) < 9 {
			continue
		}

		nameField := fields[len(fields)-1]
		if nameField == "(LISTEN)" && len(fields) >= 10 {
			nameField = fields[len(fields)-2]
		}

		pid, err := strconv.Atoi(fields[1])
		if err != nil {
			continue
		}

		port := parsePort(nameField)
		if port == 0 || seenPorts[port] {
			continue
		}
		seenPorts[port] = true

		if proc, exists := processMap[pid]; exists {
			proc.Ports = append(proc.Ports, port)
			continue
		}

		info := lookup(pid)
		processMap[pid] = &Process{
			PID:     pid,
			PPID:    info.PPID,
			Ports:   []int{port},
			Name:    fields[0],
			User:    fields[2],
			Command: info.Command,
		}
		order = append(order, pid)
	}

	processes := make([]Process, 0, len(processMap))
	for _, pid := range order {
		proc := processMap[pid]
		slices.Sort(proc.Ports)
		processes = append(processes, *proc)
	}

	return processes, nil
}

// parsePort extracts the port number from a lsof NAME field
// ("*:3000", "127.0.0.1:8080", "[::1]:3000")
func parsePort(nameField string) int {
	idx := strings.LastIndexByte(nameField, ':')
	if idx < 0 {
		return 0
	}

	port, err := strconv.Atoi(nameField[idx+1:])
	if err != nil {
		return 0
	}

	return port
}

// lookupProcessInfo gets the parent pid and full command line for a PID
func lookupProcessInfo(pid int) processInfo {
	cmd := exec.Command("ps", "-p", strconv.Itoa(pid), "-o", "ppid=", "-o", "command=")
	output, err := cmd.Output()
	if err != nil {
		return processInfo{}
	}

	return parsePsLine(string(output))
}

// parsePsLine parses a "  PPID COMMAND..." line as printed by ps
func parsePsLine(line string) processInfo {
	line = strings.TrimSpace(line)
	ppidStr, command, _ := strings.Cut(line, " ")
	ppid, err := strconv.Atoi(ppidStr)
	if err != nil {
		return processInfo{Command: line}
	}
	return processInfo{PPID: ppid, Command: strings.TrimSpace(command)}
}
