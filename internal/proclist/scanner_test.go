package proclist

import (
	"testing"
)

func TestParseLsofOutput(t *testing.T) {
	// Mock lookup that returns predictable results
	mockLookup := func(pid int) processInfo {
		switch pid {
		case 123:
			return processInfo{PPID: 1, Command: "node /Users/test/project/server.js"}
		case 456:
			return processInfo{PPID: 123, Command: "/usr/bin/python3 app.py"}
		case 789:
			return processInfo{PPID: 1, Command: "nginx: master process"}
		default:
			return processInfo{}
		}
	}

	tests := []struct {
		name     string
		input    string
		expected []Process
	}{
		{
			name: "single process single port",
			input: `COMMAND   PID   USER   FD   TYPE     DEVICE SIZE/OFF NODE NAME
node      123   user   22u  IPv4 0x123456      0t0  TCP *:3000 (LISTEN)`,
			expected: []Process{
				{PID: 123, PPID: 1, Ports: []int{3000}, Name: "node", User: "user", Command: "node /Users/test/project/server.js"},
			},
		},
		{
			name: "single process multiple ports",
			input: `COMMAND   PID   USER   FD   TYPE     DEVICE SIZE/OFF NODE NAME
node      123   user   22u  IPv4 0x123456      0t0  TCP *:3000 (LISTEN)
node      123   user   23u  IPv4 0x123457      0t0  TCP *:3001 (LISTEN)
node      123   user   24u  IPv4 0x123458      0t0  TCP *:8080 (LISTEN)`,
			expected: []Process{
				{PID: 123, PPID: 1, Ports: []int{3000, 3001, 8080}, Name: "node", User: "user", Command: "node /Users/test/project/server.js"},
			},
		},
		{
			name: "multiple processes keep lsof order",
			input: `COMMAND   PID   USER   FD   TYPE     DEVICE SIZE/OFF NODE NAME
node      123   user   22u  IPv4 0x123456      0t0  TCP *:3000 (LISTEN)
python3   456   root   5u   IPv4 0x789012      0t0  TCP 127.0.0.1:8000 (LISTEN)`,
			expected: []Process{
				{PID: 123, PPID: 1, Ports: []int{3000}, Name: "node", User: "user", Command: "node /Users/test/project/server.js"},
				{PID: 456, PPID: 123, Ports: []int{8000}, Name: "python3", User: "root", Command: "/usr/bin/python3 app.py"},
			},
		},
		{
			name: "deduplication across interfaces",
			input: `COMMAND   PID   USER   FD   TYPE     DEVICE SIZE/OFF NODE NAME
node      123   user   22u  IPv4 0x123456      0t0  TCP *:3000 (LISTEN)
node      123   user   23u  IPv6 0x123457      0t0  TCP [::]:3000 (LISTEN)`,
			expected: []Process{
				{PID: 123, PPID: 1, Ports: []int{3000}, Name: "node", User: "user", Command: "node /Users/test/project/server.js"},
			},
		},
		{
			name: "specific IP binding",
			input: `COMMAND   PID   USER   FD   TYPE     DEVICE SIZE/OFF NODE NAME
nginx     789   www    10u  IPv4 0xabcdef      0t0  TCP 192.168.1.100:80 (LISTEN)`,
			expected: []Process{
				{PID: 789, PPID: 1, Ports: []int{80}, Name: "nginx", User: "www", Command: "nginx: master process"},
			},
		},
		{
			name:     "empty output",
			input:    "",
			expected: []Process{},
		},
		{
			name: "malformed line (too few fields)",
			input: `COMMAND   PID   USER   FD   TYPE     DEVICE SIZE/OFF NODE NAME
incomplete line here`,
			expected: []Process{},
		},
		{
			name: "ports are sorted ascending",
			input: `COMMAND   PID   USER   FD   TYPE     DEVICE SIZE/OFF NODE NAME
node      123   user   22u  IPv4 0x123456      0t0  TCP *:9000 (LISTEN)
node      123   user   23u  IPv4 0x123457      0t0  TCP *:3000 (LISTEN)
node      123   user   24u  IPv4 0x123458      0t0  TCP *:5000 (LISTEN)`,
			expected: []Process{
				{PID: 123, PPID: 1, Ports: []int{3000, 5000, 9000}, Name: "node", User: "user", Command: "node /Users/test/project/server.js"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := parseLsofOutput(tt.input, mockLookup)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if len(result) != len(tt.expected) {
				t.Fatalf("expected %d processes, got %d", len(tt.expected), len(result))
			}

			for i, exp := range tt.expected {
				got := result[i]
				if got.PID != exp.PID || got.PPID != exp.PPID {
					t.Errorf("process %d: expected PID/PPID %d/%d, got %d/%d", i, exp.PID, exp.PPID, got.PID, got.PPID)
				}
				if got.Name != exp.Name || got.User != exp.User || got.Command != exp.Command {
					t.Errorf("PID %d: expected %q/%q/%q, got %q/%q/%q",
						exp.PID, exp.Name, exp.User, exp.Command, got.Name, got.User, got.Command)
				}
				if len(got.Ports) != len(exp.Ports) {
					t.Errorf("PID %d: expected %d ports, got %d", exp.PID, len(exp.Ports), len(got.Ports))
					continue
				}
				for j, port := range exp.Ports {
					if got.Ports[j] != port {
						t.Errorf("PID %d: expected port[%d]=%d, got %d", exp.PID, j, port, got.Ports[j])
					}
				}
			}
		})
	}
}

func TestParsePort(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
	}{
		{"wildcard IPv4", "*:3000", 3000},
		{"localhost", "127.0.0.1:8080", 8080},
		{"IPv6 localhost", "[::1]:3000", 3000},
		{"IPv6 wildcard", "[::]:8080", 8080},
		{"no colon", "3000", 0},
		{"empty string", "", 0},
		{"invalid port", "*:abc", 0},
		{"only colon", ":", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := parsePort(tt.input)
			if result != tt.expected {
				t.Errorf("parsePort(%q) = %d, expected %d", tt.input, result, tt.expected)
			}
		})
	}
}

func TestParsePsLine(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected processInfo
	}{
		{"ppid and command", "    1 /usr/sbin/sshd -D\n", processInfo{PPID: 1, Command: "/usr/sbin/sshd -D"}},
		{"wide ppid padding", "  4821   node   server.js", processInfo{PPID: 4821, Command: "node   server.js"}},
		{"no ppid", "node server.js", processInfo{Command: "node server.js"}},
		{"empty", "", processInfo{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parsePsLine(tt.input)
			if got != tt.expected {
				t.Errorf("parsePsLine(%q) = %+v, expected %+v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestProcessLowestPort(t *testing.T) {
	tests := []struct {
		name     string
		ports    []int
		expected int
	}{
		{"single port", []int{3000}, 3000},
		{"multiple ports sorted", []int{80, 443, 8080}, 80},
		{"empty ports", []int{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Process{Ports: tt.ports}
			if result := p.LowestPort(); result != tt.expected {
				t.Errorf("LowestPort() = %d, expected %d", result, tt.expected)
			}
		})
	}
}

var _ Scanner = LsofScanner{}
