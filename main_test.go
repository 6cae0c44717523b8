package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected flags
		done     bool
		wantErr  bool
	}{
		{name: "none", args: nil},
		{name: "filter", args: []string{"3000"}, expected: flags{filter: "3000"}},
		{
			name:     "config and log file",
			args:     []string{"--config", "/tmp/c.hcl", "--log-file", "/tmp/s.log", "node"},
			expected: flags{configPath: "/tmp/c.hcl", logFile: "/tmp/s.log", filter: "node"},
		},
		{name: "version", args: []string{"-v"}, done: true},
		{name: "missing path", args: []string{"--config"}, wantErr: true},
		{name: "unknown flag", args: []string{"--bogus"}, wantErr: true},
		{name: "two filters", args: []string{"3000", "node"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, done, err := parseArgs(tt.args)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.done, done)
			if !tt.done {
				assert.Equal(t, tt.expected, got)
			}
		})
	}
}
