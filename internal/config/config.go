// Package config loads the sweeptop configuration file.
//
// The file is HCL with optional top-level attributes:
//
//	refresh_interval  = "2s"
//	default_sort      = "port"
//	show_system_ports = false
//	history_size      = 0      # 0 keeps every command
//	kill_signal       = "TERM"
//	log_file          = ""
//	log_level         = "info"
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"golang.org/x/sys/unix"

	"sweeptop/internal/procctl"
	"sweeptop/internal/proclist"
)

const (
	// DefaultRefreshInterval is how often the process list auto-refreshes
	DefaultRefreshInterval = 2 * time.Second

	// MinRefreshInterval keeps lsof from being run in a tight loop
	MinRefreshInterval = 250 * time.Millisecond
)

// Config is the resolved configuration.
type Config struct {
	RefreshInterval time.Duration
	DefaultSort     proclist.SortType
	ShowSystemPorts bool
	HistorySize     int
	KillSignal      unix.Signal
	LogFile         string
	LogLevel        slog.Level
}

// file mirrors the HCL attributes before validation.
type file struct {
	RefreshInterval *string `hcl:"refresh_interval,optional"`
	DefaultSort     *string `hcl:"default_sort,optional"`
	ShowSystemPorts *bool   `hcl:"show_system_ports,optional"`
	HistorySize     *int    `hcl:"history_size,optional"`
	KillSignal      *string `hcl:"kill_signal,optional"`
	LogFile         *string `hcl:"log_file,optional"`
	LogLevel        *string `hcl:"log_level,optional"`
}

// Default returns the configuration used when no file exists
func Default() *Config {
	return &Config{
		RefreshInterval: DefaultRefreshInterval,
		DefaultSort:     proclist.SortByPort,
		KillSignal:      unix.SIGTERM,
		LogLevel:        slog.LevelInfo,
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/sweeptop/config.hcl, falling back to
// ~/.config when XDG_CONFIG_HOME is unset.
func DefaultPath() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to locate home directory: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "sweeptop", "config.hcl"), nil
}

// Load reads the file at path. A missing file yields Default().
func Load(path string) (*Config, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(src, path)
}

// Parse decodes HCL source. filename is used in diagnostics only.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	f, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse config file %s: %s", filename, diags.Error())
	}

	var raw file
	if diags := gohcl.DecodeBody(f.Body, nil, &raw); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode config file %s: %s", filename, diags.Error())
	}

	cfg, err := raw.resolve()
	if err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", filename, err)
	}
	return cfg, nil
}

func (f *file) resolve() (*Config, error) {
	cfg := Default()

	if f.RefreshInterval != nil {
		d, err := time.ParseDuration(*f.RefreshInterval)
		if err != nil {
			return nil, fmt.Errorf("refresh_interval: %w", err)
		}
		if d < MinRefreshInterval {
			return nil, fmt.Errorf("refresh_interval: %s is below the minimum of %s", d, MinRefreshInterval)
		}
		cfg.RefreshInterval = d
	}

	if f.DefaultSort != nil {
		t, ok := proclist.ResolveSortType(*f.DefaultSort)
		if !ok {
			return nil, fmt.Errorf("default_sort: unknown column %q", *f.DefaultSort)
		}
		cfg.DefaultSort = t
	}

	if f.ShowSystemPorts != nil {
		cfg.ShowSystemPorts = *f.ShowSystemPorts
	}

	if f.HistorySize != nil {
		if *f.HistorySize < 0 {
			return nil, fmt.Errorf("history_size: must not be negative, got %d", *f.HistorySize)
		}
		cfg.HistorySize = *f.HistorySize
	}

	if f.KillSignal != nil {
		sig, err := procctl.ParseSignal(*f.KillSignal)
		if err != nil {
			return nil, fmt.Errorf("kill_signal: %w", err)
		}
		cfg.KillSignal = sig
	}

	if f.LogFile != nil {
		cfg.LogFile = *f.LogFile
	}

	if f.LogLevel != nil {
		var level slog.Level
		if err := level.UnmarshalText([]byte(strings.TrimSpace(*f.LogLevel))); err != nil {
			return nil, fmt.Errorf("log_level: %w", err)
		}
		cfg.LogLevel = level
	}

	return cfg, nil
}
