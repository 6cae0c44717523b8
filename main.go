package main

import (
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"sweeptop/internal/cmdline"
	"sweeptop/internal/config"
	"sweeptop/internal/procctl"
	"sweeptop/internal/proclist"
)

// version is set at build time via ldflags
var version = "dev"

// flags holds the parsed command line
type flags struct {
	configPath string
	logFile    string
	filter     string
}

func main() {
	f, done, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "sweeptop: %v\n", err)
		os.Exit(2)
	}
	if done {
		return
	}

	os.Exit(run(f))
}

// parseArgs handles the small flag set by hand. done reports that a flag
// like --version was served and the program should stop.
func parseArgs(args []string) (f flags, done bool, err error) {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "-v", "--version", "version":
			fmt.Println("sweeptop", version)
			return f, true, nil
		case "-h", "--help", "help":
			printHelp()
			return f, true, nil
		case "--config", "--log-file":
			if i+1 >= len(args) {
				return f, false, fmt.Errorf("%s requires a path", arg)
			}
			i++
			if arg == "--config" {
				f.configPath = args[i]
			} else {
				f.logFile = args[i]
			}
		default:
			if len(arg) > 1 && arg[0] == '-' {
				return f, false, fmt.Errorf("unknown flag %s", arg)
			}
			if f.filter != "" {
				return f, false, fmt.Errorf("unexpected argument %q", arg)
			}
			f.filter = arg
		}
	}
	return f, false, nil
}

func run(f flags) int {
	path := f.configPath
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			path = ""
		}
	}

	cfg := config.Default()
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "sweeptop: %v\n", err)
			return 1
		}
		cfg = loaded
	}
	if f.logFile != "" {
		cfg.LogFile = f.logFile
	}

	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "sweeptop: %v\n", err)
		return 1
	}
	defer closeLog()

	ctl := procctl.New(cfg.KillSignal)
	model := NewModel(Options{
		Config:        cfg,
		Scanner:       &proclist.LsofScanner{},
		Killer:        ctl,
		Processes:     processControl{ctl},
		Flusher:       newTerminalFlusher(os.Stdin),
		Logger:        logger,
		InitialFilter: f.filter,
	})
	logger.Info("starting", "version", version, "config", path, "sort", cfg.DefaultSort.String())

	p := tea.NewProgram(model, tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		fmt.Printf("Error running sweeptop: %v\n", err)
		return 1
	}
	if m, ok := final.(Model); ok {
		return m.ExitCode()
	}
	return 0
}

// newLogger writes to the configured log file, since the TUI owns the
// terminal. Without a file, logs are discarded.
func newLogger(cfg *config.Config) (*slog.Logger, func(), error) {
	if cfg.LogFile == "" {
		return slog.New(slog.DiscardHandler), func() {}, nil
	}
	file, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	handler := slog.NewTextHandler(file, &slog.HandlerOptions{Level: cfg.LogLevel})
	return slog.New(handler), func() { _ = file.Close() }, nil
}

// processControl exposes procctl handles through the command line's
// interface. A failed Open must return a nil interface, not a typed nil.
type processControl struct {
	*procctl.Controller
}

func (p processControl) Open(pid int) (cmdline.ProcessHandle, error) {
	h, err := p.Controller.Open(pid)
	if err != nil {
		return nil, err
	}
	return h, nil
}

func printHelp() {
	fmt.Println(`sweeptop - TUI for watching and managing processes listening on ports

Usage:
  sweeptop [flags] [port|name]

Flags:
  -h, --help         Show this help message
  -v, --version      Show version
  --config PATH      Configuration file (default $XDG_CONFIG_HOME/sweeptop/config.hcl)
  --log-file PATH    Write debug logs to PATH

Keybindings:
  ↑/k          Move up
  ↓/j          Move down
  space/tab    Select/deselect process
  a            Select all
  enter/d      Kill selected process(es)
  /            Search
  :            Command line
  r            Refresh
  s            Toggle system ports (<1024)
  q            Quit

Commands:
  :kill PID...     Terminate processes
  :exec COMMAND    Launch a program in the background
  :sort COLUMN     Sort by port, pid, name, user or command
  :tree            Show parents before their children
  :q, :quit        Quit`)
}
