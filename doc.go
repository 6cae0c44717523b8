// Package main implements sweeptop, a TUI process monitor for processes
// listening on TCP ports.
//
// sweeptop provides an interactive terminal interface to:
//   - View all processes listening on TCP ports, flat or as a parent/child tree
//   - Select and kill multiple processes at once
//   - Filter by port number or process name
//   - Search processes interactively
//   - Run vi-style ":" commands (kill, exec, sort, tree, quit)
//
// The application uses the Bubbletea framework with the Elm architecture pattern
// for state management.
//
// # Architecture
//
// The codebase is organized into the following components:
//
//   - model.go: Core TUI model with Init, Update, and View methods
//   - keys.go: Key bindings, and the translation of key messages for the command line
//   - messages.go: TUI message types for the Elm architecture
//   - styles.go: Lipgloss styles for terminal rendering
//   - helpers.go: Width-aware string formatting
//   - tty.go: Discarding type-ahead input when the command line closes
//   - internal/proclist: Process discovery (Scanner interface) and ordering
//   - internal/procctl: Signalling and launching processes
//   - internal/cmdline: The ":" command line (tokenizer, commands, history)
//   - internal/config: HCL configuration file
//
// The Scanner and ProcessKiller interfaces allow for custom implementations
// and easier testing through dependency injection.
package main
