package main

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"sweeptop/internal/cmdline"
	"sweeptop/internal/config"
	"sweeptop/internal/proclist"
)

// Configuration constants
const (
	// StatusDisplayDuration is how long status messages are shown
	StatusDisplayDuration = 3 * time.Second

	// SystemPortThreshold is the boundary between system and user ports
	SystemPortThreshold = 1024

	// DefaultCommandWidth is the minimum width for the command column
	DefaultCommandWidth = 50

	// MinTerminalWidth is the threshold for adjusting command width
	MinTerminalWidth = 60

	// ColumnWidthOffset accounts for other columns when calculating command width
	ColumnWidthOffset = 55

	// TreeIndent is the name column indentation per tree level
	TreeIndent = 2
)

// ProcessKiller terminates a process by pid
type ProcessKiller interface {
	Kill(pid int) error
}

// Options holds the collaborators and settings of a Model
type Options struct {
	Config        *config.Config
	Scanner       proclist.Scanner
	Killer        ProcessKiller
	Processes     cmdline.ProcessController
	Flusher       cmdline.InputFlusher
	Logger        *slog.Logger
	InitialFilter string // port or name to pre-select
}

// exitRequest records a quit command so Update can stop the program
// cleanly instead of exiting from inside the command line.
type exitRequest struct {
	requested bool
	code      int
}

func (e *exitRequest) Exit(code int) {
	e.requested = true
	e.code = code
}

// Model represents the TUI state
type Model struct {
	list            *proclist.List
	scanner         proclist.Scanner
	killer          ProcessKiller
	cmdline         *cmdline.Session
	exit            *exitRequest
	logger          *slog.Logger
	refreshInterval time.Duration

	cursor          int
	selected        map[int]bool // PID -> selected
	showSystemPorts bool
	confirming      bool
	toKill          []proclist.Process // processes to kill in batch
	killIndex       int                // current index in batch kill
	statusMessage   string
	statusTime      time.Time
	width           int
	height          int
	initialFilter   string // filter from CLI argument (port or name)
	filterApplied   bool   // whether we've applied the initial filter
	searching       bool   // whether in search mode
	searchQuery     string // current search query
	lastError       error  // last error from port scanning
}

// NewModel creates a new Model
func NewModel(opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	list := proclist.NewList(cfg.DefaultSort)
	exit := &exitRequest{}

	return Model{
		list:    list,
		scanner: opts.Scanner,
		killer:  opts.Killer,
		cmdline: cmdline.New(cmdline.Options{
			List:         list,
			Processes:    opts.Processes,
			Flusher:      opts.Flusher,
			Exiter:       exit,
			Logger:       logger.With("component", "cmdline"),
			HistoryLimit: cfg.HistorySize,
		}),
		exit:            exit,
		logger:          logger,
		refreshInterval: cfg.RefreshInterval,
		selected:        make(map[int]bool),
		showSystemPorts: cfg.ShowSystemPorts,
		initialFilter:   opts.InitialFilter,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.refreshPorts(),
		m.tickCmd(),
	)
}

// ExitCode is the status requested by a quit command
func (m Model) ExitCode() int {
	return m.exit.code
}

// tickCmd returns a command that sends a tick at the refresh interval
func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// refreshPorts fetches the current listening ports
func (m Model) refreshPorts() tea.Cmd {
	scanner := m.scanner
	return func() tea.Msg {
		if scanner == nil {
			return refreshMsg{processes: []proclist.Process{}}
		}
		processes, err := scanner.Scan()
		return refreshMsg{processes: processes, err: err}
	}
}

// killProcess kills the specified process
func (m Model) killProcess(pid int, port int, remaining int) tea.Cmd {
	killer := m.killer
	return func() tea.Msg {
		var err error
		if killer == nil {
			err = fmt.Errorf("no process killer configured")
		} else {
			err = killer.Kill(pid)
		}
		return killResultMsg{
			err:       err,
			pid:       pid,
			port:      port,
			remaining: remaining,
		}
	}
}

// filteredProcesses returns rows filtered by system port setting and search query,
// in the list's current order
func (m Model) filteredProcesses() []proclist.Row {
	filtered := make([]proclist.Row, 0)

	for _, row := range m.list.Rows() {
		if !m.showSystemPorts && !hasUserPort(row.Process) {
			continue
		}
		if m.searchQuery != "" && !matchesQuery(row.Process, m.searchQuery) {
			continue
		}
		filtered = append(filtered, row)
	}

	return filtered
}

func hasUserPort(p proclist.Process) bool {
	for _, port := range p.Ports {
		if port >= SystemPortThreshold {
			return true
		}
	}
	return false
}

// matchesQuery does case-insensitive matching on name and command, and
// substring matching on ports
func matchesQuery(p proclist.Process, query string) bool {
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(p.Name), q) || strings.Contains(strings.ToLower(p.Command), q) {
		return true
	}
	for _, port := range p.Ports {
		if strings.Contains(strconv.Itoa(port), query) {
			return true
		}
	}
	return false
}

// selectedCount returns the number of selected processes
func (m Model) selectedCount() int {
	return len(m.getSelectedProcesses())
}

// getSelectedProcesses returns all selected processes
func (m Model) getSelectedProcesses() []proclist.Process {
	var result []proclist.Process
	for _, row := range m.filteredProcesses() {
		if m.selected[row.PID] {
			result = append(result, row.Process)
		}
	}
	return result
}

// clampCursor keeps the cursor inside the filtered list
func (m *Model) clampCursor() {
	filtered := m.filteredProcesses()
	if m.cursor >= len(filtered) {
		m.cursor = max(0, len(filtered)-1)
	}
}

// applyInitialFilter pre-selects processes matching the CLI filter argument
func (m *Model) applyInitialFilter() {
	if m.initialFilter == "" {
		return
	}

	port, err := strconv.Atoi(m.initialFilter)
	for _, row := range m.list.Rows() {
		p := row.Process
		if err == nil {
			// port number - exact match
			for _, pPort := range p.Ports {
				if pPort == port {
					m.selected[p.PID] = true
					break
				}
			}
			continue
		}
		// name/command - case-insensitive substring match
		filterLower := strings.ToLower(m.initialFilter)
		if strings.Contains(strings.ToLower(p.Name), filterLower) || strings.Contains(strings.ToLower(p.Command), filterLower) {
			m.selected[p.PID] = true
		}
	}
}

// updateCommandLine routes a key to the command line while it is active.
// Keys it does not use fall through to normal mode.
func (m Model) updateCommandLine(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	consumed := false
	for _, ev := range cmdlineEvents(msg) {
		if m.cmdline.HandleKey(ev) {
			consumed = true
		}
		if !m.cmdline.Active() {
			break
		}
	}

	if m.exit.requested {
		return m, tea.Quit, true
	}
	if !consumed {
		return m, nil, false
	}
	if !m.cmdline.Active() {
		// a command may have reordered or killed processes
		m.clampCursor()
		if err := m.cmdline.Err(); err != "" {
			m.logger.Debug("command line error", "message", err)
		}
		return m, m.refreshPorts(), true
	}
	return m, nil, true
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.cmdline.Active() {
			next, cmd, consumed := m.updateCommandLine(msg)
			if consumed {
				return next, cmd
			}
			m = next
		}

		// Handle confirmation mode
		if m.confirming {
			switch {
			case key.Matches(msg, keys.Confirm):
				m.confirming = false
				if len(m.toKill) > 0 {
					// Start batch kill
					m.killIndex = 0
					p := m.toKill[0]
					return m, m.killProcess(p.PID, p.LowestPort(), len(m.toKill)-1)
				}
				return m, nil
			case key.Matches(msg, keys.Cancel):
				m.confirming = false
				m.toKill = nil
				m.statusMessage = "Cancelled"
				m.statusTime = time.Now()
				return m, nil
			}
			return m, nil
		}

		// Search mode key handling
		if m.searching {
			switch msg.Type {
			case tea.KeyEsc:
				// Clear search and exit search mode
				m.searching = false
				m.searchQuery = ""
				m.clampCursor()
				return m, nil
			case tea.KeyBackspace:
				if len(m.searchQuery) > 0 {
					runes := []rune(m.searchQuery)
					m.searchQuery = string(runes[:len(runes)-1])
					m.clampCursor()
				}
				return m, nil
			case tea.KeyEnter:
				// Exit search mode but keep the filter
				m.searching = false
				return m, nil
			case tea.KeyRunes, tea.KeySpace:
				m.searchQuery += string(msg.Runes)
				m.cursor = 0
				return m, nil
			}
			return m, nil
		}

		// Normal mode key handling
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, keys.Command):
			m.cmdline.EnableInputMode()
			return m, nil

		case key.Matches(msg, keys.Search):
			m.searching = true
			return m, nil

		case key.Matches(msg, keys.Cancel):
			// Clear search filter if active (Esc when not searching)
			if m.searchQuery != "" {
				m.searchQuery = ""
				m.cursor = 0
				return m, nil
			}

		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}

		case key.Matches(msg, keys.Down):
			filtered := m.filteredProcesses()
			if m.cursor < len(filtered)-1 {
				m.cursor++
			}

		case key.Matches(msg, keys.Select):
			filtered := m.filteredProcesses()
			if len(filtered) > 0 && m.cursor < len(filtered) {
				p := filtered[m.cursor]
				m.selected[p.PID] = !m.selected[p.PID]
			}

		case key.Matches(msg, keys.SelectAll):
			filtered := m.filteredProcesses()
			allSelected := true
			for _, p := range filtered {
				if !m.selected[p.PID] {
					allSelected = false
					break
				}
			}
			for _, p := range filtered {
				m.selected[p.PID] = !allSelected
			}

		case key.Matches(msg, keys.Kill):
			filtered := m.filteredProcesses()
			if len(filtered) == 0 {
				return m, nil
			}

			// If we have selected items, kill those; otherwise kill current
			selected := m.getSelectedProcesses()
			if len(selected) > 0 {
				m.toKill = selected
				m.confirming = true
			} else if m.cursor < len(filtered) {
				m.toKill = []proclist.Process{filtered[m.cursor].Process}
				m.confirming = true
			}

		case key.Matches(msg, keys.Refresh):
			m.statusMessage = "Refreshing..."
			m.statusTime = time.Now()
			return m, m.refreshPorts()

		case key.Matches(msg, keys.Toggle):
			m.showSystemPorts = !m.showSystemPorts
			m.clampCursor()
			if m.showSystemPorts {
				m.statusMessage = "Showing all ports"
			} else {
				m.statusMessage = fmt.Sprintf("Showing user ports only (>=%d)", SystemPortThreshold)
			}
			m.statusTime = time.Now()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tickMsg:
		// Don't refresh while confirming
		if m.confirming {
			return m, m.tickCmd()
		}
		return m, tea.Batch(m.refreshPorts(), m.tickCmd())

	case refreshMsg:
		if msg.err != nil {
			m.lastError = msg.err
			m.statusMessage = "Error scanning ports"
			m.statusTime = time.Now()
			m.logger.Warn("port scan failed", "error", msg.err)
			return m, nil
		}
		m.lastError = nil

		m.list.Set(msg.processes)

		// Forget selections of processes that are gone
		for pid := range m.selected {
			if !m.list.Has(pid) {
				delete(m.selected, pid)
			}
		}

		// Apply initial filter from CLI argument (only once)
		if m.initialFilter != "" && !m.filterApplied {
			m.filterApplied = true
			m.applyInitialFilter()
		}

		m.clampCursor()

	case killResultMsg:
		m.killIndex++

		if msg.err == nil {
			delete(m.selected, msg.pid)
		} else {
			m.logger.Warn("kill failed", "pid", msg.pid, "error", msg.err)
		}

		// Check if more to kill
		if m.killIndex < len(m.toKill) {
			p := m.toKill[m.killIndex]
			return m, m.killProcess(p.PID, p.LowestPort(), len(m.toKill)-m.killIndex-1)
		}

		// All done
		killCount := len(m.toKill)
		m.toKill = nil
		m.killIndex = 0

		if killCount == 1 {
			if msg.err == nil {
				m.statusMessage = fmt.Sprintf("Killed process on port %d", msg.port)
			} else {
				m.statusMessage = fmt.Sprintf("Failed to kill process %d", msg.pid)
			}
		} else {
			m.statusMessage = fmt.Sprintf("Killed %d processes", killCount)
		}
		m.statusTime = time.Now()
		return m, m.refreshPorts()
	}

	return m, nil
}

// View renders the UI
func (m Model) View() string {
	var sb strings.Builder

	// Title with sort order and selection count
	title := "sweeptop"
	if m.showSystemPorts {
		title += " (all ports)"
	} else {
		title += " (user ports)"
	}
	title += " " + sortIndicatorStyle.Render("sort: "+m.list.SortType().String())
	if count := m.selectedCount(); count > 0 {
		title += " " + selectedCountStyle.Render(fmt.Sprintf("[%d selected]", count))
	}
	sb.WriteString(titleStyle.Render(title))
	sb.WriteByte('\n')

	header := fmt.Sprintf("    %-18s %-8s %-15s %-12s %s",
		"PORT", "PID", "PROCESS", "USER", "COMMAND")
	sb.WriteString(headerStyle.Render(header))
	sb.WriteByte('\n')

	filtered := m.filteredProcesses()

	if len(filtered) == 0 {
		if m.searchQuery != "" {
			sb.WriteString(emptyStyle.Render(fmt.Sprintf("No processes match '%s'", m.searchQuery)))
		} else {
			sb.WriteString(emptyStyle.Render("No listening ports found"))
		}
		sb.WriteByte('\n')
	} else {
		maxCmdLen := DefaultCommandWidth
		if m.width > MinTerminalWidth {
			maxCmdLen = m.width - ColumnWidthOffset
		}
		for i, row := range filtered {
			sb.WriteString(m.renderRow(i, row, maxCmdLen))
			sb.WriteByte('\n')
		}
	}

	// Confirmation prompt
	if m.confirming {
		if len(m.toKill) == 1 {
			p := m.toKill[0]
			noun := "port"
			if len(p.Ports) > 1 {
				noun = "ports"
			}
			sb.WriteString(confirmStyle.Render(fmt.Sprintf("\nKill process %d on %s %s? (y/n)", p.PID, noun, formatPorts(p.Ports, 40))))
		} else {
			sb.WriteString(confirmStyle.Render(fmt.Sprintf("\nKill %d selected processes? (y/n)", len(m.toKill))))
		}
	}

	// Status message (show for configured duration)
	if m.statusMessage != "" && time.Since(m.statusTime) < StatusDisplayDuration {
		sb.WriteByte('\n')
		sb.WriteString(statusStyle.Render(m.statusMessage))
	}

	// The command line error stays until input mode is entered again
	if msg := m.cmdline.Err(); msg != "" {
		sb.WriteByte('\n')
		sb.WriteString(cmdErrorStyle.Render(fitLine(msg, m.width)))
	}

	switch {
	case m.cmdline.Active():
		sb.WriteByte('\n')
		sb.WriteString(cmdlineStyle.Render(renderCommandLine(m.cmdline.Buffer(), m.cmdline.Cursor())))
	case m.searching:
		sb.WriteByte('\n')
		sb.WriteString(searchStyle.Render("/" + m.searchQuery + "▌"))
	case m.searchQuery != "":
		sb.WriteByte('\n')
		sb.WriteString(searchFilterStyle.Render(fmt.Sprintf("filter: %s", m.searchQuery)))
		help := "↑/k up • ↓/j down • space select • enter/d kill • / search • : command • esc clear • q quit"
		sb.WriteByte('\n')
		sb.WriteString(helpStyle.Render(help))
	default:
		help := "↑/k up • ↓/j down • space select • a select all • enter/d kill • / search • : command • r refresh • s system ports • q quit"
		sb.WriteByte('\n')
		sb.WriteString(helpStyle.Render(help))
	}

	return sb.String()
}

func (m Model) renderRow(i int, row proclist.Row, maxCmdLen int) string {
	checkbox := checkboxUnchecked
	if m.selected[row.PID] {
		checkbox = checkboxChecked
	}

	name := row.Name
	if row.Depth > 0 {
		name = strings.Repeat(" ", (row.Depth-1)*TreeIndent) + "└ " + row.Name
	}

	line := fmt.Sprintf("%s %s %s %s %s %s",
		checkbox,
		portStyle.Render(formatPorts(row.Ports, 18)),
		pidStyle.Render(strconv.Itoa(row.PID)),
		nameStyle.Render(truncate(name, 15)),
		userStyle.Render(truncate(row.User, 12)),
		commandStyle.Render(ellipsize(commandLabel(row.Command), maxCmdLen)),
	)

	switch {
	case i == m.cursor:
		return selectedStyle.Render(line)
	case m.selected[row.PID]:
		return checkedStyle.Render(line)
	default:
		return normalStyle.Render(line)
	}
}

// renderCommandLine draws the edit buffer with a block cursor
func renderCommandLine(buf string, cursor int) string {
	runes := []rune(buf)
	cursor = min(max(cursor, 0), len(runes))
	return string(runes[:cursor]) + "▌" + string(runes[cursor:])
}
