package proclist

import (
	"cmp"
	"slices"
	"strings"
)

// Row is one process in display order. Depth is the indentation level in
// tree ordering and zero otherwise.
type Row struct {
	Process
	Depth int
}

// List is the current set of processes together with the order they are
// shown in. The zero value is an empty list sorted by port.
type List struct {
	processes []Process
	sortType  SortType
	rows      []Row
}

// NewList creates an empty list with the given ordering
func NewList(sortType SortType) *List {
	return &List{sortType: sortType}
}

// Set replaces the processes and reapplies the current ordering
func (l *List) Set(processes []Process) {
	l.processes = processes
	l.apply()
}

// ChangeSortOrder applies a new ordering to the list
func (l *List) ChangeSortOrder(t SortType) {
	l.sortType = t
	l.apply()
}

// ResolveSortType maps a user-typed column name to a sort type
func (l *List) ResolveSortType(name string) (SortType, bool) {
	return ResolveSortType(name)
}

// SortType returns the current ordering
func (l *List) SortType() SortType {
	return l.sortType
}

// Rows returns the processes in display order
func (l *List) Rows() []Row {
	return l.rows
}

// Len returns the number of processes
func (l *List) Len() int {
	return len(l.processes)
}

// Has reports whether a process with the given pid is listed
func (l *List) Has(pid int) bool {
	return slices.ContainsFunc(l.processes, func(p Process) bool { return p.PID == pid })
}

func (l *List) apply() {
	if l.sortType == SortByTree {
		l.rows = treeRows(l.processes)
		return
	}

	sorted := slices.Clone(l.processes)
	slices.SortStableFunc(sorted, columnCompare(l.sortType))

	l.rows = make([]Row, len(sorted))
	for i, p := range sorted {
		l.rows[i] = Row{Process: p}
	}
}

func columnCompare(t SortType) func(a, b Process) int {
	switch t {
	case SortByPID:
		return func(a, b Process) int { return cmp.Compare(a.PID, b.PID) }
	case SortByName:
		return func(a, b Process) int {
			return cmp.Or(cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)), cmp.Compare(a.PID, b.PID))
		}
	case SortByUser:
		return func(a, b Process) int {
			return cmp.Or(cmp.Compare(a.User, b.User), cmp.Compare(a.PID, b.PID))
		}
	case SortByCommand:
		return func(a, b Process) int {
			return cmp.Or(cmp.Compare(a.Command, b.Command), cmp.Compare(a.PID, b.PID))
		}
	default:
		return func(a, b Process) int {
			return cmp.Or(cmp.Compare(a.LowestPort(), b.LowestPort()), cmp.Compare(a.PID, b.PID))
		}
	}
}

// treeRows orders parents before their children, siblings by pid. A process
// whose parent is not in the list is a root.
func treeRows(processes []Process) []Row {
	byPID := make(map[int]bool, len(processes))
	for _, p := range processes {
		byPID[p.PID] = true
	}

	children := make(map[int][]Process)
	var roots []Process
	for _, p := range processes {
		if p.PPID != p.PID && byPID[p.PPID] {
			children[p.PPID] = append(children[p.PPID], p)
		} else {
			roots = append(roots, p)
		}
	}

	byPIDOrder := func(a, b Process) int { return cmp.Compare(a.PID, b.PID) }
	slices.SortFunc(roots, byPIDOrder)

	rows := make([]Row, 0, len(processes))
	visited := make(map[int]bool, len(processes))
	var walk func(p Process, depth int)
	walk = func(p Process, depth int) {
		if visited[p.PID] {
			return
		}
		visited[p.PID] = true
		rows = append(rows, Row{Process: p, Depth: depth})
		kids := children[p.PID]
		slices.SortFunc(kids, byPIDOrder)
		for _, c := range kids {
			walk(c, depth+1)
		}
	}
	for _, r := range roots {
		walk(r, 0)
	}

	// parent cycles have no root; list them flat
	for _, p := range processes {
		if !visited[p.PID] {
			walk(p, 0)
		}
	}

	return rows
}
