package cmdline

import "strings"

// Kind identifies a built-in command.
type Kind int

const (
	KindExec Kind = iota
	KindKill
	KindQuit
	KindSort
	KindTree
)

// commandTable maps lower-case command names to built-ins. "q" and "quit"
// are the same command.
var commandTable = map[string]Kind{
	"exec": KindExec,
	"kill": KindKill,
	"q":    KindQuit,
	"quit": KindQuit,
	"sort": KindSort,
	"tree": KindTree,
}

// Lookup resolves a command name case-insensitively. There is no prefix
// matching.
func Lookup(name string) (Kind, bool) {
	k, ok := commandTable[strings.ToLower(name)]
	return k, ok
}

// Names returns every name Lookup accepts, unordered.
func Names() []string {
	names := make([]string, 0, len(commandTable))
	for name := range commandTable {
		names = append(names, name)
	}
	return names
}

func (k Kind) String() string {
	switch k {
	case KindExec:
		return "exec"
	case KindKill:
		return "kill"
	case KindQuit:
		return "quit"
	case KindSort:
		return "sort"
	case KindTree:
		return "tree"
	default:
		return "unknown"
	}
}
