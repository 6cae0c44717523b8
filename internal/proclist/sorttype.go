package proclist

import "strings"

// SortType describes how the process list is ordered
type SortType int

const (
	SortByPort SortType = iota
	SortByPID
	SortByName
	SortByUser
	SortByCommand
	SortByTree
)

// sortTypeNames maps user-typed column names to sort types.
var sortTypeNames = map[string]SortType{
	"port":    SortByPort,
	"ports":   SortByPort,
	"pid":     SortByPID,
	"name":    SortByName,
	"process": SortByName,
	"user":    SortByUser,
	"command": SortByCommand,
	"cmd":     SortByCommand,
	"tree":    SortByTree,
}

// ResolveSortType maps a column name, case-insensitively, to a sort type.
func ResolveSortType(name string) (SortType, bool) {
	t, ok := sortTypeNames[strings.ToLower(name)]
	return t, ok
}

func (t SortType) String() string {
	switch t {
	case SortByPort:
		return "port"
	case SortByPID:
		return "pid"
	case SortByName:
		return "name"
	case SortByUser:
		return "user"
	case SortByCommand:
		return "command"
	case SortByTree:
		return "tree"
	default:
		return "unknown"
	}
}
