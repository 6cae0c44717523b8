package cmdline

// History is the list of submitted command lines, oldest first, with a cursor
// for recalling them. The cursor ranges over 0..Len(); Len() means "past the
// newest entry".
//
// With a limit of zero the history grows without bound. With a positive
// limit the oldest entry is dropped once the limit is reached.
type History struct {
	entries []string
	cursor  int
	limit   int
}

// NewHistory creates an empty history holding at most limit entries, or any
// number when limit <= 0.
func NewHistory(limit int) *History {
	if limit < 0 {
		limit = 0
	}
	return &History{limit: limit}
}

// Append adds a line and moves the cursor past it. Empty lines are ignored.
func (h *History) Append(line string) {
	if line == "" {
		return
	}
	if h.limit > 0 && len(h.entries) >= h.limit {
		// drop the oldest, reusing the backing array
		n := copy(h.entries, h.entries[len(h.entries)-h.limit+1:])
		h.entries = h.entries[:n]
	}
	h.entries = append(h.entries, line)
	h.cursor = len(h.entries)
}

// Previous moves the cursor back one entry and returns it. It returns false,
// leaving the cursor alone, at the oldest entry.
func (h *History) Previous() (string, bool) {
	if h.cursor == 0 {
		return "", false
	}
	h.cursor--
	return h.entries[h.cursor], true
}

// Next moves the cursor forward one entry and returns it. It returns false,
// leaving the cursor alone, at or past the newest entry.
func (h *History) Next() (string, bool) {
	if h.cursor+1 >= len(h.entries) {
		return "", false
	}
	h.cursor++
	return h.entries[h.cursor], true
}

// Reset moves the cursor past the newest entry.
func (h *History) Reset() {
	h.cursor = len(h.entries)
}

// Len returns the number of entries
func (h *History) Len() int {
	return len(h.entries)
}

// Cursor returns the cursor position
func (h *History) Cursor() int {
	return h.cursor
}

// Entries returns a copy of the entries, oldest first
func (h *History) Entries() []string {
	out := make([]string, len(h.entries))
	copy(out, h.entries)
	return out
}
