package cmdline

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sweeptop/internal/proclist"
)

func TestSessionStartsInactive(t *testing.T) {
	env := newTestEnv()
	s := env.session

	assert.Equal(t, Inactive, s.Mode())
	assert.False(t, s.Active())
	assert.Equal(t, "", s.Buffer())
	assert.False(t, s.HandleKey(RuneKey('x')), "inactive sessions use no keys")
	assert.False(t, s.HandleKey(KeyEvent{Code: KeyEnter}))
	assert.Equal(t, "", s.Buffer())
}

func TestEnableInputMode(t *testing.T) {
	env := newTestEnv()
	s := env.session

	submit(s, "frobnicate")
	require.NotEmpty(t, s.Err())

	s.EnableInputMode()
	assert.Equal(t, Editing, s.Mode())
	assert.Equal(t, ":", s.Buffer())
	assert.Equal(t, 1, s.Cursor())
	assert.Empty(t, s.Err(), "entering input mode clears the error")
}

func TestTypingAndBackspace(t *testing.T) {
	env := newTestEnv()
	s := env.session

	s.EnableInputMode()
	typeKeys(s, "ab")
	assert.Equal(t, ":ab", s.Buffer())
	assert.Equal(t, 3, s.Cursor())

	assert.True(t, s.HandleKey(KeyEvent{Code: KeyBackspace}))
	assert.Equal(t, ":a", s.Buffer())
	assert.True(t, s.HandleKey(KeyEvent{Code: KeyBackspace}))
	assert.Equal(t, ":", s.Buffer())
	assert.True(t, s.Active())

	// erasing the marker leaves input mode
	assert.True(t, s.HandleKey(KeyEvent{Code: KeyBackspace}))
	assert.False(t, s.Active())
	assert.Equal(t, "", s.Buffer())
	assert.Equal(t, 0, s.Cursor())
	assert.Equal(t, 1, env.flusher.calls)
}

func TestUnusedKeys(t *testing.T) {
	env := newTestEnv()
	s := env.session
	s.EnableInputMode()

	assert.False(t, s.HandleKey(RuneKey('\x07')), "control characters are not printable")
	assert.False(t, s.HandleKey(KeyEvent{Code: KeyOther}))
	assert.False(t, s.HandleKey(KeyEvent{Code: KeyUp}), "no history yet")
	assert.False(t, s.HandleKey(KeyEvent{Code: KeyDown}), "no history yet")
	assert.Equal(t, ":", s.Buffer())
	assert.True(t, s.Active())
}

func TestEscapeDiscardsInput(t *testing.T) {
	env := newTestEnv()
	s := env.session

	s.EnableInputMode()
	typeKeys(s, "tree")
	assert.True(t, s.HandleKey(KeyEvent{Code: KeyEscape}))

	assert.False(t, s.Active())
	assert.Equal(t, "", s.Buffer())
	assert.Empty(t, env.list.changes)
	assert.Equal(t, 0, s.History().Len())
	assert.Equal(t, 1, env.flusher.calls)
}

func TestSubmitTree(t *testing.T) {
	env := newTestEnv()
	s := env.session

	submit(s, "tree")

	assert.Equal(t, []proclist.SortType{proclist.SortByTree}, env.list.changes)
	assert.Empty(t, s.Err())
	assert.False(t, s.Active())
	assert.Equal(t, "", s.Buffer())
	assert.Equal(t, []string{":tree"}, s.History().Entries())
	assert.Equal(t, 1, env.flusher.calls)
}

func TestSubmitKeepsUntrimmedLine(t *testing.T) {
	env := newTestEnv()
	s := env.session

	submit(s, "  :tree")
	assert.Equal(t, []proclist.SortType{proclist.SortByTree}, env.list.changes)
	assert.Equal(t, []string{":  :tree"}, s.History().Entries())
}

func TestSubmitBlankIsNoop(t *testing.T) {
	for _, text := range []string{"", " ", ":", " : \t"} {
		env := newTestEnv()
		s := env.session

		submit(s, text)
		assert.False(t, s.Active(), "%q", text)
		assert.Empty(t, s.Err(), "%q", text)
		assert.Equal(t, 0, s.History().Len(), "%q", text)
		assert.Empty(t, env.list.changes, "%q", text)
	}
}

func TestSubmitParseError(t *testing.T) {
	for _, text := range []string{"kill12", "kill 1*2", `exec "notepad`} {
		env := newTestEnv()
		s := env.session

		submit(s, text)
		assert.Equal(t, "parse error", s.Err(), "%q", text)
		assert.Empty(t, env.procs.opened, "%q", text)
		assert.Empty(t, env.procs.spawned, "%q", text)
		assert.Equal(t, []string{":" + text}, s.History().Entries(), "attempted lines are remembered")
	}
}

func TestSubmitUnknownCommand(t *testing.T) {
	env := newTestEnv()
	s := env.session

	submit(s, "frobnicate")
	assert.Equal(t, "Not an editor command: frobnicate", s.Err())
	assert.Empty(t, env.list.changes)
	assert.Empty(t, env.procs.opened)
	assert.Empty(t, env.exiter.codes)
	assert.Equal(t, 1, s.History().Len())
}

func TestQuitIsCaseInsensitive(t *testing.T) {
	for _, name := range []string{"QUIT", "Quit", "quit", "q", "Q"} {
		env := newTestEnv()
		submit(env.session, name)
		assert.Equal(t, []int{0}, env.exiter.codes, name)
		assert.Empty(t, env.session.Err(), name)
	}
}

func TestHistoryRecall(t *testing.T) {
	env := newTestEnv()
	s := env.session
	submit(s, "sort name")
	submit(s, "tree")

	s.EnableInputMode()
	up := KeyEvent{Code: KeyUp}
	down := KeyEvent{Code: KeyDown}

	assert.True(t, s.HandleKey(up))
	assert.Equal(t, ":tree", s.Buffer())
	assert.Equal(t, len(":tree"), s.Cursor())

	assert.True(t, s.HandleKey(up))
	assert.Equal(t, ":sort name", s.Buffer())
	assert.Equal(t, len(":sort name"), s.Cursor())

	assert.False(t, s.HandleKey(up), "at the oldest entry")
	assert.Equal(t, ":sort name", s.Buffer())

	assert.True(t, s.HandleKey(down))
	assert.Equal(t, ":tree", s.Buffer())

	assert.False(t, s.HandleKey(down), "at the newest entry")
	assert.Equal(t, ":tree", s.Buffer())

	// recalled lines can be edited and submitted
	assert.True(t, s.HandleKey(KeyEvent{Code: KeyBackspace}))
	typeKeys(s, "e")
	s.HandleKey(KeyEvent{Code: KeyEnter})
	assert.Equal(t, []string{":sort name", ":tree", ":tree"}, s.History().Entries())
	assert.Equal(t, []proclist.SortType{proclist.SortByName, proclist.SortByTree, proclist.SortByTree}, env.list.changes)
}

func TestHistoryCursorResetsOnEnable(t *testing.T) {
	env := newTestEnv()
	s := env.session
	submit(s, "sort pid")
	submit(s, "tree")

	s.EnableInputMode()
	s.HandleKey(KeyEvent{Code: KeyUp})
	s.HandleKey(KeyEvent{Code: KeyUp})
	s.HandleKey(KeyEvent{Code: KeyEscape})

	s.EnableInputMode()
	s.HandleKey(KeyEvent{Code: KeyUp})
	assert.Equal(t, ":tree", s.Buffer(), "recall starts from the newest entry again")
}

func TestHistoryLimitOption(t *testing.T) {
	s := New(Options{List: &fakeList{}, Exiter: &fakeExiter{}, HistoryLimit: 1})
	submit(s, "sort pid")
	submit(s, "tree")
	assert.Equal(t, []string{":tree"}, s.History().Entries())
}

func TestInputLengthIsBounded(t *testing.T) {
	env := newTestEnv()
	s := env.session

	s.EnableInputMode()
	typeKeys(s, strings.Repeat("a", MaxInputLength+10))

	assert.Len(t, []rune(s.Buffer()), MaxInputLength)
	assert.Equal(t, MaxInputLength, s.Cursor())
	assert.Equal(t, "Error: input too long", s.Err())
	assert.True(t, s.Active())
}

func TestExecuteCurrentInput(t *testing.T) {
	env := newTestEnv()
	s := env.session

	s.EnableInputMode()
	typeKeys(s, "sort user")
	s.ExecuteCurrentInput()

	assert.Equal(t, []proclist.SortType{proclist.SortByUser}, env.list.changes)
	assert.False(t, s.Active())
}

func TestNilCollaborators(t *testing.T) {
	s := New(Options{Exiter: &fakeExiter{}})

	submit(s, "tree")
	assert.Equal(t, "tree: not available", s.Err())

	submit(s, "kill 1")
	assert.Equal(t, "kill: not available", s.Err())
}
