package cmdline

import (
	"sweeptop/internal/proclist"
)

type fakeList struct {
	changes []proclist.SortType
}

func (f *fakeList) ChangeSortOrder(t proclist.SortType) {
	f.changes = append(f.changes, t)
}

func (f *fakeList) ResolveSortType(name string) (proclist.SortType, bool) {
	return proclist.ResolveSortType(name)
}

type fakeProcs struct {
	openErr  map[int]error
	termErr  map[int]error
	closeErr map[int]error
	spawnErr error

	opened     []int
	terminated []int
	closed     []int
	spawned    []string
}

func (f *fakeProcs) Open(pid int) (ProcessHandle, error) {
	f.opened = append(f.opened, pid)
	if err := f.openErr[pid]; err != nil {
		return nil, err
	}
	return &fakeHandle{pid: pid, procs: f}, nil
}

func (f *fakeProcs) Spawn(cmdline string) error {
	if f.spawnErr != nil {
		return f.spawnErr
	}
	f.spawned = append(f.spawned, cmdline)
	return nil
}

type fakeHandle struct {
	pid   int
	procs *fakeProcs
}

func (h *fakeHandle) Terminate() error {
	h.procs.terminated = append(h.procs.terminated, h.pid)
	return h.procs.termErr[h.pid]
}

func (h *fakeHandle) Close() error {
	h.procs.closed = append(h.procs.closed, h.pid)
	return h.procs.closeErr[h.pid]
}

type fakeFlusher struct {
	calls int
}

func (f *fakeFlusher) FlushInput() error {
	f.calls++
	return nil
}

type fakeExiter struct {
	codes []int
}

func (f *fakeExiter) Exit(code int) {
	f.codes = append(f.codes, code)
}

type testEnv struct {
	list    *fakeList
	procs   *fakeProcs
	flusher *fakeFlusher
	exiter  *fakeExiter
	session *Session
}

func newTestEnv() *testEnv {
	env := &testEnv{
		list:    &fakeList{},
		procs:   &fakeProcs{},
		flusher: &fakeFlusher{},
		exiter:  &fakeExiter{},
	}
	env.session = New(Options{
		List:      env.list,
		Processes: env.procs,
		Flusher:   env.flusher,
		Exiter:    env.exiter,
	})
	return env
}

// typeKeys feeds each rune of text to the session
func typeKeys(s *Session, text string) {
	for _, r := range text {
		s.HandleKey(RuneKey(r))
	}
}

// submit enters input mode, types text after the marker and presses Enter
func submit(s *Session, text string) {
	s.EnableInputMode()
	typeKeys(s, text)
	s.HandleKey(KeyEvent{Code: KeyEnter})
}
