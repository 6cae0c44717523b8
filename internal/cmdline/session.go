package cmdline

import (
	"errors"
	"log/slog"
	"os"
	"strings"
	"unicode"
)

// Marker is the first character of the edit buffer in Editing mode.
const Marker = ':'

const (
	// MaxInputLength bounds the edit buffer, marker included, in runes.
	MaxInputLength = 1024

	// MaxErrorLength bounds the error message, in runes.
	MaxErrorLength = 1024
)

// ErrInputTooLong is recorded when a key would grow the edit buffer past
// MaxInputLength.
var ErrInputTooLong = errors.New("input too long")

// Mode is whether a Session is capturing keys.
type Mode int

const (
	Inactive Mode = iota
	Editing
)

func (m Mode) String() string {
	if m == Editing {
		return "editing"
	}
	return "inactive"
}

// Options configures a Session. List and Processes are needed by the
// commands that use them; the others have defaults.
type Options struct {
	List      ProcessList
	Processes ProcessController
	Flusher   InputFlusher // nil: nothing to flush
	Exiter    Exiter       // nil: os.Exit
	Logger    *slog.Logger // nil: discard
	// HistoryLimit caps the history; zero means unbounded.
	HistoryLimit int
}

// Session is a vi-style command line. It is not safe for concurrent use; the
// host drives it from its event loop.
type Session struct {
	mode    Mode
	buf     []rune
	cursor  int
	errMsg  string
	history *History

	list   ProcessList
	procs  ProcessController
	flush  InputFlusher
	exit   Exiter
	logger *slog.Logger
}

// New creates an inactive Session.
func New(opts Options) *Session {
	s := &Session{
		buf:     make([]rune, 0, 64),
		history: NewHistory(opts.HistoryLimit),
		list:    opts.List,
		procs:   opts.Processes,
		flush:   opts.Flusher,
		exit:    opts.Exiter,
		logger:  opts.Logger,
	}
	if s.exit == nil {
		s.exit = ExitFunc(os.Exit)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}
	return s
}

// EnableInputMode starts editing a new command line.
func (s *Session) EnableInputMode() {
	s.buf = append(s.buf[:0], Marker)
	s.cursor = 1
	s.errMsg = ""
	s.mode = Editing
	s.history.Reset()
}

// DisableInputMode stops editing, discarding the buffer and any key input
// queued meanwhile.
func (s *Session) DisableInputMode() {
	s.buf = s.buf[:0]
	s.cursor = 0
	s.mode = Inactive

	if s.flush != nil {
		if err := s.flush.FlushInput(); err != nil {
			s.logger.Debug("flush input failed", "error", err)
		}
	}
}

// HandleKey applies a key press and reports whether the command line used
// it. Inactive sessions use no keys.
func (s *Session) HandleKey(ev KeyEvent) bool {
	if s.mode != Editing {
		return false
	}

	switch ev.Code {
	case KeyUp:
		line, ok := s.history.Previous()
		if !ok {
			return false
		}
		s.load(line)
		return true

	case KeyDown:
		line, ok := s.history.Next()
		if !ok {
			return false
		}
		s.load(line)
		return true

	case KeyBackspace:
		if s.cursor == 0 {
			return false
		}
		s.buf = append(s.buf[:s.cursor-1], s.buf[s.cursor:]...)
		s.cursor--
		if s.cursor == 0 {
			// erasing the marker leaves command mode
			s.DisableInputMode()
		}
		return true

	case KeyEscape:
		s.DisableInputMode()
		return true

	case KeyEnter:
		s.ExecuteCurrentInput()
		return true

	case KeyRune:
		if !unicode.IsPrint(ev.Rune) {
			return false
		}
		s.insert(ev.Rune)
		return true
	}

	return false
}

// ExecuteCurrentInput submits the edit buffer and leaves Editing mode.
// Blank input does nothing and is not remembered.
func (s *Session) ExecuteCurrentInput() {
	line := string(s.buf)
	text := strings.TrimLeftFunc(line, func(r rune) bool {
		return r == Marker || unicode.IsSpace(r)
	})

	if text != "" {
		s.execute(text)
		s.history.Append(line)
	}

	s.DisableInputMode()
}

func (s *Session) execute(text string) {
	cmd, err := Parse(text)
	if err != nil {
		s.logger.Debug("parse failed", "input", text, "error", err)
		s.setError("parse error")
		return
	}
	if cmd == nil {
		return
	}

	s.logger.Debug("dispatching command", "name", cmd.Name, "args", cmd.Args)
	if err := s.dispatch(cmd); err != nil {
		s.logger.Debug("command failed", "name", cmd.Name, "error", err)
		s.setError(err.Error())
	}
}

func (s *Session) insert(r rune) {
	if len(s.buf) >= MaxInputLength {
		s.setError("Error: " + ErrInputTooLong.Error())
		return
	}
	s.buf = append(s.buf, 0)
	copy(s.buf[s.cursor+1:], s.buf[s.cursor:])
	s.buf[s.cursor] = r
	s.cursor++
}

// load replaces the edit buffer with a history entry, cursor at the end.
func (s *Session) load(line string) {
	runes := []rune(line)
	if len(runes) > MaxInputLength {
		runes = runes[:MaxInputLength]
	}
	s.buf = append(s.buf[:0], runes...)
	s.cursor = len(s.buf)
}

func (s *Session) setError(msg string) {
	if r := []rune(msg); len(r) > MaxErrorLength {
		msg = string(r[:MaxErrorLength])
	}
	s.errMsg = msg
}

// Buffer returns the edit buffer, marker included.
func (s *Session) Buffer() string {
	return string(s.buf)
}

// Cursor returns the edit cursor as a rune index into Buffer.
func (s *Session) Cursor() int {
	return s.cursor
}

// Err returns the most recent error message, or "".
func (s *Session) Err() string {
	return s.errMsg
}

// Mode returns the current mode
func (s *Session) Mode() Mode {
	return s.mode
}

// Active reports whether the session is Editing
func (s *Session) Active() bool {
	return s.mode == Editing
}

// History returns the session's history
func (s *Session) History() *History {
	return s.history
}
