package cmdline

import (
	"errors"
	"fmt"
	"unicode"
	"unicode/utf8"
)

// MaxTokenLength bounds a command name or argument, in runes.
const MaxTokenLength = 1024

// Parse failure kinds. A *ParseError wraps exactly one of these.
var (
	ErrInvalidNameTerminator = errors.New("invalid character after command name")
	ErrInvalidArgTerminator  = errors.New("invalid character after argument")
	ErrUnterminatedQuote     = errors.New("unterminated quote")
	ErrTokenTooLong          = errors.New("token too long")
)

// ParseError reports where tokenizing a command line failed.
type ParseError struct {
	Offset int // byte offset into the input
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at offset %d: %v", e.Offset, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Command is a tokenized command line.
type Command struct {
	Name string
	Args []string
}

// Parse splits a command line into a name and arguments.
//
// The name is a run of letters and must be followed by whitespace or the end
// of input. Each argument is either a run of letters, digits and '%', or a
// double-quoted string of those characters and whitespace, where \" and \\
// stand for a literal quote and backslash. Every argument must also be
// followed by whitespace or the end of input.
//
// Blank input is not an error: Parse returns a nil Command and a nil error.
func Parse(raw string) (*Command, error) {
	p := tokenizer{src: raw}

	p.skipSpace()
	if p.eof() {
		return nil, nil
	}

	name, err := p.readName()
	if err != nil {
		return nil, err
	}

	cmd := &Command{Name: name}
	for {
		p.skipSpace()
		if p.eof() {
			return cmd, nil
		}
		arg, err := p.readArg()
		if err != nil {
			return nil, err
		}
		cmd.Args = append(cmd.Args, arg)
	}
}

type tokenizer struct {
	src string
	pos int
}

func (p *tokenizer) eof() bool {
	return p.pos >= len(p.src)
}

func (p *tokenizer) peek() rune {
	r, _ := utf8.DecodeRuneInString(p.src[p.pos:])
	return r
}

func (p *tokenizer) next() rune {
	r, size := utf8.DecodeRuneInString(p.src[p.pos:])
	p.pos += size
	return r
}

func (p *tokenizer) skipSpace() {
	for !p.eof() && unicode.IsSpace(p.peek()) {
		p.next()
	}
}

func (p *tokenizer) fail(err error) error {
	return &ParseError{Offset: p.pos, Err: err}
}

// atBoundary reports whether the current position may end a token.
func (p *tokenizer) atBoundary() bool {
	return p.eof() || unicode.IsSpace(p.peek())
}

func (p *tokenizer) readName() (string, error) {
	start := p.pos
	n := 0
	for !p.eof() && unicode.IsLetter(p.peek()) {
		if n == MaxTokenLength {
			return "", p.fail(ErrTokenTooLong)
		}
		p.next()
		n++
	}
	if !p.atBoundary() {
		return "", p.fail(ErrInvalidNameTerminator)
	}
	return p.src[start:p.pos], nil
}

func (p *tokenizer) readArg() (string, error) {
	var (
		arg string
		err error
	)
	if p.peek() == '"' {
		p.next()
		arg, err = p.readQuoted()
	} else {
		arg, err = p.readBare()
	}
	if err != nil {
		return "", err
	}
	if !p.atBoundary() {
		return "", p.fail(ErrInvalidArgTerminator)
	}
	return arg, nil
}

func (p *tokenizer) readBare() (string, error) {
	start := p.pos
	n := 0
	for !p.eof() && isValidChar(p.peek()) {
		if n == MaxTokenLength {
			return "", p.fail(ErrTokenTooLong)
		}
		p.next()
		n++
	}
	return p.src[start:p.pos], nil
}

func (p *tokenizer) readQuoted() (string, error) {
	buf := make([]rune, 0, 16)
	for {
		if p.eof() {
			return "", p.fail(ErrUnterminatedQuote)
		}
		r := p.peek()
		switch {
		case r == '"':
			p.next()
			return string(buf), nil
		case r == '\\':
			p.next()
			if p.eof() {
				return "", p.fail(ErrUnterminatedQuote)
			}
			if esc := p.peek(); esc != '"' && esc != '\\' {
				return "", p.fail(ErrInvalidArgTerminator)
			}
			r = p.next()
		case unicode.IsSpace(r) || isValidChar(r):
			p.next()
		default:
			return "", p.fail(ErrInvalidArgTerminator)
		}
		if len(buf) == MaxTokenLength {
			return "", p.fail(ErrTokenTooLong)
		}
		buf = append(buf, r)
	}
}

// isValidChar reports whether r may appear in an argument.
func isValidChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '%'
}
