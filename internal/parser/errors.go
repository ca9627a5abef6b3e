package parser

import "fmt"

// SyntaxError reports malformed input.
type SyntaxError struct {
	Pos int // rune offset into the pattern
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at position %d: %s", e.Pos, e.Msg)
}

// UnsupportedError reports a well-formed construct outside the supported subset.
type UnsupportedError struct {
	Pos       int
	Construct string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("unsupported construct at position %d: %s", e.Pos, e.Construct)
}

func (p *parser) errorf(pos int, format string, args ...interface{}) error {
	return &SyntaxError{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) unsupported(pos int, format string, args ...interface{}) error {
	return &UnsupportedError{Pos: pos, Construct: fmt.Sprintf(format, args...)}
}
