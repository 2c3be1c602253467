package argstream

import (
	"errors"
	"fmt"
)

// ErrStreamExhausted is returned by Pop when no tokens remain.
var ErrStreamExhausted = errors.New("argument stream exhausted")

// Stream holds an ordered list of tokens and a cursor into it.
type Stream struct {
	args []string
	cur  int
}

// New creates a Stream over a copy of args.
func New(args []string) *Stream {
	cp := make([]string, len(args))
	copy(cp, args)
	return &Stream{args: cp}
}

// Pop returns the next token and advances the cursor.
func (s *Stream) Pop() (string, error) {
	if s.AtEnd() {
		return "", fmt.Errorf("%w: expected a value at position %d", ErrStreamExhausted, s.cur+1)
	}
	tok := s.args[s.cur]
	s.cur++
	return tok, nil
}

// AtEnd reports whether every token has been consumed.
func (s *Stream) AtEnd() bool {
	return s.cur >= len(s.args)
}

// Remaining returns the number of tokens not yet consumed.
func (s *Stream) Remaining() int {
	return len(s.args) - s.cur
}
