// Package strutil contains string helpers shared by the parsers and formatters.
package strutil

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

type posError struct {
	pos int
	err string
}

// NewPosError returns an error for a symbol at 1-based position 'pos'.
func NewPosError(err string, pos int) error {
	return &posError{err: err, pos: pos}
}

func (pe posError) Error() string {
	return pe.err + fmt.Sprintf(" at pos %d", pe.pos)
}

// ErrorPos returns the position stored in err, if any.
func ErrorPos(err error) (int, bool) {
	var pe *posError
	if !errors.As(err, &pe) {
		return 0, false
	}
	return pe.pos, true
}

// AddPosOffset shifts the position stored in err by 'offset'.
// Other errors are returned as is.
func AddPosOffset(err error, offset int) error {
	var pe *posError
	if !errors.As(err, &pe) {
		return err
	}
	pe.pos += offset
	return pe
}

// IsSeparator reports whether r is ignored by the number parsers: a space or a comma.
func IsSeparator(r rune) bool {
	return r == ',' || unicode.IsSpace(r)
}

// Strip removes all runes for which drop returns true.
func Strip(s string, drop func(rune) bool) string {
	return strings.Map(func(r rune) rune {
		if drop(r) {
			return -1
		}
		return r
	}, s)
}

// Scan checks that every rune of s, except the skipped ones, is accepted by 'valid'.
// It returns the accepted runes, or an error pointing at the first bad symbol.
// Positions are 1-based and refer to the original string.
func Scan(s string, valid, skip func(rune) bool) (string, error) {
	var b strings.Builder
	b.Grow(len(s))
	pos := 0
	for _, r := range s {
		pos++
		switch {
		case skip != nil && skip(r):
		case valid(r):
			b.WriteRune(r)
		default:
			return "", NewPosError(fmt.Sprintf("unexpected symbol %q", r), pos)
		}
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("empty input")
	}
	return b.String(), nil
}

// GroupRight splits s into groups of 'size' runes counting from the right,
// and joins them with sep. GroupRight("1234567", 3, ",") == "1,234,567".
func GroupRight(s string, size int, sep string) string {
	if size <= 0 || len(s) <= size {
		return s
	}
	first := len(s) % size
	if first == 0 {
		first = size
	}
	var b strings.Builder
	b.Grow(len(s) + (len(s)/size)*len(sep))
	b.WriteString(s[:first])
	for i := first; i < len(s); i += size {
		b.WriteString(sep)
		b.WriteString(s[i : i+size])
	}
	return b.String()
}
