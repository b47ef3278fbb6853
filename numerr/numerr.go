// Package numerr defines the error kinds reported by nbit, units and clock.
//
// Every error returned by those packages is an *Error. Use errors.Is with
// ErrRange, ErrFormat or ErrUnit to test the kind, or errors.As to get
// the input that caused it.
package numerr

import (
	"errors"
	"fmt"
)

// Kind classifies a conversion failure.
type Kind int

const (
	// Range means a value does not fit the representable range.
	Range Kind = iota + 1
	// Format means the input is malformed.
	Format
	// Unit means a number was recognized, but its unit suffix was not.
	Unit
)

var (
	ErrRange  = errors.New("range error")
	ErrFormat = errors.New("format error")
	ErrUnit   = errors.New("unit error")

	kindNames = [...]string{
		Range:  "RangeError",
		Format: "FormatError",
		Unit:   "UnitError",
	}
	kindErrors = [...]error{
		Range:  ErrRange,
		Format: ErrFormat,
		Unit:   ErrUnit,
	}
)

// String returns the kind name, like "RangeError".
func (k Kind) String() string {
	if k <= 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Error is a conversion error of a particular kind.
type Error struct {
	Kind  Kind
	Input string
	Msg   string
	cause error
}

// New returns an error of kind k for given input.
func New(k Kind, input, msg string) *Error {
	return &Error{Kind: k, Input: input, Msg: msg}
}

// Newf is like New, but formats the message.
func Newf(k Kind, input, format string, args ...interface{}) *Error {
	return New(k, input, fmt.Sprintf(format, args...))
}

// Wrap returns an error of kind k caused by err.
// The message is taken from err.
func Wrap(k Kind, input string, err error) *Error {
	return &Error{Kind: k, Input: input, Msg: err.Error(), cause: err}
}

func (e *Error) Error() string {
	return e.Msg
}

// Is reports whether target is the sentinel of e's kind.
func (e *Error) Is(target error) bool {
	return e.Kind > 0 && int(e.Kind) < len(kindErrors) && target == kindErrors[e.Kind]
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error { return e.cause }

// KindOf returns the kind of err, or 0 if err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
