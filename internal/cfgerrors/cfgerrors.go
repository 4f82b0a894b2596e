// Package cfgerrors defines the error kinds surfaced by the grammar analysis
// and parsing algorithms. Callers distinguish them with errors.Is against the
// sentinel values defined here.
package cfgerrors

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidGrammar is returned (wrapped) when a grammar fails
	// construction-time validation: an unknown symbol on a right side, an
	// empty production list, a start symbol that is not a nonterminal, and
	// similar problems.
	ErrInvalidGrammar = errors.New("invalid grammar")

	// ErrPrecondition is returned (wrapped) when a grammar passed to an
	// algorithm violates that algorithm's precondition, such as a
	// left-recursive grammar given to the top-down parser.
	ErrPrecondition = errors.New("grammar violates precondition")

	// ErrParseFailure is returned (wrapped) when an input string is not in
	// the language of the grammar, or the parser could not find a parse for
	// it.
	ErrParseFailure = errors.New("no parse found")

	// ErrInputMismatch is returned (wrapped) when an input token is not a
	// terminal declared in the grammar.
	ErrInputMismatch = errors.New("input symbol not in grammar alphabet")
)

// wrappedError is the concrete error type produced by the constructor
// functions in this package. It ties a formatted message to one of the
// sentinel kinds so that both the message and errors.Is checks work.
type wrappedError struct {
	msg  string
	kind error
}

func (e *wrappedError) Error() string {
	return e.msg
}

func (e *wrappedError) Unwrap() error {
	return e.kind
}

func newKindError(kind error, format string, a ...interface{}) error {
	msg := fmt.Sprintf(format, a...)
	if msg == "" {
		msg = kind.Error()
	}
	return &wrappedError{msg: msg, kind: kind}
}

// Invalidf returns a new error wrapping ErrInvalidGrammar with a formatted
// message.
func Invalidf(format string, a ...interface{}) error {
	return newKindError(ErrInvalidGrammar, format, a...)
}

// Preconditionf returns a new error wrapping ErrPrecondition with a formatted
// message.
func Preconditionf(format string, a ...interface{}) error {
	return newKindError(ErrPrecondition, format, a...)
}

// Parsef returns a new error wrapping ErrParseFailure with a formatted
// message.
func Parsef(format string, a ...interface{}) error {
	return newKindError(ErrParseFailure, format, a...)
}

// Inputf returns a new error wrapping ErrInputMismatch with a formatted
// message.
func Inputf(format string, a ...interface{}) error {
	return newKindError(ErrInputMismatch, format, a...)
}
