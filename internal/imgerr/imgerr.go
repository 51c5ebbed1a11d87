// Package imgerr defines the fatal error kinds shared across the cipher
// pipeline and steganography engines. Every fallible boundary in the core
// returns one of these instead of a bare error, so the CLI edge can map a
// failure to an exit code without string-matching on messages.
package imgerr

import (
	"errors"
	"fmt"
)

// Kind identifies the class of failure that occurred.
type Kind int

const (
	// InputInvalid covers missing/unreadable input, empty pixel buffers,
	// and unsupported channel counts.
	InputInvalid Kind = iota
	// RecipeInvalid covers an empty recipe at encrypt time, an unknown
	// primitive name, a malformed step token, or an unrecoverable recipe
	// at decrypt time.
	RecipeInvalid
	// InvalidKey covers keys that fail to derive usable primitive
	// parameters, such as a rot-N key with no digit in 1-7, or an empty
	// master password.
	InvalidKey
	// InsufficientCapacity covers a carrier too small for a payload, or
	// an image too small to carry an in-band salt/IV.
	InsufficientCapacity
	// CryptoFailure covers key derivation and cipher init/stream errors.
	CryptoFailure
	// ExtractionFailed is the single failure kind surfaced for any stego
	// extraction sub-failure, so a caller can never distinguish "wrong
	// password" from "corrupted header" from "failed decompression".
	ExtractionFailed
	// DimensionDrift means a primitive returned an image whose
	// (width, height, channels) differs from its input. This is always a
	// programming bug in a primitive, never a user-triggerable error.
	DimensionDrift
)

func (k Kind) String() string {
	switch k {
	case InputInvalid:
		return "InputInvalid"
	case RecipeInvalid:
		return "RecipeInvalid"
	case InvalidKey:
		return "InvalidKey"
	case InsufficientCapacity:
		return "InsufficientCapacity"
	case CryptoFailure:
		return "CryptoFailure"
	case ExtractionFailed:
		return "ExtractionFailed"
	case DimensionDrift:
		return "DimensionDrift"
	default:
		return "Unknown"
	}
}

// Error wraps an underlying cause with its Kind.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// New constructs an *Error of the given kind with a formatted message.
func New(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap constructs an *Error of the given kind, preserving the original
// error as its cause for errors.Is/errors.As and %w-style unwrapping.
func Wrap(kind Kind, err error, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: err}
}

// Is reports whether err is (or wraps) an *Error of the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
