// Package apperr collects the decode-time error sentinels and a thin
// wrapping type, in the style of the routing engine's pkg/util.Error.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput: fewer than two waypoints were given to Decoder.Go.
	ErrInvalidInput = errors.New("openlr: reference needs at least two waypoints")
	// ErrNoVicinity: an intermediate waypoint has no nearby real edges, so
	// its pivot set is empty and initialization fails outright.
	ErrNoVicinity = errors.New("openlr: no road edges found near an intermediate waypoint")
	// ErrNoPath: the best-first search exhausted its queue without
	// reaching a final vertex.
	ErrNoPath = errors.New("openlr: search exhausted without reaching the final stage")
	// ErrEmptyReconstruction: path reconstruction produced nothing and the
	// single-edge fallback rejected every candidate.
	ErrEmptyReconstruction = errors.New("openlr: reconstruction produced an empty path")
	// ErrInvalidBearing: a bearing bucket argument fell outside [0, 256).
	ErrInvalidBearing = errors.New("openlr: bearing bucket out of range")
	// ErrNoPivots: Potential was asked for a vertex whose stage has no
	// pivots; this is a programmer error, Init should have failed first.
	ErrNoPivots = errors.New("openlr: empty pivot set for stage")
)

// Error wraps an underlying cause with a formatted message and a sentinel
// code, so callers can both log a human-readable message and errors.Is
// against the sentinel.
type Error struct {
	orig error
	msg  string
	code error
}

func (e *Error) Error() string {
	if e.orig != nil {
		return fmt.Sprintf("%s: %s", e.msg, e.orig.Error())
	}
	return e.msg
}

func (e *Error) Unwrap() error {
	if e.orig != nil {
		return e.orig
	}
	return e.code
}

// Is lets errors.Is(err, apperr.ErrNoPath) succeed against a wrapped Error
// even when orig is set to something else (e.g. a lower-level cause).
func (e *Error) Is(target error) bool {
	return errors.Is(e.code, target)
}

func (e *Error) Code() error {
	return e.code
}

// Wrap builds an *Error carrying a sentinel code, an optional underlying
// cause, and a formatted message.
func Wrap(code error, orig error, format string, a ...interface{}) error {
	return &Error{code: code, orig: orig, msg: fmt.Sprintf(format, a...)}
}

// New builds an *Error with no underlying cause.
func New(code error, format string, a ...interface{}) error {
	return Wrap(code, nil, format, a...)
}
