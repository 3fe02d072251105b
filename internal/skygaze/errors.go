package skygaze

import (
	"errors"
	"fmt"
)

// Kind classifies an error for the orchestrator's outcome handling.
type Kind int

const (
	// KindTransport covers network failure, a non-2xx status, or a
	// payload that doesn't decode. The operation is abandoned.
	KindTransport Kind = iota
	// KindValidation means the input never reached the network and the
	// user can resolve it by re-entering.
	KindValidation
)

// Reason is the machine-readable cause attached to validation errors.
type Reason string

const (
	ReasonInvalidDateRange Reason = "invalid-date-range"
	ReasonMissingRover     Reason = "missing-rover"
	ReasonMissingDate      Reason = "missing-date"
)

// Error is the universal error type between the fetch layers.
type Error struct {
	Kind   Kind
	Reason Reason
	Err    error // The error this wraps
}

func (e *Error) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s: %s", e.Reason, e.Err)
	}

	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// E builds an Error from its arguments: a Kind, a Reason, and either a
// string or an error for the wrapped cause.
func E(args ...any) *Error {
	ret := &Error{
		Kind: KindTransport,
		Err:  nil,
	}

	for _, arg := range args {
		switch arg := arg.(type) {
		case string:
			ret.Err = errors.New(arg)
		case error:
			ret.Err = arg
		case Kind:
			ret.Kind = arg
		case Reason:
			ret.Reason = arg
		}
	}
	if ret.Err == nil {
		ret.Err = errors.New(string(ret.Reason))
	}

	return ret
}
