package roster

import (
	"errors"
)

// UserMessage is the only failure text shown to users for an extraction.
const UserMessage = "could not process the listing; check the format and try again"

var (
	// ErrRosterRejected is returned when the validator turns a text away
	// before any model call is made.
	ErrRosterRejected = errors.New("text does not look like a match roster")
	// ErrTransport marks model calls that failed on the wire or with a
	// non-2xx status.
	ErrTransport = errors.New("model invocation failed")
	// ErrParse marks model answers without a usable JSON object.
	ErrParse = errors.New("model response could not be parsed")
)

// ErrorKind separates extraction failures for diagnostics.
type ErrorKind int

const (
	// KindTransport is a failed model call.
	KindTransport ErrorKind = iota + 1
	// KindParse is a model answer that did not contain usable JSON.
	KindParse
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindParse:
		return "parse"
	default:
		return "unknown"
	}
}

// ExtractionError is the single failure mode of an extraction. Error always
// returns UserMessage; the cause stays reachable through errors.Is/As.
type ExtractionError struct {
	Err  error
	Kind ErrorKind
}

func (e *ExtractionError) Error() string {
	return UserMessage
}

// Unwrap exposes both the kind sentinel and the underlying cause.
func (e *ExtractionError) Unwrap() []error {
	errs := make([]error, 0, 2)
	switch e.Kind {
	case KindTransport:
		errs = append(errs, ErrTransport)
	case KindParse:
		errs = append(errs, ErrParse)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// Detail returns the diagnostic text behind the user message.
func (e *ExtractionError) Detail() string {
	if e.Err == nil {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.Err.Error()
}

func transportError(err error) error {
	return &ExtractionError{Kind: KindTransport, Err: err}
}

func parseError(err error) error {
	return &ExtractionError{Kind: KindParse, Err: err}
}
