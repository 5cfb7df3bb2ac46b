// Package errs defines the typed error kinds used across the render
// pipeline so call sites can decide whether to skip, fail fast, or
// degrade, per the error handling policy table.
package errs

import "fmt"

// Kind classifies an error for policy dispatch at the call site.
type Kind int

const (
	KindInvalidInput Kind = iota
	KindUnsupported
	KindIOFailure
	KindExternalProcessFailure
	KindEncodingFailure
	KindGeometryQueryFailure
	KindNetworkFailure
	KindArchiveFailure
	KindParseFailure
)

func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "InvalidInput"
	case KindUnsupported:
		return "Unsupported"
	case KindIOFailure:
		return "IOFailure"
	case KindExternalProcessFailure:
		return "ExternalProcessFailure"
	case KindEncodingFailure:
		return "EncodingFailure"
	case KindGeometryQueryFailure:
		return "GeometryQueryFailure"
	case KindNetworkFailure:
		return "NetworkFailure"
	case KindArchiveFailure:
		return "ArchiveFailure"
	case KindParseFailure:
		return "ParseFailure"
	default:
		return "Unknown"
	}
}

// Error wraps an underlying error with a policy-dispatchable kind.
type Error struct {
	kind Kind
	msg  string
	err  error
}

func New(kind Kind, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{kind: kind, msg: msg, err: err}
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

func (e *Error) Unwrap() error { return e.err }

func (e *Error) Kind() Kind { return e.kind }

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	for err != nil {
		if casted, ok := err.(*Error); ok {
			e = casted
			break
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	return e != nil && e.kind == kind
}
