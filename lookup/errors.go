package lookup

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies lookup failures. Every kind maps to one HTTP status
// and one client-facing message; the wrapped cause is never shown to clients.
type ErrorKind int

const (
	// UpstreamUnavailable covers transport failures: refused connections, DNS, resets.
	UpstreamUnavailable ErrorKind = iota
	// InvalidInput means neither an identifier nor a title was supplied.
	InvalidInput
	// UpstreamError means upstream answered, but not with a usable JSON body.
	UpstreamError
	// UpstreamTimeout means upstream did not answer within the configured timeout.
	UpstreamTimeout
)

var errMissingParam = errors.New("missing query parameter i or t")

func (k ErrorKind) String() string {
	switch k {
	case InvalidInput:
		return "invalid_input"
	case UpstreamUnavailable:
		return "upstream_unavailable"
	case UpstreamError:
		return "upstream_error"
	case UpstreamTimeout:
		return "upstream_timeout"
	default:
		return fmt.Sprintf("error_kind(%d)", int(k))
	}
}

// Status returns the HTTP status served for the kind.
func (k ErrorKind) Status() int {
	switch k {
	case InvalidInput:
		return http.StatusBadRequest
	case UpstreamError:
		return http.StatusBadGateway
	case UpstreamTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the client-facing message for the kind.
func (k ErrorKind) Message() string {
	switch k {
	case InvalidInput:
		return "Missing required query parameter: i or t"
	case UpstreamError:
		return "Invalid response from OMDB API"
	case UpstreamTimeout:
		return "Timed out waiting for OMDB API"
	default:
		return "Failed to fetch data from OMDB API"
	}
}

// Error is a classified lookup failure.
type Error struct {
	Kind ErrorKind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of err. Unclassified errors count as UpstreamUnavailable.
func KindOf(err error) ErrorKind {
	var lerr *Error
	if errors.As(err, &lerr) {
		return lerr.Kind
	}
	return UpstreamUnavailable
}
