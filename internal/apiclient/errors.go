package apiclient

import (
	"errors"
	"fmt"
)

// GenericMessage is shown when a failure carries no server message
const GenericMessage = "Something went wrong"

// Kind classifies a failed API call
type Kind int

const (
	// KindNetwork means no response was received
	KindNetwork Kind = iota + 1
	// KindValidation is a 4xx other than 401, or a 2xx body with success:false
	KindValidation
	// KindAuth is a 401
	KindAuth
	// KindServer is a 5xx
	KindServer
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindValidation:
		return "validation"
	case KindAuth:
		return "auth"
	case KindServer:
		return "server"
	default:
		return "unknown"
	}
}

// Sentinels matched by errors.Is against any *Error of the same kind
var (
	ErrNetwork    = errors.New("network error")
	ErrValidation = errors.New("validation error")
	ErrAuth       = errors.New("authentication error")
	ErrServer     = errors.New("server error")

	// ErrUnsupported is returned for operations the API does not offer
	ErrUnsupported = errors.New("operation not supported by the API")
)

// Error is a failed call to the SneakerX API
type Error struct {
	Kind    Kind
	Op      string // e.g. "GET /category/all"
	Status  int    // zero for network failures
	Message string // server-provided message, if any
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Status != 0 {
		return fmt.Sprintf("%s: %s (%d): %s", e.Op, e.Kind, e.Status, msg)
	}
	return fmt.Sprintf("%s: %s: %s", e.Op, e.Kind, msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the kind sentinels
func (e *Error) Is(target error) bool {
	switch target {
	case ErrNetwork:
		return e.Kind == KindNetwork
	case ErrValidation:
		return e.Kind == KindValidation
	case ErrAuth:
		return e.Kind == KindAuth
	case ErrServer:
		return e.Kind == KindServer
	}
	return false
}

// Message extracts the text to show the operator: the server message when
// there is one, the generic fallback otherwise.
func Message(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return GenericMessage
}

func classify(status int) Kind {
	switch {
	case status == 401:
		return KindAuth
	case status >= 400 && status < 500:
		return KindValidation
	default:
		return KindServer
	}
}
