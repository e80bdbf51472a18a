package gateway

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for errors.Is checks against *Error and transport failures
var (
	// ErrTransport wraps network failures: the request never got a response
	ErrTransport = errors.New("gateway: transport failure")
	// ErrMalformed means the server answered with a body that does not decode
	ErrMalformed = errors.New("gateway: malformed response")

	ErrBadRequest   = errors.New("gateway: bad request")
	ErrUnauthorized = errors.New("gateway: unauthorized")
	ErrForbidden    = errors.New("gateway: forbidden")
	ErrNotFound     = errors.New("gateway: not found")
	ErrConflict     = errors.New("gateway: conflict")
	ErrBusinessRule = errors.New("gateway: business rule violated")
	ErrServer       = errors.New("gateway: server error")
)

// Error is a non-success API response
type Error struct {
	Status    int
	Code      string
	Message   string
	RequestID string
}

// newStatusError builds the error for a response without an error body
func newStatusError(status int) *Error {
	return &Error{
		Status:  status,
		Message: "API Error: " + http.StatusText(status),
	}
}

func (e *Error) Error() string {
	if e.Code == "" {
		return e.Message
	}
	return fmt.Sprintf("%s (%s)", e.Message, e.Code)
}

// Is maps the HTTP status onto the package sentinels
func (e *Error) Is(target error) bool {
	switch target {
	case ErrBadRequest:
		return e.Status == http.StatusBadRequest
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case ErrForbidden:
		return e.Status == http.StatusForbidden
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	case ErrConflict:
		return e.Status == http.StatusConflict
	case ErrBusinessRule:
		return e.Status == http.StatusUnprocessableEntity
	case ErrServer:
		return e.Status >= http.StatusInternalServerError
	}
	return false
}

// Message returns the text to show a shopper for err
func Message(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	if errors.Is(err, ErrTransport) {
		return "Không thể kết nối tới máy chủ"
	}
	return err.Error()
}
