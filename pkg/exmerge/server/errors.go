package server

import (
	"errors"
	"net/http"

	"github.com/ukaji3/exmerge-go/pkg/exmerge"
	"github.com/ukaji3/exmerge-go/pkg/exmerge/output"
	"github.com/ukaji3/exmerge-go/pkg/exmerge/session"
)

// HTTPError is an error with the status code it is rendered with.
type HTTPError struct {
	// Code is the HTTP status code.
	Code int
	// Message is the user-facing message.
	Message string
	// Err is the underlying error, logged but not exposed.
	Err error
}

func (e *HTTPError) Error() string {
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

// NewHTTPError creates a new HTTPError.
func NewHTTPError(code int, message string) *HTTPError {
	return &HTTPError{Code: code, Message: message}
}

func wrapHTTPError(code int, err error) *HTTPError {
	return &HTTPError{Code: code, Message: err.Error(), Err: err}
}

var errSessionNotFound = NewHTTPError(http.StatusNotFound, "session not found")

// statusFor maps an error to its response status and message.
func statusFor(err error) (int, string) {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code, httpErr.Message
	}

	var ingestErr *exmerge.IngestionError
	var maxBytesErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxBytesErr):
		return http.StatusRequestEntityTooLarge, err.Error()
	case errors.As(err, &ingestErr),
		errors.Is(err, exmerge.ErrEmptyWorkbook),
		errors.Is(err, exmerge.ErrUnsupportedFormat),
		errors.Is(err, exmerge.ErrFileNotFound):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, session.ErrSuperseded):
		return http.StatusConflict, err.Error()
	case errors.Is(err, output.ErrInvalidFormat):
		return http.StatusBadRequest, err.Error()
	}
	return http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
}
