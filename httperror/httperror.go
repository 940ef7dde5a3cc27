package httperror

import (
	"errors"
	"net/http"
)

// ErrorObject is an error carrying the HTTP status it should surface as.
// Services return these; controllers map them onto the response envelope.
type ErrorObject struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *ErrorObject) Error() string {
	return e.Message
}

func New(code int, message string) *ErrorObject {
	return &ErrorObject{Code: code, Message: message}
}

// NewBadRequest covers validation failures (missing or malformed input).
func NewBadRequest(message string) *ErrorObject {
	return New(http.StatusBadRequest, message)
}

// NewUnauthorized covers missing or invalid bearer tokens.
func NewUnauthorized(message string) *ErrorObject {
	return New(http.StatusUnauthorized, message)
}

// NewForbidden covers authenticated callers with insufficient role or an
// ownership mismatch.
func NewForbidden(message string) *ErrorObject {
	return New(http.StatusForbidden, message)
}

// NewNotFound covers references to ids that do not resolve.
func NewNotFound(message string) *ErrorObject {
	return New(http.StatusNotFound, message)
}

func NewConflict(message string) *ErrorObject {
	return New(http.StatusConflict, message)
}

// NewBadGateway covers payment gateway call failures.
func NewBadGateway(message string) *ErrorObject {
	return New(http.StatusBadGateway, message)
}

func NewInternal(message string) *ErrorObject {
	return New(http.StatusInternalServerError, message)
}

// StatusOf extracts the HTTP status from err, defaulting to 500 for errors
// that carry no status of their own (raw store failures and the like).
func StatusOf(err error) int {
	var obj *ErrorObject
	if errors.As(err, &obj) {
		return obj.Code
	}
	return http.StatusInternalServerError
}
