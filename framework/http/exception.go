package http

import (
	"errors"
	"fmt"
	"net/http"
)

// StatusClientClosedRequest is reported when the client went away before the
// pipeline finished. net/http has no constant for it.
const StatusClientClosedRequest = 499

// HttpException is the error type shared by guards, interceptors, handlers
// and extractors. It renders as
//
//	{"statusCode": 400, "error": "Bad Request", "message": "..."}
//
// with an extra "errors" key when Details is set.
type HttpException struct {
	Status  int
	Message string
	Details any
}

type errorBody struct {
	StatusCode int    `json:"statusCode"`
	Error      string `json:"error"`
	Message    string `json:"message"`
	Errors     any    `json:"errors,omitempty"`
}

// NewException builds an HttpException with the given status.
func NewException(status int, message string) *HttpException {
	return &HttpException{Status: status, Message: message}
}

func BadRequest(message string) *HttpException   { return NewException(http.StatusBadRequest, message) }
func Unauthorized(message string) *HttpException { return NewException(http.StatusUnauthorized, message) }
func Forbidden(message string) *HttpException    { return NewException(http.StatusForbidden, message) }
func NotFound(message string) *HttpException     { return NewException(http.StatusNotFound, message) }

func InternalServerError(message string) *HttpException {
	return NewException(http.StatusInternalServerError, message)
}

// WithDetails attaches a structured payload rendered under "errors".
func (e *HttpException) WithDetails(details any) *HttpException {
	cp := *e
	cp.Details = details
	return &cp
}

func (e *HttpException) Error() string {
	return fmt.Sprintf("%d %s: %s", e.Status, StatusReason(e.Status), e.Message)
}

// Response renders the exception.
func (e *HttpException) Response() *Response {
	return JSON(e.Status, errorBody{
		StatusCode: e.Status,
		Error:      StatusReason(e.Status),
		Message:    e.Message,
		Errors:     e.Details,
	})
}

// FromError converts err to an HttpException. Errors that are not already
// an HttpException become a 500 without leaking their text.
func FromError(err error) *HttpException {
	if err == nil {
		return nil
	}
	var he *HttpException
	if errors.As(err, &he) {
		return he
	}
	return InternalServerError("Internal Server Error")
}

// StatusReason returns the canonical reason phrase for code.
func StatusReason(code int) string {
	if code == StatusClientClosedRequest {
		return "Client Closed Request"
	}
	if text := http.StatusText(code); text != "" {
		return text
	}
	return "Error"
}

// ── Result helpers ───────────────────────────────────────────────────────────

// OrBadRequest turns any error into a 400 carrying its message.
func OrBadRequest(err error) error {
	if err == nil {
		return nil
	}
	return BadRequest(err.Error())
}

// OrNotFound returns v, or a 404 with message when ok is false.
//
//	user, err := gohttp.OrNotFound(svc.Find(id))("user not found")
func OrNotFound[T any](v T, ok bool) func(message string) (T, error) {
	return func(message string) (T, error) {
		if !ok {
			return v, NotFound(message)
		}
		return v, nil
	}
}

// NotFoundID builds the standard "<resource> with id <id> not found" 404.
func NotFoundID(resource string, id any) *HttpException {
	return NotFound(fmt.Sprintf("%s with id %v not found", resource, id))
}
