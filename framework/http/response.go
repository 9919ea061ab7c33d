package http

import (
	"encoding/json"
	"errors"
	"net/http"
)

// ── Response ─────────────────────────────────────────────────────────────────

// Response is the transport-neutral result of a handler. Interceptors may
// inspect and rewrite it before it is written.
//
// Body is written as-is when it is a []byte, as text/plain when it is a
// string, and JSON-encoded otherwise. A nil Body writes only the status.
type Response struct {
	Status int
	Header http.Header
	Body   any
}

type envelope map[string]any

// JSON builds a JSON response.
//
//	return gohttp.JSON(http.StatusOK, map[string]any{"message": "ok"}), nil
func JSON(status int, body any) *Response {
	return &Response{Status: status, Header: http.Header{}, Body: body}
}

// Success builds 200 JSON: {"data": v}
func Success(v any) *Response {
	return JSON(http.StatusOK, envelope{"data": v})
}

// Created builds 201 JSON: {"data": v}
func Created(v any) *Response {
	return JSON(http.StatusCreated, envelope{"data": v})
}

// Text builds a text/plain response.
func Text(status int, body string) *Response {
	return &Response{Status: status, Header: http.Header{}, Body: body}
}

// NoContent builds 204 with no body.
func NoContent() *Response {
	return &Response{Status: http.StatusNoContent, Header: http.Header{}}
}

// WithHeader sets a header and returns r for chaining.
func (r *Response) WithHeader(key, value string) *Response {
	if r.Header == nil {
		r.Header = http.Header{}
	}
	r.Header.Set(key, value)
	return r
}

// Write serialises r onto w.
func (r *Response) Write(w http.ResponseWriter) error {
	status := r.Status
	if status == 0 {
		status = http.StatusOK
	}
	for k, vals := range r.Header {
		for _, v := range vals {
			w.Header().Add(k, v)
		}
	}

	switch body := r.Body.(type) {
	case nil:
		w.WriteHeader(status)
		return nil
	case []byte:
		w.WriteHeader(status)
		_, err := w.Write(body)
		return err
	case string:
		if w.Header().Get("Content-Type") == "" {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		}
		w.WriteHeader(status)
		_, err := w.Write([]byte(body))
		return err
	default:
		b, err := json.Marshal(body)
		if err != nil {
			// nothing is written yet; answer with a structured 500.
			w.Header().Del("Content-Type")
			if werr := InternalServerError("Internal Server Error").Response().Write(w); werr != nil {
				return errors.Join(err, werr)
			}
			return err
		}
		if w.Header().Get("Content-Type") == "" {
			w.Header().Set("Content-Type", "application/json")
		}
		w.WriteHeader(status)
		_, err = w.Write(append(b, '\n'))
		return err
	}
}
