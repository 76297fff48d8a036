package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for the REST boundary. The realtime channel
// has no error frames; a receiver being offline is a silent drop, not an
// error.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindNotFound
	KindPersistence
)

// Error carries the structured body the REST collaborators return:
// a kind plus the heading/message pair the client renders.
type Error struct {
	Kind    Kind
	Heading string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validation rejects a request at the boundary before it reaches the
// store.
func Validation(heading, message string) *Error {
	return &Error{Kind: KindValidation, Heading: heading, Message: message}
}

// NotFound reports an absent user or conversation on lookup.
func NotFound(heading, message string) *Error {
	return &Error{Kind: KindNotFound, Heading: heading, Message: message}
}

// Persistence wraps a durable-store failure.
func Persistence(message string, err error) *Error {
	return &Error{Kind: KindPersistence, Heading: "Error", Message: message, Err: err}
}

// KindOf extracts the kind from an error chain, KindUnknown otherwise.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Body is the JSON error body shape: {type, heading, message}.
type Body struct {
	Type    string `json:"type"`
	Heading string `json:"heading"`
	Message string `json:"message"`
}

// Response maps an error to an HTTP status and body.
func Response(err error) (int, Body) {
	var e *Error
	if !errors.As(err, &e) {
		return http.StatusInternalServerError, Body{
			Type:    "error",
			Heading: "Error",
			Message: fmt.Sprintf("Something went wrong. Error: %v", err),
		}
	}

	status := http.StatusInternalServerError
	switch e.Kind {
	case KindValidation:
		status = http.StatusBadRequest
	case KindNotFound:
		status = http.StatusNotFound
	}

	return status, Body{Type: "error", Heading: e.Heading, Message: e.Message}
}
