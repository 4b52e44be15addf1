// Package api provides the HTTP client wrapper for the canvas backend.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	nethttp "net/http"
	"sort"
)

// Kind classifies a backend failure. Callers switch on Kind (or use the
// Is* helpers) instead of inspecting transport error shapes.
type Kind int

const (
	// KindNetwork - transport failure, no HTTP response received
	KindNetwork Kind = iota

	// KindAuth - 401 or rejected credentials
	KindAuth

	// KindValidation - 422 or a local pre-submission check
	KindValidation

	// KindNotFound - 404 on a specific resource
	KindNotFound

	// KindServer - any other non-2xx response
	KindServer
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindAuth:
		return "auth"
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindServer:
		return "server"
	default:
		return "unknown"
	}
}

// Error is the single normalized error type raised by API and repository
// methods. Message is always human-readable: extracted from the response
// body when possible, otherwise a per-operation fallback.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates an Error with the given kind and message.
func NewError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// NetworkError wraps a transport failure.
func NetworkError(err error, fallback string) *Error {
	return &Error{Kind: KindNetwork, Message: fallback, Err: err}
}

// IsAuthError reports whether err is an authentication failure.
func IsAuthError(err error) bool {
	return errorKindIs(err, KindAuth)
}

// IsNotFound reports whether err is a missing-resource failure.
func IsNotFound(err error) bool {
	return errorKindIs(err, KindNotFound)
}

// IsNetworkError reports whether err is a transport failure.
func IsNetworkError(err error) bool {
	return errorKindIs(err, KindNetwork)
}

// IsValidationError reports whether err is a validation failure.
func IsValidationError(err error) bool {
	return errorKindIs(err, KindValidation)
}

func errorKindIs(err error, kind Kind) bool {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind == kind
	}
	return false
}

// errorBody is the superset of error envelope shapes the backend emits.
// Different revisions use "message", "error", or a field-keyed "errors" map.
type errorBody struct {
	Message string              `json:"message"`
	ErrMsg  string              `json:"error"`
	Errors  map[string][]string `json:"errors"`
}

// ParseResponseError normalizes a non-2xx response into an Error and
// closes the response body. The message is probed from the body's
// message, error, then errors fields, falling back to the supplied
// generic message.
func ParseResponseError(resp *nethttp.Response, fallback string) *Error {
	defer resp.Body.Close()
	kind := classifyStatus(resp.StatusCode)

	message := fallback
	body, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err == nil && len(body) > 0 {
		if extracted := extractMessage(body); extracted != "" {
			message = extracted
		}
	}

	return &Error{
		Kind:    kind,
		Status:  resp.StatusCode,
		Message: message,
	}
}

func classifyStatus(status int) Kind {
	switch {
	case status == nethttp.StatusUnauthorized:
		return KindAuth
	case status == nethttp.StatusNotFound:
		return KindNotFound
	case status == nethttp.StatusUnprocessableEntity:
		return KindValidation
	default:
		return KindServer
	}
}

// extractMessage pulls a human-readable message out of an error body.
func extractMessage(body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		return ""
	}
	if eb.Message != "" {
		return eb.Message
	}
	if eb.ErrMsg != "" {
		return eb.ErrMsg
	}
	if len(eb.Errors) > 0 {
		fields := make([]string, 0, len(eb.Errors))
		for field := range eb.Errors {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		for _, field := range fields {
			if msgs := eb.Errors[field]; len(msgs) > 0 && msgs[0] != "" {
				return msgs[0]
			}
		}
	}
	return ""
}
