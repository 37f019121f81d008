// Package apierr normalizes transport, HTTP, and validation failures from the
// GitHub API into a single error shape.
//
// Every failed call yields exactly one *Error. The Kind identifies where the
// failure came from; Message is suitable for showing to a user as-is.
package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// Kind classifies a normalized error.
type Kind int

// Error kinds, one per failure origin.
const (
	KindUnknown Kind = iota
	KindTimeout
	KindConnectivity
	KindNetwork
	KindHTTPStatus
	KindValidation
	KindNotFoundInResult
)

// String returns the kind name used in logs.
func (k Kind) String() string {
	switch k {
	case KindTimeout:
		return "timeout"
	case KindConnectivity:
		return "connectivity"
	case KindNetwork:
		return "network"
	case KindHTTPStatus:
		return "http_status"
	case KindValidation:
		return "validation"
	case KindNotFoundInResult:
		return "not_found_in_result"
	default:
		return "unknown"
	}
}

// User-facing messages for HTTP status codes.
const (
	MsgBadRequest        = "Invalid request parameters"
	MsgUnauthorized      = "Authentication required or credentials invalid"
	MsgRateLimited       = "API rate limit exceeded, try again later"
	MsgNotFound          = "Resource not found"
	MsgValidationFailed  = "Request validation failed"
	MsgServerUnavailable = "GitHub API is temporarily unavailable"
	MsgUnreachable       = "Unable to reach the GitHub API, check your network connection"
)

// RateLimit holds the rate limit headers returned with a failed response.
// It is diagnostic only and never changes the chosen message.
type RateLimit struct {
	Limit     int
	Remaining int
	Reset     time.Time
}

// Exhausted reports whether the response said no requests remain.
func (r *RateLimit) Exhausted() bool {
	return r != nil && r.Remaining == 0
}

// Error is the normalized error value. It is built once at the failure site
// and never mutated afterwards.
type Error struct {
	Kind    Kind
	Message string

	// StatusCode is set only for KindHTTPStatus.
	StatusCode int

	// RawBody is the response body for KindHTTPStatus, nil otherwise.
	RawBody []byte

	// RateLimit is parsed from X-RateLimit-* headers when present.
	RateLimit *RateLimit

	cause error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// HasStatus reports whether the error carries an HTTP status code.
func (e *Error) HasStatus() bool {
	return e.StatusCode != 0
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind == kind
	}
	return false
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// Validation builds a response-shape error. It carries no status code.
func Validation(format string, args ...any) *Error {
	return &Error{
		Kind:    KindValidation,
		Message: fmt.Sprintf(format, args...),
	}
}

// NotFoundInResult builds the logical "not found" error for lookups inside an
// already-fetched result set. It is distinct from an HTTP 404.
func NotFoundInResult(format string, args ...any) *Error {
	return &Error{
		Kind:    KindNotFoundInResult,
		Message: fmt.Sprintf(format, args...),
	}
}

// FromResponse builds the error for a response with a non-success status.
func FromResponse(status int, header http.Header, body []byte) *Error {
	return &Error{
		Kind:       KindHTTPStatus,
		Message:    statusMessage(status),
		StatusCode: status,
		RawBody:    body,
		RateLimit:  parseRateLimit(header),
	}
}

// statusMessage picks the user-facing message for an HTTP status code.
// GitHub answers 403 for both forbidden and rate limited requests; 403 is
// always reported as rate limiting.
func statusMessage(status int) string {
	switch status {
	case http.StatusBadRequest:
		return MsgBadRequest
	case http.StatusUnauthorized:
		return MsgUnauthorized
	case http.StatusForbidden:
		return MsgRateLimited
	case http.StatusNotFound:
		return MsgNotFound
	case http.StatusUnprocessableEntity:
		return MsgValidationFailed
	case http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable:
		return MsgServerUnavailable
	default:
		return fmt.Sprintf("HTTP error %d", status)
	}
}

func parseRateLimit(header http.Header) *RateLimit {
	if header == nil {
		return nil
	}
	remaining := header.Get("X-RateLimit-Remaining")
	if remaining == "" {
		return nil
	}
	rl := &RateLimit{}
	var err error
	if rl.Remaining, err = strconv.Atoi(remaining); err != nil {
		return nil
	}
	if limit, convErr := strconv.Atoi(header.Get("X-RateLimit-Limit")); convErr == nil {
		rl.Limit = limit
	}
	if reset, convErr := strconv.ParseInt(header.Get("X-RateLimit-Reset"), 10, 64); convErr == nil {
		rl.Reset = time.Unix(reset, 0)
	}
	return rl
}
