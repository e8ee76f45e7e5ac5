package api

import "fmt"

// The error taxonomy mirrors how failures are surfaced: authentication
// expiry forces a global logout, authorization failures become a notice with
// the session preserved, and transient server trouble is never conflated
// with either.

// UnauthorizedError marks an authentication-rejected response. By the time
// the caller sees it the session has already been invalidated (once).
type UnauthorizedError struct{}

func (e *UnauthorizedError) Error() string { return "authentication rejected" }

// ForbiddenError is an authorization failure: the caller lacks the role for
// this action but the session itself is still good.
type ForbiddenError struct {
	Message string
}

func (e *ForbiddenError) Error() string { return e.Message }

// TransientError covers network failures, timeouts and 5xx responses. Pages
// may fall back to cached or placeholder content.
type TransientError struct {
	Message string
	Err     error
}

func (e *TransientError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *TransientError) Unwrap() error { return e.Err }

// RequestError is any other non-2xx outcome (validation failures, missing
// resources), carrying the server's code and message.
type RequestError struct {
	Status  int
	Code    string
	Message string
}

func (e *RequestError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}
