package grading

import "errors"

var (
	// ErrRemoteUnavailable wraps any failure to obtain a remote grading.
	ErrRemoteUnavailable = errors.New("remote grading unavailable")

	// ErrMalformedPayload marks a well-formed response that lacks data the
	// result needs, such as a grade for every question.
	ErrMalformedPayload = errors.New("malformed remote grading payload")
)
