package ai

import "errors"

// ErrTimeout indicates the provider call exceeded its deadline.
// Retried once with backoff by the orchestrator, then surfaced.
var ErrTimeout = errors.New("ai provider timeout")

// ErrRejected indicates the provider refused the call (quota, auth,
// invalid input, HTTP 4xx/429). Never retried.
var ErrRejected = errors.New("ai provider rejected request")

// ErrMalformedResponse indicates the provider answered with a shape the
// phase decoder cannot use. Never retried.
var ErrMalformedResponse = errors.New("ai provider returned malformed response")
