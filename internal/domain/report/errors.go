package report

import "errors"

// Pipeline error taxonomy. Each failure mode surfaces as a distinct
// sentinel so the transport layer can map it to a status code.
var (
	// ErrUnsupportedProvider: the inbound model field is not one of the
	// enumerated providers. Rejected before any network activity.
	ErrUnsupportedProvider = errors.New("unsupported analysis provider")

	// ErrProfileUnavailable: the remote profile store could not be reached
	// or kept answering 5xx after the single transient retry.
	ErrProfileUnavailable = errors.New("profile unavailable")

	// ErrMalformedProfile: the profile body was not an object (or a
	// one-element array of one) matching the expected shape.
	ErrMalformedProfile = errors.New("malformed profile")

	// ErrNoUsableData: every category payload failed the inner decode.
	ErrNoUsableData = errors.New("no usable category data")

	// ErrRenderingFailed: final document compile failed. There is no
	// partial-document concept so this is always fatal.
	ErrRenderingFailed = errors.New("report rendering failed")

	// ErrRequestTimeout: the end-to-end request budget was exceeded.
	// Partial work is discarded, never persisted.
	ErrRequestTimeout = errors.New("request timeout")
)
