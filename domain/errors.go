package domain

import "errors"

// Error kinds of the synthesis pipeline. All of them except recorder write
// failures abort the enclosing job; recorder writes are best-effort and only
// logged.
var (
	// ErrInputUnavailable indicates the source document or voice sample could
	// not be fetched or resolved.
	ErrInputUnavailable = errors.New("input unavailable")
	// ErrExtractionEmpty indicates text extraction produced no usable content,
	// e.g. a scanned image without a text layer.
	ErrExtractionEmpty = errors.New("document contains no extractable text")
	// ErrBackendInvocation indicates a segment synthesis call failed outright
	// or returned an unusable payload.
	ErrBackendInvocation = errors.New("synthesis backend invocation failed")
	// ErrResultFetch indicates synthesis succeeded but its result payload
	// could not be retrieved.
	ErrResultFetch = errors.New("synthesis result fetch failed")
	// ErrPublish indicates the final audio could not be written to storage.
	ErrPublish = errors.New("publishing audiobook failed")
)

// ErrJobNotFound is returned by the job recorder when no record exists for
// the requested id.
var ErrJobNotFound = errors.New("job not found")
