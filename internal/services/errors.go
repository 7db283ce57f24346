package services

// Custom errors, translated to HTTP statuses at the handler boundary.

type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string { return "Validation error" }

type ConflictError struct{ Message string }

func (e *ConflictError) Error() string { return e.Message }

type NotFoundError struct{ Message string }

func (e *NotFoundError) Error() string { return e.Message }

type UnauthorizedError struct{ Message string }

func (e *UnauthorizedError) Error() string { return e.Message }

type RateLimitError struct{ Message string }

func (e *RateLimitError) Error() string { return e.Message }

// UpstreamError marks a provider-side failure unrelated to the request's
// validity. Retryable by the caller, answered as 502.
type UpstreamError struct{ Message string }

func (e *UpstreamError) Error() string { return e.Message }
