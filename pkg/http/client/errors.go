package client

import "fmt"

// HTTPError is a non-2xx response from the remote service. It keeps the
// status code and request URL so callers can report exactly what failed.
type HTTPError struct {
	StatusCode int
	URL        string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("http error %d fetching %s", e.StatusCode, e.URL)
}

// Retryable reports whether the failure is worth retrying. Client errors
// (4xx) are permanent; server errors and anything unclassified are not.
func (e *HTTPError) Retryable() bool {
	return e.StatusCode < 400 || e.StatusCode >= 500
}

// DecodeError wraps a JSON parse failure for a response body, keeping the
// request URL. It is distinct from HTTPError: the request itself succeeded.
type DecodeError struct {
	URL string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding response from %s: %v", e.URL, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
