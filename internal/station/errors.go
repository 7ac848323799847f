package station

import "fmt"

// InvalidResponseError represents a provider payload that failed tolerant
// schema validation. The query layer treats it as permanent and never
// retries it.
type InvalidResponseError struct {
	Detail string
	Err    error
}

func (e *InvalidResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid station directory response: %s: %v", e.Detail, e.Err)
	}
	return fmt.Sprintf("invalid station directory response: %s", e.Detail)
}

func (e *InvalidResponseError) Unwrap() error {
	return e.Err
}

// NewInvalidResponseError creates a new invalid response error
func NewInvalidResponseError(detail string, err error) *InvalidResponseError {
	return &InvalidResponseError{
		Detail: detail,
		Err:    err,
	}
}
