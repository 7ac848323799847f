package search

import (
	"errors"
	"strings"
)

// ErrNoSearch means no search parameters were supplied. Callers treat it as
// the disabled state rather than a failure.
var ErrNoSearch = errors.New("no search parameters provided")

// InvalidParametersError aggregates every validation message for a search.
// It is returned before any network call is made.
type InvalidParametersError struct {
	Messages []string
}

func (e *InvalidParametersError) Error() string {
	return "invalid search parameters: " + strings.Join(e.Messages, "; ")
}
