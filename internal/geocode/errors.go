package geocode

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyQuery means the trimmed query was empty. It is returned
	// before any network call is made.
	ErrEmptyQuery = errors.New("address query is empty")

	// ErrNoResults means the provider returned zero matches.
	ErrNoResults = errors.New("no results found for address")

	// ErrNoAddressFound means a reverse lookup produced no display name.
	ErrNoAddressFound = errors.New("no address found for coordinates")

	// ErrPositionUnsupported means the platform exposes no positioning
	// capability at all.
	ErrPositionUnsupported = errors.New("positioning is not supported on this platform")
)

// InvalidCoordinatesError represents a provider result whose lat/lon could
// not be parsed as finite, in-range numbers.
type InvalidCoordinatesError struct {
	Lat string
	Lon string
}

func (e *InvalidCoordinatesError) Error() string {
	return fmt.Sprintf("invalid coordinates in geocoding result: lat=%q lon=%q", e.Lat, e.Lon)
}

// FailedError represents a lower-level fetch or decode failure during a
// geocoding lookup
type FailedError struct {
	Query string
	Err   error
}

func (e *FailedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("geocoding %q failed: %v", e.Query, e.Err)
	}
	return fmt.Sprintf("geocoding %q failed", e.Query)
}

func (e *FailedError) Unwrap() error {
	return e.Err
}

// NewFailedError creates a new geocoding failure error
func NewFailedError(query string, err error) *FailedError {
	return &FailedError{
		Query: query,
		Err:   err,
	}
}
