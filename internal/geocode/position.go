package geocode

import (
	"context"
	"sync"
	"time"

	"github.com/shaed-rp/findacharger/internal/models"
)

// Position is a device-reported fix.
type Position struct {
	Coords    models.Coordinate
	Accuracy  float64 // meters
	Timestamp time.Time
}

// PositionErrorCode mirrors the platform's three standard failure codes.
type PositionErrorCode int

const (
	PositionPermissionDenied PositionErrorCode = iota + 1
	PositionUnavailable
	PositionTimeout
)

// PositionError is a positioning failure carrying a fixed human-readable
// message per code.
type PositionError struct {
	Code PositionErrorCode
}

func (e *PositionError) Error() string {
	switch e.Code {
	case PositionPermissionDenied:
		return "Location access denied by user"
	case PositionUnavailable:
		return "Location information unavailable"
	case PositionTimeout:
		return "Location request timed out"
	default:
		return "Unable to retrieve your location"
	}
}

// PositionOptions configures a one-shot position request.
type PositionOptions struct {
	HighAccuracy bool
	Timeout      time.Duration
	MaximumAge   time.Duration
}

// DefaultPositionOptions requests a high-accuracy fix, waits up to ten
// seconds, and accepts a cached fix up to five minutes old.
func DefaultPositionOptions() PositionOptions {
	return PositionOptions{
		HighAccuracy: true,
		Timeout:      10 * time.Second,
		MaximumAge:   5 * time.Minute,
	}
}

// PositionSource is a one-shot, callback-based positioning capability. An
// implementation invokes exactly one of the callbacks once a fix or failure
// is known; the underlying platform call cannot be cancelled once issued.
type PositionSource interface {
	RequestPosition(opts PositionOptions, success func(Position), failure func(*PositionError))
}

// CurrentLocation bridges a PositionSource's callbacks into a single
// blocking call. The first callback wins and later ones are dropped, so a
// late fix arriving after the caller has moved on is never acted upon. The
// context only abandons the wait; the platform request keeps running until
// it resolves on its own. A nil source fails with ErrPositionUnsupported.
func CurrentLocation(ctx context.Context, src PositionSource, opts PositionOptions) (models.Coordinate, error) {
	if src == nil {
		return models.Coordinate{}, ErrPositionUnsupported
	}
	if opts == (PositionOptions{}) {
		opts = DefaultPositionOptions()
	}

	type outcome struct {
		coord models.Coordinate
		err   error
	}

	done := make(chan outcome, 1)
	var once sync.Once
	resolve := func(o outcome) {
		once.Do(func() { done <- o })
	}

	src.RequestPosition(opts,
		func(pos Position) {
			if err := pos.Coords.Validate(); err != nil {
				resolve(outcome{err: err})
				return
			}
			resolve(outcome{coord: pos.Coords})
		},
		func(posErr *PositionError) {
			resolve(outcome{err: posErr})
		},
	)

	// Backstop for sources that never report their own timeout.
	var timeout <-chan time.Time
	if opts.Timeout > 0 {
		timer := time.NewTimer(opts.Timeout)
		defer timer.Stop()
		timeout = timer.C
	}

	select {
	case o := <-done:
		return o.coord, o.err
	case <-timeout:
		return models.Coordinate{}, &PositionError{Code: PositionTimeout}
	case <-ctx.Done():
		return models.Coordinate{}, ctx.Err()
	}
}
