package models

import (
	"fmt"
	"math"
)

// Coordinate is a WGS84 point. Values are validated at every boundary
// crossing (search submission, geocoding result, provider record); invalid
// coordinates are a hard failure, never clamped.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// InvalidCoordinateError reports a coordinate outside the WGS84 domain.
type InvalidCoordinateError struct {
	Lat    float64
	Lng    float64
	Reason string
}

func (e *InvalidCoordinateError) Error() string {
	return fmt.Sprintf("invalid coordinate (%v, %v): %s", e.Lat, e.Lng, e.Reason)
}

func (c Coordinate) Validate() error {
	if math.IsNaN(c.Lat) || math.IsInf(c.Lat, 0) || math.IsNaN(c.Lng) || math.IsInf(c.Lng, 0) {
		return &InvalidCoordinateError{Lat: c.Lat, Lng: c.Lng, Reason: "latitude and longitude must be finite"}
	}
	if c.Lat < -90 || c.Lat > 90 {
		return &InvalidCoordinateError{Lat: c.Lat, Lng: c.Lng, Reason: "latitude must be between -90 and 90"}
	}
	if c.Lng < -180 || c.Lng > 180 {
		return &InvalidCoordinateError{Lat: c.Lat, Lng: c.Lng, Reason: "longitude must be between -180 and 180"}
	}
	return nil
}
