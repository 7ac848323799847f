package models

import "strings"

type StationStatus string

const (
	StatusAvailable   StationStatus = "available"
	StatusUnavailable StationStatus = "unavailable"
	StatusUnknown     StationStatus = "unknown"
)

// StatusFromCode maps a provider status code to a StationStatus. Energized
// codes (E, A) are available, planned and temporarily-down codes (P, T) are
// unavailable, anything else (including absent) is unknown.
func StatusFromCode(code string) StationStatus {
	switch strings.ToUpper(strings.TrimSpace(code)) {
	case "E", "A":
		return StatusAvailable
	case "P", "T":
		return StatusUnavailable
	default:
		return StatusUnknown
	}
}

// Address is a station's postal address plus a precomputed single-line form.
type Address struct {
	Street string `json:"street"`
	City   string `json:"city"`
	State  string `json:"state"`
	Zip    string `json:"zip"`
	Full   string `json:"full"`
}

// Access carries the provider's free-text access fields.
type Access struct {
	HoursOfOperation *string `json:"hoursOfOperation,omitempty"`
	Code             *string `json:"code,omitempty"`
	Detail           *string `json:"detail,omitempty"`
}

// EVSECounts is the number of charging ports by level. A nil field means the
// provider did not report that level, which is distinct from zero.
type EVSECounts struct {
	Level1 *int `json:"level1,omitempty"`
	Level2 *int `json:"level2,omitempty"`
	DCFast *int `json:"dcFast,omitempty"`
	Other  *int `json:"other,omitempty"`
}

// Station is the canonical internal station record. Distance is set only
// when the producing search supplied an origin; it is never defaulted to 0.
type Station struct {
	ID             string        `json:"id"`
	Name           string        `json:"name"`
	FuelType       string        `json:"fuelType"`
	Status         StationStatus `json:"status"`
	Network        *string       `json:"network,omitempty"`
	ConnectorTypes []string      `json:"connectorTypes"`
	Location       Coordinate    `json:"location"`
	Address        Address       `json:"address"`
	Access         Access        `json:"access"`
	Pricing        *string       `json:"pricing,omitempty"`
	Phone          *string       `json:"phone,omitempty"`
	Website        *string       `json:"website,omitempty"`
	Distance       *float64      `json:"distance,omitempty"`
	EVSECounts     EVSECounts    `json:"evseCounts"`
}
