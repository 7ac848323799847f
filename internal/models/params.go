package models

import (
	"strconv"
	"strings"
)

// SearchParams is the input to a station search. Values are treated as
// immutable: a new value replaces the old one on every search, and Key is
// the cache identity for the query layer.
type SearchParams struct {
	Location  Coordinate `json:"location"`
	Radius    float64    `json:"radius"` // miles
	FuelTypes []string   `json:"fuelTypes,omitempty"`
	Limit     int        `json:"limit,omitempty"`
	Offset    int        `json:"offset,omitempty"`
}

// Key returns the canonical cache key. Structurally identical params always
// produce identical keys.
func (p SearchParams) Key() string {
	var b strings.Builder
	b.WriteString("lat=")
	b.WriteString(strconv.FormatFloat(p.Location.Lat, 'f', -1, 64))
	b.WriteString("|lng=")
	b.WriteString(strconv.FormatFloat(p.Location.Lng, 'f', -1, 64))
	b.WriteString("|radius=")
	b.WriteString(strconv.FormatFloat(p.Radius, 'f', -1, 64))
	if len(p.FuelTypes) > 0 {
		b.WriteString("|fuel=")
		b.WriteString(strings.Join(p.FuelTypes, ","))
	}
	if p.Limit > 0 {
		b.WriteString("|limit=")
		b.WriteString(strconv.Itoa(p.Limit))
	}
	if p.Offset > 0 {
		b.WriteString("|offset=")
		b.WriteString(strconv.Itoa(p.Offset))
	}
	return b.String()
}

// WithPage returns a copy with Limit and Offset derived from a one-based
// page number and page size.
func (p SearchParams) WithPage(page, pageSize int) SearchParams {
	if page < 1 {
		page = 1
	}
	p.Limit = pageSize
	p.Offset = (page - 1) * pageSize
	p.FuelTypes = append([]string(nil), p.FuelTypes...)
	return p
}
