package geo

import (
	"fmt"
	"math"

	"github.com/shaed-rp/findacharger/internal/models"
)

const (
	earthRadiusMiles = 3959.0
	earthRadiusKm    = 6371.0

	feetPerMile = 5280.0
	metersPerKm = 1000.0
)

// Unit selects the measurement system for formatting.
type Unit string

const (
	Miles      Unit = "miles"
	Kilometers Unit = "km"
)

// DistanceMiles returns the great-circle distance between a and b in miles.
func DistanceMiles(a, b models.Coordinate) float64 {
	return haversine(a, b, earthRadiusMiles)
}

// DistanceKm returns the great-circle distance between a and b in kilometers.
func DistanceKm(a, b models.Coordinate) float64 {
	return haversine(a, b, earthRadiusKm)
}

func haversine(a, b models.Coordinate, radius float64) float64 {
	dLat := toRadians(b.Lat - a.Lat)
	dLng := toRadians(b.Lng - a.Lng)
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(a.Lat))*math.Cos(toRadians(b.Lat))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return radius * c
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// FormatDistance renders d for humans: below one mile/kilometer as whole
// feet/meters, otherwise with one decimal and the unit suffix.
func FormatDistance(d float64, unit Unit) string {
	if unit == Kilometers {
		if d < 1 {
			return fmt.Sprintf("%d m", int(math.Round(d*metersPerKm)))
		}
		return fmt.Sprintf("%.1f km", d)
	}
	if d < 1 {
		return fmt.Sprintf("%d ft", int(math.Round(d*feetPerMile)))
	}
	return fmt.Sprintf("%.1f mi", d)
}

// FormatCoordinates renders c with four decimal places.
func FormatCoordinates(c models.Coordinate) string {
	return fmt.Sprintf("%.4f, %.4f", c.Lat, c.Lng)
}

// ValidateCoordinates reports whether lat/lng form a usable WGS84 point.
func ValidateCoordinates(lat, lng float64) error {
	return models.Coordinate{Lat: lat, Lng: lng}.Validate()
}
