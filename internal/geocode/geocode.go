package geocode

import (
	"context"
	"math"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/shaed-rp/findacharger/internal/geo"
	"github.com/shaed-rp/findacharger/internal/models"
	"github.com/shaed-rp/findacharger/pkg/http/client"
)

// Client resolves free-text addresses to coordinates and back through a
// Nominatim-style geocoding service, and exposes the device positioning
// capability when one is wired in.
type Client struct {
	httpClient *client.Client
	positions  PositionSource
}

type Option func(*Client)

// WithPositionSource wires in a platform positioning capability. Without
// one, CurrentLocation fails with ErrPositionUnsupported.
func WithPositionSource(src PositionSource) Option {
	return func(c *Client) {
		c.positions = src
	}
}

// New creates a geocoding client. The HTTP client is expected to carry the
// geocoding service's base URL.
func New(httpClient *client.Client, opts ...Option) *Client {
	c := &Client{httpClient: httpClient}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// geocodeResult is the provider's candidate shape. Coordinates arrive as
// strings.
type geocodeResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// GeocodeAddress resolves a free-text query to the provider's single best
// match. An empty query fails with ErrEmptyQuery before any network call.
func (c *Client) GeocodeAddress(ctx context.Context, query string) (models.Coordinate, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return models.Coordinate{}, ErrEmptyQuery
	}

	path, err := client.BuildURL("/search", map[string]any{
		"q":              trimmed,
		"format":         "json",
		"limit":          1,
		"addressdetails": 1,
	})
	if err != nil {
		return models.Coordinate{}, NewFailedError(trimmed, err)
	}

	log.Debug().Str("query", trimmed).Msg("geocoding address")

	var results []geocodeResult
	if err := c.httpClient.GetJSON(ctx, path, &results); err != nil {
		return models.Coordinate{}, NewFailedError(trimmed, err)
	}

	if len(results) == 0 {
		return models.Coordinate{}, ErrNoResults
	}

	return parseCoordinate(results[0])
}

// ReverseGeocode resolves a coordinate to the provider's display address.
func (c *Client) ReverseGeocode(ctx context.Context, lat, lng float64) (string, error) {
	if err := geo.ValidateCoordinates(lat, lng); err != nil {
		return "", err
	}

	path, err := client.BuildURL("/reverse", map[string]any{
		"lat":            lat,
		"lon":            lng,
		"format":         "json",
		"addressdetails": 1,
	})
	if err != nil {
		return "", NewFailedError(geo.FormatCoordinates(models.Coordinate{Lat: lat, Lng: lng}), err)
	}

	log.Debug().Float64("lat", lat).Float64("lng", lng).Msg("reverse geocoding")

	var result struct {
		DisplayName string `json:"display_name"`
	}
	if err := c.httpClient.GetJSON(ctx, path, &result); err != nil {
		return "", NewFailedError(geo.FormatCoordinates(models.Coordinate{Lat: lat, Lng: lng}), err)
	}

	if result.DisplayName == "" {
		return "", ErrNoAddressFound
	}
	return result.DisplayName, nil
}

// CurrentLocation resolves the device position through the wired-in source.
func (c *Client) CurrentLocation(ctx context.Context, opts PositionOptions) (models.Coordinate, error) {
	return CurrentLocation(ctx, c.positions, opts)
}

func parseCoordinate(r geocodeResult) (models.Coordinate, error) {
	lat, latErr := strconv.ParseFloat(r.Lat, 64)
	lng, lngErr := strconv.ParseFloat(r.Lon, 64)
	if latErr != nil || lngErr != nil ||
		math.IsNaN(lat) || math.IsInf(lat, 0) ||
		math.IsNaN(lng) || math.IsInf(lng, 0) {
		return models.Coordinate{}, &InvalidCoordinatesError{Lat: r.Lat, Lon: r.Lon}
	}

	coord := models.Coordinate{Lat: lat, Lng: lng}
	if err := coord.Validate(); err != nil {
		return models.Coordinate{}, &InvalidCoordinatesError{Lat: r.Lat, Lon: r.Lon}
	}
	return coord, nil
}
