package station

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/shaed-rp/findacharger/internal/config"
	"github.com/shaed-rp/findacharger/internal/geo"
	"github.com/shaed-rp/findacharger/internal/models"
	"github.com/shaed-rp/findacharger/pkg/http/client"
)

// Client queries the charging-station directory and normalizes its raw
// records into the internal station model.
type Client struct {
	httpClient *client.Client
	apiKey     string
}

// New creates a station directory client. The API key is required; without
// one construction fails and nothing is ever fetched.
func New(cfg *config.Config, httpClient *client.Client) (*Client, error) {
	if cfg == nil || strings.TrimSpace(cfg.APIKey) == "" {
		return nil, &config.ConfigurationError{Field: "STATION_API_KEY", Reason: "required but not set"}
	}

	if httpClient == nil {
		httpClient = client.New(client.Options{
			BaseURL:     cfg.StationBaseURL,
			Timeout:     cfg.HTTPTimeout,
			Retries:     cfg.MaxRetries,
			BackoffBase: cfg.BackoffBase,
			UserAgent:   cfg.UserAgent,
		})
	}

	return &Client{
		httpClient: httpClient,
		apiKey:     cfg.APIKey,
	}, nil
}

// FetchStations queries the directory for stations near params.Location and
// returns the validated, mapped list ordered ascending by distance. Callers
// are expected to run ValidateSearchParams beforehand; this method does not.
// Either the full mapped list is returned or the call fails, never partial
// results.
func (c *Client) FetchStations(ctx context.Context, params models.SearchParams) ([]models.Station, error) {
	query := map[string]any{
		"api_key":   c.apiKey,
		"latitude":  params.Location.Lat,
		"longitude": params.Location.Lng,
		"radius":    params.Radius,
		"format":    "json",
	}
	if len(params.FuelTypes) > 0 {
		query["fuel_type"] = strings.Join(params.FuelTypes, ",")
	}
	if params.Limit > 0 {
		query["limit"] = params.Limit
	}
	if params.Offset > 0 {
		query["offset"] = params.Offset
	}

	path, err := client.BuildURL("/nearest.json", query)
	if err != nil {
		return nil, fmt.Errorf("building station query: %w", err)
	}

	log.Debug().
		Float64("lat", params.Location.Lat).
		Float64("lng", params.Location.Lng).
		Float64("radius", params.Radius).
		Strs("fuel_types", params.FuelTypes).
		Msg("fetching stations")

	resp, err := c.httpClient.Get(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("fetching stations: %w", err)
	}

	var payload stationsResponse
	if err := json.Unmarshal(resp.Body, &payload); err != nil {
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			return nil, &client.DecodeError{URL: resp.URL, Err: err}
		}
		return nil, NewInvalidResponseError("fuel_stations payload", err)
	}

	stations, err := mapStations(payload.FuelStations, &params.Location)
	if err != nil {
		return nil, err
	}

	log.Debug().
		Int("station_count", len(stations)).
		Int("total_results", payload.TotalResults).
		Msg("mapped station records")

	sortByDistance(stations)
	return stations, nil
}

func mapStations(records []providerStation, origin *models.Coordinate) ([]models.Station, error) {
	stations := make([]models.Station, 0, len(records))
	for _, raw := range records {
		mapped, err := mapStation(raw, origin)
		if err != nil {
			return nil, err
		}
		stations = append(stations, mapped)
	}
	return stations, nil
}

func mapStation(raw providerStation, origin *models.Coordinate) (models.Station, error) {
	if raw.Latitude == nil || raw.Longitude == nil {
		return models.Station{}, NewInvalidResponseError(fmt.Sprintf("station %s is missing coordinates", raw.ID), nil)
	}
	location := models.Coordinate{Lat: *raw.Latitude, Lng: *raw.Longitude}
	if err := location.Validate(); err != nil {
		return models.Station{}, NewInvalidResponseError(fmt.Sprintf("station %s coordinates", raw.ID), err)
	}

	connectors := raw.EVConnectorTypes
	if connectors == nil {
		connectors = []string{}
	}

	street := deref(raw.StreetAddress)
	city := deref(raw.City)
	state := deref(raw.State)
	zip := deref(raw.Zip)

	mapped := models.Station{
		ID:             string(raw.ID),
		Name:           raw.StationName,
		FuelType:       raw.FuelTypeCode,
		Status:         models.StatusFromCode(deref(raw.StatusCode)),
		Network:        raw.EVNetwork,
		ConnectorTypes: connectors,
		Location:       location,
		Address: models.Address{
			Street: street,
			City:   city,
			State:  state,
			Zip:    zip,
			Full:   fmt.Sprintf("%s, %s, %s %s", street, city, state, zip),
		},
		Access: models.Access{
			HoursOfOperation: raw.AccessDaysTime,
			Code:             raw.AccessCode,
			Detail:           raw.AccessDetailCode,
		},
		Pricing: raw.EVPricing,
		Phone:   raw.StationPhone,
		Website: raw.EVNetworkWeb,
		EVSECounts: models.EVSECounts{
			Level1: raw.EVLevel1EVSENum.Ptr(),
			Level2: raw.EVLevel2EVSENum.Ptr(),
			DCFast: raw.EVDCFastNum.Ptr(),
			Other:  raw.EVOtherEVSE.Ptr(),
		},
	}

	if origin != nil {
		distance := geo.DistanceMiles(*origin, location)
		mapped.Distance = &distance
	}

	return mapped, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// sortByDistance orders stations ascending by distance when at least one
// record carries one. Records without a distance sort last; when none has a
// distance, provider order is preserved.
func sortByDistance(stations []models.Station) {
	hasDistance := false
	for _, s := range stations {
		if s.Distance != nil {
			hasDistance = true
			break
		}
	}
	if !hasDistance {
		return
	}

	sort.SliceStable(stations, func(i, j int) bool {
		di, dj := stations[i].Distance, stations[j].Distance
		if di == nil {
			return false
		}
		if dj == nil {
			return true
		}
		return *di < *dj
	})
}
