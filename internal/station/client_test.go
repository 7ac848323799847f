package station

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shaed-rp/findacharger/internal/config"
	"github.com/shaed-rp/findacharger/internal/models"
	"github.com/shaed-rp/findacharger/pkg/http/client"
)

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()

	cfg := config.New(
		config.WithAPIKey("TEST_KEY"),
		config.WithStationBaseURL(baseURL),
	)
	httpClient := client.New(client.Options{
		BaseURL: baseURL,
		Timeout: 5 * time.Second,
		Retries: -1,
	})

	c, err := New(cfg, httpClient)
	require.NoError(t, err)
	return c
}

func TestNewRequiresAPIKey(t *testing.T) {
	tests := []struct {
		name string
		cfg  *config.Config
	}{
		{name: "nil config", cfg: nil},
		{name: "empty key", cfg: config.New()},
		{name: "blank key", cfg: config.New(config.WithAPIKey("   "))},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cfg, nil)
			require.Error(t, err)

			var cfgErr *config.ConfigurationError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, "STATION_API_KEY", cfgErr.Field)
		})
	}
}

func TestFetchStationsSortsByDistance(t *testing.T) {
	// Two stations due north of the origin: one ~3.2 miles out, one ~1.1.
	// The provider returns the farther one first.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"fuel_stations": [
				{
					"id": 2,
					"station_name": "Uptown Chargers",
					"fuel_type_code": "ELEC",
					"status_code": "E",
					"latitude": 40.046311,
					"longitude": -105.0
				},
				{
					"id": 1,
					"station_name": "Downtown Garage",
					"fuel_type_code": "ELEC",
					"status_code": "E",
					"latitude": 40.015920,
					"longitude": -105.0
				}
			],
			"total_results": 2
		}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	stations, err := c.FetchStations(context.Background(), models.SearchParams{
		Location: models.Coordinate{Lat: 40.0, Lng: -105.0},
		Radius:   25,
	})
	require.NoError(t, err)
	require.Len(t, stations, 2)

	assert.Equal(t, "1", stations[0].ID)
	assert.Equal(t, "2", stations[1].ID)

	require.NotNil(t, stations[0].Distance)
	require.NotNil(t, stations[1].Distance)
	assert.InDelta(t, 1.1, *stations[0].Distance, 0.001)
	assert.InDelta(t, 3.2, *stations[1].Distance, 0.001)

	// Ascending order end to end.
	for i := 1; i < len(stations); i++ {
		assert.LessOrEqual(t, *stations[i-1].Distance, *stations[i].Distance,
			"Stations should be sorted by distance")
	}
}

func TestFetchStationsMapsTolerantPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"fuel_stations": [
				{
					"id": 151580,
					"station_name": "Downtown Garage",
					"fuel_type_code": "ELEC",
					"status_code": "E",
					"ev_network": "ChargePoint Network",
					"ev_network_web": "https://chargepoint.example.com",
					"ev_connector_types": null,
					"latitude": 40.0,
					"longitude": -105.0,
					"street_address": "600 E Grand Blvd",
					"city": "Detroit",
					"state": "MI",
					"zip": "48211",
					"access_days_time": "24 hours daily",
					"access_code": "public",
					"access_detail_code": null,
					"ev_pricing": null,
					"station_phone": null,
					"ev_level1_evse_num": null,
					"ev_level2_evse_num": "4",
					"ev_dc_fast_num": 2,
					"ev_other_evse": null,
					"e85_blender_pump": "true"
				}
			],
			"total_results": 1,
			"station_counts": {"total": 1, "fuels": {"ELEC": {"total": 1}}}
		}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	stations, err := c.FetchStations(context.Background(), models.SearchParams{
		Location: models.Coordinate{Lat: 40.0, Lng: -105.0},
		Radius:   25,
	})
	require.NoError(t, err)
	require.Len(t, stations, 1)

	got := stations[0]
	assert.Equal(t, "151580", got.ID)
	assert.Equal(t, "Downtown Garage", got.Name)
	assert.Equal(t, models.StatusAvailable, got.Status)

	// Null connector list becomes an empty set, never nil.
	require.NotNil(t, got.ConnectorTypes)
	assert.Empty(t, got.ConnectorTypes)

	// String-typed count coerced to an integer.
	require.NotNil(t, got.EVSECounts.Level2)
	assert.Equal(t, 4, *got.EVSECounts.Level2)
	require.NotNil(t, got.EVSECounts.DCFast)
	assert.Equal(t, 2, *got.EVSECounts.DCFast)
	assert.Nil(t, got.EVSECounts.Level1)
	assert.Nil(t, got.EVSECounts.Other)

	assert.Equal(t, "600 E Grand Blvd, Detroit, MI 48211", got.Address.Full)
	require.NotNil(t, got.Network)
	assert.Equal(t, "ChargePoint Network", *got.Network)
	require.NotNil(t, got.Access.HoursOfOperation)
	assert.Equal(t, "24 hours daily", *got.Access.HoursOfOperation)
	assert.Nil(t, got.Access.Detail)
	assert.Nil(t, got.Pricing)

	// Same point as the origin.
	require.NotNil(t, got.Distance)
	assert.InDelta(t, 0.0, *got.Distance, 1e-9)
}

func TestFetchStationsQueryParameters(t *testing.T) {
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"fuel_stations": [], "total_results": 0}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.FetchStations(context.Background(), models.SearchParams{
		Location:  models.Coordinate{Lat: 42.3314, Lng: -83.0458},
		Radius:    50,
		FuelTypes: []string{"ELEC", "E85"},
		Limit:     20,
		Offset:    40,
	})
	require.NoError(t, err)

	assert.Equal(t, "TEST_KEY", gotQuery.Get("api_key"))
	assert.Equal(t, "42.3314", gotQuery.Get("latitude"))
	assert.Equal(t, "-83.0458", gotQuery.Get("longitude"))
	assert.Equal(t, "50", gotQuery.Get("radius"))
	assert.Equal(t, "json", gotQuery.Get("format"))
	assert.Equal(t, "ELEC,E85", gotQuery.Get("fuel_type"))
	assert.Equal(t, "20", gotQuery.Get("limit"))
	assert.Equal(t, "40", gotQuery.Get("offset"))
}

func TestFetchStationsOmitsEmptyParameters(t *testing.T) {
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"fuel_stations": [], "total_results": 0}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.FetchStations(context.Background(), models.SearchParams{
		Location: models.Coordinate{Lat: 42.3314, Lng: -83.0458},
		Radius:   50,
	})
	require.NoError(t, err)

	_, hasFuel := gotQuery["fuel_type"]
	_, hasLimit := gotQuery["limit"]
	_, hasOffset := gotQuery["offset"]
	assert.False(t, hasFuel)
	assert.False(t, hasLimit)
	assert.False(t, hasOffset)
}

func TestFetchStationsHTTPErrorPropagates(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	cfg := config.New(config.WithAPIKey("BAD_KEY"), config.WithStationBaseURL(srv.URL))
	httpClient := client.New(client.Options{
		BaseURL:     srv.URL,
		Timeout:     5 * time.Second,
		Retries:     2,
		BackoffBase: time.Millisecond,
	})
	c, err := New(cfg, httpClient)
	require.NoError(t, err)

	_, err = c.FetchStations(context.Background(), models.SearchParams{
		Location: models.Coordinate{Lat: 40.0, Lng: -105.0},
		Radius:   25,
	})
	require.Error(t, err)

	// 4xx is permanent: one call, status and URL preserved through the wrap.
	assert.Equal(t, int32(1), calls.Load())
	var httpErr *client.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusForbidden, httpErr.StatusCode)
	assert.Contains(t, httpErr.URL, "/nearest.json")
}

func TestFetchStationsInvalidPayload(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{
			name: "non-numeric count string",
			body: `{"fuel_stations": [{"id": 1, "station_name": "Bad Counts", "fuel_type_code": "ELEC", "latitude": 40.0, "longitude": -105.0, "ev_level2_evse_num": "several"}], "total_results": 1}`,
		},
		{
			name: "station missing coordinates",
			body: `{"fuel_stations": [{"id": 1, "station_name": "Nowhere", "fuel_type_code": "ELEC", "latitude": null, "longitude": null}], "total_results": 1}`,
		},
		{
			name: "station coordinates out of range",
			body: `{"fuel_stations": [{"id": 1, "station_name": "Off the map", "fuel_type_code": "ELEC", "latitude": 95.0, "longitude": -105.0}], "total_results": 1}`,
		},
		{
			name: "fuel_stations is not a list",
			body: `{"fuel_stations": {"id": 1}, "total_results": 1}`,
		},
		{
			name: "blender pump flag is not boolean",
			body: `{"fuel_stations": [{"id": 1, "station_name": "Odd Flag", "fuel_type_code": "E85", "latitude": 40.0, "longitude": -105.0, "e85_blender_pump": "sometimes"}], "total_results": 1}`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := newTestClient(t, srv.URL)
			stations, err := c.FetchStations(context.Background(), models.SearchParams{
				Location: models.Coordinate{Lat: 40.0, Lng: -105.0},
				Radius:   25,
			})
			require.Error(t, err)
			assert.Nil(t, stations)

			var invalidErr *InvalidResponseError
			require.ErrorAs(t, err, &invalidErr)
		})
	}
}

func TestFetchStationsMalformedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body>gateway maintenance</body></html>`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.FetchStations(context.Background(), models.SearchParams{
		Location: models.Coordinate{Lat: 40.0, Lng: -105.0},
		Radius:   25,
	})
	require.Error(t, err)

	var decodeErr *client.DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.False(t, errors.As(err, new(*InvalidResponseError)))
}

func TestFetchStationsNoPartialResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"fuel_stations": [
				{"id": 1, "station_name": "Fine", "fuel_type_code": "ELEC", "latitude": 40.0, "longitude": -105.0},
				{"id": 2, "station_name": "Broken", "fuel_type_code": "ELEC", "latitude": null, "longitude": null}
			],
			"total_results": 2
		}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	stations, err := c.FetchStations(context.Background(), models.SearchParams{
		Location: models.Coordinate{Lat: 40.0, Lng: -105.0},
		Radius:   25,
	})
	require.Error(t, err)
	assert.Nil(t, stations)
}

func TestMapStationsWithoutOrigin(t *testing.T) {
	lat1, lng1 := 40.046311, -105.0
	lat2, lng2 := 40.015920, -105.0
	records := []providerStation{
		{ID: "2", StationName: "Far", FuelTypeCode: "ELEC", Latitude: &lat1, Longitude: &lng1},
		{ID: "1", StationName: "Near", FuelTypeCode: "ELEC", Latitude: &lat2, Longitude: &lng2},
	}

	stations, err := mapStations(records, nil)
	require.NoError(t, err)
	require.Len(t, stations, 2)

	// No origin: no distances, and sorting keeps provider order.
	assert.Nil(t, stations[0].Distance)
	assert.Nil(t, stations[1].Distance)

	sortByDistance(stations)
	assert.Equal(t, "2", stations[0].ID)
	assert.Equal(t, "1", stations[1].ID)
}

func TestSortByDistanceNilsLast(t *testing.T) {
	near, far := 1.1, 3.2
	stations := []models.Station{
		{ID: "no-distance"},
		{ID: "far", Distance: &far},
		{ID: "near", Distance: &near},
	}

	sortByDistance(stations)

	assert.Equal(t, "near", stations[0].ID)
	assert.Equal(t, "far", stations[1].ID)
	assert.Equal(t, "no-distance", stations[2].ID)
}
