package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		base   string
		params map[string]any
		want   string
	}{
		{
			name:   "no params",
			base:   "https://api.example.com/nearest.json",
			params: nil,
			want:   "https://api.example.com/nearest.json",
		},
		{
			name: "keys are sorted",
			base: "https://api.example.com/nearest.json",
			params: map[string]any{
				"radius":    25,
				"latitude":  42.3314,
				"longitude": -83.0458,
			},
			want: "https://api.example.com/nearest.json?latitude=42.3314&longitude=-83.0458&radius=25",
		},
		{
			name: "nil and empty values omitted",
			base: "https://api.example.com/nearest.json",
			params: map[string]any{
				"latitude":  42.3314,
				"fuel_type": "",
				"offset":    nil,
			},
			want: "https://api.example.com/nearest.json?latitude=42.3314",
		},
		{
			name: "existing query preserved",
			base: "https://api.example.com/nearest.json?api_key=abc123",
			params: map[string]any{
				"format": "json",
			},
			want: "https://api.example.com/nearest.json?api_key=abc123&format=json",
		},
		{
			name: "scalar overwrites existing key",
			base: "https://api.example.com/nearest.json?limit=5",
			params: map[string]any{
				"limit": 20,
			},
			want: "https://api.example.com/nearest.json?limit=20",
		},
		{
			name: "slice becomes repeated key",
			base: "https://api.example.com/nearest.json",
			params: map[string]any{
				"fuel_type": []string{"ELEC", "E85"},
			},
			want: "https://api.example.com/nearest.json?fuel_type=ELEC&fuel_type=E85",
		},
		{
			name: "booleans and wide ints stringified",
			base: "https://api.example.com/search",
			params: map[string]any{
				"addressdetails": true,
				"limit":          int64(1),
			},
			want: "https://api.example.com/search?addressdetails=true&limit=1",
		},
		{
			name: "values are escaped",
			base: "https://api.example.com/search",
			params: map[string]any{
				"q": "600 E Grand Blvd, Detroit",
			},
			want: "https://api.example.com/search?q=600+E+Grand+Blvd%2C+Detroit",
		},
		{
			name: "bare path base",
			base: "/reverse",
			params: map[string]any{
				"format": "json",
				"lat":    42.3314,
			},
			want: "/reverse?format=json&lat=42.3314",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := BuildURL(tt.base, tt.params)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			// The same inputs must always yield the same URL.
			again, err := BuildURL(tt.base, tt.params)
			require.NoError(t, err)
			assert.Equal(t, got, again)
		})
	}
}

func TestBuildURLInvalidBase(t *testing.T) {
	t.Parallel()

	_, err := BuildURL("http://bad url with spaces", map[string]any{"a": "b"})
	require.Error(t, err)
}
