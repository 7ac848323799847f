package station

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// The directory's payload is messy: optional fields arrive as null, EVSE
// counts arrive as numbers or numeric strings, station ids as numbers or
// strings, and the blender-pump flag as a boolean or a string. The flex
// types below absorb those shapes so mapping can work with plain values.

// FlexInt is a count that may arrive as a number, a numeric string, or null.
type FlexInt struct {
	Value int
	Set   bool
}

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*f = FlexInt{}
		return nil
	}

	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*f = FlexInt{}
			return nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("count %q is not numeric", s)
		}
		*f = FlexInt{Value: n, Set: true}
		return nil
	}

	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexInt{Value: int(n), Set: true}
	return nil
}

// Ptr returns the count as a nullable int, nil when the source field was
// absent or null.
func (f FlexInt) Ptr() *int {
	if !f.Set {
		return nil
	}
	v := f.Value
	return &v
}

// FlexBool is a flag that may arrive as a boolean, a string, or null.
type FlexBool struct {
	Value bool
	Set   bool
}

func (f *FlexBool) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	switch trimmed {
	case "null":
		*f = FlexBool{}
		return nil
	case "true", "false":
		*f = FlexBool{Value: trimmed == "true", Set: true}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		*f = FlexBool{}
	case "true", "t", "yes", "y", "1":
		*f = FlexBool{Value: true, Set: true}
	case "false", "f", "no", "n", "0":
		*f = FlexBool{Value: false, Set: true}
	default:
		return fmt.Errorf("flag %q is not boolean", s)
	}
	return nil
}

// FlexString is an identifier that may arrive as a string or a number.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*f = ""
		return nil
	}

	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}

// providerStation is the raw station record as the directory emits it.
type providerStation struct {
	ID               FlexString `json:"id"`
	StationName      string     `json:"station_name"`
	FuelTypeCode     string     `json:"fuel_type_code"`
	StatusCode       *string    `json:"status_code"`
	EVNetwork        *string    `json:"ev_network"`
	EVNetworkWeb     *string    `json:"ev_network_web"`
	EVConnectorTypes []string   `json:"ev_connector_types"`
	Latitude         *float64   `json:"latitude"`
	Longitude        *float64   `json:"longitude"`
	StreetAddress    *string    `json:"street_address"`
	City             *string    `json:"city"`
	State            *string    `json:"state"`
	Zip              *string    `json:"zip"`
	AccessDaysTime   *string    `json:"access_days_time"`
	AccessCode       *string    `json:"access_code"`
	AccessDetailCode *string    `json:"access_detail_code"`
	EVPricing        *string    `json:"ev_pricing"`
	StationPhone     *string    `json:"station_phone"`
	EVLevel1EVSENum  FlexInt    `json:"ev_level1_evse_num"`
	EVLevel2EVSENum  FlexInt    `json:"ev_level2_evse_num"`
	EVDCFastNum      FlexInt    `json:"ev_dc_fast_num"`
	EVOtherEVSE      FlexInt    `json:"ev_other_evse"`
	E85BlenderPump   FlexBool   `json:"e85_blender_pump"`
}

// stationsResponse is the directory's top-level response shape. The
// station_counts summary is object-shaped and carried opaquely.
type stationsResponse struct {
	FuelStations  []providerStation `json:"fuel_stations"`
	TotalResults  int               `json:"total_results"`
	StationCounts map[string]any    `json:"station_counts"`
}
