package station

import (
	"errors"
	"math"

	"github.com/go-playground/validator/v10"

	"github.com/shaed-rp/findacharger/internal/models"
)

var paramsValidator = validator.New()

// searchParamsRules mirrors the validated fields of models.SearchParams so
// the range rules live in tags.
type searchParamsRules struct {
	Lat    float64 `validate:"gte=-90,lte=90"`
	Lng    float64 `validate:"gte=-180,lte=180"`
	Radius float64 `validate:"gte=0,lte=500"`
	Limit  int     `validate:"gte=0"`
	Offset int     `validate:"gte=0"`
}

// ValidateSearchParams checks params and returns a human-readable message
// for every violation. It never fails; an empty result means valid. The
// check is advisory: FetchStations does not invoke it, the query layer does
// before issuing a fetch.
func ValidateSearchParams(params models.SearchParams) []string {
	if !isFinite(params.Location.Lat) || !isFinite(params.Location.Lng) {
		// Range rules are meaningless on non-finite input.
		return []string{"location must have finite lat and lng values"}
	}

	rules := searchParamsRules{
		Lat:    params.Location.Lat,
		Lng:    params.Location.Lng,
		Radius: params.Radius,
		Limit:  params.Limit,
		Offset: params.Offset,
	}

	err := paramsValidator.Struct(rules)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		messages = append(messages, messageForField(fe.Field()))
	}
	return messages
}

func messageForField(field string) string {
	switch field {
	case "Lat":
		return "latitude must be between -90 and 90"
	case "Lng":
		return "longitude must be between -180 and 180"
	case "Radius":
		return "radius must be between 0 and 500 miles"
	case "Limit":
		return "limit must not be negative"
	case "Offset":
		return "offset must not be negative"
	default:
		return field + " is invalid"
	}
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
