package station

import (
	"context"

	"github.com/shaed-rp/findacharger/internal/models"
)

// Fetcher defines the interface for station directory lookups
type Fetcher interface {
	FetchStations(ctx context.Context, params models.SearchParams) ([]models.Station, error)
}
