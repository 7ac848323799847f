package search

import (
	"context"
	"sync"

	"github.com/shaed-rp/findacharger/internal/models"
)

const defaultPageSize = 20

// InfiniteQuery accumulates successive pages of one search. A page that
// comes back shorter than the page size marks the result set exhausted.
type InfiniteQuery struct {
	svc      *Service
	params   models.SearchParams
	pageSize int

	mu      sync.Mutex
	pages   [][]models.Station
	hasMore bool
}

// InfiniteQuery returns an incremental pager over params. pageSize <= 0
// falls back to the default of 20.
func (s *Service) InfiniteQuery(params models.SearchParams, pageSize int) *InfiniteQuery {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return &InfiniteQuery{
		svc:      s,
		params:   params,
		pageSize: pageSize,
		hasMore:  true,
	}
}

// Next fetches the following page and appends it. Once the result set is
// exhausted it returns (nil, nil) without fetching. Concurrent callers are
// serialized so pages stay in order.
func (iq *InfiniteQuery) Next(ctx context.Context) ([]models.Station, error) {
	iq.mu.Lock()
	defer iq.mu.Unlock()

	if !iq.hasMore {
		return nil, nil
	}

	page := len(iq.pages) + 1
	stations, err := iq.svc.SearchPage(ctx, iq.params, page, iq.pageSize)
	if err != nil {
		return nil, err
	}

	iq.pages = append(iq.pages, stations)
	iq.hasMore = len(stations) >= iq.pageSize
	return stations, nil
}

// Pages returns the pages fetched so far, in order.
func (iq *InfiniteQuery) Pages() [][]models.Station {
	iq.mu.Lock()
	defer iq.mu.Unlock()

	pages := make([][]models.Station, len(iq.pages))
	copy(pages, iq.pages)
	return pages
}

// Stations returns every fetched station flattened into one list.
func (iq *InfiniteQuery) Stations() []models.Station {
	iq.mu.Lock()
	defer iq.mu.Unlock()

	var total int
	for _, page := range iq.pages {
		total += len(page)
	}

	stations := make([]models.Station, 0, total)
	for _, page := range iq.pages {
		stations = append(stations, page...)
	}
	return stations
}

// HasMore reports whether another page may exist. True until a fetched page
// comes back short.
func (iq *InfiniteQuery) HasMore() bool {
	iq.mu.Lock()
	defer iq.mu.Unlock()
	return iq.hasMore
}

// Restart forgets the accumulated pages so iteration begins again from the
// first page. Cached pages still fresh are reused without refetching.
func (iq *InfiniteQuery) Restart() {
	iq.mu.Lock()
	defer iq.mu.Unlock()

	iq.pages = nil
	iq.hasMore = true
}
