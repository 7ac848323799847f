package search

import (
	"context"
	"sync"
	"time"

	"github.com/shaed-rp/findacharger/internal/models"
	"github.com/shaed-rp/findacharger/internal/station"
)

// Snapshot is the observable state of one search: the data so far (never
// nil), whether a fetch is in flight, the last error, and freshness.
type Snapshot struct {
	Data      []models.Station
	Loading   bool
	Err       error
	UpdatedAt time.Time
	Stale     bool
}

// Query is a consumer's handle on one params key. Holding a handle keeps the
// cached entry alive; Release it when the consumer goes away so the sweeper
// can reclaim the entry.
type Query struct {
	svc    *Service
	params models.SearchParams
	key    string
	e      *entry

	releaseOnce sync.Once
}

// Query registers a consumer for params and returns its handle.
func (s *Service) Query(params models.SearchParams) *Query {
	key := params.Key()
	e := s.entryFor(key)

	s.mu.Lock()
	e.refs++
	s.mu.Unlock()

	return &Query{svc: s, params: params, key: key, e: e}
}

// Get returns stations for the handle's params, serving from cache while
// fresh, exactly like Service.Search.
func (q *Query) Get(ctx context.Context) ([]models.Station, error) {
	if messages := station.ValidateSearchParams(q.params); len(messages) > 0 {
		return nil, &InvalidParametersError{Messages: messages}
	}
	return q.svc.searchEntry(ctx, q.key, q.params, q.e)
}

// Refetch fetches regardless of freshness. Concurrent refetches for the same
// key still share one underlying request.
func (q *Query) Refetch(ctx context.Context) ([]models.Station, error) {
	if messages := station.ValidateSearchParams(q.params); len(messages) > 0 {
		return nil, &InvalidParametersError{Messages: messages}
	}
	return q.svc.doFetch(ctx, q.key, q.params, q.e)
}

// Snapshot reports the entry's current state without fetching.
func (q *Query) Snapshot() Snapshot {
	q.svc.mu.Lock()
	defer q.svc.mu.Unlock()

	data := q.e.data
	if data == nil {
		data = []models.Station{}
	}

	stale := false
	if !q.e.updatedAt.IsZero() {
		stale = q.svc.clock.Now().Sub(q.e.updatedAt) >= q.svc.cfg.GetFreshFor()
	}

	return Snapshot{
		Data:      data,
		Loading:   q.e.loading,
		Err:       q.e.err,
		UpdatedAt: q.e.updatedAt,
		Stale:     stale,
	}
}

// Release drops the handle's reference. Safe to call more than once.
func (q *Query) Release() {
	q.releaseOnce.Do(func() {
		q.svc.mu.Lock()
		defer q.svc.mu.Unlock()

		if q.e.refs > 0 {
			q.e.refs--
		}
		q.e.lastActive = q.svc.clock.Now()
	})
}
