package search

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"github.com/shaed-rp/findacharger/internal/config"
	"github.com/shaed-rp/findacharger/internal/models"
	"github.com/shaed-rp/findacharger/internal/station"
	"github.com/shaed-rp/findacharger/pkg/http/client"
)

// StationFetcher is the slice of the station client this layer needs.
type StationFetcher interface {
	FetchStations(ctx context.Context, params models.SearchParams) ([]models.Station, error)
}

// entry is the cached state for one params key. All fields are guarded by
// the service mutex.
type entry struct {
	data       []models.Station
	err        error
	updatedAt  time.Time // zero until the first successful fetch
	loading    bool
	refs       int
	lastActive time.Time
}

// Service caches station search results per params key. Identical concurrent
// searches share one underlying fetch, results are served from cache while
// fresh, and stale results are served immediately while a background refresh
// runs. Construct one per application and pass it down explicitly.
type Service struct {
	fetcher StationFetcher
	cfg     *config.SearchConfig
	clock   clockwork.Clock
	store   *lru.Cache[string, *entry]
	flight  singleflight.Group

	mu        sync.Mutex
	done      chan struct{}
	closeOnce sync.Once
}

type Option func(*Service)

// WithClock replaces the wall clock, used by tests to control freshness and
// eviction windows.
func WithClock(clock clockwork.Clock) Option {
	return func(s *Service) {
		s.clock = clock
	}
}

// New creates a search service around a station fetcher. A nil cfg loads the
// environment-driven defaults.
func New(fetcher StationFetcher, cfg *config.SearchConfig, opts ...Option) (*Service, error) {
	if cfg == nil {
		cfg = config.GetSearchConfig()
	}

	store, err := lru.New[string, *entry](cfg.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("creating result cache: %w", err)
	}

	s := &Service{
		fetcher: fetcher,
		cfg:     cfg,
		clock:   clockwork.NewRealClock(),
		store:   store,
		done:    make(chan struct{}),
	}

	for _, opt := range opts {
		opt(s)
	}

	if cfg.EnableCache && cfg.SweepSeconds > 0 {
		go s.runSweeper(cfg.GetSweepInterval())
	}

	return s, nil
}

// Close stops the eviction sweeper. Safe to call more than once.
func (s *Service) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
	})
}

// Search resolves params to a station list. Nil params mean "no search yet"
// and return ErrNoSearch without touching the network; invalid params fail
// with an InvalidParametersError, also before any network call. Callers must
// not mutate the returned slice.
func (s *Service) Search(ctx context.Context, params *models.SearchParams) ([]models.Station, error) {
	if params == nil {
		return nil, ErrNoSearch
	}
	if messages := station.ValidateSearchParams(*params); len(messages) > 0 {
		return nil, &InvalidParametersError{Messages: messages}
	}

	key := params.Key()
	return s.searchEntry(ctx, key, *params, s.entryFor(key))
}

// SearchPage derives limit/offset from a page number and size and delegates
// to Search. Pages are cached independently.
func (s *Service) SearchPage(ctx context.Context, params models.SearchParams, page, pageSize int) ([]models.Station, error) {
	paged := params.WithPage(page, pageSize)
	return s.Search(ctx, &paged)
}

func (s *Service) searchEntry(ctx context.Context, key string, params models.SearchParams, e *entry) ([]models.Station, error) {
	if s.cfg.EnableCache {
		s.mu.Lock()
		if !e.updatedAt.IsZero() {
			data := e.data
			e.lastActive = s.clock.Now()
			if s.clock.Now().Sub(e.updatedAt) < s.cfg.GetFreshFor() {
				s.mu.Unlock()
				log.Debug().Str("key", key).Msg("search cache hit")
				return data, nil
			}
			// Stale: hand back what we have and refresh behind the caller.
			if !e.loading {
				go func() {
					_, _ = s.doFetch(context.Background(), key, params, e)
				}()
			}
			s.mu.Unlock()
			log.Debug().Str("key", key).Msg("serving stale search result")
			return data, nil
		}
		s.mu.Unlock()
	}

	return s.doFetch(ctx, key, params, e)
}

// doFetch runs the query-level retrying fetch through singleflight so that
// concurrent calls for the same key share one network request, and records
// the outcome on the entry.
func (s *Service) doFetch(ctx context.Context, key string, params models.SearchParams, e *entry) ([]models.Station, error) {
	v, err, _ := s.flight.Do(key, func() (any, error) {
		s.setLoading(e, true)
		defer s.setLoading(e, false)

		stations, fetchErr := s.fetchWithRetry(ctx, params)

		s.mu.Lock()
		if fetchErr != nil {
			e.err = fetchErr
		} else {
			e.data = stations
			e.err = nil
			e.updatedAt = s.clock.Now()
		}
		e.lastActive = s.clock.Now()
		s.mu.Unlock()

		return stations, fetchErr
	})
	if err != nil {
		return nil, err
	}
	stations, _ := v.([]models.Station)
	return stations, nil
}

// fetchWithRetry applies the query layer's own retry policy on top of
// whatever the HTTP client already does. Non-retryable failures (4xx,
// structurally invalid payloads) are returned after the first attempt.
func (s *Service) fetchWithRetry(ctx context.Context, params models.SearchParams) ([]models.Station, error) {
	var lastErr error

	for attempt := 0; attempt <= s.cfg.Retries; attempt++ {
		if attempt > 0 {
			delay := client.Backoff(attempt-1, s.cfg.GetBackoffBase())
			log.Debug().
				Int("attempt", attempt).
				Dur("delay", delay).
				Msg("retrying station search")
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-s.clock.After(delay):
			}
		}

		stations, err := s.fetcher.FetchStations(ctx, params)
		if err == nil {
			return stations, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return nil, lastErr
		}
		if !retryableSearchError(err) {
			return nil, err
		}
	}

	return nil, lastErr
}

// retryableSearchError reports whether the query layer should try again.
// Client-side HTTP failures and invalid provider payloads will not improve
// on retry.
func retryableSearchError(err error) bool {
	var httpErr *client.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Retryable()
	}
	var invalidErr *station.InvalidResponseError
	return !errors.As(err, &invalidErr)
}

func (s *Service) setLoading(e *entry, loading bool) {
	s.mu.Lock()
	e.loading = loading
	s.mu.Unlock()
}

func (s *Service) entryFor(key string) *entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.store.Get(key); ok {
		e.lastActive = s.clock.Now()
		return e
	}

	e := &entry{lastActive: s.clock.Now()}
	s.store.Add(key, e)
	return e
}

func (s *Service) runSweeper(interval time.Duration) {
	ticker := s.clock.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.Chan():
			s.sweep()
		}
	}
}

// sweep evicts entries that no consumer references and that have been idle
// longer than the eviction window.
func (s *Service) sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	for _, key := range s.store.Keys() {
		e, ok := s.store.Peek(key)
		if !ok {
			continue
		}
		if e.refs == 0 && !e.loading && now.Sub(e.lastActive) > s.cfg.GetEvictAfter() {
			s.store.Remove(key)
			log.Debug().Str("key", key).Msg("evicted idle search entry")
		}
	}
}
