package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shaed-rp/findacharger/internal/models"
	"github.com/shaed-rp/findacharger/pkg/http/client"
)

// pagedFetcher returns full pages until the records run out, the way a
// directory with a finite result set behaves.
func pagedFetcher(records []models.Station) *fakeFetcher {
	return &fakeFetcher{
		respond: func(_ int, params models.SearchParams) ([]models.Station, error) {
			start := params.Offset
			if start >= len(records) {
				return []models.Station{}, nil
			}
			end := start + params.Limit
			if end > len(records) {
				end = len(records)
			}
			return records[start:end], nil
		},
	}
}

func TestInfiniteQueryPagination(t *testing.T) {
	records := makeStations("s", 5)
	fetcher := pagedFetcher(records)
	svc := newTestService(t, fetcher, testSearchConfig())

	iq := svc.InfiniteQuery(testParams(), 2)
	assert.True(t, iq.HasMore())

	page, err := iq.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, records[0:2], page)
	assert.True(t, iq.HasMore())

	page, err = iq.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, records[2:4], page)
	assert.True(t, iq.HasMore())

	// The short page marks the result set exhausted.
	page, err = iq.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, records[4:5], page)
	assert.False(t, iq.HasMore())

	// Further calls are no-ops.
	page, err = iq.Next(context.Background())
	require.NoError(t, err)
	assert.Nil(t, page)
	assert.Equal(t, 3, fetcher.callCount())

	assert.Len(t, iq.Pages(), 3)
	assert.Equal(t, records, iq.Stations())
}

func TestInfiniteQueryExactPageBoundary(t *testing.T) {
	// Four records with page size two: the second page is full, so the pager
	// cannot tell the set is exhausted until the empty third page arrives.
	records := makeStations("s", 4)
	fetcher := pagedFetcher(records)
	svc := newTestService(t, fetcher, testSearchConfig())

	iq := svc.InfiniteQuery(testParams(), 2)

	for i := 0; i < 2; i++ {
		_, err := iq.Next(context.Background())
		require.NoError(t, err)
	}
	assert.True(t, iq.HasMore())

	page, err := iq.Next(context.Background())
	require.NoError(t, err)
	assert.Empty(t, page)
	assert.False(t, iq.HasMore())
	assert.Equal(t, records, iq.Stations())
}

func TestInfiniteQueryRestartReusesCache(t *testing.T) {
	records := makeStations("s", 3)
	fetcher := pagedFetcher(records)
	svc := newTestService(t, fetcher, testSearchConfig())

	iq := svc.InfiniteQuery(testParams(), 2)
	for iq.HasMore() {
		_, err := iq.Next(context.Background())
		require.NoError(t, err)
	}
	require.Equal(t, 2, fetcher.callCount())

	iq.Restart()
	assert.True(t, iq.HasMore())
	assert.Empty(t, iq.Pages())

	// The first page is still fresh in the service cache.
	page, err := iq.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, records[0:2], page)
	assert.Equal(t, 2, fetcher.callCount())
}

func TestInfiniteQueryPropagatesErrors(t *testing.T) {
	records := makeStations("s", 4)
	fetcher := pagedFetcher(records)
	base := fetcher.respond
	fetcher.respond = func(call int, params models.SearchParams) ([]models.Station, error) {
		if params.Offset == 2 {
			return nil, &client.HTTPError{StatusCode: 503, URL: "https://directory.test/nearest.json"}
		}
		return base(call, params)
	}
	svc := newTestService(t, fetcher, testSearchConfig())

	iq := svc.InfiniteQuery(testParams(), 2)

	_, err := iq.Next(context.Background())
	require.NoError(t, err)

	// A failed page is not recorded; the pager stays where it was.
	_, err = iq.Next(context.Background())
	require.Error(t, err)
	assert.Len(t, iq.Pages(), 1)
	assert.True(t, iq.HasMore())

	// The failed page is retried on the next call, not skipped.
	_, err = iq.Next(context.Background())
	require.Error(t, err)
	assert.Equal(t, 3, fetcher.callCount())
}

func TestInfiniteQueryDefaultPageSize(t *testing.T) {
	fetcher := &fakeFetcher{respond: alwaysStations(nil)}
	svc := newTestService(t, fetcher, testSearchConfig())

	iq := svc.InfiniteQuery(testParams(), 0)
	assert.Equal(t, defaultPageSize, iq.pageSize)
}
