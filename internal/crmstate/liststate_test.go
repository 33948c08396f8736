package crmstate

import (
	"context"
	"errors"
	"sync"
	"testing"

	"crm-service/internal/client"
	"crm-service/internal/domain/listing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingFetcher struct {
	mu      sync.Mutex
	queries []client.ListQuery
	err     error
}

func (f *recordingFetcher) fetch(_ context.Context, q client.ListQuery) (Page[string], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, q)
	if f.err != nil {
		return Page[string]{}, f.err
	}
	return Page[string]{Rows: []string{q.Sort}, Total: 40}, nil
}

func (f *recordingFetcher) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queries)
}

func (f *recordingFetcher) last() client.ListQuery {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queries[len(f.queries)-1]
}

func newRecordingState() (*ListState[string], *recordingFetcher, *int) {
	f := &recordingFetcher{}
	s := NewListState(f.fetch)
	changes := 0
	s.onChange = func(context.Context) error {
		changes++
		return nil
	}
	return s, f, &changes
}

func TestListStateDefaults(t *testing.T) {
	s, _, _ := newRecordingState()
	snap := s.Snapshot()

	assert.Equal(t, 1, snap.Page)
	assert.Equal(t, 25, snap.Limit)
	assert.Equal(t, "id", snap.Sort)
	assert.Equal(t, listing.Desc, snap.Order)
	assert.Empty(t, snap.Search)
	assert.Equal(t, 1, snap.TotalPages())
}

func TestSetSortToggles(t *testing.T) {
	ctx := context.Background()
	s, f, changes := newRecordingState()
	require.NoError(t, s.SetPage(ctx, 3))

	require.NoError(t, s.SetSort(ctx, "name"))
	snap := s.Snapshot()
	assert.Equal(t, "name", snap.Sort)
	assert.Equal(t, listing.Asc, snap.Order)
	assert.Equal(t, 1, snap.Page)

	require.NoError(t, s.SetSort(ctx, "name"))
	assert.Equal(t, listing.Desc, s.Snapshot().Order)

	require.NoError(t, s.SetSort(ctx, "name"))
	assert.Equal(t, listing.Asc, s.Snapshot().Order)

	// From the default desc on id, clicking id flips to asc.
	s2, _, _ := newRecordingState()
	require.NoError(t, s2.SetSort(ctx, "id"))
	assert.Equal(t, listing.Asc, s2.Snapshot().Order)

	assert.Equal(t, 4, f.calls())
	assert.Equal(t, 4, *changes)
	assert.Equal(t, listing.Asc, f.last().Order)
	assert.Equal(t, []string{"name"}, s.Snapshot().Rows)
}

func TestNoOpChangesDoNotFetch(t *testing.T) {
	ctx := context.Background()
	s, f, changes := newRecordingState()

	require.NoError(t, s.SetPage(ctx, 1))
	require.NoError(t, s.SetPage(ctx, -4))
	require.NoError(t, s.SetSearch(ctx, "  "))
	require.NoError(t, s.SetFilter(ctx, "stage", ""))
	assert.Zero(t, f.calls())
	assert.Zero(t, *changes)

	require.NoError(t, s.SetSearch(ctx, " acme "))
	require.NoError(t, s.SetSearch(ctx, "acme"))
	assert.Equal(t, 1, f.calls())
	assert.Equal(t, 1, *changes)
	assert.Equal(t, "acme", f.last().Search)
}

func TestSearchAndFilterResetPage(t *testing.T) {
	ctx := context.Background()
	s, f, _ := newRecordingState()

	require.NoError(t, s.SetPage(ctx, 4))
	require.NoError(t, s.SetSearch(ctx, "bob"))
	assert.Equal(t, 1, s.Snapshot().Page)

	require.NoError(t, s.SetPage(ctx, 2))
	require.NoError(t, s.SetFilter(ctx, "stage", "won"))
	snap := s.Snapshot()
	assert.Equal(t, 1, snap.Page)
	assert.Equal(t, map[string]string{"stage": "won"}, snap.Filters)
	assert.Equal(t, "won", f.last().Filters["stage"])

	require.NoError(t, s.SetLimit(ctx, 500))
	assert.Equal(t, 100, s.Snapshot().Limit)
	assert.Equal(t, 1, s.Snapshot().TotalPages())
}

func TestFetchErrorIsReportedAndKeepsRows(t *testing.T) {
	ctx := context.Background()
	s, f, _ := newRecordingState()
	var reported []error
	s.onError = func(err error) { reported = append(reported, err) }

	require.NoError(t, s.SetSort(ctx, "name"))
	f.err = errors.New("boom")

	err := s.SetPage(ctx, 2)
	assert.EqualError(t, err, "boom")
	require.Len(t, reported, 1)

	snap := s.Snapshot()
	assert.Equal(t, 2, snap.Page)
	assert.Equal(t, []string{"name"}, snap.Rows)
}

func TestStaleResponseIsDiscarded(t *testing.T) {
	ctx := context.Background()
	started := make(chan struct{})
	release := make(chan struct{})

	var mu sync.Mutex
	calls := 0
	s := NewListState(func(_ context.Context, q client.ListQuery) (Page[int], error) {
		mu.Lock()
		calls++
		n := calls
		mu.Unlock()
		if n == 1 {
			close(started)
			<-release
		}
		return Page[int]{Rows: []int{q.Page}, Total: 100}, nil
	})

	done := make(chan error)
	go func() { done <- s.SetPage(ctx, 2) }()
	<-started

	require.NoError(t, s.SetPage(ctx, 3))
	close(release)
	require.NoError(t, <-done)

	snap := s.Snapshot()
	assert.Equal(t, 3, snap.Page)
	assert.Equal(t, []int{3}, snap.Rows)
}
