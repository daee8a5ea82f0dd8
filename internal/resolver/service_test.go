package resolver

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/varoOP/kinodays/internal/domain"
)

type fakeCache struct {
	entries   map[string]*domain.CacheEntry
	getErr    error
	upsertErr error
	getCalls  int
	setCalls  int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string]*domain.CacheEntry{}}
}

func (f *fakeCache) Get(ctx context.Context, url string) (*domain.CacheEntry, error) {
	f.getCalls++
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.entries[url], nil
}

func (f *fakeCache) Upsert(ctx context.Context, entry *domain.CacheEntry) error {
	f.setCalls++
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.entries[entry.URL] = entry
	return nil
}

func (f *fakeCache) Delete(ctx context.Context, url string) error {
	delete(f.entries, url)
	return nil
}

func (f *fakeCache) Prune(ctx context.Context, olderThan time.Time) (int, error) {
	return 0, nil
}

type fakeSource struct {
	dates   map[string]string
	err     error
	fetches int
}

func (f *fakeSource) ReleaseDate(ctx context.Context, url string) (string, error) {
	f.fetches++
	if f.err != nil {
		return "", f.err
	}
	date, ok := f.dates[url]
	if !ok {
		return "", errors.New("release date not found in page content")
	}
	return date, nil
}

func newTestService(cache *fakeCache, source *fakeSource, now time.Time) *service {
	s := NewService(zerolog.Nop(), cache, source).(*service)
	s.now = func() time.Time { return now }
	return s
}

var ref = domain.FilmRef{Title: "Blade Runner", URL: "https://example.com/film/blade-runner/"}

func TestResolveFetchesAndCaches(t *testing.T) {
	cache := newFakeCache()
	source := &fakeSource{dates: map[string]string{ref.URL: "1982-06-25"}}
	now := time.Date(2026, time.January, 10, 9, 0, 0, 0, time.UTC)
	s := newTestService(cache, source, now)

	got, cached, err := s.Resolve(context.Background(), ref)
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, "1982-06-25", got.ReleaseDate)
	assert.Equal(t, "2026-06-25", got.NextAnniversary)
	assert.Equal(t, "2027-06-25", got.MilestoneDate)
	assert.Equal(t, 45, got.MilestoneYears)
	assert.Equal(t, 1, source.fetches)

	entry := cache.entries[ref.URL]
	require.NotNil(t, entry)
	assert.Equal(t, ref.Title, entry.Title)
	assert.True(t, entry.LastFetched.Equal(now))
}

func TestResolveIdempotentWithinTTL(t *testing.T) {
	cache := newFakeCache()
	source := &fakeSource{dates: map[string]string{ref.URL: "1982-06-25"}}
	now := time.Date(2026, time.January, 10, 9, 0, 0, 0, time.UTC)
	s := newTestService(cache, source, now)

	first, cached, err := s.Resolve(context.Background(), ref)
	require.NoError(t, err)
	assert.False(t, cached)

	second, cached, err := s.Resolve(context.Background(), ref)
	require.NoError(t, err)
	assert.True(t, cached)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, source.fetches, "second resolution must not refetch")
}

func TestResolveExpiredEntryRefetches(t *testing.T) {
	cache := newFakeCache()
	now := time.Date(2026, time.January, 10, 9, 0, 0, 0, time.UTC)
	cache.entries[ref.URL] = &domain.CacheEntry{
		URL:             ref.URL,
		Title:           ref.Title,
		ReleaseDate:     time.Date(1982, time.June, 25, 0, 0, 0, 0, time.UTC),
		NextAnniversary: time.Date(2026, time.June, 25, 0, 0, 0, 0, time.UTC),
		LastFetched:     now.Add(-domain.CacheTTL - time.Millisecond),
	}
	source := &fakeSource{dates: map[string]string{ref.URL: "1982-06-25"}}
	s := newTestService(cache, source, now)

	_, cached, err := s.Resolve(context.Background(), ref)
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, 1, source.fetches)
	assert.True(t, cache.entries[ref.URL].LastFetched.Equal(now))
}

func TestResolveCacheReadFailureDegradesToMiss(t *testing.T) {
	cache := newFakeCache()
	cache.getErr = errors.New("database is locked")
	source := &fakeSource{dates: map[string]string{ref.URL: "1982-06-25"}}
	now := time.Date(2026, time.January, 10, 9, 0, 0, 0, time.UTC)
	s := newTestService(cache, source, now)

	got, cached, err := s.Resolve(context.Background(), ref)
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, "1982-06-25", got.ReleaseDate)
	assert.Equal(t, 1, source.fetches)
}

func TestResolveCacheWriteFailureStillSucceeds(t *testing.T) {
	cache := newFakeCache()
	cache.upsertErr = errors.New("disk full")
	source := &fakeSource{dates: map[string]string{ref.URL: "1982-06-25"}}
	now := time.Date(2026, time.January, 10, 9, 0, 0, 0, time.UTC)
	s := newTestService(cache, source, now)

	got, _, err := s.Resolve(context.Background(), ref)
	require.NoError(t, err)
	assert.Equal(t, "1982-06-25", got.ReleaseDate)
}

func TestResolveNetworkFailure(t *testing.T) {
	cache := newFakeCache()
	source := &fakeSource{err: errors.New("connection refused")}
	now := time.Date(2026, time.January, 10, 9, 0, 0, 0, time.UTC)
	s := newTestService(cache, source, now)

	_, _, err := s.Resolve(context.Background(), ref)
	require.Error(t, err)
	assert.Zero(t, cache.setCalls)
}

func TestResolveInvalidDate(t *testing.T) {
	cache := newFakeCache()
	source := &fakeSource{dates: map[string]string{ref.URL: "sometime in 1982"}}
	now := time.Date(2026, time.January, 10, 9, 0, 0, 0, time.UTC)
	s := newTestService(cache, source, now)

	_, _, err := s.Resolve(context.Background(), ref)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidDate)
	assert.Zero(t, cache.setCalls)
}

func TestParseReleaseDateLayouts(t *testing.T) {
	want := time.Date(1982, time.June, 25, 0, 0, 0, 0, time.UTC)
	for _, raw := range []string{"1982-06-25", "25 June 1982", "June 25, 1982", "Jun 25, 1982"} {
		got, err := parseReleaseDate(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}
}
