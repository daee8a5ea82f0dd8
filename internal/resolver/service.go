package resolver

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/varoOP/kinodays/internal/anniversary"
	"github.com/varoOP/kinodays/internal/domain"
	"github.com/varoOP/kinodays/internal/fetch"
)

// ErrInvalidDate is returned when the extracted release-date string
// does not parse as a calendar date.
var ErrInvalidDate = errors.New("release date string is not a valid date")

// dateLayouts are the formats accepted from page content, most
// specific first.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05Z07:00",
	"2 January 2006",
	"January 2, 2006",
	"Jan 2, 2006",
}

// Service resolves one film reference into its anniversary record.
type Service interface {
	Resolve(ctx context.Context, ref domain.FilmRef) (domain.Anniversary, bool, error)
}

type service struct {
	log    zerolog.Logger
	cache  domain.CacheRepo
	source fetch.ReleaseDateSource
	now    func() time.Time
}

// NewService creates a new resolver backed by the given cache and
// release-date source.
func NewService(log zerolog.Logger, cache domain.CacheRepo, source fetch.ReleaseDateSource) Service {
	return &service{
		log:    log.With().Str("module", "resolver").Logger(),
		cache:  cache,
		source: source,
		now:    time.Now,
	}
}

// Resolve returns the anniversary record for ref, consulting the cache
// first and fetching the detail page on a miss. The bool reports
// whether the cache satisfied the resolution. Any failure is local to
// this reference.
func (s *service) Resolve(ctx context.Context, ref domain.FilmRef) (domain.Anniversary, bool, error) {
	now := s.now()

	entry, err := s.cache.Get(ctx, ref.URL)
	if err != nil {
		// A broken cache read degrades to a miss.
		s.log.Warn().Err(err).Str("url", ref.URL).Msg("cache read failed, treating as miss")
		entry = nil
	}

	if entry != nil && entry.Valid(now) {
		s.log.Debug().Str("title", ref.Title).Str("url", ref.URL).Msg("cache hit")
		return s.record(ref, entry.ReleaseDate, entry.NextAnniversary, now), true, nil
	}

	raw, err := s.source.ReleaseDate(ctx, ref.URL)
	if err != nil {
		return domain.Anniversary{}, false, errors.Wrapf(err, "failed to resolve %q", ref.Title)
	}

	release, err := parseReleaseDate(raw)
	if err != nil {
		return domain.Anniversary{}, false, errors.Wrapf(err, "failed to resolve %q", ref.Title)
	}

	next := anniversary.Next(release, now)

	if err := s.cache.Upsert(ctx, &domain.CacheEntry{
		URL:             ref.URL,
		Title:           ref.Title,
		ReleaseDate:     release,
		NextAnniversary: next,
		LastFetched:     now,
	}); err != nil {
		// The fetch succeeded, so the result still stands.
		s.log.Warn().Err(err).Str("url", ref.URL).Msg("cache write failed")
	}

	return s.record(ref, release, next, now), false, nil
}

func (s *service) record(ref domain.FilmRef, release, next time.Time, now time.Time) domain.Anniversary {
	milestone, years := anniversary.NextMilestone(release, now)
	return domain.Anniversary{
		Title:           ref.Title,
		URL:             ref.URL,
		ReleaseDate:     release.Format(domain.DateLayout),
		NextAnniversary: next.Format(domain.DateLayout),
		MilestoneDate:   milestone.Format(domain.DateLayout),
		MilestoneYears:  years,
	}
}

func parseReleaseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, errors.Wrapf(ErrInvalidDate, "unparseable release date %q", raw)
}
