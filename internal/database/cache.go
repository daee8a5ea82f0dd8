package database

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/varoOP/kinodays/internal/domain"
)

// CacheRepo implements domain.CacheRepo on top of the film_cache table.
// Every operation touches a single row, so concurrent resolutions for
// distinct URLs cannot lose each other's writes.
type CacheRepo struct {
	log zerolog.Logger
	db  *DB
}

// NewCacheRepo creates a new cache repository
func NewCacheRepo(log zerolog.Logger, db *DB) domain.CacheRepo {
	return &CacheRepo{
		log: log.With().Str("repo", "cache").Logger(),
		db:  db,
	}
}

// Get returns the cache entry for a detail URL, or nil if none exists.
func (r *CacheRepo) Get(ctx context.Context, url string) (*domain.CacheEntry, error) {
	queryBuilder := r.db.squirrel.
		Select("url", "title", "release_date", "next_anniversary", "last_fetched").
		From("film_cache").
		Where(sq.Eq{"url": url})

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "error building query")
	}

	r.log.Trace().Str("query", query).Interface("args", args).Msg("Get")

	var (
		entry       domain.CacheEntry
		releaseDate string
		nextAnniv   string
		lastFetched string
	)

	row := r.db.handler.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&entry.URL, &entry.Title, &releaseDate, &nextAnniv, &lastFetched); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "error scanning row")
	}

	if entry.ReleaseDate, err = time.Parse(domain.DateLayout, releaseDate); err != nil {
		return nil, errors.Wrapf(err, "invalid release_date for %s", url)
	}
	if entry.NextAnniversary, err = time.Parse(domain.DateLayout, nextAnniv); err != nil {
		return nil, errors.Wrapf(err, "invalid next_anniversary for %s", url)
	}
	if entry.LastFetched, err = time.Parse(time.RFC3339, lastFetched); err != nil {
		return nil, errors.Wrapf(err, "invalid last_fetched for %s", url)
	}

	return &entry, nil
}

// Upsert inserts or replaces the cache entry for entry.URL.
func (r *CacheRepo) Upsert(ctx context.Context, entry *domain.CacheEntry) error {
	queryBuilder := r.db.squirrel.
		Replace("film_cache").
		Columns("url", "title", "release_date", "next_anniversary", "last_fetched").
		Values(
			entry.URL,
			entry.Title,
			entry.ReleaseDate.Format(domain.DateLayout),
			entry.NextAnniversary.Format(domain.DateLayout),
			entry.LastFetched.Format(time.RFC3339),
		)

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return errors.Wrap(err, "error building query")
	}

	r.log.Trace().Str("query", query).Interface("args", args).Msg("Upsert")

	_, err = r.db.handler.ExecContext(ctx, query, args...)
	if err != nil {
		return errors.Wrap(err, "error executing query")
	}

	return nil
}

// Delete removes the cache entry for a detail URL.
func (r *CacheRepo) Delete(ctx context.Context, url string) error {
	queryBuilder := r.db.squirrel.
		Delete("film_cache").
		Where(sq.Eq{"url": url})

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return errors.Wrap(err, "error building delete query")
	}

	r.log.Trace().Str("query", query).Interface("args", args).Msg("Delete")

	_, err = r.db.handler.ExecContext(ctx, query, args...)
	if err != nil {
		return errors.Wrap(err, "error executing delete query")
	}

	return nil
}

// Prune deletes entries whose last_fetched is before olderThan and
// returns the number of rows removed.
func (r *CacheRepo) Prune(ctx context.Context, olderThan time.Time) (int, error) {
	queryBuilder := r.db.squirrel.
		Delete("film_cache").
		Where(sq.Lt{"last_fetched": olderThan.Format(time.RFC3339)})

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return 0, errors.Wrap(err, "error building prune query")
	}

	r.log.Trace().Str("query", query).Interface("args", args).Msg("Prune")

	res, err := r.db.handler.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, errors.Wrap(err, "error executing prune query")
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, errors.Wrap(err, "error reading affected rows")
	}

	return int(n), nil
}
