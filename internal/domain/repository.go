package domain

import (
	"context"
	"time"
)

// CacheRepo defines the interface for release-date cache operations.
// Storage is per-key: concurrent upserts for distinct URLs never clobber
// each other.
type CacheRepo interface {
	Get(ctx context.Context, url string) (*CacheEntry, error)
	Upsert(ctx context.Context, entry *CacheEntry) error
	Delete(ctx context.Context, url string) error
	Prune(ctx context.Context, olderThan time.Time) (int, error)
}

// FilmRepository defines the interface for watchlist input and
// anniversary output files.
type FilmRepository interface {
	GetWatchlist(ctx context.Context, path string) ([]FilmRef, error)
	StoreAnniversaries(ctx context.Context, path string, anniversaries []Anniversary) error
}

// NotificationService sends run summaries to an external sink.
type NotificationService interface {
	SendSummary(ctx context.Context, stats Statistics, upcoming []Anniversary) error
	SendError(ctx context.Context, runErr error) error
}
