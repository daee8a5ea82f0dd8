package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"github.com/varoOP/kinodays/internal/batch"
	"github.com/varoOP/kinodays/internal/config"
	"github.com/varoOP/kinodays/internal/database"
	"github.com/varoOP/kinodays/internal/domain"
	"github.com/varoOP/kinodays/internal/fetch"
	"github.com/varoOP/kinodays/internal/logger"
	"github.com/varoOP/kinodays/internal/notification"
	"github.com/varoOP/kinodays/internal/repository"
	"github.com/varoOP/kinodays/internal/resolver"
	"github.com/varoOP/kinodays/internal/scrape"
)

// App wires the pipeline dependencies. Run state lives in the services
// built per call, so two Apps (or two Run calls) cannot corrupt each
// other.
type App struct {
	log                 zerolog.Logger
	config              *domain.Config
	filmRepo            domain.FilmRepository
	scrapeService       scrape.Service
	notificationService domain.NotificationService
}

// NewApp creates a new application instance with all dependencies initialized
func NewApp() (*App, error) {
	log := logger.NewLoggerWithLevel(viper.GetString("log_level"))

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return &App{
		log:                 log,
		config:              cfg,
		filmRepo:            repository.NewFileRepository(log),
		scrapeService:       scrape.NewService(log),
		notificationService: notification.NewService(log, cfg.DiscordWebhookURL),
	}, nil
}

// Run executes the full anniversary resolution pipeline: gather film
// references, resolve them in paced batches, store and report results.
func (a *App) Run(ctx context.Context, rootPath string) (err error) {
	defer func() {
		if err != nil {
			if notifyErr := a.notificationService.SendError(ctx, err); notifyErr != nil {
				a.log.Warn().Err(notifyErr).Msg("Failed to send error notification")
			}
		}
	}()

	paths := domain.NewPaths(rootPath)

	refs, err := a.gatherRefs(ctx)
	if err != nil {
		return err
	}
	if len(refs) == 0 {
		a.log.Info().Msg("No film references found, nothing to resolve")
		return nil
	}

	db, err := database.NewDB(".", a.log)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	cacheRepo := database.NewCacheRepo(a.log, db)
	source := fetch.NewHTTPSource(a.log, a.config.FetchTimeout)
	resolverService := resolver.NewService(a.log, cacheRepo, source)
	scheduler := batch.NewScheduler(a.log, resolverService)

	results, stats, err := scheduler.ResolveAll(ctx, refs, batch.Options{
		BatchSize:   a.config.BatchSize,
		BatchDelay:  a.config.BatchDelay,
		ItemTimeout: a.config.FetchTimeout,
		OnProgress: func(processed, total int) {
			a.log.Info().Int("processed", processed).Int("total", total).Msg("Resolution progress")
		},
	})
	if err != nil {
		return fmt.Errorf("resolution run aborted: %w", err)
	}

	if err := a.filmRepo.StoreAnniversaries(ctx, paths.AnniversaryPath, results); err != nil {
		return fmt.Errorf("failed to store anniversaries: %w", err)
	}

	a.log.Info().
		Int("total", stats.Total).
		Int("resolved", stats.Resolved).
		Int("failed", stats.Failed).
		Int("cache_hits", stats.CacheHits).
		Str("output", paths.AnniversaryPath).
		Msg("=== RUN COMPLETE ===")

	if notifyErr := a.notificationService.SendSummary(ctx, stats, results); notifyErr != nil {
		a.log.Warn().Err(notifyErr).Msg("Failed to send summary notification")
	}

	return nil
}

// PruneCache removes cache entries older than the validity window.
func (a *App) PruneCache(ctx context.Context) error {
	db, err := database.NewDB(".", a.log)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	cacheRepo := database.NewCacheRepo(a.log, db)
	n, err := cacheRepo.Prune(ctx, time.Now().Add(-domain.CacheTTL))
	if err != nil {
		return fmt.Errorf("failed to prune cache: %w", err)
	}

	a.log.Info().Int("pruned", n).Msg("Cache prune complete")
	return nil
}

// gatherRefs builds the input reference set, preferring the listing
// scraper and falling back to a watchlist file.
func (a *App) gatherRefs(ctx context.Context) ([]domain.FilmRef, error) {
	if a.config.ListURL != "" {
		refs, err := a.scrapeService.FilmRefs(ctx, a.config.ListURL)
		if err != nil {
			return nil, fmt.Errorf("failed to scrape listing: %w", err)
		}
		return refs, nil
	}

	if a.config.WatchlistPath != "" {
		refs, err := a.filmRepo.GetWatchlist(ctx, a.config.WatchlistPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read watchlist: %w", err)
		}
		return refs, nil
	}

	return nil, fmt.Errorf("either list_url or watchlist is required (set via config.yaml, flags, or KINODAYS_* environment variables)")
}
