// Package batch drives bulk anniversary resolution: fixed-size batches
// resolved concurrently, a pacing delay between batches, and a sorted
// result set at the end.
package batch

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/varoOP/kinodays/internal/domain"
	"github.com/varoOP/kinodays/internal/resolver"
)

const (
	// DefaultBatchSize bounds how many detail pages are fetched
	// concurrently against the origin server.
	DefaultBatchSize = 5

	// DefaultBatchDelay is the pause between batches. A sequential
	// gate, not a token bucket: the next batch starts delay after the
	// previous one fully settled.
	DefaultBatchDelay = 1000 * time.Millisecond
)

// ProgressFunc receives the number of settled items after each batch.
type ProgressFunc func(processed, total int)

// Options tune one scheduler run. Zero values fall back to defaults.
type Options struct {
	BatchSize   int
	BatchDelay  time.Duration
	ItemTimeout time.Duration
	OnProgress  ProgressFunc
}

// Scheduler resolves a full set of film references.
type Scheduler interface {
	ResolveAll(ctx context.Context, refs []domain.FilmRef, opts Options) ([]domain.Anniversary, domain.Statistics, error)
}

type scheduler struct {
	log      zerolog.Logger
	resolver resolver.Service
}

// NewScheduler creates a new batch scheduler driving the given
// resolver. A scheduler holds no run state; each ResolveAll call is an
// independent run.
func NewScheduler(log zerolog.Logger, res resolver.Service) Scheduler {
	return &scheduler{
		log:      log.With().Str("module", "batch").Logger(),
		resolver: res,
	}
}

// ResolveAll partitions refs into contiguous batches, resolves each
// batch concurrently, waits for every item of a batch to settle before
// starting the next, and returns the successes sorted by upcoming
// anniversary. Individual failures are logged and dropped; only a
// cancelled context aborts the run early.
func (s *scheduler) ResolveAll(ctx context.Context, refs []domain.FilmRef, opts Options) ([]domain.Anniversary, domain.Statistics, error) {
	if opts.BatchSize <= 0 {
		opts.BatchSize = DefaultBatchSize
	}
	if opts.BatchDelay <= 0 {
		opts.BatchDelay = DefaultBatchDelay
	}

	total := len(refs)
	stats := domain.Statistics{Total: total}
	slots := make([]slot, total)

	for start := 0; start < total; start += opts.BatchSize {
		end := start + opts.BatchSize
		if end > total {
			end = total
		}

		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()

				itemCtx := ctx
				if opts.ItemTimeout > 0 {
					var cancel context.CancelFunc
					itemCtx, cancel = context.WithTimeout(ctx, opts.ItemTimeout)
					defer cancel()
				}

				record, cached, err := s.resolver.Resolve(itemCtx, refs[i])
				slots[i] = slot{record: record, cached: cached, err: err}
			}(i)
		}
		wg.Wait()

		if opts.OnProgress != nil {
			opts.OnProgress(end, total)
		}
		s.log.Debug().Int("processed", end).Int("total", total).Msg("batch settled")

		if end < total {
			if err := sleep(ctx, opts.BatchDelay); err != nil {
				return s.collect(slots[:end], &stats), stats, err
			}
		}
	}

	return s.collect(slots, &stats), stats, ctx.Err()
}

// slot holds one settled resolution, indexed by input position.
type slot struct {
	record domain.Anniversary
	cached bool
	err    error
}

// collect drops failures, tallies statistics, and sorts the survivors.
func (s *scheduler) collect(slots []slot, stats *domain.Statistics) []domain.Anniversary {
	results := make([]domain.Anniversary, 0, len(slots))
	for _, sl := range slots {
		if sl.err != nil {
			stats.Failed++
			s.log.Warn().Err(sl.err).Msg("dropping failed resolution")
			continue
		}
		if sl.cached {
			stats.CacheHits++
		}
		stats.Resolved++
		results = append(results, sl.record)
	}
	return SortByAnniversary(results)
}

// sleep waits for d or until ctx is cancelled.
func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
