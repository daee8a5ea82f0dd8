package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
	"github.com/varoOP/kinodays/internal/batch"
	"github.com/varoOP/kinodays/internal/domain"
)

// defaultFetchTimeout caps one detail-page fetch. The origin gets no
// other per-item timeout.
const defaultFetchTimeout = 15 * time.Second

// Load loads configuration from multiple sources:
// 1. Config file (config.yaml, optional)
// 2. Environment variables (KINODAYS_*)
// 3. CLI flags bound by the cmd package
func Load() (*domain.Config, error) {
	cfg := &domain.Config{}

	cfg.ListURL = viper.GetString("list_url")
	cfg.WatchlistPath = viper.GetString("watchlist")
	cfg.DiscordWebhookURL = viper.GetString("discord_webhook_url")

	cfg.BatchSize = viper.GetInt("batch_size")
	if cfg.BatchSize == 0 {
		cfg.BatchSize = batch.DefaultBatchSize
	}
	if cfg.BatchSize < 0 {
		return nil, fmt.Errorf("batch_size must be positive, got %d", cfg.BatchSize)
	}

	cfg.BatchDelay = viper.GetDuration("batch_delay")
	if cfg.BatchDelay == 0 {
		cfg.BatchDelay = batch.DefaultBatchDelay
	}
	if cfg.BatchDelay < 0 {
		return nil, fmt.Errorf("batch_delay must not be negative, got %s", cfg.BatchDelay)
	}

	cfg.FetchTimeout = viper.GetDuration("fetch_timeout")
	if cfg.FetchTimeout == 0 {
		cfg.FetchTimeout = defaultFetchTimeout
	}

	return cfg, nil
}
