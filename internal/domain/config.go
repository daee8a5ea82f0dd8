package domain

import "time"

type Config struct {
	ListURL           string        `toml:"list_url" mapstructure:"list_url"`
	WatchlistPath     string        `toml:"watchlist" mapstructure:"watchlist"`
	BatchSize         int           `toml:"batch_size" mapstructure:"batch_size"`
	BatchDelay        time.Duration `toml:"batch_delay" mapstructure:"batch_delay"`
	FetchTimeout      time.Duration `toml:"fetch_timeout" mapstructure:"fetch_timeout"`
	DiscordWebhookURL string        `toml:"discord_webhook_url" mapstructure:"discord_webhook_url"`
}
