package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/varoOP/kinodays/internal/domain"
)

// maxUpcoming bounds how many anniversaries a summary embed lists.
const maxUpcoming = 10

// DiscordService implements NotificationService for Discord webhooks
type DiscordService struct {
	log        zerolog.Logger
	webhookURL string
	httpClient *http.Client
}

// NewDiscordService creates a new Discord notification service
func NewDiscordService(log zerolog.Logger, webhookURL string) *DiscordService {
	return &DiscordService{
		log:        log.With().Str("module", "notification").Str("type", "discord").Logger(),
		webhookURL: webhookURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// SendSummary sends a run summary with the nearest upcoming anniversaries.
func (s *DiscordService) SendSummary(ctx context.Context, stats domain.Statistics, upcoming []domain.Anniversary) error {
	if s.webhookURL == "" {
		return nil // No webhook configured, skip silently
	}

	embed := discordEmbed{
		Title:       "Kinodays Run Completed",
		Description: "Film anniversary resolution completed",
		Color:       0x00ff00, // Green
		Timestamp:   time.Now().Format(time.RFC3339),
		Fields: []discordField{
			{
				Name:   "Films",
				Value:  fmt.Sprintf("%d total, %d resolved, %d failed", stats.Total, stats.Resolved, stats.Failed),
				Inline: false,
			},
			{
				Name:   "Cache Hits",
				Value:  fmt.Sprintf("%d", stats.CacheHits),
				Inline: true,
			},
		},
	}

	if upcomingField := formatUpcoming(upcoming); upcomingField != "" {
		embed.Fields = append(embed.Fields, discordField{
			Name:   "Upcoming Anniversaries",
			Value:  upcomingField,
			Inline: false,
		})
	}

	payload := discordWebhook{
		Embeds: []discordEmbed{embed},
	}

	return s.sendWebhook(ctx, payload)
}

// SendError sends an error notification with error details
func (s *DiscordService) SendError(ctx context.Context, runErr error) error {
	if s.webhookURL == "" {
		return nil // No webhook configured, skip silently
	}

	embed := discordEmbed{
		Title:       "Kinodays Run Failed",
		Description: fmt.Sprintf("Anniversary resolution failed with error:\n```%s```", runErr.Error()),
		Color:       0xff0000, // Red
		Timestamp:   time.Now().Format(time.RFC3339),
	}

	payload := discordWebhook{
		Embeds: []discordEmbed{embed},
	}

	return s.sendWebhook(ctx, payload)
}

// formatUpcoming renders the nearest anniversaries as embed lines,
// flagging milestone years.
func formatUpcoming(upcoming []domain.Anniversary) string {
	if len(upcoming) > maxUpcoming {
		upcoming = upcoming[:maxUpcoming]
	}

	lines := make([]string, 0, len(upcoming))
	for _, a := range upcoming {
		line := fmt.Sprintf("%s: %s", a.NextAnniversary, a.Title)
		if a.MilestoneDate == a.NextAnniversary && a.MilestoneYears > 0 {
			line = fmt.Sprintf("%s (%d years)", line, a.MilestoneYears)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// sendWebhook sends a webhook payload to Discord
func (s *DiscordService) sendWebhook(ctx context.Context, payload discordWebhook) error {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "failed to marshal webhook payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return errors.Wrap(err, "failed to create webhook request")
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "failed to send webhook request")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook request failed with status %d", resp.StatusCode)
	}

	s.log.Debug().Msg("Discord notification sent successfully")
	return nil
}

// discordWebhook represents a Discord webhook payload
type discordWebhook struct {
	Embeds []discordEmbed `json:"embeds"`
}

// discordEmbed represents a Discord embed
type discordEmbed struct {
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Color       int            `json:"color"`
	Timestamp   string         `json:"timestamp,omitempty"`
	Fields      []discordField `json:"fields,omitempty"`
}

// discordField represents a Discord embed field
type discordField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}
