package notification

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/varoOP/kinodays/internal/domain"
)

// Service is a composite notification service that can send notifications
// through multiple channels
type Service struct {
	discord *DiscordService
}

// NewService creates a new notification service
func NewService(log zerolog.Logger, webhookURL string) domain.NotificationService {
	var discord *DiscordService
	if webhookURL != "" {
		discord = NewDiscordService(log, webhookURL)
	}

	return &Service{
		discord: discord,
	}
}

// SendSummary sends run summaries through all configured channels
func (s *Service) SendSummary(ctx context.Context, stats domain.Statistics, upcoming []domain.Anniversary) error {
	if s.discord != nil {
		if err := s.discord.SendSummary(ctx, stats, upcoming); err != nil {
			return err
		}
	}
	return nil
}

// SendError sends error notifications through all configured channels
func (s *Service) SendError(ctx context.Context, runErr error) error {
	if s.discord != nil {
		if err := s.discord.SendError(ctx, runErr); err != nil {
			return err
		}
	}
	return nil
}
