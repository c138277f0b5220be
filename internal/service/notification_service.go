package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/arefin-dev/messwallet/internal/models"
	"github.com/arefin-dev/messwallet/internal/repository"
)

// NotificationService owns per-recipient notification rows. A broadcast is
// one insert per known profile, issued sequentially.
type NotificationService struct {
	notifications repository.NotificationRepository
	profiles      repository.ProfileRepository
	logger        *zap.Logger
}

func NewNotificationService(
	notifications repository.NotificationRepository,
	profiles repository.ProfileRepository,
	logger *zap.Logger,
) *NotificationService {
	return &NotificationService{
		notifications: notifications,
		profiles:      profiles,
		logger:        logger,
	}
}

func (s *NotificationService) List(ctx context.Context, p Principal) ([]models.Notification, error) {
	return s.notifications.ListByUser(ctx, p.UserID, 50)
}

func (s *NotificationService) UnreadCount(ctx context.Context, p Principal) (int, error) {
	return s.notifications.UnreadCount(ctx, p.UserID)
}

func (s *NotificationService) MarkRead(ctx context.Context, id uuid.UUID) error {
	return s.notifications.MarkRead(ctx, id)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, p Principal) error {
	return s.notifications.MarkAllRead(ctx, p.UserID)
}

// SendGlobal is the admin-facing broadcast. The role check comes before any
// write, so a denied call creates no rows.
func (s *NotificationService) SendGlobal(ctx context.Context, p Principal, title, message, notifType string) error {
	if !p.IsAdmin() {
		return ErrAdminOnly
	}
	return s.Broadcast(ctx, title, message, notifType)
}

// Broadcast fans one notification out to every profile. Inserts are
// independent: a failure partway leaves the earlier rows committed.
func (s *NotificationService) Broadcast(ctx context.Context, title, message, notifType string) error {
	profiles, err := s.profiles.List(ctx)
	if err != nil {
		return fmt.Errorf("list profiles for broadcast: %w", err)
	}

	for _, profile := range profiles {
		_, err := s.notifications.Create(ctx, &models.Notification{
			UserID:  profile.UserID,
			Title:   title,
			Message: message,
			Type:    notifType,
		})
		if err != nil {
			return fmt.Errorf("broadcast to %s: %w", profile.UserID, err)
		}
	}

	s.logger.Debug("notification broadcast",
		zap.String("title", title),
		zap.Int("recipients", len(profiles)),
	)
	return nil
}
