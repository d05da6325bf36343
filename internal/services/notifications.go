// Package services holds the feed, interaction, social, notification,
// content, search and auth logic on top of the repositories.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"

	"github.com/anonto42/mediashare/backend/internal/apperr"
	"github.com/anonto42/mediashare/backend/internal/models"
	"github.com/anonto42/mediashare/backend/internal/repositories"
	"github.com/anonto42/mediashare/backend/pkg/telemetry"
)

// DefaultNotificationLimit caps how many notifications a listing returns.
const DefaultNotificationLimit = 50

// EventPublisher forwards created notifications to a message bus.
type EventPublisher interface {
	Publish(ctx context.Context, key string, value []byte) error
}

// NotificationService records notifications and serves a recipient's inbox.
type NotificationService struct {
	repo      repositories.NotificationRepository
	publisher EventPublisher
}

// NewNotificationService creates a NotificationService. publisher may be nil.
func NewNotificationService(repo repositories.NotificationRepository, publisher EventPublisher) *NotificationService {
	return &NotificationService{repo: repo, publisher: publisher}
}

// Notify records a notification for recipientID about actorID's action.
// It is best effort: failures are logged and never reach the caller, and
// actors are never notified about themselves. It returns the stored row or nil.
func (s *NotificationService) Notify(ctx context.Context, recipientID, actorID uint, typ models.NotificationType, referenceID *uint) *models.Notification {
	if recipientID == 0 || recipientID == actorID {
		return nil
	}

	n := &models.Notification{
		RecipientID: recipientID,
		ActorID:     actorID,
		Type:        typ,
		ReferenceID: referenceID,
	}
	if err := s.repo.CreateNotification(ctx, n); err != nil {
		telemetry.Notifications.WithLabelValues(string(typ), "failed").Inc()
		log.Printf("notify: %s for user %d by user %d: %v", typ, recipientID, actorID, err)
		return nil
	}
	telemetry.Notifications.WithLabelValues(string(typ), "created").Inc()

	if s.publisher != nil {
		s.publish(ctx, n)
	}
	return n
}

func (s *NotificationService) publish(ctx context.Context, n *models.Notification) {
	payload, err := json.Marshal(n)
	if err != nil {
		log.Printf("notify: encode event %d: %v", n.ID, err)
		return
	}
	if err := s.publisher.Publish(ctx, strconv.FormatUint(uint64(n.RecipientID), 10), payload); err != nil {
		log.Printf("notify: publish event %d: %v", n.ID, err)
	}
}

// ListForRecipient returns the newest notifications of recipientID.
func (s *NotificationService) ListForRecipient(ctx context.Context, recipientID uint) ([]models.NotificationDetails, error) {
	if recipientID == 0 {
		return nil, apperr.Validation("recipient id is required")
	}
	return s.repo.GetNotificationsByRecipient(ctx, recipientID, DefaultNotificationLimit)
}

// MarkRead marks one of recipientID's notifications read. It is idempotent.
func (s *NotificationService) MarkRead(ctx context.Context, id, recipientID uint) error {
	found, err := s.repo.MarkAsRead(ctx, id, recipientID)
	if err != nil {
		return err
	}
	if !found {
		return apperr.NotFound(fmt.Sprintf("notification %d not found", id))
	}
	return nil
}

func (s *NotificationService) MarkAllRead(ctx context.Context, recipientID uint) (int64, error) {
	return s.repo.MarkAllAsRead(ctx, recipientID)
}

func (s *NotificationService) UnreadCount(ctx context.Context, recipientID uint) (int64, error) {
	return s.repo.GetUnreadCount(ctx, recipientID)
}
