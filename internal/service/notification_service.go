// Package service contains the application's business logic.
package service

import (
	"context"
	"encoding/json"
	"fmt"

	"nabta/internal/middleware"
	"nabta/internal/models"
	"nabta/internal/notifications"
	"nabta/internal/observability"
	"nabta/internal/repository"
)

// NotificationService composes, stores, and delivers in-app notifications.
// Every message is rendered in both English and Arabic at write time; the
// client picks one by locale.
type NotificationService struct {
	notificationRepo repository.NotificationRepository
	userRepo         repository.UserRepository
	notifier         *notifications.Notifier
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(
	notificationRepo repository.NotificationRepository,
	userRepo repository.UserRepository,
	notifier *notifications.Notifier,
) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		notifier:         notifier,
	}
}

// Bilingual message templates per notification type. %s is the actor's
// username.
var notificationTemplates = map[string]struct {
	en string
	ar string
}{
	models.NotificationLike:     {"%s liked your post", "أعجب %s بمنشورك"},
	models.NotificationComment:  {"%s commented on your post", "علق %s على منشورك"},
	models.NotificationShare:    {"%s shared your post", "شارك %s منشورك"},
	models.NotificationReaction: {"%s reacted to your post", "تفاعل %s مع منشورك"},
}

// NotifyInteraction records a notification for an interaction and pushes it
// to the recipient's live channel. Self-interactions are silently skipped.
// A missing actor produces a generic name instead of an error; delivery
// problems are logged, never propagated, so the interaction that triggered
// the notification still succeeds.
func (s *NotificationService) NotifyInteraction(ctx context.Context, typ string, fromUserID, toUserID, postID uint) {
	if fromUserID == toUserID {
		return
	}
	tmpl, ok := notificationTemplates[typ]
	if !ok {
		middleware.Logger.WarnContext(ctx, "unknown notification type", "type", typ)
		return
	}

	actorName := "Someone"
	actorNameAr := "أحد الأشخاص"
	if actor, err := s.userRepo.GetByID(ctx, fromUserID); err == nil && actor != nil {
		actorName = actor.Username
		actorNameAr = actor.Username
	} else if err != nil {
		middleware.Logger.WarnContext(ctx, "notification actor lookup failed", "user_id", fromUserID, "error", err)
	}

	n := &models.Notification{
		Type:       typ,
		FromUserID: fromUserID,
		ToUserID:   toUserID,
		PostID:     postID,
		Message:    fmt.Sprintf(tmpl.en, actorName),
		MessageAr:  fmt.Sprintf(tmpl.ar, actorNameAr),
	}
	if err := s.notificationRepo.Create(ctx, n); err != nil {
		middleware.Logger.ErrorContext(ctx, "failed to store notification", "type", typ, "to_user_id", toUserID, "error", err)
		return
	}
	observability.NotificationsCreated.WithLabelValues(typ).Inc()

	if s.notifier == nil {
		return
	}
	payload, err := json.Marshal(n)
	if err != nil {
		middleware.Logger.ErrorContext(ctx, "failed to marshal notification", "error", err)
		return
	}
	if err := s.notifier.PublishUser(ctx, toUserID, string(payload)); err != nil {
		middleware.Logger.WarnContext(ctx, "failed to publish notification", "to_user_id", toUserID, "error", err)
	}
}

// ListNotifications returns a user's notifications, newest first.
func (s *NotificationService) ListNotifications(ctx context.Context, userID uint, unreadOnly bool, limit, offset int) ([]models.Notification, error) {
	return s.notificationRepo.ListByUser(ctx, userID, unreadOnly, limit, offset)
}

// CountUnread returns the number of unread notifications for a user.
func (s *NotificationService) CountUnread(ctx context.Context, userID uint) (int64, error) {
	return s.notificationRepo.CountUnread(ctx, userID)
}

// MarkRead flags one of the user's notifications as read.
func (s *NotificationService) MarkRead(ctx context.Context, userID, id uint) error {
	return s.notificationRepo.MarkRead(ctx, userID, id)
}

// MarkAllRead flags all of the user's notifications as read.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID uint) error {
	return s.notificationRepo.MarkAllRead(ctx, userID)
}
