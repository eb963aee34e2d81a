package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nabta/internal/models"
)

func TestNotifyInteractionBuildsBilingualMessages(t *testing.T) {
	var created *models.Notification
	notifRepo := noopNotificationRepo()
	notifRepo.createFn = func(_ context.Context, n *models.Notification) error {
		created = n
		return nil
	}
	users := noopUserRepo()
	users.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return &models.User{ID: id, Username: "layla"}, nil
	}
	svc := NewNotificationService(notifRepo, users, nil)

	svc.NotifyInteraction(context.Background(), models.NotificationLike, 1, 2, 9)

	require.NotNil(t, created)
	assert.Equal(t, "layla liked your post", created.Message)
	assert.Equal(t, "أعجب layla بمنشورك", created.MessageAr)
	assert.Equal(t, uint(2), created.ToUserID)
	assert.Equal(t, uint(9), created.PostID)
}

func TestNotifyInteractionSkipsSelf(t *testing.T) {
	notifRepo := noopNotificationRepo()
	notifRepo.createFn = func(_ context.Context, _ *models.Notification) error {
		t.Fatal("self-interaction must not create a notification")
		return nil
	}
	svc := NewNotificationService(notifRepo, noopUserRepo(), nil)

	svc.NotifyInteraction(context.Background(), models.NotificationLike, 3, 3, 9)
}

func TestNotifyInteractionFallsBackOnMissingActor(t *testing.T) {
	var created *models.Notification
	notifRepo := noopNotificationRepo()
	notifRepo.createFn = func(_ context.Context, n *models.Notification) error {
		created = n
		return nil
	}
	users := noopUserRepo()
	users.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return nil, models.NewNotFoundError("User", id)
	}
	svc := NewNotificationService(notifRepo, users, nil)

	svc.NotifyInteraction(context.Background(), models.NotificationShare, 1, 2, 9)

	require.NotNil(t, created)
	assert.Equal(t, "Someone shared your post", created.Message)
	assert.Equal(t, "شارك أحد الأشخاص منشورك", created.MessageAr)
}

func TestNotifyInteractionSwallowsStoreFailure(t *testing.T) {
	notifRepo := noopNotificationRepo()
	notifRepo.createFn = func(_ context.Context, _ *models.Notification) error {
		return errors.New("db down")
	}
	svc := NewNotificationService(notifRepo, noopUserRepo(), nil)

	// must not panic or propagate
	svc.NotifyInteraction(context.Background(), models.NotificationComment, 1, 2, 9)
}

func TestNotifyInteractionIgnoresUnknownType(t *testing.T) {
	notifRepo := noopNotificationRepo()
	notifRepo.createFn = func(_ context.Context, _ *models.Notification) error {
		t.Fatal("unknown type must not create a notification")
		return nil
	}
	svc := NewNotificationService(notifRepo, noopUserRepo(), nil)

	svc.NotifyInteraction(context.Background(), "poke", 1, 2, 9)
}
