package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nabta/internal/models"
)

func TestCreateCommentValidation(t *testing.T) {
	svc := NewCommentService(noopCommentRepo(), noopPostRepo(), nil, adminNever)

	_, err := svc.CreateComment(context.Background(), CreateCommentInput{UserID: 1, PostID: 2, Content: " "})
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func TestCreateCommentNotifiesPostAuthor(t *testing.T) {
	var toUser uint
	notifRepo := noopNotificationRepo()
	notifRepo.createFn = func(_ context.Context, n *models.Notification) error {
		toUser = n.ToUserID
		assert.Equal(t, models.NotificationComment, n.Type)
		return nil
	}
	notifSvc := NewNotificationService(notifRepo, noopUserRepo(), nil)

	posts := noopPostRepo()
	posts.getByIDFn = func(_ context.Context, id, _ uint) (*models.Post, error) {
		return &models.Post{ID: id, UserID: 42}, nil
	}
	svc := NewCommentService(noopCommentRepo(), posts, notifSvc, adminNever)

	_, err := svc.CreateComment(context.Background(), CreateCommentInput{UserID: 1, PostID: 2, Content: "nice"})
	require.NoError(t, err)
	assert.Equal(t, uint(42), toUser)
}

func TestCreateCommentKeepsParentID(t *testing.T) {
	var gotParent *uint
	comments := noopCommentRepo()
	comments.createFn = func(_ context.Context, c *models.Comment) error {
		gotParent = c.ParentCommentID
		return nil
	}
	svc := NewCommentService(comments, noopPostRepo(), nil, adminNever)

	_, err := svc.CreateComment(context.Background(), CreateCommentInput{
		UserID: 1, PostID: 2, Content: "reply", ParentCommentID: uintPtr(9),
	})
	require.NoError(t, err)
	require.NotNil(t, gotParent)
	assert.Equal(t, uint(9), *gotParent)
}

func TestUpdateCommentOwnerOnly(t *testing.T) {
	comments := noopCommentRepo()
	comments.getByIDFn = func(_ context.Context, id uint) (*models.Comment, error) {
		return &models.Comment{ID: id, UserID: 99, Content: "original"}, nil
	}
	svc := NewCommentService(comments, noopPostRepo(), nil, adminNever)

	_, err := svc.UpdateComment(context.Background(), UpdateCommentInput{UserID: 1, CommentID: 5, Content: "edited"})
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "FORBIDDEN", appErr.Code)
}

func TestDeleteCommentPermissions(t *testing.T) {
	comments := noopCommentRepo()
	comments.getByIDFn = func(_ context.Context, id uint) (*models.Comment, error) {
		return &models.Comment{ID: id, UserID: 7, PostID: 2}, nil
	}
	comments.deleteFn = func(_ context.Context, _ uint) (int, error) { return 3, nil }

	posts := noopPostRepo()
	posts.getByIDFn = func(_ context.Context, id, _ uint) (*models.Post, error) {
		return &models.Post{ID: id, UserID: 42}, nil
	}

	svc := NewCommentService(comments, posts, nil, adminNever)

	// the comment's author
	removed, err := svc.DeleteComment(context.Background(), DeleteCommentInput{UserID: 7, CommentID: 5})
	require.NoError(t, err)
	assert.Equal(t, 3, removed)

	// the post's author moderating their own post
	_, err = svc.DeleteComment(context.Background(), DeleteCommentInput{UserID: 42, CommentID: 5})
	require.NoError(t, err)

	// a stranger
	_, err = svc.DeleteComment(context.Background(), DeleteCommentInput{UserID: 1, CommentID: 5})
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "FORBIDDEN", appErr.Code)

	// a global admin
	svc = NewCommentService(comments, posts, nil, adminAlways)
	_, err = svc.DeleteComment(context.Background(), DeleteCommentInput{UserID: 1, CommentID: 5})
	require.NoError(t, err)
}

func TestListCommentsChecksPost(t *testing.T) {
	posts := noopPostRepo()
	posts.getByIDFn = func(_ context.Context, id, _ uint) (*models.Post, error) {
		return nil, models.NewNotFoundError("Post", id)
	}
	svc := NewCommentService(noopCommentRepo(), posts, nil, adminNever)

	_, err := svc.ListComments(context.Background(), 404, 1)
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}
