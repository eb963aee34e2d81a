package service

import (
	"context"
	"strings"

	"nabta/internal/models"
	"nabta/internal/observability"
	"nabta/internal/repository"
)

// CommentService handles comments, nested replies, and comment likes.
type CommentService struct {
	commentRepo   repository.CommentRepository
	postRepo      repository.PostRepository
	notifications *NotificationService
	isAdmin       func(ctx context.Context, userID uint) (bool, error)
}

type CreateCommentInput struct {
	UserID          uint
	PostID          uint
	Content         string
	ParentCommentID *uint
}

type UpdateCommentInput struct {
	UserID    uint
	CommentID uint
	Content   string
}

type DeleteCommentInput struct {
	UserID    uint
	CommentID uint
}

// NewCommentService creates a new CommentService.
func NewCommentService(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	notificationService *NotificationService,
	isAdmin func(ctx context.Context, userID uint) (bool, error),
) *CommentService {
	return &CommentService{
		commentRepo:   commentRepo,
		postRepo:      postRepo,
		notifications: notificationService,
		isAdmin:       isAdmin,
	}
}

// CreateComment adds a comment or reply and notifies the post's author.
// The parent ID is stored without existence verification; the tree builder
// surfaces replies to missing parents at top level.
func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	const maxContentLen = 5000

	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(content) > maxContentLen {
		return nil, models.NewValidationError("Content too long (max 5000 characters)")
	}

	comment := &models.Comment{
		PostID:          in.PostID,
		UserID:          in.UserID,
		Content:         content,
		ParentCommentID: in.ParentCommentID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		observability.InteractionsTotal.WithLabelValues("comment", "error").Inc()
		return nil, err
	}
	observability.InteractionsTotal.WithLabelValues("comment", "ok").Inc()

	if s.notifications != nil {
		if post, err := s.postRepo.GetByID(ctx, in.PostID, 0); err == nil {
			s.notifications.NotifyInteraction(ctx, models.NotificationComment, in.UserID, post.UserID, in.PostID)
		}
	}

	return s.commentRepo.GetByID(ctx, comment.ID)
}

// ListComments returns the reply trees for a post.
func (s *CommentService) ListComments(ctx context.Context, postID uint, currentUserID uint) ([]*models.Comment, error) {
	if _, err := s.postRepo.GetByID(ctx, postID, 0); err != nil {
		return nil, err
	}
	return s.commentRepo.ListByPost(ctx, postID, currentUserID)
}

func (s *CommentService) UpdateComment(ctx context.Context, in UpdateCommentInput) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		return nil, err
	}
	if comment.UserID != in.UserID {
		return nil, models.NewForbiddenError("You can only update your own comments")
	}

	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	comment.Content = content

	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// DeleteComment removes a comment and its whole reply subtree. Allowed for
// the comment's author, the post's author, and admins.
func (s *CommentService) DeleteComment(ctx context.Context, in DeleteCommentInput) (int, error) {
	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		return 0, err
	}

	if comment.UserID != in.UserID {
		allowed := false
		if post, perr := s.postRepo.GetByID(ctx, comment.PostID, 0); perr == nil && post.UserID == in.UserID {
			allowed = true
		}
		if !allowed {
			admin, aerr := s.isAdmin(ctx, in.UserID)
			if aerr != nil {
				return 0, aerr
			}
			allowed = admin
		}
		if !allowed {
			return 0, models.NewForbiddenError("You can only delete your own comments")
		}
	}

	return s.commentRepo.Delete(ctx, in.CommentID)
}

// ToggleCommentLike flips the caller's like on a comment.
func (s *CommentService) ToggleCommentLike(ctx context.Context, userID, commentID uint) (liked bool, likes int, err error) {
	liked, likes, err = s.commentRepo.ToggleLike(ctx, userID, commentID)
	if err != nil {
		observability.InteractionsTotal.WithLabelValues("comment_like", "error").Inc()
		return false, 0, err
	}
	observability.InteractionsTotal.WithLabelValues("comment_like", "ok").Inc()
	return liked, likes, nil
}
