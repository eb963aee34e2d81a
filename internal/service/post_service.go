package service

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"

	"nabta/internal/middleware"
	"nabta/internal/models"
	"nabta/internal/notifications"
	"nabta/internal/observability"
	"nabta/internal/repository"
)

// PostService handles posts and every interaction on them: likes,
// reactions, and shares.
type PostService struct {
	postRepo      repository.PostRepository
	reactionRepo  repository.ReactionRepository
	shareRepo     repository.ShareRepository
	circleRepo    repository.CircleRepository
	notifications *NotificationService
	notifier      *notifications.Notifier
	isAdmin       func(ctx context.Context, userID uint) (bool, error)
}

type CreatePostInput struct {
	UserID    uint
	Content   string
	MediaURL  string
	MediaType string
	CircleID  *uint
}

type ListPostsInput struct {
	Limit         int
	Offset        int
	CurrentUserID uint
	CircleID      *uint
}

type UpdatePostInput struct {
	UserID  uint
	PostID  uint
	Content string
}

type DeletePostInput struct {
	UserID uint
	PostID uint
}

// NewPostService creates a new PostService.
func NewPostService(
	postRepo repository.PostRepository,
	reactionRepo repository.ReactionRepository,
	shareRepo repository.ShareRepository,
	circleRepo repository.CircleRepository,
	notificationService *NotificationService,
	notifier *notifications.Notifier,
	isAdmin func(ctx context.Context, userID uint) (bool, error),
) *PostService {
	return &PostService{
		postRepo:      postRepo,
		reactionRepo:  reactionRepo,
		shareRepo:     shareRepo,
		circleRepo:    circleRepo,
		notifications: notificationService,
		notifier:      notifier,
		isAdmin:       isAdmin,
	}
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	const maxContentLen = 10000

	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(content) > maxContentLen {
		return nil, models.NewValidationError("Content too long (max 10000 characters)")
	}

	if in.MediaURL != "" {
		if _, err := url.ParseRequestURI(in.MediaURL); err != nil {
			return nil, models.NewValidationError("media_url must be a valid URL")
		}
		switch in.MediaType {
		case models.MediaTypeImage, models.MediaTypeVideo:
			// valid
		default:
			return nil, models.NewValidationError("media_type must be image or video")
		}
	} else if in.MediaType != "" {
		return nil, models.NewValidationError("media_type requires media_url")
	}

	if in.CircleID != nil {
		member, err := s.circleRepo.IsMember(ctx, *in.CircleID, in.UserID)
		if err != nil {
			return nil, err
		}
		if !member {
			return nil, models.NewForbiddenError("You must join the circle before posting to it")
		}
	}

	post := &models.Post{
		UserID:    in.UserID,
		Content:   content,
		MediaURL:  in.MediaURL,
		MediaType: in.MediaType,
		CircleID:  in.CircleID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	return s.postRepo.GetByID(ctx, post.ID, in.UserID)
}

func (s *PostService) GetPost(ctx context.Context, id uint, currentUserID uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id, currentUserID)
}

func (s *PostService) ListPosts(ctx context.Context, in ListPostsInput) ([]*models.Post, error) {
	if in.CircleID != nil {
		return s.postRepo.GetByCircleID(ctx, *in.CircleID, in.Limit, in.Offset, in.CurrentUserID)
	}
	return s.postRepo.List(ctx, in.Limit, in.Offset, in.CurrentUserID)
}

func (s *PostService) GetUserPosts(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	return s.postRepo.GetByUserID(ctx, userID, limit, offset, currentUserID)
}

func (s *PostService) SearchPosts(ctx context.Context, query string, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	if strings.TrimSpace(query) == "" {
		return nil, models.NewValidationError("Search query is required")
	}
	return s.postRepo.Search(ctx, query, limit, offset, currentUserID)
}

func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID, in.UserID)
	if err != nil {
		return nil, err
	}
	if post.UserID != in.UserID {
		return nil, models.NewForbiddenError("You can only update your own posts")
	}

	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	post.Content = content

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostService) DeletePost(ctx context.Context, in DeletePostInput) error {
	post, err := s.postRepo.GetByID(ctx, in.PostID, in.UserID)
	if err != nil {
		return err
	}

	if post.UserID != in.UserID {
		admin, err := s.isAdmin(ctx, in.UserID)
		if err != nil {
			return err
		}
		if !admin {
			return models.NewForbiddenError("You can only delete your own posts")
		}
	}

	return s.postRepo.Delete(ctx, in.PostID)
}

// ToggleLike flips the caller's like on a post. A new like notifies the
// post's author; removal never does.
func (s *PostService) ToggleLike(ctx context.Context, userID, postID uint) (*models.Post, error) {
	liked, _, err := s.postRepo.ToggleLike(ctx, userID, postID)
	if err != nil {
		observability.InteractionsTotal.WithLabelValues("like", "error").Inc()
		return nil, err
	}
	observability.InteractionsTotal.WithLabelValues("like", "ok").Inc()

	post, err := s.postRepo.GetByID(ctx, postID, userID)
	if err != nil {
		return nil, err
	}

	if liked && s.notifications != nil {
		s.notifications.NotifyInteraction(ctx, models.NotificationLike, userID, post.UserID, postID)
	}
	return post, nil
}

// React sets, switches, or removes the caller's reaction and fans the new
// counts out to live viewers of the post. Only a newly placed reaction
// notifies the author; switching kinds or removing stays silent.
func (s *PostService) React(ctx context.Context, userID, postID uint, kind string) (*repository.ReactionResult, error) {
	result, err := s.reactionRepo.React(ctx, userID, postID, kind)
	if err != nil {
		observability.InteractionsTotal.WithLabelValues("reaction", "error").Inc()
		return nil, err
	}
	observability.InteractionsTotal.WithLabelValues("reaction", "ok").Inc()

	if s.notifier != nil {
		if payload, merr := json.Marshal(result.Counts); merr == nil {
			if perr := s.notifier.PublishReactionCounts(ctx, postID, string(payload)); perr != nil {
				middleware.Logger.WarnContext(ctx, "failed to publish reaction counts", "post_id", postID, "error", perr)
			}
		}
	}

	if result.Created && s.notifications != nil {
		if post, gerr := s.postRepo.GetByID(ctx, postID, 0); gerr == nil {
			s.notifications.NotifyInteraction(ctx, models.NotificationReaction, userID, post.UserID, postID)
		}
	}
	return result, nil
}

// SharePost records a share and notifies the post's author. Shares always
// count: the same user sharing twice produces two increments.
func (s *PostService) SharePost(ctx context.Context, userID, postID uint, kind string) (int, error) {
	if kind == "" {
		kind = models.ShareKindDirect
	}
	shares, err := s.shareRepo.Create(ctx, &models.Share{PostID: postID, UserID: userID, Kind: kind})
	if err != nil {
		observability.InteractionsTotal.WithLabelValues("share", "error").Inc()
		return 0, err
	}
	observability.InteractionsTotal.WithLabelValues("share", "ok").Inc()

	if s.notifications != nil {
		if post, gerr := s.postRepo.GetByID(ctx, postID, 0); gerr == nil {
			s.notifications.NotifyInteraction(ctx, models.NotificationShare, userID, post.UserID, postID)
		}
	}
	return shares, nil
}

// ListShares returns who shared a post.
func (s *PostService) ListShares(ctx context.Context, postID uint, limit, offset int) ([]models.Share, error) {
	if _, err := s.postRepo.GetByID(ctx, postID, 0); err != nil {
		return nil, err
	}
	return s.shareRepo.ListByPost(ctx, postID, limit, offset)
}

// ListReactions returns the individual reactions on a post.
func (s *PostService) ListReactions(ctx context.Context, postID uint, limit, offset int) ([]models.Reaction, error) {
	if _, err := s.postRepo.GetByID(ctx, postID, 0); err != nil {
		return nil, err
	}
	return s.reactionRepo.ListByPost(ctx, postID, limit, offset)
}
