package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"nabta/internal/cache"
	"nabta/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostRepository defines the interface for post data operations.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Post, error)
	GetByUserID(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Post, error)
	GetByCircleID(ctx context.Context, circleID uint, limit, offset int, currentUserID uint) ([]*models.Post, error)
	List(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Post, error)
	Search(ctx context.Context, query string, limit, offset int, currentUserID uint) ([]*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
	ToggleLike(ctx context.Context, userID, postID uint) (liked bool, likes int, err error)
	Count(ctx context.Context) (int64, error)
	TopByInteractions(ctx context.Context, limit int) ([]*models.Post, error)
	CountPerDaySince(ctx context.Context, since time.Time) ([]DailyCount, error)
}

// DailyCount is a per-day post total for the admin dashboard chart.
type DailyCount struct {
	Day   string `json:"day"`
	Count int64  `json:"count"`
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// Create inserts the post and enqueues the cached-count bookkeeping in the
// same transaction. The counters on the author and circle move later, when
// the outbox worker runs; the post itself and its own counters are
// consistent immediately.
func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(post).Error; err != nil {
			return err
		}
		if err := enqueueTask(tx, models.TaskIncrementUserPostCount, UserPostCountPayload{UserID: post.UserID}); err != nil {
			return err
		}
		if post.CircleID != nil {
			return enqueueTask(tx, models.TaskAdjustCirclePostCount, CirclePostCountPayload{CircleID: *post.CircleID, Delta: 1})
		}
		return nil
	})
	if err != nil {
		return models.NewInternalError(err)
	}

	cache.InvalidatePostsList(ctx)
	if post.CircleID != nil {
		cache.InvalidateCircleFeed(ctx, *post.CircleID)
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Post, error) {
	var post models.Post

	fetch := func() error {
		if err := r.db.WithContext(ctx).Preload("User").First(&post, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Post", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	}

	var err error
	if currentUserID == 0 {
		err = cache.Aside(ctx, cache.PostKey(id), &post, cache.PostTTL, fetch)
	} else {
		err = fetch()
	}
	if err != nil {
		return nil, err
	}

	if err := r.enrichLikes(ctx, []*models.Post{&post}, currentUserID); err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) GetByUserID(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(clampLimit(limit)).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := r.enrichLikes(ctx, posts, currentUserID); err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) GetByCircleID(ctx context.Context, circleID uint, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("circle_id = ?", circleID).
		Order("created_at DESC").
		Limit(clampLimit(limit)).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := r.enrichLikes(ctx, posts, currentUserID); err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) List(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.db.WithContext(ctx).
		Preload("User").
		Order("created_at DESC").
		Limit(clampLimit(limit)).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := r.enrichLikes(ctx, posts, currentUserID); err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) Search(ctx context.Context, query string, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	var posts []*models.Post
	like := "%" + strings.ToLower(query) + "%"
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("LOWER(content) LIKE ?", like).
		Order("created_at DESC").
		Limit(clampLimit(limit)).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := r.enrichLikes(ctx, posts, currentUserID); err != nil {
		return nil, err
	}
	return posts, nil
}

// enrichLikes fills the computed LikedBy and Liked fields from the likes
// table in one batched query.
func (r *postRepository) enrichLikes(ctx context.Context, posts []*models.Post, currentUserID uint) error {
	if len(posts) == 0 {
		return nil
	}
	ids := make([]uint, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
		p.LikedBy = []uint{}
	}

	var likes []models.Like
	if err := r.db.WithContext(ctx).
		Where("post_id IN ?", ids).
		Order("created_at").
		Find(&likes).Error; err != nil {
		return models.NewInternalError(err)
	}

	byPost := make(map[uint]*models.Post, len(posts))
	for _, p := range posts {
		byPost[p.ID] = p
	}
	for _, l := range likes {
		p := byPost[l.PostID]
		if p == nil {
			continue
		}
		p.LikedBy = append(p.LikedBy, l.UserID)
		if currentUserID != 0 && l.UserID == currentUserID {
			p.Liked = true
		}
	}
	return nil
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Save(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.Invalidate(ctx, cache.PostKey(post.ID))
	cache.InvalidatePostsList(ctx)
	return nil
}

// Delete removes the post and every dependent row in one transaction:
// likes, reactions, shares, comments, comment likes and notifications
// referencing the post all go with it.
// The author's cached post count and the circle's post tally are adjusted
// through the outbox.
func (r *postRepository) Delete(ctx context.Context, id uint) error {
	var post models.Post
	if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Post", id)
		}
		return models.NewInternalError(err)
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var commentIDs []uint
		if err := tx.Model(&models.Comment{}).
			Unscoped().
			Where("post_id = ?", id).
			Pluck("id", &commentIDs).Error; err != nil {
			return err
		}
		if len(commentIDs) > 0 {
			if err := tx.Unscoped().Where("comment_id IN ?", commentIDs).Delete(&models.CommentLike{}).Error; err != nil {
				return err
			}
			if err := tx.Unscoped().Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Unscoped().Where("post_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("post_id = ?", id).Delete(&models.Reaction{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("post_id = ?", id).Delete(&models.Share{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.Notification{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Post{}, id).Error; err != nil {
			return err
		}
		if err := enqueueTask(tx, models.TaskDecrementUserPostCount, UserPostCountPayload{UserID: post.UserID}); err != nil {
			return err
		}
		if post.CircleID != nil {
			return enqueueTask(tx, models.TaskAdjustCirclePostCount, CirclePostCountPayload{CircleID: *post.CircleID, Delta: -1})
		}
		return nil
	})
	if err != nil {
		return models.NewInternalError(err)
	}

	cache.Invalidate(ctx, cache.PostKey(id))
	cache.InvalidatePostsList(ctx)
	if post.CircleID != nil {
		cache.InvalidateCircleFeed(ctx, *post.CircleID)
	}
	return nil
}

// ToggleLike flips the caller's like on a post. The like row and the
// denormalized counter move in one transaction; the unique index on
// (user_id, post_id) makes a concurrent double-like insert exactly one row,
// so the counter moves exactly once.
func (r *postRepository) ToggleLike(ctx context.Context, userID, postID uint) (bool, int, error) {
	var liked bool
	var likes int

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.Select("id", "likes").First(&post, postID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Post", postID)
			}
			return err
		}

		like := models.Like{UserID: userID, PostID: postID}
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&like)
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected == 1 {
			liked = true
			return tx.Model(&models.Post{}).
				Where("id = ?", postID).
				Update("likes", gorm.Expr("likes + 1")).Error
		}

		// Row already existed: this request is an unlike.
		del := tx.Where("user_id = ? AND post_id = ?", userID, postID).Delete(&models.Like{})
		if del.Error != nil {
			return del.Error
		}
		if del.RowsAffected == 0 {
			// Raced with another unlike; nothing to decrement.
			return nil
		}
		return tx.Model(&models.Post{}).
			Where("id = ?", postID).
			Update("likes", gorm.Expr("CASE WHEN likes > 0 THEN likes - 1 ELSE 0 END")).Error
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return false, 0, appErr
		}
		return false, 0, models.NewInternalError(err)
	}

	if err := r.db.WithContext(ctx).Model(&models.Post{}).
		Where("id = ?", postID).
		Pluck("likes", &likes).Error; err != nil {
		return liked, 0, models.NewInternalError(err)
	}

	cache.Invalidate(ctx, cache.PostKey(postID))
	return liked, likes, nil
}

func (r *postRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.Post{}).Count(&n).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return n, nil
}

// TopByInteractions returns the posts with the highest combined counter
// totals, for the admin dashboard.
func (r *postRepository) TopByInteractions(ctx context.Context, limit int) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.db.WithContext(ctx).
		Preload("User").
		Order("(likes + comments + shares + reaction_like + reaction_laugh + reaction_wow + reaction_sad + reaction_angry + reaction_support) DESC").
		Limit(clampLimit(limit)).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

// CountPerDaySince buckets posts by calendar day from the cutoff onward.
// DATE() works on both sqlite and postgres; days without posts are absent.
func (r *postRepository) CountPerDaySince(ctx context.Context, since time.Time) ([]DailyCount, error) {
	var counts []DailyCount
	err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Select("DATE(created_at) AS day, COUNT(*) AS count").
		Where("created_at >= ?", since).
		Group("DATE(created_at)").
		Order("day").
		Scan(&counts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return counts, nil
}
