package repository

import (
	"context"
	"errors"

	"nabta/internal/cache"
	"nabta/internal/models"

	"gorm.io/gorm"
)

// ShareRepository defines persistence operations for post shares.
type ShareRepository interface {
	Create(ctx context.Context, share *models.Share) (shares int, err error)
	ListByPost(ctx context.Context, postID uint, limit, offset int) ([]models.Share, error)
	Count(ctx context.Context) (int64, error)
}

type shareRepository struct {
	db *gorm.DB
}

// NewShareRepository creates a new ShareRepository.
func NewShareRepository(db *gorm.DB) ShareRepository {
	return &shareRepository{db: db}
}

// Create records a share and bumps the post's share counter in the same
// transaction. Shares are never deduplicated: every call adds a row.
func (r *shareRepository) Create(ctx context.Context, share *models.Share) (int, error) {
	if !models.ValidShareKind(share.Kind) {
		return 0, models.NewValidationError("invalid share kind: " + share.Kind)
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var exists int64
		if err := tx.Model(&models.Post{}).Where("id = ?", share.PostID).Count(&exists).Error; err != nil {
			return err
		}
		if exists == 0 {
			return models.NewNotFoundError("Post", share.PostID)
		}
		if err := tx.Create(share).Error; err != nil {
			return err
		}
		return tx.Model(&models.Post{}).
			Where("id = ?", share.PostID).
			Update("shares", gorm.Expr("shares + 1")).Error
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return 0, appErr
		}
		return 0, models.NewInternalError(err)
	}

	var shares int
	if err := r.db.WithContext(ctx).Model(&models.Post{}).
		Where("id = ?", share.PostID).
		Pluck("shares", &shares).Error; err != nil {
		return 0, models.NewInternalError(err)
	}

	cache.Invalidate(ctx, cache.PostKey(share.PostID))
	return shares, nil
}

func (r *shareRepository) ListByPost(ctx context.Context, postID uint, limit, offset int) ([]models.Share, error) {
	var shares []models.Share
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("post_id = ?", postID).
		Order("created_at DESC").
		Limit(clampLimit(limit)).
		Offset(offset).
		Find(&shares).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return shares, nil
}

func (r *shareRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.Share{}).Count(&n).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return n, nil
}
