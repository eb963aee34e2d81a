package repository

import (
	"context"
	"errors"

	"nabta/internal/cache"
	"nabta/internal/models"

	"gorm.io/gorm"
)

// ReactionResult describes the outcome of a React call.
type ReactionResult struct {
	// Kind is the caller's reaction after the call, empty if it was removed.
	Kind   string                `json:"kind"`
	Counts models.ReactionCounts `json:"counts"`

	// Created is true only when the call placed a brand-new reaction, not
	// when it switched or removed an existing one.
	Created bool `json:"-"`
}

// ReactionRepository defines persistence operations for post reactions.
type ReactionRepository interface {
	React(ctx context.Context, userID, postID uint, kind string) (*ReactionResult, error)
	GetForUser(ctx context.Context, userID, postID uint) (*models.Reaction, error)
	ListByPost(ctx context.Context, postID uint, limit, offset int) ([]models.Reaction, error)
	CountByKind(ctx context.Context, postID uint) (models.ReactionCounts, error)
}

type reactionRepository struct {
	db *gorm.DB
}

// NewReactionRepository creates a new ReactionRepository.
func NewReactionRepository(db *gorm.DB) ReactionRepository {
	return &reactionRepository{db: db}
}

// reactionColumn maps a reaction kind to its counter column on posts.
func reactionColumn(kind string) string {
	return "reaction_" + kind
}

// React applies one of three outcomes inside a single transaction: a user
// with no reaction gains one, a user repeating their current kind loses it,
// and a user with a different kind is switched. The per-kind counters on
// the post move with the row, so their sum always equals the row count and
// a user can never hold two kinds at once.
func (r *reactionRepository) React(ctx context.Context, userID, postID uint, kind string) (*ReactionResult, error) {
	if !models.ValidReactionKind(kind) {
		return nil, models.NewValidationError("invalid reaction kind: " + kind)
	}

	result := &ReactionResult{}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var exists int64
		if err := tx.Model(&models.Post{}).Where("id = ?", postID).Count(&exists).Error; err != nil {
			return err
		}
		if exists == 0 {
			return models.NewNotFoundError("Post", postID)
		}

		var current models.Reaction
		err := tx.Where("post_id = ? AND user_id = ?", postID, userID).First(&current).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			reaction := models.Reaction{PostID: postID, UserID: userID, Kind: kind}
			if err := tx.Create(&reaction).Error; err != nil {
				if isUniqueConstraintError(err) {
					// Lost a race with another request from the same
					// user; treat the call as a no-op.
					result.Kind = kind
					return nil
				}
				return err
			}
			result.Kind = kind
			result.Created = true
			return tx.Model(&models.Post{}).
				Where("id = ?", postID).
				Update(reactionColumn(kind), gorm.Expr(reactionColumn(kind)+" + 1")).Error

		case err != nil:
			return err

		case current.Kind == kind:
			if err := tx.Delete(&current).Error; err != nil {
				return err
			}
			result.Kind = ""
			col := reactionColumn(kind)
			return tx.Model(&models.Post{}).
				Where("id = ?", postID).
				Update(col, gorm.Expr("CASE WHEN "+col+" > 0 THEN "+col+" - 1 ELSE 0 END")).Error

		default:
			oldCol := reactionColumn(current.Kind)
			newCol := reactionColumn(kind)
			if err := tx.Model(&current).Update("kind", kind).Error; err != nil {
				return err
			}
			result.Kind = kind
			return tx.Model(&models.Post{}).
				Where("id = ?", postID).
				Updates(map[string]interface{}{
					oldCol: gorm.Expr("CASE WHEN " + oldCol + " > 0 THEN " + oldCol + " - 1 ELSE 0 END"),
					newCol: gorm.Expr(newCol + " + 1"),
				}).Error
		}
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, models.NewInternalError(err)
	}

	var post models.Post
	if err := r.db.WithContext(ctx).Select(
		"reaction_like", "reaction_laugh", "reaction_wow",
		"reaction_sad", "reaction_angry", "reaction_support",
	).First(&post, postID).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	result.Counts = post.Reactions

	cache.Invalidate(ctx, cache.PostKey(postID))
	return result, nil
}

func (r *reactionRepository) GetForUser(ctx context.Context, userID, postID uint) (*models.Reaction, error) {
	var reaction models.Reaction
	err := r.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		First(&reaction).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return &reaction, nil
}

func (r *reactionRepository) ListByPost(ctx context.Context, postID uint, limit, offset int) ([]models.Reaction, error) {
	var reactions []models.Reaction
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("post_id = ?", postID).
		Order("created_at DESC").
		Limit(clampLimit(limit)).
		Offset(offset).
		Find(&reactions).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return reactions, nil
}

// CountByKind recounts reactions from the rows themselves, bypassing the
// denormalized columns. The reconciliation job compares this against the
// stored counters.
func (r *reactionRepository) CountByKind(ctx context.Context, postID uint) (models.ReactionCounts, error) {
	type kindCount struct {
		Kind  string
		Count int
	}
	var rows []kindCount
	err := r.db.WithContext(ctx).
		Model(&models.Reaction{}).
		Select("kind, COUNT(*) as count").
		Where("post_id = ?", postID).
		Group("kind").
		Find(&rows).Error
	if err != nil {
		return models.ReactionCounts{}, models.NewInternalError(err)
	}

	var counts models.ReactionCounts
	for _, row := range rows {
		switch row.Kind {
		case models.ReactionLike:
			counts.Like = row.Count
		case models.ReactionLaugh:
			counts.Laugh = row.Count
		case models.ReactionWow:
			counts.Wow = row.Count
		case models.ReactionSad:
			counts.Sad = row.Count
		case models.ReactionAngry:
			counts.Angry = row.Count
		case models.ReactionSupport:
			counts.Support = row.Count
		}
	}
	return counts, nil
}
