package repository

import (
	"context"
	"errors"

	"nabta/internal/cache"
	"nabta/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CommentRepository defines persistence operations for comments and their
// likes.
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	ListByPost(ctx context.Context, postID uint, currentUserID uint) ([]*models.Comment, error)
	Update(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, id uint) (removed int, err error)
	ToggleLike(ctx context.Context, userID, commentID uint) (liked bool, likes int, err error)
	Count(ctx context.Context) (int64, error)
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository.
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

// Create inserts the comment and bumps the post's comment counter in the
// same transaction. A dangling ParentCommentID is stored as-is; the tree
// builder treats orphaned replies as top level.
func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var exists int64
		if err := tx.Model(&models.Post{}).Where("id = ?", comment.PostID).Count(&exists).Error; err != nil {
			return err
		}
		if exists == 0 {
			return models.NewNotFoundError("Post", comment.PostID)
		}
		if err := tx.Create(comment).Error; err != nil {
			return err
		}
		return tx.Model(&models.Post{}).
			Where("id = ?", comment.PostID).
			Update("comments", gorm.Expr("comments + 1")).Error
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return appErr
		}
		return models.NewInternalError(err)
	}

	cache.Invalidate(ctx, cache.PostKey(comment.PostID))
	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).Preload("User").First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Comment", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &comment, nil
}

// ListByPost returns the post's comments newest first, assembled into reply
// trees. The build is a single pass over a flat query; a reply whose parent
// is missing or whose parent chain loops is promoted to top level rather
// than dropped.
func (r *commentRepository) ListByPost(ctx context.Context, postID uint, currentUserID uint) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("post_id = ?", postID).
		Order("created_at DESC, id DESC").
		Find(&comments).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	if currentUserID != 0 && len(comments) > 0 {
		ids := make([]uint, len(comments))
		for i, c := range comments {
			ids[i] = c.ID
		}
		var likedIDs []uint
		if err := r.db.WithContext(ctx).
			Model(&models.CommentLike{}).
			Where("user_id = ? AND comment_id IN ?", currentUserID, ids).
			Pluck("comment_id", &likedIDs).Error; err != nil {
			return nil, models.NewInternalError(err)
		}
		liked := make(map[uint]bool, len(likedIDs))
		for _, id := range likedIDs {
			liked[id] = true
		}
		for _, c := range comments {
			c.Liked = liked[c.ID]
		}
	}

	return buildCommentTree(comments), nil
}

// buildCommentTree nests replies under their parents. A comment is attached
// only when its parent chain terminates at a root; replies whose parent is
// missing, or whose chain loops back on itself, are promoted to top level so
// a corrupt chain can never make comments vanish from the listing.
func buildCommentTree(comments []*models.Comment) []*models.Comment {
	byID := make(map[uint]*models.Comment, len(comments))
	for _, c := range comments {
		c.Replies = []*models.Comment{}
		byID[c.ID] = c
	}

	roots := make([]*models.Comment, 0, len(comments))
	for _, c := range comments {
		if c.ParentCommentID == nil {
			roots = append(roots, c)
			continue
		}
		parent, ok := byID[*c.ParentCommentID]
		if !ok {
			roots = append(roots, c)
			continue
		}
		if !chainReachesRoot(byID, c) {
			roots = append(roots, c)
			continue
		}
		parent.Replies = append(parent.Replies, c)
	}
	return roots
}

// chainReachesRoot walks the parent chain upward with a visited set and
// reports whether it ends at a parentless or dangling-parent comment rather
// than revisiting a node.
func chainReachesRoot(byID map[uint]*models.Comment, c *models.Comment) bool {
	seen := map[uint]struct{}{c.ID: {}}
	cur := c
	for cur.ParentCommentID != nil {
		next, ok := byID[*cur.ParentCommentID]
		if !ok {
			return true
		}
		if _, looped := seen[next.ID]; looped {
			return false
		}
		seen[next.ID] = struct{}{}
		cur = next
	}
	return true
}

func (r *commentRepository) Update(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Save(comment).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// Delete removes a comment and its entire reply subtree, returning how many
// comments were removed. The subtree is collected with an iterative
// worklist, so depth is unbounded and a cyclic parent chain terminates: an
// ID already seen is never enqueued twice. The post's comment counter drops
// by the full removed count in the same transaction.
func (r *commentRepository) Delete(ctx context.Context, id uint) (int, error) {
	var removed int
	var postID uint

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var root models.Comment
		if err := tx.First(&root, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Comment", id)
			}
			return err
		}
		postID = root.PostID

		seen := map[uint]struct{}{id: {}}
		subtree := []uint{id}
		frontier := []uint{id}
		for len(frontier) > 0 {
			var children []uint
			if err := tx.Model(&models.Comment{}).
				Where("parent_comment_id IN ?", frontier).
				Pluck("id", &children).Error; err != nil {
				return err
			}
			frontier = frontier[:0]
			for _, child := range children {
				if _, ok := seen[child]; ok {
					continue
				}
				seen[child] = struct{}{}
				subtree = append(subtree, child)
				frontier = append(frontier, child)
			}
		}

		if err := tx.Unscoped().Where("comment_id IN ?", subtree).Delete(&models.CommentLike{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("id IN ?", subtree).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		removed = len(subtree)

		return tx.Model(&models.Post{}).
			Where("id = ?", postID).
			Update("comments", gorm.Expr("CASE WHEN comments > ? THEN comments - ? ELSE 0 END", removed, removed)).Error
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return 0, appErr
		}
		return 0, models.NewInternalError(err)
	}

	cache.Invalidate(ctx, cache.PostKey(postID))
	return removed, nil
}

// ToggleLike flips the caller's like on a comment, mirroring the post like
// toggle: unique index for idempotence, counter in the same transaction.
func (r *commentRepository) ToggleLike(ctx context.Context, userID, commentID uint) (bool, int, error) {
	var liked bool
	var likes int

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var exists int64
		if err := tx.Model(&models.Comment{}).Where("id = ?", commentID).Count(&exists).Error; err != nil {
			return err
		}
		if exists == 0 {
			return models.NewNotFoundError("Comment", commentID)
		}

		like := models.CommentLike{UserID: userID, CommentID: commentID}
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&like)
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected == 1 {
			liked = true
			return tx.Model(&models.Comment{}).
				Where("id = ?", commentID).
				Update("likes", gorm.Expr("likes + 1")).Error
		}

		del := tx.Where("user_id = ? AND comment_id = ?", userID, commentID).Delete(&models.CommentLike{})
		if del.Error != nil {
			return del.Error
		}
		if del.RowsAffected == 0 {
			return nil
		}
		return tx.Model(&models.Comment{}).
			Where("id = ?", commentID).
			Update("likes", gorm.Expr("CASE WHEN likes > 0 THEN likes - 1 ELSE 0 END")).Error
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return false, 0, appErr
		}
		return false, 0, models.NewInternalError(err)
	}

	if err := r.db.WithContext(ctx).Model(&models.Comment{}).
		Where("id = ?", commentID).
		Pluck("likes", &likes).Error; err != nil {
		return liked, 0, models.NewInternalError(err)
	}
	return liked, likes, nil
}

func (r *commentRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.Comment{}).Count(&n).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return n, nil
}
