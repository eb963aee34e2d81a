package repository

import (
	"context"
	"errors"
	"strings"

	"nabta/internal/cache"
	"nabta/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CircleRepository defines persistence operations for growth circles and
// their memberships.
type CircleRepository interface {
	Create(ctx context.Context, circle *models.Circle, creatorID uint) error
	GetByID(ctx context.Context, id uint) (*models.Circle, error)
	List(ctx context.Context, category string, limit, offset int) ([]*models.Circle, error)
	Search(ctx context.Context, query string, limit, offset int) ([]*models.Circle, error)
	Update(ctx context.Context, circle *models.Circle) error
	Delete(ctx context.Context, id uint) error

	Join(ctx context.Context, circleID, userID uint) (joined bool, err error)
	Leave(ctx context.Context, circleID, userID uint) (left bool, err error)
	IsMember(ctx context.Context, circleID, userID uint) (bool, error)
	IsCircleAdmin(ctx context.Context, circleID, userID uint) (bool, error)
	ListMembers(ctx context.Context, circleID uint, limit, offset int) ([]models.CircleMember, error)

	CountMembers(ctx context.Context, circleID uint) (int64, error)
	MemberCounters(ctx context.Context, ids []uint) (map[uint]int, error)
	CountMembersBatch(ctx context.Context, ids []uint) (map[uint]int64, error)
	SetMemberCount(ctx context.Context, circleID uint, count int) error
	SetMemberCounts(ctx context.Context, corrections []MemberCorrection) error
	AdjustPostCount(ctx context.Context, circleID uint, delta int) error
	ListIDs(ctx context.Context, afterID uint, limit int) ([]uint, error)
	Count(ctx context.Context) (int64, error)
}

type circleRepository struct {
	db *gorm.DB
}

// NewCircleRepository creates a new CircleRepository.
func NewCircleRepository(db *gorm.DB) CircleRepository {
	return &circleRepository{db: db}
}

// Create inserts the circle with its creator as the first member, holding
// the admin role. Counter starts at 1 in the same transaction.
func (r *circleRepository) Create(ctx context.Context, circle *models.Circle, creatorID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if circle.Status == "" {
			circle.Status = models.CircleStatusActive
		}
		circle.Members = 1
		if err := tx.Create(circle).Error; err != nil {
			return err
		}
		member := models.CircleMember{
			CircleID: circle.ID,
			UserID:   creatorID,
			Role:     models.CircleRoleAdmin,
		}
		return tx.Create(&member).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *circleRepository) GetByID(ctx context.Context, id uint) (*models.Circle, error) {
	var circle models.Circle
	if err := r.db.WithContext(ctx).First(&circle, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Circle", id)
		}
		return nil, models.NewInternalError(err)
	}

	var members []models.CircleMember
	if err := r.db.WithContext(ctx).
		Where("circle_id = ?", id).
		Order("created_at").
		Find(&members).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	circle.MemberIDs = make([]uint, 0, len(members))
	for _, m := range members {
		circle.MemberIDs = append(circle.MemberIDs, m.UserID)
		if m.Role == models.CircleRoleAdmin {
			circle.AdminIDs = append(circle.AdminIDs, m.UserID)
		}
	}
	return &circle, nil
}

func (r *circleRepository) List(ctx context.Context, category string, limit, offset int) ([]*models.Circle, error) {
	q := r.db.WithContext(ctx).Where("status = ?", models.CircleStatusActive)
	if category != "" {
		q = q.Where("category = ?", category)
	}

	var circles []*models.Circle
	err := q.Order("members DESC").
		Limit(clampLimit(limit)).
		Offset(offset).
		Find(&circles).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return circles, nil
}

func (r *circleRepository) Search(ctx context.Context, query string, limit, offset int) ([]*models.Circle, error) {
	like := "%" + strings.ToLower(query) + "%"
	var circles []*models.Circle
	err := r.db.WithContext(ctx).
		Where("status = ?", models.CircleStatusActive).
		Where("LOWER(name) LIKE ? OR name_ar LIKE ? OR LOWER(description) LIKE ?", like, "%"+query+"%", like).
		Order("members DESC").
		Limit(clampLimit(limit)).
		Offset(offset).
		Find(&circles).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return circles, nil
}

func (r *circleRepository) Update(ctx context.Context, circle *models.Circle) error {
	if err := r.db.WithContext(ctx).Save(circle).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.Invalidate(ctx, cache.CircleKey(circle.ID))
	return nil
}

func (r *circleRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("circle_id = ?", id).Delete(&models.CircleMember{}).Error; err != nil {
			return err
		}
		// Posts keep existing but detach from the deleted circle.
		if err := tx.Model(&models.Post{}).Where("circle_id = ?", id).Update("circle_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Circle{}, id).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.Invalidate(ctx, cache.CircleKey(id))
	cache.InvalidateCircleFeed(ctx, id)
	return nil
}

// Join adds the user to the circle. The unique index on (circle_id,
// user_id) absorbs concurrent double joins: only the request that inserted
// the row increments the counter. Returns false if the user was already a
// member.
func (r *circleRepository) Join(ctx context.Context, circleID, userID uint) (bool, error) {
	var joined bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var exists int64
		if err := tx.Model(&models.Circle{}).Where("id = ?", circleID).Count(&exists).Error; err != nil {
			return err
		}
		if exists == 0 {
			return models.NewNotFoundError("Circle", circleID)
		}

		member := models.CircleMember{CircleID: circleID, UserID: userID, Role: models.CircleRoleMember}
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&member)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		joined = true
		return tx.Model(&models.Circle{}).
			Where("id = ?", circleID).
			Update("members", gorm.Expr("members + 1")).Error
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return false, appErr
		}
		return false, models.NewInternalError(err)
	}

	if joined {
		cache.Invalidate(ctx, cache.CircleKey(circleID))
	}
	return joined, nil
}

// Leave removes the user's membership. Returns false if the user was not a
// member; the counter only moves when a row was actually deleted.
func (r *circleRepository) Leave(ctx context.Context, circleID, userID uint) (bool, error) {
	var left bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("circle_id = ? AND user_id = ?", circleID, userID).Delete(&models.CircleMember{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		left = true
		return tx.Model(&models.Circle{}).
			Where("id = ?", circleID).
			Update("members", gorm.Expr("CASE WHEN members > 0 THEN members - 1 ELSE 0 END")).Error
	})
	if err != nil {
		return false, models.NewInternalError(err)
	}

	if left {
		cache.Invalidate(ctx, cache.CircleKey(circleID))
	}
	return left, nil
}

func (r *circleRepository) IsMember(ctx context.Context, circleID, userID uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&models.CircleMember{}).
		Where("circle_id = ? AND user_id = ?", circleID, userID).
		Count(&n).Error
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return n > 0, nil
}

func (r *circleRepository) IsCircleAdmin(ctx context.Context, circleID, userID uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&models.CircleMember{}).
		Where("circle_id = ? AND user_id = ? AND role = ?", circleID, userID, models.CircleRoleAdmin).
		Count(&n).Error
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return n > 0, nil
}

func (r *circleRepository) ListMembers(ctx context.Context, circleID uint, limit, offset int) ([]models.CircleMember, error) {
	var members []models.CircleMember
	err := r.db.WithContext(ctx).
		Where("circle_id = ?", circleID).
		Order("created_at").
		Limit(clampLimit(limit)).
		Offset(offset).
		Find(&members).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return members, nil
}

// CountMembers recounts membership rows, bypassing the cached counter.
func (r *circleRepository) CountMembers(ctx context.Context, circleID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&models.CircleMember{}).
		Where("circle_id = ?", circleID).
		Count(&n).Error
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return n, nil
}

// MemberCounters returns the stored members column for the given circles in
// one query.
func (r *circleRepository) MemberCounters(ctx context.Context, ids []uint) (map[uint]int, error) {
	counters := make(map[uint]int, len(ids))
	if len(ids) == 0 {
		return counters, nil
	}

	type row struct {
		ID      uint
		Members int
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&models.Circle{}).
		Select("id", "members").
		Where("id IN ?", ids).
		Find(&rows).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	for _, rw := range rows {
		counters[rw.ID] = rw.Members
	}
	return counters, nil
}

// CountMembersBatch recounts membership rows for the given circles with one
// grouped query. Circles without rows are absent from the map.
func (r *circleRepository) CountMembersBatch(ctx context.Context, ids []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(ids))
	if len(ids) == 0 {
		return counts, nil
	}

	type row struct {
		CircleID uint
		N        int64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&models.CircleMember{}).
		Select("circle_id, COUNT(*) as n").
		Where("circle_id IN ?", ids).
		Group("circle_id").
		Find(&rows).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	for _, rw := range rows {
		counts[rw.CircleID] = rw.N
	}
	return counts, nil
}

// SetMemberCount overwrites the cached counter with a recounted value.
// Used by the reconciliation job only.
func (r *circleRepository) SetMemberCount(ctx context.Context, circleID uint, count int) error {
	err := r.db.WithContext(ctx).
		Model(&models.Circle{}).
		Where("id = ?", circleID).
		Update("members", count).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.Invalidate(ctx, cache.CircleKey(circleID))
	return nil
}

// MemberCorrection is one staged member-count rewrite.
type MemberCorrection struct {
	CircleID uint
	Members  int
}

// SetMemberCounts applies a batch of staged corrections in one transaction,
// so a reconciliation batch lands or fails as a unit.
func (r *circleRepository) SetMemberCounts(ctx context.Context, corrections []MemberCorrection) error {
	if len(corrections) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, c := range corrections {
			if err := tx.Model(&models.Circle{}).
				Where("id = ?", c.CircleID).
				Update("members", c.Members).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	for _, c := range corrections {
		cache.Invalidate(ctx, cache.CircleKey(c.CircleID))
	}
	return nil
}

// AdjustPostCount shifts the cached post tally, clamped at zero. Called by
// the outbox worker.
func (r *circleRepository) AdjustPostCount(ctx context.Context, circleID uint, delta int) error {
	err := r.db.WithContext(ctx).
		Model(&models.Circle{}).
		Where("id = ?", circleID).
		Update("posts", gorm.Expr("CASE WHEN posts + ? < 0 THEN 0 ELSE posts + ? END", delta, delta)).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.Invalidate(ctx, cache.CircleKey(circleID))
	return nil
}

// ListIDs pages through circle IDs in ascending order. afterID of zero
// starts from the beginning.
func (r *circleRepository) ListIDs(ctx context.Context, afterID uint, limit int) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&models.Circle{}).
		Where("id > ?", afterID).
		Order("id").
		Limit(limit).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return ids, nil
}

func (r *circleRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.Circle{}).Count(&n).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return n, nil
}
