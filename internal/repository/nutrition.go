package repository

import (
	"context"
	"errors"

	"nabta/internal/cache"
	"nabta/internal/models"

	"gorm.io/gorm"
)

// NutritionRepository defines persistence operations for nutrition entries.
type NutritionRepository interface {
	Create(ctx context.Context, entry *models.NutritionEntry) error
	GetByID(ctx context.Context, id uint) (*models.NutritionEntry, error)
	ListByUserDate(ctx context.Context, userID uint, date string) ([]models.NutritionEntry, error)
	Summary(ctx context.Context, userID uint, date string) (*models.NutritionSummary, error)
	Update(ctx context.Context, entry *models.NutritionEntry) error
	Delete(ctx context.Context, id uint) error
}

type nutritionRepository struct {
	db *gorm.DB
}

// NewNutritionRepository creates a new NutritionRepository.
func NewNutritionRepository(db *gorm.DB) NutritionRepository {
	return &nutritionRepository{db: db}
}

func (r *nutritionRepository) Create(ctx context.Context, entry *models.NutritionEntry) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.Invalidate(ctx, cache.NutritionSummaryKey(entry.UserID, entry.Date))
	return nil
}

func (r *nutritionRepository) GetByID(ctx context.Context, id uint) (*models.NutritionEntry, error) {
	var entry models.NutritionEntry
	if err := r.db.WithContext(ctx).First(&entry, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Nutrition entry", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &entry, nil
}

func (r *nutritionRepository) ListByUserDate(ctx context.Context, userID uint, date string) ([]models.NutritionEntry, error) {
	var entries []models.NutritionEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		Order("created_at").
		Find(&entries).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return entries, nil
}

func (r *nutritionRepository) Summary(ctx context.Context, userID uint, date string) (*models.NutritionSummary, error) {
	summary := models.NutritionSummary{Date: date}
	err := cache.Aside(ctx, cache.NutritionSummaryKey(userID, date), &summary, cache.SummaryTTL, func() error {
		return r.db.WithContext(ctx).
			Model(&models.NutritionEntry{}).
			Select("COALESCE(SUM(calories),0) as calories, COALESCE(SUM(protein),0) as protein, COALESCE(SUM(carbs),0) as carbs, COALESCE(SUM(fat),0) as fat, COUNT(*) as entries").
			Where("user_id = ? AND date = ?", userID, date).
			Scan(&summary).Error
	})
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	summary.Date = date
	return &summary, nil
}

func (r *nutritionRepository) Update(ctx context.Context, entry *models.NutritionEntry) error {
	if err := r.db.WithContext(ctx).Save(entry).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.Invalidate(ctx, cache.NutritionSummaryKey(entry.UserID, entry.Date))
	return nil
}

func (r *nutritionRepository) Delete(ctx context.Context, id uint) error {
	entry, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Delete(&models.NutritionEntry{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.Invalidate(ctx, cache.NutritionSummaryKey(entry.UserID, entry.Date))
	return nil
}
