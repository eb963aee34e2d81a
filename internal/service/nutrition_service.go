package service

import (
	"context"
	"strings"
	"time"

	"nabta/internal/models"
	"nabta/internal/repository"
	"nabta/internal/validation"
)

// NutritionService handles the daily nutrition tracker.
type NutritionService struct {
	nutritionRepo repository.NutritionRepository
}

type LogMealInput struct {
	UserID   uint
	Date     string
	MealType string
	FoodName string
	Calories int
	Protein  int
	Carbs    int
	Fat      int
}

// NewNutritionService creates a new NutritionService.
func NewNutritionService(nutritionRepo repository.NutritionRepository) *NutritionService {
	return &NutritionService{nutritionRepo: nutritionRepo}
}

func (s *NutritionService) LogMeal(ctx context.Context, in LogMealInput) (*models.NutritionEntry, error) {
	if in.Date == "" {
		in.Date = time.Now().Format("2006-01-02")
	}
	if err := validation.ValidateDate(in.Date); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if !models.ValidMealType(in.MealType) {
		return nil, models.NewValidationError("meal_type must be breakfast, lunch, dinner, or snack")
	}
	if strings.TrimSpace(in.FoodName) == "" {
		return nil, models.NewValidationError("food_name is required")
	}
	if in.Calories < 0 || in.Protein < 0 || in.Carbs < 0 || in.Fat < 0 {
		return nil, models.NewValidationError("macro values cannot be negative")
	}

	entry := &models.NutritionEntry{
		UserID:   in.UserID,
		Date:     in.Date,
		MealType: in.MealType,
		FoodName: strings.TrimSpace(in.FoodName),
		Calories: in.Calories,
		Protein:  in.Protein,
		Carbs:    in.Carbs,
		Fat:      in.Fat,
	}
	if err := s.nutritionRepo.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// ListDay returns the user's entries for one date.
func (s *NutritionService) ListDay(ctx context.Context, userID uint, date string) ([]models.NutritionEntry, error) {
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	if err := validation.ValidateDate(date); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	return s.nutritionRepo.ListByUserDate(ctx, userID, date)
}

// DaySummary returns the aggregated intake for one date.
func (s *NutritionService) DaySummary(ctx context.Context, userID uint, date string) (*models.NutritionSummary, error) {
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	if err := validation.ValidateDate(date); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	return s.nutritionRepo.Summary(ctx, userID, date)
}

// DeleteEntry removes one of the caller's own entries.
func (s *NutritionService) DeleteEntry(ctx context.Context, userID, entryID uint) error {
	entry, err := s.nutritionRepo.GetByID(ctx, entryID)
	if err != nil {
		return err
	}
	if entry.UserID != userID {
		return models.NewForbiddenError("You can only delete your own entries")
	}
	return s.nutritionRepo.Delete(ctx, entryID)
}
