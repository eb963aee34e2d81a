package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nabta/internal/models"
)

func TestLogMealValidation(t *testing.T) {
	svc := NewNutritionService(noopNutritionRepo())

	cases := []struct {
		name string
		in   LogMealInput
	}{
		{"bad date", LogMealInput{UserID: 1, Date: "15-01-2026", MealType: "lunch", FoodName: "rice"}},
		{"bad meal type", LogMealInput{UserID: 1, MealType: "brunch", FoodName: "rice"}},
		{"missing food name", LogMealInput{UserID: 1, MealType: "lunch", FoodName: "  "}},
		{"negative macros", LogMealInput{UserID: 1, MealType: "lunch", FoodName: "rice", Calories: -10}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.LogMeal(context.Background(), tc.in)
			require.Error(t, err)
			var appErr *models.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
		})
	}
}

func TestLogMealDefaultsDateToToday(t *testing.T) {
	var gotDate string
	repo := noopNutritionRepo()
	repo.createFn = func(_ context.Context, e *models.NutritionEntry) error {
		gotDate = e.Date
		return nil
	}
	svc := NewNutritionService(repo)

	entry, err := svc.LogMeal(context.Background(), LogMealInput{
		UserID: 1, MealType: "breakfast", FoodName: " oats ", Calories: 320, Protein: 12,
	})
	require.NoError(t, err)
	assert.Equal(t, time.Now().Format("2006-01-02"), gotDate)
	assert.Equal(t, "oats", entry.FoodName)
}

func TestDeleteEntryOwnerOnly(t *testing.T) {
	repo := noopNutritionRepo()
	repo.getByIDFn = func(_ context.Context, id uint) (*models.NutritionEntry, error) {
		return &models.NutritionEntry{ID: id, UserID: 99}, nil
	}
	svc := NewNutritionService(repo)

	err := svc.DeleteEntry(context.Background(), 1, 5)
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "FORBIDDEN", appErr.Code)

	err = svc.DeleteEntry(context.Background(), 99, 5)
	require.NoError(t, err)
}

func TestDaySummaryValidatesDate(t *testing.T) {
	svc := NewNutritionService(noopNutritionRepo())

	_, err := svc.DaySummary(context.Background(), 1, "2026/01/15")
	require.Error(t, err)

	summary, err := svc.DaySummary(context.Background(), 1, "2026-01-15")
	require.NoError(t, err)
	require.NotNil(t, summary)
}
