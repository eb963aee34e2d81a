package models

import (
	"time"

	"gorm.io/gorm"
)

// Meal types accepted on a nutrition entry.
const (
	MealBreakfast = "breakfast"
	MealLunch     = "lunch"
	MealDinner    = "dinner"
	MealSnack     = "snack"
)

// ValidMealType reports whether m is one of the accepted meal types.
func ValidMealType(m string) bool {
	switch m {
	case MealBreakfast, MealLunch, MealDinner, MealSnack:
		return true
	}
	return false
}

// NutritionEntry is one logged food item in the nutrition tracker.
// Date is stored as YYYY-MM-DD so daily summaries group on a plain string.
type NutritionEntry struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	UserID   uint   `gorm:"not null;index:idx_nutrition_user_date" json:"user_id"`
	Date     string `gorm:"size:10;not null;index:idx_nutrition_user_date" json:"date"`
	MealType string `gorm:"size:16;not null" json:"meal_type"`
	FoodName string `gorm:"size:200;not null" json:"food_name"`
	Calories int    `gorm:"not null;default:0" json:"calories"`
	Protein  int    `gorm:"not null;default:0" json:"protein"`
	Carbs    int    `gorm:"not null;default:0" json:"carbs"`
	Fat      int    `gorm:"not null;default:0" json:"fat"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// NutritionSummary is the aggregated intake for one user-day.
type NutritionSummary struct {
	Date     string `json:"date"`
	Calories int    `json:"calories"`
	Protein  int    `json:"protein"`
	Carbs    int    `json:"carbs"`
	Fat      int    `json:"fat"`
	Entries  int    `json:"entries"`
}
