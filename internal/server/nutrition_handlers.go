package server

import (
	"nabta/internal/models"
	"nabta/internal/service"

	"github.com/gofiber/fiber/v2"
)

// LogMeal handles POST /api/nutrition
func (s *Server) LogMeal(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Date     string `json:"date"`
		MealType string `json:"meal_type"`
		FoodName string `json:"food_name"`
		Calories int    `json:"calories"`
		Protein  int    `json:"protein"`
		Carbs    int    `json:"carbs"`
		Fat      int    `json:"fat"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	entry, err := s.nutritionService.LogMeal(c.Context(), service.LogMealInput{
		UserID:   userID,
		Date:     req.Date,
		MealType: req.MealType,
		FoodName: req.FoodName,
		Calories: req.Calories,
		Protein:  req.Protein,
		Carbs:    req.Carbs,
		Fat:      req.Fat,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(entry)
}

// GetNutritionDay handles GET /api/nutrition?date=YYYY-MM-DD. Omitting the
// date lists today's entries.
func (s *Server) GetNutritionDay(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	entries, err := s.nutritionService.ListDay(c.Context(), userID, c.Query("date"))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(entries)
}

// GetNutritionSummary handles GET /api/nutrition/summary?date=YYYY-MM-DD
func (s *Server) GetNutritionSummary(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	summary, err := s.nutritionService.DaySummary(c.Context(), userID, c.Query("date"))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(summary)
}

// DeleteNutritionEntry handles DELETE /api/nutrition/:id
func (s *Server) DeleteNutritionEntry(c *fiber.Ctx) error {
	entryID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID := c.Locals("userID").(uint)

	if err := s.nutritionService.DeleteEntry(c.Context(), userID, entryID); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Entry deleted"})
}
