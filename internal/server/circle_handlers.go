package server

import (
	"nabta/internal/models"
	"nabta/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateCircle handles POST /api/circles
func (s *Server) CreateCircle(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Name          string `json:"name"`
		NameAr        string `json:"name_ar"`
		Description   string `json:"description"`
		DescriptionAr string `json:"description_ar"`
		Category      string `json:"category"`
		CategoryAr    string `json:"category_ar"`
		IsPrivate     bool   `json:"is_private"`
		ImageURL      string `json:"image_url"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	circle, err := s.circleService.CreateCircle(c.Context(), service.CreateCircleInput{
		CreatorID:     userID,
		Name:          req.Name,
		NameAr:        req.NameAr,
		Description:   req.Description,
		DescriptionAr: req.DescriptionAr,
		Category:      req.Category,
		CategoryAr:    req.CategoryAr,
		IsPrivate:     req.IsPrivate,
		ImageURL:      req.ImageURL,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(circle)
}

// GetCircles handles GET /api/circles. An optional category query parameter
// filters the listing.
func (s *Server) GetCircles(c *fiber.Ctx) error {
	page := parsePagination(c, 20)

	circles, err := s.circleService.ListCircles(c.Context(), c.Query("category"), page.Limit, page.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(circles)
}

// SearchCircles handles GET /api/circles/search?q=...
func (s *Server) SearchCircles(c *fiber.Ctx) error {
	q := c.Query("q")
	page := parsePagination(c, 10)

	circles, err := s.circleService.SearchCircles(c.Context(), q, page.Limit, page.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(circles)
}

// GetCircle handles GET /api/circles/:id
func (s *Server) GetCircle(c *fiber.Ctx) error {
	circleID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	circle, err := s.circleService.GetCircle(c.Context(), circleID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(circle)
}

// GetCircleMembers handles GET /api/circles/:id/members
func (s *Server) GetCircleMembers(c *fiber.Ctx) error {
	circleID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	page := parsePagination(c, 50)

	members, err := s.circleService.ListMembers(c.Context(), circleID, page.Limit, page.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(members)
}

// UpdateCircle handles PUT /api/circles/:id
func (s *Server) UpdateCircle(c *fiber.Ctx) error {
	circleID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID := c.Locals("userID").(uint)

	var req struct {
		Name          string `json:"name"`
		NameAr        string `json:"name_ar"`
		Description   string `json:"description"`
		DescriptionAr string `json:"description_ar"`
		Category      string `json:"category"`
		CategoryAr    string `json:"category_ar"`
		Status        string `json:"status"`
		ImageURL      string `json:"image_url"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	circle, err := s.circleService.UpdateCircle(c.Context(), service.UpdateCircleInput{
		UserID:        userID,
		CircleID:      circleID,
		Name:          req.Name,
		NameAr:        req.NameAr,
		Description:   req.Description,
		DescriptionAr: req.DescriptionAr,
		Category:      req.Category,
		CategoryAr:    req.CategoryAr,
		Status:        req.Status,
		ImageURL:      req.ImageURL,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(circle)
}

// DeleteCircle handles DELETE /api/circles/:id
func (s *Server) DeleteCircle(c *fiber.Ctx) error {
	circleID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID := c.Locals("userID").(uint)

	if err := s.circleService.DeleteCircle(c.Context(), circleID, userID); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Circle deleted"})
}

// JoinCircle handles POST /api/circles/:id/join
func (s *Server) JoinCircle(c *fiber.Ctx) error {
	circleID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID := c.Locals("userID").(uint)

	circle, err := s.circleService.JoinCircle(c.Context(), circleID, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(circle)
}

// LeaveCircle handles POST /api/circles/:id/leave
func (s *Server) LeaveCircle(c *fiber.Ctx) error {
	circleID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID := c.Locals("userID").(uint)

	circle, err := s.circleService.LeaveCircle(c.Context(), circleID, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(circle)
}

// ReconcileCircle handles POST /api/circles/:id/reconcile. It recounts the
// circle's membership rows and repairs the stored counter if they disagree.
func (s *Server) ReconcileCircle(c *fiber.Ctx) error {
	circleID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	result, err := s.reconciler.ReconcileCircle(c.Context(), circleID)
	if err != nil {
		return respondServiceError(c, err)
	}

	if !result.Changed {
		return c.JSON(fiber.Map{
			"message":      "No update needed",
			"member_count": result.After,
		})
	}

	return c.JSON(fiber.Map{
		"message":        "Member count corrected",
		"previous_count": result.Before,
		"new_count":      result.After,
	})
}
