package server

import (
	"mime/multipart"

	"nabta/internal/models"
	"nabta/internal/service"

	"github.com/gofiber/fiber/v2"
)

// maxUploadSize caps avatar and cover uploads at 5 MiB.
const maxUploadSize = 5 << 20

// GetMyProfile handles GET /api/users/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	user, err := s.userService.GetUserByID(c.Context(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(user)
}

// UpdateMyProfile handles PUT /api/users/me
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Username string `json:"username"`
		Bio      string `json:"bio"`
		Avatar   string `json:"avatar"`
		Cover    string `json:"cover"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.Context(), service.UpdateProfileInput{
		UserID:   userID,
		Username: req.Username,
		Bio:      req.Bio,
		Avatar:   req.Avatar,
		Cover:    req.Cover,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(user)
}

// GetAllUsers handles GET /api/users
func (s *Server) GetAllUsers(c *fiber.Ctx) error {
	page := parsePagination(c, 20)

	users, err := s.userService.ListUsers(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(users)
}

// SearchUsers handles GET /api/users/search?q=...
func (s *Server) SearchUsers(c *fiber.Ctx) error {
	q := c.Query("q")
	page := parsePagination(c, 10)

	users, err := s.userService.SearchUsers(c.Context(), q, page.Limit, page.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(users)
}

// GetUserProfile handles GET /api/users/:id
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.userService.GetUserByID(c.Context(), targetID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(user)
}

// PromoteToAdmin handles POST /api/users/:id/promote-admin
func (s *Server) PromoteToAdmin(c *fiber.Ctx) error {
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.userService.SetAdmin(c.Context(), targetID, true)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(user)
}

// DemoteFromAdmin handles POST /api/users/:id/demote-admin
func (s *Server) DemoteFromAdmin(c *fiber.Ctx) error {
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.userService.SetAdmin(c.Context(), targetID, false)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(user)
}

// UploadAvatar handles POST /api/users/me/avatar. Avatars are stored under a
// timestamped key so older versions stay addressable.
func (s *Server) UploadAvatar(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	header, src, err := s.openUpload(c, "avatar")
	if err != nil {
		return nil
	}
	defer src.Close()

	url, err := s.storage.UploadAvatar(c.Context(), userID, header.Filename,
		src, header.Size, header.Header.Get("Content-Type"))
	if err != nil {
		return respondServiceError(c, err)
	}

	user, err := s.userService.UpdateProfile(c.Context(), service.UpdateProfileInput{
		UserID: userID,
		Avatar: url,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"url":  url,
		"user": user,
	})
}

// UploadCover handles POST /api/users/me/cover. Covers overwrite in place,
// one object per user.
func (s *Server) UploadCover(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	header, src, err := s.openUpload(c, "cover")
	if err != nil {
		return nil
	}
	defer src.Close()

	url, err := s.storage.UploadCover(c.Context(), userID,
		src, header.Size, header.Header.Get("Content-Type"))
	if err != nil {
		return respondServiceError(c, err)
	}

	user, err := s.userService.UpdateProfile(c.Context(), service.UpdateProfileInput{
		UserID: userID,
		Cover:  url,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"url":  url,
		"user": user,
	})
}

// openUpload validates a multipart file upload and opens it for reading.
// On failure it writes the response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) openUpload(c *fiber.Ctx, field string) (*multipart.FileHeader, multipart.File, error) {
	if s.storage == nil {
		_ = models.RespondWithError(c, fiber.StatusServiceUnavailable,
			models.NewUpstreamError("file uploads are unavailable", nil))
		return nil, nil, errResponseWritten
	}

	header, err := c.FormFile(field)
	if err != nil {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("A file is required in the \""+field+"\" form field"))
		return nil, nil, errResponseWritten
	}
	if header.Size > maxUploadSize {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("File exceeds the 5MB upload limit"))
		return nil, nil, errResponseWritten
	}

	src, err := header.Open()
	if err != nil {
		_ = models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
		return nil, nil, errResponseWritten
	}
	return header, src, nil
}
