package service

import (
	"context"

	"nabta/internal/models"
	"nabta/internal/repository"
	"nabta/internal/validation"
)

// CircleService handles growth circle management and membership.
type CircleService struct {
	circleRepo repository.CircleRepository
	isAdmin    func(ctx context.Context, userID uint) (bool, error)
}

type CreateCircleInput struct {
	CreatorID     uint
	Name          string
	NameAr        string
	Description   string
	DescriptionAr string
	Category      string
	CategoryAr    string
	IsPrivate     bool
	ImageURL      string
}

type UpdateCircleInput struct {
	UserID        uint
	CircleID      uint
	Name          string
	NameAr        string
	Description   string
	DescriptionAr string
	Category      string
	CategoryAr    string
	Status        string
	ImageURL      string
}

// NewCircleService creates a new CircleService.
func NewCircleService(
	circleRepo repository.CircleRepository,
	isAdmin func(ctx context.Context, userID uint) (bool, error),
) *CircleService {
	return &CircleService{circleRepo: circleRepo, isAdmin: isAdmin}
}

func (s *CircleService) CreateCircle(ctx context.Context, in CreateCircleInput) (*models.Circle, error) {
	if err := validation.ValidateCircleName(in.Name); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateCircleDescription(in.Description); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	circle := &models.Circle{
		Name:          in.Name,
		NameAr:        in.NameAr,
		Description:   in.Description,
		DescriptionAr: in.DescriptionAr,
		Category:      in.Category,
		CategoryAr:    in.CategoryAr,
		IsPrivate:     in.IsPrivate,
		ImageURL:      in.ImageURL,
		Status:        models.CircleStatusActive,
	}
	if err := s.circleRepo.Create(ctx, circle, in.CreatorID); err != nil {
		return nil, err
	}
	return s.circleRepo.GetByID(ctx, circle.ID)
}

func (s *CircleService) GetCircle(ctx context.Context, id uint) (*models.Circle, error) {
	return s.circleRepo.GetByID(ctx, id)
}

func (s *CircleService) ListCircles(ctx context.Context, category string, limit, offset int) ([]*models.Circle, error) {
	return s.circleRepo.List(ctx, category, limit, offset)
}

func (s *CircleService) SearchCircles(ctx context.Context, query string, limit, offset int) ([]*models.Circle, error) {
	if query == "" {
		return nil, models.NewValidationError("Search query is required")
	}
	return s.circleRepo.Search(ctx, query, limit, offset)
}

// UpdateCircle applies changes to a circle. Allowed for circle admins and
// global admins.
func (s *CircleService) UpdateCircle(ctx context.Context, in UpdateCircleInput) (*models.Circle, error) {
	circle, err := s.circleRepo.GetByID(ctx, in.CircleID)
	if err != nil {
		return nil, err
	}

	if err := s.requireCircleAdmin(ctx, in.CircleID, in.UserID); err != nil {
		return nil, err
	}

	if in.Name != "" {
		if verr := validation.ValidateCircleName(in.Name); verr != nil {
			return nil, models.NewValidationError(verr.Error())
		}
		circle.Name = in.Name
	}
	if in.NameAr != "" {
		circle.NameAr = in.NameAr
	}
	if in.Description != "" {
		if verr := validation.ValidateCircleDescription(in.Description); verr != nil {
			return nil, models.NewValidationError(verr.Error())
		}
		circle.Description = in.Description
	}
	if in.DescriptionAr != "" {
		circle.DescriptionAr = in.DescriptionAr
	}
	if in.Category != "" {
		circle.Category = in.Category
	}
	if in.CategoryAr != "" {
		circle.CategoryAr = in.CategoryAr
	}
	if in.ImageURL != "" {
		circle.ImageURL = in.ImageURL
	}
	if in.Status != "" {
		switch models.CircleStatus(in.Status) {
		case models.CircleStatusActive, models.CircleStatusInactive:
			circle.Status = models.CircleStatus(in.Status)
		default:
			return nil, models.NewValidationError("status must be active or inactive")
		}
	}

	if err := s.circleRepo.Update(ctx, circle); err != nil {
		return nil, err
	}
	return circle, nil
}

// DeleteCircle removes a circle. Global admins only.
func (s *CircleService) DeleteCircle(ctx context.Context, circleID, userID uint) error {
	if _, err := s.circleRepo.GetByID(ctx, circleID); err != nil {
		return err
	}
	admin, err := s.isAdmin(ctx, userID)
	if err != nil {
		return err
	}
	if !admin {
		return models.NewForbiddenError("Only admins can delete circles")
	}
	return s.circleRepo.Delete(ctx, circleID)
}

// JoinCircle adds the user; repeated joins are no-ops.
func (s *CircleService) JoinCircle(ctx context.Context, circleID, userID uint) (*models.Circle, error) {
	if _, err := s.circleRepo.Join(ctx, circleID, userID); err != nil {
		return nil, err
	}
	return s.circleRepo.GetByID(ctx, circleID)
}

// LeaveCircle removes the user; leaving a circle never joined is a no-op.
func (s *CircleService) LeaveCircle(ctx context.Context, circleID, userID uint) (*models.Circle, error) {
	if _, err := s.circleRepo.Leave(ctx, circleID, userID); err != nil {
		return nil, err
	}
	return s.circleRepo.GetByID(ctx, circleID)
}

func (s *CircleService) ListMembers(ctx context.Context, circleID uint, limit, offset int) ([]models.CircleMember, error) {
	if _, err := s.circleRepo.GetByID(ctx, circleID); err != nil {
		return nil, err
	}
	return s.circleRepo.ListMembers(ctx, circleID, limit, offset)
}

func (s *CircleService) requireCircleAdmin(ctx context.Context, circleID, userID uint) error {
	circleAdmin, err := s.circleRepo.IsCircleAdmin(ctx, circleID, userID)
	if err != nil {
		return err
	}
	if circleAdmin {
		return nil
	}
	globalAdmin, err := s.isAdmin(ctx, userID)
	if err != nil {
		return err
	}
	if !globalAdmin {
		return models.NewForbiddenError("Circle admin role required")
	}
	return nil
}
