package service

import (
	"context"
	"time"

	"nabta/internal/models"
	"nabta/internal/repository"
)

// AdminService aggregates platform-wide statistics for the admin dashboard.
type AdminService struct {
	userRepo    repository.UserRepository
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	shareRepo   repository.ShareRepository
	circleRepo  repository.CircleRepository
	outboxRepo  repository.OutboxRepository
}

// DashboardStats is the aggregate snapshot served to administrators.
type DashboardStats struct {
	Users            int64                   `json:"users"`
	ActiveUsersDay   int64                   `json:"active_users_day"`
	ActiveUsersWeek  int64                   `json:"active_users_week"`
	ActiveUsersMonth int64                   `json:"active_users_month"`
	Posts            int64                   `json:"posts"`
	Comments         int64                   `json:"comments"`
	Shares           int64                   `json:"shares"`
	Circles          int64                   `json:"circles"`
	PendingOutbox    int64                   `json:"pending_outbox"`
	DailyPosts       []repository.DailyCount `json:"daily_posts"`
	CircleStats      []CircleActivity        `json:"circle_stats"`
	RecentPosts      []*models.Post          `json:"recent_posts"`
	TopPosts         []*models.Post          `json:"top_posts"`
}

// CircleActivity is a per-circle slice of the dashboard, read straight from
// the denormalized counters on the circles table.
type CircleActivity struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	NameAr  string `json:"name_ar"`
	Members int    `json:"members"`
	Posts   int    `json:"posts"`
}

// NewAdminService creates a new AdminService.
func NewAdminService(
	userRepo repository.UserRepository,
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	shareRepo repository.ShareRepository,
	circleRepo repository.CircleRepository,
	outboxRepo repository.OutboxRepository,
) *AdminService {
	return &AdminService{
		userRepo:    userRepo,
		postRepo:    postRepo,
		commentRepo: commentRepo,
		shareRepo:   shareRepo,
		circleRepo:  circleRepo,
		outboxRepo:  outboxRepo,
	}
}

const (
	dashboardDailyWindow = 7 * 24 * time.Hour
	dashboardCircleLimit = 50
	dashboardRecentPosts = 5
)

// Dashboard collects entity counts, activity windows, and the most active
// posts in one snapshot. Every query runs fresh; nothing is cached.
func (s *AdminService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}
	now := time.Now()

	var err error
	if stats.Users, err = s.userRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.ActiveUsersDay, err = s.userRepo.CountActiveSince(ctx, now.Add(-24*time.Hour)); err != nil {
		return nil, err
	}
	if stats.ActiveUsersWeek, err = s.userRepo.CountActiveSince(ctx, now.Add(-7*24*time.Hour)); err != nil {
		return nil, err
	}
	if stats.ActiveUsersMonth, err = s.userRepo.CountActiveSince(ctx, now.Add(-30*24*time.Hour)); err != nil {
		return nil, err
	}
	if stats.Posts, err = s.postRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.Comments, err = s.commentRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.Shares, err = s.shareRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.Circles, err = s.circleRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.PendingOutbox, err = s.outboxRepo.CountPending(ctx); err != nil {
		return nil, err
	}
	if stats.DailyPosts, err = s.postRepo.CountPerDaySince(ctx, now.Add(-dashboardDailyWindow)); err != nil {
		return nil, err
	}
	circles, err := s.circleRepo.List(ctx, "", dashboardCircleLimit, 0)
	if err != nil {
		return nil, err
	}
	stats.CircleStats = make([]CircleActivity, 0, len(circles))
	for _, c := range circles {
		stats.CircleStats = append(stats.CircleStats, CircleActivity{
			ID:      c.ID,
			Name:    c.Name,
			NameAr:  c.NameAr,
			Members: c.Members,
			Posts:   c.Posts,
		})
	}
	if stats.RecentPosts, err = s.postRepo.List(ctx, dashboardRecentPosts, 0, 0); err != nil {
		return nil, err
	}
	if stats.TopPosts, err = s.postRepo.TopByInteractions(ctx, 10); err != nil {
		return nil, err
	}
	return stats, nil
}
