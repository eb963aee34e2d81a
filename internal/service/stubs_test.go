package service

import (
	"context"
	"time"

	"nabta/internal/models"
	"nabta/internal/repository"
)

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn            func(context.Context, *models.Post) error
	getByIDFn           func(context.Context, uint, uint) (*models.Post, error)
	getByUserIDFn       func(context.Context, uint, int, int, uint) ([]*models.Post, error)
	getByCircleIDFn     func(context.Context, uint, int, int, uint) ([]*models.Post, error)
	listFn              func(context.Context, int, int, uint) ([]*models.Post, error)
	searchFn            func(context.Context, string, int, int, uint) ([]*models.Post, error)
	updateFn            func(context.Context, *models.Post) error
	deleteFn            func(context.Context, uint) error
	toggleLikeFn        func(context.Context, uint, uint) (bool, int, error)
	countFn             func(context.Context) (int64, error)
	topByInteractionsFn func(context.Context, int) ([]*models.Post, error)
	countPerDaySinceFn  func(context.Context, time.Time) ([]repository.DailyCount, error)
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id, currentUserID uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id, currentUserID)
}
func (s *postRepoStub) GetByUserID(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	return s.getByUserIDFn(ctx, userID, limit, offset, currentUserID)
}
func (s *postRepoStub) GetByCircleID(ctx context.Context, circleID uint, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	return s.getByCircleIDFn(ctx, circleID, limit, offset, currentUserID)
}
func (s *postRepoStub) List(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	return s.listFn(ctx, limit, offset, currentUserID)
}
func (s *postRepoStub) Search(ctx context.Context, query string, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	return s.searchFn(ctx, query, limit, offset, currentUserID)
}
func (s *postRepoStub) Update(ctx context.Context, post *models.Post) error {
	return s.updateFn(ctx, post)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *postRepoStub) ToggleLike(ctx context.Context, userID, postID uint) (bool, int, error) {
	return s.toggleLikeFn(ctx, userID, postID)
}
func (s *postRepoStub) Count(ctx context.Context) (int64, error) {
	return s.countFn(ctx)
}
func (s *postRepoStub) TopByInteractions(ctx context.Context, limit int) ([]*models.Post, error) {
	return s.topByInteractionsFn(ctx, limit)
}
func (s *postRepoStub) CountPerDaySince(ctx context.Context, since time.Time) ([]repository.DailyCount, error) {
	return s.countPerDaySinceFn(ctx, since)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn:  func(_ context.Context, _ *models.Post) error { return nil },
		getByIDFn: func(_ context.Context, id, _ uint) (*models.Post, error) { return &models.Post{ID: id}, nil },
		getByUserIDFn: func(_ context.Context, _ uint, _, _ int, _ uint) ([]*models.Post, error) {
			return nil, nil
		},
		getByCircleIDFn: func(_ context.Context, _ uint, _, _ int, _ uint) ([]*models.Post, error) {
			return nil, nil
		},
		listFn:              func(_ context.Context, _, _ int, _ uint) ([]*models.Post, error) { return nil, nil },
		searchFn:            func(_ context.Context, _ string, _, _ int, _ uint) ([]*models.Post, error) { return nil, nil },
		updateFn:            func(_ context.Context, _ *models.Post) error { return nil },
		deleteFn:            func(_ context.Context, _ uint) error { return nil },
		toggleLikeFn:        func(_ context.Context, _, _ uint) (bool, int, error) { return true, 1, nil },
		countFn:             func(_ context.Context) (int64, error) { return 0, nil },
		topByInteractionsFn: func(_ context.Context, _ int) ([]*models.Post, error) { return nil, nil },
		countPerDaySinceFn: func(_ context.Context, _ time.Time) ([]repository.DailyCount, error) {
			return nil, nil
		},
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn     func(context.Context, *models.Comment) error
	getByIDFn    func(context.Context, uint) (*models.Comment, error)
	listByPostFn func(context.Context, uint, uint) ([]*models.Comment, error)
	updateFn     func(context.Context, *models.Comment) error
	deleteFn     func(context.Context, uint) (int, error)
	toggleLikeFn func(context.Context, uint, uint) (bool, int, error)
	countFn      func(context.Context) (int64, error)
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID, currentUserID uint) ([]*models.Comment, error) {
	return s.listByPostFn(ctx, postID, currentUserID)
}
func (s *commentRepoStub) Update(ctx context.Context, comment *models.Comment) error {
	return s.updateFn(ctx, comment)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) (int, error) {
	return s.deleteFn(ctx, id)
}
func (s *commentRepoStub) ToggleLike(ctx context.Context, userID, commentID uint) (bool, int, error) {
	return s.toggleLikeFn(ctx, userID, commentID)
}
func (s *commentRepoStub) Count(ctx context.Context) (int64, error) {
	return s.countFn(ctx)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:     func(_ context.Context, _ *models.Comment) error { return nil },
		getByIDFn:    func(_ context.Context, id uint) (*models.Comment, error) { return &models.Comment{ID: id}, nil },
		listByPostFn: func(_ context.Context, _, _ uint) ([]*models.Comment, error) { return nil, nil },
		updateFn:     func(_ context.Context, _ *models.Comment) error { return nil },
		deleteFn:     func(_ context.Context, _ uint) (int, error) { return 1, nil },
		toggleLikeFn: func(_ context.Context, _, _ uint) (bool, int, error) { return true, 1, nil },
		countFn:      func(_ context.Context) (int64, error) { return 0, nil },
	}
}

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn         func(context.Context, uint) (*models.User, error)
	getByEmailFn      func(context.Context, string) (*models.User, error)
	getByUsernameFn   func(context.Context, string) (*models.User, error)
	createFn          func(context.Context, *models.User) error
	updateFn          func(context.Context, *models.User) error
	deleteFn          func(context.Context, uint) error
	listFn            func(context.Context, int, int) ([]models.User, error)
	searchFn          func(context.Context, string, int, int) ([]models.User, error)
	adjustPostCountFn  func(context.Context, uint, int) error
	countFn            func(context.Context) (int64, error)
	countActiveSinceFn func(context.Context, time.Time) (int64, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *userRepoStub) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *userRepoStub) Search(ctx context.Context, query string, limit, offset int) ([]models.User, error) {
	return s.searchFn(ctx, query, limit, offset)
}
func (s *userRepoStub) AdjustPostCount(ctx context.Context, id uint, delta int) error {
	return s.adjustPostCountFn(ctx, id, delta)
}
func (s *userRepoStub) Count(ctx context.Context) (int64, error) {
	return s.countFn(ctx)
}
func (s *userRepoStub) CountActiveSince(ctx context.Context, since time.Time) (int64, error) {
	return s.countActiveSinceFn(ctx, since)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Username: "tester"}, nil
		},
		getByEmailFn:      func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		getByUsernameFn:   func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		createFn:          func(_ context.Context, _ *models.User) error { return nil },
		updateFn:          func(_ context.Context, _ *models.User) error { return nil },
		deleteFn:          func(_ context.Context, _ uint) error { return nil },
		listFn:            func(_ context.Context, _, _ int) ([]models.User, error) { return nil, nil },
		searchFn:          func(_ context.Context, _ string, _, _ int) ([]models.User, error) { return nil, nil },
		adjustPostCountFn:  func(_ context.Context, _ uint, _ int) error { return nil },
		countFn:            func(_ context.Context) (int64, error) { return 0, nil },
		countActiveSinceFn: func(_ context.Context, _ time.Time) (int64, error) { return 0, nil },
	}
}

// circleRepoStub is a stub for repository.CircleRepository.
type circleRepoStub struct {
	createFn         func(context.Context, *models.Circle, uint) error
	getByIDFn        func(context.Context, uint) (*models.Circle, error)
	listFn           func(context.Context, string, int, int) ([]*models.Circle, error)
	searchFn         func(context.Context, string, int, int) ([]*models.Circle, error)
	updateFn         func(context.Context, *models.Circle) error
	deleteFn         func(context.Context, uint) error
	joinFn           func(context.Context, uint, uint) (bool, error)
	leaveFn          func(context.Context, uint, uint) (bool, error)
	isMemberFn       func(context.Context, uint, uint) (bool, error)
	isCircleAdminFn  func(context.Context, uint, uint) (bool, error)
	listMembersFn    func(context.Context, uint, int, int) ([]models.CircleMember, error)
	countMembersFn   func(context.Context, uint) (int64, error)
	setMemberCountFn func(context.Context, uint, int) error
	memberCountersFn func(context.Context, []uint) (map[uint]int, error)
	countBatchFn     func(context.Context, []uint) (map[uint]int64, error)
	setMemberBatchFn func(context.Context, []repository.MemberCorrection) error
	adjustPostsFn    func(context.Context, uint, int) error
	listIDsFn        func(context.Context, uint, int) ([]uint, error)
	countFn          func(context.Context) (int64, error)
}

func (s *circleRepoStub) Create(ctx context.Context, circle *models.Circle, creatorID uint) error {
	return s.createFn(ctx, circle, creatorID)
}
func (s *circleRepoStub) GetByID(ctx context.Context, id uint) (*models.Circle, error) {
	return s.getByIDFn(ctx, id)
}
func (s *circleRepoStub) List(ctx context.Context, category string, limit, offset int) ([]*models.Circle, error) {
	return s.listFn(ctx, category, limit, offset)
}
func (s *circleRepoStub) Search(ctx context.Context, query string, limit, offset int) ([]*models.Circle, error) {
	return s.searchFn(ctx, query, limit, offset)
}
func (s *circleRepoStub) Update(ctx context.Context, circle *models.Circle) error {
	return s.updateFn(ctx, circle)
}
func (s *circleRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *circleRepoStub) Join(ctx context.Context, circleID, userID uint) (bool, error) {
	return s.joinFn(ctx, circleID, userID)
}
func (s *circleRepoStub) Leave(ctx context.Context, circleID, userID uint) (bool, error) {
	return s.leaveFn(ctx, circleID, userID)
}
func (s *circleRepoStub) IsMember(ctx context.Context, circleID, userID uint) (bool, error) {
	return s.isMemberFn(ctx, circleID, userID)
}
func (s *circleRepoStub) IsCircleAdmin(ctx context.Context, circleID, userID uint) (bool, error) {
	return s.isCircleAdminFn(ctx, circleID, userID)
}
func (s *circleRepoStub) ListMembers(ctx context.Context, circleID uint, limit, offset int) ([]models.CircleMember, error) {
	return s.listMembersFn(ctx, circleID, limit, offset)
}
func (s *circleRepoStub) CountMembers(ctx context.Context, circleID uint) (int64, error) {
	return s.countMembersFn(ctx, circleID)
}
func (s *circleRepoStub) SetMemberCount(ctx context.Context, circleID uint, count int) error {
	return s.setMemberCountFn(ctx, circleID, count)
}
func (s *circleRepoStub) MemberCounters(ctx context.Context, ids []uint) (map[uint]int, error) {
	return s.memberCountersFn(ctx, ids)
}
func (s *circleRepoStub) CountMembersBatch(ctx context.Context, ids []uint) (map[uint]int64, error) {
	return s.countBatchFn(ctx, ids)
}
func (s *circleRepoStub) SetMemberCounts(ctx context.Context, corrections []repository.MemberCorrection) error {
	return s.setMemberBatchFn(ctx, corrections)
}
func (s *circleRepoStub) AdjustPostCount(ctx context.Context, circleID uint, delta int) error {
	return s.adjustPostsFn(ctx, circleID, delta)
}
func (s *circleRepoStub) ListIDs(ctx context.Context, afterID uint, limit int) ([]uint, error) {
	return s.listIDsFn(ctx, afterID, limit)
}
func (s *circleRepoStub) Count(ctx context.Context) (int64, error) {
	return s.countFn(ctx)
}

func noopCircleRepo() *circleRepoStub {
	return &circleRepoStub{
		createFn:         func(_ context.Context, _ *models.Circle, _ uint) error { return nil },
		getByIDFn:        func(_ context.Context, id uint) (*models.Circle, error) { return &models.Circle{ID: id}, nil },
		listFn:           func(_ context.Context, _ string, _, _ int) ([]*models.Circle, error) { return nil, nil },
		searchFn:         func(_ context.Context, _ string, _, _ int) ([]*models.Circle, error) { return nil, nil },
		updateFn:         func(_ context.Context, _ *models.Circle) error { return nil },
		deleteFn:         func(_ context.Context, _ uint) error { return nil },
		joinFn:           func(_ context.Context, _, _ uint) (bool, error) { return true, nil },
		leaveFn:          func(_ context.Context, _, _ uint) (bool, error) { return true, nil },
		isMemberFn:       func(_ context.Context, _, _ uint) (bool, error) { return true, nil },
		isCircleAdminFn:  func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		listMembersFn:    func(_ context.Context, _ uint, _, _ int) ([]models.CircleMember, error) { return nil, nil },
		countMembersFn:   func(_ context.Context, _ uint) (int64, error) { return 0, nil },
		setMemberCountFn: func(_ context.Context, _ uint, _ int) error { return nil },
		memberCountersFn: func(_ context.Context, _ []uint) (map[uint]int, error) { return nil, nil },
		countBatchFn:     func(_ context.Context, _ []uint) (map[uint]int64, error) { return nil, nil },
		setMemberBatchFn: func(_ context.Context, _ []repository.MemberCorrection) error { return nil },
		adjustPostsFn:    func(_ context.Context, _ uint, _ int) error { return nil },
		listIDsFn:        func(_ context.Context, _ uint, _ int) ([]uint, error) { return nil, nil },
		countFn:          func(_ context.Context) (int64, error) { return 0, nil },
	}
}

// reactionRepoStub is a stub for repository.ReactionRepository.
type reactionRepoStub struct {
	reactFn       func(context.Context, uint, uint, string) (*repository.ReactionResult, error)
	getForUserFn  func(context.Context, uint, uint) (*models.Reaction, error)
	listByPostFn  func(context.Context, uint, int, int) ([]models.Reaction, error)
	countByKindFn func(context.Context, uint) (models.ReactionCounts, error)
}

func (s *reactionRepoStub) React(ctx context.Context, userID, postID uint, kind string) (*repository.ReactionResult, error) {
	return s.reactFn(ctx, userID, postID, kind)
}
func (s *reactionRepoStub) GetForUser(ctx context.Context, userID, postID uint) (*models.Reaction, error) {
	return s.getForUserFn(ctx, userID, postID)
}
func (s *reactionRepoStub) ListByPost(ctx context.Context, postID uint, limit, offset int) ([]models.Reaction, error) {
	return s.listByPostFn(ctx, postID, limit, offset)
}
func (s *reactionRepoStub) CountByKind(ctx context.Context, postID uint) (models.ReactionCounts, error) {
	return s.countByKindFn(ctx, postID)
}

func noopReactionRepo() *reactionRepoStub {
	return &reactionRepoStub{
		reactFn: func(_ context.Context, _, _ uint, kind string) (*repository.ReactionResult, error) {
			return &repository.ReactionResult{Kind: kind, Created: kind != ""}, nil
		},
		getForUserFn:  func(_ context.Context, _, _ uint) (*models.Reaction, error) { return nil, nil },
		listByPostFn:  func(_ context.Context, _ uint, _, _ int) ([]models.Reaction, error) { return nil, nil },
		countByKindFn: func(_ context.Context, _ uint) (models.ReactionCounts, error) { return models.ReactionCounts{}, nil },
	}
}

// shareRepoStub is a stub for repository.ShareRepository.
type shareRepoStub struct {
	createFn     func(context.Context, *models.Share) (int, error)
	listByPostFn func(context.Context, uint, int, int) ([]models.Share, error)
	countFn      func(context.Context) (int64, error)
}

func (s *shareRepoStub) Create(ctx context.Context, share *models.Share) (int, error) {
	return s.createFn(ctx, share)
}
func (s *shareRepoStub) ListByPost(ctx context.Context, postID uint, limit, offset int) ([]models.Share, error) {
	return s.listByPostFn(ctx, postID, limit, offset)
}
func (s *shareRepoStub) Count(ctx context.Context) (int64, error) {
	return s.countFn(ctx)
}

func noopShareRepo() *shareRepoStub {
	return &shareRepoStub{
		createFn:     func(_ context.Context, _ *models.Share) (int, error) { return 1, nil },
		listByPostFn: func(_ context.Context, _ uint, _, _ int) ([]models.Share, error) { return nil, nil },
		countFn:      func(_ context.Context) (int64, error) { return 0, nil },
	}
}

// notificationRepoStub is a stub for repository.NotificationRepository.
type notificationRepoStub struct {
	createFn      func(context.Context, *models.Notification) error
	listByUserFn  func(context.Context, uint, bool, int, int) ([]models.Notification, error)
	countUnreadFn func(context.Context, uint) (int64, error)
	markReadFn    func(context.Context, uint, uint) error
	markAllReadFn func(context.Context, uint) error
}

func (s *notificationRepoStub) Create(ctx context.Context, n *models.Notification) error {
	return s.createFn(ctx, n)
}
func (s *notificationRepoStub) ListByUser(ctx context.Context, userID uint, unreadOnly bool, limit, offset int) ([]models.Notification, error) {
	return s.listByUserFn(ctx, userID, unreadOnly, limit, offset)
}
func (s *notificationRepoStub) CountUnread(ctx context.Context, userID uint) (int64, error) {
	return s.countUnreadFn(ctx, userID)
}
func (s *notificationRepoStub) MarkRead(ctx context.Context, userID, id uint) error {
	return s.markReadFn(ctx, userID, id)
}
func (s *notificationRepoStub) MarkAllRead(ctx context.Context, userID uint) error {
	return s.markAllReadFn(ctx, userID)
}

func noopNotificationRepo() *notificationRepoStub {
	return &notificationRepoStub{
		createFn: func(_ context.Context, _ *models.Notification) error { return nil },
		listByUserFn: func(_ context.Context, _ uint, _ bool, _, _ int) ([]models.Notification, error) {
			return nil, nil
		},
		countUnreadFn: func(_ context.Context, _ uint) (int64, error) { return 0, nil },
		markReadFn:    func(_ context.Context, _, _ uint) error { return nil },
		markAllReadFn: func(_ context.Context, _ uint) error { return nil },
	}
}

// outboxRepoStub is a stub for repository.OutboxRepository.
type outboxRepoStub struct {
	enqueueFn      func(context.Context, string, interface{}) error
	claimDueFn     func(context.Context, int) ([]models.OutboxTask, error)
	markDoneFn     func(context.Context, uint) error
	markFailedFn   func(context.Context, uint, error, time.Duration) error
	countPendingFn func(context.Context) (int64, error)
}

func (s *outboxRepoStub) Enqueue(ctx context.Context, kind string, payload interface{}) error {
	return s.enqueueFn(ctx, kind, payload)
}
func (s *outboxRepoStub) ClaimDue(ctx context.Context, limit int) ([]models.OutboxTask, error) {
	return s.claimDueFn(ctx, limit)
}
func (s *outboxRepoStub) MarkDone(ctx context.Context, id uint) error {
	return s.markDoneFn(ctx, id)
}
func (s *outboxRepoStub) MarkFailed(ctx context.Context, id uint, taskErr error, backoff time.Duration) error {
	return s.markFailedFn(ctx, id, taskErr, backoff)
}
func (s *outboxRepoStub) CountPending(ctx context.Context) (int64, error) {
	return s.countPendingFn(ctx)
}

func noopOutboxRepo() *outboxRepoStub {
	return &outboxRepoStub{
		enqueueFn:      func(_ context.Context, _ string, _ interface{}) error { return nil },
		claimDueFn:     func(_ context.Context, _ int) ([]models.OutboxTask, error) { return nil, nil },
		markDoneFn:     func(_ context.Context, _ uint) error { return nil },
		markFailedFn:   func(_ context.Context, _ uint, _ error, _ time.Duration) error { return nil },
		countPendingFn: func(_ context.Context) (int64, error) { return 0, nil },
	}
}

// nutritionRepoStub is a stub for repository.NutritionRepository.
type nutritionRepoStub struct {
	createFn         func(context.Context, *models.NutritionEntry) error
	getByIDFn        func(context.Context, uint) (*models.NutritionEntry, error)
	listByUserDateFn func(context.Context, uint, string) ([]models.NutritionEntry, error)
	summaryFn        func(context.Context, uint, string) (*models.NutritionSummary, error)
	updateFn         func(context.Context, *models.NutritionEntry) error
	deleteFn         func(context.Context, uint) error
}

func (s *nutritionRepoStub) Create(ctx context.Context, entry *models.NutritionEntry) error {
	return s.createFn(ctx, entry)
}
func (s *nutritionRepoStub) GetByID(ctx context.Context, id uint) (*models.NutritionEntry, error) {
	return s.getByIDFn(ctx, id)
}
func (s *nutritionRepoStub) ListByUserDate(ctx context.Context, userID uint, date string) ([]models.NutritionEntry, error) {
	return s.listByUserDateFn(ctx, userID, date)
}
func (s *nutritionRepoStub) Summary(ctx context.Context, userID uint, date string) (*models.NutritionSummary, error) {
	return s.summaryFn(ctx, userID, date)
}
func (s *nutritionRepoStub) Update(ctx context.Context, entry *models.NutritionEntry) error {
	return s.updateFn(ctx, entry)
}
func (s *nutritionRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopNutritionRepo() *nutritionRepoStub {
	return &nutritionRepoStub{
		createFn:  func(_ context.Context, _ *models.NutritionEntry) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.NutritionEntry, error) { return &models.NutritionEntry{ID: id}, nil },
		listByUserDateFn: func(_ context.Context, _ uint, _ string) ([]models.NutritionEntry, error) {
			return nil, nil
		},
		summaryFn: func(_ context.Context, _ uint, _ string) (*models.NutritionSummary, error) {
			return &models.NutritionSummary{}, nil
		},
		updateFn: func(_ context.Context, _ *models.NutritionEntry) error { return nil },
		deleteFn: func(_ context.Context, _ uint) error { return nil },
	}
}

func adminAlways(_ context.Context, _ uint) (bool, error) { return true, nil }
func adminNever(_ context.Context, _ uint) (bool, error)  { return false, nil }
