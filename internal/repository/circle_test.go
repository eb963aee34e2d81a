package repository

import (
	"context"
	"testing"

	"nabta/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCircleRepository_CreateSeedsCreatorAsAdmin(t *testing.T) {
	db := newTestDB(t)
	repo := NewCircleRepository(db)
	ctx := context.Background()

	creator := createUser(t, db)
	circle := &models.Circle{Name: "Mindful Eating", NameAr: "الأكل الواعي", Category: "nutrition"}
	require.NoError(t, repo.Create(ctx, circle, creator.ID))

	got, err := repo.GetByID(ctx, circle.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Members)
	assert.Equal(t, []uint{creator.ID}, got.MemberIDs)
	assert.Equal(t, []uint{creator.ID}, got.AdminIDs)
	assert.Equal(t, models.CircleStatusActive, got.Status)

	isAdmin, err := repo.IsCircleAdmin(ctx, circle.ID, creator.ID)
	require.NoError(t, err)
	assert.True(t, isAdmin)
}

func TestCircleRepository_JoinLeaveMovesCounter(t *testing.T) {
	db := newTestDB(t)
	repo := NewCircleRepository(db)
	ctx := context.Background()

	creator := createUser(t, db)
	member := createUser(t, db)
	circle := &models.Circle{Name: "Evening Yoga"}
	require.NoError(t, repo.Create(ctx, circle, creator.ID))

	joined, err := repo.Join(ctx, circle.ID, member.ID)
	require.NoError(t, err)
	assert.True(t, joined)

	// Double join is a no-op: row absorbed by the unique index, counter
	// untouched.
	joined, err = repo.Join(ctx, circle.ID, member.ID)
	require.NoError(t, err)
	assert.False(t, joined)

	got, err := repo.GetByID(ctx, circle.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Members)
	assert.EqualValues(t, 2, tableCount(t, db, &models.CircleMember{}, "circle_id = ?", circle.ID))

	left, err := repo.Leave(ctx, circle.ID, member.ID)
	require.NoError(t, err)
	assert.True(t, left)

	left, err = repo.Leave(ctx, circle.ID, member.ID)
	require.NoError(t, err)
	assert.False(t, left)

	got, err = repo.GetByID(ctx, circle.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Members)
}

func TestCircleRepository_JoinMissingCircle(t *testing.T) {
	db := newTestDB(t)
	repo := NewCircleRepository(db)
	user := createUser(t, db)

	_, err := repo.Join(context.Background(), 777, user.ID)
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestCircleRepository_ListFiltersInactive(t *testing.T) {
	db := newTestDB(t)
	repo := NewCircleRepository(db)
	ctx := context.Background()

	creator := createUser(t, db)
	active := &models.Circle{Name: "Active", Category: "fitness"}
	require.NoError(t, repo.Create(ctx, active, creator.ID))
	hidden := &models.Circle{Name: "Hidden", Category: "fitness", Status: models.CircleStatusInactive}
	require.NoError(t, repo.Create(ctx, hidden, creator.ID))

	circles, err := repo.List(ctx, "fitness", 10, 0)
	require.NoError(t, err)
	require.Len(t, circles, 1)
	assert.Equal(t, "Active", circles[0].Name)
}

func TestCircleRepository_SetMemberCount(t *testing.T) {
	db := newTestDB(t)
	repo := NewCircleRepository(db)
	ctx := context.Background()

	creator := createUser(t, db)
	circle := &models.Circle{Name: "Drifted"}
	require.NoError(t, repo.Create(ctx, circle, creator.ID))

	// Simulate drift.
	require.NoError(t, db.Model(&models.Circle{}).Where("id = ?", circle.ID).Update("members", 40).Error)

	count, err := repo.CountMembers(ctx, circle.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	require.NoError(t, repo.SetMemberCount(ctx, circle.ID, int(count)))

	got, err := repo.GetByID(ctx, circle.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Members)
}

func TestCircleRepository_ListIDsPages(t *testing.T) {
	db := newTestDB(t)
	repo := NewCircleRepository(db)
	ctx := context.Background()

	creator := createUser(t, db)
	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Create(ctx, &models.Circle{Name: "c"}, creator.ID))
	}

	var all []uint
	var after uint
	for {
		page, err := repo.ListIDs(ctx, after, 2)
		require.NoError(t, err)
		if len(page) == 0 {
			break
		}
		all = append(all, page...)
		after = page[len(page)-1]
	}
	assert.Len(t, all, 5)
}
