// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"nabta/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by the seeder and by tests.
type Factory struct {
	db   *gorm.DB
	opts Options
	rng  *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	seed := time.Now().UnixNano()
	gofakeit.Seed(seed)
	return &Factory{db: db, opts: opts, rng: rand.New(rand.NewSource(seed))}
}

// CreateUser constructs and persists a sample `models.User`.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		Username: gofakeit.Username() + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		Email:    gofakeit.Email(),
		Bio:      gofakeit.Sentence(10),
		Avatar:   fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
	}

	// Password handling: allow skipping bcrypt in dev fast mode
	if f.opts.SkipBcrypt {
		user.Password = "password123"
	} else {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		user.Password = string(hashedPassword)
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// CreateCircle persists a circle with the creator enrolled as its admin.
func (f *Factory) CreateCircle(creator *models.User, overrides ...func(*models.Circle)) (*models.Circle, error) {
	circle := &models.Circle{
		Name:        gofakeit.HipsterWord() + " " + gofakeit.NounCollectiveThing(),
		Description: gofakeit.Sentence(12),
		Category:    "general",
		Status:      models.CircleStatusActive,
		Members:     1,
		ImageURL:    fmt.Sprintf("https://picsum.photos/seed/%s/600/400", gofakeit.UUID()),
	}

	for _, override := range overrides {
		override(circle)
	}

	err := f.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(circle).Error; err != nil {
			return err
		}
		member := models.CircleMember{
			CircleID: circle.ID,
			UserID:   creator.ID,
			Role:     models.CircleRoleAdmin,
		}
		return tx.Create(&member).Error
	})
	if err != nil {
		return nil, fmt.Errorf("create circle: %w", err)
	}
	return circle, nil
}

// AddMember enrolls a user in a circle and bumps the member counter.
func (f *Factory) AddMember(circle *models.Circle, user *models.User) error {
	member := models.CircleMember{
		CircleID: circle.ID,
		UserID:   user.ID,
		Role:     models.CircleRoleMember,
	}
	err := f.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&member).Error; err != nil {
			return err
		}
		return tx.Model(&models.Circle{}).Where("id = ?", circle.ID).
			UpdateColumn("members", gorm.Expr("members + 1")).Error
	})
	if err != nil {
		return fmt.Errorf("add member: %w", err)
	}
	circle.Members++
	return nil
}

// CreatePost persists a post for the given user, optionally inside a circle.
// CreatedAt is spread over the past weeks so feeds look lived-in.
func (f *Factory) CreatePost(user *models.User, circleID *uint, overrides ...func(*models.Post)) (*models.Post, error) {
	post := &models.Post{
		UserID:   user.ID,
		CircleID: circleID,
		Content:  wellnessSentence(f.rng),
	}

	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 60
	}
	post.CreatedAt = time.Now().
		Add(-time.Duration(f.rng.Intn(maxDays)) * 24 * time.Hour).
		Add(-time.Duration(f.rng.Intn(24)) * time.Hour).
		Add(-time.Duration(f.rng.Intn(60)) * time.Minute)

	if f.rng.Intn(3) == 0 {
		post.MediaURL = fmt.Sprintf("https://picsum.photos/seed/%s/800/800", gofakeit.UUID())
		post.MediaType = "image"
	}

	for _, override := range overrides {
		override(post)
	}

	if err := f.db.Create(post).Error; err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return post, nil
}

// CreateComment persists a comment, optionally replying to a parent.
func (f *Factory) CreateComment(user *models.User, post *models.Post, parentID *uint) (*models.Comment, error) {
	comment := &models.Comment{
		UserID:          user.ID,
		PostID:          post.ID,
		ParentCommentID: parentID,
		Content:         gofakeit.Sentence(f.rng.Intn(10) + 3),
	}
	if err := f.db.Create(comment).Error; err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return comment, nil
}

// CreateReaction persists one reaction of a random kind.
func (f *Factory) CreateReaction(user *models.User, post *models.Post) error {
	kind := models.ReactionKinds[f.rng.Intn(len(models.ReactionKinds))]
	reaction := &models.Reaction{
		UserID: user.ID,
		PostID: post.ID,
		Kind:   kind,
	}
	if err := f.db.Create(reaction).Error; err != nil {
		return fmt.Errorf("create reaction: %w", err)
	}
	return nil
}

// CreateNutritionEntry logs a plausible meal for the user on a recent day.
func (f *Factory) CreateNutritionEntry(user *models.User) (*models.NutritionEntry, error) {
	mealTypes := []string{"breakfast", "lunch", "dinner", "snack"}
	entry := &models.NutritionEntry{
		UserID:   user.ID,
		Date:     time.Now().AddDate(0, 0, -f.rng.Intn(14)).Format("2006-01-02"),
		MealType: mealTypes[f.rng.Intn(len(mealTypes))],
		FoodName: gofakeit.Dinner(),
		Calories: gofakeit.Number(100, 900),
		Protein:  gofakeit.Number(5, 60),
		Carbs:    gofakeit.Number(5, 120),
		Fat:      gofakeit.Number(2, 50),
	}
	if err := f.db.Create(entry).Error; err != nil {
		return nil, fmt.Errorf("create nutrition entry: %w", err)
	}
	return entry, nil
}

var wellnessOpeners = []string{
	"Finished a %d minute walk before work today.",
	"Meal prepped %d lunches for the week.",
	"Day %d of drinking two liters of water.",
	"Managed %d hours of sleep last night and feel great.",
	"Hit %d thousand steps before noon.",
	"Did %d minutes of stretching after my run.",
}

func wellnessSentence(r *rand.Rand) string {
	tpl := wellnessOpeners[r.Intn(len(wellnessOpeners))]
	return fmt.Sprintf(tpl, r.Intn(40)+5) + " " + gofakeit.Sentence(r.Intn(8)+4)
}
