package seed

import (
	"fmt"
	"log"

	"nabta/internal/models"

	"gorm.io/gorm"
)

// Options configures a seeding run.
type Options struct {
	NumUsers   int
	NumPosts   int
	SkipBcrypt bool
	// MaxDays spreads post timestamps over the past N days.
	MaxDays int
}

// builtinCircle describes one of the default circles created on every seed
// run. Names and categories carry both languages the product serves.
type builtinCircle struct {
	Name, NameAr         string
	Category, CategoryAr string
	Description          string
}

var builtinCircles = []builtinCircle{
	{"Morning Runners", "عداؤو الصباح", "fitness", "لياقة", "We lace up before sunrise and share our routes."},
	{"Mindful Eating", "الأكل الواعي", "nutrition", "تغذية", "Recipes, meal prep, and honest food talk."},
	{"Sleep Better", "نوم أفضل", "rest", "راحة", "Habits and routines for deeper sleep."},
	{"Home Yoga", "يوغا المنزل", "fitness", "لياقة", "Daily flows you can do in your living room."},
	{"Quit Sugar", "الإقلاع عن السكر", "nutrition", "تغذية", "Support for cutting down on sweets, one week at a time."},
	{"Walk It Off", "امشها", "fitness", "لياقة", "Step challenges and walking buddies."},
}

// Seeder orchestrates full database seeding runs.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

// NewSeeder creates a Seeder over the given database.
func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	return &Seeder{db: db, factory: NewFactory(db, opts)}
}

// ClearAll removes all seedable data. Table order respects foreign keys.
func (s *Seeder) ClearAll() error {
	tables := []any{
		&models.OutboxTask{},
		&models.Notification{},
		&models.NutritionEntry{},
		&models.Reaction{},
		&models.Share{},
		&models.CommentLike{},
		&models.Comment{},
		&models.Like{},
		&models.Post{},
		&models.CircleMember{},
		&models.Circle{},
		&models.User{},
	}
	for _, table := range tables {
		if err := s.db.Unscoped().Where("1 = 1").Delete(table).Error; err != nil {
			return fmt.Errorf("clear table %T: %w", table, err)
		}
	}
	log.Println("database cleared")
	return nil
}

// Run populates the database with a connected mesh of users, circles,
// posts, and interactions, then reconciles the denormalized counters.
func (s *Seeder) Run(opts Options) error {
	if opts.NumUsers <= 0 {
		opts.NumUsers = 50
	}
	if opts.NumPosts <= 0 {
		opts.NumPosts = 200
	}

	users := make([]*models.User, 0, opts.NumUsers)

	admin, err := s.factory.CreateUser(func(u *models.User) {
		u.Username = "admin"
		u.Email = "admin@nabta.dev"
		u.IsAdmin = true
	})
	if err != nil {
		return err
	}
	users = append(users, admin)

	for i := 1; i < opts.NumUsers; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			return err
		}
		users = append(users, user)
	}
	log.Printf("seeded %d users", len(users))

	// Built-in circles, each founded by a random user.
	circles := make([]*models.Circle, 0, len(builtinCircles))
	for _, bc := range builtinCircles {
		founder := users[s.factory.rng.Intn(len(users))]
		circle, err := s.factory.CreateCircle(founder, func(c *models.Circle) {
			c.Name = bc.Name
			c.NameAr = bc.NameAr
			c.Category = bc.Category
			c.CategoryAr = bc.CategoryAr
			c.Description = bc.Description
		})
		if err != nil {
			return err
		}

		// Enroll a slice of the user base, skipping the founder.
		for _, user := range users {
			if user.ID == founder.ID || s.factory.rng.Intn(3) != 0 {
				continue
			}
			if err := s.factory.AddMember(circle, user); err != nil {
				return err
			}
		}
		circles = append(circles, circle)
	}
	log.Printf("seeded %d circles", len(circles))

	// Posts: roughly half inside circles, half on the open feed.
	posts := make([]*models.Post, 0, opts.NumPosts)
	for i := 0; i < opts.NumPosts; i++ {
		author := users[s.factory.rng.Intn(len(users))]
		var circleID *uint
		if s.factory.rng.Intn(2) == 0 {
			circle := circles[s.factory.rng.Intn(len(circles))]
			circleID = &circle.ID
		}
		post, err := s.factory.CreatePost(author, circleID)
		if err != nil {
			return err
		}
		posts = append(posts, post)
	}
	log.Printf("seeded %d posts", len(posts))

	// Interactions: comments with occasional replies, plus reactions.
	for _, post := range posts {
		var lastComment *models.Comment
		for i := 0; i < s.factory.rng.Intn(4); i++ {
			commenter := users[s.factory.rng.Intn(len(users))]
			var parentID *uint
			if lastComment != nil && s.factory.rng.Intn(3) == 0 {
				parentID = &lastComment.ID
			}
			comment, err := s.factory.CreateComment(commenter, post, parentID)
			if err != nil {
				return err
			}
			lastComment = comment
		}

		seen := map[uint]bool{}
		for i := 0; i < s.factory.rng.Intn(6); i++ {
			reactor := users[s.factory.rng.Intn(len(users))]
			if seen[reactor.ID] {
				continue
			}
			seen[reactor.ID] = true
			if err := s.factory.CreateReaction(reactor, post); err != nil {
				return err
			}
		}
	}

	// Nutrition diaries for a third of the users.
	for _, user := range users {
		if s.factory.rng.Intn(3) != 0 {
			continue
		}
		for i := 0; i < s.factory.rng.Intn(10)+3; i++ {
			if _, err := s.factory.CreateNutritionEntry(user); err != nil {
				return err
			}
		}
	}

	if err := s.reconcileCounters(); err != nil {
		return err
	}

	log.Println("seeding complete")
	return nil
}

// reconcileCounters recomputes the denormalized counters that direct table
// writes above bypassed.
func (s *Seeder) reconcileCounters() error {
	steps := []string{
		`UPDATE posts SET comments = (SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id AND comments.deleted_at IS NULL)`,
		`UPDATE posts SET reaction_like = (SELECT COUNT(*) FROM reactions WHERE reactions.post_id = posts.id AND reactions.kind = 'like')`,
		`UPDATE posts SET reaction_laugh = (SELECT COUNT(*) FROM reactions WHERE reactions.post_id = posts.id AND reactions.kind = 'laugh')`,
		`UPDATE posts SET reaction_wow = (SELECT COUNT(*) FROM reactions WHERE reactions.post_id = posts.id AND reactions.kind = 'wow')`,
		`UPDATE posts SET reaction_sad = (SELECT COUNT(*) FROM reactions WHERE reactions.post_id = posts.id AND reactions.kind = 'sad')`,
		`UPDATE posts SET reaction_angry = (SELECT COUNT(*) FROM reactions WHERE reactions.post_id = posts.id AND reactions.kind = 'angry')`,
		`UPDATE posts SET reaction_support = (SELECT COUNT(*) FROM reactions WHERE reactions.post_id = posts.id AND reactions.kind = 'support')`,
		`UPDATE users SET post_count = (SELECT COUNT(*) FROM posts WHERE posts.user_id = users.id AND posts.deleted_at IS NULL)`,
		`UPDATE circles SET posts = (SELECT COUNT(*) FROM posts WHERE posts.circle_id = circles.id AND posts.deleted_at IS NULL)`,
		`UPDATE circles SET members = (SELECT COUNT(*) FROM circle_members WHERE circle_members.circle_id = circles.id)`,
	}
	for _, stmt := range steps {
		if err := s.db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("reconcile counters: %w", err)
		}
	}
	return nil
}
