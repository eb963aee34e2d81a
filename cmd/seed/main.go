// Command seed populates the database with development fixtures.
package main

import (
	"flag"
	"log"

	"nabta/internal/config"
	"nabta/internal/database"
	"nabta/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 50, "number of users to create")
	numPosts := flag.Int("posts", 200, "number of posts to create")
	shouldClean := flag.Bool("clean", true, "clear existing data before seeding")
	days := flag.Int("days", 60, "spread post timestamps over this many days")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("failed to migrate schema: %v", err)
	}

	opts := seed.Options{
		NumUsers: *numUsers,
		NumPosts: *numPosts,
		MaxDays:  *days,
	}
	s := seed.NewSeeder(db, opts)

	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("cleanup failed: %v", err)
		}
	}

	if err := s.Run(opts); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}

	log.Printf("seeded %d users and %d posts; every account uses the password password123", *numUsers, *numPosts)
}
