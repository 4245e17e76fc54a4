// Command seed populates the database with fake users and posts for local
// development.
package main

import (
	"flag"
	"log"

	"linguaspace/internal/config"
	"linguaspace/internal/database"
	"linguaspace/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 5, "number of users to create")
	numPosts := flag.Int("posts", 20, "number of posts to create")
	clean := flag.Bool("clean", false, "delete existing users and posts first")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.IsProduction() {
		log.Fatal("Refusing to seed a production database")
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Run(db, seed.Options{
		NumUsers: *numUsers,
		NumPosts: *numPosts,
		Clean:    *clean,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}
