// Command seed populates the database with demo content.
package main

import (
	"context"
	"flag"
	"log"

	"echos/internal/config"
	"echos/internal/database"
	"echos/internal/seed"
)

func main() {
	users := flag.Int("users", seed.DefaultOptions.NumUsers, "number of demo users to create")
	posts := flag.Int("posts", seed.DefaultOptions.NumPosts, "number of demo posts to create")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	ctx := context.Background()
	if err := seed.EnsureDefaults(ctx, db); err != nil {
		log.Fatalf("Failed to seed defaults: %v", err)
	}

	opts := seed.DefaultOptions
	opts.NumUsers = *users
	opts.NumPosts = *posts

	if err := seed.NewFactory(db, opts).Run(ctx); err != nil {
		log.Fatalf("Failed to seed demo data: %v", err)
	}

	log.Println("Seeding complete")
}
