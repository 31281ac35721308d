// Command main runs the database seeder for Babel.
package main

import (
	"flag"
	"log"

	"babel/internal/config"
	"babel/internal/database"
	"babel/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 25, "Number of users to create")
	friendDensity := flag.Float64("friends", 0.15, "Probability any user pair becomes friends")
	pendingDensity := flag.Float64("pending", 0.05, "Probability of a pending request between non-friends")
	password := flag.String("password", "secret1", "Login password for all seeded accounts")
	flag.Parse()

	log.Println("Database Seeder")
	log.Printf("Target: %d users, friend density %.2f, pending density %.2f\n",
		*numUsers, *friendDensity, *pendingDensity)

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

	seeder, err := seed.NewSeeder(db, seed.Options{
		Users:          *numUsers,
		FriendDensity:  *friendDensity,
		PendingDensity: *pendingDensity,
		Password:       *password,
	})
	if err != nil {
		log.Fatalf("Failed to create seeder: %v", err)
	}

	if err := seeder.Run(); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
	log.Println("Done. Log in to any seeded account with the chosen password.")
}
