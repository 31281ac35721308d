// Command migrate runs schema operations for the backend.
package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"babel/internal/config"
	"babel/internal/database"
	"babel/internal/models"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func usage() error {
	return fmt.Errorf("usage: go run ./cmd/migrate/main.go <auto|status>")
}

func run() error {
	flag.Parse()
	if flag.NArg() < 1 {
		return usage()
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := database.ConnectWithOptions(cfg, database.ConnectOptions{ApplySchema: false})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(flag.Arg(0))) {
	case "auto":
		if err := database.Migrate(db); err != nil {
			return fmt.Errorf("schema apply failed: %w", err)
		}
		log.Println("schema applied")
	case "status":
		migrator := db.Migrator()
		for _, m := range []interface{ TableName() string }{
			models.FriendRequest{},
			models.FriendEdge{},
		} {
			log.Printf("table %s present=%t", m.TableName(), migrator.HasTable(m.TableName()))
		}
		log.Printf("table users present=%t", migrator.HasTable(&models.User{}))
	default:
		return usage()
	}

	return nil
}
