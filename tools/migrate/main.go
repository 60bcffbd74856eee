package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	_ "github.com/lib/pq"
	_ "github.com/orwa-kh/syria-post-watch/internal/migrations"
	"github.com/orwa-kh/syria-post-watch/pkg/config"
	"github.com/pressly/goose/v3"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: migrate [up|down|status|reset|create <name>]")
	}

	command := os.Args[1]

	// The create command needs special handling
	if command == "create" {
		if len(os.Args) < 3 {
			log.Fatal("Usage: migrate create <name>")
		}
		name := os.Args[2]
		createMigration(name)
		return
	}

	// For all other commands, we need a database connection
	cfg, err := config.New()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatalf("Failed to set dialect: %v", err)
	}

	db, err := sql.Open("postgres",
		fmt.Sprintf("dbname=%s user=%s password=%s host=%s port=%d sslmode=%s ",
			cfg.Postgres.Name, cfg.Postgres.User, cfg.Postgres.Pass, cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.SslMode,
		),
	)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	switch command {
	case "up":
		err = goose.Up(db, ".")
	case "down":
		err = goose.Down(db, ".")
	case "status":
		err = goose.Status(db, ".")
	case "reset":
		err = goose.Reset(db, ".")
	default:
		log.Fatalf("Unknown command: %s", command)
	}

	if err != nil {
		log.Fatalf("Migration command %q failed: %v", command, err)
	}
}

func createMigration(name string) {
	timestamp := time.Now().Format("20060102150405")
	path := fmt.Sprintf("internal/migrations/%s_%s.go", timestamp, name)

	template := `package migrations

import (
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigration(up%[1]s, down%[1]s)
}

func up%[1]s(tx *sql.Tx) error {
	return nil
}

func down%[1]s(tx *sql.Tx) error {
	return nil
}
`

	if err := os.WriteFile(path, []byte(fmt.Sprintf(template, timestamp)), 0o644); err != nil {
		log.Fatalf("Failed to create migration: %v", err)
	}
	fmt.Println("Created migration:", path)
}
