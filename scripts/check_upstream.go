package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"coordinator-portal-backend/internal/config"
	"coordinator-portal-backend/internal/kobo"
)

// Connectivity check for the upstream collection service: fetches every
// configured form and reports record counts. Run before deploys or when the
// dashboard reports upstream failures.
//
//	go run scripts/check_upstream.go
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	client := kobo.NewClient(cfg)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	forms := []struct {
		name string
		id   string
	}{
		{"main", cfg.MainFormID},
		{"change-log", cfg.ChangeLogFormID},
		{"ut3-advanced", cfg.UT3AdvancedFormID},
		{"ut3-early", cfg.UT3EarlyFormID},
		{"ut4-advanced", cfg.UT4AdvancedFormID},
		{"ut4-early", cfg.UT4EarlyFormID},
	}

	failed := false
	for _, form := range forms {
		if form.id == "" {
			fmt.Printf("%-14s SKIP (no form id configured)\n", form.name)
			continue
		}
		records, err := client.FetchSubmissions(ctx, form.id)
		if err != nil {
			failed = true
			fmt.Printf("%-14s FAIL %v\n", form.name, err)
			continue
		}
		fmt.Printf("%-14s OK   %d records\n", form.name, len(records))
	}

	if failed {
		os.Exit(1)
	}
}
