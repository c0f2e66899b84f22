package main

import (
	"context"
	"flag"
	"log"

	"github.com/joho/godotenv"

	"remarkcrm/internal/config"
	"remarkcrm/internal/database"
	"remarkcrm/internal/modules/importer"
	"remarkcrm/internal/modules/leads"
	"remarkcrm/internal/repository"
)

// Seeds an empty lead store from the fixed-schema workbook. Safe to run
// repeatedly: a populated store makes it a no-op.
func main() {
	_ = godotenv.Load()

	workbook := flag.String("workbook", "", "path to the seed workbook (default: SEED_WORKBOOK)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	loc, err := cfg.Location()
	if err != nil {
		log.Fatal(err)
	}
	path := *workbook
	if path == "" {
		path = cfg.SeedWorkbook
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	leadService := leads.NewService(repository.NewLeadRepository(db), loc)
	importService := importer.NewService(leadService)

	res, err := importService.SeedFromWorkbook(context.Background(), path)
	if err != nil {
		log.Fatal("Seed import failed:", err)
	}

	log.Printf("seed complete: imported=%d skipped=%d (missing name %d, duplicates %d)",
		res.Imported, res.Skipped(), res.SkippedMissingName, res.SkippedDuplicates)
}
