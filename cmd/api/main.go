package main

import (
	"context"
	"log"
	"os"
	"path/filepath"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"remarkcrm/internal/config"
	"remarkcrm/internal/database"
	"remarkcrm/internal/middleware"
	"remarkcrm/internal/modules/importer"
	"remarkcrm/internal/modules/leads"
	"remarkcrm/internal/modules/prefs"
	"remarkcrm/internal/modules/stats"
	"remarkcrm/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	loc, err := cfg.Location()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal(err)
	}

	leadRepo := repository.NewLeadRepository(db)
	leadService := leads.NewService(leadRepo, loc)
	importService := importer.NewService(leadService)
	statsService := stats.NewService(leadService, loc)
	prefsService := prefs.NewService(prefs.NewFileStore(cfg.DataDir), leadService)

	bootstrap(context.Background(), cfg, leadService, importService)

	r := gin.New()
	r.Use(middleware.RequestLogger(), gin.Recovery(), cors.Default())

	v1 := r.Group("/api/v1")
	{
		leads.NewHandler(leadService).RegisterRoutes(v1)
		importer.NewHandler(importService, leadService, cfg.SeedWorkbook).RegisterRoutes(v1)
		stats.NewHandler(statsService).RegisterRoutes(v1)
		prefs.NewHandler(prefsService).RegisterRoutes(v1)
	}

	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal(err)
	}
}

// bootstrap runs the startup data passes: one-time seed of an empty
// store, one-shot merge of files dropped into the data dir, then a
// duplicate cleanup. The run-once state lives here in the caller; the
// services stay stateless per call. Failures are logged and the server
// starts anyway.
func bootstrap(ctx context.Context, cfg *config.Config, leadService *leads.Service, importService *importer.Service) {
	if res, err := importService.SeedFromWorkbook(ctx, cfg.SeedWorkbook); err != nil {
		log.Printf("seed import failed: %v", err)
	} else if res.Imported > 0 {
		log.Printf("seeded %d leads from %s (skipped %d)", res.Imported, cfg.SeedWorkbook, res.Skipped())
	}

	if cfg.AutoImport {
		for _, name := range []string{"leads.xlsx", "leads.csv"} {
			path := filepath.Join(cfg.DataDir, name)
			if _, err := os.Stat(path); err != nil {
				continue
			}
			res, err := importService.ImportFile(ctx, path)
			if err != nil {
				log.Printf("auto-import of %s failed: %v", path, err)
				continue
			}
			log.Printf("auto-import %s: imported=%d skipped=%d (missing name %d, duplicates %d)",
				name, res.Imported, res.Skipped(), res.SkippedMissingName, res.SkippedDuplicates)
		}
	}

	if removed, err := leadService.RemoveDuplicates(ctx); err != nil {
		log.Printf("duplicate cleanup failed: %v", err)
	} else if removed > 0 {
		log.Printf("duplicate cleanup removed %d leads", removed)
	}
}
