package main

import (
	"flag"

	"github.com/golang/glog"

	"github.com/gracechurch/internal/config"
	"github.com/gracechurch/internal/content"
	"github.com/gracechurch/internal/db"
	"github.com/gracechurch/internal/service"
)

func main() {
	config.LoadDotEnv()
	cfg := config.Load()

	var (
		driver = flag.String("driver", cfg.DatabaseDriver, "database driver: sqlite or postgres")
		dbPath = flag.String("db", cfg.DatabasePath, "sqlite db path")
		dsn    = flag.String("dsn", cfg.DatabaseDSN, "postgres dsn")
		page   = flag.String("page", content.PageHome, "page to seed when it has no sections")
	)
	flag.Parse()
	defer glog.Flush()

	if err := db.Init(db.Options{Driver: *driver, Path: *dbPath, DSN: *dsn}); err != nil {
		glog.Fatalf("init db: %v", err)
	}

	created, err := service.NewSectionService(db.DB).SeedPage(*page, service.DefaultHomeSections())
	if err != nil {
		glog.Fatalf("seed page %s: %v", *page, err)
	}
	if created == 0 {
		glog.Infof("page %s already has sections, nothing to do", *page)
		return
	}
	glog.Infof("seeded %d sections on page %s", created, *page)
}
