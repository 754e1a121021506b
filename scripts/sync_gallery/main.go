package main

import (
	"context"
	"flag"
	"time"

	"github.com/golang/glog"

	"github.com/gracechurch/internal/config"
	"github.com/gracechurch/internal/db"
	"github.com/gracechurch/internal/service"
)

func main() {
	config.LoadDotEnv()
	cfg := config.Load()

	var (
		driver      = flag.String("driver", cfg.DatabaseDriver, "database driver: sqlite or postgres")
		dbPath      = flag.String("db", cfg.DatabasePath, "sqlite db path")
		dsn         = flag.String("dsn", cfg.DatabaseDSN, "postgres dsn")
		apiKey      = flag.String("api-key", cfg.DriveAPIKey, "google drive api key")
		credentials = flag.String("credentials", cfg.DriveCredentialsFile, "service account credentials file")
		folderID    = flag.String("folder", "", "google drive folder id")
		eventID     = flag.Uint("event", 0, "gallery event id")
		timeout     = flag.Duration("timeout", 2*time.Minute, "overall timeout")
	)
	flag.Parse()
	defer glog.Flush()

	if err := db.Init(db.Options{Driver: *driver, Path: *dbPath, DSN: *dsn}); err != nil {
		glog.Fatalf("init db: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	lister, err := service.NewDriveFolderLister(ctx, *apiKey, *credentials)
	if err != nil {
		glog.Fatalf("create drive client: %v", err)
	}

	syncer := service.NewGallerySyncService(service.NewGalleryService(db.DB), lister)
	result, err := syncer.Sync(ctx, *folderID, uint(*eventID))
	if err != nil {
		glog.Fatalf("sync folder %s into event %d: %v", *folderID, *eventID, err)
	}
	glog.Infof("event %d now has %d photos (added %d, removed %d, renamed %d)",
		result.EventID, len(result.Photos), result.Added, result.Removed, result.Renamed)
}
