package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/golang/glog"

	"github.com/gracechurch/internal/config"
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
	)
	flag.Parse()
	defer glog.Flush()

	gdb, err := db.Open(db.Options{Driver: *driver, Path: *dbPath, DSN: *dsn})
	if err != nil {
		glog.Fatalf("open db: %v", err)
	}

	drift, err := service.NewSectionService(gdb).FindDrift()
	if err != nil {
		glog.Fatalf("check sections: %v", err)
	}
	for _, item := range drift {
		fmt.Printf("%s\t%s\t%s\t%s\n", item.Page, item.Kind, item.ID, item.Reason)
	}
	glog.Infof("%d sections drift from their kind", len(drift))
	if len(drift) > 0 {
		glog.Flush()
		os.Exit(1)
	}
}
