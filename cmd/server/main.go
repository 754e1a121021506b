package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/gracechurch/internal/config"
	"github.com/gracechurch/internal/db"
	"github.com/gracechurch/internal/handler"
	"github.com/gracechurch/internal/router"
	"github.com/gracechurch/internal/service"
)

func main() {
	config.LoadDotEnv()
	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	// 初始化数据库
	if err := db.Init(db.Options{
		Driver: cfg.DatabaseDriver,
		Path:   cfg.DatabasePath,
		DSN:    cfg.DatabaseDSN,
	}); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	if err := db.EnsureUser(cfg.SuperUserEmail, cfg.SuperUserPassword, db.RoleAdmin); err != nil {
		log.Fatalf("failed to ensure super user: %v", err)
	}

	var lister service.FolderLister
	if cfg.DriveAPIKey != "" || cfg.DriveCredentialsFile != "" {
		driveLister, err := service.NewDriveFolderLister(context.Background(), cfg.DriveAPIKey, cfg.DriveCredentialsFile)
		if err != nil {
			log.Printf("[server] google drive disabled: %v", err)
		} else {
			lister = driveLister
		}
	} else {
		log.Printf("[server] google drive not configured, gallery sync disabled")
	}

	// 设置并运行 Gin 服务器
	r := router.SetupRouter(cfg, handler.NewAPI(db.DB, cfg, lister))
	log.Printf("[server] listening on %s", cfg.ListenAddr)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("failed to run server: %v", err)
	}
}
