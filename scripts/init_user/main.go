package main

import (
	"flag"

	"github.com/golang/glog"

	"github.com/gracechurch/internal/config"
	"github.com/gracechurch/internal/db"
	"github.com/gracechurch/internal/service"
)

func main() {
	config.LoadDotEnv()
	cfg := config.Load()

	var (
		driver   = flag.String("driver", cfg.DatabaseDriver, "database driver: sqlite or postgres")
		dbPath   = flag.String("db", cfg.DatabasePath, "sqlite db path")
		dsn      = flag.String("dsn", cfg.DatabaseDSN, "postgres dsn")
		email    = flag.String("email", "", "login email")
		password = flag.String("password", "", "login password, at least 8 characters")
		role     = flag.String("role", db.RoleEditor, "admin, editor or viewer")
	)
	flag.Parse()
	defer glog.Flush()

	if err := db.Init(db.Options{Driver: *driver, Path: *dbPath, DSN: *dsn}); err != nil {
		glog.Fatalf("init db: %v", err)
	}

	user, err := service.NewUserService(db.DB).Upsert(service.UserInput{
		Email:    *email,
		Password: *password,
		Role:     *role,
	})
	if err != nil {
		glog.Fatalf("save user %s: %v", *email, err)
	}
	glog.Infof("user %s saved with role %s", user.Email, user.Role)
}
