package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// AppConfig 汇总运行服务所需的基础配置。
type AppConfig struct {
	ListenAddr           string
	Port                 string
	DatabaseDriver       string
	DatabasePath         string
	DatabaseDSN          string
	SessionSecret        string
	GinMode              string
	UploadDir            string
	UploadURLPath        string
	SiteBaseURL          string
	SuperUserEmail       string
	SuperUserPassword    string
	DriveAPIKey          string
	DriveCredentialsFile string
	CORSAllowedOrigins   []string
	LoginRateLimit       int
}

// LoadDotEnv 在本地开发时加载 .env 文件，文件不存在时静默跳过。
func LoadDotEnv(paths ...string) {
	if err := godotenv.Load(paths...); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("[config] failed to load .env: %v", err)
		}
	}
}

// Load 从环境变量读取应用配置，并为缺失项提供安全的默认值。
func Load() AppConfig {
	port := env("PORT", "8080")

	listenAddr := env("LISTEN_ADDR", "")
	if listenAddr == "" {
		listenAddr = fmt.Sprintf(":%s", port)
	}

	driver := strings.ToLower(env("DATABASE_DRIVER", "sqlite"))
	if driver != "postgres" {
		driver = "sqlite"
	}

	loginLimit, err := strconv.Atoi(env("LOGIN_RATE_LIMIT", "10"))
	if err != nil || loginLimit <= 0 {
		loginLimit = 10
	}

	return AppConfig{
		ListenAddr:           listenAddr,
		Port:                 port,
		DatabaseDriver:       driver,
		DatabasePath:         env("DATABASE_PATH", "church.db"),
		DatabaseDSN:          env("DATABASE_DSN", ""),
		SessionSecret:        env("SESSION_SECRET", "church-dev-secret"),
		GinMode:              env("GIN_MODE", "release"),
		UploadDir:            env("UPLOAD_DIR", "web/static/uploads"),
		UploadURLPath:        env("UPLOAD_URL_PATH", "/static/uploads"),
		SiteBaseURL:          strings.TrimRight(env("SITE_BASE_URL", "http://localhost:8080"), "/"),
		SuperUserEmail:       env("SUPER_USER_EMAIL", ""),
		SuperUserPassword:    env("SUPER_USER_PASSWORD", ""),
		DriveAPIKey:          env("GOOGLE_DRIVE_API_KEY", ""),
		DriveCredentialsFile: env("GOOGLE_APPLICATION_CREDENTIALS", ""),
		CORSAllowedOrigins:   splitCSV(env("CORS_ALLOWED_ORIGINS", "*")),
		LoginRateLimit:       loginLimit,
	}
}

func env(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func splitCSV(value string) []string {
	raw := strings.Split(value, ",")
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		trimmed := strings.TrimSpace(item)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}
	return out
}
