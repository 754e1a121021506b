package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

// wrapHTTPMiddleware 把 net/http 风格的中间件挂到 gin 上。
// 中间件未调用 next 时（限流、预检请求）终止后续处理。
func wrapHTTPMiddleware(mw func(http.Handler) http.Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		passed := false
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			passed = true
			c.Request = r
			c.Next()
		})
		mw(next).ServeHTTP(c.Writer, c.Request)
		if !passed {
			c.Abort()
		}
	}
}

// PublicCORS 允许外部站点读取公开的区块 JSON。
func (a *API) PublicCORS() gin.HandlerFunc {
	origins := a.cfg.CORSAllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return wrapHTTPMiddleware(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
}

// LoginRateLimit 按 IP 限制登录尝试次数。
func (a *API) LoginRateLimit() gin.HandlerFunc {
	limit := a.cfg.LoginRateLimit
	if limit <= 0 {
		limit = 10
	}
	return wrapHTTPMiddleware(httprate.LimitByIP(limit, time.Minute))
}

// SyncRateLimit 限制 Drive 同步频率，避免耗尽 API 配额。
func (a *API) SyncRateLimit() gin.HandlerFunc {
	return wrapHTTPMiddleware(httprate.LimitByIP(6, time.Minute))
}

// Preflight 为 CORS 预检请求提供一个空路由。
func Preflight(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
