package router

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"github.com/gracechurch/internal/config"
	"github.com/gracechurch/internal/handler"
)

const sessionName = "gracechurch_session"

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(cfg config.AppConfig, api *handler.API) *gin.Engine {
	r := gin.Default()
	r.MaxMultipartMemory = 32 << 20

	// 配置会话中间件
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   7 * 24 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(sessionName, store))
	r.Use(api.SessionContext())

	// 静态文件服务
	r.Static("/static", "./web/static")

	r.GET("/healthz", api.HealthCheck)
	r.GET("/sitemap.xml", api.Sitemap)

	public := r.Group("")
	public.Use(api.LocaleMiddleware())
	{
		api.RegisterPublicRoutes(public)
		public.GET("/pages/:slug", api.ShowDynamicPage)
		public.GET("/gallery", api.ShowGalleryIndex)
		public.GET("/gallery/:categoryID", api.ShowGalleryCategory)
		public.GET("/gallery/events/:eventID", api.ShowGalleryEvent)
	}

	publicAPI := r.Group("/api")
	publicAPI.Use(api.PublicCORS())
	{
		publicAPI.GET("/pages/:page/sections", api.PageSectionsJSON)
		publicAPI.OPTIONS("/pages/:page/sections", handler.Preflight)
	}

	// 后台管理路由
	syncLimit := api.SyncRateLimit()

	admin := r.Group("/admin")
	{
		admin.GET("/login", api.ShowLogin)
		admin.POST("/login", api.LoginRateLimit(), api.Login)
		admin.POST("/logout", api.Logout)

		// 需要认证的后台路由
		auth := admin.Group("")
		auth.Use(api.AuthRequired())
		{
			auth.GET("", api.ShowDashboard)

			auth.GET("/sections/:category", api.ShowSectionList)
			auth.POST("/sections/:category", api.CreateSection)
			auth.GET("/sections/:category/new", api.ShowNewSection)
			auth.GET("/sections/:category/:id/edit", api.ShowEditSection)
			auth.POST("/sections/:category/:id", api.UpdateSection)
			auth.POST("/sections/:category/:id/move", api.MoveSection)
			auth.POST("/sections/:category/:id/delete", api.DeleteSection)

			auth.GET("/gallery", api.ShowAdminGallery)
			auth.POST("/gallery/categories", api.CreateGalleryCategory)
			auth.POST("/gallery/categories/:id", api.UpdateGalleryCategory)
			auth.POST("/gallery/categories/:id/delete", api.DeleteGalleryCategory)
			auth.POST("/gallery/events", api.CreateGalleryEvent)
			auth.GET("/gallery/events/:id", api.ShowAdminGalleryEvent)
			auth.POST("/gallery/events/:id", api.UpdateGalleryEvent)
			auth.POST("/gallery/events/:id/delete", api.DeleteGalleryEvent)
			auth.POST("/gallery/events/:id/sync", syncLimit, api.SyncGalleryEvent)
			auth.POST("/gallery/events/:id/photos", api.AddGalleryPhoto)
			auth.POST("/gallery/events/:id/photos/:photoID/delete", api.DeleteGalleryPhoto)

			auth.GET("/pages", api.ShowAdminPages)
			auth.POST("/pages", api.SavePage)
			auth.POST("/pages/:slug/delete", api.DeletePage)

			auth.GET("/settings", api.ShowSystemSettings)
			auth.POST("/settings", api.UpdateSystemSettings)

			// API路由
			apiGroup := auth.Group("/api")
			{
				apiGroup.GET("/sections", api.ListSectionsJSON)
				apiGroup.POST("/sections", api.CreateSectionJSON)
				apiGroup.PUT("/sections/order", api.UpdateSectionOrderJSON)
				apiGroup.GET("/sections/:id", api.GetSectionJSON)
				apiGroup.PUT("/sections/:id", api.UpdateSectionJSON)
				apiGroup.DELETE("/sections/:id", api.DeleteSectionJSON)
				apiGroup.POST("/sections/:id/move", api.MoveSectionJSON)

				apiGroup.GET("/gallery/sync", syncLimit, api.SyncGalleryJSON)
				apiGroup.POST("/gallery/sync", syncLimit, api.SyncGalleryJSON)

				apiGroup.POST("/upload", api.UploadImages)
			}
		}
	}

	r.NoRoute(api.LocaleMiddleware(), api.NotFound)

	return r
}
