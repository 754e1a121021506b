package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/gracechurch/internal/config"
	"github.com/gracechurch/internal/content"
	"github.com/gracechurch/internal/service"
	"github.com/gracechurch/internal/view"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db       *gorm.DB
	cfg      config.AppConfig
	sections *service.SectionService
	gallery  *service.GalleryService
	sync     *service.GallerySyncService
	pages    *service.PageService
	users    *service.UserService
	system   *service.SystemSettingService
	sitemap  *service.SitemapService
	uploads  *service.UploadService
}

const siteSettingsContextKey = "__site_settings"

// NewAPI constructs a handler set with shared services.
// lister 为 nil 时相册同步返回 502，其余功能不受影响。
func NewAPI(gdb *gorm.DB, cfg config.AppConfig, lister service.FolderLister) *API {
	gallery := service.NewGalleryService(gdb)
	pages := service.NewPageService(gdb)

	return &API{
		db:       gdb,
		cfg:      cfg,
		sections: service.NewSectionService(gdb),
		gallery:  gallery,
		sync:     service.NewGallerySyncService(gallery, lister),
		pages:    pages,
		users:    service.NewUserService(gdb),
		system:   service.NewSystemSettingService(gdb),
		sitemap:  service.NewSitemapService(pages),
		uploads:  service.NewUploadService(cfg.UploadDir, cfg.UploadURLPath),
	}
}

// DB exposes the underlying gorm instance.
func (a *API) DB() *gorm.DB {
	return a.db
}

func (a *API) siteSettings(c *gin.Context) service.SystemSettings {
	if cached, exists := c.Get(siteSettingsContextKey); exists {
		if settings, ok := cached.(service.SystemSettings); ok {
			return settings
		}
	}

	settings, err := a.system.GetSettings()
	if err != nil {
		c.Error(err)
	}
	settings.SiteName = strings.TrimSpace(settings.SiteName)
	if settings.SiteName == "" {
		settings.SiteName = content.DefaultChurchName
	}

	c.Set(siteSettingsContextKey, settings)
	return settings
}

// siteProps 组装公开页面外框需要的站点信息与导航。
func (a *API) siteProps(c *gin.Context) view.SiteProps {
	settings := a.siteSettings(c)
	pref := a.requestLocale(c)

	return view.SiteProps{
		Name:     settings.SiteName,
		Tagline:  settings.SiteTagline,
		Footer:   settings.FooterText,
		Language: pref.Language,
		HTMLLang: pref.HTMLLang,
		Nav:      navigation(pref.Language),
		Current:  c.Request.URL.Path,
		Switch:   buildLanguageSwitch(c),
	}
}
