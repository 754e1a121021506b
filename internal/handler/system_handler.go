package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gracechurch/internal/service"
	"github.com/gracechurch/internal/view"
)

// HealthCheck 提供监控系统使用的健康检查端点。
func (a *API) HealthCheck(c *gin.Context) {
	sqlDB, err := a.db.DB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "database handle unavailable",
		})
		return
	}

	if err := sqlDB.PingContext(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "error",
			"message": "database unreachable",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"database": "up",
	})
}

// ShowSystemSettings 渲染站点设置页面。
func (a *API) ShowSystemSettings(c *gin.Context) {
	settings, err := a.system.GetSettings()
	if err != nil {
		log.Printf("[settings] load failed: %v", err)
		c.Error(err)
	}
	a.renderAdmin(c, http.StatusOK, "settings", "사이트 설정", errorMessage(err, "설정을 불러오지 못했습니다."), view.AdminSettings(settings))
}

// UpdateSystemSettings 保存站点名称、副标题与页脚。
func (a *API) UpdateSystemSettings(c *gin.Context) {
	_, err := a.system.UpdateSettings(service.SystemSettingsInput{
		SiteName:    c.PostForm("site_name"),
		SiteTagline: c.PostForm("site_tagline"),
		FooterText:  c.PostForm("footer_text"),
	})
	if err != nil {
		log.Printf("[settings] update failed: %v", err)
		addFlash(c, flashError, "설정을 저장하지 못했습니다.")
	} else {
		addFlash(c, flashInfo, "설정을 저장했습니다.")
	}
	c.Redirect(http.StatusFound, "/admin/settings")
}
