package handler

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	g "github.com/maragudk/gomponents"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

func bindJSON(c *gin.Context, dst interface{}, message string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, message)
		return false
	}
	return true
}

func parseUintParam(c *gin.Context, key string) (uint, error) {
	raw := c.Param(key)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return uint(id), nil
}

// parseUintValue 解析表单或查询参数中的正整数，空值与非法值返回 0。
func parseUintValue(raw string) uint {
	parsed, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 32)
	if err != nil {
		return 0
	}
	return uint(parsed)
}

// render 输出 gomponents 节点。
func render(c *gin.Context, status int, node g.Node) {
	c.Status(status)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := node.Render(c.Writer); err != nil {
		log.Printf("[handler] render %s failed: %v", c.Request.URL.Path, err)
		c.Error(err)
	}
}

const (
	flashInfo  = "info"
	flashError = "error"
)

func addFlash(c *gin.Context, kind, message string) {
	session := sessions.Default(c)
	session.AddFlash(message, kind)
	if err := session.Save(); err != nil {
		log.Printf("[handler] save flash failed: %v", err)
	}
}

// takeFlashes 读取并清空会话中的提示消息。
func takeFlashes(c *gin.Context) (infos []string, errs []string) {
	session := sessions.Default(c)
	for _, value := range session.Flashes(flashInfo) {
		if text, ok := value.(string); ok {
			infos = append(infos, text)
		}
	}
	for _, value := range session.Flashes(flashError) {
		if text, ok := value.(string); ok {
			errs = append(errs, text)
		}
	}
	if len(infos) > 0 || len(errs) > 0 {
		if err := session.Save(); err != nil {
			log.Printf("[handler] clear flashes failed: %v", err)
		}
	}
	return infos, errs
}

func isAPIRequest(c *gin.Context) bool {
	path := c.Request.URL.Path
	return strings.HasPrefix(path, "/admin/api/") || path == "/admin/api" || strings.HasPrefix(path, "/api/")
}
