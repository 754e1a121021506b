package handler

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/gracechurch/internal/db"
	"github.com/gracechurch/internal/service"
	"github.com/gracechurch/internal/view"
)

const (
	sessionUserKey     = "user_id"
	currentUserContext = "__current_user"
)

// SessionContext 每个请求只加载一次当前用户并放入 gin 上下文。
// 会话中的用户已被删除时清空会话。
func (a *API) SessionContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		if id, ok := session.Get(sessionUserKey).(uint); ok && id > 0 {
			user, err := a.users.Get(id)
			switch {
			case err == nil:
				c.Set(currentUserContext, user)
			case errors.Is(err, service.ErrUserNotFound):
				session.Clear()
				if err := session.Save(); err != nil {
					log.Printf("[auth] clear stale session failed: %v", err)
				}
			default:
				log.Printf("[auth] load session user %d failed: %v", id, err)
				c.Error(err)
			}
		}
		c.Next()
	}
}

// currentUser 返回 SessionContext 加载的用户，未登录时为 nil。
func currentUser(c *gin.Context) *db.User {
	if value, ok := c.Get(currentUserContext); ok {
		if user, ok := value.(*db.User); ok {
			return user
		}
	}
	return nil
}

// AuthRequired 仅允许 admin 与 editor 进入后台。
func (a *API) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		if user != nil && user.CanEdit() {
			c.Next()
			return
		}

		if isAPIRequest(c) {
			status := http.StatusUnauthorized
			message := "login required"
			if user != nil {
				status = http.StatusForbidden
				message = "editor role required"
			}
			respondError(c, status, message)
			c.Abort()
			return
		}

		if user != nil {
			render(c, http.StatusForbidden, view.LoginPage(a.siteSettings(c).SiteName, user.Email, "관리 권한이 없는 계정입니다."))
			c.Abort()
			return
		}
		c.Redirect(http.StatusFound, "/admin/login")
		c.Abort()
	}
}

// ShowLogin 渲染登录页面，已登录的编辑者直接进入后台。
func (a *API) ShowLogin(c *gin.Context) {
	if user := currentUser(c); user != nil && user.CanEdit() {
		c.Redirect(http.StatusFound, "/admin")
		return
	}
	render(c, http.StatusOK, view.LoginPage(a.siteSettings(c).SiteName, "", ""))
}

// Login 校验邮箱与密码并写入会话。
func (a *API) Login(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm("email"))
	password := c.PostForm("password")
	siteName := a.siteSettings(c).SiteName

	user, err := a.users.Authenticate(email, password)
	if err != nil {
		if !errors.Is(err, service.ErrInvalidCredentials) {
			log.Printf("[auth] authenticate %s failed: %v", email, err)
			render(c, http.StatusInternalServerError, view.LoginPage(siteName, email, "로그인 처리 중 오류가 발생했습니다."))
			return
		}
		render(c, http.StatusUnauthorized, view.LoginPage(siteName, email, "이메일 또는 비밀번호가 올바르지 않습니다."))
		return
	}
	if !user.CanEdit() {
		render(c, http.StatusForbidden, view.LoginPage(siteName, email, "관리 권한이 없는 계정입니다."))
		return
	}

	session := sessions.Default(c)
	session.Clear()
	session.Set(sessionUserKey, user.ID)
	if err := session.Save(); err != nil {
		log.Printf("[auth] save session failed: %v", err)
		render(c, http.StatusInternalServerError, view.LoginPage(siteName, email, "세션을 저장하지 못했습니다."))
		return
	}

	c.Redirect(http.StatusFound, "/admin")
}

// Logout 清空会话并回到登录页。
func (a *API) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		log.Printf("[auth] clear session failed: %v", err)
	}
	c.Redirect(http.StatusFound, "/admin/login")
}
