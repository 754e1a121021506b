package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gracechurch/internal/service"
	"github.com/gracechurch/internal/view"
)

// ShowAdminPages 渲染动态页面管理页。
func (a *API) ShowAdminPages(c *gin.Context) {
	pages, err := a.pages.List()
	if err != nil {
		log.Printf("[pages] list failed: %v", err)
		c.Error(err)
	}
	a.renderAdmin(c, http.StatusOK, "pages", "페이지", errorMessage(err, "페이지 목록을 불러오지 못했습니다."), view.AdminPages(pages))
}

// SavePage 按 slug 新建或更新动态页面。
func (a *API) SavePage(c *gin.Context) {
	_, err := a.pages.Save(service.PageInput{
		Slug:        c.PostForm("slug"),
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Published:   c.PostForm("published") == "true",
	})
	if err != nil {
		log.Printf("[pages] save %s failed: %v", c.PostForm("slug"), err)
		addFlash(c, flashError, pageErrorMessage(err))
	} else {
		addFlash(c, flashInfo, "페이지를 저장했습니다.")
	}
	c.Redirect(http.StatusFound, "/admin/pages")
}

// DeletePage 删除动态页面，其区块保留。
func (a *API) DeletePage(c *gin.Context) {
	if err := a.pages.Delete(c.Param("slug")); err != nil {
		log.Printf("[pages] delete %s failed: %v", c.Param("slug"), err)
		addFlash(c, flashError, pageErrorMessage(err))
	} else {
		addFlash(c, flashInfo, "페이지를 삭제했습니다.")
	}
	c.Redirect(http.StatusFound, "/admin/pages")
}

func pageErrorMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrPageNotFound):
		return "페이지를 찾을 수 없습니다."
	case errors.Is(err, service.ErrPageInputInvalid):
		return "주소는 영문 소문자, 숫자, 하이픈만 사용할 수 있고 제목은 필수입니다."
	default:
		return "페이지를 저장하지 못했습니다."
	}
}
