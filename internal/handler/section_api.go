package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gracechurch/internal/service"
)

type sectionCreateRequest struct {
	Page         string          `json:"page"`
	Kind         string          `json:"kind"`
	Title        string          `json:"title"`
	Content      json.RawMessage `json:"content"`
	SectionOrder *int            `json:"section_order"`
}

type sectionUpdateRequest struct {
	Page         *string         `json:"page"`
	Kind         *string         `json:"kind"`
	Title        *string         `json:"title"`
	Content      json.RawMessage `json:"content"`
	SectionOrder *int            `json:"section_order"`
}

type sectionOrderRequest struct {
	Orders []service.SectionOrderUpdate `json:"orders"`
}

type sectionMoveRequest struct {
	Direction string `json:"direction"`
}

// ListSectionsJSON 返回页面的区块，可按 kind 过滤（多个 kind 以逗号分隔或重复参数）。
func (a *API) ListSectionsJSON(c *gin.Context) {
	page := strings.TrimSpace(c.Query("page"))
	if page == "" {
		respondError(c, http.StatusBadRequest, "page is required")
		return
	}

	sections, err := a.sections.ListByPageAndKinds(page, queryKinds(c)...)
	if err != nil {
		log.Printf("[section-api] list %s failed: %v", page, err)
		respondError(c, http.StatusInternalServerError, "failed to load sections")
		return
	}
	c.JSON(http.StatusOK, gin.H{"sections": sections})
}

// GetSectionJSON 返回单个区块。
func (a *API) GetSectionJSON(c *gin.Context) {
	section, err := a.sections.Get(c.Param("id"))
	if err != nil {
		a.respondSectionError(c, err)
		return
	}
	c.JSON(http.StatusOK, section)
}

// CreateSectionJSON 新建区块，未给出排序值时追加到末尾。
func (a *API) CreateSectionJSON(c *gin.Context) {
	var req sectionCreateRequest
	if !bindJSON(c, &req, "invalid section payload") {
		return
	}

	raw := []byte(req.Content)
	if len(raw) == 0 {
		raw = []byte("{}")
	}
	input := service.SectionInput{
		Page:         req.Page,
		Kind:         req.Kind,
		Title:        req.Title,
		Content:      raw,
		SectionOrder: req.SectionOrder,
	}
	if user := currentUser(c); user != nil {
		input.CreatedBy = user.Email
	}

	section, err := a.sections.Create(input)
	if err != nil {
		a.respondSectionError(c, err)
		return
	}
	c.JSON(http.StatusCreated, section)
}

// UpdateSectionJSON 合并请求中出现的字段。
func (a *API) UpdateSectionJSON(c *gin.Context) {
	var req sectionUpdateRequest
	if !bindJSON(c, &req, "invalid section payload") {
		return
	}

	patch := service.SectionPatch{
		Page:         req.Page,
		Kind:         req.Kind,
		Title:        req.Title,
		SectionOrder: req.SectionOrder,
	}
	if len(req.Content) > 0 {
		patch.Content = []byte(req.Content)
	}

	section, err := a.sections.Update(c.Param("id"), patch)
	if err != nil {
		a.respondSectionError(c, err)
		return
	}
	c.JSON(http.StatusOK, section)
}

// DeleteSectionJSON 物理删除区块。
func (a *API) DeleteSectionJSON(c *gin.Context) {
	if err := a.sections.Delete(c.Param("id")); err != nil {
		a.respondSectionError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UpdateSectionOrderJSON 在一个事务中批量更新排序值。
func (a *API) UpdateSectionOrderJSON(c *gin.Context) {
	var req sectionOrderRequest
	if !bindJSON(c, &req, "invalid order payload") {
		return
	}
	if err := a.sections.UpdateOrder(req.Orders); err != nil {
		a.respondSectionError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": len(req.Orders)})
}

// MoveSectionJSON 与相邻区块交换位置，方向可来自查询参数或 JSON；kind 参数限定参与交换的区块。
func (a *API) MoveSectionJSON(c *gin.Context) {
	direction := c.Query("direction")
	if direction == "" {
		var req sectionMoveRequest
		if !bindJSON(c, &req, "direction is required") {
			return
		}
		direction = req.Direction
	}
	if err := a.sections.Move(c.Param("id"), direction, queryKinds(c)...); err != nil {
		a.respondSectionError(c, err)
		return
	}
	section, err := a.sections.Get(c.Param("id"))
	if err != nil {
		a.respondSectionError(c, err)
		return
	}
	c.JSON(http.StatusOK, section)
}

func (a *API) respondSectionError(c *gin.Context, err error) {
	status := sectionErrorStatus(err)
	if status == http.StatusInternalServerError {
		log.Printf("[section-api] %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
		c.Error(err)
		respondError(c, status, "internal error")
		return
	}
	if errors.Is(err, service.ErrSectionNotFound) {
		respondError(c, status, "section not found")
		return
	}
	respondError(c, status, err.Error())
}

func queryKinds(c *gin.Context) []string {
	var kinds []string
	for _, value := range c.QueryArray("kind") {
		for _, kind := range strings.Split(value, ",") {
			if trimmed := strings.TrimSpace(kind); trimmed != "" {
				kinds = append(kinds, trimmed)
			}
		}
	}
	return kinds
}
