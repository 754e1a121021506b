package handler

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gracechurch/internal/db"
	"github.com/gracechurch/internal/locale"
	"github.com/gracechurch/internal/service"
	"github.com/gracechurch/internal/view"
)

// ShowGalleryIndex 渲染相册分类列表。
func (a *API) ShowGalleryIndex(c *gin.Context) {
	language := a.requestLocale(c).Language
	title := locale.Pick(language, "Gallery", "갤러리")
	categories, err := a.gallery.ListCategories()
	if err != nil {
		log.Printf("[gallery] list categories failed: %v", err)
		c.Error(err)
		a.renderPublic(c, http.StatusInternalServerError, title, "", view.ErrorPanel(language, c.Request.URL.Path))
		return
	}
	a.renderPublic(c, http.StatusOK, title, "", view.GalleryIndex(language, categories))
}

// ShowGalleryCategory 渲染分类下的活动。
func (a *API) ShowGalleryCategory(c *gin.Context) {
	language := a.requestLocale(c).Language
	id, err := parseUintParam(c, "categoryID")
	if err != nil {
		a.renderNotFound(c)
		return
	}
	category, err := a.gallery.GetCategory(id)
	if err != nil {
		if errors.Is(err, service.ErrGalleryCategoryNotFound) {
			a.renderNotFound(c)
			return
		}
		log.Printf("[gallery] load category %d failed: %v", id, err)
		c.Error(err)
		a.renderPublic(c, http.StatusInternalServerError, "", "", view.ErrorPanel(language, c.Request.URL.Path))
		return
	}
	a.renderPublic(c, http.StatusOK, locale.Pick(language, category.NameEN, category.NameKR), category.Description,
		view.GalleryCategoryPage(language, *category))
}

// ShowGalleryEvent 渲染活动的照片。
func (a *API) ShowGalleryEvent(c *gin.Context) {
	language := a.requestLocale(c).Language
	id, err := parseUintParam(c, "eventID")
	if err != nil {
		a.renderNotFound(c)
		return
	}
	event, err := a.gallery.GetEvent(id)
	if err != nil {
		if errors.Is(err, service.ErrGalleryEventNotFound) {
			a.renderNotFound(c)
			return
		}
		log.Printf("[gallery] load event %d failed: %v", id, err)
		c.Error(err)
		a.renderPublic(c, http.StatusInternalServerError, "", "", view.ErrorPanel(language, c.Request.URL.Path))
		return
	}
	a.renderPublic(c, http.StatusOK, event.Title, "", view.GalleryEventPage(language, *event))
}

// ShowAdminGallery 渲染相册管理页。
func (a *API) ShowAdminGallery(c *gin.Context) {
	categories, err := a.gallery.ListCategories()
	if err != nil {
		log.Printf("[gallery] list categories failed: %v", err)
		c.Error(err)
	}
	events, eventsErr := a.gallery.ListEvents(0)
	if eventsErr != nil {
		log.Printf("[gallery] list events failed: %v", eventsErr)
		c.Error(eventsErr)
	}
	grouped := make(map[uint][]db.GalleryEvent, len(categories))
	for _, event := range events {
		grouped[event.CategoryID] = append(grouped[event.CategoryID], event)
	}

	message := errorMessage(errors.Join(err, eventsErr), "갤러리 목록을 불러오지 못했습니다.")
	a.renderAdmin(c, http.StatusOK, "gallery", "갤러리", message,
		view.AdminGallery(view.AdminGalleryProps{Categories: categories, Events: grouped}))
}

// CreateGalleryCategory 通过后台表单新建分类。
func (a *API) CreateGalleryCategory(c *gin.Context) {
	_, err := a.gallery.CreateCategory(service.GalleryCategoryInput{
		NameKR:      c.PostForm("name_kr"),
		NameEN:      c.PostForm("name_en"),
		Description: c.PostForm("description"),
	})
	a.flashResult(c, err, "분류를 추가했습니다.")
	c.Redirect(http.StatusFound, "/admin/gallery")
}

// DeleteGalleryCategory 删除分类及其下全部活动与照片。
func (a *API) DeleteGalleryCategory(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err == nil {
		err = a.gallery.DeleteCategory(id)
	}
	a.flashResult(c, err, "분류를 삭제했습니다.")
	c.Redirect(http.StatusFound, "/admin/gallery")
}

// UpdateGalleryCategory 修改分类名称、说明与排序。
func (a *API) UpdateGalleryCategory(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err == nil {
		_, err = a.gallery.UpdateCategory(id, service.GalleryCategoryInput{
			NameKR:      c.PostForm("name_kr"),
			NameEN:      c.PostForm("name_en"),
			Description: c.PostForm("description"),
			SortOrder:   int(parseUintValue(c.PostForm("sort_order"))),
		})
	}
	a.flashResult(c, err, "분류를 수정했습니다.")
	c.Redirect(http.StatusFound, "/admin/gallery")
}

// CreateGalleryEvent 在分类下新建活动，日期格式为 YYYY-MM-DD。
func (a *API) CreateGalleryEvent(c *gin.Context) {
	input, err := eventInputFromForm(c)
	if err == nil {
		_, err = a.gallery.CreateEvent(input)
	}
	a.flashResult(c, err, "행사를 추가했습니다.")
	c.Redirect(http.StatusFound, "/admin/gallery")
}

// ShowAdminGalleryEvent 渲染单个活动的编辑表单与照片列表。
func (a *API) ShowAdminGalleryEvent(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		a.renderAdmin(c, http.StatusNotFound, "gallery", "갤러리", "행사를 찾을 수 없습니다.")
		return
	}
	event, err := a.gallery.GetEvent(id)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, service.ErrGalleryEventNotFound) {
			status = http.StatusNotFound
		} else {
			log.Printf("[gallery] load event %d failed: %v", id, err)
			c.Error(err)
		}
		a.renderAdmin(c, status, "gallery", "갤러리", galleryErrorMessage(err))
		return
	}
	categories, err := a.gallery.ListCategories()
	if err != nil {
		log.Printf("[gallery] list categories failed: %v", err)
		c.Error(err)
	}
	a.renderAdmin(c, http.StatusOK, "gallery", event.Title, errorMessage(err, "분류 목록을 불러오지 못했습니다."),
		view.AdminGalleryEvent(view.AdminGalleryEventProps{Event: *event, Categories: categories}))
}

// UpdateGalleryEvent 修改活动信息，可以移动到其他分类。
func (a *API) UpdateGalleryEvent(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err == nil {
		var input service.GalleryEventInput
		if input, err = eventInputFromForm(c); err == nil {
			_, err = a.gallery.UpdateEvent(id, input)
		}
	}
	a.flashResult(c, err, "행사를 수정했습니다.")
	c.Redirect(http.StatusFound, adminEventURL(c))
}

// AddGalleryPhoto 手动为活动添加一张照片，地址可以是 URL 或 Drive 文件 ID。
func (a *API) AddGalleryPhoto(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err == nil {
		_, err = a.gallery.AddPhoto(id, service.GalleryPhotoInput{
			FileURL:  c.PostForm("file_url"),
			FileName: c.PostForm("file_name"),
		})
	}
	a.flashResult(c, err, "사진을 추가했습니다.")
	c.Redirect(http.StatusFound, adminEventURL(c))
}

// DeleteGalleryPhoto 删除活动中的一张照片。
func (a *API) DeleteGalleryPhoto(c *gin.Context) {
	eventID, err := parseUintParam(c, "id")
	if err == nil {
		var photoID uint
		if photoID, err = parseUintParam(c, "photoID"); err == nil {
			err = a.gallery.DeletePhoto(eventID, photoID)
		}
	}
	a.flashResult(c, err, "사진을 삭제했습니다.")
	c.Redirect(http.StatusFound, adminEventURL(c))
}

func eventInputFromForm(c *gin.Context) (service.GalleryEventInput, error) {
	input := service.GalleryEventInput{
		CategoryID:  parseUintValue(c.PostForm("category_id")),
		Title:       c.PostForm("title"),
		CoverURL:    c.PostForm("cover_url"),
		Description: c.PostForm("description"),
	}
	if raw := strings.TrimSpace(c.PostForm("date")); raw != "" {
		date, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return input, service.ErrGalleryInputInvalid
		}
		input.Date = date
	}
	return input, nil
}

func adminEventURL(c *gin.Context) string {
	return "/admin/gallery/events/" + url.PathEscape(c.Param("id"))
}

// DeleteGalleryEvent 删除活动及其照片。
func (a *API) DeleteGalleryEvent(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err == nil {
		err = a.gallery.DeleteEvent(id)
	}
	a.flashResult(c, err, "행사를 삭제했습니다.")
	c.Redirect(http.StatusFound, "/admin/gallery")
}

// SyncGalleryEvent 从后台表单触发 Drive 同步。
func (a *API) SyncGalleryEvent(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		a.flashResult(c, service.ErrSyncParamsMissing, "")
		c.Redirect(http.StatusFound, "/admin/gallery")
		return
	}

	result, err := a.sync.Sync(c.Request.Context(), c.PostForm("folder_id"), id)
	a.flashResult(c, err, fmt.Sprintf("사진 %d장을 동기화했습니다. (추가 %d, 삭제 %d)", len(result.Photos), result.Added, result.Removed))
	c.Redirect(http.StatusFound, "/admin/gallery")
}

type gallerySyncRequest struct {
	FolderID string `json:"folder_id" form:"folder_id"`
	EventID  uint   `json:"event_id" form:"event_id"`
}

type syncedPhoto struct {
	ID       uint   `json:"id"`
	FileName string `json:"file_name"`
	FileURL  string `json:"file_url"`
	URL      string `json:"url"`
}

// SyncGalleryJSON 用 Drive 文件夹内容替换活动照片。
// 参数可以放在查询字符串、表单或 JSON 请求体中。
func (a *API) SyncGalleryJSON(c *gin.Context) {
	req := gallerySyncRequest{
		FolderID: c.Query("folder_id"),
		EventID:  parseUintValue(c.Query("event_id")),
	}
	if c.Request.Method == http.MethodPost && c.Request.ContentLength != 0 {
		var body gallerySyncRequest
		if err := c.ShouldBind(&body); err != nil {
			respondError(c, http.StatusBadRequest, "invalid sync payload")
			return
		}
		if req.FolderID == "" {
			req.FolderID = body.FolderID
		}
		if req.EventID == 0 {
			req.EventID = body.EventID
		}
	}

	result, err := a.sync.Sync(c.Request.Context(), req.FolderID, req.EventID)
	if err != nil {
		status, message := gallerySyncError(err)
		if status >= http.StatusInternalServerError {
			log.Printf("[gallery] sync folder %s into event %d failed: %v", req.FolderID, req.EventID, err)
			c.Error(err)
		}
		respondError(c, status, message)
		return
	}

	photos := make([]syncedPhoto, 0, len(result.Photos))
	for _, photo := range result.Photos {
		photos = append(photos, syncedPhoto{
			ID:       photo.ID,
			FileName: photo.FileName,
			FileURL:  photo.FileURL,
			URL:      view.PhotoURL(photo),
		})
	}
	c.JSON(http.StatusOK, gin.H{
		"event_id":  req.EventID,
		"folder_id": strings.TrimSpace(req.FolderID),
		"count":     len(photos),
		"added":     result.Added,
		"removed":   result.Removed,
		"photos":    photos,
	})
}

func gallerySyncError(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrSyncParamsMissing):
		return http.StatusBadRequest, "folder_id and event_id are required"
	case errors.Is(err, service.ErrGalleryEventNotFound):
		return http.StatusNotFound, "gallery event not found"
	case errors.Is(err, service.ErrFolderListerAbsent):
		return http.StatusBadGateway, "google drive is not configured"
	case errors.Is(err, service.ErrFolderListFailed):
		return http.StatusBadGateway, "failed to list google drive folder"
	default:
		return http.StatusInternalServerError, "gallery sync failed"
	}
}

// flashResult 把操作结果写入会话提示。
func (a *API) flashResult(c *gin.Context, err error, success string) {
	if err == nil {
		addFlash(c, flashInfo, success)
		return
	}
	log.Printf("[gallery] %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
	addFlash(c, flashError, galleryErrorMessage(err))
}

func galleryErrorMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrGalleryCategoryNotFound):
		return "분류를 찾을 수 없습니다."
	case errors.Is(err, service.ErrGalleryEventNotFound):
		return "행사를 찾을 수 없습니다."
	case errors.Is(err, service.ErrGalleryPhotoNotFound):
		return "사진을 찾을 수 없습니다."
	case errors.Is(err, service.ErrGalleryInputInvalid):
		return "입력값을 확인해 주세요."
	case errors.Is(err, service.ErrSyncParamsMissing):
		return "Drive 폴더 ID를 입력해 주세요."
	case errors.Is(err, service.ErrFolderListerAbsent):
		return "Google Drive 연동이 설정되지 않았습니다."
	case errors.Is(err, service.ErrFolderListFailed):
		return "Google Drive 폴더를 읽지 못했습니다. 기존 사진은 그대로 유지됩니다."
	default:
		return "처리 중 오류가 발생했습니다."
	}
}
