package handler

import (
	"errors"
	"log"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gracechurch/internal/service"
)

// UploadImages 保存一张或多张图片，返回顺序与上传顺序一致。
// 多文件使用 files 字段，单文件也接受 image 字段。
func (a *API) UploadImages(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		respondError(c, http.StatusBadRequest, "multipart form is required")
		return
	}

	files := collectUploads(form)
	if len(files) == 0 {
		respondError(c, http.StatusBadRequest, "no image uploaded")
		return
	}

	saved, err := a.uploads.Save(c.Request.Context(), files)
	if err != nil {
		if errors.Is(err, service.ErrUploadInvalid) {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("[upload] save %d files failed: %v", len(files), err)
		c.Error(err)
		respondError(c, http.StatusInternalServerError, "failed to save upload")
		return
	}
	c.JSON(http.StatusOK, saved)
}

func collectUploads(form *multipart.Form) []*multipart.FileHeader {
	if form == nil {
		return nil
	}
	files := append([]*multipart.FileHeader{}, form.File["files"]...)
	if len(files) == 0 {
		files = append(files, form.File["image"]...)
	}
	return files
}
