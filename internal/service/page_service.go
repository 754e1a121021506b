package service

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/gracechurch/internal/db"
	"gorm.io/gorm"
)

var (
	ErrPageNotFound     = errors.New("page not found")
	ErrPageInputInvalid = errors.New("page slug and title are required")
	ErrPageSlugTaken    = errors.New("page slug already exists")
)

var pageSlugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// PageService 管理可单独发布的动态页面。
type PageService struct {
	db *gorm.DB
}

// PageInput 表示创建或更新动态页面时的字段。
type PageInput struct {
	Slug        string `validate:"required,max=100"`
	Title       string `validate:"required,max=200"`
	Description string
	Published   bool
}

// NewPageService returns a new PageService instance.
func NewPageService(gdb *gorm.DB) *PageService {
	return &PageService{db: gdb}
}

// List 返回全部页面，按 slug 排序。
func (s *PageService) List() ([]db.Page, error) {
	pages := make([]db.Page, 0)
	if err := s.db.Order("slug asc").Find(&pages).Error; err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}
	return pages, nil
}

// ListPublished 仅返回已发布页面，供 sitemap 使用。
func (s *PageService) ListPublished() ([]db.Page, error) {
	pages := make([]db.Page, 0)
	if err := s.db.Where("published = ?", true).Order("slug asc").Find(&pages).Error; err != nil {
		return nil, fmt.Errorf("list published pages: %w", err)
	}
	return pages, nil
}

// GetBySlug fetches a page for a given slug.
func (s *PageService) GetBySlug(slug string) (*db.Page, error) {
	var page db.Page
	if err := s.db.Where("slug = ?", normalizeSlug(slug)).First(&page).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPageNotFound
		}
		return nil, err
	}
	return &page, nil
}

// GetPublished 与 GetBySlug 相同，但未发布页面视为不存在。
func (s *PageService) GetPublished(slug string) (*db.Page, error) {
	page, err := s.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if !page.Published {
		return nil, ErrPageNotFound
	}
	return page, nil
}

// Save 按 slug 创建或更新页面。
func (s *PageService) Save(input PageInput) (*db.Page, error) {
	input.Slug = normalizeSlug(input.Slug)
	input.Title = strings.TrimSpace(input.Title)
	input.Description = strings.TrimSpace(input.Description)
	if err := validate.Struct(input); err != nil || !pageSlugPattern.MatchString(input.Slug) {
		return nil, ErrPageInputInvalid
	}

	var page db.Page
	err := s.db.Where("slug = ?", input.Slug).First(&page).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		page = db.Page{
			Slug:        input.Slug,
			Title:       input.Title,
			Description: input.Description,
			Published:   input.Published,
		}
		if err := s.db.Create(&page).Error; err != nil {
			return nil, fmt.Errorf("create page %s: %w", input.Slug, err)
		}
		return &page, nil
	}

	page.Title = input.Title
	page.Description = input.Description
	page.Published = input.Published
	if err := s.db.Save(&page).Error; err != nil {
		return nil, fmt.Errorf("update page %s: %w", input.Slug, err)
	}
	return &page, nil
}

// Delete 删除页面记录；其区块保留，可在后台 all 分类中继续管理。
func (s *PageService) Delete(slug string) error {
	result := s.db.Where("slug = ?", normalizeSlug(slug)).Delete(&db.Page{})
	if result.Error != nil {
		return fmt.Errorf("delete page %s: %w", slug, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrPageNotFound
	}
	return nil
}

func normalizeSlug(slug string) string {
	return strings.ToLower(strings.Trim(strings.TrimSpace(slug), "/"))
}
