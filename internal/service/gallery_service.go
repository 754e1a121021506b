package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gracechurch/internal/db"
	"gorm.io/gorm"
)

var (
	ErrGalleryCategoryNotFound = errors.New("gallery category not found")
	ErrGalleryEventNotFound    = errors.New("gallery event not found")
	ErrGalleryPhotoNotFound    = errors.New("gallery photo not found")
	ErrGalleryInputInvalid     = errors.New("gallery input is invalid")
)

// GalleryService handles the category → event → photo hierarchy.
type GalleryService struct {
	db *gorm.DB
}

// GalleryCategoryInput represents fields accepted when creating or updating a category.
type GalleryCategoryInput struct {
	NameKR      string `validate:"required,max=100"`
	NameEN      string `validate:"max=100"`
	Description string
	SortOrder   int
}

// GalleryEventInput represents fields accepted when creating or updating an event.
type GalleryEventInput struct {
	CategoryID  uint   `validate:"required"`
	Title       string `validate:"required,max=200"`
	Date        time.Time
	CoverURL    string `validate:"max=500"`
	Description string
}

// GalleryPhotoInput represents a photo reference: a URL or a Drive file id.
type GalleryPhotoInput struct {
	FileURL  string `validate:"required,max=500"`
	FileName string `validate:"max=255"`
}

// RemoteFile is one image listed from an external folder.
type RemoteFile struct {
	ID   string
	Name string
}

// PhotoSyncResult summarises one replace-by-diff run.
type PhotoSyncResult struct {
	EventID uint
	Added   int
	Removed int
	Renamed int
	Photos  []db.GalleryPhoto
}

// NewGalleryService creates a GalleryService instance.
func NewGalleryService(gdb *gorm.DB) *GalleryService {
	return &GalleryService{db: gdb}
}

// ListCategories returns all categories ordered by priority.
func (s *GalleryService) ListCategories() ([]db.GalleryCategory, error) {
	var items []db.GalleryCategory
	if err := s.db.Order("sort_order asc").Order("id asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// GetCategory fetches a category with its events, newest first.
func (s *GalleryService) GetCategory(id uint) (*db.GalleryCategory, error) {
	var item db.GalleryCategory
	err := s.db.Preload("Events", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("date desc").Order("id desc")
	}).First(&item, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGalleryCategoryNotFound
		}
		return nil, err
	}
	return &item, nil
}

// CreateCategory inserts a new category, appending it after the last one when no order is given.
func (s *GalleryService) CreateCategory(input GalleryCategoryInput) (*db.GalleryCategory, error) {
	input = trimCategoryInput(input)
	if err := validate.Struct(input); err != nil {
		return nil, ErrGalleryInputInvalid
	}

	sortOrder := input.SortOrder
	if sortOrder == 0 {
		order, err := s.nextCategoryOrder()
		if err != nil {
			return nil, err
		}
		sortOrder = order
	}

	item := db.GalleryCategory{
		NameKR:      input.NameKR,
		NameEN:      input.NameEN,
		Description: input.Description,
		SortOrder:   sortOrder,
	}
	if err := s.db.Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateCategory modifies an existing category. A zero SortOrder keeps the current position.
func (s *GalleryService) UpdateCategory(id uint, input GalleryCategoryInput) (*db.GalleryCategory, error) {
	input = trimCategoryInput(input)
	if err := validate.Struct(input); err != nil {
		return nil, ErrGalleryInputInvalid
	}

	var item db.GalleryCategory
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGalleryCategoryNotFound
		}
		return nil, err
	}

	item.NameKR = input.NameKR
	item.NameEN = input.NameEN
	item.Description = input.Description
	if input.SortOrder != 0 {
		item.SortOrder = input.SortOrder
	}

	if err := s.db.Save(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteCategory removes a category together with its events and their photos.
func (s *GalleryService) DeleteCategory(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var item db.GalleryCategory
		if err := tx.First(&item, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrGalleryCategoryNotFound
			}
			return err
		}

		eventIDs := tx.Model(&db.GalleryEvent{}).Select("id").Where("category_id = ?", id)
		if err := tx.Where("event_id IN (?)", eventIDs).Delete(&db.GalleryPhoto{}).Error; err != nil {
			return err
		}
		if err := tx.Where("category_id = ?", id).Delete(&db.GalleryEvent{}).Error; err != nil {
			return err
		}
		return tx.Delete(&item).Error
	})
}

// ListEvents returns the events of a category, newest first. Zero lists every event.
func (s *GalleryService) ListEvents(categoryID uint) ([]db.GalleryEvent, error) {
	query := s.db.Model(&db.GalleryEvent{})
	if categoryID != 0 {
		query = query.Where("category_id = ?", categoryID)
	}

	var items []db.GalleryEvent
	if err := query.Order("date desc").Order("id desc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// GetEvent fetches an event with its photos.
func (s *GalleryService) GetEvent(id uint) (*db.GalleryEvent, error) {
	var item db.GalleryEvent
	err := s.db.Preload("Photos", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("file_name asc").Order("id asc")
	}).First(&item, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGalleryEventNotFound
		}
		return nil, err
	}
	return &item, nil
}

// CreateEvent inserts an event under an existing category.
func (s *GalleryService) CreateEvent(input GalleryEventInput) (*db.GalleryEvent, error) {
	input = trimEventInput(input)
	if err := validate.Struct(input); err != nil {
		return nil, ErrGalleryInputInvalid
	}
	if err := s.ensureCategory(input.CategoryID); err != nil {
		return nil, err
	}

	item := db.GalleryEvent{
		CategoryID:  input.CategoryID,
		Title:       input.Title,
		Date:        input.Date,
		CoverURL:    input.CoverURL,
		Description: input.Description,
	}
	if err := s.db.Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateEvent modifies an existing event.
func (s *GalleryService) UpdateEvent(id uint, input GalleryEventInput) (*db.GalleryEvent, error) {
	input = trimEventInput(input)
	if err := validate.Struct(input); err != nil {
		return nil, ErrGalleryInputInvalid
	}
	if err := s.ensureCategory(input.CategoryID); err != nil {
		return nil, err
	}

	var item db.GalleryEvent
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGalleryEventNotFound
		}
		return nil, err
	}

	item.CategoryID = input.CategoryID
	item.Title = input.Title
	item.Date = input.Date
	item.CoverURL = input.CoverURL
	item.Description = input.Description

	if err := s.db.Save(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteEvent removes an event and its photos.
func (s *GalleryService) DeleteEvent(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var item db.GalleryEvent
		if err := tx.First(&item, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrGalleryEventNotFound
			}
			return err
		}
		if err := tx.Where("event_id = ?", id).Delete(&db.GalleryPhoto{}).Error; err != nil {
			return err
		}
		return tx.Delete(&item).Error
	})
}

// AddPhoto attaches one photo reference to an event.
func (s *GalleryService) AddPhoto(eventID uint, input GalleryPhotoInput) (*db.GalleryPhoto, error) {
	input.FileURL = strings.TrimSpace(input.FileURL)
	input.FileName = strings.TrimSpace(input.FileName)
	if err := validate.Struct(input); err != nil {
		return nil, ErrGalleryInputInvalid
	}
	if _, err := s.GetEvent(eventID); err != nil {
		return nil, err
	}

	photo := db.GalleryPhoto{
		EventID:    eventID,
		FileURL:    input.FileURL,
		FileName:   input.FileName,
		UploadedAt: time.Now().UTC(),
	}
	if err := s.db.Create(&photo).Error; err != nil {
		return nil, err
	}
	return &photo, nil
}

// DeletePhoto removes one photo of an event.
func (s *GalleryService) DeletePhoto(eventID, photoID uint) error {
	result := s.db.Where("event_id = ?", eventID).Delete(&db.GalleryPhoto{}, photoID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrGalleryPhotoNotFound
	}
	return nil
}

// ReplaceEventPhotos makes the event's photos match files, diffing by file id inside one transaction.
// Unchanged photos keep their ids; new files are inserted, missing ones removed, renamed ones updated.
// When the event has no cover, the first file becomes the cover.
func (s *GalleryService) ReplaceEventPhotos(eventID uint, files []RemoteFile) (PhotoSyncResult, error) {
	result := PhotoSyncResult{EventID: eventID}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var event db.GalleryEvent
		if err := tx.First(&event, eventID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrGalleryEventNotFound
			}
			return err
		}

		var existing []db.GalleryPhoto
		if err := tx.Where("event_id = ?", eventID).Find(&existing).Error; err != nil {
			return err
		}
		byRef := make(map[string]db.GalleryPhoto, len(existing))
		for _, photo := range existing {
			byRef[photo.FileURL] = photo
		}

		incoming := make(map[string]struct{}, len(files))
		now := time.Now().UTC()
		for _, file := range files {
			ref := strings.TrimSpace(file.ID)
			if ref == "" {
				continue
			}
			if _, dup := incoming[ref]; dup {
				continue
			}
			incoming[ref] = struct{}{}

			if current, ok := byRef[ref]; ok {
				if current.FileName != file.Name {
					if err := tx.Model(&db.GalleryPhoto{}).Where("id = ?", current.ID).Update("file_name", file.Name).Error; err != nil {
						return err
					}
					result.Renamed++
				}
				continue
			}

			photo := db.GalleryPhoto{EventID: eventID, FileURL: ref, FileName: file.Name, UploadedAt: now}
			if err := tx.Create(&photo).Error; err != nil {
				return err
			}
			result.Added++
		}

		staleIDs := make([]uint, 0)
		for ref, photo := range byRef {
			if _, keep := incoming[ref]; !keep {
				staleIDs = append(staleIDs, photo.ID)
			}
		}
		if len(staleIDs) > 0 {
			if err := tx.Where("id IN ?", staleIDs).Delete(&db.GalleryPhoto{}).Error; err != nil {
				return err
			}
			result.Removed = len(staleIDs)
		}

		if strings.TrimSpace(event.CoverURL) == "" && len(incoming) > 0 {
			for _, file := range files {
				if ref := strings.TrimSpace(file.ID); ref != "" {
					if err := tx.Model(&db.GalleryEvent{}).Where("id = ?", eventID).Update("cover_url", ref).Error; err != nil {
						return err
					}
					break
				}
			}
		}

		return tx.Where("event_id = ?", eventID).Order("file_name asc").Order("id asc").Find(&result.Photos).Error
	})
	if err != nil {
		if errors.Is(err, ErrGalleryEventNotFound) {
			return result, err
		}
		return result, fmt.Errorf("replace photos for event %d: %w", eventID, err)
	}

	return result, nil
}

func (s *GalleryService) ensureCategory(id uint) error {
	var count int64
	if err := s.db.Model(&db.GalleryCategory{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrGalleryCategoryNotFound
	}
	return nil
}

func (s *GalleryService) nextCategoryOrder() (int, error) {
	var maxOrder int
	if err := s.db.Model(&db.GalleryCategory{}).
		Select("COALESCE(MAX(sort_order), 0)").
		Scan(&maxOrder).Error; err != nil {
		return 0, err
	}
	return maxOrder + 1, nil
}

func trimCategoryInput(input GalleryCategoryInput) GalleryCategoryInput {
	input.NameKR = strings.TrimSpace(input.NameKR)
	input.NameEN = strings.TrimSpace(input.NameEN)
	input.Description = strings.TrimSpace(input.Description)
	return input
}

func trimEventInput(input GalleryEventInput) GalleryEventInput {
	input.Title = strings.TrimSpace(input.Title)
	input.CoverURL = strings.TrimSpace(input.CoverURL)
	input.Description = strings.TrimSpace(input.Description)
	return input
}
