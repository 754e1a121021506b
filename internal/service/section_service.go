package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gracechurch/internal/content"
	"github.com/gracechurch/internal/db"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrSectionNotFound       = errors.New("section not found")
	ErrSectionInputInvalid   = errors.New("section page and kind are required")
	ErrSectionContentInvalid = errors.New("section content must be a JSON object")
	ErrSectionOrderInvalid   = errors.New("invalid section order")
)

const (
	MoveUp   = "up"
	MoveDown = "down"
)

var validate = validator.New()

// SectionService is the data-access layer over the sections table.
// Every call goes straight to the store: no cache, no retry, last write wins.
type SectionService struct {
	db *gorm.DB
}

// SectionInput represents fields accepted when creating a section.
// SectionOrder nil means "append after the last section of the page".
type SectionInput struct {
	Page         string `validate:"required,max=100"`
	Kind         string `validate:"required,max=50"`
	Title        string `validate:"max=200"`
	Content      []byte
	SectionOrder *int
	CreatedBy    string
}

// SectionPatch carries the fields to merge into an existing section; nil fields are left alone.
type SectionPatch struct {
	Page         *string
	Kind         *string
	Title        *string
	Content      []byte
	SectionOrder *int
}

// SectionOrderUpdate assigns a new section_order to one section.
type SectionOrderUpdate struct {
	ID    string `json:"id"`
	Order int    `json:"order"`
}

// NewSectionService creates a SectionService instance.
func NewSectionService(gdb *gorm.DB) *SectionService {
	return &SectionService{db: gdb}
}

// GetByPage returns the sections of a page in display order. A page without sections yields an empty slice.
func (s *SectionService) GetByPage(page string) ([]db.Section, error) {
	sections := make([]db.Section, 0)
	if err := s.orderedPage(s.db, page).Find(&sections).Error; err != nil {
		return nil, fmt.Errorf("list sections for page %q: %w", page, err)
	}
	return sections, nil
}

// ListByPageAndKinds filters a page's sections by kind in the store. No kinds means all kinds.
func (s *SectionService) ListByPageAndKinds(page string, kinds ...string) ([]db.Section, error) {
	query := s.orderedPage(s.db, page)
	if filtered := compactStrings(kinds); len(filtered) > 0 {
		query = query.Where("kind IN ?", filtered)
	}

	sections := make([]db.Section, 0)
	if err := query.Find(&sections).Error; err != nil {
		return nil, fmt.Errorf("list sections for page %q: %w", page, err)
	}
	return sections, nil
}

// Pages returns the distinct page keys currently holding sections.
func (s *SectionService) Pages() ([]string, error) {
	var pages []string
	if err := s.db.Model(&db.Section{}).Distinct("page").Order("page asc").Pluck("page", &pages).Error; err != nil {
		return nil, fmt.Errorf("list section pages: %w", err)
	}
	return pages, nil
}

// Get fetches a section by id.
func (s *SectionService) Get(id string) (*db.Section, error) {
	var section db.Section
	if err := s.db.Where("id = ?", strings.TrimSpace(id)).First(&section).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSectionNotFound
		}
		return nil, fmt.Errorf("get section %s: %w", id, err)
	}
	return &section, nil
}

// Create inserts a new section; the store assigns id and timestamps.
func (s *SectionService) Create(input SectionInput) (*db.Section, error) {
	input.Page = strings.TrimSpace(input.Page)
	input.Kind = strings.TrimSpace(input.Kind)
	input.Title = strings.TrimSpace(input.Title)
	if err := validate.Struct(input); err != nil {
		return nil, ErrSectionInputInvalid
	}
	if !content.IsObject(input.Content) {
		return nil, ErrSectionContentInvalid
	}

	section := db.Section{
		Page:      input.Page,
		Kind:      input.Kind,
		Title:     input.Title,
		Content:   normalizeContent(input.Content),
		CreatedBy: strings.TrimSpace(input.CreatedBy),
	}

	if input.SectionOrder != nil {
		section.SectionOrder = *input.SectionOrder
	} else {
		order, err := s.nextSectionOrder(section.Page)
		if err != nil {
			return nil, err
		}
		section.SectionOrder = order
	}

	if err := s.db.Create(&section).Error; err != nil {
		return nil, fmt.Errorf("create section: %w", err)
	}
	return &section, nil
}

// Update merges the non-nil fields of patch into the section and returns the stored row.
func (s *SectionService) Update(id string, patch SectionPatch) (*db.Section, error) {
	section, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if patch.Page != nil {
		page := strings.TrimSpace(*patch.Page)
		if page == "" {
			return nil, ErrSectionInputInvalid
		}
		updates["page"] = page
	}
	if patch.Kind != nil {
		kind := strings.TrimSpace(*patch.Kind)
		if kind == "" {
			return nil, ErrSectionInputInvalid
		}
		updates["kind"] = kind
	}
	if patch.Title != nil {
		updates["title"] = strings.TrimSpace(*patch.Title)
	}
	if patch.Content != nil {
		if !content.IsObject(patch.Content) {
			return nil, ErrSectionContentInvalid
		}
		updates["content"] = normalizeContent(patch.Content)
	}
	if patch.SectionOrder != nil {
		updates["section_order"] = *patch.SectionOrder
	}

	if len(updates) == 0 {
		return section, nil
	}

	if err := s.db.Model(&db.Section{}).Where("id = ?", section.ID).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("update section %s: %w", section.ID, err)
	}
	return s.Get(section.ID)
}

// Delete removes a section permanently.
func (s *SectionService) Delete(id string) error {
	result := s.db.Where("id = ?", strings.TrimSpace(id)).Delete(&db.Section{})
	if result.Error != nil {
		return fmt.Errorf("delete section %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrSectionNotFound
	}
	return nil
}

// UpdateOrder applies all order changes in one transaction; any failure rolls every change back.
func (s *SectionService) UpdateOrder(updates []SectionOrderUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(updates))
	for _, update := range updates {
		id := strings.TrimSpace(update.ID)
		if id == "" {
			return ErrSectionOrderInvalid
		}
		if _, ok := seen[id]; ok {
			return ErrSectionOrderInvalid
		}
		seen[id] = struct{}{}
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, update := range updates {
			result := tx.Model(&db.Section{}).
				Where("id = ?", strings.TrimSpace(update.ID)).
				Update("section_order", update.Order)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return ErrSectionNotFound
			}
		}
		return nil
	})
}

// Move swaps the section with its neighbour in display order.
// With kinds given, the neighbour is the closest section of one of those kinds, so a
// kind-filtered admin list moves the way it is drawn.
// Equal orders cannot be swapped, so the page is renumbered 1..n first.
// Moving past either end of the list is a no-op.
func (s *SectionService) Move(id, direction string, kinds ...string) error {
	direction = strings.ToLower(strings.TrimSpace(direction))
	if direction != MoveUp && direction != MoveDown {
		return ErrSectionOrderInvalid
	}

	section, err := s.Get(id)
	if err != nil {
		return err
	}

	filter := make(map[string]struct{})
	for _, kind := range compactStrings(kinds) {
		filter[kind] = struct{}{}
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var all []db.Section
		if err := s.orderedPage(tx, section.Page).Find(&all).Error; err != nil {
			return err
		}

		siblings := make([]*db.Section, 0, len(all))
		for i := range all {
			if _, ok := filter[all[i].Kind]; len(filter) == 0 || ok || all[i].ID == section.ID {
				siblings = append(siblings, &all[i])
			}
		}

		index := -1
		for i, sibling := range siblings {
			if sibling.ID == section.ID {
				index = i
				break
			}
		}
		if index < 0 {
			return ErrSectionNotFound
		}

		neighbour := index - 1
		if direction == MoveDown {
			neighbour = index + 1
		}
		if neighbour < 0 || neighbour >= len(siblings) {
			return nil
		}

		if siblings[index].SectionOrder == siblings[neighbour].SectionOrder {
			for i := range all {
				all[i].SectionOrder = i + 1
				if err := setSectionOrder(tx, all[i].ID, all[i].SectionOrder); err != nil {
					return err
				}
			}
		}

		current, other := siblings[index], siblings[neighbour]
		if err := setSectionOrder(tx, current.ID, other.SectionOrder); err != nil {
			return err
		}
		return setSectionOrder(tx, other.ID, current.SectionOrder)
	})
}

func (s *SectionService) orderedPage(tx *gorm.DB, page string) *gorm.DB {
	return tx.Where("page = ?", strings.TrimSpace(page)).
		Order("section_order asc").
		Order("created_at asc").
		Order("id asc")
}

func (s *SectionService) nextSectionOrder(page string) (int, error) {
	var maxOrder int
	if err := s.db.Model(&db.Section{}).
		Where("page = ?", page).
		Select("COALESCE(MAX(section_order), 0)").
		Scan(&maxOrder).Error; err != nil {
		return 0, fmt.Errorf("next section order: %w", err)
	}
	return maxOrder + 1, nil
}

func setSectionOrder(tx *gorm.DB, id string, order int) error {
	return tx.Model(&db.Section{}).Where("id = ?", id).Update("section_order", order).Error
}

func normalizeContent(raw []byte) datatypes.JSON {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" {
		return datatypes.JSON("{}")
	}
	return datatypes.JSON(trimmed)
}

func compactStrings(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
