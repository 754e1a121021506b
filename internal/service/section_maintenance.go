package service

import (
	"encoding/json"
	"fmt"

	"gorm.io/gorm"

	"github.com/gracechurch/internal/content"
	"github.com/gracechurch/internal/db"
)

// SectionSeed 描述一个待写入的默认区块。
type SectionSeed struct {
	Kind    content.Kind
	Title   string
	Content content.Content
}

// SectionDrift 记录一条内容与其 kind 结构不符的区块。
type SectionDrift struct {
	ID     string
	Page   string
	Kind   string
	Reason string
}

// DefaultHomeSections 返回空白站点首页的默认区块。
func DefaultHomeSections() []SectionSeed {
	return []SectionSeed{
		{Kind: content.KindHero, Title: "메인 배너", Content: content.Hero{
			Heading:    content.DefaultChurchName,
			Subheading: "하나님을 사랑하고 이웃을 섬기는 교회",
			ButtonText: "오시는 길",
			ButtonLink: "/about/location",
		}},
		{Kind: content.KindInfoCards, Title: "예배 안내", Content: content.InfoCards{
			Title: "예배 안내",
			Cards: []content.InfoCard{
				{Icon: "clock", Title: "주일예배", Description: "오전 11:00"},
				{Icon: "book", Title: "수요예배", Description: "오후 7:30"},
				{Icon: "map", Title: "오시는 길", Description: "교회 위치 안내", Link: "/about/location"},
			},
		}},
		{Kind: content.KindWelcome, Title: "환영합니다", Content: content.Welcome{
			Title:   "환영합니다",
			Message: "처음 오신 분들을 진심으로 환영합니다.",
		}},
		{Kind: content.KindNotices, Title: "공지사항", Content: content.Notices{Title: "공지사항"}},
	}
}

// SeedPage 仅在页面没有任何区块时按顺序写入 seeds，返回写入数量。
func (s *SectionService) SeedPage(page string, seeds []SectionSeed) (int, error) {
	existing, err := s.GetByPage(page)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		scoped := NewSectionService(tx)
		for i, seed := range seeds {
			raw, err := json.Marshal(seed.Content)
			if err != nil {
				return fmt.Errorf("encode seed %s: %w", seed.Kind, err)
			}
			order := i + 1
			if _, err := scoped.Create(SectionInput{
				Page:         page,
				Kind:         string(seed.Kind),
				Title:        seed.Title,
				Content:      raw,
				SectionOrder: &order,
				CreatedBy:    "seed",
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(seeds), nil
}

// FindDrift 逐条解码全部区块，报告无法按 kind 解析或 kind 未知的记录。
func (s *SectionService) FindDrift() ([]SectionDrift, error) {
	var sections []db.Section
	if err := s.db.Order("page asc").Order("section_order asc").Order("id asc").Find(&sections).Error; err != nil {
		return nil, fmt.Errorf("list sections: %w", err)
	}

	drift := make([]SectionDrift, 0)
	for _, section := range sections {
		if !content.IsKnown(section.Kind) {
			drift = append(drift, SectionDrift{ID: section.ID, Page: section.Page, Kind: section.Kind, Reason: "unknown kind"})
			continue
		}
		if _, err := content.Decode(section.Kind, section.Content); err != nil {
			drift = append(drift, SectionDrift{ID: section.ID, Page: section.Page, Kind: section.Kind, Reason: err.Error()})
		}
	}
	return drift, nil
}
