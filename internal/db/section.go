package db

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Section 是页面上的一块内容，Kind 决定 Content 的结构与渲染组件。
// Content 为自由格式的 JSON 对象，数据层不校验其结构。
// 删除为物理删除，不保留软删除记录。
type Section struct {
	ID           string         `gorm:"primaryKey;size:36" json:"id"`
	Page         string         `gorm:"size:100;not null;index:idx_sections_page_order,priority:1" json:"page"`
	Kind         string         `gorm:"size:50;not null;index" json:"kind"`
	Title        string         `gorm:"size:200" json:"title"`
	Content      datatypes.JSON `json:"content"`
	SectionOrder int            `gorm:"not null;default:0;index:idx_sections_page_order,priority:2" json:"section_order"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	CreatedBy    string         `gorm:"size:255" json:"created_by,omitempty"`
}

// TableName 指定自定义表名。
func (Section) TableName() string {
	return "sections"
}

// BeforeCreate 在插入前生成不可变的 UUID 主键。
func (s *Section) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if len(s.Content) == 0 {
		s.Content = datatypes.JSON("{}")
	}
	return nil
}
