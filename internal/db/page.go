package db

import "time"

// Page 记录可单独发布的动态页面，其内容区块使用 sections.page = slug。
type Page struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Slug        string    `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Published   bool      `gorm:"index" json:"published"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
