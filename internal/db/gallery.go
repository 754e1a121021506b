package db

import "time"

// GalleryCategory 相册分类，例如「예배」「수련회」。
type GalleryCategory struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	NameKR      string         `gorm:"column:name_kr;size:100;not null" json:"name_kr"`
	NameEN      string         `gorm:"column:name_en;size:100" json:"name_en"`
	Description string         `gorm:"type:text" json:"description"`
	SortOrder   int            `gorm:"default:0" json:"sort_order"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	Events      []GalleryEvent `gorm:"foreignKey:CategoryID" json:"events,omitempty"`
}

// TableName 指定自定义表名。
func (GalleryCategory) TableName() string {
	return "gallery_categories"
}

// GalleryEvent 分类下按日期组织的活动。
type GalleryEvent struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	CategoryID  uint           `gorm:"index;not null" json:"category_id"`
	Title       string         `gorm:"size:200;not null" json:"title"`
	Date        time.Time      `gorm:"index" json:"date"`
	CoverURL    string         `gorm:"size:500" json:"cover_url"`
	Description string         `gorm:"type:text" json:"description"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	Photos      []GalleryPhoto `gorm:"foreignKey:EventID" json:"photos,omitempty"`
}

// TableName 指定自定义表名。
func (GalleryEvent) TableName() string {
	return "gallery_events"
}

// GalleryPhoto 活动照片，FileURL 可以是直接链接或 Google Drive 文件 ID。
// (event_id, file_url) 唯一，作为同步时的自然键。
type GalleryPhoto struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	EventID    uint      `gorm:"not null;uniqueIndex:idx_gallery_photo_event_file,priority:1" json:"event_id"`
	FileURL    string    `gorm:"size:500;not null;uniqueIndex:idx_gallery_photo_event_file,priority:2" json:"file_url"`
	FileName   string    `gorm:"size:255" json:"file_name"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// TableName 指定自定义表名。
func (GalleryPhoto) TableName() string {
	return "gallery_photos"
}
