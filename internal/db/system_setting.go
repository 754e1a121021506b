package db

import "gorm.io/gorm"

// SystemSetting 存储后台可配置的系统级键值对。
type SystemSetting struct {
	gorm.Model
	Key   string `gorm:"size:100;uniqueIndex;not null"`
	Value string `gorm:"type:text"`
}

// TableName 自定义表名以保持命名一致。
func (SystemSetting) TableName() string {
	return "system_settings"
}

const (
	// SettingKeySiteName 表示教会名称。
	SettingKeySiteName = "site_name"
	// SettingKeySiteTagline 表示站点副标题。
	SettingKeySiteTagline = "site_tagline"
	// SettingKeyFooterText 表示页脚文字。
	SettingKeyFooterText = "footer_text"
)
