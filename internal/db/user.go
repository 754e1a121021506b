package db

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
	RoleViewer = "viewer"
)

// User 定义了后台用户模型，Role 决定能否进入管理后台。
type User struct {
	gorm.Model
	Email    string `gorm:"size:255;uniqueIndex;not null"`
	Password string `gorm:"not null"`
	Role     string `gorm:"size:20;not null;default:viewer"`
}

// CanEdit 判断用户角色是否允许访问管理后台。
func (u User) CanEdit() bool {
	return IsEditorRole(u.Role)
}

// IsEditorRole 仅 admin 与 editor 可以管理内容。
func IsEditorRole(role string) bool {
	switch strings.ToLower(strings.TrimSpace(role)) {
	case RoleAdmin, RoleEditor:
		return true
	default:
		return false
	}
}

// NormalizeRole 将未知角色归一为 viewer。
func NormalizeRole(role string) string {
	switch normalized := strings.ToLower(strings.TrimSpace(role)); normalized {
	case RoleAdmin, RoleEditor:
		return normalized
	default:
		return RoleViewer
	}
}

// EnsureUser 存在性检查：若提供的邮箱与密码均非空且不存在对应账号，则创建一个 bcrypt 哈希的用户。
func EnsureUser(email, password, role string) error {
	trimmedEmail := strings.ToLower(strings.TrimSpace(email))
	trimmedPassword := strings.TrimSpace(password)
	if trimmedEmail == "" || trimmedPassword == "" {
		return nil
	}

	if DB == nil {
		return errors.New("database not initialized")
	}

	var existing User
	if err := DB.Where("email = ?", trimmedEmail).First(&existing).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(trimmedPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		return DB.Create(&User{Email: trimmedEmail, Password: string(hashed), Role: NormalizeRole(role)}).Error
	}

	return nil
}
