package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gracechurch/internal/db"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserInputInvalid   = errors.New("user email and password are required")
)

// UserService 处理后台账号的登录校验与维护。
type UserService struct {
	db *gorm.DB
}

// UserInput 表示创建账号时的字段。
type UserInput struct {
	Email    string `validate:"required,email,max=255"`
	Password string `validate:"required,min=8"`
	Role     string
}

// NewUserService 构造 UserService。
func NewUserService(gdb *gorm.DB) *UserService {
	return &UserService{db: gdb}
}

// Authenticate 校验邮箱与密码。账号不存在与密码错误返回同一个错误。
func (s *UserService) Authenticate(email, password string) (*db.User, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	var user db.User
	if err := s.db.Where("email = ?", normalized).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// Get 按 ID 读取账号，会话中间件每个请求调用一次。
func (s *UserService) Get(id uint) (*db.User, error) {
	var user db.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	return &user, nil
}

// Upsert 创建账号；邮箱已存在时重置密码与角色。
func (s *UserService) Upsert(input UserInput) (*db.User, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if err := validate.Struct(input); err != nil {
		return nil, ErrUserInputInvalid
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	var user db.User
	err = s.db.Where("email = ?", input.Email).First(&user).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		user = db.User{Email: input.Email, Password: string(hashed), Role: db.NormalizeRole(input.Role)}
		if err := s.db.Create(&user).Error; err != nil {
			return nil, fmt.Errorf("create user: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("load user: %w", err)
	default:
		user.Password = string(hashed)
		user.Role = db.NormalizeRole(input.Role)
		if err := s.db.Save(&user).Error; err != nil {
			return nil, fmt.Errorf("update user: %w", err)
		}
	}
	return &user, nil
}
