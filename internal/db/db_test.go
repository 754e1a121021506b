package db

import (
	"path/filepath"
	"testing"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm/logger"
)

func initTestDB(t *testing.T) {
	t.Helper()

	previous := DB
	path := filepath.Join(t.TempDir(), "data", "church.db")
	if err := Init(Options{Driver: DriverSQLite, Path: path}); err != nil {
		t.Fatalf("init db: %v", err)
	}
	DB.Logger = logger.Default.LogMode(logger.Silent)

	t.Cleanup(func() {
		if sqlDB, err := DB.DB(); err == nil {
			sqlDB.Close()
		}
		DB = previous
	})
}

func TestRoles(t *testing.T) {
	cases := []struct {
		role       string
		normalized string
		canEdit    bool
	}{
		{"admin", RoleAdmin, true},
		{" Editor ", RoleEditor, true},
		{"viewer", RoleViewer, false},
		{"owner", RoleViewer, false},
		{"", RoleViewer, false},
	}
	for _, tc := range cases {
		if got := NormalizeRole(tc.role); got != tc.normalized {
			t.Fatalf("NormalizeRole(%q) = %q, want %q", tc.role, got, tc.normalized)
		}
		if got := (User{Role: tc.role}).CanEdit(); got != tc.canEdit {
			t.Fatalf("CanEdit(%q) = %v, want %v", tc.role, got, tc.canEdit)
		}
	}
}

func TestEnsureUserCreatesOnce(t *testing.T) {
	initTestDB(t)

	if err := EnsureUser(" Admin@Church.org ", "first-password", RoleAdmin); err != nil {
		t.Fatalf("ensure user: %v", err)
	}
	if err := EnsureUser("admin@church.org", "second-password", RoleViewer); err != nil {
		t.Fatalf("ensure existing user: %v", err)
	}

	var users []User
	if err := DB.Find(&users).Error; err != nil {
		t.Fatalf("list users: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("expected one user, got %d", len(users))
	}
	user := users[0]
	if user.Email != "admin@church.org" || user.Role != RoleAdmin {
		t.Fatalf("unexpected user: %+v", user)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("first-password")); err != nil {
		t.Fatalf("expected original password to be kept: %v", err)
	}

	if err := EnsureUser("", "", RoleAdmin); err != nil {
		t.Fatalf("blank credentials should be ignored: %v", err)
	}
}

func TestSectionGetsIDAndEmptyContent(t *testing.T) {
	initTestDB(t)

	section := Section{Page: "home", Kind: "hero", SectionOrder: 1}
	if err := DB.Create(&section).Error; err != nil {
		t.Fatalf("create section: %v", err)
	}
	if len(section.ID) != 36 {
		t.Fatalf("expected uuid id, got %q", section.ID)
	}
	if string(section.Content) != "{}" {
		t.Fatalf("expected empty object content, got %s", section.Content)
	}
}

func TestOpenPostgresRequiresDSN(t *testing.T) {
	if _, err := Open(Options{Driver: DriverPostgres}); err == nil {
		t.Fatalf("expected error without dsn")
	}
}
