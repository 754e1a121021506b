package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/gracechurch/internal/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("failed to access sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		sqlDB.Close()
	})
	return gdb
}

func intPtr(v int) *int {
	return &v
}

func strPtr(v string) *string {
	return &v
}

func mustCreateSection(t *testing.T, svc *SectionService, page, kind string, order int) *db.Section {
	t.Helper()
	section, err := svc.Create(SectionInput{Page: page, Kind: kind, Title: kind, SectionOrder: intPtr(order)})
	if err != nil {
		t.Fatalf("create section: %v", err)
	}
	return section
}

func sectionOrders(t *testing.T, svc *SectionService, page string) map[string]int {
	t.Helper()
	sections, err := svc.GetByPage(page)
	if err != nil {
		t.Fatalf("GetByPage: %v", err)
	}
	orders := make(map[string]int, len(sections))
	for _, section := range sections {
		orders[section.ID] = section.SectionOrder
	}
	return orders
}

func TestGetByPageFiltersAndSorts(t *testing.T) {
	svc := NewSectionService(setupServiceTestDB(t))

	mustCreateSection(t, svc, "home", "text", 3)
	mustCreateSection(t, svc, "about", "text", 1)
	mustCreateSection(t, svc, "home", "hero", 1)
	mustCreateSection(t, svc, "home", "cards", 2)

	sections, err := svc.GetByPage("home")
	if err != nil {
		t.Fatalf("GetByPage returned error: %v", err)
	}
	if len(sections) != 3 {
		t.Fatalf("expected 3 home sections, got %d", len(sections))
	}
	for i, section := range sections {
		if section.Page != "home" {
			t.Fatalf("unexpected page %q in result", section.Page)
		}
		if i > 0 && sections[i-1].SectionOrder > section.SectionOrder {
			t.Fatalf("sections not sorted: %d before %d", sections[i-1].SectionOrder, section.SectionOrder)
		}
	}

	empty, err := svc.GetByPage("missing")
	if err != nil {
		t.Fatalf("GetByPage for empty page returned error: %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", empty)
	}
}

func TestCreateAndGetRoundTripsContent(t *testing.T) {
	svc := NewSectionService(setupServiceTestDB(t))

	raw := `{"heading":"환영합니다","subheading":"Sunday 11am","tags":["a","b"],"nested":{"n":1}}`
	created, err := svc.Create(SectionInput{Page: "home", Kind: "hero", Content: []byte(raw)})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected generated id")
	}

	fetched, err := svc.Get(created.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}

	var want, got map[string]any
	if err := json.Unmarshal([]byte(raw), &want); err != nil {
		t.Fatalf("unmarshal want: %v", err)
	}
	if err := json.Unmarshal(fetched.Content, &got); err != nil {
		t.Fatalf("unmarshal got: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("content mismatch (-want +got):\n%s", diff)
	}
}

func TestCreateAppendsAfterLastSection(t *testing.T) {
	svc := NewSectionService(setupServiceTestDB(t))

	mustCreateSection(t, svc, "home", "hero", 7)
	appended, err := svc.Create(SectionInput{Page: "home", Kind: "text"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if appended.SectionOrder != 8 {
		t.Fatalf("expected order 8, got %d", appended.SectionOrder)
	}
	if string(appended.Content) != "{}" {
		t.Fatalf("expected empty object content, got %s", appended.Content)
	}

	first, err := svc.Create(SectionInput{Page: "about", Kind: "text"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if first.SectionOrder != 1 {
		t.Fatalf("expected first section of a page to get order 1, got %d", first.SectionOrder)
	}
}

func TestCreateValidatesInput(t *testing.T) {
	svc := NewSectionService(setupServiceTestDB(t))

	if _, err := svc.Create(SectionInput{Page: " ", Kind: "hero"}); !errors.Is(err, ErrSectionInputInvalid) {
		t.Fatalf("expected ErrSectionInputInvalid for missing page, got %v", err)
	}
	if _, err := svc.Create(SectionInput{Page: "home", Kind: ""}); !errors.Is(err, ErrSectionInputInvalid) {
		t.Fatalf("expected ErrSectionInputInvalid for missing kind, got %v", err)
	}
	if _, err := svc.Create(SectionInput{Page: "home", Kind: "hero", Content: []byte(`[1,2]`)}); !errors.Is(err, ErrSectionContentInvalid) {
		t.Fatalf("expected ErrSectionContentInvalid, got %v", err)
	}
	if _, err := svc.Create(SectionInput{Page: "home", Kind: "never-seen-kind"}); err != nil {
		t.Fatalf("unknown kinds must be stored, got %v", err)
	}
}

func TestUpdateIsIdempotentAndKeepsContent(t *testing.T) {
	svc := NewSectionService(setupServiceTestDB(t))

	created, err := svc.Create(SectionInput{Page: "home", Kind: "text", Content: []byte(`{"body":"hello"}`)})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	patch := SectionPatch{Title: strPtr("X")}
	first, err := svc.Update(created.ID, patch)
	if err != nil {
		t.Fatalf("first Update returned error: %v", err)
	}
	second, err := svc.Update(created.ID, patch)
	if err != nil {
		t.Fatalf("second Update returned error: %v", err)
	}

	if first.Title != "X" || second.Title != "X" {
		t.Fatalf("expected title X, got %q and %q", first.Title, second.Title)
	}
	if string(second.Content) != `{"body":"hello"}` {
		t.Fatalf("expected content untouched, got %s", second.Content)
	}
	if second.Page != "home" || second.Kind != "text" {
		t.Fatalf("unexpected page/kind change: %s/%s", second.Page, second.Kind)
	}
}

func TestUpdateAndDeleteMissingSection(t *testing.T) {
	svc := NewSectionService(setupServiceTestDB(t))

	if _, err := svc.Update("nope", SectionPatch{Title: strPtr("x")}); !errors.Is(err, ErrSectionNotFound) {
		t.Fatalf("expected ErrSectionNotFound from Update, got %v", err)
	}
	if err := svc.Delete("nope"); !errors.Is(err, ErrSectionNotFound) {
		t.Fatalf("expected ErrSectionNotFound from Delete, got %v", err)
	}

	created := mustCreateSection(t, svc, "home", "hero", 1)
	if err := svc.Delete(created.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := svc.Get(created.ID); !errors.Is(err, ErrSectionNotFound) {
		t.Fatalf("expected deleted section to be gone, got %v", err)
	}
}

func TestUpdateOrderRollsBackOnUnknownID(t *testing.T) {
	svc := NewSectionService(setupServiceTestDB(t))

	a := mustCreateSection(t, svc, "home", "hero", 1)
	b := mustCreateSection(t, svc, "home", "text", 2)

	err := svc.UpdateOrder([]SectionOrderUpdate{
		{ID: a.ID, Order: 10},
		{ID: "missing", Order: 11},
		{ID: b.ID, Order: 12},
	})
	if !errors.Is(err, ErrSectionNotFound) {
		t.Fatalf("expected ErrSectionNotFound, got %v", err)
	}

	want := map[string]int{a.ID: 1, b.ID: 2}
	if diff := cmp.Diff(want, sectionOrders(t, svc, "home")); diff != "" {
		t.Fatalf("orders changed despite rollback (-want +got):\n%s", diff)
	}

	if err := svc.UpdateOrder([]SectionOrderUpdate{{ID: a.ID, Order: 2}, {ID: a.ID, Order: 3}}); !errors.Is(err, ErrSectionOrderInvalid) {
		t.Fatalf("expected ErrSectionOrderInvalid for duplicate ids, got %v", err)
	}

	if err := svc.UpdateOrder([]SectionOrderUpdate{{ID: a.ID, Order: 2}, {ID: b.ID, Order: 1}}); err != nil {
		t.Fatalf("UpdateOrder returned error: %v", err)
	}
	want = map[string]int{a.ID: 2, b.ID: 1}
	if diff := cmp.Diff(want, sectionOrders(t, svc, "home")); diff != "" {
		t.Fatalf("unexpected orders (-want +got):\n%s", diff)
	}
}

func TestMoveSwapsWithNeighbour(t *testing.T) {
	svc := NewSectionService(setupServiceTestDB(t))

	first := mustCreateSection(t, svc, "home", "hero", 1)
	second := mustCreateSection(t, svc, "home", "text", 2)
	third := mustCreateSection(t, svc, "home", "cards", 3)

	if err := svc.Move(second.ID, MoveUp); err != nil {
		t.Fatalf("Move returned error: %v", err)
	}

	want := map[string]int{first.ID: 2, second.ID: 1, third.ID: 3}
	if diff := cmp.Diff(want, sectionOrders(t, svc, "home")); diff != "" {
		t.Fatalf("unexpected orders (-want +got):\n%s", diff)
	}

	sections, err := svc.GetByPage("home")
	if err != nil {
		t.Fatalf("GetByPage: %v", err)
	}
	got := []string{sections[0].ID, sections[1].ID, sections[2].ID}
	if diff := cmp.Diff([]string{second.ID, first.ID, third.ID}, got); diff != "" {
		t.Fatalf("unexpected display order (-want +got):\n%s", diff)
	}
}

func TestMoveAtEdgesIsNoop(t *testing.T) {
	svc := NewSectionService(setupServiceTestDB(t))

	first := mustCreateSection(t, svc, "home", "hero", 1)
	last := mustCreateSection(t, svc, "home", "text", 2)

	if err := svc.Move(first.ID, MoveUp); err != nil {
		t.Fatalf("Move up at top returned error: %v", err)
	}
	if err := svc.Move(last.ID, MoveDown); err != nil {
		t.Fatalf("Move down at bottom returned error: %v", err)
	}

	want := map[string]int{first.ID: 1, last.ID: 2}
	if diff := cmp.Diff(want, sectionOrders(t, svc, "home")); diff != "" {
		t.Fatalf("unexpected orders (-want +got):\n%s", diff)
	}

	if err := svc.Move(first.ID, "sideways"); !errors.Is(err, ErrSectionOrderInvalid) {
		t.Fatalf("expected ErrSectionOrderInvalid, got %v", err)
	}
}

func TestMoveRenumbersEqualOrders(t *testing.T) {
	svc := NewSectionService(setupServiceTestDB(t))

	a := mustCreateSection(t, svc, "home", "hero", 0)
	b := mustCreateSection(t, svc, "home", "text", 0)
	c := mustCreateSection(t, svc, "home", "cards", 0)

	sections, err := svc.GetByPage("home")
	if err != nil {
		t.Fatalf("GetByPage: %v", err)
	}
	// 同序时以创建时间与 id 决定展示顺序
	second := sections[1]

	if err := svc.Move(second.ID, MoveDown); err != nil {
		t.Fatalf("Move returned error: %v", err)
	}

	orders := sectionOrders(t, svc, "home")
	if orders[second.ID] != 3 {
		t.Fatalf("expected moved section at order 3, got %d (all: %v)", orders[second.ID], orders)
	}
	seen := map[int]bool{}
	for _, id := range []string{a.ID, b.ID, c.ID} {
		seen[orders[id]] = true
	}
	if len(seen) != 3 {
		t.Fatalf("expected distinct orders after renumbering, got %v", orders)
	}
}

func TestMoveWithinKindsSkipsOtherKinds(t *testing.T) {
	svc := NewSectionService(setupServiceTestDB(t))

	heroA := mustCreateSection(t, svc, "home", "hero", 1)
	welcome := mustCreateSection(t, svc, "home", "welcome", 2)
	heroB := mustCreateSection(t, svc, "home", "hero", 3)

	if err := svc.Move(heroB.ID, MoveUp, "hero"); err != nil {
		t.Fatalf("Move returned error: %v", err)
	}

	heroes, err := svc.ListByPageAndKinds("home", "hero")
	if err != nil {
		t.Fatalf("ListByPageAndKinds: %v", err)
	}
	got := []string{heroes[0].ID, heroes[1].ID}
	if diff := cmp.Diff([]string{heroB.ID, heroA.ID}, got); diff != "" {
		t.Fatalf("unexpected hero order (-want +got):\n%s", diff)
	}

	want := map[string]int{heroB.ID: 1, welcome.ID: 2, heroA.ID: 3}
	if diff := cmp.Diff(want, sectionOrders(t, svc, "home")); diff != "" {
		t.Fatalf("unexpected orders (-want +got):\n%s", diff)
	}

	// 过滤后的首项上移不越过其他类型的区块
	if err := svc.Move(heroB.ID, MoveUp, "hero"); err != nil {
		t.Fatalf("Move at top returned error: %v", err)
	}
	if diff := cmp.Diff(want, sectionOrders(t, svc, "home")); diff != "" {
		t.Fatalf("move at top changed orders (-want +got):\n%s", diff)
	}
}

func TestMoveWithinKindsRenumbersWholePage(t *testing.T) {
	svc := NewSectionService(setupServiceTestDB(t))

	mustCreateSection(t, svc, "home", "hero", 0)
	mustCreateSection(t, svc, "home", "welcome", 0)
	mustCreateSection(t, svc, "home", "hero", 0)

	heroes, err := svc.ListByPageAndKinds("home", "hero")
	if err != nil {
		t.Fatalf("ListByPageAndKinds: %v", err)
	}
	first, second := heroes[0], heroes[1]

	if err := svc.Move(second.ID, MoveUp, "hero"); err != nil {
		t.Fatalf("Move returned error: %v", err)
	}

	after, err := svc.ListByPageAndKinds("home", "hero")
	if err != nil {
		t.Fatalf("ListByPageAndKinds: %v", err)
	}
	if after[0].ID != second.ID || after[1].ID != first.ID {
		t.Fatalf("expected heroes swapped, got %s then %s", after[0].ID, after[1].ID)
	}

	seen := map[int]bool{}
	for _, order := range sectionOrders(t, svc, "home") {
		seen[order] = true
	}
	if len(seen) != 3 {
		t.Fatalf("expected distinct orders across the page, got %v", seen)
	}
}

func TestListByPageAndKinds(t *testing.T) {
	svc := NewSectionService(setupServiceTestDB(t))

	mustCreateSection(t, svc, "home", "hero", 1)
	mustCreateSection(t, svc, "home", "text", 2)
	mustCreateSection(t, svc, "home", "image", 3)
	mustCreateSection(t, svc, "about", "text", 1)

	sections, err := svc.ListByPageAndKinds("home", "text", " image ", "")
	if err != nil {
		t.Fatalf("ListByPageAndKinds returned error: %v", err)
	}
	var kinds []string
	for _, section := range sections {
		kinds = append(kinds, section.Kind)
	}
	if diff := cmp.Diff([]string{"text", "image"}, kinds); diff != "" {
		t.Fatalf("unexpected kinds (-want +got):\n%s", diff)
	}

	all, err := svc.ListByPageAndKinds("home")
	if err != nil {
		t.Fatalf("ListByPageAndKinds returned error: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected all 3 home sections without a kind filter, got %d", len(all))
	}

	pages, err := svc.Pages()
	if err != nil {
		t.Fatalf("Pages returned error: %v", err)
	}
	if diff := cmp.Diff([]string{"about", "home"}, pages); diff != "" {
		t.Fatalf("unexpected pages (-want +got):\n%s", diff)
	}
}
