package view

import (
	"strings"
	"testing"

	"github.com/gracechurch/internal/db"
)

func TestSectionListEscapesPageKey(t *testing.T) {
	out := render(t, SectionList(SectionListProps{
		BasePath: "/admin/sections/all",
		Page:     "a&b",
		Pages:    []string{"a&b"},
		Kinds:    []string{"hero"},
		Sections: []db.Section{
			{ID: "s-1", Page: "a&b", Kind: "hero", SectionOrder: 1},
			{ID: "s-2", Page: "a&b", Kind: "hero", SectionOrder: 2},
		},
	}))

	for _, want := range []string{
		"/admin/sections/all/s-1/move?direction=down&amp;page=a%26b",
		"/admin/sections/all/s-2/move?direction=up&amp;page=a%26b",
		"/admin/sections/all/s-1/delete?page=a%26b",
		"/admin/sections/all/new?page=a%26b&amp;kind=hero",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in %s", want, out)
		}
	}
	if strings.Contains(out, "page=a&amp;b") {
		t.Fatalf("page key leaked unescaped: %s", out)
	}
}

func TestAdminPagesEscapesSlug(t *testing.T) {
	out := render(t, AdminPages([]db.Page{{Slug: "a&b", Title: "Odd"}}))
	if !strings.Contains(out, "/admin/sections/all?page=a%26b") {
		t.Fatalf("expected escaped section link in %s", out)
	}
}

func TestSectionFormListsIconKeys(t *testing.T) {
	out := render(t, SectionForm(SectionFormProps{Action: "/admin/sections/welcome/s-1", Kind: "info-cards", Page: "home"}))
	for _, option := range IconOptions() {
		if !strings.Contains(out, "<code>"+option.Key+"</code>") {
			t.Fatalf("expected icon key %q in %s", option.Key, out)
		}
	}

	hero := render(t, SectionForm(SectionFormProps{Action: "/admin/sections/hero/s-2", Kind: "hero", Page: "home"}))
	if strings.Contains(hero, "icon-picker") {
		t.Fatalf("hero form should not list icons: %s", hero)
	}
}

func TestAdminGalleryEventListsPhotos(t *testing.T) {
	event := db.GalleryEvent{
		ID:         7,
		CategoryID: 2,
		Title:      "부활절",
		Photos:     []db.GalleryPhoto{{ID: 11, EventID: 7, FileURL: "driveFileId", FileName: "a.jpg"}},
	}
	out := render(t, AdminGalleryEvent(AdminGalleryEventProps{
		Event:      event,
		Categories: []db.GalleryCategory{{ID: 1, NameKR: "예배"}, {ID: 2, NameKR: "수련회"}},
	}))

	for _, want := range []string{
		`action="/admin/gallery/events/7"`,
		`action="/admin/gallery/events/7/photos"`,
		`action="/admin/gallery/events/7/photos/11/delete"`,
		`<option value="2" selected>`,
		"https://drive.google.com/thumbnail?id=driveFileId",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in %s", want, out)
		}
	}
}
