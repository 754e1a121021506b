package service

import (
	"errors"
	"testing"
)

func TestPageSaveCreatesAndUpdates(t *testing.T) {
	svc := NewPageService(setupServiceTestDB(t))

	page, err := svc.Save(PageInput{Slug: "/Easter-2025/", Title: "부활절", Published: false})
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if page.Slug != "easter-2025" {
		t.Fatalf("expected normalized slug, got %q", page.Slug)
	}

	updated, err := svc.Save(PageInput{Slug: "easter-2025", Title: "Easter", Published: true})
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if updated.ID != page.ID || updated.Title != "Easter" || !updated.Published {
		t.Fatalf("expected in-place update, got %#v", updated)
	}
}

func TestPageSaveRejectsInvalidInput(t *testing.T) {
	svc := NewPageService(setupServiceTestDB(t))

	for _, input := range []PageInput{
		{Slug: "", Title: "x"},
		{Slug: "ok", Title: " "},
		{Slug: "bad slug", Title: "x"},
	} {
		if _, err := svc.Save(input); !errors.Is(err, ErrPageInputInvalid) {
			t.Fatalf("expected ErrPageInputInvalid for %#v, got %v", input, err)
		}
	}
}

func TestPageGetPublishedHidesDrafts(t *testing.T) {
	svc := NewPageService(setupServiceTestDB(t))

	if _, err := svc.Save(PageInput{Slug: "draft", Title: "Draft"}); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if _, err := svc.Save(PageInput{Slug: "live", Title: "Live", Published: true}); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	if _, err := svc.GetPublished("draft"); !errors.Is(err, ErrPageNotFound) {
		t.Fatalf("expected draft to be hidden, got %v", err)
	}
	if _, err := svc.GetPublished("live"); err != nil {
		t.Fatalf("expected live page, got %v", err)
	}

	published, err := svc.ListPublished()
	if err != nil {
		t.Fatalf("ListPublished returned error: %v", err)
	}
	if len(published) != 1 || published[0].Slug != "live" {
		t.Fatalf("unexpected published pages: %#v", published)
	}

	if err := svc.Delete("live"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if err := svc.Delete("live"); !errors.Is(err, ErrPageNotFound) {
		t.Fatalf("expected ErrPageNotFound, got %v", err)
	}
}
