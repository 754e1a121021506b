package content

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDecodeKnownKindsNeverFallBack(t *testing.T) {
	for _, kind := range KnownKinds() {
		t.Run(string(kind), func(t *testing.T) {
			decoded, err := Decode(string(kind), []byte(`{}`))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if _, isRaw := decoded.(Raw); isRaw {
				t.Fatalf("expected dedicated struct for %q, got Raw", kind)
			}
			if decoded.Kind() != kind {
				t.Fatalf("expected kind %q, got %q", kind, decoded.Kind())
			}
		})
	}
}

func TestDecodeUnknownKindReturnsRaw(t *testing.T) {
	for _, kind := range []string{"", "heroo", "Hero", "sermon-list"} {
		decoded, err := Decode(kind, []byte(`{"foo":"bar"}`))
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", kind, err)
		}
		raw, ok := decoded.(Raw)
		if !ok {
			t.Fatalf("expected Raw for %q, got %T", kind, decoded)
		}
		if raw.Data["foo"] != "bar" {
			t.Fatalf("expected raw data to be preserved, got %v", raw.Data)
		}
	}
}

func TestDecodeHeroDefaults(t *testing.T) {
	decoded, err := Decode("hero", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	hero := decoded.(Hero)
	if hero.Heading != DefaultChurchName {
		t.Fatalf("expected default heading %q, got %q", DefaultChurchName, hero.Heading)
	}
}

func TestDecodeKeepsFieldsAroundTypeMismatch(t *testing.T) {
	decoded, err := Decode("hero", []byte(`{"heading": 5, "subheading": "Sub", "extra": true}`))
	if err == nil {
		t.Fatal("expected drift error for numeric heading")
	}
	hero := decoded.(Hero)
	if hero.Subheading != "Sub" {
		t.Fatalf("expected subheading to survive, got %q", hero.Subheading)
	}
	if hero.Heading != DefaultChurchName {
		t.Fatalf("expected heading to fall back, got %q", hero.Heading)
	}
}

func TestDecodeRejectsNonObject(t *testing.T) {
	decoded, err := Decode("text", []byte(`["a","b"]`))
	if !errors.Is(err, ErrNotObject) {
		t.Fatalf("expected ErrNotObject, got %v", err)
	}
	if decoded.(Text).Align != "left" {
		t.Fatalf("expected defaults to apply on drift")
	}
}

func TestNoticesSortedByDateDesc(t *testing.T) {
	decoded, err := Decode("notices", []byte(`{"notices":[
		{"title":"A","date":"2025-01-01"},
		{"title":"B","date":"2025-02-01"},
		{"title":"C"},
		{"title":"D","date":"2024-12-01","pinned":true}
	]}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var titles []string
	for _, notice := range decoded.(Notices).Sorted() {
		titles = append(titles, notice.Title)
	}

	want := []string{"D", "B", "A", "C"}
	if diff := cmp.Diff(want, titles); diff != "" {
		t.Fatalf("unexpected order (-want +got):\n%s", diff)
	}
}

func TestPrayerSortedNewestFirst(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{
			name: "by date",
			raw:  `{"requests":[{"title":"old","date":"2025-01-05"},{"title":"new","date":"2025-03-01"},{"title":"mid","date":"2025-02-10"}]}`,
			want: []string{"new", "mid", "old"},
		},
		{
			name: "undated last, stable",
			raw:  `{"requests":[{"title":"x"},{"title":"dated","date":"2024-12-24"},{"title":"y","date":" "}]}`,
			want: []string{"dated", "x", "y"},
		},
		{
			name: "empty",
			raw:  `{}`,
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decoded, err := Decode("prayer", []byte(tt.raw))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			var titles []string
			for _, request := range decoded.(Prayer).Sorted() {
				titles = append(titles, request.Title)
			}
			if diff := cmp.Diff(tt.want, titles); diff != "" {
				t.Fatalf("unexpected order (-want +got):\n%s", diff)
			}
		})
	}
}

func TestImageSliderDefaults(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		interval int
		images   []string
	}{
		{name: "empty", raw: `{}`, interval: 5000},
		{name: "negative interval", raw: `{"interval":-10,"slides":[{"image":"a"}]}`, interval: 5000, images: []string{"a"}},
		{name: "custom interval", raw: `{"interval":3000,"slides":[{"image":"a"},{"image":"b"}]}`, interval: 3000, images: []string{"a", "b"}},
		{name: "drops slides without image", raw: `{"slides":[{"caption":"no image"},{"image":"  "},{"image":"kept"}]}`, interval: 5000, images: []string{"kept"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decoded, err := Decode("image-slider", []byte(tt.raw))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			slider := decoded.(ImageSlider)
			if slider.Interval != tt.interval {
				t.Fatalf("expected interval %d, got %d", tt.interval, slider.Interval)
			}
			var images []string
			for _, slide := range slider.Slides {
				images = append(images, slide.Image)
			}
			if diff := cmp.Diff(tt.images, images); diff != "" {
				t.Fatalf("unexpected slides (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCardsColumnsClamped(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{raw: `{}`, want: 3},
		{raw: `{"columns": 2}`, want: 2},
		{raw: `{"columns": 9}`, want: 4},
	}
	for _, tt := range tests {
		decoded, _ := Decode("cards", []byte(tt.raw))
		if got := decoded.(Cards).Columns; got != tt.want {
			t.Fatalf("%s: expected %d columns, got %d", tt.raw, tt.want, got)
		}
	}
}

func TestTemplate(t *testing.T) {
	if got := string(Template("unknown-kind")); got != "{}" {
		t.Fatalf("expected empty object, got %s", got)
	}
	if got := string(Template("hero")); !strings.Contains(got, DefaultChurchName) {
		t.Fatalf("expected hero template to carry default heading, got %s", got)
	}
}

func TestIsObject(t *testing.T) {
	tests := map[string]bool{
		"":           true,
		"  ":         true,
		`{}`:         true,
		`{"a":1}`:    true,
		`[]`:         false,
		`"text"`:     false,
		`{"broken":`: false,
		`null`:       false,
	}
	for input, want := range tests {
		if got := IsObject([]byte(input)); got != want {
			t.Fatalf("IsObject(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestIsKnown(t *testing.T) {
	if !IsKnown(" notices ") {
		t.Fatal("expected notices to be known")
	}
	if IsKnown("bulletin") {
		t.Fatal("expected bulletin to be unknown")
	}
}
