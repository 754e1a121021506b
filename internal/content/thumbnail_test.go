package content

import "testing"

func TestThumbnailURL(t *testing.T) {
	tests := []struct {
		name  string
		ref   string
		width int
		want  string
	}{
		{name: "empty", ref: "  ", width: 400, want: ""},
		{name: "https", ref: "https://example.com/a.jpg", width: 400, want: "https://example.com/a.jpg"},
		{name: "http upper", ref: "HTTP://example.com/a.jpg", width: 400, want: "HTTP://example.com/a.jpg"},
		{name: "site path", ref: "/uploads/a.jpg", width: 400, want: "/uploads/a.jpg"},
		{name: "drive id", ref: "1AbC_dEf-123", width: 400, want: "https://drive.google.com/thumbnail?id=1AbC_dEf-123&sz=w400"},
		{name: "default width", ref: "abc", width: 0, want: "https://drive.google.com/thumbnail?id=abc&sz=w800"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ThumbnailURL(tt.ref, tt.width); got != tt.want {
				t.Fatalf("ThumbnailURL(%q, %d) = %q, want %q", tt.ref, tt.width, got, tt.want)
			}
		})
	}
}
