package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"testing"
	"time"
)

type uploadPart struct {
	name        string
	contentType string
	body        []byte
}

func buildFileHeaders(t *testing.T, parts ...uploadPart) []*multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for _, part := range parts {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", `form-data; name="files"; filename="`+part.name+`"`)
		header.Set("Content-Type", part.contentType)
		w, err := writer.CreatePart(header)
		if err != nil {
			t.Fatalf("create part: %v", err)
		}
		w.Write(part.body)
	}
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/upload", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if err := req.ParseMultipartForm(10 << 20); err != nil {
		t.Fatalf("parse multipart: %v", err)
	}
	return req.MultipartForm.File["files"]
}

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, width, height))); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		input    string
		wantBase string
		wantExt  string
	}{
		{input: "photo.JPG", wantBase: "photo", wantExt: ".jpg"},
		{input: "my photo (1).png", wantBase: "my_photo__1_", wantExt: ".png"},
		{input: "../../etc/passwd.png", wantBase: "passwd", wantExt: ".png"},
		{input: `C:\Users\kim\예배.jpg`, wantBase: "image", wantExt: ".jpg"},
		{input: "", wantBase: "image", wantExt: ""},
	}
	for _, tt := range tests {
		base, ext := SanitizeFileName(tt.input)
		if base != tt.wantBase || ext != tt.wantExt {
			t.Fatalf("SanitizeFileName(%q) = (%q, %q), want (%q, %q)", tt.input, base, ext, tt.wantBase, tt.wantExt)
		}
	}
}

func TestUploadSaveWritesFilesInOrder(t *testing.T) {
	dir := t.TempDir()
	svc := NewUploadService(dir, "/uploads/")
	svc.now = func() time.Time { return time.UnixMilli(1700000000000) }

	files := buildFileHeaders(t,
		uploadPart{name: "cover photo.png", contentType: "image/png", body: pngBytes(t, 3, 2)},
		uploadPart{name: "cover photo.png", contentType: "image/png", body: pngBytes(t, 5, 4)},
		uploadPart{name: "scan.webp", contentType: "image/webp", body: []byte("not really webp")},
	)

	results, err := svc.Save(context.Background(), files)
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	if results[0].URL != "/uploads/cover_photo-1700000000000.png" {
		t.Fatalf("unexpected url %q", results[0].URL)
	}
	if results[1].URL != "/uploads/cover_photo-1700000000000-1.png" {
		t.Fatalf("expected duplicate name to get a suffix, got %q", results[1].URL)
	}
	if results[0].Width != 3 || results[0].Height != 2 || results[1].Width != 5 {
		t.Fatalf("unexpected dimensions: %+v", results)
	}
	if results[2].Width != 0 || results[2].Height != 0 {
		t.Fatalf("expected zero dimensions for undecodable file, got %+v", results[2])
	}
	if results[0].OriginalName != "cover photo.png" || results[0].Alt != "cover photo" {
		t.Fatalf("unexpected metadata: %+v", results[0])
	}

	if _, err := os.Stat(filepath.Join(dir, "cover_photo-1700000000000.png")); err != nil {
		t.Fatalf("expected file on disk: %v", err)
	}
}

func TestUploadSaveNeverOverwritesExistingFiles(t *testing.T) {
	dir := t.TempDir()
	svc := NewUploadService(dir, "/uploads")
	svc.now = func() time.Time { return time.UnixMilli(1700000000000) }

	first, err := svc.Save(context.Background(), buildFileHeaders(t,
		uploadPart{name: "bulletin.png", contentType: "image/png", body: pngBytes(t, 2, 2)},
	))
	if err != nil {
		t.Fatalf("first Save returned error: %v", err)
	}
	second, err := svc.Save(context.Background(), buildFileHeaders(t,
		uploadPart{name: "bulletin.png", contentType: "image/png", body: pngBytes(t, 7, 7)},
	))
	if err != nil {
		t.Fatalf("second Save returned error: %v", err)
	}

	if first[0].URL != "/uploads/bulletin-1700000000000.png" {
		t.Fatalf("unexpected first url %q", first[0].URL)
	}
	if second[0].URL != "/uploads/bulletin-1700000000000-1.png" {
		t.Fatalf("expected a suffixed name for the clashing upload, got %q", second[0].URL)
	}

	f, err := os.Open(filepath.Join(dir, "bulletin-1700000000000.png"))
	if err != nil {
		t.Fatalf("open first file: %v", err)
	}
	defer f.Close()
	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		t.Fatalf("decode first file: %v", err)
	}
	if cfg.Width != 2 {
		t.Fatalf("first upload was overwritten: width %d", cfg.Width)
	}
}

func TestUploadSaveRejectsNonImages(t *testing.T) {
	dir := t.TempDir()
	svc := NewUploadService(dir, "/uploads")

	files := buildFileHeaders(t,
		uploadPart{name: "ok.png", contentType: "image/png", body: pngBytes(t, 1, 1)},
		uploadPart{name: "notes.txt", contentType: "text/plain", body: []byte("hello")},
	)
	if _, err := svc.Save(context.Background(), files); !errors.Is(err, ErrUploadInvalid) {
		t.Fatalf("expected ErrUploadInvalid, got %v", err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Fatalf("expected nothing written, found %d files", len(entries))
	}

	if _, err := svc.Save(context.Background(), nil); !errors.Is(err, ErrUploadInvalid) {
		t.Fatalf("expected ErrUploadInvalid for empty request, got %v", err)
	}
}
