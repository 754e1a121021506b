package service

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
	"golang.org/x/sync/errgroup"
)

// ErrUploadInvalid 表示请求中没有文件或包含非图片文件。
var ErrUploadInvalid = errors.New("only image files can be uploaded")

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)

// UploadedImage 描述一张已保存的图片。
type UploadedImage struct {
	URL          string `json:"url"`
	Alt          string `json:"alt"`
	OriginalName string `json:"originalName"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
}

// UploadService 将图片写入本地上传目录。
type UploadService struct {
	dir     string
	urlPath string
	now     func() time.Time
}

// NewUploadService 构造 UploadService，urlPath 为对外暴露的静态路径前缀。
func NewUploadService(dir, urlPath string) *UploadService {
	return &UploadService{
		dir:     dir,
		urlPath: "/" + strings.Trim(strings.TrimSpace(urlPath), "/"),
		now:     time.Now,
	}
}

// Save 并发保存全部文件，结果顺序与输入一致。任一文件失败则整体返回错误。
func (s *UploadService) Save(ctx context.Context, files []*multipart.FileHeader) ([]UploadedImage, error) {
	if len(files) == 0 {
		return nil, ErrUploadInvalid
	}
	for _, file := range files {
		if !strings.HasPrefix(strings.ToLower(file.Header.Get("Content-Type")), "image/") {
			return nil, fmt.Errorf("%w: %s", ErrUploadInvalid, file.Filename)
		}
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}

	names := s.storedNames(files)
	results := make([]UploadedImage, len(files))

	group, ctx := errgroup.WithContext(ctx)
	for i, file := range files {
		i, file := i, file
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			stored, width, height, err := s.saveOne(file, names[i])
			if err != nil {
				return fmt.Errorf("save %s: %w", file.Filename, err)
			}
			results[i] = UploadedImage{
				URL:          path.Join(s.urlPath, stored),
				Alt:          strings.TrimSuffix(filepath.Base(file.Filename), filepath.Ext(file.Filename)),
				OriginalName: file.Filename,
				Width:        width,
				Height:       height,
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (s *UploadService) saveOne(file *multipart.FileHeader, name string) (string, int, int, error) {
	src, err := file.Open()
	if err != nil {
		return "", 0, 0, err
	}
	defer src.Close()

	out, stored, err := createExclusive(s.dir, name)
	if err != nil {
		return "", 0, 0, err
	}
	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		return "", 0, 0, err
	}
	if err := out.Close(); err != nil {
		return "", 0, 0, err
	}

	// 无法识别的格式宽高记为 0
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return stored, 0, 0, nil
	}
	cfg, _, err := image.DecodeConfig(src)
	if err != nil {
		return stored, 0, 0, nil
	}
	return stored, cfg.Width, cfg.Height, nil
}

const maxNameAttempts = 100

// createExclusive 以 O_EXCL 创建文件，不覆盖已有文件；重名时在扩展名前追加序号。
func createExclusive(dir, name string) (*os.File, string, error) {
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	candidate := name
	for attempt := 1; attempt <= maxNameAttempts; attempt++ {
		out, err := os.OpenFile(filepath.Join(dir, candidate), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			return out, candidate, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return nil, "", err
		}
		candidate = fmt.Sprintf("%s-%d%s", base, attempt, ext)
	}
	return nil, "", fmt.Errorf("no free file name for %s", name)
}

// storedNames 为每个文件生成 <base>-<毫秒时间戳><ext>，同批次重名时追加序号。
func (s *UploadService) storedNames(files []*multipart.FileHeader) []string {
	stamp := s.now().UnixMilli()
	seen := make(map[string]int, len(files))
	names := make([]string, len(files))
	for i, file := range files {
		base, ext := SanitizeFileName(file.Filename)
		name := fmt.Sprintf("%s-%d%s", base, stamp, ext)
		if n := seen[name]; n > 0 {
			seen[name] = n + 1
			name = fmt.Sprintf("%s-%d-%d%s", base, stamp, n, ext)
		} else {
			seen[name] = 1
		}
		names[i] = name
	}
	return names
}

// SanitizeFileName 拆分并清理文件名：仅保留 ASCII 字母、数字与 ._-，其余替换为下划线。
func SanitizeFileName(name string) (string, string) {
	name = filepath.Base(strings.ReplaceAll(strings.TrimSpace(name), `\`, "/"))
	if name == "." || name == "/" {
		name = ""
	}
	ext := strings.ToLower(filepath.Ext(name))
	base := strings.TrimSuffix(name, filepath.Ext(name))

	ext = unsafeFileChars.ReplaceAllString(ext, "_")
	base = strings.Trim(unsafeFileChars.ReplaceAllString(base, "_"), ".")
	if base == "" || strings.Trim(base, "_") == "" {
		base = "image"
	}
	return base, ext
}
