package service

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/gracechurch/internal/db"
)

const sitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// SitemapService 汇总固定路由与已发布页面生成 sitemap.xml。
type SitemapService struct {
	pages *PageService
}

// NewSitemapService 构造 SitemapService。
func NewSitemapService(pages *PageService) *SitemapService {
	return &SitemapService{pages: pages}
}

// Build 返回完整的 sitemap 文档。staticPaths 为公开路由表中的固定路径。
func (s *SitemapService) Build(baseURL string, staticPaths []string) ([]byte, error) {
	published, err := s.pages.ListPublished()
	if err != nil {
		return nil, err
	}
	return BuildSitemap(baseURL, staticPaths, published)
}

// BuildSitemap 生成 sitemap；动态页面使用 /pages/<slug> 并带上 lastmod。
func BuildSitemap(baseURL string, staticPaths []string, pages []db.Page) ([]byte, error) {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")

	set := sitemapURLSet{Xmlns: sitemapNamespace}
	seen := make(map[string]struct{}, len(staticPaths)+len(pages))
	add := func(path, lastMod string) {
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		set.URLs = append(set.URLs, sitemapURL{Loc: base + path, LastMod: lastMod})
	}

	for _, path := range staticPaths {
		add(path, "")
	}
	for _, page := range pages {
		if !page.Published {
			continue
		}
		lastMod := ""
		if !page.UpdatedAt.IsZero() {
			lastMod = page.UpdatedAt.UTC().Format("2006-01-02")
		}
		add("/pages/"+page.Slug, lastMod)
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	encoder := xml.NewEncoder(&buf)
	encoder.Indent("", "  ")
	if err := encoder.Encode(set); err != nil {
		return nil, fmt.Errorf("encode sitemap: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
