package view

import (
	"bytes"
	"log"
	"strings"

	g "github.com/maragudk/gomponents"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify, extension.Table),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
	)
	sanitizer = bluemonday.UGCPolicy()
)

// RenderMarkdown 将 Markdown 转为经过清洗的 HTML。
func RenderMarkdown(source string) (string, error) {
	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(source), &buf); err != nil {
		return "", err
	}
	return string(sanitizer.SanitizeBytes(buf.Bytes())), nil
}

// Markdown 渲染一段 Markdown，失败时退回纯文本。
func Markdown(class, source string) g.Node {
	if strings.TrimSpace(source) == "" {
		return g.Group(nil)
	}
	rendered, err := RenderMarkdown(source)
	if err != nil {
		log.Printf("[view] markdown render failed: %v", err)
		return g.El("div", classAttr("markdown", class), g.Text(source))
	}
	return g.El("div", classAttr("markdown", class), g.Raw(rendered))
}
