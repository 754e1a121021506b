package view

import (
	"net/url"
	"strings"

	g "github.com/maragudk/gomponents"
	h "github.com/maragudk/gomponents/html"

	"github.com/gracechurch/internal/content"
)

const imageWidth = 1600

func classAttr(classes ...string) g.Node {
	parts := make([]string, 0, len(classes))
	for _, class := range classes {
		if trimmed := strings.TrimSpace(class); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return h.Class(strings.Join(parts, " "))
}

// safeURL 仅放行 http(s)、mailto、tel 与站内相对地址。
func safeURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	if strings.HasPrefix(trimmed, "/") || strings.HasPrefix(trimmed, "#") {
		return trimmed
	}
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return ""
	}
	switch strings.ToLower(parsed.Scheme) {
	case "http", "https", "mailto", "tel":
		return trimmed
	case "":
		return trimmed
	default:
		return ""
	}
}

func imageSrc(ref string, width int) string {
	return safeURL(content.ThumbnailURL(ref, width))
}

var cssURLEscaper = strings.NewReplacer(`"`, "%22", "'", "%27", "(", "%28", ")", "%29", `\`, "%5C")

func backgroundStyle(ref string) g.Node {
	src := imageSrc(ref, imageWidth)
	if src == "" {
		return g.Group(nil)
	}
	return h.Style("background-image: url('" + cssURLEscaper.Replace(src) + "')")
}

// textEl 在 value 为空时不输出任何内容。
func textEl(tag, class, value string) g.Node {
	if strings.TrimSpace(value) == "" {
		return g.Group(nil)
	}
	return g.El(tag, classAttr(class), g.Text(value))
}

func img(ref, alt, class string, width int) g.Node {
	src := imageSrc(ref, width)
	if src == "" {
		return g.Group(nil)
	}
	return h.Img(classAttr(class), h.Src(src), h.Alt(alt), g.Attr("loading", "lazy"))
}

// linkOr 有链接时包一层 <a>，否则原样返回子节点。
func linkOr(href, class string, children ...g.Node) g.Node {
	if target := safeURL(href); target != "" {
		nodes := append([]g.Node{classAttr(class), h.Href(target)}, children...)
		return h.A(nodes...)
	}
	return g.Group(children)
}

func bulletList(class string, items []string) g.Node {
	nodes := make([]g.Node, 0, len(items)+1)
	nodes = append(nodes, classAttr(class))
	for _, item := range items {
		if strings.TrimSpace(item) == "" {
			continue
		}
		nodes = append(nodes, h.Li(g.Text(item)))
	}
	if len(nodes) == 1 {
		return g.Group(nil)
	}
	return h.Ul(nodes...)
}

func timeEl(date string) g.Node {
	if strings.TrimSpace(date) == "" {
		return g.Group(nil)
	}
	return g.El("time", g.Attr("datetime", date), g.Text(date))
}
