package view

import (
	"strings"
	"time"

	g "github.com/maragudk/gomponents"
	h "github.com/maragudk/gomponents/html"

	"github.com/gracechurch/internal/locale"
)

// NavItem 是顶部导航中的一个链接。
type NavItem struct {
	Label string
	Href  string
}

// SiteProps 是公开页面共用的站点信息。
type SiteProps struct {
	Name     string
	Tagline  string
	Footer   string
	Language string
	HTMLLang string
	Nav      []NavItem
	Current  string
	Switch   map[string]string
}

// PageProps 描述单个公开页面。
type PageProps struct {
	Site        SiteProps
	Title       string
	Description string
}

// Page 渲染完整的公开页面。
func Page(props PageProps, children ...g.Node) g.Node {
	title := props.Site.Name
	if props.Title != "" && props.Title != props.Site.Name {
		title = props.Title + " | " + props.Site.Name
	}
	htmlLang := props.Site.HTMLLang
	if htmlLang == "" {
		htmlLang = locale.PreferenceForLanguage(props.Site.Language).HTMLLang
	}

	return h.Doctype(
		h.HTML(h.Lang(htmlLang),
			h.Head(
				h.Meta(h.Charset("utf-8")),
				h.Meta(h.Name("viewport"), h.Content("width=device-width, initial-scale=1")),
				g.If(props.Description != "", h.Meta(h.Name("description"), h.Content(props.Description))),
				h.Link(h.Rel("stylesheet"), h.Href("/static/css/site.css")),
				h.TitleEl(g.Text(title)),
			),
			h.Body(
				siteHeader(props.Site),
				h.Main(h.Class("site-main"), g.Group(children)),
				siteFooter(props.Site),
				h.Script(h.Src("/static/js/site.js"), g.Attr("defer")),
			),
		),
	)
}

func siteHeader(site SiteProps) g.Node {
	links := make([]g.Node, 0, len(site.Nav)+1)
	links = append(links, h.Class("site-nav__list"))
	for _, item := range site.Nav {
		class := "site-nav__item"
		if isCurrent(site.Current, item.Href) {
			class += " is-active"
		}
		links = append(links, h.Li(h.Class(class), h.A(h.Href(item.Href), g.Text(item.Label))))
	}

	return h.Header(h.Class("site-header"),
		h.A(h.Class("site-brand"), h.Href("/"),
			g.Text(site.Name),
			textEl("small", "site-brand__tagline", site.Tagline),
		),
		h.Nav(h.Class("site-nav"), h.Ul(links...)),
		languageSwitch(site),
	)
}

func languageSwitch(site SiteProps) g.Node {
	if len(site.Switch) == 0 {
		return g.Group(nil)
	}
	return h.Div(h.Class("lang-switch"),
		h.A(h.Href(site.Switch[locale.LanguageKorean]), g.Text("한국어")),
		h.A(h.Href(site.Switch[locale.LanguageEnglish]), g.Text("English")),
	)
}

func siteFooter(site SiteProps) g.Node {
	footer := site.Footer
	if footer == "" {
		footer = "© " + time.Now().Format("2006") + " " + site.Name
	}
	return h.Footer(h.Class("site-footer"), h.P(g.Text(footer)))
}

func isCurrent(current, href string) bool {
	if href == "/" {
		return current == "/"
	}
	return current == href || strings.HasPrefix(current, href+"/")
}
