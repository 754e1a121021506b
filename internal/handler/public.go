package handler

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	g "github.com/maragudk/gomponents"

	"github.com/gracechurch/internal/content"
	"github.com/gracechurch/internal/locale"
	"github.com/gracechurch/internal/service"
	"github.com/gracechurch/internal/view"
)

// publicRoute 把固定路径映射到区块的 page 键。
type publicRoute struct {
	Path    string
	Page    string
	TitleKO string
	TitleEN string
	Nav     bool
}

var publicRoutes = []publicRoute{
	{Path: "/", Page: content.PageHome, TitleKO: "홈", TitleEN: "Home"},
	{Path: "/about", Page: content.PageAbout, TitleKO: "교회 소개", TitleEN: "About", Nav: true},
	{Path: "/about/location", Page: content.PageAboutLocation, TitleKO: "오시는 길", TitleEN: "Location"},
	{Path: "/sermons", Page: content.PageSermons, TitleKO: "설교", TitleEN: "Sermons", Nav: true},
	{Path: "/education/youth", Page: content.PageEducationYouth, TitleKO: "청소년부", TitleEN: "Youth", Nav: true},
	{Path: "/education/sunday-school", Page: content.PageEducationSundaySchool, TitleKO: "주일학교", TitleEN: "Sunday School"},
	{Path: "/mission/domestic", Page: content.PageMissionDomestic, TitleKO: "국내 선교", TitleEN: "Domestic Mission", Nav: true},
	{Path: "/mission/overseas", Page: content.PageMissionOverseas, TitleKO: "해외 선교", TitleEN: "Overseas Mission"},
	{Path: "/news/notices", Page: content.PageNewsNotices, TitleKO: "공지사항", TitleEN: "Notices", Nav: true},
	{Path: "/news/prayer", Page: content.PageNewsPrayer, TitleKO: "기도제목", TitleEN: "Prayer"},
	{Path: "/news/bulletin", Page: content.PageNewsBulletin, TitleKO: "주보", TitleEN: "Bulletin"},
}

func navigation(language string) []view.NavItem {
	items := make([]view.NavItem, 0, len(publicRoutes)+1)
	for _, route := range publicRoutes {
		if !route.Nav {
			continue
		}
		items = append(items, view.NavItem{Label: locale.Pick(language, route.TitleEN, route.TitleKO), Href: route.Path})
	}
	return append(items, view.NavItem{Label: locale.Pick(language, "Gallery", "갤러리"), Href: "/gallery"})
}

// StaticPaths 返回站点地图使用的固定路径。
func StaticPaths() []string {
	paths := make([]string, 0, len(publicRoutes)+1)
	for _, route := range publicRoutes {
		paths = append(paths, route.Path)
	}
	return append(paths, "/gallery")
}

// RegisterPublicRoutes 为路由表中的每个路径注册页面处理函数。
func (a *API) RegisterPublicRoutes(r gin.IRoutes) {
	for _, route := range publicRoutes {
		r.GET(route.Path, a.ShowSectionPage(route))
	}
}

// ShowSectionPage 渲染固定页面的全部区块。
func (a *API) ShowSectionPage(route publicRoute) gin.HandlerFunc {
	return func(c *gin.Context) {
		language := a.requestLocale(c).Language
		a.renderSections(c, route.Page, locale.Pick(language, route.TitleEN, route.TitleKO), "")
	}
}

// ShowDynamicPage 渲染已发布的动态页面，未发布或不存在时返回 404。
func (a *API) ShowDynamicPage(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))
	page, err := a.pages.GetPublished(slug)
	if err != nil {
		if errors.Is(err, service.ErrPageNotFound) {
			a.renderNotFound(c)
			return
		}
		log.Printf("[public] load page %s failed: %v", slug, err)
		c.Error(err)
		a.renderPublic(c, http.StatusInternalServerError, "", "", view.ErrorPanel(a.requestLocale(c).Language, c.Request.URL.Path))
		return
	}
	a.renderSections(c, page.Slug, page.Title, page.Description)
}

func (a *API) renderSections(c *gin.Context, page, title, description string) {
	language := a.requestLocale(c).Language
	sections, err := a.sections.GetByPage(page)
	if err != nil {
		log.Printf("[public] load sections for %s failed: %v", page, err)
		c.Error(err)
		a.renderPublic(c, http.StatusInternalServerError, title, description, view.ErrorPanel(language, c.Request.URL.Path))
		return
	}
	a.renderPublic(c, http.StatusOK, title, description, view.RenderSections(language, sections))
}

func (a *API) renderPublic(c *gin.Context, status int, title, description string, body ...g.Node) {
	render(c, status, view.Page(view.PageProps{
		Site:        a.siteProps(c),
		Title:       title,
		Description: description,
	}, body...))
}

func (a *API) renderNotFound(c *gin.Context) {
	language := a.requestLocale(c).Language
	a.renderPublic(c, http.StatusNotFound, locale.Pick(language, "Not found", "페이지 없음"), "", view.EmptyState(language))
}

// PageSectionsJSON 对外提供页面区块 JSON，允许跨域读取。
func (a *API) PageSectionsJSON(c *gin.Context) {
	page := strings.TrimSpace(c.Param("page"))
	sections, err := a.sections.ListByPageAndKinds(page, queryKinds(c)...)
	if err != nil {
		log.Printf("[public] sections json for %s failed: %v", page, err)
		respondError(c, http.StatusInternalServerError, "failed to load sections")
		return
	}
	c.JSON(http.StatusOK, gin.H{"page": page, "sections": sections})
}

// Sitemap 输出固定路径与已发布动态页面的站点地图。
func (a *API) Sitemap(c *gin.Context) {
	body, err := a.sitemap.Build(a.cfg.SiteBaseURL, StaticPaths())
	if err != nil {
		log.Printf("[public] build sitemap failed: %v", err)
		c.Error(err)
		c.String(http.StatusInternalServerError, "sitemap unavailable")
		return
	}
	c.Data(http.StatusOK, "application/xml; charset=utf-8", body)
}

// NotFound 统一的 404 处理。
func (a *API) NotFound(c *gin.Context) {
	if isAPIRequest(c) {
		respondError(c, http.StatusNotFound, "not found")
		return
	}
	a.renderNotFound(c)
}
