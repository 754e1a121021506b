package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	g "github.com/maragudk/gomponents"

	"github.com/gracechurch/internal/content"
	"github.com/gracechurch/internal/db"
	"github.com/gracechurch/internal/service"
	"github.com/gracechurch/internal/view"
)

// sectionCategory 是一个后台管理面：默认页面以及它负责的 kind。
// Kinds 为空表示不过滤。
type sectionCategory struct {
	Key   string
	Label string
	Page  string
	Kinds []string
}

var sectionCategories = []sectionCategory{
	{Key: "hero", Label: "메인 배너", Page: content.PageHome, Kinds: []string{"hero"}},
	{Key: "welcome", Label: "환영 인사", Page: content.PageHome, Kinds: []string{"welcome", "info-cards"}},
	{Key: "text", Label: "텍스트", Page: content.PageAbout, Kinds: []string{"text"}},
	{Key: "image", Label: "이미지", Page: content.PageHome, Kinds: []string{"image", "image-slider", "gallery"}},
	{Key: "media", Label: "설교 영상", Page: content.PageSermons, Kinds: []string{"video"}},
	{Key: "cards", Label: "카드", Page: content.PageHome, Kinds: []string{"cards", "info-cards"}},
	{Key: "notices", Label: "공지사항", Page: content.PageNewsNotices, Kinds: []string{"notices"}},
	{Key: "prayer", Label: "기도제목", Page: content.PageNewsPrayer, Kinds: []string{"prayer"}},
	{Key: "team", Label: "섬기는 분들", Page: content.PageAbout, Kinds: []string{"pastor", "department", "lifegroup"}},
	{Key: "location", Label: "오시는 길", Page: content.PageAboutLocation, Kinds: []string{"location", "contact"}},
	{Key: "ministry", Label: "사역", Page: content.PageMissionDomestic, Kinds: []string{"mission", "nurture", "department"}},
	{Key: "all", Label: "전체 섹션", Page: content.PageHome},
}

func findSectionCategory(key string) (sectionCategory, bool) {
	for _, category := range sectionCategories {
		if category.Key == key {
			return category, true
		}
	}
	return sectionCategory{}, false
}

// kindOptions 返回分类可新建的 kind，全部分类列出所有已知 kind。
func (sc sectionCategory) kindOptions() []string {
	if len(sc.Kinds) > 0 {
		return sc.Kinds
	}
	known := content.KnownKinds()
	kinds := make([]string, 0, len(known))
	for _, kind := range known {
		kinds = append(kinds, string(kind))
	}
	return kinds
}

func (sc sectionCategory) basePath() string {
	return "/admin/sections/" + sc.Key
}

func (sc sectionCategory) pageFor(c *gin.Context) string {
	if page := strings.TrimSpace(c.Query("page")); page != "" {
		return page
	}
	return sc.Page
}

func (sc sectionCategory) listURL(page string) string {
	return sc.basePath() + "?page=" + url.QueryEscape(page)
}

func (a *API) adminLinks() []view.AdminLink {
	links := make([]view.AdminLink, 0, len(sectionCategories)+3)
	for _, category := range sectionCategories {
		links = append(links, view.AdminLink{Key: category.Key, Label: category.Label, Href: category.basePath()})
	}
	return append(links,
		view.AdminLink{Key: "gallery", Label: "갤러리", Href: "/admin/gallery"},
		view.AdminLink{Key: "pages", Label: "페이지", Href: "/admin/pages"},
		view.AdminLink{Key: "settings", Label: "사이트 설정", Href: "/admin/settings"},
	)
}

// renderAdmin 渲染带侧栏与提示消息的后台页面，errMessage 非空时追加为错误提示。
func (a *API) renderAdmin(c *gin.Context, status int, current, title, errMessage string, children ...g.Node) {
	infos, errs := takeFlashes(c)
	if errMessage != "" {
		errs = append(errs, errMessage)
	}
	props := view.AdminProps{
		Title:    title,
		SiteName: a.siteSettings(c).SiteName,
		Current:  current,
		Links:    a.adminLinks(),
		Flashes:  infos,
		Errors:   errs,
	}
	if user := currentUser(c); user != nil {
		props.UserEmail = user.Email
	}
	render(c, status, view.AdminPage(props, children...))
}

// ShowDashboard 渲染后台首页。
func (a *API) ShowDashboard(c *gin.Context) {
	pages, err := a.sections.Pages()
	if err != nil {
		log.Printf("[admin] list section pages failed: %v", err)
		c.Error(err)
	}
	categories := make([]view.AdminLink, 0, len(sectionCategories))
	for _, category := range sectionCategories {
		categories = append(categories, view.AdminLink{Key: category.Key, Label: category.Label, Href: category.basePath()})
	}
	a.renderAdmin(c, http.StatusOK, "", "관리자", errorMessage(err, "페이지 목록을 불러오지 못했습니다."), view.AdminDashboard(categories, pages))
}

func (a *API) sectionCategoryFromParam(c *gin.Context) (sectionCategory, bool) {
	category, ok := findSectionCategory(c.Param("category"))
	if !ok {
		a.renderAdmin(c, http.StatusNotFound, "", "찾을 수 없음", "존재하지 않는 관리 분류입니다.")
	}
	return category, ok
}

// ShowSectionList 列出分类在指定页面上的区块，过滤在数据库中完成。
func (a *API) ShowSectionList(c *gin.Context) {
	category, ok := a.sectionCategoryFromParam(c)
	if !ok {
		return
	}
	page := category.pageFor(c)

	sections, err := a.sections.ListByPageAndKinds(page, category.Kinds...)
	if err != nil {
		log.Printf("[admin] list sections for %s/%s failed: %v", category.Key, page, err)
		c.Error(err)
	}
	pages := a.pageChoices(c, page)

	a.renderAdmin(c, http.StatusOK, category.Key, category.Label,
		errorMessage(err, "섹션 목록을 불러오지 못했습니다. 새로고침 해 주세요."),
		view.SectionList(view.SectionListProps{
			BasePath: category.basePath(),
			Page:     page,
			Pages:    pages,
			Kinds:    category.kindOptions(),
			Sections: sections,
		}),
	)
}

// pageChoices 合并已知页面、已有区块的页面以及当前页面。
func (a *API) pageChoices(c *gin.Context, current string) []string {
	stored, err := a.sections.Pages()
	if err != nil {
		c.Error(err)
	}
	seen := make(map[string]struct{})
	out := make([]string, 0, len(publicRoutes)+len(stored)+1)
	add := func(page string) {
		if page == "" {
			return
		}
		if _, ok := seen[page]; ok {
			return
		}
		seen[page] = struct{}{}
		out = append(out, page)
	}
	for _, route := range publicRoutes {
		add(route.Page)
	}
	for _, page := range stored {
		add(page)
	}
	add(current)
	return out
}

// ShowNewSection 渲染新建表单，内容预填该 kind 的模板。
func (a *API) ShowNewSection(c *gin.Context) {
	category, ok := a.sectionCategoryFromParam(c)
	if !ok {
		return
	}
	kinds := category.kindOptions()
	kind := strings.TrimSpace(c.Query("kind"))
	if kind == "" && len(kinds) > 0 {
		kind = kinds[0]
	}
	page := category.pageFor(c)

	a.renderAdmin(c, http.StatusOK, category.Key, category.Label+" 추가", "", view.SectionForm(view.SectionFormProps{
		Action:  category.basePath(),
		Cancel:  category.listURL(page),
		IsNew:   true,
		Page:    page,
		Kind:    kind,
		Content: string(content.Template(kind)),
		Kinds:   kinds,
	}))
}

// CreateSection 保存新区块，排序值追加到页面末尾。
func (a *API) CreateSection(c *gin.Context) {
	category, ok := a.sectionCategoryFromParam(c)
	if !ok {
		return
	}
	page := strings.TrimSpace(c.PostForm("page"))
	kind := strings.TrimSpace(c.PostForm("kind"))
	title := c.PostForm("title")
	raw := strings.TrimSpace(c.PostForm("content"))
	if raw == "" {
		raw = "{}"
	}

	input := service.SectionInput{
		Page:    page,
		Kind:    kind,
		Title:   title,
		Content: []byte(raw),
	}
	if user := currentUser(c); user != nil {
		input.CreatedBy = user.Email
	}

	if _, err := a.sections.Create(input); err != nil {
		log.Printf("[admin] create %s section on %s failed: %v", kind, page, err)
		a.renderAdmin(c, sectionErrorStatus(err), category.Key, category.Label+" 추가", sectionErrorMessage(err),
			view.SectionForm(view.SectionFormProps{
				Action:  category.basePath(),
				Cancel:  category.listURL(page),
				IsNew:   true,
				Page:    page,
				Kind:    kind,
				Title:   title,
				Content: raw,
				Kinds:   category.kindOptions(),
			}),
		)
		return
	}

	addFlash(c, flashInfo, "섹션을 추가했습니다.")
	c.Redirect(http.StatusFound, category.listURL(page))
}

// ShowEditSection 渲染编辑表单。
func (a *API) ShowEditSection(c *gin.Context) {
	category, ok := a.sectionCategoryFromParam(c)
	if !ok {
		return
	}
	section, err := a.sections.Get(c.Param("id"))
	if err != nil {
		a.renderAdmin(c, sectionErrorStatus(err), category.Key, category.Label, sectionErrorMessage(err))
		return
	}

	a.renderAdmin(c, http.StatusOK, category.Key, category.Label+" 수정", "", view.SectionForm(editFormProps(category, section, section.Title, prettyContent(section.Content))))
}

// UpdateSection 只提交标题与内容。
func (a *API) UpdateSection(c *gin.Context) {
	category, ok := a.sectionCategoryFromParam(c)
	if !ok {
		return
	}
	id := c.Param("id")
	title := c.PostForm("title")
	raw := strings.TrimSpace(c.PostForm("content"))
	if raw == "" {
		raw = "{}"
	}

	section, err := a.sections.Update(id, service.SectionPatch{Title: &title, Content: []byte(raw)})
	if err != nil {
		log.Printf("[admin] update section %s failed: %v", id, err)
		existing, getErr := a.sections.Get(id)
		if getErr != nil {
			a.renderAdmin(c, sectionErrorStatus(getErr), category.Key, category.Label, sectionErrorMessage(getErr))
			return
		}
		a.renderAdmin(c, sectionErrorStatus(err), category.Key, category.Label+" 수정", sectionErrorMessage(err),
			view.SectionForm(editFormProps(category, existing, title, raw)),
		)
		return
	}

	addFlash(c, flashInfo, "섹션을 저장했습니다.")
	c.Redirect(http.StatusFound, category.listURL(section.Page))
}

// DeleteSection 删除区块，确认在页面上由 onsubmit 完成。
func (a *API) DeleteSection(c *gin.Context) {
	category, ok := a.sectionCategoryFromParam(c)
	if !ok {
		return
	}
	page := category.pageFor(c)
	if err := a.sections.Delete(c.Param("id")); err != nil {
		log.Printf("[admin] delete section %s failed: %v", c.Param("id"), err)
		addFlash(c, flashError, sectionErrorMessage(err))
	} else {
		addFlash(c, flashInfo, "섹션을 삭제했습니다.")
	}
	c.Redirect(http.StatusFound, category.listURL(page))
}

// MoveSection 与相邻区块交换位置。
func (a *API) MoveSection(c *gin.Context) {
	category, ok := a.sectionCategoryFromParam(c)
	if !ok {
		return
	}
	page := category.pageFor(c)
	if err := a.sections.Move(c.Param("id"), c.Query("direction"), category.Kinds...); err != nil {
		log.Printf("[admin] move section %s failed: %v", c.Param("id"), err)
		addFlash(c, flashError, sectionErrorMessage(err))
	}
	c.Redirect(http.StatusFound, category.listURL(page))
}

func editFormProps(category sectionCategory, section *db.Section, title, raw string) view.SectionFormProps {
	return view.SectionFormProps{
		Action:  category.basePath() + "/" + section.ID,
		Cancel:  category.listURL(section.Page),
		Page:    section.Page,
		Kind:    section.Kind,
		Title:   title,
		Content: raw,
	}
}

func sectionErrorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrSectionNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrSectionInputInvalid),
		errors.Is(err, service.ErrSectionContentInvalid),
		errors.Is(err, service.ErrSectionOrderInvalid):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func sectionErrorMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrSectionNotFound):
		return "섹션을 찾을 수 없습니다."
	case errors.Is(err, service.ErrSectionInputInvalid):
		return "페이지와 종류를 입력해 주세요."
	case errors.Is(err, service.ErrSectionContentInvalid):
		return "내용은 JSON 객체여야 합니다."
	case errors.Is(err, service.ErrSectionOrderInvalid):
		return "순서를 변경할 수 없습니다."
	default:
		return "저장 중 오류가 발생했습니다. 다시 시도해 주세요."
	}
}

// prettyContent 缩进 JSON，便于在文本框中编辑。
func prettyContent(raw []byte) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return string(raw)
	}
	return buf.String()
}

func errorMessage(err error, message string) string {
	if err == nil {
		return ""
	}
	return message
}
