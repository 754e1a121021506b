package view

import (
	"fmt"
	"net/url"
	"strconv"

	g "github.com/maragudk/gomponents"
	h "github.com/maragudk/gomponents/html"

	"github.com/gracechurch/internal/db"
	"github.com/gracechurch/internal/service"
)

// AdminLink 是后台侧栏中的一个入口。
type AdminLink struct {
	Key   string
	Label string
	Href  string
}

// AdminProps 是后台页面共用的外框信息。
type AdminProps struct {
	Title     string
	SiteName  string
	UserEmail string
	Current   string
	Links     []AdminLink
	Flashes   []string
	Errors    []string
}

// AdminPage 渲染后台页面外框。
func AdminPage(props AdminProps, children ...g.Node) g.Node {
	links := make([]g.Node, 0, len(props.Links)+1)
	links = append(links, h.Class("admin-nav__list"))
	for _, link := range props.Links {
		class := "admin-nav__item"
		if link.Key == props.Current {
			class += " is-active"
		}
		links = append(links, h.Li(h.Class(class), h.A(h.Href(link.Href), g.Text(link.Label))))
	}

	return h.Doctype(
		h.HTML(h.Lang("ko"),
			h.Head(
				h.Meta(h.Charset("utf-8")),
				h.Meta(h.Name("viewport"), h.Content("width=device-width, initial-scale=1")),
				h.Meta(h.Name("robots"), h.Content("noindex")),
				h.Link(h.Rel("stylesheet"), h.Href("/static/css/admin.css")),
				h.TitleEl(g.Text(props.Title+" | "+props.SiteName+" 관리")),
			),
			h.Body(h.Class("admin"),
				h.Header(h.Class("admin-header"),
					h.A(h.Class("admin-brand"), h.Href("/admin"), g.Text(props.SiteName)),
					g.If(props.UserEmail != "", h.Div(h.Class("admin-user"),
						g.El("span", g.Text(props.UserEmail)),
						postForm("/admin/logout", "", h.Button(h.Type("submit"), g.Text("로그아웃"))),
					)),
				),
				h.Div(h.Class("admin-layout"),
					g.If(len(props.Links) > 0, h.Nav(h.Class("admin-nav"), h.Ul(links...))),
					h.Main(h.Class("admin-main"),
						h.H1(g.Text(props.Title)),
						messages("flash flash--info", props.Flashes),
						messages("flash flash--error", props.Errors),
						g.Group(children),
					),
				),
			),
		),
	)
}

func messages(class string, values []string) g.Node {
	nodes := make([]g.Node, 0, len(values))
	for _, value := range values {
		nodes = append(nodes, h.Div(classAttr(class), g.Attr("role", "status"), g.Text(value)))
	}
	return g.Group(nodes)
}

func postForm(action, confirm string, children ...g.Node) g.Node {
	nodes := []g.Node{h.Method("post"), h.Action(action), h.Class("inline-form")}
	if confirm != "" {
		nodes = append(nodes, g.Attr("onsubmit", "return confirm("+strconv.Quote(confirm)+");"))
	}
	return g.El("form", append(nodes, children...)...)
}

func field(label, name string, input g.Node) g.Node {
	return h.Div(h.Class("field"),
		g.El("label", g.Attr("for", name), g.Text(label)),
		input,
	)
}

func textInput(name, value string, required bool) g.Node {
	return h.Input(h.Type("text"), h.ID(name), h.Name(name), h.Value(value), g.If(required, h.Required()))
}

// LoginPage 渲染登录表单。
func LoginPage(siteName, email, errMessage string) g.Node {
	return AdminPage(AdminProps{Title: "로그인", SiteName: siteName, Errors: nonEmpty(errMessage)},
		postForm("/admin/login", "",
			field("이메일", "email", h.Input(h.Type("email"), h.ID("email"), h.Name("email"), h.Value(email), h.Required(), g.Attr("autocomplete", "username"))),
			field("비밀번호", "password", h.Input(h.Type("password"), h.ID("password"), h.Name("password"), h.Required(), g.Attr("autocomplete", "current-password"))),
			h.Button(h.Type("submit"), h.Class("button"), g.Text("로그인")),
		),
	)
}

// AdminDashboard 列出各内容分类以及已有区块的页面。
func AdminDashboard(categories []AdminLink, pages []string) g.Node {
	cards := make([]g.Node, 0, len(categories)+1)
	cards = append(cards, h.Class("admin-cards"))
	for _, category := range categories {
		cards = append(cards, h.Li(h.A(h.Href(category.Href), g.Text(category.Label))))
	}
	pageLinks := make([]g.Node, 0, len(pages)+1)
	pageLinks = append(pageLinks, h.Class("admin-pages"))
	for _, page := range pages {
		pageLinks = append(pageLinks, h.Li(h.A(h.Href("/admin/sections/all?page="+url.QueryEscape(page)), g.Text(page))))
	}
	return h.Div(
		h.H2(g.Text("콘텐츠 분류")),
		h.Ul(cards...),
		h.H2(g.Text("페이지별 보기")),
		g.If(len(pages) == 0, h.P(g.Text("아직 등록된 섹션이 없습니다."))),
		g.If(len(pages) > 0, h.Ul(pageLinks...)),
	)
}

// SectionListProps 描述某分类在某页面上的区块列表。
type SectionListProps struct {
	BasePath string
	Page     string
	Pages    []string
	Kinds    []string
	Sections []db.Section
}

// SectionList 渲染区块列表，支持上下移动与删除确认。
func SectionList(props SectionListProps) g.Node {
	pageOptions := make([]g.Node, 0, len(props.Pages)+3)
	pageOptions = append(pageOptions, h.Name("page"), h.ID("page"))
	for _, page := range props.Pages {
		pageOptions = append(pageOptions, h.Option(h.Value(page), g.Text(page), g.If(page == props.Page, h.Selected())))
	}

	addLinks := make([]g.Node, 0, len(props.Kinds)+1)
	addLinks = append(addLinks, h.Class("section-add"))
	for _, kind := range props.Kinds {
		href := fmt.Sprintf("%s/new?page=%s&kind=%s", props.BasePath, url.QueryEscape(props.Page), url.QueryEscape(kind))
		addLinks = append(addLinks, h.A(h.Class("button"), h.Href(href), g.Textf("+ %s", kind)))
	}

	pageQuery := "page=" + url.QueryEscape(props.Page)
	rows := make([]g.Node, 0, len(props.Sections))
	for i, section := range props.Sections {
		item := fmt.Sprintf("%s/%s", props.BasePath, url.PathEscape(section.ID))
		rows = append(rows, h.Tr(
			h.Td(g.Text(strconv.Itoa(section.SectionOrder))),
			h.Td(g.Text(section.Kind)),
			h.Td(g.Text(firstNonEmpty(section.Title, "(제목 없음)"))),
			h.Td(h.Class("actions"),
				h.A(h.Href(item+"/edit?"+pageQuery), g.Text("수정")),
				g.If(i > 0, postForm(item+"/move?direction=up&"+pageQuery, "", h.Button(h.Type("submit"), g.Text("▲")))),
				g.If(i < len(props.Sections)-1, postForm(item+"/move?direction=down&"+pageQuery, "", h.Button(h.Type("submit"), g.Text("▼")))),
				postForm(item+"/delete?"+pageQuery, "이 섹션을 삭제할까요? 되돌릴 수 없습니다.", h.Button(h.Type("submit"), h.Class("danger"), g.Text("삭제"))),
			),
		))
	}

	return h.Div(h.Class("section-admin"),
		g.El("form", h.Method("get"), h.Action(props.BasePath), h.Class("page-picker"),
			field("페이지", "page", h.Select(pageOptions...)),
			h.Button(h.Type("submit"), g.Text("보기")),
		),
		h.Div(addLinks...),
		g.If(len(rows) == 0, h.P(h.Class("empty-state"), g.Text("이 페이지에 해당하는 섹션이 없습니다."))),
		g.If(len(rows) > 0, h.Table(h.Class("section-table"),
			h.THead(h.Tr(h.Th(g.Text("순서")), h.Th(g.Text("종류")), h.Th(g.Text("제목")), h.Th(g.Text("관리")))),
			h.TBody(rows...),
		)),
	)
}

// SectionFormProps 描述新建或编辑区块的表单。
type SectionFormProps struct {
	Action  string
	Cancel  string
	IsNew   bool
	Page    string
	Kind    string
	Title   string
	Content string
	Kinds   []string
}

// SectionForm 渲染区块表单，内容以原始 JSON 编辑。
func SectionForm(props SectionFormProps) g.Node {
	kindOptions := make([]g.Node, 0, len(props.Kinds)+2)
	kindOptions = append(kindOptions, h.Name("kind"), h.ID("kind"))
	for _, kind := range props.Kinds {
		kindOptions = append(kindOptions, h.Option(h.Value(kind), g.Text(kind), g.If(kind == props.Kind, h.Selected())))
	}

	return g.El("form", h.Method("post"), h.Action(props.Action), h.Class("section-form"),
		g.If(props.IsNew, field("페이지", "page", textInput("page", props.Page, true))),
		g.If(props.IsNew, field("종류", "kind", h.Select(kindOptions...))),
		g.If(!props.IsNew, h.P(h.Class("section-form__meta"), g.Textf("%s / %s", props.Page, props.Kind))),
		field("제목", "title", textInput("title", props.Title, false)),
		field("내용 (JSON)", "content", h.Textarea(h.ID("content"), h.Name("content"), g.Attr("rows", "20"), g.Attr("spellcheck", "false"), g.Text(props.Content))),
		g.If(props.IsNew || props.Kind == "info-cards", iconReference()),
		h.Div(h.Class("form-actions"),
			h.Button(h.Type("submit"), h.Class("button"), g.Text("저장")),
			h.A(h.Href(props.Cancel), g.Text("취소")),
		),
	)
}

// iconReference 列出 info-cards 的 icon 字段可用的键。
func iconReference() g.Node {
	items := make([]g.Node, 0, len(IconOptions())+1)
	items = append(items, h.Class("icon-picker__list"))
	for _, option := range IconOptions() {
		items = append(items, h.Li(
			g.El("span", h.Class("icon-picker__svg"), g.Raw(IconSVG(option.Key))),
			h.Code(g.Text(option.Key)),
			g.Textf(" %s", option.Label),
		))
	}
	return h.Details(h.Class("icon-picker"),
		h.Summary(g.Text("아이콘 키 (info-cards 의 icon 값)")),
		h.Ul(items...),
	)
}

// AdminGalleryProps 汇总相册管理页所需数据。
type AdminGalleryProps struct {
	Categories []db.GalleryCategory
	Events     map[uint][]db.GalleryEvent
}

// AdminGallery 渲染相册分类、活动以及 Drive 同步表单。
func AdminGallery(props AdminGalleryProps) g.Node {
	blocks := make([]g.Node, 0, len(props.Categories))
	for _, category := range props.Categories {
		events := make([]g.Node, 0, len(props.Events[category.ID])+1)
		events = append(events, h.Class("admin-events"))
		for _, event := range props.Events[category.ID] {
			base := fmt.Sprintf("/admin/gallery/events/%d", event.ID)
			events = append(events, h.Li(
				h.A(h.Href(base), h.Strong(g.Text(event.Title))),
				g.If(!event.Date.IsZero(), g.Textf(" (%s)", event.Date.Format("2006-01-02"))),
				postForm(base+"/sync", "",
					h.Input(h.Type("text"), h.Name("folder_id"), h.Placeholder("Google Drive 폴더 ID"), h.Required()),
					h.Button(h.Type("submit"), g.Text("Drive 동기화")),
				),
				postForm(base+"/delete", "이 행사와 사진을 모두 삭제할까요?", h.Button(h.Type("submit"), h.Class("danger"), g.Text("삭제"))),
			))
		}

		blocks = append(blocks, h.Section(h.Class("admin-category"),
			h.H2(g.Textf("%s / %s", category.NameKR, category.NameEN)),
			h.Details(
				h.Summary(g.Text("분류 수정")),
				categoryForm(fmt.Sprintf("/admin/gallery/categories/%d", category.ID), fmt.Sprintf("-%d", category.ID), category),
			),
			postForm(fmt.Sprintf("/admin/gallery/categories/%d/delete", category.ID), "분류와 모든 행사, 사진이 삭제됩니다. 계속할까요?",
				h.Button(h.Type("submit"), h.Class("danger"), g.Text("분류 삭제")),
			),
			h.Ul(events...),
			postForm("/admin/gallery/events", "",
				h.Input(h.Type("hidden"), h.Name("category_id"), h.Value(strconv.FormatUint(uint64(category.ID), 10))),
				field("행사 제목", fmt.Sprintf("title-%d", category.ID), h.Input(h.Type("text"), h.ID(fmt.Sprintf("title-%d", category.ID)), h.Name("title"), h.Required())),
				field("날짜", fmt.Sprintf("date-%d", category.ID), h.Input(h.Type("date"), h.ID(fmt.Sprintf("date-%d", category.ID)), h.Name("date"))),
				h.Button(h.Type("submit"), g.Text("행사 추가")),
			),
		))
	}

	return h.Div(h.Class("gallery-admin"),
		g.Group(blocks),
		h.H2(g.Text("새 분류")),
		categoryForm("/admin/gallery/categories", "", db.GalleryCategory{}),
	)
}

func categoryForm(action, suffix string, category db.GalleryCategory) g.Node {
	submit := "분류 추가"
	var order g.Node = g.Group(nil)
	if category.ID != 0 {
		submit = "저장"
		order = field("순서", "sort_order"+suffix, h.Input(h.Type("number"), h.ID("sort_order"+suffix), h.Name("sort_order"),
			g.Attr("min", "1"), h.Value(strconv.Itoa(category.SortOrder))))
	}
	return postForm(action, "",
		field("이름 (한국어)", "name_kr"+suffix, h.Input(h.Type("text"), h.ID("name_kr"+suffix), h.Name("name_kr"), h.Value(category.NameKR), h.Required())),
		field("이름 (English)", "name_en"+suffix, h.Input(h.Type("text"), h.ID("name_en"+suffix), h.Name("name_en"), h.Value(category.NameEN))),
		field("설명", "description"+suffix, h.Textarea(h.ID("description"+suffix), h.Name("description"), g.Attr("rows", "3"), g.Text(category.Description))),
		order,
		h.Button(h.Type("submit"), g.Text(submit)),
	)
}

// AdminGalleryEventProps 描述单个活动的管理页。
type AdminGalleryEventProps struct {
	Event      db.GalleryEvent
	Categories []db.GalleryCategory
}

// AdminGalleryEvent 渲染活动编辑表单、照片列表与手动添加照片的表单。
func AdminGalleryEvent(props AdminGalleryEventProps) g.Node {
	event := props.Event
	base := fmt.Sprintf("/admin/gallery/events/%d", event.ID)

	categoryOptions := make([]g.Node, 0, len(props.Categories)+2)
	categoryOptions = append(categoryOptions, h.ID("category_id"), h.Name("category_id"))
	for _, category := range props.Categories {
		categoryOptions = append(categoryOptions, h.Option(
			h.Value(strconv.FormatUint(uint64(category.ID), 10)),
			g.Text(category.NameKR),
			g.If(category.ID == event.CategoryID, h.Selected()),
		))
	}

	date := ""
	if !event.Date.IsZero() {
		date = event.Date.Format("2006-01-02")
	}

	photos := make([]g.Node, 0, len(event.Photos)+1)
	photos = append(photos, h.Class("gallery__grid"))
	for _, photo := range event.Photos {
		photos = append(photos, h.Li(h.Class("gallery__item"),
			h.Img(h.Src(PhotoURL(photo)), h.Alt(photo.FileName), g.Attr("loading", "lazy")),
			g.El("span", g.Text(firstNonEmpty(photo.FileName, photo.FileURL))),
			postForm(fmt.Sprintf("%s/photos/%d/delete", base, photo.ID), "이 사진을 삭제할까요?",
				h.Button(h.Type("submit"), h.Class("danger"), g.Text("삭제")),
			),
		))
	}

	return h.Div(h.Class("gallery-admin"),
		h.P(h.A(h.Href("/admin/gallery"), g.Text("← 갤러리 목록"))),
		postForm(base, "",
			field("분류", "category_id", h.Select(categoryOptions...)),
			field("행사 제목", "title", textInput("title", event.Title, true)),
			field("날짜", "date", h.Input(h.Type("date"), h.ID("date"), h.Name("date"), h.Value(date))),
			field("대표 이미지", "cover_url", textInput("cover_url", event.CoverURL, false)),
			field("설명", "description", h.Textarea(h.ID("description"), h.Name("description"), g.Attr("rows", "3"), g.Text(event.Description))),
			h.Button(h.Type("submit"), h.Class("button"), g.Text("저장")),
		),
		h.H2(g.Textf("사진 %d장", len(event.Photos))),
		g.If(len(event.Photos) == 0, h.P(h.Class("empty-state"), g.Text("아직 사진이 없습니다."))),
		g.If(len(event.Photos) > 0, h.Ul(photos...)),
		h.H2(g.Text("사진 직접 추가")),
		postForm(base+"/photos", "",
			field("이미지 주소 또는 Drive 파일 ID", "file_url", textInput("file_url", "", true)),
			field("파일 이름", "file_name", textInput("file_name", "", false)),
			h.Button(h.Type("submit"), g.Text("추가")),
		),
	)
}

// AdminPages 渲染动态页面列表与编辑表单。
func AdminPages(pages []db.Page) g.Node {
	rows := make([]g.Node, 0, len(pages))
	for _, page := range pages {
		status := "비공개"
		if page.Published {
			status = "공개"
		}
		rows = append(rows, h.Tr(
			h.Td(h.A(h.Href("/pages/"+page.Slug), g.Text(page.Slug))),
			h.Td(g.Text(page.Title)),
			h.Td(g.Text(status)),
			h.Td(h.Class("actions"),
				h.A(h.Href("/admin/sections/all?page="+url.QueryEscape(page.Slug)), g.Text("섹션 관리")),
				postForm("/admin/pages/"+url.PathEscape(page.Slug)+"/delete", "페이지를 삭제할까요? 섹션은 유지됩니다.", h.Button(h.Type("submit"), h.Class("danger"), g.Text("삭제"))),
			),
		))
	}

	return h.Div(h.Class("pages-admin"),
		g.If(len(rows) > 0, h.Table(
			h.THead(h.Tr(h.Th(g.Text("주소")), h.Th(g.Text("제목")), h.Th(g.Text("상태")), h.Th(g.Text("관리")))),
			h.TBody(rows...),
		)),
		h.H2(g.Text("페이지 추가 / 수정")),
		postForm("/admin/pages", "",
			field("주소 (slug)", "slug", textInput("slug", "", true)),
			field("제목", "title", textInput("title", "", true)),
			field("설명", "description", h.Textarea(h.ID("description"), h.Name("description"), g.Attr("rows", "3"))),
			h.Div(h.Class("field"),
				g.El("label", h.Input(h.Type("checkbox"), h.Name("published"), h.Value("true")), g.Text(" 공개")),
			),
			h.Button(h.Type("submit"), g.Text("저장")),
		),
	)
}

// AdminSettings 渲染站点设置表单。
func AdminSettings(settings service.SystemSettings) g.Node {
	return postForm("/admin/settings", "",
		field("교회 이름", "site_name", textInput("site_name", settings.SiteName, true)),
		field("부제", "site_tagline", textInput("site_tagline", settings.SiteTagline, false)),
		field("하단 문구", "footer_text", textInput("footer_text", settings.FooterText, false)),
		h.Button(h.Type("submit"), h.Class("button"), g.Text("저장")),
	)
}

func nonEmpty(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		if value != "" {
			out = append(out, value)
		}
	}
	return out
}
