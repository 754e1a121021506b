package view

import (
	"bytes"
	"encoding/json"
	"log"
	"strings"

	g "github.com/maragudk/gomponents"
	h "github.com/maragudk/gomponents/html"

	"github.com/gracechurch/internal/content"
	"github.com/gracechurch/internal/db"
	"github.com/gracechurch/internal/locale"
)

// FallbackComponent 是未知 kind 使用的组件名。
const FallbackComponent = "fallback"

// ComponentName 返回渲染该区块时选中的组件名，已知 kind 与其名称一致。
func ComponentName(section db.Section) string {
	name, _ := dispatch(locale.LanguageKorean, section)
	return name
}

// RenderSection 解码区块内容并交给对应组件渲染，未知 kind 输出原始 JSON。
// language 只影响组件自带的提示文字，区块内容本身不翻译。
func RenderSection(language string, section db.Section) g.Node {
	name, node := dispatch(language, section)
	if name == string(content.KindContact) {
		return node
	}
	return h.Section(
		classAttr("section", "section--"+name),
		h.ID("section-"+section.ID),
		g.Attr("data-kind", section.Kind),
		node,
	)
}

// RenderSections 按顺序渲染整页区块，空列表输出占位提示。
func RenderSections(language string, sections []db.Section) g.Node {
	if len(sections) == 0 {
		return EmptyState(language)
	}
	nodes := make([]g.Node, 0, len(sections)+1)
	nodes = append(nodes, h.Class("sections"))
	for _, section := range sections {
		nodes = append(nodes, RenderSection(language, section))
	}
	return h.Div(nodes...)
}

func dispatch(language string, section db.Section) (string, g.Node) {
	decoded, err := content.Decode(section.Kind, section.Content)
	if err != nil {
		log.Printf("[view] section %s (%s) content drift: %v", section.ID, section.Kind, err)
	}

	switch c := decoded.(type) {
	case content.Hero:
		return string(c.Kind()), HeroSection(c)
	case content.InfoCards:
		return string(c.Kind()), InfoCardsSection(c)
	case content.Welcome:
		return string(c.Kind()), WelcomeSection(c)
	case content.Pastor:
		return string(c.Kind()), PastorSection(c)
	case content.Location:
		return string(c.Kind()), LocationSection(c)
	case content.Department:
		return string(c.Kind()), DepartmentSection(c)
	case content.Nurture:
		return string(c.Kind()), NurtureSection(c)
	case content.Mission:
		return string(c.Kind()), MissionSection(c)
	case content.Notices:
		return string(c.Kind()), NoticesSection(language, c)
	case content.Prayer:
		return string(c.Kind()), PrayerSection(language, c)
	case content.Gallery:
		return string(c.Kind()), GallerySection(language, c)
	case content.LifeGroup:
		return string(c.Kind()), LifeGroupSection(c)
	case content.ImageSlider:
		return string(c.Kind()), ImageSliderSection(c)
	case content.Text:
		return string(c.Kind()), TextSection(c)
	case content.Image:
		return string(c.Kind()), ImageSection(c)
	case content.Video:
		return string(c.Kind()), VideoSection(c)
	case content.Cards:
		return string(c.Kind()), CardsSection(c)
	case content.Contact:
		return string(c.Kind()), ContactSection(c)
	case content.Raw:
		return FallbackComponent, FallbackSection(section.Title, section.Kind, c.Data)
	default:
		return FallbackComponent, FallbackSection(section.Title, section.Kind, nil)
	}
}

// FallbackSection 展示标题与格式化后的内容 JSON。
func FallbackSection(title, kind string, data map[string]any) g.Node {
	heading := strings.TrimSpace(title)
	if heading == "" {
		heading = kind
	}
	return h.Div(h.Class("fallback"),
		textEl("h3", "fallback__title", heading),
		h.Pre(h.Class("fallback__data"), h.Code(g.Text(prettyJSON(data)))),
	)
}

func prettyJSON(data map[string]any) string {
	if data == nil {
		data = map[string]any{}
	}
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return "{}"
	}
	return strings.TrimSpace(buf.String())
}

// EmptyState 页面尚无内容时的占位。
func EmptyState(language string) g.Node {
	return h.Div(h.Class("empty-state"),
		h.P(g.Text(locale.Pick(language, "No content has been added yet.", "아직 등록된 콘텐츠가 없습니다."))),
	)
}

// ErrorPanel 加载失败时的内联提示，附带重试链接。
func ErrorPanel(language, retryHref string) g.Node {
	if retryHref == "" {
		retryHref = "/"
	}
	return h.Div(h.Class("error-panel"), g.Attr("role", "alert"),
		h.P(g.Text(locale.Pick(language, "We could not load this page.", "페이지를 불러오지 못했습니다."))),
		h.A(h.Class("error-panel__retry"), h.Href(retryHref), g.Text(locale.Pick(language, "Try again", "다시 시도"))),
	)
}
