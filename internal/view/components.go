package view

import (
	"fmt"
	"strings"

	g "github.com/maragudk/gomponents"
	h "github.com/maragudk/gomponents/html"

	"github.com/gracechurch/internal/content"
	"github.com/gracechurch/internal/locale"
)

func HeroSection(c content.Hero) g.Node {
	return h.Div(classAttr("hero", heroModifier(c)),
		backgroundStyle(c.BackgroundImage),
		h.Div(h.Class("hero__inner"),
			h.H1(h.Class("hero__heading"), g.Text(c.Heading)),
			textEl("p", "hero__subheading", c.Subheading),
			g.If(c.ButtonText != "", linkOr(c.ButtonLink, "button hero__button", g.Text(c.ButtonText))),
		),
	)
}

func heroModifier(c content.Hero) string {
	if strings.TrimSpace(c.BackgroundImage) != "" {
		return "hero--image"
	}
	return ""
}

func InfoCardsSection(c content.InfoCards) g.Node {
	cards := make([]g.Node, 0, len(c.Cards)+1)
	cards = append(cards, h.Class("info-cards__grid"))
	for _, card := range c.Cards {
		cards = append(cards, h.Div(h.Class("info-card"),
			linkOr(card.Link, "info-card__link",
				h.Div(h.Class("info-card__icon"), g.Raw(IconSVG(card.Icon))),
				textEl("h3", "info-card__title", card.Title),
				textEl("p", "info-card__description", card.Description),
			),
		))
	}
	return h.Div(h.Class("info-cards"),
		textEl("h2", "section__title", c.Title),
		h.Div(cards...),
	)
}

func WelcomeSection(c content.Welcome) g.Node {
	return h.Div(h.Class("welcome"),
		img(c.Image, c.Title, "welcome__image", imageWidth),
		h.Div(h.Class("welcome__body"),
			h.H2(h.Class("section__title"), g.Text(c.Title)),
			Markdown("welcome__message", c.Message),
		),
	)
}

func PastorSection(c content.Pastor) g.Node {
	return h.Div(h.Class("pastor"),
		img(c.Photo, c.Name, "pastor__photo", 800),
		h.Div(h.Class("pastor__body"),
			textEl("h2", "pastor__name", c.Name),
			textEl("p", "pastor__position", c.Position),
			Markdown("pastor__greeting", c.Greeting),
			textEl("p", "pastor__signature", c.Signature),
		),
	)
}

func LocationSection(c content.Location) g.Node {
	var mapFrame g.Node = g.Group(nil)
	if src := safeURL(c.MapEmbedURL); strings.HasPrefix(src, "https://") {
		mapFrame = h.Div(h.Class("location__map"),
			g.El("iframe",
				h.Src(src),
				g.Attr("title", "map"),
				g.Attr("loading", "lazy"),
				g.Attr("referrerpolicy", "no-referrer-when-downgrade"),
				g.Attr("allowfullscreen"),
			),
		)
	}

	times := make([]g.Node, 0, len(c.ServiceTimes))
	for _, st := range c.ServiceTimes {
		times = append(times, h.Tr(
			h.Th(g.Text(st.Name)),
			h.Td(g.Text(st.Time)),
			h.Td(g.Text(st.Place)),
		))
	}

	return h.Div(h.Class("location"),
		mapFrame,
		h.Div(h.Class("location__details"),
			textEl("p", "location__address", c.Address),
			g.If(c.Phone != "", h.P(h.Class("location__phone"), h.A(h.Href("tel:"+strings.ReplaceAll(c.Phone, " ", "")), g.Text(c.Phone)))),
			g.If(c.Email != "", h.P(h.Class("location__email"), h.A(h.Href("mailto:"+c.Email), g.Text(c.Email)))),
			bulletList("location__directions", c.Directions),
			g.If(len(times) > 0, h.Table(h.Class("location__times"), h.TBody(times...))),
		),
	)
}

func DepartmentSection(c content.Department) g.Node {
	return h.Div(h.Class("department"),
		img(c.Image, c.Name, "department__image", imageWidth),
		h.Div(h.Class("department__body"),
			textEl("h2", "section__title", c.Name),
			Markdown("department__description", c.Description),
			textEl("p", "department__leader", c.Leader),
			textEl("p", "department__schedule", c.Schedule),
			bulletList("department__activities", c.Activities),
		),
	)
}

func NurtureSection(c content.Nurture) g.Node {
	programs := make([]g.Node, 0, len(c.Programs)+1)
	programs = append(programs, h.Class("nurture__programs"))
	for _, program := range c.Programs {
		programs = append(programs, h.Article(h.Class("program"),
			textEl("h3", "program__name", program.Name),
			textEl("p", "program__target", program.Target),
			textEl("p", "program__schedule", program.Schedule),
			textEl("p", "program__description", program.Description),
		))
	}
	return h.Div(h.Class("nurture"),
		textEl("h2", "section__title", c.Title),
		Markdown("nurture__description", c.Description),
		g.If(len(c.Programs) > 0, h.Div(programs...)),
	)
}

func MissionSection(c content.Mission) g.Node {
	people := make([]g.Node, 0, len(c.Missionaries)+1)
	people = append(people, h.Class("mission__list"))
	for _, m := range c.Missionaries {
		people = append(people, h.Article(h.Class("missionary"),
			img(m.Image, m.Name, "missionary__image", 600),
			textEl("h3", "missionary__name", m.Name),
			textEl("p", "missionary__region", m.Region),
			textEl("p", "missionary__description", m.Description),
		))
	}
	return h.Div(h.Class("mission"),
		textEl("h2", "section__title", c.Title),
		Markdown("mission__description", c.Description),
		g.If(len(c.Missionaries) > 0, h.Div(people...)),
	)
}

func NoticesSection(language string, c content.Notices) g.Node {
	sorted := c.Sorted()
	if len(sorted) == 0 {
		return h.Div(h.Class("notices"),
			textEl("h2", "section__title", c.Title),
			h.P(h.Class("notices__empty"), g.Text(locale.Pick(language, "No notices yet.", "등록된 공지사항이 없습니다."))),
		)
	}

	items := make([]g.Node, 0, len(sorted)+1)
	items = append(items, h.Class("notices__list"))
	for _, notice := range sorted {
		items = append(items, h.Li(classAttr("notice", pinnedClass(notice.Pinned)),
			h.Div(h.Class("notice__header"),
				g.If(notice.Pinned, g.El("span", h.Class("notice__badge"), g.Text(locale.Pick(language, "Pinned", "공지")))),
				h.Strong(h.Class("notice__title"), g.Text(notice.Title)),
				timeEl(notice.Date),
			),
			Markdown("notice__body", notice.Body),
		))
	}
	return h.Div(h.Class("notices"),
		textEl("h2", "section__title", c.Title),
		h.Ul(items...),
	)
}

func pinnedClass(pinned bool) string {
	if pinned {
		return "notice--pinned"
	}
	return ""
}

func PrayerSection(language string, c content.Prayer) g.Node {
	sorted := c.Sorted()
	if len(sorted) == 0 {
		return h.Div(h.Class("prayer"),
			textEl("h2", "section__title", c.Title),
			h.P(h.Class("prayer__empty"), g.Text(locale.Pick(language, "No prayer requests yet.", "등록된 기도제목이 없습니다."))),
		)
	}

	items := make([]g.Node, 0, len(sorted)+1)
	items = append(items, h.Class("prayer__list"))
	for _, request := range sorted {
		items = append(items, h.Li(h.Class("prayer-request"),
			textEl("h3", "prayer-request__title", request.Title),
			Markdown("prayer-request__body", request.Body),
			h.P(h.Class("prayer-request__meta"),
				textEl("span", "prayer-request__author", request.Author),
				timeEl(request.Date),
			),
		))
	}
	return h.Div(h.Class("prayer"),
		textEl("h2", "section__title", c.Title),
		h.Ul(items...),
	)
}

func GallerySection(language string, c content.Gallery) g.Node {
	images := make([]g.Node, 0, len(c.Images)+1)
	images = append(images, h.Class("gallery__grid"))
	for _, image := range c.Images {
		alt := image.Alt
		if alt == "" {
			alt = image.Caption
		}
		images = append(images, g.El("figure", h.Class("gallery__item"),
			img(image.Src, alt, "gallery__image", 800),
			textEl("figcaption", "gallery__caption", image.Caption),
		))
	}
	return h.Div(h.Class("gallery"),
		textEl("h2", "section__title", c.Title),
		g.If(len(c.Images) > 0, h.Div(images...)),
		g.If(safeURL(c.AlbumLink) != "", h.P(h.Class("gallery__more"), h.A(h.Href(safeURL(c.AlbumLink)), g.Text(locale.Pick(language, "View full album", "앨범 전체 보기"))))),
	)
}

func LifeGroupSection(c content.LifeGroup) g.Node {
	groups := make([]g.Node, 0, len(c.Groups)+1)
	groups = append(groups, h.Class("lifegroup__list"))
	for _, group := range c.Groups {
		groups = append(groups, h.Article(h.Class("lifegroup-card"),
			textEl("h3", "lifegroup-card__name", group.Name),
			textEl("p", "lifegroup-card__leader", group.Leader),
			textEl("p", "lifegroup-card__meeting", group.Meeting),
			textEl("p", "lifegroup-card__location", group.Location),
			textEl("p", "lifegroup-card__description", group.Description),
		))
	}
	return h.Div(h.Class("lifegroup"),
		textEl("h2", "section__title", c.Title),
		g.If(len(c.Groups) > 0, h.Div(groups...)),
	)
}

func ImageSliderSection(c content.ImageSlider) g.Node {
	if len(c.Slides) == 0 {
		return g.Group(nil)
	}
	slides := make([]g.Node, 0, len(c.Slides)+3)
	slides = append(slides, h.Class("slider"), g.Attr("data-interval", fmt.Sprint(c.Interval)))
	for i, slide := range c.Slides {
		class := "slider__slide"
		if i == 0 {
			class += " is-active"
		}
		slides = append(slides, h.Div(h.Class(class),
			linkOr(slide.Link, "slider__link",
				img(slide.Image, slide.Caption, "slider__image", imageWidth),
			),
			textEl("p", "slider__caption", slide.Caption),
		))
	}
	return h.Div(slides...)
}

func TextSection(c content.Text) g.Node {
	return h.Div(classAttr("text-block", "text-block--"+c.Align),
		textEl("h2", "section__title", c.Heading),
		Markdown("text-block__body", c.Body),
	)
}

func ImageSection(c content.Image) g.Node {
	if imageSrc(c.Src, imageWidth) == "" {
		return g.Group(nil)
	}
	return g.El("figure", h.Class("image-block"),
		linkOr(c.Link, "image-block__link", img(c.Src, c.Alt, "image-block__image", imageWidth)),
		textEl("figcaption", "image-block__caption", c.Caption),
	)
}

func VideoSection(c content.Video) g.Node {
	var player g.Node = g.Group(nil)
	if embed, ok := YouTubeEmbedURL(c.URL); ok {
		title := c.Title
		if title == "" {
			title = "YouTube video player"
		}
		player = h.Div(h.Class("video__frame"),
			g.El("iframe",
				h.Src(embed),
				g.Attr("title", title),
				g.Attr("loading", "lazy"),
				g.Attr("allow", "accelerometer; clipboard-write; encrypted-media; gyroscope; picture-in-picture; web-share"),
				g.Attr("allowfullscreen"),
				g.Attr("frameborder", "0"),
				g.Attr("referrerpolicy", "strict-origin-when-cross-origin"),
			),
		)
	} else if link := safeURL(c.URL); link != "" {
		player = h.P(h.Class("video__link"), h.A(h.Href(link), g.Attr("target", "_blank"), g.Attr("rel", "noopener"), g.Text(firstNonEmpty(c.Title, link))))
	}

	return h.Div(h.Class("video"),
		textEl("h2", "section__title", c.Title),
		player,
		Markdown("video__description", c.Description),
	)
}

func CardsSection(c content.Cards) g.Node {
	cards := make([]g.Node, 0, len(c.Cards)+1)
	cards = append(cards, h.Class(fmt.Sprintf("cards__grid cards__grid--cols-%d", c.Columns)))
	for _, card := range c.Cards {
		cards = append(cards, h.Article(h.Class("card"),
			linkOr(card.Link, "card__link",
				img(card.Image, card.Title, "card__image", 800),
				textEl("h3", "card__title", card.Title),
			),
			Markdown("card__body", card.Body),
		))
	}
	return h.Div(h.Class("cards"),
		textEl("h2", "section__title", c.Title),
		g.If(len(c.Cards) > 0, h.Div(cards...)),
	)
}

// ContactSection 联系方式只在后台维护，前台不输出。
func ContactSection(content.Contact) g.Node {
	return g.Group(nil)
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}
