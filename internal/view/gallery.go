package view

import (
	"fmt"

	g "github.com/maragudk/gomponents"
	h "github.com/maragudk/gomponents/html"

	"github.com/gracechurch/internal/content"
	"github.com/gracechurch/internal/db"
	"github.com/gracechurch/internal/locale"
)

const galleryThumbWidth = 600

// GalleryIndex 列出全部相册分类。
func GalleryIndex(language string, categories []db.GalleryCategory) g.Node {
	if len(categories) == 0 {
		return EmptyState(language)
	}
	items := make([]g.Node, 0, len(categories)+1)
	items = append(items, h.Class("gallery-categories"))
	for _, category := range categories {
		items = append(items, h.Li(h.Class("gallery-category"),
			h.A(h.Href(fmt.Sprintf("/gallery/%d", category.ID)),
				h.H2(g.Text(locale.Pick(language, category.NameEN, category.NameKR))),
			),
			textEl("p", "gallery-category__description", category.Description),
		))
	}
	return h.Ul(items...)
}

// GalleryCategoryPage 列出分类下的活动。
func GalleryCategoryPage(language string, category db.GalleryCategory) g.Node {
	events := make([]g.Node, 0, len(category.Events)+1)
	events = append(events, h.Class("gallery-events"))
	for _, event := range category.Events {
		events = append(events, h.Li(h.Class("gallery-event"),
			h.A(h.Href(fmt.Sprintf("/gallery/events/%d", event.ID)),
				img(event.CoverURL, event.Title, "gallery-event__cover", galleryThumbWidth),
				h.H3(g.Text(event.Title)),
				g.If(!event.Date.IsZero(), timeEl(event.Date.Format("2006-01-02"))),
			),
		))
	}

	return h.Div(h.Class("gallery-category-page"),
		h.H1(g.Text(locale.Pick(language, category.NameEN, category.NameKR))),
		textEl("p", "gallery-category__description", category.Description),
		g.If(len(category.Events) == 0, EmptyState(language)),
		g.If(len(category.Events) > 0, h.Ul(events...)),
		h.P(h.A(h.Href("/gallery"), g.Text(locale.Pick(language, "All albums", "전체 앨범")))),
	)
}

// GalleryEventPage 展示活动的全部照片，Drive 文件 ID 会转换为缩略图地址。
func GalleryEventPage(language string, event db.GalleryEvent) g.Node {
	photos := make([]g.Node, 0, len(event.Photos)+1)
	photos = append(photos, h.Class("gallery__grid"))
	for _, photo := range event.Photos {
		photos = append(photos, g.El("figure", h.Class("gallery__item"),
			h.A(h.Href(imageSrc(photo.FileURL, imageWidth)), g.Attr("target", "_blank"), g.Attr("rel", "noopener"),
				img(photo.FileURL, photo.FileName, "gallery__image", galleryThumbWidth),
			),
		))
	}

	return h.Div(h.Class("gallery-event-page"),
		h.H1(g.Text(event.Title)),
		g.If(!event.Date.IsZero(), h.P(timeEl(event.Date.Format("2006-01-02")))),
		Markdown("gallery-event__description", event.Description),
		g.If(len(event.Photos) == 0, EmptyState(language)),
		g.If(len(event.Photos) > 0, h.Div(photos...)),
		h.P(h.A(h.Href(fmt.Sprintf("/gallery/%d", event.CategoryID)), g.Text(locale.Pick(language, "Back to album", "앨범으로 돌아가기")))),
	)
}

// PhotoURL 返回照片在页面上使用的地址。
func PhotoURL(photo db.GalleryPhoto) string {
	return content.ThumbnailURL(photo.FileURL, imageWidth)
}
