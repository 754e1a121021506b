package content

import (
	"cmp"
	"slices"
	"strings"
)

// DefaultChurchName is shown when a hero section has no heading.
const DefaultChurchName = "Grace Church"

// Content is the decoded payload of one section.
type Content interface {
	Kind() Kind
}

type normalizer interface {
	normalize()
}

// Hero is the top banner of a page.
type Hero struct {
	Heading         string `json:"heading"`
	Subheading      string `json:"subheading"`
	BackgroundImage string `json:"backgroundImage"`
	ButtonText      string `json:"buttonText"`
	ButtonLink      string `json:"buttonLink"`
}

func (Hero) Kind() Kind { return KindHero }

func (h *Hero) normalize() {
	h.Heading = strings.TrimSpace(h.Heading)
	if h.Heading == "" {
		h.Heading = DefaultChurchName
	}
	if strings.TrimSpace(h.ButtonLink) == "" {
		h.ButtonText = ""
	}
}

type InfoCard struct {
	Icon        string `json:"icon"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Link        string `json:"link"`
}

// InfoCards is a row of short facts (service times, address, phone ...).
type InfoCards struct {
	Title string     `json:"title"`
	Cards []InfoCard `json:"cards"`
}

func (InfoCards) Kind() Kind { return KindInfoCards }

// Welcome greets first-time visitors.
type Welcome struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Image   string `json:"image"`
}

func (Welcome) Kind() Kind { return KindWelcome }

func (w *Welcome) normalize() {
	if strings.TrimSpace(w.Title) == "" {
		w.Title = "Welcome"
	}
}

// Pastor holds the senior pastor greeting. Greeting is Markdown.
type Pastor struct {
	Name      string `json:"name"`
	Position  string `json:"position"`
	Photo     string `json:"photo"`
	Greeting  string `json:"greeting"`
	Signature string `json:"signature"`
}

func (Pastor) Kind() Kind { return KindPastor }

func (p *Pastor) normalize() {
	if strings.TrimSpace(p.Position) == "" {
		p.Position = "Senior Pastor"
	}
}

type ServiceTime struct {
	Name  string `json:"name"`
	Time  string `json:"time"`
	Place string `json:"place"`
}

// Location describes where the church is and when services are held.
type Location struct {
	Address      string        `json:"address"`
	Phone        string        `json:"phone"`
	Email        string        `json:"email"`
	MapEmbedURL  string        `json:"mapEmbedUrl"`
	Directions   []string      `json:"directions"`
	ServiceTimes []ServiceTime `json:"serviceTimes"`
}

func (Location) Kind() Kind { return KindLocation }

// Department introduces one ministry department.
type Department struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Leader      string   `json:"leader"`
	Schedule    string   `json:"schedule"`
	Image       string   `json:"image"`
	Activities  []string `json:"activities"`
}

func (Department) Kind() Kind { return KindDepartment }

type Program struct {
	Name        string `json:"name"`
	Target      string `json:"target"`
	Schedule    string `json:"schedule"`
	Description string `json:"description"`
}

// Nurture lists discipleship and training programs.
type Nurture struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Programs    []Program `json:"programs"`
}

func (Nurture) Kind() Kind { return KindNurture }

type Missionary struct {
	Name        string `json:"name"`
	Region      string `json:"region"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// Mission lists supported missionaries or mission partners.
type Mission struct {
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	Missionaries []Missionary `json:"missionaries"`
}

func (Mission) Kind() Kind { return KindMission }

type Notice struct {
	Title  string `json:"title"`
	Date   string `json:"date"`
	Body   string `json:"body"`
	Pinned bool   `json:"pinned"`
}

// Notices is the announcement board.
type Notices struct {
	Title   string   `json:"title"`
	Notices []Notice `json:"notices"`
}

func (Notices) Kind() Kind { return KindNotices }

// Sorted returns pinned notices first, then newest date first.
// Dates are ISO strings so they compare lexically; undated notices go last.
func (n Notices) Sorted() []Notice {
	out := slices.Clone(n.Notices)
	slices.SortStableFunc(out, func(a, b Notice) int {
		if a.Pinned != b.Pinned {
			if a.Pinned {
				return -1
			}
			return 1
		}
		return compareDateDesc(a.Date, b.Date)
	})
	return out
}

type PrayerRequest struct {
	Title  string `json:"title"`
	Body   string `json:"body"`
	Author string `json:"author"`
	Date   string `json:"date"`
}

// Prayer lists prayer requests.
type Prayer struct {
	Title    string          `json:"title"`
	Requests []PrayerRequest `json:"requests"`
}

func (Prayer) Kind() Kind { return KindPrayer }

// Sorted returns requests newest first.
func (p Prayer) Sorted() []PrayerRequest {
	out := slices.Clone(p.Requests)
	slices.SortStableFunc(out, func(a, b PrayerRequest) int {
		return compareDateDesc(a.Date, b.Date)
	})
	return out
}

type GalleryImage struct {
	Src     string `json:"src"`
	Alt     string `json:"alt"`
	Caption string `json:"caption"`
}

// Gallery is an inline photo grid, optionally linking to a full album.
type Gallery struct {
	Title     string         `json:"title"`
	AlbumLink string         `json:"albumLink"`
	Images    []GalleryImage `json:"images"`
}

func (Gallery) Kind() Kind { return KindGallery }

type Group struct {
	Name        string `json:"name"`
	Leader      string `json:"leader"`
	Meeting     string `json:"meeting"`
	Location    string `json:"location"`
	Description string `json:"description"`
}

// LifeGroup lists small groups.
type LifeGroup struct {
	Title  string  `json:"title"`
	Groups []Group `json:"groups"`
}

func (LifeGroup) Kind() Kind { return KindLifeGroup }

type Slide struct {
	Image   string `json:"image"`
	Caption string `json:"caption"`
	Link    string `json:"link"`
}

// ImageSlider rotates through slides every Interval milliseconds.
type ImageSlider struct {
	Slides   []Slide `json:"slides"`
	Interval int     `json:"interval"`
}

func (ImageSlider) Kind() Kind { return KindImageSlider }

func (s *ImageSlider) normalize() {
	if s.Interval <= 0 {
		s.Interval = 5000
	}
	kept := s.Slides[:0]
	for _, slide := range s.Slides {
		if strings.TrimSpace(slide.Image) != "" {
			kept = append(kept, slide)
		}
	}
	s.Slides = kept
}

// Text is a free Markdown block.
type Text struct {
	Heading string `json:"heading"`
	Body    string `json:"body"`
	Align   string `json:"align"`
}

func (Text) Kind() Kind { return KindText }

func (t *Text) normalize() {
	switch strings.ToLower(strings.TrimSpace(t.Align)) {
	case "center":
		t.Align = "center"
	case "right":
		t.Align = "right"
	default:
		t.Align = "left"
	}
}

// Image is a single picture.
type Image struct {
	Src     string `json:"src"`
	Alt     string `json:"alt"`
	Caption string `json:"caption"`
	Link    string `json:"link"`
}

func (Image) Kind() Kind { return KindImage }

func (i *Image) normalize() {
	if strings.TrimSpace(i.Alt) == "" {
		i.Alt = strings.TrimSpace(i.Caption)
	}
}

// Video is a sermon or promo video, usually a YouTube link.
type Video struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (Video) Kind() Kind { return KindVideo }

type Card struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Image string `json:"image"`
	Link  string `json:"link"`
}

// Cards is a grid of cards with 1 to 4 columns.
type Cards struct {
	Title   string `json:"title"`
	Columns int    `json:"columns"`
	Cards   []Card `json:"cards"`
}

func (Cards) Kind() Kind { return KindCards }

func (c *Cards) normalize() {
	switch {
	case c.Columns <= 0:
		c.Columns = 3
	case c.Columns > 4:
		c.Columns = 4
	}
}

// Contact carries contact details for the admin side only; it renders nothing.
type Contact struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
	Note  string `json:"note"`
}

func (Contact) Kind() Kind { return KindContact }

// Raw is the payload of a kind without a dedicated struct.
type Raw struct {
	Type string
	Data map[string]any
}

func (r Raw) Kind() Kind { return Kind(r.Type) }

func compareDateDesc(a, b string) int {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	switch {
	case a == "" && b == "":
		return 0
	case a == "":
		return 1
	case b == "":
		return -1
	}
	return cmp.Compare(b, a)
}
