// Package content models the per-kind payloads stored in sections.content.
//
// Every known kind has its own struct; Decode turns a raw JSON object into
// one of them, and unknown kinds come back as Raw so callers can still show
// something.
package content

import "strings"

// Kind is the discriminator stored in sections.kind.
type Kind string

const (
	KindHero        Kind = "hero"
	KindInfoCards   Kind = "info-cards"
	KindWelcome     Kind = "welcome"
	KindPastor      Kind = "pastor"
	KindLocation    Kind = "location"
	KindDepartment  Kind = "department"
	KindNurture     Kind = "nurture"
	KindMission     Kind = "mission"
	KindNotices     Kind = "notices"
	KindPrayer      Kind = "prayer"
	KindGallery     Kind = "gallery"
	KindLifeGroup   Kind = "lifegroup"
	KindImageSlider Kind = "image-slider"
	KindText        Kind = "text"
	KindImage       Kind = "image"
	KindVideo       Kind = "video"
	KindCards       Kind = "cards"
	KindContact     Kind = "contact"
)

var knownKinds = []Kind{
	KindHero,
	KindInfoCards,
	KindWelcome,
	KindPastor,
	KindLocation,
	KindDepartment,
	KindNurture,
	KindMission,
	KindNotices,
	KindPrayer,
	KindGallery,
	KindLifeGroup,
	KindImageSlider,
	KindText,
	KindImage,
	KindVideo,
	KindCards,
	KindContact,
}

// KnownKinds returns a copy of the closed list of kinds with a dedicated component.
func KnownKinds() []Kind {
	out := make([]Kind, len(knownKinds))
	copy(out, knownKinds)
	return out
}

// IsKnown reports whether kind has a dedicated struct and component.
func IsKnown(kind string) bool {
	normalized := Kind(strings.TrimSpace(kind))
	for _, k := range knownKinds {
		if k == normalized {
			return true
		}
	}
	return false
}

// Known pages. The set is open: any string is accepted as a page key.
const (
	PageHome                  = "home"
	PageAbout                 = "about"
	PageAboutLocation         = "about-location"
	PageSermons               = "sermons"
	PageEducationYouth        = "education-youth"
	PageEducationSundaySchool = "education-sunday-school"
	PageMissionDomestic       = "mission-domestic"
	PageMissionOverseas       = "mission-overseas"
	PageNewsNotices           = "news-notices"
	PageNewsPrayer            = "news-prayer"
	PageNewsBulletin          = "news-bulletin"
)
