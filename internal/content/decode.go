package content

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNotObject is returned when a content payload is valid JSON but not an object.
var ErrNotObject = errors.New("content must be a JSON object")

// Decode turns a raw content payload into the struct for kind.
//
// Known kinds always return their struct with defaults applied. A non-nil
// error reports drift (wrong field types, non-object payload); the fields that
// did decode are kept. Unknown kinds return Raw and never fail unless the
// payload is unreadable.
func Decode(kind string, raw []byte) (Content, error) {
	switch Kind(strings.TrimSpace(kind)) {
	case KindHero:
		return decodeInto(raw, &Hero{})
	case KindInfoCards:
		return decodeInto(raw, &InfoCards{})
	case KindWelcome:
		return decodeInto(raw, &Welcome{})
	case KindPastor:
		return decodeInto(raw, &Pastor{})
	case KindLocation:
		return decodeInto(raw, &Location{})
	case KindDepartment:
		return decodeInto(raw, &Department{})
	case KindNurture:
		return decodeInto(raw, &Nurture{})
	case KindMission:
		return decodeInto(raw, &Mission{})
	case KindNotices:
		return decodeInto(raw, &Notices{})
	case KindPrayer:
		return decodeInto(raw, &Prayer{})
	case KindGallery:
		return decodeInto(raw, &Gallery{})
	case KindLifeGroup:
		return decodeInto(raw, &LifeGroup{})
	case KindImageSlider:
		return decodeInto(raw, &ImageSlider{})
	case KindText:
		return decodeInto(raw, &Text{})
	case KindImage:
		return decodeInto(raw, &Image{})
	case KindVideo:
		return decodeInto(raw, &Video{})
	case KindCards:
		return decodeInto(raw, &Cards{})
	case KindContact:
		return decodeInto(raw, &Contact{})
	default:
		data := map[string]any{}
		err := unmarshalObject(raw, &data)
		return Raw{Type: kind, Data: data}, err
	}
}

// Template returns the initial content for a new section of kind, with the
// kind's defaults filled in. Unknown kinds get an empty object.
func Template(kind string) []byte {
	decoded, _ := Decode(kind, nil)
	if raw, ok := decoded.(Raw); ok && len(raw.Data) == 0 {
		return []byte("{}")
	}
	out, err := json.MarshalIndent(decoded, "", "  ")
	if err != nil {
		return []byte("{}")
	}
	return out
}

// IsObject reports whether raw is empty or a JSON object.
func IsObject(raw []byte) bool {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return true
	}
	if trimmed[0] != '{' {
		return false
	}
	return json.Valid(trimmed)
}

func decodeInto[T any](raw []byte, v *T) (T, error) {
	err := unmarshalObject(raw, v)
	if n, ok := any(v).(normalizer); ok {
		n.normalize()
	}
	return *v, err
}

func unmarshalObject(raw []byte, v any) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	if trimmed[0] != '{' {
		if json.Valid(trimmed) {
			return ErrNotObject
		}
		return fmt.Errorf("decode content: invalid json")
	}
	if err := json.Unmarshal(trimmed, v); err != nil {
		return fmt.Errorf("decode content: %w", err)
	}
	return nil
}
