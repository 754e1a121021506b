package locale

import "strings"

const (
	LanguageKorean  = "ko"
	LanguageEnglish = "en"
)

type Preference struct {
	Language string
	Locale   string
	HTMLLang string
}

func NormalizeLanguage(raw string) string {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	if trimmed == "" {
		return ""
	}
	if strings.HasPrefix(trimmed, "ko") || trimmed == "kr" {
		return LanguageKorean
	}
	if strings.HasPrefix(trimmed, "en") {
		return LanguageEnglish
	}
	return ""
}

func LanguageFromCountryCode(code string) string {
	trimmed := strings.ToUpper(strings.TrimSpace(code))
	if trimmed == "" {
		return ""
	}
	if trimmed == "KR" {
		return LanguageKorean
	}
	return LanguageEnglish
}

// LanguageFromAcceptLanguage 取 Accept-Language 中首个可识别的语言。
func LanguageFromAcceptLanguage(header string) string {
	for _, part := range strings.Split(header, ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if language := NormalizeLanguage(tag); language != "" {
			return language
		}
	}
	return ""
}

func PreferenceForLanguage(language string) Preference {
	normalized := NormalizeLanguage(language)
	if normalized == LanguageEnglish {
		return Preference{Language: LanguageEnglish, Locale: "en_US", HTMLLang: "en"}
	}
	return Preference{Language: LanguageKorean, Locale: "ko_KR", HTMLLang: "ko"}
}
