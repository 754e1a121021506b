package view

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

var youtubeTimePattern = regexp.MustCompile(`(?i)(\d+)(h|m|s)`)

// YouTubeEmbedURL 将 watch、youtu.be、shorts、embed、live 链接转换为嵌入地址。
func YouTubeEmbedURL(raw string) (string, bool) {
	trimmed := normalizeVideoURL(strings.Trim(strings.TrimSpace(raw), "<>"))
	parsed, err := url.Parse(trimmed)
	if err != nil || parsed == nil {
		return "", false
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", false
	}

	host := strings.ToLower(parsed.Hostname())
	var videoID string

	switch {
	case host == "youtu.be":
		videoID = strings.Trim(parsed.Path, "/")
	case isHostOrSubdomain(host, "youtube.com"), isHostOrSubdomain(host, "youtube-nocookie.com"):
		path := strings.Trim(parsed.Path, "/")
		switch {
		case path == "watch":
			videoID = parsed.Query().Get("v")
		case strings.HasPrefix(path, "shorts/"):
			videoID = strings.TrimPrefix(path, "shorts/")
		case strings.HasPrefix(path, "embed/"):
			videoID = strings.TrimPrefix(path, "embed/")
		case strings.HasPrefix(path, "live/"):
			videoID = strings.TrimPrefix(path, "live/")
		}
	default:
		return "", false
	}

	if i := strings.Index(videoID, "/"); i >= 0 {
		videoID = videoID[:i]
	}
	if videoID == "" {
		return "", false
	}

	values := url.Values{}
	values.Set("rel", "0")
	values.Set("modestbranding", "1")
	values.Set("playsinline", "1")
	if start := youtubeStart(parsed); start > 0 {
		values.Set("start", strconv.Itoa(start))
	}
	return fmt.Sprintf("https://www.youtube.com/embed/%s?%s", url.PathEscape(videoID), values.Encode()), true
}

func normalizeVideoURL(raw string) string {
	lower := strings.ToLower(raw)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return raw
	}
	for _, prefix := range []string{"youtube.com/", "www.youtube.com/", "m.youtube.com/", "youtu.be/"} {
		if strings.HasPrefix(lower, prefix) {
			return "https://" + raw
		}
	}
	return raw
}

func youtubeStart(u *url.URL) int {
	query := u.Query()
	if value := query.Get("start"); value != "" {
		return parseYouTubeTime(value)
	}
	return parseYouTubeTime(query.Get("t"))
}

// parseYouTubeTime 解析 90、90s、1h2m3s 形式的起始时间。
func parseYouTubeTime(value string) int {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0
	}
	if seconds, err := strconv.Atoi(trimmed); err == nil {
		if seconds > 0 {
			return seconds
		}
		return 0
	}

	total := 0
	for _, match := range youtubeTimePattern.FindAllStringSubmatch(trimmed, -1) {
		n, err := strconv.Atoi(match[1])
		if err != nil || n <= 0 {
			continue
		}
		switch strings.ToLower(match[2]) {
		case "h":
			total += n * 3600
		case "m":
			total += n * 60
		case "s":
			total += n
		}
	}
	return total
}

func isHostOrSubdomain(host, domain string) bool {
	host = strings.ToLower(strings.TrimSpace(host))
	if host == "" {
		return false
	}
	return host == domain || strings.HasSuffix(host, "."+domain)
}
