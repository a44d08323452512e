package util

import (
	"math/rand"
	"regexp"
	"strings"
)

var (
	youtubeIdPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?:v=|/)([0-9A-Za-z_-]{11}).*`),
		regexp.MustCompile(`(?:embed/)([0-9A-Za-z_-]{11})`),
		regexp.MustCompile(`(?:watch\?v=)([0-9A-Za-z_-]{11})`),
	}
	bilibiliIdPatterns = []*regexp.Regexp{
		regexp.MustCompile(`BV[a-zA-Z0-9]{10}`),
		regexp.MustCompile(`av\d+`),
	}
)

func IsYouTubeURL(url string) bool {
	return strings.Contains(url, "youtube.com") || strings.Contains(url, "youtu.be")
}

func IsBilibiliURL(url string) bool {
	return strings.Contains(url, "bilibili.com")
}

// GetYouTubeID extracts the 11-char video id, empty when the link is invalid.
func GetYouTubeID(url string) string {
	for _, pattern := range youtubeIdPatterns {
		if match := pattern.FindStringSubmatch(url); len(match) > 1 {
			return match[1]
		}
	}
	return ""
}

// GetBilibiliVideoID extracts a BV or av id, empty when the link is invalid.
func GetBilibiliVideoID(url string) string {
	for _, pattern := range bilibiliIdPatterns {
		if match := pattern.FindString(url); match != "" {
			return match
		}
	}
	return ""
}

// SanitizePathName strips characters that break file paths or ffmpeg args.
func SanitizePathName(name string) string {
	replacer := strings.NewReplacer(
		"/", "_", "\\", "_", ":", "_", "*", "_",
		"?", "", "\"", "", "<", "", ">", "", "|", "", "=", "",
	)
	return replacer.Replace(name)
}

const randCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateRandStringWithUpperLowerNum returns a random id fragment.
func GenerateRandStringWithUpperLowerNum(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = randCharset[rand.Intn(len(randCharset))]
	}
	return string(b)
}

// DetectPlatform 识别链接所属站点并提取视频号，无法识别时两者皆为空。
func DetectPlatform(url string) (platform, videoId string) {
	if IsYouTubeURL(url) {
		return "youtube", GetYouTubeID(url)
	}
	if IsBilibiliURL(url) {
		return "bilibili", GetBilibiliVideoID(url)
	}
	return "", ""
}
