package downloader

import (
	"net/url"
	"path"
	"regexp"
	"strings"
	"unicode"
)

var reUnderscore = regexp.MustCompile(`_+`)

func sanitize(s string) string {
	s = strings.ToLower(s)

	clean := make([]rune, 0, len(s))
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
			clean = append(clean, r)
		case r == '-' || r == ' ' || r == '.' || r == '%':
			clean = append(clean, '_')
		}
	}

	return strings.Trim(reUnderscore.ReplaceAllString(string(clean), "_"), "_")
}

// FileName derives a safe local file name from an image URL, keeping its
// extension. Nested CDN URLs are named after their last path segment.
func FileName(imageURL string) string {
	base := imageURL
	if u, err := url.Parse(imageURL); err == nil {
		base = u.Path
	}
	base = path.Base(base)

	ext := strings.ToLower(path.Ext(base))
	if ext == "" || len(ext) > 5 {
		ext = ".png"
	}

	name := sanitize(strings.TrimSuffix(base, path.Ext(base)))
	if name == "" {
		name = "comic"
	}

	return name + ext
}
