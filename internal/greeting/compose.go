package greeting

import (
	"fmt"
	"strings"
)

const (
	URLPlaceholder   = "{url}"
	EmojiPlaceholder = "{emoji}"
)

// Compose fills the template in a single pass, so placeholder text inside
// url or emoji is left as is. Nothing is escaped.
func Compose(template, url, emoji string) string {
	r := strings.NewReplacer(URLPlaceholder, url, EmojiPlaceholder, emoji)
	return r.Replace(template)
}

func ValidateTemplate(template string) error {
	if !strings.Contains(template, URLPlaceholder) {
		return fmt.Errorf("greeting template %q has no %s placeholder", template, URLPlaceholder)
	}
	return nil
}
