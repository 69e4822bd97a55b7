package sources

import (
	"fmt"
	"math/rand/v2"
	"net/http"
	"strings"
)

type Options struct {
	ArchiveURLTemplate string
	JSONFeedURL        string
	RSSFeedURL         string
}

var names = []string{"archive", "json", "rss"}

func Names() []string {
	return append([]string(nil), names...)
}

func New(name string, c *http.Client, rng *rand.Rand, opts Options, log Logger) (Source, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "archive":
		return NewArchive(c, opts.ArchiveURLTemplate, rng, log), nil
	case "json":
		return NewJSONFeed(c, opts.JSONFeedURL, log), nil
	case "rss":
		return NewRSSFeed(c, opts.RSSFeedURL, log), nil
	default:
		return nil, fmt.Errorf("unknown source %q (available: %s)", name, strings.Join(names, ", "))
	}
}
