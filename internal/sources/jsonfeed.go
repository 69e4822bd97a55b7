package sources

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/brogergvhs/goodmorning/internal/util"
)

// CDN image URLs wrap the original upload after this path segment,
// e.g. ".../fl_progressive:steep/https%3A%2F%2F...png".
const nestedURLMarker = "steep/"

var reFeedImage = regexp.MustCompile(`"url"\s*:\s*"([^"]*?4800x4800\.png)"`)

type JSONFeed struct {
	client  *http.Client
	feedURL string
	log     Logger
}

func NewJSONFeed(c *http.Client, feedURL string, log Logger) *JSONFeed {
	return &JSONFeed{client: c, feedURL: feedURL, log: orNop(log)}
}

func (f *JSONFeed) Name() string { return "json" }

func (f *JSONFeed) Endpoint() string { return f.feedURL }

func (f *JSONFeed) Candidates(ctx context.Context) ([]string, error) {
	body, err := util.Fetch(ctx, f.client, f.feedURL)
	if err != nil {
		return nil, err
	}

	urls := ExtractFeedImages(body, f.log)
	f.log.Debugf("Found %d comic images in %s\n", len(urls), f.feedURL)
	if len(urls) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoCandidates, f.feedURL)
	}

	return urls, nil
}

// ExtractFeedImages returns the decoded image URL of every full-size
// ("4800x4800") image field in the feed body. Entries that fail to decode
// are skipped.
func ExtractFeedImages(body string, log Logger) []string {
	log = orNop(log)

	var out []string
	for _, m := range reFeedImage.FindAllStringSubmatch(body, -1) {
		u, err := DecodeNestedURL(m[1])
		if err != nil {
			log.Debugf("Skipping undecodable image URL %q: %v\n", m[1], err)
			continue
		}
		out = append(out, u)
	}

	return out
}

// DecodeNestedURL recovers the original URL embedded after the CDN marker.
// URLs without the marker are returned unchanged.
func DecodeNestedURL(raw string) (string, error) {
	_, nested, ok := strings.Cut(raw, nestedURLMarker)
	if !ok {
		return raw, nil
	}

	return url.QueryUnescape(nested)
}
