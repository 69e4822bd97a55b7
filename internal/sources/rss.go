package sources

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/brogergvhs/goodmorning/internal/util"
)

const descriptionXPath = `//description[contains(., '.png')]`

var (
	reParagraph = regexp.MustCompile(`(?i)<p[\s>]`)
	reImgSrc    = regexp.MustCompile(`src="([^"]+)"`)
)

type RSSFeed struct {
	client  *http.Client
	feedURL string
	log     Logger
}

func NewRSSFeed(c *http.Client, feedURL string, log Logger) *RSSFeed {
	return &RSSFeed{client: c, feedURL: feedURL, log: orNop(log)}
}

func (f *RSSFeed) Name() string { return "rss" }

func (f *RSSFeed) Endpoint() string { return f.feedURL }

func (f *RSSFeed) Candidates(ctx context.Context) ([]string, error) {
	body, err := util.Fetch(ctx, f.client, f.feedURL)
	if err != nil {
		return nil, err
	}

	urls, err := ExtractDescriptionImages(body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.feedURL, err)
	}
	f.log.Debugf("Found %d comic images in %s\n", len(urls), f.feedURL)

	return urls, nil
}

// ExtractDescriptionImages returns the image source of every feed item
// description that mentions a .png and holds a single paragraph. Posts with
// more paragraphs are articles rather than comics.
func ExtractDescriptionImages(body string) ([]string, error) {
	doc, err := xmlquery.Parse(strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedFeed, err)
	}

	nodes, err := xmlquery.QueryAll(doc, descriptionXPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedFeed, err)
	}
	if len(nodes) == 0 {
		return nil, ErrNoDescriptions
	}

	var out []string
	for _, n := range nodes {
		if u, ok := singleParagraphImage(n.InnerText()); ok {
			out = append(out, u)
		}
	}

	if len(out) == 0 {
		return nil, ErrNoCandidates
	}

	return out, nil
}

func singleParagraphImage(description string) (string, bool) {
	if len(reParagraph.FindAllStringIndex(description, -1)) != 1 {
		return "", false
	}

	m := reImgSrc.FindStringSubmatch(description)
	if m == nil {
		return "", false
	}

	return m[1], true
}
