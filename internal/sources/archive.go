package sources

import (
	"context"
	"fmt"
	"math/rand/v2"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/brogergvhs/goodmorning/internal/greeting"
	"github.com/brogergvhs/goodmorning/internal/util"
)

const (
	// Page 1 of the archive has a plain title; "Page X of Y" starts on page 2.
	discoveryPage   = 2
	pagePlaceholder = "{page}"
)

var (
	reTitle     = regexp.MustCompile(`(?is)<title>(.*?)</title>`)
	rePageOf    = regexp.MustCompile(`Page\s+(\d+)\s+of\s+(\d+)`)
	reFigurePNG = regexp.MustCompile(`<figure [^\n]*?src="(https://[^"\s]+?\.png)"`)
	rePNGSuffix = regexp.MustCompile(`(?i)\.png$`)
)

type Archive struct {
	client      *http.Client
	urlTemplate string
	rng         *rand.Rand
	log         Logger
}

func NewArchive(c *http.Client, urlTemplate string, rng *rand.Rand, log Logger) *Archive {
	return &Archive{
		client:      c,
		urlTemplate: urlTemplate,
		rng:         rng,
		log:         orNop(log),
	}
}

func (a *Archive) Name() string { return "archive" }

func (a *Archive) Endpoint() string { return a.PageURL(1) }

func (a *Archive) PageURL(page int) string {
	return strings.ReplaceAll(a.urlTemplate, pagePlaceholder, strconv.Itoa(page))
}

func (a *Archive) Candidates(ctx context.Context) ([]string, error) {
	body, err := util.Fetch(ctx, a.client, a.PageURL(discoveryPage))
	if err != nil {
		return nil, err
	}

	total, err := TotalPages(body)
	if err != nil {
		return nil, err
	}

	page, err := greeting.PageNumber(a.rng, total)
	if err != nil {
		return nil, err
	}
	a.log.Debugf("Archive has %d pages, picked page %d\n", total, page)

	pageURL := a.PageURL(page)
	body, err = util.Fetch(ctx, a.client, pageURL)
	if err != nil {
		return nil, err
	}

	urls := ExtractFigureImages(body, pageURL)
	a.log.Debugf("Found %d comic images on %s\n", len(urls), pageURL)
	if len(urls) == 0 {
		return nil, fmt.Errorf("%w on %s", ErrNoCandidates, pageURL)
	}

	return urls, nil
}

// TotalPages reads Y from a "Page X of Y" <title>.
func TotalPages(html string) (int, error) {
	title := ""
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(html)); err == nil {
		title = doc.Find("title").First().Text()
	}
	if title == "" {
		if m := reTitle.FindStringSubmatch(html); m != nil {
			title = m[1]
		}
	}

	return PageCountFromTitle(title)
}

func PageCountFromTitle(title string) (int, error) {
	m := rePageOf.FindStringSubmatch(title)
	if m == nil {
		return 0, ErrPageCountNotFound
	}

	total, err := strconv.Atoi(m[2])
	if err != nil || total < 1 {
		return 0, fmt.Errorf("%w: %q", ErrPageCountNotFound, m[0])
	}

	return total, nil
}

// ExtractFigureImages returns the absolute .png sources of images inside
// <figure> elements, in document order. The DOM is tried first; the raw
// markup pattern covers pages goquery cannot make sense of.
func ExtractFigureImages(html, pageURL string) []string {
	var out []string
	seen := map[string]bool{}

	add := func(raw string) {
		u := resolveURL(pageURL, strings.TrimSpace(raw))
		if !isHTTPS(u) || !rePNGSuffix.MatchString(u) || seen[u] {
			return
		}
		seen[u] = true
		out = append(out, u)
	}

	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(html)); err == nil {
		doc.Find("figure img").Each(func(_ int, img *goquery.Selection) {
			for _, k := range []string{"src", "data-src", "data-lazy-src"} {
				if v, ok := img.Attr(k); ok && v != "" {
					add(v)
					return
				}
			}
		})
	}

	if len(out) > 0 {
		return out
	}

	for _, m := range reFigurePNG.FindAllStringSubmatch(html, -1) {
		add(m[1])
	}

	return out
}

func isHTTPS(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && u.Scheme == "https" && u.Host != ""
}

func resolveURL(baseURL, href string) string {
	if href == "" {
		return baseURL
	}

	u, err := url.Parse(href)
	if err == nil && u.IsAbs() {
		return u.String()
	}
	if err != nil {
		return href
	}

	b, err := url.Parse(baseURL)
	if err != nil {
		return href
	}

	return b.ResolveReference(u).String()
}
