package sources

import (
	"context"
	"fmt"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/brogergvhs/goodmorning/internal/util"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestClient(t *testing.T) *http.Client {
	t.Helper()
	c, err := util.NewHTTPClient(util.HTTPClientOptions{Timeout: 5 * time.Second})
	require.NoError(t, err)
	t.Cleanup(c.CloseIdleConnections)
	return c
}

func archivePage(page, total int, images ...string) string {
	body := fmt.Sprintf("<html><head><title>Comics - Page %d of %d - Work Chronicles</title></head><body>\n", page, total)
	for _, img := range images {
		body += fmt.Sprintf(`<figure class="wp-block-image size-large"><img decoding="async" src="%s" alt="" class="wp-image-1"/></figure>`+"\n", img)
	}
	return body + "</body></html>"
}

func TestPageCountFromTitle(t *testing.T) {
	total, err := PageCountFromTitle("Page 3 of 42")
	require.NoError(t, err)
	assert.Equal(t, 42, total)

	_, err = PageCountFromTitle("Comics - Work Chronicles")
	assert.ErrorIs(t, err, ErrPageCountNotFound)

	_, err = PageCountFromTitle("Page 0 of 0")
	assert.ErrorIs(t, err, ErrPageCountNotFound)
}

func TestTotalPages(t *testing.T) {
	total, err := TotalPages(archivePage(2, 57))
	require.NoError(t, err)
	assert.Equal(t, 57, total)

	_, err = TotalPages("<html><head><title>Work Chronicles</title></head></html>")
	assert.ErrorIs(t, err, ErrPageCountNotFound)
}

func TestExtractFigureImages(t *testing.T) {
	html := archivePage(4, 10,
		"https://cdn.example.com/2023/01/one.png",
		"https://cdn.example.com/2023/01/photo.jpg",
		"http://cdn.example.com/insecure.png",
		"https://cdn.example.com/2023/01/two.png",
		"https://cdn.example.com/2023/01/one.png",
	)
	html += `<img src="https://cdn.example.com/outside-figure.png">`

	got := ExtractFigureImages(html, "https://workchronicles.com/comics/page/4")
	want := []string{
		"https://cdn.example.com/2023/01/one.png",
		"https://cdn.example.com/2023/01/two.png",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("images mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractFigureImages_LazySrcAndRelative(t *testing.T) {
	html := `<figure><img data-src="/wp-content/uploads/lazy.png"></figure>`
	got := ExtractFigureImages(html, "https://workchronicles.com/comics/page/3")
	assert.Equal(t, []string{"https://workchronicles.com/wp-content/uploads/lazy.png"}, got)
}

func TestExtractFigureImages_None(t *testing.T) {
	assert.Empty(t, ExtractFigureImages("<html><body><p>nothing</p></body></html>", "https://example.com"))
}

func TestArchive_Candidates(t *testing.T) {
	var (
		mu        sync.Mutex
		requested []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		requested = append(requested, r.URL.Path)
		mu.Unlock()
		var page, total int = 0, 3
		_, _ = fmt.Sscanf(r.URL.Path, "/comics/page/%d", &page)
		_, _ = w.Write([]byte(archivePage(page, total, fmt.Sprintf("https://cdn.example.com/p%d.png", page))))
	}))
	defer srv.Close()

	a := NewArchive(newTestClient(t), srv.URL+"/comics/page/{page}", rand.New(rand.NewPCG(3, 4)), nil)
	assert.Equal(t, "archive", a.Name())
	assert.Equal(t, srv.URL+"/comics/page/1", a.Endpoint())

	urls, err := a.Candidates(context.Background())
	require.NoError(t, err)
	require.Len(t, urls, 1)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, requested, 2)
	assert.Equal(t, "/comics/page/2", requested[0])

	var page int
	_, err = fmt.Sscanf(requested[1], "/comics/page/%d", &page)
	require.NoError(t, err)
	assert.True(t, page >= 1 && page <= 3)
	assert.Equal(t, fmt.Sprintf("https://cdn.example.com/p%d.png", page), urls[0])
}

func TestArchive_MissingPageCount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html><head><title>Maintenance</title></head></html>"))
	}))
	defer srv.Close()

	a := NewArchive(newTestClient(t), srv.URL+"/{page}", rand.New(rand.NewPCG(1, 1)), nil)
	_, err := a.Candidates(context.Background())
	assert.ErrorIs(t, err, ErrPageCountNotFound)
}

func TestArchive_EmptyPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(archivePage(2, 1)))
	}))
	defer srv.Close()

	a := NewArchive(newTestClient(t), srv.URL+"/{page}", rand.New(rand.NewPCG(1, 1)), nil)
	_, err := a.Candidates(context.Background())
	assert.ErrorIs(t, err, ErrNoCandidates)
}

func TestArchive_FetchFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	a := NewArchive(newTestClient(t), srv.URL+"/{page}", rand.New(rand.NewPCG(1, 1)), nil)
	_, err := a.Candidates(context.Background())
	assert.ErrorIs(t, err, util.ErrFetch)
}

func TestDecodeNestedURL(t *testing.T) {
	got, err := DecodeNestedURL("https://substackcdn.com/image/fetch/w_1456,fl_progressive:steep/https%3A%2F%2Fexample.com%2Fimg.png")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/img.png", got)

	got, err = DecodeNestedURL("https://example.com/plain_4800x4800.png")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/plain_4800x4800.png", got)

	_, err = DecodeNestedURL("https://cdn/steep/https%3A%2F%2Fbad%ZZ.png")
	assert.Error(t, err)
}

const substackArchive = `[
 {"id": 1, "cover_image": "https://substackcdn.com/small.png",
  "postTags": [], "url": "https://substackcdn.com/image/fetch/f_auto,fl_progressive:steep/https%3A%2F%2Fbucket.s3.amazonaws.com%2Fpublic%2Fimages%2Fa_4800x4800.png"},
 {"id": 2, "url":"https://substackcdn.com/image/fetch/fl_progressive:steep/https%3A%2F%2Fbucket.s3.amazonaws.com%2Fpublic%2Fimages%2Fb_4800x4800.png"},
 {"id": 3, "url": "https://substackcdn.com/image/fetch/fl_progressive:steep/https%3A%2F%2Fbucket%2Fthumb_1200x600.png"},
 {"id": 4, "url": "https://substackcdn.com/image/fetch/fl_progressive:steep/https%3A%2F%2Fbad%ZZ_4800x4800.png"}
]`

func TestExtractFeedImages(t *testing.T) {
	got := ExtractFeedImages(substackArchive, nil)
	want := []string{
		"https://bucket.s3.amazonaws.com/public/images/a_4800x4800.png",
		"https://bucket.s3.amazonaws.com/public/images/b_4800x4800.png",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("feed images mismatch (-want +got):\n%s", diff)
	}
}

func TestJSONFeed_Candidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(substackArchive))
	}))
	defer srv.Close()

	f := NewJSONFeed(newTestClient(t), srv.URL, nil)
	urls, err := f.Candidates(context.Background())
	require.NoError(t, err)
	assert.Len(t, urls, 2)
}

func TestJSONFeed_NoMatches(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	_, err := NewJSONFeed(newTestClient(t), srv.URL, nil).Candidates(context.Background())
	assert.ErrorIs(t, err, ErrNoCandidates)
}

const rssFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
  <title>Work Chronicles</title>
  <item>
    <title>Single comic</title>
    <description>&lt;p&gt;&lt;img src="https://cdn.example.com/single.png" alt=""&gt;&lt;/p&gt;</description>
  </item>
  <item>
    <title>Article</title>
    <description>&lt;p&gt;Intro&lt;/p&gt;&lt;p&gt;&lt;img src="https://cdn.example.com/article.png"&gt;&lt;/p&gt;</description>
  </item>
  <item>
    <title>CDATA comic</title>
    <description><![CDATA[<p class="wp"><img src="https://cdn.example.com/cdata.png" /></p>]]></description>
  </item>
  <item>
    <title>JPEG</title>
    <description>&lt;p&gt;&lt;img src="https://cdn.example.com/photo.jpg"&gt;&lt;/p&gt;</description>
  </item>
</channel>
</rss>`

func TestExtractDescriptionImages(t *testing.T) {
	got, err := ExtractDescriptionImages(rssFeed)
	require.NoError(t, err)
	want := []string{
		"https://cdn.example.com/single.png",
		"https://cdn.example.com/cdata.png",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("rss images mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractDescriptionImages_Errors(t *testing.T) {
	noPNG := `<rss><channel><item><description>&lt;p&gt;text&lt;/p&gt;</description></item></channel></rss>`
	_, err := ExtractDescriptionImages(noPNG)
	assert.ErrorIs(t, err, ErrNoDescriptions)

	onlyArticles := `<rss><channel><item><description>&lt;p&gt;a&lt;/p&gt;&lt;p&gt;&lt;img src="x.png"&gt;&lt;/p&gt;</description></item></channel></rss>`
	_, err = ExtractDescriptionImages(onlyArticles)
	assert.ErrorIs(t, err, ErrNoCandidates)

	_, err = ExtractDescriptionImages(`<rss><channel></item></channel></rss>`)
	assert.ErrorIs(t, err, ErrMalformedFeed)
}

func TestRSSFeed_Candidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(rssFeed))
	}))
	defer srv.Close()

	f := NewRSSFeed(newTestClient(t), srv.URL, nil)
	urls, err := f.Candidates(context.Background())
	require.NoError(t, err)
	assert.Len(t, urls, 2)
}

func TestNew(t *testing.T) {
	c := newTestClient(t)
	opts := Options{ArchiveURLTemplate: "https://a/{page}", JSONFeedURL: "https://j", RSSFeedURL: "https://r"}

	for _, name := range Names() {
		s, err := New(name, c, rand.New(rand.NewPCG(1, 1)), opts, nil)
		require.NoError(t, err)
		assert.Equal(t, name, s.Name())
	}

	s, err := New(" RSS ", c, nil, opts, nil)
	require.NoError(t, err)
	assert.Equal(t, "https://r", s.Endpoint())

	_, err = New("gopher", c, nil, opts, nil)
	assert.ErrorContains(t, err, "unknown source")
}
