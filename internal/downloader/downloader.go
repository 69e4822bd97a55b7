package downloader

import (
	"context"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/brogergvhs/goodmorning/internal/util"
)

type Progress interface {
	SetTotal(total int64)
	Update(done int64)
	MarkDone()
	Abort()
}

type Logger interface {
	Debugf(string, ...any)
}

type Downloader struct {
	client *http.Client
	log    Logger
}

func New(c *http.Client, log Logger) *Downloader {
	return &Downloader{client: c, log: log}
}

// Save downloads imageURL into dir and returns the written path and size.
// The file is written under a temporary name and renamed once complete.
// The progress bar is always completed or aborted before Save returns.
func (d *Downloader) Save(ctx context.Context, imageURL, dir, referer string, ph Progress) (_ string, _ int64, err error) {
	defer func() {
		if err != nil && ph != nil {
			ph.Abort()
		}
	}()

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", 0, fmt.Errorf("cannot create output folder: %w", err)
	}

	final := filepath.Join(dir, FileName(imageURL))
	partial := final + util.PartialSuffix

	n, err := d.download(ctx, imageURL, partial, referer, ph)
	if err != nil {
		_ = os.Remove(partial)
		return "", 0, err
	}

	if err := os.Rename(partial, final); err != nil {
		_ = os.Remove(partial)
		return "", 0, err
	}

	if ph != nil {
		ph.MarkDone()
	}
	if d.log != nil {
		d.log.Debugf("Saved %s (%s)\n", final, util.HumanBytes(n))
	}

	return final, n, nil
}

func (d *Downloader) download(ctx context.Context, u, output, referer string, ph Progress) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, err
	}

	if referer != "" {
		req.Header.Set("Referer", referer)
	}
	req.Header.Set("Accept", "image/avif,image/webp,image/apng,image/*,*/*;q=0.8")

	resp, err := d.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w from %s: %v", util.ErrFetch, u, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("%w from %s: HTTP %d", util.ErrFetch, u, resp.StatusCode)
	}

	if ct := resp.Header.Get("Content-Type"); ct != "" {
		if mt, _, _ := mime.ParseMediaType(ct); !strings.HasPrefix(mt, "image/") {
			return 0, fmt.Errorf("unexpected MIME: %s", ct)
		}
	}

	if ph != nil {
		ph.SetTotal(resp.ContentLength)
	}

	f, err := os.Create(output)
	if err != nil {
		return 0, err
	}

	var progress func(int64)
	if ph != nil {
		progress = ph.Update
	}

	written, err := copyWithProgress(f, resp.Body, progress)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return 0, err
	}

	return written, nil
}
