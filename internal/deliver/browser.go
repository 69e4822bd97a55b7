package deliver

import (
	"context"

	"github.com/pkg/browser"
)

type URLOpener func(string) error

// Browser opens a URL in the default browser. Failures are logged, never
// returned.
type Browser struct {
	Open URLOpener
	Log  Logger
}

func (b Browser) OpenURL(_ context.Context, url string) {
	open := b.Open
	if open == nil {
		open = browser.OpenURL
	}

	if err := open(url); err != nil && b.Log != nil {
		b.Log.Warnf("Could not open [%s] in the default browser: %v\n", url, err)
	}
}
