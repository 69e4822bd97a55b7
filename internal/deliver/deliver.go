// Package deliver hands a composed greeting to the desktop: clipboard,
// synthetic paste keystroke, browser and plain stdout.
package deliver

import (
	"context"
	"fmt"
	"io"
)

type Deliverer interface {
	Deliver(ctx context.Context, message string) error
}

type Logger interface {
	Debugf(string, ...any)
	Warnf(string, ...any)
}

// Stdout prints the message instead of touching the desktop.
type Stdout struct {
	W io.Writer
}

func (s Stdout) Deliver(_ context.Context, message string) error {
	_, err := fmt.Fprintln(s.W, message)
	return err
}
