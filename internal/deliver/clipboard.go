package deliver

import (
	"context"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
)

type ClipboardWriter func(string) error

type KeyTapper func(key string, modifier Modifier) error

func SystemClipboard(text string) error {
	return clipboard.WriteAll(text)
}

// Clipboard only copies the message.
type Clipboard struct {
	Write ClipboardWriter
}

func (c Clipboard) Deliver(_ context.Context, message string) error {
	write := c.Write
	if write == nil {
		write = SystemClipboard
	}

	if err := write(message); err != nil {
		return fmt.Errorf("could not copy to clipboard: %w", err)
	}
	return nil
}

// Paster copies the message and then sends the paste chord to whatever
// application has focus. A failed keystroke is only logged because the
// message is already on the clipboard.
type Paster struct {
	Write  ClipboardWriter
	Tap    KeyTapper
	OSName string
	Delay  time.Duration
	Log    Logger
}

func (p Paster) Deliver(ctx context.Context, message string) error {
	if err := (Clipboard{Write: p.Write}).Deliver(ctx, message); err != nil {
		return err
	}

	osName := p.OSName
	if osName == "" {
		osName = HostOSName()
	}
	mod := PasteModifier(osName)

	if p.Delay > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(p.Delay):
		}
	}

	tap := p.Tap
	if tap == nil {
		tap = RobotKeyTap
	}

	if p.Log != nil {
		p.Log.Debugf("Pasting with %s+v (%s)\n", mod, osName)
	}
	if err := tap("v", mod); err != nil && p.Log != nil {
		p.Log.Warnf("Could not simulate paste, message is on the clipboard: %v\n", err)
	}

	return nil
}
