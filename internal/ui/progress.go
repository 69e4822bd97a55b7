package ui

import (
	"fmt"
	"io"
	"os"
	"sync/atomic"
	"time"

	"github.com/brogergvhs/goodmorning/internal/util"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

type ProgressManager struct {
	p *mpb.Progress
}

func NewProgressManager(out io.Writer) *ProgressManager {
	if out == nil {
		out = os.Stdout
	}

	p := mpb.New(
		mpb.WithWidth(40),
		mpb.WithOutput(out),
		mpb.WithRefreshRate(120*time.Millisecond),
	)
	return &ProgressManager{p: p}
}

func (pm *ProgressManager) Close() {
	pm.p.Wait()
}

// Register adds a byte-counting bar. A total of zero means unknown size
// until SetTotal is called.
func (pm *ProgressManager) Register(name string) *ProgressHandle {
	h := &ProgressHandle{start: time.Now()}

	h.bar = pm.p.New(
		0,
		mpb.BarStyle().Rbound("]"),
		mpb.PrependDecorators(
			decor.Name(name+"  "),
		),
		mpb.AppendDecorators(
			decor.Percentage(decor.WCSyncWidth),
			decor.Any(func(_ decor.Statistics) string {
				return " | " + util.HumanBytes(h.done.Load())
			}),
			decor.Any(func(_ decor.Statistics) string {
				return fmt.Sprintf(" | %.1fs", time.Since(h.start).Seconds())
			}),
		),
	)

	return h
}

type ProgressHandle struct {
	bar   *mpb.Bar
	start time.Time
	done  atomic.Int64
	final atomic.Bool
}

func (h *ProgressHandle) SetTotal(total int64) {
	if h.final.Load() || total <= 0 {
		return
	}
	h.bar.SetTotal(total, false)
}

func (h *ProgressHandle) Update(done int64) {
	if h.final.Load() {
		return
	}
	h.done.Store(done)
	h.bar.SetCurrent(done)
}

func (h *ProgressHandle) MarkDone() {
	if h.final.Swap(true) {
		return
	}

	done := h.done.Load()
	h.bar.SetCurrent(done)
	h.bar.SetTotal(done, true)
}

// Abort drops the bar without completing it.
func (h *ProgressHandle) Abort() {
	if h.final.Swap(true) {
		return
	}
	h.bar.Abort(false)
}
