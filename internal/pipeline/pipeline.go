// Package pipeline runs one greeting: fetch candidates from a source, pick
// a comic and an emoji, compose the message and hand it to the sinks.
package pipeline

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/brogergvhs/goodmorning/internal/deliver"
	"github.com/brogergvhs/goodmorning/internal/greeting"
	"github.com/brogergvhs/goodmorning/internal/sources"
)

type Result struct {
	Source     string
	Candidates int
	ComicURL   string
	Emoji      string
	Message    string
}

type Options struct {
	Template string
	Emojis   []string
	Rand     *rand.Rand
}

type Logger interface {
	Debugf(string, ...any)
}

// Run stops at the first failure; there is no fallback source.
func Run(ctx context.Context, src sources.Source, opts Options, sink deliver.Deliverer, log Logger) (*Result, error) {
	if err := greeting.ValidateTemplate(opts.Template); err != nil {
		return nil, err
	}

	rng := opts.Rand
	if rng == nil {
		rng = greeting.NewRand()
	}

	candidates, err := src.Candidates(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s source: %w", src.Name(), err)
	}

	comic, err := greeting.Pick(rng, candidates)
	if err != nil {
		return nil, fmt.Errorf("%s source: %w", src.Name(), err)
	}

	emoji, err := greeting.Pick(rng, opts.Emojis)
	if err != nil {
		return nil, fmt.Errorf("emoji: %w", err)
	}

	res := &Result{
		Source:     src.Name(),
		Candidates: len(candidates),
		ComicURL:   comic,
		Emoji:      emoji,
		Message:    greeting.Compose(opts.Template, comic, emoji),
	}
	if log != nil {
		log.Debugf("Picked %s out of %d candidates\n", comic, len(candidates))
	}

	if sink != nil {
		if err := sink.Deliver(ctx, res.Message); err != nil {
			return res, err
		}
	}

	return res, nil
}
