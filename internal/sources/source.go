package sources

import (
	"context"
	"errors"
)

var (
	ErrNoCandidates      = errors.New("no comic image URLs found")
	ErrPageCountNotFound = errors.New("page count not found in archive title")
	ErrNoDescriptions    = errors.New("no feed descriptions reference a .png image")
	ErrMalformedFeed     = errors.New("malformed feed")
)

type Source interface {
	Name() string
	// Endpoint is the URL the source reads from.
	Endpoint() string
	Candidates(ctx context.Context) ([]string, error)
}

type Logger interface {
	Debugf(string, ...any)
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any) {}

func orNop(l Logger) Logger {
	if l == nil {
		return nopLogger{}
	}
	return l
}
