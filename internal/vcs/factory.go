package vcs

import (
	"fmt"
	"log/slog"
)

// Backend names accepted by New.
const (
	BackendGit   = "git"
	BackendGoGit = "go-git"
)

// New returns a cached Querier for the named backend. An empty name
// selects the git binary.
func New(backend, dir, gitBinary string, logger *slog.Logger) (*Cached, error) {
	switch backend {
	case "", BackendGit:
		return NewCached(NewGit(dir, gitBinary, logger)), nil
	case BackendGoGit:
		g, err := OpenGoGit(dir, logger)
		if err != nil {
			return nil, err
		}
		return NewCached(g), nil
	default:
		return nil, fmt.Errorf("unknown vcs backend %q (want %s or %s)", backend, BackendGit, BackendGoGit)
	}
}
