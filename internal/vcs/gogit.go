package vcs

import (
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// GoGit answers queries in-process through go-git, without spawning git.
type GoGit struct {
	repo   *git.Repository
	logger *slog.Logger
}

// OpenGoGit opens the repository containing dir.
func OpenGoGit(dir string, logger *slog.Logger) (*GoGit, error) {
	if dir == "" {
		dir = "."
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", dir, err)
	}
	return &GoGit{repo: repo, logger: logger}, nil
}

// ListCommits walks the history selected by rev.
func (g *GoGit) ListCommits(rev string, order Order) ([]string, error) {
	g.logger.Debug("go-git list", "rev", rev, "order", order.String())
	commits, err := g.walk(rev)
	if err != nil {
		return nil, err
	}

	switch order {
	case OrderReverse:
		hashes := hashesOf(commits)
		slices.Reverse(hashes)
		return hashes, nil
	case OrderTopo:
		return topoOrder(commits), nil
	default:
		return hashesOf(commits), nil
	}
}

// CommitBody returns the message of hash.
func (g *GoGit) CommitBody(hash string) (string, error) {
	c, err := g.commit(hash)
	if err != nil {
		return "", err
	}
	return c.Message, nil
}

// CommitSubject returns the first paragraph of the message folded onto
// one line, the way git's %s does.
func (g *GoGit) CommitSubject(hash string) (string, error) {
	c, err := g.commit(hash)
	if err != nil {
		return "", err
	}
	return subjectOf(c.Message), nil
}

// IsAncestor reports whether candidate is reachable from ref.
func (g *GoGit) IsAncestor(candidate, ref string) (bool, error) {
	a, err := g.commit(candidate)
	if err != nil {
		return false, err
	}
	b, err := g.commit(ref)
	if err != nil {
		return false, err
	}
	if a.Hash == b.Hash {
		return true, nil
	}
	return a.IsAncestor(b)
}

// ExpandHash resolves abbrev through go-git's revision parser, which
// accepts unambiguous hash prefixes.
func (g *GoGit) ExpandHash(abbrev string) (string, error) {
	h, err := g.resolve(abbrev)
	if err != nil {
		return "", err
	}
	return h.String(), nil
}

// SearchMessages scans every commit selected by rev for any of patterns.
func (g *GoGit) SearchMessages(rev string, patterns ...string) ([]string, error) {
	if len(patterns) == 0 {
		return nil, nil
	}
	g.logger.Debug("go-git search", "rev", rev, "patterns", strings.Join(patterns, " | "))
	commits, err := g.walk(rev)
	if err != nil {
		return nil, err
	}
	var hits []string
	for _, c := range commits {
		for _, p := range patterns {
			if strings.Contains(c.Message, p) {
				hits = append(hits, c.Hash.String())
				break
			}
		}
	}
	return hits, nil
}

// walk returns the commits selected by rev, newest first by committer time.
func (g *GoGit) walk(rev string) ([]*object.Commit, error) {
	exclude, include := SplitRange(rev)

	tip, err := g.resolve(include)
	if err != nil {
		return nil, err
	}

	excluded := make(map[plumbing.Hash]bool)
	if exclude != "" {
		base, err := g.resolve(exclude)
		if err != nil {
			return nil, err
		}
		iter, err := g.repo.Log(&git.LogOptions{From: *base})
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", exclude, err)
		}
		err = iter.ForEach(func(c *object.Commit) error {
			excluded[c.Hash] = true
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", exclude, err)
		}
	}

	iter, err := g.repo.Log(&git.LogOptions{From: *tip, Order: git.LogOrderCommitterTime})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", include, err)
	}
	var commits []*object.Commit
	// Merges reach excluded history from several sides, so skip rather
	// than stop.
	err = iter.ForEach(func(c *object.Commit) error {
		if !excluded[c.Hash] {
			commits = append(commits, c)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", include, err)
	}
	return commits, nil
}

func (g *GoGit) resolve(rev string) (*plumbing.Hash, error) {
	h, err := g.repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", rev, err)
	}
	return h, nil
}

func (g *GoGit) commit(rev string) (*object.Commit, error) {
	h, err := g.resolve(rev)
	if err != nil {
		return nil, err
	}
	c, err := g.repo.CommitObject(*h)
	if err != nil {
		return nil, fmt.Errorf("reading commit %s: %w", rev, err)
	}
	return c, nil
}

// topoOrder emits commits parents-first using a depth-first post-order walk
// from the newest commit, following parents in their recorded order.
// Commits not reachable from the first one are appended the same way.
func topoOrder(commits []*object.Commit) []string {
	members := make(map[plumbing.Hash]*object.Commit, len(commits))
	for _, c := range commits {
		members[c.Hash] = c
	}

	type frame struct {
		commit *object.Commit
		next   int
	}

	visited := make(map[plumbing.Hash]bool, len(commits))
	out := make([]string, 0, len(commits))
	for _, root := range commits {
		if visited[root.Hash] {
			continue
		}
		visited[root.Hash] = true
		stack := []frame{{commit: root}}
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			parents := top.commit.ParentHashes
			if top.next < len(parents) {
				p := parents[top.next]
				top.next++
				if pc, ok := members[p]; ok && !visited[p] {
					visited[p] = true
					stack = append(stack, frame{commit: pc})
				}
				continue
			}
			out = append(out, top.commit.Hash.String())
			stack = stack[:len(stack)-1]
		}
	}
	return out
}

func hashesOf(commits []*object.Commit) []string {
	hashes := make([]string, len(commits))
	for i, c := range commits {
		hashes[i] = c.Hash.String()
	}
	return hashes
}

func subjectOf(message string) string {
	var parts []string
	for _, line := range strings.Split(message, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			if len(parts) > 0 {
				break
			}
			continue
		}
		parts = append(parts, line)
	}
	return strings.Join(parts, " ")
}
