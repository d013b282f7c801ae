package backport

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/dshills/gitbp/internal/commits"
	"github.com/dshills/gitbp/internal/vcs"
)

// DefaultHead is the working branch tip when Options.Head is empty.
const DefaultHead = "HEAD"

// ErrNoBase is returned by Run when Options.Base is empty.
var ErrNoBase = errors.New("base revision is required")

// Options selects the histories a Correlator compares.
type Options struct {
	// Base is the exclusive start of the backported range on the working branch.
	Base string
	// Ref is the branch holding the originals and their fixes.
	Ref string
	// Head is the working branch tip.
	Head string
}

// Reference is a commit on the reference branch that mentions an original
// without a Fixes trailer for it.
type Reference struct {
	Hash     string `json:"hash"`
	Original string `json:"original"`
	Title    string `json:"title,omitempty"`
}

// Result is the outcome of a Run.
type Result struct {
	// Fixes are the fixes not yet on the working branch, sorted by hash.
	Fixes []commits.Commit `json:"fixes"`
	// Unmarked are references that are not explicit fixes.
	Unmarked []Reference `json:"unmarked"`
}

// List returns the fixes as a commit list.
func (r *Result) List() *commits.List {
	return commits.NewList(r.Fixes)
}

// Correlator finds the originals of backported commits and their fixes.
type Correlator struct {
	q      vcs.Querier
	opts   Options
	logger *slog.Logger
}

// New returns a Correlator querying q. A nil logger means slog.Default().
func New(q vcs.Querier, opts Options, logger *slog.Logger) *Correlator {
	if opts.Head == "" {
		opts.Head = DefaultHead
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Correlator{q: q, opts: opts, logger: logger}
}

// Run processes every commit in base..head, oldest first. Only failing to
// list that range is fatal.
func (c *Correlator) Run() (*Result, error) {
	if c.opts.Base == "" {
		return nil, ErrNoBase
	}

	rng := vcs.Range(c.opts.Base, c.opts.Head)
	hashes, err := c.q.ListCommits(rng, vcs.OrderReverse)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", rng, err)
	}
	c.logger.Debug("commits to check", "range", rng, "count", len(hashes))

	res := &Result{}
	done := make(map[string]bool)
	for _, h := range hashes {
		commit := commits.FromHash(h)
		commit.Enrich(c.q)
		c.logger.Debug("checking commit", "hash", commit.Hash, "changeId", commit.ChangeID, "title", commit.Title)

		originals := c.Originals(commit)
		if len(originals) == 0 {
			c.logger.Debug("no original found", "hash", commit.Hash, "ref", c.opts.Ref)
			continue
		}
		for _, original := range originals {
			if done[original] {
				continue
			}
			done[original] = true
			res.Fixes = append(res.Fixes, c.Fixes(original)...)
			res.Unmarked = append(res.Unmarked, c.Audit(original)...)
		}
	}

	res.Fixes = dedupe(res.Fixes)
	c.logger.Debug("fixes after deduplication", "count", len(res.Fixes))
	return res, nil
}

func dedupe(fixes []commits.Commit) []commits.Commit {
	slices.SortStableFunc(fixes, func(a, b commits.Commit) int {
		return strings.Compare(a.Hash, b.Hash)
	})
	return slices.CompactFunc(fixes, func(a, b commits.Commit) bool {
		return a.Hash == b.Hash
	})
}

// Originals returns the commits on the reference branch that commit was
// backported from: the one carrying its Change-Id, then one per
// Was-Change-Id trailer. Duplicates are dropped.
func (c *Correlator) Originals(commit commits.Commit) []string {
	var found []string
	add := func(id, via string) {
		original := c.findByChangeID(id)
		if original == "" || slices.Contains(found, original) {
			return
		}
		c.logger.Debug("found original", "hash", commit.Hash, "original", original, "via", via)
		found = append(found, original)
	}

	if commit.ChangeID != "" {
		add(commit.ChangeID, strings.TrimSuffix(commits.ChangeIDKey, ": "))
	}

	body, err := c.q.CommitBody(commit.Hash)
	if err != nil {
		c.logger.Debug("cannot read commit message", "hash", commit.Hash, "error", err)
		return found
	}
	for _, id := range commits.WasChangeIDs(body) {
		add(id, strings.TrimSuffix(commits.WasChangeIDKey, ": "))
	}
	return found
}

// findByChangeID returns the first commit on the reference branch whose
// message names id, or "".
func (c *Correlator) findByChangeID(id string) string {
	hits, err := c.q.SearchMessages(c.opts.Ref, commits.ChangeIDPattern(id))
	if err != nil {
		c.logger.Debug("change-id search failed", "changeId", id, "ref", c.opts.Ref, "error", err)
		return ""
	}
	if len(hits) == 0 {
		return ""
	}
	return hits[0]
}

// Fixes returns the enriched commits after original on the reference
// branch that carry a Fixes trailer for it and are not applied yet.
func (c *Correlator) Fixes(original string) []commits.Commit {
	rng := vcs.Range(original, c.opts.Ref)
	hits, err := c.q.SearchMessages(rng, commits.FixesPattern(original))
	if err != nil {
		c.logger.Debug("fix search failed", "original", original, "range", rng, "error", err)
		return nil
	}

	var fixes []commits.Commit
	for _, h := range hits {
		fix := commits.FromHash(h)
		fix.Enrich(c.q)
		if c.IsApplied(fix) {
			c.logger.Debug("fix already applied", "fix", fix.Hash, "original", original)
			continue
		}
		c.logger.Info("found fix", "fix", fix.Hash, "original", original, "title", fix.Title)
		fixes = append(fixes, fix)
	}
	return fixes
}

// IsApplied reports whether commit is already on the working branch: as
// an ancestor of head, through a commit in base..head with the same
// Change-Id, or through a cherry-pick line naming its full or short hash.
func (c *Correlator) IsApplied(commit commits.Commit) bool {
	ok, err := c.q.IsAncestor(commit.Hash, c.opts.Head)
	if err != nil {
		c.logger.Debug("ancestry check failed", "hash", commit.Hash, "error", err)
	}
	if ok {
		return true
	}

	rng := vcs.Range(c.opts.Base, c.opts.Head)
	if commit.ChangeID != "" && c.anyMessage(rng, commits.ChangeIDPattern(commit.ChangeID)) {
		return true
	}
	return c.anyMessage(rng,
		commits.CherryPickPattern(commit.Hash),
		commits.CherryPickPattern(commits.Short(commit.Hash)),
	)
}

func (c *Correlator) anyMessage(rev string, patterns ...string) bool {
	hits, err := c.q.SearchMessages(rev, patterns...)
	if err != nil {
		c.logger.Debug("message search failed", "range", rev, "patterns", patterns, "error", err)
		return false
	}
	return len(hits) > 0
}

// Audit returns the commits after original on the reference branch that
// mention its short hash but carry no Fixes trailer naming it. Each one is
// logged as a warning.
func (c *Correlator) Audit(original string) []Reference {
	rng := vcs.Range(original, c.opts.Ref)
	hits, err := c.q.SearchMessages(rng, commits.Short(original))
	if err != nil {
		c.logger.Debug("reference search failed", "original", original, "range", rng, "error", err)
		return nil
	}

	var refs []Reference
	for _, h := range hits {
		body, err := c.q.CommitBody(h)
		if err != nil {
			c.logger.Debug("cannot read commit message", "hash", h, "error", err)
		} else if commits.IsExplicitFix(body, original) {
			continue
		}

		ref := Reference{Hash: h, Original: original}
		if subject, err := c.q.CommitSubject(h); err == nil {
			ref.Title = strings.TrimSpace(subject)
		}
		if ref.Title != "" {
			c.logger.Warn("commit references original but is not marked as a fix",
				"commit", ref.Hash, "original", original, "title", ref.Title)
		} else {
			c.logger.Warn("commit references original but is not marked as a fix",
				"commit", ref.Hash, "original", original)
		}
		refs = append(refs, ref)
	}
	return refs
}
