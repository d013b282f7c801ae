// Package vcstest provides an in-memory repository that satisfies
// vcs.Querier, for tests that need a commit graph without running git.
package vcstest

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"slices"
	"strings"

	"github.com/dshills/gitbp/internal/vcs"
)

// Commit is a node in the fake history.
type Commit struct {
	Hash    string
	Parents []string
	Message string

	seq int
}

// Repo is a fake repository. Commits are ordered by creation, so creation
// order is both the default (reversed) and a valid topological order.
type Repo struct {
	commits map[string]*Commit
	refs    map[string]string
	seq     int

	// Calls counts invocations per Querier method name.
	Calls map[string]int
	// Fail makes the named methods return an error.
	Fail map[string]bool
}

var _ vcs.Querier = (*Repo)(nil)

// New returns an empty repository.
func New() *Repo {
	return &Repo{
		commits: make(map[string]*Commit),
		refs:    make(map[string]string),
		Calls:   make(map[string]int),
		Fail:    make(map[string]bool),
	}
}

// Commit appends a commit to ref (creating the ref if needed) and returns
// its full hash. The hash is derived from the message and a counter.
func (r *Repo) Commit(ref, message string) string {
	sum := sha1.Sum([]byte(fmt.Sprintf("%d\x00%s", r.seq, message)))
	return r.CommitWithHash(ref, hex.EncodeToString(sum[:]), message)
}

// CommitWithHash is Commit with a caller-chosen hash.
func (r *Repo) CommitWithHash(ref, hash, message string) string {
	var parents []string
	if tip, ok := r.refs[ref]; ok {
		parents = []string{tip}
	}
	r.add(hash, parents, message)
	r.refs[ref] = hash
	return hash
}

// Merge records a merge of other into ref.
func (r *Repo) Merge(ref, other, message string) string {
	sum := sha1.Sum([]byte(fmt.Sprintf("%d\x00merge\x00%s", r.seq, message)))
	hash := hex.EncodeToString(sum[:])
	r.add(hash, []string{r.refs[ref], r.mustResolve(other)}, message)
	r.refs[ref] = hash
	return hash
}

// Branch points name at the commit from resolves to.
func (r *Repo) Branch(name, from string) {
	r.refs[name] = r.mustResolve(from)
}

func (r *Repo) add(hash string, parents []string, message string) {
	r.seq++
	r.commits[hash] = &Commit{Hash: hash, Parents: parents, Message: message, seq: r.seq}
}

// ListCommits implements vcs.Querier.
func (r *Repo) ListCommits(rev string, order vcs.Order) ([]string, error) {
	if err := r.call("ListCommits"); err != nil {
		return nil, err
	}
	commits, err := r.selectRange(rev)
	if err != nil {
		return nil, err
	}
	if order == vcs.OrderDefault {
		slices.Reverse(commits)
	}
	hashes := make([]string, len(commits))
	for i, c := range commits {
		hashes[i] = c.Hash
	}
	return hashes, nil
}

// CommitBody implements vcs.Querier.
func (r *Repo) CommitBody(hash string) (string, error) {
	if err := r.call("CommitBody"); err != nil {
		return "", err
	}
	c, err := r.lookup(hash)
	if err != nil {
		return "", err
	}
	return c.Message + "\n", nil
}

// CommitSubject implements vcs.Querier.
func (r *Repo) CommitSubject(hash string) (string, error) {
	if err := r.call("CommitSubject"); err != nil {
		return "", err
	}
	c, err := r.lookup(hash)
	if err != nil {
		return "", err
	}
	subject, _, _ := strings.Cut(c.Message, "\n")
	return subject, nil
}

// IsAncestor implements vcs.Querier.
func (r *Repo) IsAncestor(candidate, ref string) (bool, error) {
	if err := r.call("IsAncestor"); err != nil {
		return false, err
	}
	c, err := r.lookup(candidate)
	if err != nil {
		return false, err
	}
	tip, err := r.resolve(ref)
	if err != nil {
		return false, err
	}
	return r.ancestors(tip)[c.Hash], nil
}

// ExpandHash implements vcs.Querier.
func (r *Repo) ExpandHash(abbrev string) (string, error) {
	if err := r.call("ExpandHash"); err != nil {
		return "", err
	}
	return r.resolve(abbrev)
}

// SearchMessages implements vcs.Querier.
func (r *Repo) SearchMessages(rev string, patterns ...string) ([]string, error) {
	if err := r.call("SearchMessages"); err != nil {
		return nil, err
	}
	commits, err := r.selectRange(rev)
	if err != nil {
		return nil, err
	}
	slices.Reverse(commits)
	var hits []string
	for _, c := range commits {
		for _, p := range patterns {
			if strings.Contains(c.Message, p) {
				hits = append(hits, c.Hash)
				break
			}
		}
	}
	return hits, nil
}

func (r *Repo) call(method string) error {
	r.Calls[method]++
	if r.Fail[method] {
		return fmt.Errorf("vcstest: %s failed", method)
	}
	return nil
}

// selectRange returns the commits selected by rev, oldest first.
func (r *Repo) selectRange(rev string) ([]*Commit, error) {
	exclude, include := vcs.SplitRange(rev)
	tip, err := r.resolve(include)
	if err != nil {
		return nil, err
	}
	members := r.ancestors(tip)
	if exclude != "" {
		base, err := r.resolve(exclude)
		if err != nil {
			return nil, err
		}
		for h := range r.ancestors(base) {
			delete(members, h)
		}
	}
	commits := make([]*Commit, 0, len(members))
	for h := range members {
		commits = append(commits, r.commits[h])
	}
	slices.SortFunc(commits, func(a, b *Commit) int { return a.seq - b.seq })
	return commits, nil
}

func (r *Repo) ancestors(tip string) map[string]bool {
	seen := make(map[string]bool)
	stack := []string{tip}
	for len(stack) > 0 {
		h := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[h] {
			continue
		}
		seen[h] = true
		stack = append(stack, r.commits[h].Parents...)
	}
	return seen
}

func (r *Repo) lookup(rev string) (*Commit, error) {
	h, err := r.resolve(rev)
	if err != nil {
		return nil, err
	}
	return r.commits[h], nil
}

func (r *Repo) resolve(rev string) (string, error) {
	if h, ok := r.refs[rev]; ok {
		return h, nil
	}
	var found []string
	for h := range r.commits {
		if rev != "" && strings.HasPrefix(h, rev) {
			found = append(found, h)
		}
	}
	switch len(found) {
	case 1:
		return found[0], nil
	case 0:
		return "", fmt.Errorf("vcstest: unknown revision %q", rev)
	default:
		return "", fmt.Errorf("vcstest: ambiguous revision %q", rev)
	}
}

func (r *Repo) mustResolve(rev string) string {
	h, err := r.resolve(rev)
	if err != nil {
		panic(err)
	}
	return h
}
