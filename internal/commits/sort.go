package commits

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/dshills/gitbp/internal/vcs"
)

// ErrCommitsNotFound matches any *NotFoundError.
var ErrCommitsNotFound = errors.New("commits not found")

// NotFoundError names sort targets missing from the reference history.
type NotFoundError struct {
	Ref     string
	Missing []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("commits not found in %s history: %s", e.Ref, strings.Join(e.Missing, ", "))
}

// Is makes errors.Is(err, ErrCommitsNotFound) hold.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrCommitsNotFound
}

// SortTopologically orders targets the way they appear in the history of
// ref, ancestors first. Targets keep the form the caller wrote them in.
// Every target must be found; otherwise nothing is returned and the error
// is a *NotFoundError.
func SortTopologically(q vcs.Querier, targets []string, ref string) ([]string, error) {
	history, err := q.ListCommits(ref, vcs.OrderTopo)
	if err != nil {
		return nil, fmt.Errorf("listing history of %s: %w", ref, err)
	}

	remaining := unique(targets)
	sorted := make([]string, 0, len(remaining))
	for _, h := range history {
		if len(remaining) == 0 {
			break
		}
		for i, t := range remaining {
			if Match(h, t) {
				sorted = append(sorted, t)
				remaining = slices.Delete(remaining, i, i+1)
				break
			}
		}
	}

	if len(remaining) > 0 {
		return nil, &NotFoundError{Ref: ref, Missing: remaining}
	}
	return sorted, nil
}

func unique(hashes []string) []string {
	seen := make(map[string]bool, len(hashes))
	out := make([]string, 0, len(hashes))
	for _, h := range hashes {
		if !seen[h] {
			seen[h] = true
			out = append(out, h)
		}
	}
	return out
}

// SortCommits sorts commits with SortTopologically, carrying each commit's
// Change-Id and title over to its sorted position.
func SortCommits(q vcs.Querier, commits []Commit, ref string) ([]Commit, error) {
	sorted, err := SortTopologically(q, Hashes(commits), ref)
	if err != nil {
		return nil, err
	}
	return attach(sorted, commits), nil
}

// attach pairs each sorted hash with the first commit it matches.
func attach(sorted []string, commits []Commit) []Commit {
	out := make([]Commit, 0, len(sorted))
	for _, h := range sorted {
		for _, c := range commits {
			if Match(c.Hash, h) {
				c.Hash = h
				out = append(out, c)
				break
			}
		}
	}
	return out
}

// Reorder rearranges l's entries into the order of sorted, keeping each
// entry's comments with it. An entry takes the position of the first
// sorted hash it matches; entries matching none keep their relative order
// after the rest. When prefixes collide the first match wins.
func (l *List) Reorder(sorted []Commit) {
	position := func(e Entry) int {
		for i, s := range sorted {
			if Match(e.Commit.Hash, s.Hash) {
				return i
			}
		}
		return len(sorted)
	}

	slices.SortStableFunc(l.Entries, func(a, b Entry) int {
		return position(a) - position(b)
	})

	for i := range l.Entries {
		for _, s := range sorted {
			if Match(l.Entries[i].Commit.Hash, s.Hash) {
				l.Entries[i].Commit = s
				break
			}
		}
	}
}
