package vcs

import (
	"fmt"
	"strings"
)

// FullHashLen is the length of a full SHA-1 object name.
const FullHashLen = 40

// Order selects how ListCommits orders its result.
type Order int

const (
	// OrderDefault is the VCS default: newest first.
	OrderDefault Order = iota
	// OrderReverse is the default order reversed: oldest first.
	OrderReverse
	// OrderTopo is topological: every ancestor before its descendants.
	OrderTopo
)

func (o Order) String() string {
	switch o {
	case OrderReverse:
		return "reverse"
	case OrderTopo:
		return "topo"
	default:
		return "default"
	}
}

// Querier is the set of repository queries the backport engine relies on.
//
// Per-commit lookups (CommitBody, CommitSubject, IsAncestor, ExpandHash)
// are best effort for callers: an error means "unknown". ListCommits and
// SearchMessages errors are for the caller to judge.
type Querier interface {
	// ListCommits returns full hashes of the commits selected by rev.
	ListCommits(rev string, order Order) ([]string, error)
	// CommitBody returns the full commit message.
	CommitBody(hash string) (string, error)
	// CommitSubject returns the first line of the commit message.
	CommitSubject(hash string) (string, error)
	// IsAncestor reports whether candidate is an ancestor of (or equal to) ref.
	IsAncestor(candidate, ref string) (bool, error)
	// ExpandHash resolves an abbreviated hash to a full one.
	ExpandHash(abbrev string) (string, error)
	// SearchMessages returns hashes of commits selected by rev whose message
	// contains any of patterns, in default order.
	SearchMessages(rev string, patterns ...string) ([]string, error)
}

// Error reports a failed invocation of the external VCS tool.
type Error struct {
	Args   []string
	Stderr string
	Err    error
}

func (e *Error) Error() string {
	msg := strings.TrimSpace(e.Stderr)
	if msg == "" {
		return fmt.Sprintf("git %s: %v", strings.Join(e.Args, " "), e.Err)
	}
	return fmt.Sprintf("git %s: %v: %s", strings.Join(e.Args, " "), e.Err, msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// SplitRange splits "a..b" into its endpoints. A plain revision yields an
// empty exclude. A missing right side means HEAD, as in git.
func SplitRange(rev string) (exclude, include string) {
	left, right, ok := strings.Cut(rev, "..")
	if !ok {
		return "", rev
	}
	if right == "" {
		right = "HEAD"
	}
	return left, right
}

// Range builds the "a..b" revision for the commits reachable from b but not a.
func Range(from, to string) string {
	return from + ".." + to
}

func splitLines(out string) []string {
	var lines []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
