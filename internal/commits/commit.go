package commits

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/dshills/gitbp/internal/vcs"
)

// changeIDLen is the length of a Gerrit Change-Id token: "I" plus 40 hex.
const changeIDLen = 41

// Commit is one commit as git-bp tracks it. ChangeID and Title are empty
// until known.
type Commit struct {
	Hash     string `json:"hash"`
	ChangeID string `json:"changeId,omitempty"`
	Title    string `json:"title,omitempty"`
}

// FromHash returns an unenriched commit.
func FromHash(hash string) Commit {
	return Commit{Hash: hash}
}

// FromHashes converts command-line hashes to commits.
func FromHashes(hashes []string) []Commit {
	out := make([]Commit, len(hashes))
	for i, h := range hashes {
		out[i] = FromHash(h)
	}
	return out
}

// Hashes returns the hash of every commit, in order.
func Hashes(commits []Commit) []string {
	out := make([]string, len(commits))
	for i, c := range commits {
		out[i] = c.Hash
	}
	return out
}

var errBlankLine = errors.New("blank line")

// ParseLine parses "hash [Change-Id] [title words...]". Any token after the
// hash that looks like a Change-Id is taken as one; the rest form the title.
func ParseLine(line string) (Commit, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Commit{}, errBlankLine
	}

	c := Commit{Hash: fields[0]}
	var title []string
	for _, f := range fields[1:] {
		if isChangeID(f) {
			c.ChangeID = f
			continue
		}
		title = append(title, f)
	}
	c.Title = strings.Join(title, " ")
	return c, nil
}

func isChangeID(token string) bool {
	return len(token) == changeIDLen && token[0] == 'I'
}

// Line renders c in commit list format.
func (c Commit) Line() string {
	parts := []string{c.Hash}
	if c.ChangeID != "" {
		parts = append(parts, c.ChangeID)
	}
	if c.Title != "" {
		parts = append(parts, c.Title)
	}
	return strings.Join(parts, " ")
}

// Canonicalize expands an abbreviated hash to full length. A hash that is
// already full length is never expanded again; a failed expansion leaves
// the hash as it was.
func (c *Commit) Canonicalize(q vcs.Querier) {
	if len(c.Hash) == vcs.FullHashLen {
		return
	}
	full, err := q.ExpandHash(c.Hash)
	if err != nil {
		slog.Debug("cannot expand hash", "hash", c.Hash, "error", err)
		return
	}
	if len(full) == vcs.FullHashLen {
		c.Hash = full
	}
}

// FetchChangeID fills ChangeID from the commit message if it is unset.
func (c *Commit) FetchChangeID(q vcs.Querier) {
	if c.ChangeID != "" {
		return
	}
	body, err := q.CommitBody(c.Hash)
	if err != nil {
		slog.Debug("cannot read commit message", "hash", c.Hash, "error", err)
		return
	}
	c.ChangeID = ChangeID(body)
}

// FetchTitle canonicalizes the hash, then fills Title from the commit
// subject if it is unset. Callers rely on getting a full hash back.
func (c *Commit) FetchTitle(q vcs.Querier) {
	c.Canonicalize(q)
	if c.Title != "" {
		return
	}
	subject, err := q.CommitSubject(c.Hash)
	if err != nil {
		slog.Debug("cannot read commit subject", "hash", c.Hash, "error", err)
		return
	}
	c.Title = strings.TrimSpace(subject)
}

// Enrich fills every field it can.
func (c *Commit) Enrich(q vcs.Querier) {
	c.FetchChangeID(q)
	c.FetchTitle(q)
}
