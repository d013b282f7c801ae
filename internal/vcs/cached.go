package vcs

// Cached memoizes the per-commit lookups of another Querier. Range
// queries pass straight through since their answer depends on refs that
// can move between calls.
//
// Cached is not safe for concurrent use; git-bp issues one query at a time.
type Cached struct {
	q Querier

	bodies   map[string]lookup
	subjects map[string]lookup
	expanded map[string]lookup

	stats Stats
}

// Stats counts cache traffic.
type Stats struct {
	Hits   int `json:"hits"`
	Misses int `json:"misses"`
}

type lookup struct {
	value string
	err   error
}

// NewCached wraps q.
func NewCached(q Querier) *Cached {
	return &Cached{
		q:        q,
		bodies:   make(map[string]lookup),
		subjects: make(map[string]lookup),
		expanded: make(map[string]lookup),
	}
}

// ListCommits is not cached.
func (c *Cached) ListCommits(rev string, order Order) ([]string, error) {
	return c.q.ListCommits(rev, order)
}

// CommitBody returns the memoized body of hash.
func (c *Cached) CommitBody(hash string) (string, error) {
	return c.get(c.bodies, hash, c.q.CommitBody)
}

// CommitSubject returns the memoized subject of hash.
func (c *Cached) CommitSubject(hash string) (string, error) {
	return c.get(c.subjects, hash, c.q.CommitSubject)
}

// IsAncestor is not cached.
func (c *Cached) IsAncestor(candidate, ref string) (bool, error) {
	return c.q.IsAncestor(candidate, ref)
}

// ExpandHash returns the memoized expansion of abbrev.
func (c *Cached) ExpandHash(abbrev string) (string, error) {
	return c.get(c.expanded, abbrev, c.q.ExpandHash)
}

// SearchMessages is not cached.
func (c *Cached) SearchMessages(rev string, patterns ...string) ([]string, error) {
	return c.q.SearchMessages(rev, patterns...)
}

// Stats returns hit and miss counts so far.
func (c *Cached) Stats() Stats {
	return c.stats
}

func (c *Cached) get(m map[string]lookup, key string, fetch func(string) (string, error)) (string, error) {
	if l, ok := m[key]; ok {
		c.stats.Hits++
		return l.value, l.err
	}
	c.stats.Misses++
	v, err := fetch(key)
	m[key] = lookup{value: v, err: err}
	return v, err
}
