package vcs_test

import (
	"testing"

	"github.com/dshills/gitbp/internal/vcs"
	"github.com/dshills/gitbp/internal/vcs/vcstest"
)

func TestCached_MemoizesLookups(t *testing.T) {
	repo := vcstest.New()
	h := repo.Commit("HEAD", "subject line\n\nbody")
	c := vcs.NewCached(repo)

	for i := 0; i < 3; i++ {
		if _, err := c.CommitBody(h); err != nil {
			t.Fatalf("CommitBody error: %v", err)
		}
		if _, err := c.CommitSubject(h); err != nil {
			t.Fatalf("CommitSubject error: %v", err)
		}
		if got, err := c.ExpandHash(h[:7]); err != nil || got != h {
			t.Fatalf("ExpandHash = %q, %v; want %q", got, err, h)
		}
	}

	for _, m := range []string{"CommitBody", "CommitSubject", "ExpandHash"} {
		if repo.Calls[m] != 1 {
			t.Errorf("%s called %d times, want 1", m, repo.Calls[m])
		}
	}
	stats := c.Stats()
	if stats.Misses != 3 || stats.Hits != 6 {
		t.Errorf("Stats = %+v, want 3 misses and 6 hits", stats)
	}
}

func TestCached_RemembersFailures(t *testing.T) {
	repo := vcstest.New()
	c := vcs.NewCached(repo)

	if _, err := c.ExpandHash("abc1234"); err == nil {
		t.Fatal("ExpandHash of unknown hash should fail")
	}
	if _, err := c.ExpandHash("abc1234"); err == nil {
		t.Fatal("cached failure should still fail")
	}
	if repo.Calls["ExpandHash"] != 1 {
		t.Errorf("ExpandHash called %d times, want 1", repo.Calls["ExpandHash"])
	}
}

func TestCached_RangeQueriesPassThrough(t *testing.T) {
	repo := vcstest.New()
	repo.Commit("HEAD", "one")
	c := vcs.NewCached(repo)

	c.ListCommits("HEAD", vcs.OrderDefault)
	c.ListCommits("HEAD", vcs.OrderDefault)
	c.SearchMessages("HEAD", "one")
	c.SearchMessages("HEAD", "one")

	if repo.Calls["ListCommits"] != 2 || repo.Calls["SearchMessages"] != 2 {
		t.Errorf("range queries should not be cached: %v", repo.Calls)
	}
}
