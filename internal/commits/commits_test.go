package commits

import (
	"strings"
	"testing"

	"github.com/dshills/gitbp/internal/vcs/vcstest"
)

const testChangeID = "I0123456789012345678901234567890123456789"

var (
	hashA = "1111111" + strings.Repeat("a", 33)
	hashB = "2222222" + strings.Repeat("b", 33)
)

// testRepo returns a repo with hashA (with a Change-Id) then hashB.
func testRepo() *vcstest.Repo {
	repo := vcstest.New()
	repo.CommitWithHash("HEAD", hashA, "net: fix leak\n\nChange-Id: "+testChangeID)
	repo.CommitWithHash("HEAD", hashB, "mm: tidy")
	return repo
}

func TestMatch(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"abc1234", "abc1234def", true},
		{"abc1234def", "abc1234", true},
		{"abc1234", "abc1234", true},
		{"abc1234", "abd1234", false},
		{"", "abc", false},
		{"abc", "", false},
	}
	for _, tt := range tests {
		if got := Match(tt.a, tt.b); got != tt.want {
			t.Errorf("Match(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestShort(t *testing.T) {
	if got := Short(hashA); got != "1111111" {
		t.Errorf("Short(full) = %q, want %q", got, "1111111")
	}
	if got := Short("abc"); got != "abc" {
		t.Errorf("Short(abc) = %q, want %q", got, "abc")
	}
}

func TestParseLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Commit
	}{
		{
			name: "all fields",
			line: "abc1234 " + testChangeID + " Fix the thing",
			want: Commit{Hash: "abc1234", ChangeID: testChangeID, Title: "Fix the thing"},
		},
		{
			name: "hash only",
			line: "abc1234",
			want: Commit{Hash: "abc1234"},
		},
		{
			name: "title without change id",
			line: "  abc1234   spaced    out  title ",
			want: Commit{Hash: "abc1234", Title: "spaced out title"},
		},
		{
			name: "change id after title words",
			line: "abc1234 Fix " + testChangeID + " thing",
			want: Commit{Hash: "abc1234", ChangeID: testChangeID, Title: "Fix thing"},
		},
		{
			name: "I-word of wrong length is title",
			line: "abc1234 Improve parsing",
			want: Commit{Hash: "abc1234", Title: "Improve parsing"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLine(tt.line)
			if err != nil {
				t.Fatalf("ParseLine error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseLine(%q) = %+v, want %+v", tt.line, got, tt.want)
			}
		})
	}

	if _, err := ParseLine("   "); err == nil {
		t.Error("ParseLine of blank line should fail")
	}
}

func TestCommitLine(t *testing.T) {
	tests := []struct {
		c    Commit
		want string
	}{
		{Commit{Hash: "abc"}, "abc"},
		{Commit{Hash: "abc", Title: "t"}, "abc t"},
		{Commit{Hash: "abc", ChangeID: testChangeID}, "abc " + testChangeID},
		{Commit{Hash: "abc", ChangeID: testChangeID, Title: "a title"}, "abc " + testChangeID + " a title"},
	}
	for _, tt := range tests {
		if got := tt.c.Line(); got != tt.want {
			t.Errorf("Line() = %q, want %q", got, tt.want)
		}
	}
}

func TestEnrich(t *testing.T) {
	repo := testRepo()

	c := FromHash("1111111")
	c.Enrich(repo)

	want := Commit{Hash: hashA, ChangeID: testChangeID, Title: "net: fix leak"}
	if c != want {
		t.Fatalf("Enrich = %+v, want %+v", c, want)
	}

	queries := func() int {
		n := 0
		for _, v := range repo.Calls {
			n += v
		}
		return n
	}
	before := queries()
	c.Enrich(repo)
	if c != want {
		t.Errorf("second Enrich changed fields: %+v", c)
	}
	if n := queries() - before; n != 0 {
		t.Errorf("second Enrich issued %d queries, want 0", n)
	}
}

func TestEnrich_KeepsExistingFields(t *testing.T) {
	repo := testRepo()

	c := Commit{Hash: "1111111", ChangeID: "Iuser", Title: "user title"}
	c.Enrich(repo)
	if c.ChangeID != "Iuser" || c.Title != "user title" {
		t.Errorf("Enrich overwrote fields: %+v", c)
	}
	if c.Hash != hashA {
		t.Errorf("Hash = %q, want it expanded to %q", c.Hash, hashA)
	}
}

func TestFetchTitle_CanonicalizesEvenWithTitle(t *testing.T) {
	repo := testRepo()

	c := Commit{Hash: "2222222", Title: "already set"}
	c.FetchTitle(repo)
	if c.Hash != hashB {
		t.Errorf("Hash = %q, want %q", c.Hash, hashB)
	}
	if repo.Calls["CommitSubject"] != 0 {
		t.Errorf("CommitSubject called %d times, want 0", repo.Calls["CommitSubject"])
	}
}

func TestCanonicalize_FailureKeepsHash(t *testing.T) {
	repo := testRepo()

	c := FromHash("9999999")
	c.Enrich(repo)
	if c.Hash != "9999999" {
		t.Errorf("Hash = %q, want unchanged", c.Hash)
	}
	if c.Title != "" || c.ChangeID != "" {
		t.Errorf("unknown commit gained fields: %+v", c)
	}
}

func TestCanonicalize_FullHashNotExpanded(t *testing.T) {
	repo := testRepo()

	c := FromHash(hashA)
	c.Canonicalize(repo)
	if repo.Calls["ExpandHash"] != 0 {
		t.Errorf("ExpandHash called for full hash")
	}
}

func TestTrailers(t *testing.T) {
	body := strings.Join([]string{
		"subject",
		"",
		"Change-Id: I1111111111111111111111111111111111111111",
		"Was-Change-Id: I2222222222222222222222222222222222222222",
		"Was-Change-Id: I3333333333333333333333333333333333333333\r",
		"Change-Id: I4444444444444444444444444444444444444444",
		"Was-Change-Id: not-a-gerrit-id",
		"  Change-Id: I5555555555555555555555555555555555555555",
	}, "\n")

	if got := ChangeID(body); got != "I1111111111111111111111111111111111111111" {
		t.Errorf("ChangeID = %q, want the first trailer", got)
	}
	was := WasChangeIDs(body)
	if len(was) != 2 {
		t.Fatalf("WasChangeIDs = %v, want 2 ids", was)
	}
	if was[1] != "I3333333333333333333333333333333333333333" {
		t.Errorf("WasChangeIDs[1] = %q, want trimmed id", was[1])
	}
	if got := ChangeID("no trailers here"); got != "" {
		t.Errorf("ChangeID without trailer = %q, want empty", got)
	}
}

func TestIsExplicitFix(t *testing.T) {
	original := "deadbee" + strings.Repeat("0", 33)
	tests := []struct {
		name string
		body string
		want bool
	}{
		{"short fixes", "fix it\n\nFixes: deadbee (\"broken\")", true},
		{"full fixes", "fix it\n\nFixes: " + original, true},
		{"indented", "fix it\n\n   Fixes: deadbee0", true},
		{"mere mention", "revert deadbee, it was wrong", false},
		{"other commit", "Fixes: 1234567", false},
		{"empty trailer", "Fixes: ", false},
		{"wrong case", "fixes: deadbee", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsExplicitFix(tt.body, original); got != tt.want {
				t.Errorf("IsExplicitFix = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPatterns(t *testing.T) {
	if got := FixesPattern(hashA); got != "Fixes: 1111111" {
		t.Errorf("FixesPattern = %q", got)
	}
	if got := ChangeIDPattern(testChangeID); got != "Change-Id: "+testChangeID {
		t.Errorf("ChangeIDPattern = %q", got)
	}
	if got := CherryPickPattern("abc"); got != "cherry picked from commit abc" {
		t.Errorf("CherryPickPattern = %q", got)
	}
}
