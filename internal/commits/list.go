package commits

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dshills/gitbp/internal/vcs"
)

// DefaultModeline is written when a list has no modeline of its own.
const DefaultModeline = "# vim: ft=gitbackportcommits"

// ErrEmptyInput is returned when a commit list holds no commits.
var ErrEmptyInput = errors.New("no commits found")

// Entry is a commit plus the comment and blank lines written above it.
type Entry struct {
	Comments []string
	Commit   Commit
}

// Lines renders the entry: its comments verbatim, then the commit line.
func (e Entry) Lines() []string {
	lines := make([]string, 0, len(e.Comments)+1)
	lines = append(lines, e.Comments...)
	return append(lines, e.Commit.Line())
}

// List is a parsed commit list file.
type List struct {
	Modelines []string
	Entries   []Entry
	// Trailing holds comment lines after the last commit.
	Trailing []string
}

// NewList wraps commits in a list with no comments.
func NewList(commits []Commit) *List {
	l := &List{}
	for _, c := range commits {
		l.Entries = append(l.Entries, Entry{Commit: c})
	}
	return l
}

// Commits returns the commit of every entry, in order.
func (l *List) Commits() []Commit {
	out := make([]Commit, len(l.Entries))
	for i, e := range l.Entries {
		out[i] = e.Commit
	}
	return out
}

// Parse reads a commit list. Lines that are not commits are kept as
// comments of the next commit; a list without commits is ErrEmptyInput.
func Parse(r io.Reader) (*List, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading commit list: %w", err)
	}
	var lines []string
	if text := strings.TrimSuffix(string(data), "\n"); text != "" {
		lines = strings.Split(text, "\n")
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}

	l := &List{}
	i := 0
	for ; i < len(lines) && isModeline(lines[i]); i++ {
		l.Modelines = append(l.Modelines, lines[i])
	}

	var pending []string
	for ; i < len(lines); i++ {
		raw := lines[i]
		line := strings.TrimSpace(raw)
		switch {
		case line == "":
			// A final blank line with nothing pending is dropped.
			if len(pending) > 0 || i+1 < len(lines) {
				pending = append(pending, raw)
			}
		case strings.HasPrefix(line, "#"):
			pending = append(pending, raw)
		default:
			c, err := ParseLine(line)
			if err != nil {
				pending = append(pending, raw)
				continue
			}
			l.Entries = append(l.Entries, Entry{Comments: pending, Commit: c})
			pending = nil
		}
	}
	l.Trailing = pending

	if len(l.Entries) == 0 {
		return nil, ErrEmptyInput
	}
	return l, nil
}

// ReadFile parses the commit list at path.
func ReadFile(path string) (*List, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening commit list: %w", err)
	}
	defer f.Close()

	l, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return l, nil
}

func isModeline(line string) bool {
	line = strings.TrimSpace(line)
	return strings.HasPrefix(line, "# vim:") || strings.HasPrefix(line, "# vi:")
}

// Write enriches every entry through q and writes the list. The list
// itself is not modified.
func (l *List) Write(w io.Writer, q vcs.Querier) error {
	enriched := *l
	enriched.Entries = make([]Entry, len(l.Entries))
	for i, e := range l.Entries {
		e.Commit.Enrich(q)
		enriched.Entries[i] = e
	}
	return enriched.Render(w)
}

// Render writes the list as it is, with the default modeline if it has none.
func (l *List) Render(w io.Writer) error {
	bw := bufio.NewWriter(w)

	modelines := l.Modelines
	if len(modelines) == 0 {
		modelines = []string{DefaultModeline}
	}
	for _, m := range modelines {
		fmt.Fprintln(bw, m)
	}
	for _, e := range l.Entries {
		for _, line := range e.Lines() {
			fmt.Fprintln(bw, line)
		}
	}
	for _, line := range l.Trailing {
		fmt.Fprintln(bw, line)
	}
	return bw.Flush()
}

// WriteFile overwrites path with the enriched list. The write is not
// atomic: a failure midway leaves a truncated file.
func (l *List) WriteFile(path string, q vcs.Querier) error {
	var buf bytes.Buffer
	if err := l.Write(&buf, q); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing commit list: %w", err)
	}
	return nil
}
