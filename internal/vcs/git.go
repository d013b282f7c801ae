package vcs

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"
)

// Git answers queries by running the git binary.
type Git struct {
	// Dir is the working directory for every invocation. Empty means the
	// current directory.
	Dir string
	// Binary is the git executable. Empty means "git" from PATH.
	Binary string
	// Logger receives one debug record per invocation. Nil discards.
	Logger *slog.Logger
}

// NewGit returns a Git backend rooted at dir.
func NewGit(dir, binary string, logger *slog.Logger) *Git {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Git{Dir: dir, Binary: binary, Logger: logger}
}

// ListCommits runs git rev-list with the flags for order.
func (g *Git) ListCommits(rev string, order Order) ([]string, error) {
	args := []string{"rev-list"}
	switch order {
	case OrderReverse:
		args = append(args, "--reverse")
	case OrderTopo:
		args = append(args, "--topo-order", "--reverse")
	}
	args = append(args, rev, "--")
	out, err := g.output(args...)
	if err != nil {
		return nil, err
	}
	return splitLines(out), nil
}

// CommitBody returns the raw message of hash.
func (g *Git) CommitBody(hash string) (string, error) {
	return g.output("log", "--format=%B", "-n", "1", hash, "--")
}

// CommitSubject returns the subject of hash.
func (g *Git) CommitSubject(hash string) (string, error) {
	out, err := g.output("log", "--format=%s", "-n", "1", hash, "--")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// IsAncestor runs git merge-base --is-ancestor. Exit status 1 is a plain
// "no"; anything else non-zero is an error.
func (g *Git) IsAncestor(candidate, ref string) (bool, error) {
	_, err := g.output("merge-base", "--is-ancestor", candidate, ref)
	if err == nil {
		return true, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
		return false, nil
	}
	return false, err
}

// ExpandHash resolves abbrev to the full hash of the commit it names.
func (g *Git) ExpandHash(abbrev string) (string, error) {
	out, err := g.output("rev-parse", "--verify", "--quiet", abbrev+"^{commit}")
	if err != nil {
		return "", err
	}
	full := strings.TrimSpace(out)
	if len(full) != FullHashLen {
		return "", fmt.Errorf("rev-parse %s: unexpected output %q", abbrev, full)
	}
	return full, nil
}

// SearchMessages runs git log --grep once with every pattern; git ORs
// multiple --grep options together.
func (g *Git) SearchMessages(rev string, patterns ...string) ([]string, error) {
	if len(patterns) == 0 {
		return nil, nil
	}
	args := []string{"log", "--format=%H", "--fixed-strings"}
	for _, p := range patterns {
		args = append(args, "--grep", p)
	}
	args = append(args, rev, "--")
	out, err := g.output(args...)
	if err != nil {
		return nil, err
	}
	return splitLines(out), nil
}

func (g *Git) output(args ...string) (string, error) {
	bin := g.Binary
	if bin == "" {
		bin = "git"
	}
	g.logger().Debug("running git", "args", strings.Join(args, " "))

	cmd := exec.Command(bin, args...)
	cmd.Dir = g.Dir
	out, err := cmd.Output()
	if err != nil {
		var stderr string
		if exitErr, ok := err.(*exec.ExitError); ok {
			stderr = string(exitErr.Stderr)
		}
		return string(out), &Error{Args: args, Stderr: stderr, Err: err}
	}
	return string(out), nil
}

func (g *Git) logger() *slog.Logger {
	if g.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return g.Logger
}
