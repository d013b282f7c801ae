package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/dshills/gitbp/internal/backport"
	"github.com/dshills/gitbp/internal/commits"
)

// MarkdownWriter outputs a review-comment-friendly summary.
type MarkdownWriter struct{}

func (m *MarkdownWriter) Write(w io.Writer, res *backport.Result) error {
	fmt.Fprintf(w, "## Pending backport fixes\n\n")

	if len(res.Fixes) == 0 {
		fmt.Fprintln(w, "No pending fixes.")
	} else {
		fmt.Fprintf(w, "| Commit | Change-Id | Title |\n")
		fmt.Fprintf(w, "|--------|-----------|-------|\n")
		for _, f := range res.Fixes {
			fmt.Fprintf(w, "| `%s` | %s | %s |\n", commits.Short(f.Hash), mdCode(f.ChangeID), mdEscape(f.Title))
		}
	}

	if len(res.Unmarked) == 0 {
		return nil
	}

	fmt.Fprintf(w, "\n<details>\n<summary>Unmarked references (%d)</summary>\n\n", len(res.Unmarked))
	for _, r := range res.Unmarked {
		line := fmt.Sprintf("- `%s` references `%s`", commits.Short(r.Hash), commits.Short(r.Original))
		if r.Title != "" {
			line += ": " + mdEscape(r.Title)
		}
		fmt.Fprintln(w, line)
	}
	_, err := fmt.Fprintf(w, "\n</details>\n")
	return err
}

func mdCode(s string) string {
	if s == "" {
		return ""
	}
	return "`" + s + "`"
}

// mdEscape keeps titles from breaking table cells.
func mdEscape(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
