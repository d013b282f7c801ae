package output

import (
	"io"

	"github.com/dshills/gitbp/internal/backport"
)

// ListWriter outputs the fixes as a commit list file.
type ListWriter struct{}

func (l *ListWriter) Write(w io.Writer, res *backport.Result) error {
	return res.List().Render(w)
}
