package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dshills/gitbp/internal/backport"
	"github.com/dshills/gitbp/internal/commits"
)

// JSONWriter outputs the full result as JSON.
type JSONWriter struct{}

func (j *JSONWriter) Write(w io.Writer, res *backport.Result) error {
	out := *res
	if out.Fixes == nil {
		out.Fixes = []commits.Commit{}
	}
	if out.Unmarked == nil {
		out.Unmarked = []backport.Reference{}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	_, err = w.Write(data)
	if err != nil {
		return fmt.Errorf("writing JSON: %w", err)
	}
	_, err = fmt.Fprintln(w)
	return err
}
