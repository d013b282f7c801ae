package output

import (
	"fmt"
	"io"
	"os"

	"github.com/dshills/gitbp/internal/backport"
)

// Formats lists the accepted format names.
var Formats = []string{"list", "json", "markdown"}

// Writer writes a result in a specific format.
type Writer interface {
	Write(w io.Writer, res *backport.Result) error
}

// GetWriter returns a writer for the specified format.
func GetWriter(format string) (Writer, error) {
	switch format {
	case "", "list":
		return &ListWriter{}, nil
	case "json":
		return &JSONWriter{}, nil
	case "markdown", "md":
		return &MarkdownWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// WriteResult writes res to outPath, or to w when outPath is empty.
func WriteResult(w io.Writer, res *backport.Result, format, outPath string) error {
	writer, err := GetWriter(format)
	if err != nil {
		return err
	}

	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	return writer.Write(w, res)
}
