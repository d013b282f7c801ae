// Package output formats the result of a fix search.
//
// Three formats are supported:
//   - list:     a commit list file, ready for "git bp pick -F" (default)
//   - json:     fixes and unmarked references as structured JSON
//   - markdown: a table of fixes plus the unmarked references, for pasting into a review
//
// Use [GetWriter] to obtain a [Writer] for a given format string, then call
// [Writer.Write] with an [io.Writer] and a [*backport.Result]. [WriteResult]
// handles destination selection.
package output
