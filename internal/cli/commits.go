package cli

import (
	"errors"

	"github.com/dshills/gitbp/internal/commits"
	"github.com/spf13/cobra"
)

// flagCommitsFile backs -F/--commits-file on sort and pick.
var flagCommitsFile string

func addCommitsFileFlag(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&flagCommitsFile, "commits-file", "F", "", "Read commits from a commit list file")
}

// commitArgs requires either positional commits or --commits-file, not both.
func commitArgs(cmd *cobra.Command, args []string) error {
	switch {
	case len(args) > 0 && flagCommitsFile != "":
		return errors.New("commit arguments cannot be combined with --commits-file")
	case len(args) == 0 && flagCommitsFile == "":
		return errors.New("requires commits or --commits-file")
	}
	return nil
}

// loadCommits returns the commits named on the command line or in the
// commits file.
func loadCommits(args []string) (*commits.List, error) {
	if flagCommitsFile != "" {
		return commits.ReadFile(flagCommitsFile)
	}
	return commits.NewList(commits.FromHashes(args)), nil
}
