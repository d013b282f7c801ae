package cli

import (
	"errors"
	"fmt"

	"github.com/dshills/gitbp/internal/commits"
	"github.com/spf13/cobra"
)

var (
	flagInPlace bool
	flagSortRef string
)

var sortCmd = &cobra.Command{
	Use:   "sort [commits...]",
	Short: "Sort commits in the order they appear in a branch's history",
	Long: `Sort commits so that ancestors come before descendants in the history of
--ref (default HEAD). Commits come from the arguments or from a commit list
file; with --in-place the file is rewritten in sorted order, keeping each
commit's comments with it.`,
	Args: func(cmd *cobra.Command, args []string) error {
		if err := commitArgs(cmd, args); err != nil {
			return err
		}
		if flagInPlace && flagCommitsFile == "" {
			return errors.New("--in-place requires --commits-file")
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd)
		if err != nil {
			return fail(cmd, err)
		}
		defer s.close()

		list, err := loadCommits(args)
		if err != nil {
			return fail(cmd, err)
		}
		q, err := s.open()
		if err != nil {
			return fail(cmd, err)
		}

		sorted, err := commits.SortCommits(q, list.Commits(), flagSortRef)
		if err != nil {
			return fail(cmd, err)
		}

		out := cmd.OutOrStdout()
		if !flagInPlace {
			for _, c := range sorted {
				fmt.Fprintln(out, c.Line())
			}
			return nil
		}

		list.Reorder(sorted)
		if err := list.WriteFile(flagCommitsFile, q); err != nil {
			return fail(cmd, err)
		}
		fmt.Fprintf(out, "Updated %d commits in %s\n", len(sorted), flagCommitsFile)
		return nil
	},
}

func init() {
	addCommitsFileFlag(sortCmd)
	sortCmd.Flags().BoolVarP(&flagInPlace, "in-place", "i", false, "Rewrite the commits file in sorted order")
	sortCmd.Flags().StringVar(&flagSortRef, "ref", "HEAD", "Branch whose history defines the order")
}
