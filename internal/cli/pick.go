package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var pickCmd = &cobra.Command{
	Use:   "pick [commits...]",
	Short: "Print cherry-pick commands for commits",
	Long: `Print one "git cherry-pick" command per commit, in input order. The
cherry-pick options come from the pickArgs config key (default: -x --signoff).`,
	Args: commitArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd)
		if err != nil {
			return fail(cmd, err)
		}

		list, err := loadCommits(args)
		if err != nil {
			return fail(cmd, err)
		}

		out := cmd.OutOrStdout()
		for _, c := range list.Commits() {
			fmt.Fprintln(out, pickCommand(s.cfg.PickArgs, c.Hash))
		}
		return nil
	},
}

func pickCommand(pickArgs []string, hash string) string {
	parts := append([]string{"git", "cherry-pick"}, pickArgs...)
	return strings.Join(append(parts, hash), " ")
}

func init() {
	addCommitsFileFlag(pickCmd)
}
