package cli

import (
	"errors"

	"github.com/dshills/gitbp/internal/backport"
	"github.com/dshills/gitbp/internal/output"
	"github.com/spf13/cobra"
)

var (
	flagBase   string
	flagFixRef string
	flagHead   string
	flagFormat string
	flagOut    string
)

var fixCmd = &cobra.Command{
	Use:   "fix",
	Short: "Find fixes for backported commits",
	Long: `For every commit in base..HEAD, find its original on the reference branch
through its Change-Id and Was-Change-Id trailers, then list the commits on
that branch that carry "Fixes: <original>" and are not on the current branch
yet. The result is a commit list ready for "git bp pick -F".

Commits that mention an original without a Fixes trailer are reported as
warnings on stderr.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd)
		if err != nil {
			return fail(cmd, err)
		}
		defer s.close()

		ref := flagFixRef
		if ref == "" {
			ref = s.cfg.Ref
		}
		if ref == "" {
			return errors.New("--ref is required (or set the ref config key)")
		}
		format := s.cfg.Format
		if flagFormat != "" {
			format = flagFormat
		}
		if _, err := output.GetWriter(format); err != nil {
			return err
		}

		q, err := s.open()
		if err != nil {
			return fail(cmd, err)
		}

		c := backport.New(q, backport.Options{Base: flagBase, Ref: ref, Head: flagHead}, s.logger)
		res, err := c.Run()
		if err != nil {
			return fail(cmd, err)
		}

		if err := output.WriteResult(cmd.OutOrStdout(), res, format, flagOut); err != nil {
			return fail(cmd, err)
		}
		return nil
	},
}

func init() {
	fixCmd.Flags().StringVar(&flagBase, "base", "", "Start of the backported range on the current branch (exclusive)")
	fixCmd.Flags().StringVar(&flagFixRef, "ref", "", "Reference branch to search for originals and fixes")
	fixCmd.Flags().StringVar(&flagHead, "head", backport.DefaultHead, "Tip of the current branch")
	fixCmd.Flags().StringVar(&flagFormat, "format", "", "Output format (list, json, markdown)")
	fixCmd.Flags().StringVar(&flagOut, "out", "", "Output file path (default: stdout)")
	_ = fixCmd.MarkFlagRequired("base")
}
