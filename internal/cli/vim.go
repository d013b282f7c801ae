package cli

import (
	"fmt"

	"github.com/dshills/gitbp/internal/vimplugin"
	"github.com/spf13/cobra"
)

var (
	flagVimDir string
	flagForce  bool
)

var vimCmd = &cobra.Command{
	Use:   "vim",
	Short: "Install Vim/Neovim support for commit list files",
	Long: `Install the gitbackportcommits filetype plugin. Without --vim-dir it goes
into both the Neovim config directory ($XDG_CONFIG_HOME/nvim, else
~/.config/nvim) and ~/.vim. Existing files are kept unless --force is given.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd)
		if err != nil {
			return fail(cmd, err)
		}

		dirs, err := vimDirs(s.cfg.VimDir)
		if err != nil {
			return fail(cmd, err)
		}

		out := cmd.OutOrStdout()
		for _, dir := range dirs {
			path, installed, err := vimplugin.Install(dir, flagForce)
			if err != nil {
				return fail(cmd, err)
			}
			if installed {
				fmt.Fprintf(out, "Installed %s\n", path)
			} else {
				s.logger.Info("plugin already installed, use --force to overwrite", "path", path)
			}
		}
		return nil
	},
}

func vimDirs(configured string) ([]string, error) {
	if flagVimDir != "" {
		return []string{flagVimDir}, nil
	}
	if configured != "" {
		return []string{configured}, nil
	}
	return vimplugin.DefaultDirs()
}

func init() {
	vimCmd.Flags().StringVar(&flagVimDir, "vim-dir", "", "Vim configuration directory to install into")
	vimCmd.Flags().BoolVarP(&flagForce, "force", "f", false, "Overwrite an existing plugin file")
}
