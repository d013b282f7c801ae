package cli

import (
	"fmt"
	"log/slog"

	"github.com/dshills/gitbp/internal/config"
	"github.com/dshills/gitbp/internal/logging"
	"github.com/dshills/gitbp/internal/vcs"
	"github.com/spf13/cobra"
)

const version = "0.3.0"

// Exit codes.
const (
	ExitSuccess      = 0
	ExitRuntimeError = 1
	ExitUsageError   = 2
)

// Global flags
var (
	flagRepo    string
	flagBackend string
	flagColor   string
	flagVerbose int
)

var rootCmd = &cobra.Command{
	Use:   "git-bp",
	Short: "Backport helper for git",
	Long: `git-bp keeps lists of commits to backport, sorts them along a branch's
history, turns them into cherry-pick commands, and finds follow-up fixes
for commits that were already backported.`,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flagRepo, "repo", "C", "", "Run as if started in this directory")
	pf.StringVar(&flagBackend, "backend", "", "VCS backend (git, go-git)")
	pf.StringVar(&flagColor, "color", "", "Color log output (auto, always, never)")
	pf.CountVarP(&flagVerbose, "verbose", "v", "Log more (repeat for debug output)")

	rootCmd.AddCommand(sortCmd)
	rootCmd.AddCommand(pickCmd)
	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(vimCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// Run executes the root command and returns an exit code.
func Run() int {
	exitCode = ExitSuccess
	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error
		return ExitUsageError
	}
	return exitCode
}

// exitCode is set by command handlers to control the process exit code.
var exitCode = ExitSuccess

// fail reports a runtime error and sets the exit code. It returns nil so
// cobra does not treat the failure as a usage error.
func fail(cmd *cobra.Command, err error) error {
	fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
	exitCode = ExitRuntimeError
	return nil
}

func globalOverrides() map[string]string {
	m := make(map[string]string)
	if flagBackend != "" {
		m["backend"] = flagBackend
	}
	if flagColor != "" {
		m["color"] = flagColor
	}
	return m
}

// session holds the effective configuration and logger of one command run.
type session struct {
	cfg    config.Config
	logger *slog.Logger
	repo   *vcs.Cached
}

func newSession(cmd *cobra.Command) (*session, error) {
	cfg, err := config.Load(globalOverrides())
	if err != nil {
		return nil, err
	}
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	logger := logging.New(cmd.ErrOrStderr(), logging.Verbose(level, flagVerbose), cfg.Color)
	slog.SetDefault(logger)
	return &session{cfg: cfg, logger: logger}, nil
}

// open returns the repository querier, opening it on first use.
func (s *session) open() (*vcs.Cached, error) {
	if s.repo != nil {
		return s.repo, nil
	}
	q, err := vcs.New(s.cfg.Backend, flagRepo, s.cfg.GitBinary, s.logger)
	if err != nil {
		return nil, err
	}
	s.repo = q
	return q, nil
}

func (s *session) close() {
	if s.repo == nil {
		return
	}
	st := s.repo.Stats()
	s.logger.Debug("vcs lookups", "backend", s.cfg.Backend, "hits", st.Hits, "misses", st.Misses)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print git-bp version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "git-bp version %s\n", version)
	},
}
