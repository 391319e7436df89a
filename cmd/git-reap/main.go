package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/reap-dev/git-reap/internal/config"
	"github.com/reap-dev/git-reap/internal/gitcmd"
	"github.com/reap-dev/git-reap/internal/prompt"
	"github.com/reap-dev/git-reap/internal/session"
	"github.com/reap-dev/git-reap/internal/version"
)

const appVersion = "0.1.0"

// Global config variable to be used by the command logic
var appConfig config.Config
var isDebug bool

// logDebugf prints only if the --debug flag is set.
func logDebugf(format string, a ...any) {
	if isDebug {
		fmt.Printf(format, a...)
	}
}

var rootCmd = &cobra.Command{
	Use:     "git-reap [path]",
	Version: appVersion,
	Short:   "git-reap deletes branches with no recent commits",
	Long: `git-reap scans a Git repository for branches whose last commit is
older than a day threshold and deletes them, either locally or on a
chosen remote. The branch you have checked out and a reserved set of
names (master and develop by default) are never touched. Use --dry-run
to see the decisions without deleting anything.`,
	Args: cobra.MaximumNArgs(1),
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		isDebug, _ = cmd.Flags().GetBool("debug")
		customConfigPath, _ := cmd.Flags().GetString("config")
		logDebugf("Custom config path flag: %q\n", customConfigPath)

		var err error
		appConfig, err = config.Load(customConfigPath)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) {
				logDebugf("No config file found, using defaults.\n")
				return nil
			}
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		logDebugf("Configuration loaded. Reserved branches: %v\n", appConfig.ReservedBranches)
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		path := "."
		if len(args) == 1 {
			path = args[0]
		}

		repo, err := gitcmd.Open(ctx, path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		logDebugf("Repository opened at %q.\n", repo.Dir())

		if latest, ok := version.Check(ctx, appVersion, &appConfig); ok {
			version.Notify(os.Stdout, appVersion, latest)
		}

		local, _ := cmd.Flags().GetBool("local")
		remote, _ := cmd.Flags().GetString("remote")
		age, _ := cmd.Flags().GetInt("age")
		dryRun, _ := cmd.Flags().GetBool("dry-run")

		reporter := session.NewReporter(os.Stdout, appConfig.DistinctDryRun)
		sess := session.New(repo, prompt.Terminal{}, reporter, appConfig, nil)

		params, err := sess.Resolve(ctx, session.Options{
			Local:   local,
			Remote:  remote,
			AgeDays: age,
			DryRun:  dryRun,
		})
		if err != nil {
			if errors.Is(err, prompt.ErrCanceled) {
				fmt.Println("Canceled.")
				os.Exit(0)
			}
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		logDebugf("Resolved session: mode=%s remote=%q age=%d dry-run=%v\n",
			params.Mode, params.Remote, params.AgeDays, params.DryRun)

		if err := sess.Run(ctx, params); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging.")
	rootCmd.PersistentFlags().Bool("dry-run", false, "Report decisions, but do not delete anything.")
	rootCmd.PersistentFlags().StringP("config", "c", "",
		"Path to custom configuration file (default: ~/.config/git-reap/config.toml).")
	rootCmd.PersistentFlags().Bool("local", false, "Sweep local branches without prompting for a mode.")
	rootCmd.PersistentFlags().StringP("remote", "r", "",
		"Sweep branches on the named remote without prompting.")
	rootCmd.PersistentFlags().Int("age", 0,
		"Day threshold for staleness (0 prompts for one of 30/45/60).")
	rootCmd.MarkFlagsMutuallyExclusive("local", "remote")
}
