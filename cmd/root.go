package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zhubert/worklog/config"
	"github.com/zhubert/worklog/git"
	"github.com/zhubert/worklog/logger"
	"github.com/zhubert/worklog/session"
	"github.com/zhubert/worklog/tracker"
)

var (
	debugMode             bool
	quietMode             bool
	version, commit, date string
)

// SetVersionInfo sets version information from ldflags
func SetVersionInfo(v, c, d string) {
	version, commit, date = v, c, d
}

var rootCmd = &cobra.Command{
	Use:   "worklog",
	Short: "Track work sessions and the projects that changed during them",
	Long: `Worklog records work sessions bounded by check-in and checkout.
At checkout it scans the configured dev directory and lists every
project with a file modified since the session started.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&quietMode, "quiet", "q", false, "Reduce logging to warnings and errors")
}

func initConfig() {
	if quietMode {
		logger.SetQuiet(true)
	} else if debugMode {
		logger.SetDebug(true)
	}
}

// Execute runs the root command
func Execute() error {
	// Set version dynamically
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(versionTemplate())
	return rootCmd.Execute()
}

func versionTemplate() string {
	if commit != "none" && commit != "" {
		return fmt.Sprintf("worklog %s\n  commit: %s\n  built:  %s\n", version, commit, date)
	}
	return fmt.Sprintf("worklog %s\n", version)
}

// buildTracker wires a tracker from the on-disk configuration.
func buildTracker() (*tracker.Tracker, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("error loading config: %w", err)
	}
	store := session.NewStore(cfg.GetSessionsFile())
	return tracker.NewTracker(cfg, store, git.NewGitService()), cfg, nil
}
