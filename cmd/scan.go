package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/zhubert/worklog/render"
	"github.com/zhubert/worklog/scan"
)

var scanSince time.Duration

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "List projects changed without closing the session",
	Long: `Scans the dev directory and lists every changed project. With an open
session the cutoff is the check-in time; otherwise, or when --since is
given, it is that far back from now. Session state is not touched.`,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().DurationVar(&scanSince, "since", 8*time.Hour, "How far back to look for changes")
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	tr, cfg, err := buildTracker()
	if err != nil {
		return err
	}

	cutoff := time.Now().Add(-scanSince)
	window := "in the last " + render.FormatDuration(scanSince)
	if !cmd.Flags().Changed("since") {
		open, err := tr.Status()
		if err != nil {
			return err
		}
		if open != nil {
			cutoff = open.Start
			window = "since check-in at " + open.Start.Format("15:04")
		}
	}

	rules, err := scan.LoadAndMergeRules(cfg.GetDevDir())
	if err != nil {
		return fmt.Errorf("failed to load scan rules: %w", err)
	}

	result, err := scan.NewScanner(rules).Scan(cfg.GetDevDir(), cutoff)
	if err != nil {
		return err
	}

	for _, w := range result.Warnings {
		fmt.Fprintf(os.Stderr, "Warning: %s: %v\n", w.Path, w.Err)
	}

	if len(result.Changed) == 0 {
		fmt.Printf("No projects changed %s.\n", window)
		return nil
	}

	fmt.Printf("Projects changed %s:\n", window)
	for _, project := range result.Changed {
		fmt.Printf("  %s\n", project)
	}
	return nil
}
