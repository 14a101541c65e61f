package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/zhubert/worklog/cli"
	"github.com/zhubert/worklog/config"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check tools and configuration",
	Long: `Checks for the CLI tools worklog can use, prints the effective
configuration, and flags common setup problems like a missing dev
directory.`,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	prereqs := cli.DefaultPrerequisites()
	results := cli.CheckAll(prereqs)
	fmt.Print(cli.FormatCheckResults(results))

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	fmt.Println()
	fmt.Println("Configuration:")
	fmt.Printf("  dev directory: %s\n", cfg.GetDevDir())
	fmt.Printf("  sessions file: %s\n", cfg.GetSessionsFile())
	fmt.Printf("  notifications: %v\n", cfg.GetNotificationsEnabled())

	devDir := cfg.GetDevDir()
	if info, err := os.Stat(devDir); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: dev directory is not readable: %v\n", err)
	} else if !info.IsDir() {
		fmt.Fprintf(os.Stderr, "Warning: dev directory %s is not a directory\n", devDir)
	}
	if home, err := os.UserHomeDir(); err == nil && config.SamePath(devDir, home) {
		fmt.Fprintln(os.Stderr, "Warning: dev directory is your home directory; checkout will scan everything under it")
	}

	return cli.ValidateRequired(prereqs)
}
