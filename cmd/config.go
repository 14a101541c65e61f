package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zhubert/worklog/config"
)

var (
	configDevDir       string
	configSessionsFile string
	configNotify       bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change configuration",
	Long: `Prints the effective configuration. With flags, updates the
configuration file first and prints the result.`,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().StringVar(&configDevDir, "dev-dir", "", "Set the dev directory scanned at checkout")
	configCmd.Flags().StringVar(&configSessionsFile, "sessions-file", "", "Set where session history is stored")
	configCmd.Flags().BoolVar(&configNotify, "notify", false, "Enable or disable checkout notifications")
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	changed := false
	if cmd.Flags().Changed("dev-dir") {
		cfg.SetDevDir(configDevDir)
		changed = true
	}
	if cmd.Flags().Changed("sessions-file") {
		cfg.SetSessionsFile(configSessionsFile)
		changed = true
	}
	if cmd.Flags().Changed("notify") {
		cfg.SetNotificationsEnabled(configNotify)
		changed = true
	}

	if changed {
		if err := cfg.Validate(); err != nil {
			return err
		}
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("error saving config: %w", err)
		}
	}

	fmt.Printf("dev directory: %s\n", cfg.GetDevDir())
	fmt.Printf("sessions file: %s\n", cfg.GetSessionsFile())
	fmt.Printf("notifications: %v\n", cfg.GetNotificationsEnabled())
	return nil
}
