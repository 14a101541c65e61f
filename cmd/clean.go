package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/zhubert/worklog/config"
	"github.com/zhubert/worklog/logger"
	"github.com/zhubert/worklog/session"
)

var skipConfirm bool

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove all recorded sessions and log files",
	Long: `Deletes the session history and removes log files. The configuration
file is left in place.

It will prompt for confirmation before proceeding unless the --yes flag
is used.`,
	RunE: runClean,
}

func init() {
	cleanCmd.Flags().BoolVarP(&skipConfirm, "yes", "y", false, "Skip confirmation prompt")
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	return runCleanWithReader(os.Stdin)
}

// runCleanWithReader allows injecting a reader for testing
func runCleanWithReader(input io.Reader) error {
	// Load config to show what will be cleaned
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	store := session.NewStore(cfg.GetSessionsFile())

	// Gather statistics about what will be cleaned. An unreadable
	// history file still counts: deleting it is the point.
	historyBroken := false
	sessions, err := store.Load()
	switch {
	case errors.Is(err, session.ErrNotFound):
	case err != nil:
		fmt.Fprintf(os.Stderr, "Warning: error reading session history: %v\n", err)
		historyBroken = true
	}
	logFiles := countLogFiles()

	if len(sessions) == 0 && !historyBroken && logFiles == 0 {
		fmt.Println("Nothing to clean.")
		return nil
	}

	// Print summary of what will be cleaned
	fmt.Println("This will clean:")
	if len(sessions) > 0 {
		fmt.Printf("  - %d recorded session(s)\n", len(sessions))
		if open, _ := store.Open(); open != nil {
			fmt.Println("      including the currently open session")
		}
	}
	if historyBroken {
		fmt.Println("  - the unreadable session history file")
	}
	if logFiles > 0 {
		fmt.Printf("  - %d log file(s)\n", logFiles)
	}

	// Confirm unless --yes flag is set
	if !skipConfirm {
		if !confirm(input, "Continue?") {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if err := os.Remove(store.Path()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("error deleting session history: %w", err)
	}

	logsCleared, err := logger.ClearLogs()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: error clearing logs: %v\n", err)
	}

	// Print results
	fmt.Println()
	fmt.Println("Cleaned:")
	if len(sessions) > 0 || historyBroken {
		fmt.Println("  - session history removed")
	}
	if logsCleared > 0 {
		fmt.Printf("  - %d log file(s) removed\n", logsCleared)
	}
	return nil
}

// countLogFiles mirrors the glob logger.ClearLogs deletes with.
func countLogFiles() int {
	defaultPath, err := logger.DefaultLogPath()
	if err != nil {
		return 0
	}
	logs, err := filepath.Glob(filepath.Join(filepath.Dir(defaultPath), "*.log"))
	if err != nil {
		return 0
	}
	return len(logs)
}

// confirm prompts the user for y/n confirmation
func confirm(input io.Reader, prompt string) bool {
	reader := bufio.NewReader(input)
	fmt.Printf("%s [y/N]: ", prompt)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}
