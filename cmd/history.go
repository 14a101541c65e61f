package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zhubert/worklog/render"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List closed sessions, newest first",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "Maximum sessions to show (0 shows all)")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	tr, _, err := buildTracker()
	if err != nil {
		return err
	}

	sessions, err := tr.History(historyLimit)
	if err != nil {
		return err
	}

	fmt.Print(render.HistoryTable(sessions))
	return nil
}
