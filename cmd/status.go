package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zhubert/worklog/render"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether a session is open",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	tr, _, err := buildTracker()
	if err != nil {
		return err
	}

	open, err := tr.Status()
	if err != nil {
		return err
	}

	fmt.Print(render.StatusLine(open))
	return nil
}
