package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zhubert/worklog/session"
)

var checkinCmd = &cobra.Command{
	Use:   "checkin",
	Short: "Start a work session",
	Long: `Opens a new work session starting now. The session stays open until
'worklog checkout' closes it.`,
	RunE: runCheckin,
}

func init() {
	rootCmd.AddCommand(checkinCmd)
}

func runCheckin(cmd *cobra.Command, args []string) error {
	tr, _, err := buildTracker()
	if err != nil {
		return err
	}

	sess, err := tr.CheckIn(cmd.Context())
	if errors.Is(err, session.ErrSessionOpen) {
		return fmt.Errorf("a session is already open; run 'worklog checkout' to close it first")
	}
	if err != nil {
		return err
	}

	fmt.Printf("Checked in at %s.\n", sess.Start.Format("15:04"))
	return nil
}
