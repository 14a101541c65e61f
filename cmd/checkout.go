package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zhubert/worklog/notify"
	"github.com/zhubert/worklog/render"
	"github.com/zhubert/worklog/session"
)

var checkoutCmd = &cobra.Command{
	Use:   "checkout",
	Short: "Close the open session and report what changed",
	Long: `Closes the open session, scans the dev directory for projects with
files modified since check-in, and records them on the session. If the
scan fails the session stays open so checkout can be retried.`,
	RunE: runCheckout,
}

func init() {
	rootCmd.AddCommand(checkoutCmd)
}

func runCheckout(cmd *cobra.Command, args []string) error {
	tr, cfg, err := buildTracker()
	if err != nil {
		return err
	}

	summary, err := tr.CheckOut(cmd.Context())
	if errors.Is(err, session.ErrNoOpenSession) {
		return fmt.Errorf("no open session; run 'worklog checkin' to start one")
	}
	if err != nil {
		return err
	}

	fmt.Print(render.CheckoutSummary(summary))

	if cfg.GetNotificationsEnabled() {
		notify.CheckoutComplete(len(summary.Changed))
	}
	return nil
}
