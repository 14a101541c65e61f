// Package notify sends desktop notifications for session events.
// It uses the beeep library, which covers macOS, Linux, and Windows.
package notify

import (
	"fmt"

	"github.com/gen2brain/beeep"

	"github.com/zhubert/worklog/logger"
)

// notifierFunc sends one desktop notification.
type notifierFunc func(title, message string, icon any) error

var notifier notifierFunc = beeep.Notify

// Send sends a desktop notification with the given title and message.
// Failures are logged; callers treat notifications as best-effort.
func Send(title, message string) error {
	// Empty icon, beeep picks the platform default
	if err := notifier(title, message, ""); err != nil {
		logger.WithComponent("notify").Warn("failed to send notification", "error", err)
		return err
	}
	return nil
}

// CheckoutComplete announces how many projects changed during the
// session that just closed.
func CheckoutComplete(changed int) error {
	var message string
	switch changed {
	case 0:
		message = "Checked out. No projects changed."
	case 1:
		message = "Checked out. 1 project changed."
	default:
		message = fmt.Sprintf("Checked out. %d projects changed.", changed)
	}
	return Send("Worklog", message)
}

// SetNotifier replaces the notification backend (for testing).
func SetNotifier(fn func(title, message string, icon any) error) {
	notifier = fn
}

// ResetNotifier restores the beeep backend.
func ResetNotifier() {
	notifier = beeep.Notify
}
