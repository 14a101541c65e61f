//go:build !linux && !darwin

package scan

import (
	"io/fs"
	"time"
)

// changeTime falls back to the modification time on platforms that don't
// expose an inode change time.
func changeTime(info fs.FileInfo) time.Time {
	return info.ModTime()
}
