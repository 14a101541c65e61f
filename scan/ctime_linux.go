//go:build linux

package scan

import (
	"io/fs"
	"syscall"
	"time"
)

// changeTime returns the inode change time (ctime), falling back to the
// modification time when the stat payload isn't the expected shape.
func changeTime(info fs.FileInfo) time.Time {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return info.ModTime()
	}
	return time.Unix(int64(st.Ctim.Sec), int64(st.Ctim.Nsec))
}
