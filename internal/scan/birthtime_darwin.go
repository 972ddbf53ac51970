//go:build darwin

package scan

import (
	"os"
	"syscall"
	"time"
)

// birthtime returns the file creation timestamp. macOS exposes it as
// st_birthtime.
func birthtime(info os.FileInfo) (time.Time, bool) {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return time.Time{}, false
	}
	return time.Unix(st.Birthtimespec.Sec, st.Birthtimespec.Nsec), true
}
