//go:build windows

package scan

import (
	"os"
	"syscall"
	"time"
)

// birthtime returns the file creation timestamp from the Win32 file
// attributes.
func birthtime(info os.FileInfo) (time.Time, bool) {
	attr, ok := info.Sys().(*syscall.Win32FileAttributeData)
	if !ok {
		return time.Time{}, false
	}
	return time.Unix(0, attr.CreationTime.Nanoseconds()), true
}
