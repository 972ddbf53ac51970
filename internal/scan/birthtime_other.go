//go:build !darwin && !windows

package scan

import (
	"os"
	"time"
)

// birthtime reports no creation timestamp; Linux and the BSDs without
// statx support fall back to the modification time in the date resolver.
func birthtime(os.FileInfo) (time.Time, bool) {
	return time.Time{}, false
}
