//go:build !windows

package lock

import "syscall"

// processAlive probes a PID with signal 0. EPERM means the process
// exists but belongs to someone else, which still counts as alive.
func processAlive(pid int) bool {
	if pid <= 0 {
		return false
	}
	err := syscall.Kill(pid, 0)
	return err == nil || err == syscall.EPERM
}
