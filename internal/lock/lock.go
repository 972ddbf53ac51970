// Package lock prevents two approved runs from mutating the same archive
// concurrently. Preview runs never take the lock.
package lock

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	// LockFileName is the pidfile created in the destination root.
	LockFileName = ".insorter.lock"

	// DefaultStaleTimeout is how old a lock from a live-looking process
	// may be before it is considered abandoned.
	DefaultStaleTimeout = 30 * time.Minute
)

// LockInfo identifies the holder of the lock.
type LockInfo struct {
	PID       int       `json:"pid"`
	Hostname  string    `json:"hostname"`
	StartTime time.Time `json:"start_time"`
	RunID     string    `json:"run_id,omitempty"`
}

// LockError reports that another run holds the lock.
type LockError struct {
	Holder *LockInfo
}

func (e *LockError) Error() string {
	return fmt.Sprintf("archive is locked by pid %d on %s (since %s)",
		e.Holder.PID, e.Holder.Hostname, e.Holder.StartTime.Format(time.RFC3339))
}

// FileLock is a pidfile-based lock on one destination root.
type FileLock struct {
	path         string
	staleTimeout time.Duration
	held         bool
}

// New creates a lock for the given destination root.
func New(destRoot string) *FileLock {
	return &FileLock{
		path:         filepath.Join(destRoot, LockFileName),
		staleTimeout: DefaultStaleTimeout,
	}
}

// SetStaleTimeout overrides the stale threshold.
func (l *FileLock) SetStaleTimeout(d time.Duration) {
	l.staleTimeout = d
}

// Acquire takes the lock, replacing a stale one. Returns a LockError
// when another live run holds it.
func (l *FileLock) Acquire(runID string) error {
	if existing, err := l.read(); err == nil {
		if !l.isStale(existing) {
			return &LockError{Holder: existing}
		}
		if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("removing stale lock: %w", err)
		}
	}

	hostname, _ := os.Hostname()
	info := &LockInfo{
		PID:       os.Getpid(),
		Hostname:  hostname,
		StartTime: time.Now(),
		RunID:     runID,
	}

	// O_EXCL makes creation atomic against a racing run.
	file, err := os.OpenFile(l.path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		if os.IsExist(err) {
			if holder, readErr := l.read(); readErr == nil {
				return &LockError{Holder: holder}
			}
		}
		return fmt.Errorf("creating lock file: %w", err)
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(info); err != nil {
		os.Remove(l.path)
		return fmt.Errorf("writing lock info: %w", err)
	}

	l.held = true
	return nil
}

// Release removes the lock file if this instance holds it.
func (l *FileLock) Release() error {
	if !l.held {
		return nil
	}
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing lock file: %w", err)
	}
	l.held = false
	return nil
}

// Holder returns the current lock holder, or an error when unlocked.
func (l *FileLock) Holder() (*LockInfo, error) {
	return l.read()
}

func (l *FileLock) read() (*LockInfo, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, err
	}
	var info LockInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("parsing lock file: %w", err)
	}
	return &info, nil
}

// isStale treats a lock as abandoned when its process is gone on this
// host, or when it exceeds the stale timeout regardless of host.
func (l *FileLock) isStale(info *LockInfo) bool {
	hostname, _ := os.Hostname()
	if info.Hostname == hostname && !processAlive(info.PID) {
		return true
	}
	return time.Since(info.StartTime) > l.staleTimeout
}
