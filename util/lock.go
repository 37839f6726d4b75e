package util

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// RunLock holds an advisory flock on a lock file so that two generator
// processes cannot write the same output directory at once.
type RunLock struct {
	file *os.File
	path string
}

// AcquireRunLock takes an exclusive non-blocking lock on path, creating
// the file if needed. Returns an error if another process holds the lock.
func AcquireRunLock(path string) (*RunLock, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open lock file %s: %w", path, err)
	}

	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
		f.Close()
		if err == unix.EWOULDBLOCK {
			return nil, fmt.Errorf("output directory is locked by another sdkgen run (lock: %s)", path)
		}
		return nil, fmt.Errorf("failed to lock %s: %w", path, err)
	}

	return &RunLock{file: f, path: path}, nil
}

// Release drops the lock and removes the lock file.
func (l *RunLock) Release() error {
	if l.file == nil {
		return nil
	}
	unix.Flock(int(l.file.Fd()), unix.LOCK_UN)
	err := l.file.Close()
	l.file = nil
	os.Remove(l.path)
	return err
}
