package plan

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
)

// LockFile is the name of the lock file held while a plan directory is
// written to.
const LockFile = ".plankit.lock"

// ErrLocked is returned when another live process holds the directory lock.
var ErrLocked = errors.New("plan directory is locked")

// DirLock serializes writers of one plan directory. The lock file holds the
// owner's PID; locks left by dead processes are taken over.
type DirLock struct {
	path string
}

// NewDirLock returns the lock for dir. Nothing is created until Acquire.
func NewDirLock(dir string) *DirLock {
	return &DirLock{path: filepath.Join(dir, LockFile)}
}

// Lock acquires the repository's directory lock. Callers must Release it.
func (r *Repository) Lock() (*DirLock, error) {
	l := NewDirLock(r.dir)
	if err := l.Acquire(); err != nil {
		return nil, err
	}
	return l, nil
}

// Path returns the lock file path.
func (l *DirLock) Path() string {
	return l.path
}

// Acquire takes the lock, clearing a stale or unreadable lock file once.
func (l *DirLock) Acquire() error {
	err := l.create()
	if err == nil || !os.IsExist(err) {
		return err
	}

	pid, ok, err := l.owner()
	if err != nil {
		return err
	}
	if ok && processExists(pid) {
		return fmt.Errorf("%w by PID %d (%s)", ErrLocked, pid, l.path)
	}
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove stale lock file: %w", err)
	}

	if err := l.create(); err != nil {
		if os.IsExist(err) {
			return fmt.Errorf("%w: taken by another process during retry", ErrLocked)
		}
		return err
	}
	return nil
}

// create writes the lock file with our PID. An existing file is reported
// with an error satisfying os.IsExist.
func (l *DirLock) create() error {
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		if os.IsExist(err) {
			return err
		}
		return fmt.Errorf("failed to create lock file: %w", err)
	}
	_, writeErr := fmt.Fprintf(f, "%d", os.Getpid())
	f.Close()
	if writeErr != nil {
		os.Remove(l.path)
		return fmt.Errorf("failed to write lock file: %w", writeErr)
	}
	return nil
}

// owner reads the PID in the lock file. ok is false when the content is
// not a PID.
func (l *DirLock) owner() (pid int, ok bool, err error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to read lock file: %w", err)
	}
	pid, err = strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, false, nil
	}
	return pid, true, nil
}

// Release removes the lock file. Releasing twice is not an error.
func (l *DirLock) Release() error {
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove lock file: %w", err)
	}
	return nil
}

// processExists probes pid with signal 0.
func processExists(pid int) bool {
	if pid == os.Getpid() {
		return true
	}
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	return process.Signal(syscall.Signal(0)) == nil
}
