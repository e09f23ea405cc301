package common

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

// LockFileName is the flock artifact kept inside the store directory.
const LockFileName = ".sessionctl.lock"

// ErrLockTimeout is returned when every acquisition attempt failed. A save
// that hits this must be treated as fatal by the caller.
var ErrLockTimeout = errors.New("timed out acquiring session store lock")

// FlockLocker implements AdvisoryLocker on top of gofrs/flock. Creating the
// lock file when it does not exist yet is safe; the file is left in place
// after release so concurrent processes always contend on the same inode.
type FlockLocker struct{}

func NewFlockLocker() *FlockLocker {
	return &FlockLocker{}
}

func (l *FlockLocker) Acquire(dirPath string, policy RetryPolicy) (func() error, error) {
	lock := flock.New(filepath.Join(dirPath, LockFileName))

	backoff := policy.MinBackoff
	for attempt := 1; ; attempt++ {
		locked, err := lock.TryLock()
		if err != nil {
			return nil, fmt.Errorf("failed to acquire lock %s: %w", lock.Path(), err)
		}
		if locked {
			return lock.Unlock, nil
		}
		if attempt >= policy.Attempts {
			break
		}
		time.Sleep(backoff)
		backoff *= 2
		if backoff > policy.MaxBackoff {
			backoff = policy.MaxBackoff
		}
	}

	return nil, fmt.Errorf("%w: %s held by another process after %d attempts",
		ErrLockTimeout, lock.Path(), policy.Attempts)
}
