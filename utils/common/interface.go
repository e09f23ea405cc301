package common

import (
	"os"
	"time"
)

type FileSystemInterface interface {
	Exists(name string) (bool, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm os.FileMode) error
	Rename(oldname, newname string) error
	Remove(name string) error
	MkdirAll(path string, perm os.FileMode) error
	ReadDir(dirname string) ([]os.FileInfo, error)
}

// RetryPolicy bounds the acquisition loop of an advisory lock.
type RetryPolicy struct {
	Attempts   int
	MinBackoff time.Duration
	MaxBackoff time.Duration
}

// AdvisoryLocker serializes writers on a shared store directory. The lock
// is cooperative: only processes using the same mechanism honor it.
type AdvisoryLocker interface {
	Acquire(dirPath string, policy RetryPolicy) (release func() error, err error)
}

type Environment interface {
	Getenv(name string) string
}
