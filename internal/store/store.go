package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/qa-infra/sessionctl/models"
	"github.com/qa-infra/sessionctl/utils/common"
)

const (
	snapshotSuffix = ".snapshot"
	metadataSuffix = ".meta.json"
	tmpSuffix      = ".tmp"

	// DefaultTTL bounds reuse of a stale local copy. The external auth
	// system owns the authoritative expiry; this is only a local heuristic
	// and is configurable for that reason.
	DefaultTTL = 7 * 24 * time.Hour

	DefaultDir = "storageStates"

	fileMode = os.FileMode(0o600)
	dirMode  = os.FileMode(0o700)
)

// DefaultRetryPolicy bounds lock acquisition during Save.
var DefaultRetryPolicy = common.RetryPolicy{
	Attempts:   5,
	MinBackoff: 100 * time.Millisecond,
	MaxBackoff: 1000 * time.Millisecond,
}

type Options struct {
	Dir    string
	TTL    time.Duration
	Retry  common.RetryPolicy
	Logger zerolog.Logger
}

// Store is an explicit handle on one session-record directory. Callers own
// the handle; there is no process-global registry, so tests and parallel
// suites can run against isolated directories.
type Store struct {
	fs     common.FileSystemInterface
	locker common.AdvisoryLocker
	dir    string
	ttl    time.Duration
	retry  common.RetryPolicy
	log    zerolog.Logger

	// now is swapped out by tests to pin the expiry boundary.
	now func() time.Time

	cleanups  chan cleanupRequest
	done      chan struct{}
	closeMu   sync.Mutex
	closed    bool
	closeOnce sync.Once
}

type cleanupRequest struct {
	kind     models.SessionKind
	identity string
}

func New(fs common.FileSystemInterface, locker common.AdvisoryLocker, opts Options) (*Store, error) {
	dir := opts.Dir
	if dir == "" {
		dir = DefaultDir
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve store directory %s: %w", dir, err)
	}

	ttl := opts.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	retry := opts.Retry
	if retry.Attempts <= 0 {
		retry = DefaultRetryPolicy
	}

	s := &Store{
		fs:       fs,
		locker:   locker,
		dir:      abs,
		ttl:      ttl,
		retry:    retry,
		log:      opts.Logger,
		now:      time.Now,
		cleanups: make(chan cleanupRequest, 16),
		done:     make(chan struct{}),
	}
	go s.cleanupWorker()
	return s, nil
}

// Dir returns the absolute store directory.
func (s *Store) Dir() string { return s.dir }

// IsValid reports whether a usable session record exists for the identity.
// It fails closed: any missing file, unparsable metadata, passed expiry or
// I/O error yields false, leaving the caller to perform a full login.
func (s *Store) IsValid(kind models.SessionKind, identity string) bool {
	key := DeriveKey(kind, identity)
	snapshotPath, metadataPath := s.paths(key)

	for _, path := range []string{snapshotPath, metadataPath} {
		exists, err := s.fs.Exists(path)
		if err != nil {
			s.log.Warn().Err(err).Str("path", path).Msg("failed to check session record")
			return false
		}
		if !exists {
			// Expected on first run.
			s.log.Debug().Str("key", key).Str("path", path).Msg("no cached session record")
			return false
		}
	}

	meta, err := s.readMetadata(metadataPath)
	if err != nil {
		// Corrupt metadata is left in place for inspection, not auto-deleted.
		s.log.Warn().Err(err).Str("key", key).Msg("unreadable session metadata, treating record as invalid")
		return false
	}

	if s.now().After(meta.ExpiresAt) {
		s.log.Debug().Str("key", key).Time("expiresAt", meta.ExpiresAt).Msg("cached session expired")
		s.scheduleCleanup(kind, identity)
		return false
	}

	return true
}

// Load returns the absolute snapshot path for the identity, or false when
// no valid record exists and the caller must log in from scratch. Load
// never mutates the store.
func (s *Store) Load(kind models.SessionKind, identity string) (string, bool) {
	if !s.IsValid(kind, identity) {
		return "", false
	}
	snapshotPath, _ := s.paths(DeriveKey(kind, identity))
	return snapshotPath, true
}

// Save atomically persists a snapshot and its metadata for the identity.
// The store directory lock is held for the duration of the write, so
// concurrent workers saving the same key serialize; last writer wins.
// Failure to acquire the lock within the retry budget is fatal for this
// call and surfaces common.ErrLockTimeout.
func (s *Store) Save(kind models.SessionKind, identity string, snapshot []byte) error {
	if err := s.fs.MkdirAll(s.dir, dirMode); err != nil {
		return fmt.Errorf("failed to create store directory %s: %w", s.dir, err)
	}

	release, err := s.locker.Acquire(s.dir, s.retry)
	if err != nil {
		return fmt.Errorf("failed to lock session store: %w", err)
	}
	defer func() {
		if err := release(); err != nil {
			s.log.Warn().Err(err).Str("dir", s.dir).Msg("failed to release store lock")
		}
	}()

	key := DeriveKey(kind, identity)
	snapshotPath, metadataPath := s.paths(key)

	now := s.now()
	meta := models.SessionMetadata{
		CreatedAt:   now,
		ExpiresAt:   now.Add(s.ttl),
		SessionKind: kind,
		Identity:    identity,
	}
	metaBytes, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("failed to encode session metadata for %s: %w", key, err)
	}

	// Write both tmp siblings first, then rename; a reader never observes
	// a half-written pair.
	if err := s.fs.WriteFile(snapshotPath+tmpSuffix, snapshot, fileMode); err != nil {
		return fmt.Errorf("failed to write snapshot for %s: %w", key, err)
	}
	if err := s.fs.WriteFile(metadataPath+tmpSuffix, metaBytes, fileMode); err != nil {
		return fmt.Errorf("failed to write metadata for %s: %w", key, err)
	}
	if err := s.fs.Rename(snapshotPath+tmpSuffix, snapshotPath); err != nil {
		return fmt.Errorf("failed to finalize snapshot for %s: %w", key, err)
	}
	if err := s.fs.Rename(metadataPath+tmpSuffix, metadataPath); err != nil {
		return fmt.Errorf("failed to finalize metadata for %s: %w", key, err)
	}

	s.log.Debug().Str("key", key).Time("expiresAt", meta.ExpiresAt).Msg("session record saved")
	return nil
}

// Cleanup removes the session record for the identity. It is idempotent:
// files already absent count as success, and any other removal error is
// logged as a warning rather than raised.
func (s *Store) Cleanup(kind models.SessionKind, identity string) {
	key := DeriveKey(kind, identity)
	snapshotPath, metadataPath := s.paths(key)
	s.removeQuietly(snapshotPath)
	s.removeQuietly(metadataPath)
}

// Metadata reads the persisted metadata document for the identity without
// any validity filtering. Used by inspection tooling.
func (s *Store) Metadata(kind models.SessionKind, identity string) (*models.SessionMetadata, error) {
	key := DeriveKey(kind, identity)
	_, metadataPath := s.paths(key)

	exists, err := s.fs.Exists(metadataPath)
	if err != nil {
		return nil, fmt.Errorf("failed to check metadata for %s: %w", key, err)
	}
	if !exists {
		return nil, fmt.Errorf("no session record for %s", key)
	}
	return s.readMetadata(metadataPath)
}

// PurgeAll removes every session record pair in the store directory and
// returns the number of records removed. Per-file failures are warnings.
func (s *Store) PurgeAll() int {
	entries, err := s.fs.ReadDir(s.dir)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn().Err(err).Str("dir", s.dir).Msg("failed to list store directory")
		}
		return 0
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		switch {
		case strings.HasSuffix(name, metadataSuffix):
			removed++
			fallthrough
		case strings.HasSuffix(name, snapshotSuffix), strings.HasSuffix(name, tmpSuffix):
			s.removeQuietly(filepath.Join(s.dir, name))
		}
	}
	return removed
}

// Close stops the background cleanup worker after draining queued
// requests. Safe to call more than once.
func (s *Store) Close() {
	s.closeOnce.Do(func() {
		s.closeMu.Lock()
		s.closed = true
		s.closeMu.Unlock()
		close(s.cleanups)
	})
	<-s.done
}

func (s *Store) paths(key string) (snapshotPath, metadataPath string) {
	return filepath.Join(s.dir, key+snapshotSuffix), filepath.Join(s.dir, key+metadataSuffix)
}

func (s *Store) readMetadata(path string) (*models.SessionMetadata, error) {
	data, err := s.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read session metadata %s: %w", path, err)
	}
	var meta models.SessionMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("failed to parse session metadata %s: %w", path, err)
	}
	return &meta, nil
}

func (s *Store) removeQuietly(path string) {
	if err := s.fs.Remove(path); err != nil && !os.IsNotExist(err) {
		s.log.Warn().Err(err).Str("path", path).Msg("failed to remove session file")
	}
}

// scheduleCleanup hands an expired record to the background worker without
// blocking the validity check. A full queue drops the request; the record
// is picked up again on the next touch.
func (s *Store) scheduleCleanup(kind models.SessionKind, identity string) {
	s.closeMu.Lock()
	defer s.closeMu.Unlock()
	if s.closed {
		s.log.Debug().Msg("store closed, skipping expired record removal")
		return
	}
	select {
	case s.cleanups <- cleanupRequest{kind: kind, identity: identity}:
	default:
		s.log.Debug().Msg("cleanup queue full, deferring expired record removal")
	}
}

func (s *Store) cleanupWorker() {
	defer close(s.done)
	for req := range s.cleanups {
		s.Cleanup(req.kind, req.identity)
	}
}
