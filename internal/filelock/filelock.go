// Package filelock keeps concurrent docnav runs from writing the same output
// directory and replaces generated files in a single rename.
package filelock

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// Lock is an exclusive advisory lock on a file inside an output directory.
type Lock struct {
	fl *flock.Flock
}

// New returns a lock on path. Neither the file nor its directory has to
// exist yet.
func New(path string) *Lock {
	return &Lock{fl: flock.New(path)}
}

// Path returns the lock file path.
func (l *Lock) Path() string {
	return l.fl.Path()
}

// Acquire blocks until the lock is held.
func (l *Lock) Acquire() error {
	if err := l.ensureDir(); err != nil {
		return err
	}
	if err := l.fl.Lock(); err != nil {
		return fmt.Errorf("lock %s: %w", l.Path(), err)
	}
	return nil
}

// TryAcquire takes the lock if it is free and reports whether it did.
func (l *Lock) TryAcquire() (bool, error) {
	if err := l.ensureDir(); err != nil {
		return false, err
	}
	held, err := l.fl.TryLock()
	if err != nil {
		return false, fmt.Errorf("lock %s: %w", l.Path(), err)
	}
	return held, nil
}

// Release drops the lock. The lock file is left in place.
func (l *Lock) Release() error {
	if err := l.fl.Unlock(); err != nil {
		return fmt.Errorf("unlock %s: %w", l.Path(), err)
	}
	return nil
}

func (l *Lock) ensureDir() error {
	dir := filepath.Dir(l.Path())
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create lock directory %s: %w", dir, err)
	}
	return nil
}

// WriteFile replaces path with data via a synced sibling temp file, so a
// reader sees either the old manifest or the new one.
func WriteFile(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp file for %s: %w", path, err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("sync %s: %w", tmp.Name(), err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmp.Name(), err)
	}
	if err = os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("chmod %s: %w", tmp.Name(), err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

// WriteLocked holds "<path>.lock" for the duration of WriteFile.
func WriteLocked(path string, data []byte) error {
	lock := New(path + ".lock")
	if err := lock.Acquire(); err != nil {
		return err
	}
	defer lock.Release()

	return WriteFile(path, data)
}
