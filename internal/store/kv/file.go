package kv

import (
	"context"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/MrSnakeDoc/stash/internal/errs"
)

// File is a directory-backed Store: one file per key. Writes go through a
// temp file + rename so a crash never leaves a torn value behind.
type File struct {
	mu    sync.Mutex
	dir   string
	quota int64
}

// NewFile creates (if needed) the backing directory and returns a
// file-backed store. quota of 0 means unlimited.
func NewFile(dir string, quota int64) (*File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "failed to create store directory %s", dir)
	}
	return &File{dir: dir, quota: quota}, nil
}

func (f *File) Get(ctx context.Context, key string) ([]byte, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path(key))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrapf(err, "failed to read key %s", key)
	}
	return data, true, nil
}

func (f *File) Set(ctx context.Context, key string, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.quota > 0 {
		usage, err := f.usageLocked()
		if err != nil {
			return err
		}
		if prev, err := os.Stat(f.path(key)); err == nil {
			usage -= prev.Size()
		}
		if usage+int64(len(value)) > f.quota {
			return errors.Mark(
				errors.Newf("write of %d bytes exceeds quota of %d bytes", len(value), f.quota),
				errs.ErrQuotaExceeded)
		}
	}

	tmp := f.path(key) + ".tmp"
	if err := os.WriteFile(tmp, value, 0o644); err != nil {
		return errors.Wrapf(err, "failed to write key %s", key)
	}
	if err := os.Rename(tmp, f.path(key)); err != nil {
		return errors.Wrapf(err, "failed to commit key %s", key)
	}
	return nil
}

func (f *File) Delete(ctx context.Context, keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, k := range keys {
		if err := os.Remove(f.path(k)); err != nil && !os.IsNotExist(err) {
			return errors.Wrapf(err, "failed to delete key %s", k)
		}
	}
	return nil
}

func (f *File) BytesInUse(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.usageLocked()
}

func (f *File) Quota() int64 { return f.quota }

func (f *File) usageLocked() (int64, error) {
	entries, err := os.ReadDir(f.dir)
	if err != nil {
		return 0, errors.Wrap(err, "failed to list store directory")
	}
	var n int64
	for _, e := range entries {
		if e.IsDir() || strings.HasSuffix(e.Name(), ".tmp") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		n += info.Size()
	}
	return n, nil
}

// path maps a key to a filename. Keys are short known constants, but
// hex-encode anything unsafe so arbitrary keys cannot escape the dir.
func (f *File) path(key string) string {
	safe := true
	for _, r := range key {
		if !(r == '_' || r == '-' || r == '.' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')) {
			safe = false
			break
		}
	}
	if !safe || key == "" || strings.HasPrefix(key, ".") {
		key = "x" + hex.EncodeToString([]byte(key))
	}
	return filepath.Join(f.dir, key)
}
