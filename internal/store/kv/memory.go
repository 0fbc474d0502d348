package kv

import (
	"context"
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/MrSnakeDoc/stash/internal/errs"
)

// Memory is an in-process Store, used in tests and as a scratch store.
type Memory struct {
	mu    sync.RWMutex
	data  map[string][]byte
	quota int64
}

// NewMemory creates an in-memory store. quota of 0 means unlimited.
func NewMemory(quota int64) *Memory {
	return &Memory{
		data:  make(map[string][]byte),
		quota: quota,
	}
}

func (m *Memory) Get(ctx context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

func (m *Memory) Set(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.quota > 0 {
		usage := m.usageLocked() - int64(len(m.data[key])) + int64(len(value))
		if usage > m.quota {
			return errors.Mark(
				errors.Newf("write of %d bytes exceeds quota of %d bytes", len(value), m.quota),
				errs.ErrQuotaExceeded)
		}
	}

	cp := make([]byte, len(value))
	copy(cp, value)
	m.data[key] = cp
	return nil
}

func (m *Memory) Delete(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

func (m *Memory) BytesInUse(ctx context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.usageLocked(), nil
}

func (m *Memory) Quota() int64 { return m.quota }

func (m *Memory) usageLocked() int64 {
	var n int64
	for k, v := range m.data {
		n += int64(len(k) + len(v))
	}
	return n
}
