package service

import (
	"context"
	"sync"
	"time"

	"github.com/sristy17/sgay-v1/config"
	pkgerrors "github.com/sristy17/sgay-v1/pkg/errors"
	"github.com/sristy17/sgay-v1/pkg/redis"
)

// Lock keys. Every read-modify-write on a collection runs under its key.
const (
	lockKeyPendingEntries = "lock:sgay:pending_entries"
	lockKeyOfficers       = "lock:sgay:officers"
)

// Locker serializes mutating operations on a named collection.
// Lock returns pkgerrors.ErrLockNotObtained when the key stays held past the
// configured wait.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

// ── process-local ──

// LocalLocker one buffered channel per key. Only serializes within a process.
type LocalLocker struct {
	mu    sync.Mutex
	slots map[string]chan struct{}
	wait  time.Duration
}

// NewLocalLocker wait <= 0 waits until ctx is done.
func NewLocalLocker(wait time.Duration) *LocalLocker {
	return &LocalLocker{slots: make(map[string]chan struct{}), wait: wait}
}

// Lock implements Locker
func (l *LocalLocker) Lock(ctx context.Context, key string) (func(), error) {
	l.mu.Lock()
	slot, ok := l.slots[key]
	if !ok {
		slot = make(chan struct{}, 1)
		l.slots[key] = slot
	}
	l.mu.Unlock()

	if l.wait > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.wait)
		defer cancel()
	}

	select {
	case slot <- struct{}{}:
		var once sync.Once
		return func() { once.Do(func() { <-slot }) }, nil
	case <-ctx.Done():
		return nil, pkgerrors.ErrLockNotObtained
	}
}

// ── Redis ──

type redisLocker struct {
	rdb  *redis.Client
	opts redis.LockOptions
}

// NewRedisLocker serializes across every process sharing the Redis instance
func NewRedisLocker(rdb *redis.Client, cfg *config.ApprovalConfig) Locker {
	return &redisLocker{
		rdb: rdb,
		opts: redis.LockOptions{
			TTL:           cfg.LockTTL,
			RetryCount:    cfg.LockRetryCount,
			RetryInterval: cfg.LockRetryInterval,
		},
	}
}

// Lock implements Locker
func (l *redisLocker) Lock(ctx context.Context, key string) (func(), error) {
	return l.rdb.Obtain(ctx, key, l.opts)
}

// newLocker picks Redis when it is connected
func newLocker(cfg *config.Config, rdb *redis.Client) Locker {
	if rdb != nil {
		return NewRedisLocker(rdb, &cfg.Approval)
	}
	return NewLocalLocker(time.Duration(cfg.Approval.LockRetryCount) * cfg.Approval.LockRetryInterval)
}
