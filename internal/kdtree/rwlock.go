package kdtree

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// lockWeight is the full weight of the tree lock. Readers acquire 1,
// writers acquire the whole weight, which yields many-readers-or-one-
// writer semantics with context-aware waiting: a caller whose context
// is cancelled while queued simply gives up, leaving the tree and the
// lock untouched.
const lockWeight = 1 << 30

type rwLock struct {
	sem *semaphore.Weighted
}

func newRWLock() *rwLock {
	return &rwLock{sem: semaphore.NewWeighted(lockWeight)}
}

func (l *rwLock) rlock(ctx context.Context) error { return l.sem.Acquire(ctx, 1) }
func (l *rwLock) runlock()                        { l.sem.Release(1) }
func (l *rwLock) lock(ctx context.Context) error  { return l.sem.Acquire(ctx, lockWeight) }
func (l *rwLock) unlock()                         { l.sem.Release(lockWeight) }
