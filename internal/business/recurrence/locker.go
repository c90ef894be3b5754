package recurrence

import (
	"context"
	"sync"

	"github.com/SergeyKozhin/jtx-board/internal/model"
)

// OriginLocker serializes reconciliation runs of one origin.
type OriginLocker interface {
	Lock(ctx context.Context, originID int64) (unlock func(), err error)
}

// SeriesID is the id the lock of o's series is taken on: the origin for an
// instance, o itself otherwise.
func SeriesID(o *model.ICalObject) int64 {
	if o.IsInstance() {
		return *o.RecurOriginalID
	}
	return o.ID
}

// LocalLocker is an OriginLocker for a single process.
type LocalLocker struct {
	mu    sync.Mutex
	locks map[int64]*localLock
}

type localLock struct {
	ch   chan struct{}
	refs int
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{locks: make(map[int64]*localLock)}
}

func (l *LocalLocker) Lock(ctx context.Context, originID int64) (func(), error) {
	l.mu.Lock()
	lk, ok := l.locks[originID]
	if !ok {
		lk = &localLock{ch: make(chan struct{}, 1)}
		l.locks[originID] = lk
	}
	lk.refs++
	l.mu.Unlock()

	select {
	case lk.ch <- struct{}{}:
	case <-ctx.Done():
		l.release(originID, lk)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-lk.ch
			l.release(originID, lk)
		})
	}, nil
}

func (l *LocalLocker) release(originID int64, lk *localLock) {
	l.mu.Lock()
	defer l.mu.Unlock()

	lk.refs--
	if lk.refs == 0 {
		delete(l.locks, originID)
	}
}
