package stats

import (
	"context"
	"sync"
)

// RepositoryStub is an in-memory Repository used by service tests.
type RepositoryStub struct {
	mu       sync.Mutex
	counters map[string]int64
	err      error
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{counters: make(map[string]int64)}
}

func (r *RepositoryStub) Increment(ctx context.Context, name string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.err != nil {
		return 0, r.err
	}
	r.counters[name]++
	return r.counters[name], nil
}

func (r *RepositoryStub) Get(ctx context.Context, name string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.err != nil {
		return 0, r.err
	}
	return r.counters[name], nil
}

func (r *RepositoryStub) SetError(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}

func (r *RepositoryStub) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counters = make(map[string]int64)
	r.err = nil
}
