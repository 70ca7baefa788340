package session

import (
	"context"
	"errors"
	"sync"

	"github.com/abhisek/fridayfun/internal/questiongen"
)

// ErrLoopStopped is returned by Loop methods once Run has exited.
var ErrLoopStopped = errors.New("session loop stopped")

// Loop runs a Store on a single goroutine so that concurrent callers
// (HTTP handlers) never touch it directly. Generator calls run on their
// own goroutines and report back through the loop.
type Loop struct {
	store   *Store
	cmds    chan func(context.Context)
	results chan Result
	done    chan struct{}
	wg      sync.WaitGroup

	// OnComplete, if set, is called on the loop goroutine after each
	// result is applied or discarded.
	OnComplete func(res Result, applied bool)
}

// NewLoop wraps store. Call Run to start processing.
func NewLoop(store *Store) *Loop {
	return &Loop{
		store:   store,
		cmds:    make(chan func(context.Context)),
		results: make(chan Result),
		done:    make(chan struct{}),
	}
}

// Run processes commands and results until ctx is cancelled. Outstanding
// generator calls are waited for before returning.
func (l *Loop) Run(ctx context.Context) error {
	defer func() {
		close(l.done)
		l.wg.Wait()
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case cmd := <-l.cmds:
			cmd(ctx)
		case res := <-l.results:
			applied := l.store.Complete(res)
			if l.OnComplete != nil {
				l.OnComplete(res, applied)
			}
		}
	}
}

// dispatch starts the generator call for req off the loop goroutine.
func (l *Loop) dispatch(ctx context.Context, req Request) {
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		res := l.store.Generate(ctx, req)
		select {
		case l.results <- res:
		case <-l.done:
		}
	}()
}

// do runs fn on the loop goroutine and waits for it.
func (l *Loop) do(ctx context.Context, fn func(context.Context) Snapshot) (Snapshot, error) {
	reply := make(chan Snapshot, 1)
	cmd := func(loopCtx context.Context) { reply <- fn(loopCtx) }

	select {
	case l.cmds <- cmd:
	case <-l.done:
		return Snapshot{}, ErrLoopStopped
	case <-ctx.Done():
		return Snapshot{}, ctx.Err()
	}
	return <-reply, nil
}

// SelectCategory starts a request for cat and returns the loading state.
func (l *Loop) SelectCategory(ctx context.Context, cat questiongen.Category) (Snapshot, error) {
	return l.do(ctx, func(loopCtx context.Context) Snapshot {
		l.dispatch(loopCtx, l.store.SelectCategory(cat))
		return l.store.Snapshot()
	})
}

// Regenerate starts a request for the active category.
func (l *Loop) Regenerate(ctx context.Context) (Snapshot, error) {
	return l.do(ctx, func(loopCtx context.Context) Snapshot {
		l.dispatch(loopCtx, l.store.Regenerate())
		return l.store.Snapshot()
	})
}

// Snapshot returns the current state.
func (l *Loop) Snapshot(ctx context.Context) (Snapshot, error) {
	return l.do(ctx, func(context.Context) Snapshot {
		return l.store.Snapshot()
	})
}
