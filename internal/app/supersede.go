package service

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/okian/pitchcard/pkg/metrics"
)

type flight struct {
	id     string
	cancel context.CancelCauseFunc
}

// tracker keeps the in-flight render of every session so that a newer
// request can cancel the stale one. Renders without a session are tracked
// too, so that close reaches every one of them.
type tracker struct {
	mu       sync.Mutex
	inflight map[string]flight
	anon     map[string]context.CancelCauseFunc
	closed   bool
	wg       sync.WaitGroup
}

func newTracker() *tracker {
	return &tracker{
		inflight: make(map[string]flight),
		anon:     make(map[string]context.CancelCauseFunc),
	}
}

// begin registers a render and returns its context, id and release func.
// A previous render of the same session is cancelled with ErrSuperseded.
// An empty session is never superseded. After close every new render
// starts out cancelled.
func (t *tracker) begin(ctx context.Context, session string) (context.Context, string, func()) {
	id := uuid.NewString()
	ctx, cancel := context.WithCancelCause(ctx)

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		cancel(context.Canceled)
		return ctx, id, func() {}
	}
	t.wg.Add(1)

	if session == "" {
		t.anon[id] = cancel
		return ctx, id, func() {
			t.mu.Lock()
			delete(t.anon, id)
			t.mu.Unlock()
			cancel(nil)
			t.wg.Done()
		}
	}

	if prev, ok := t.inflight[session]; ok {
		prev.cancel(ErrSuperseded)
		metrics.RecordRenderSuperseded()
	}
	t.inflight[session] = flight{id: id, cancel: cancel}

	return ctx, id, func() {
		t.mu.Lock()
		if cur, ok := t.inflight[session]; ok && cur.id == id {
			delete(t.inflight, session)
		}
		t.mu.Unlock()
		cancel(nil)
		t.wg.Done()
	}
}

func (t *tracker) size() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.inflight) + len(t.anon)
}

// close cancels every in-flight render and refuses new ones.
func (t *tracker) close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
	for session, f := range t.inflight {
		f.cancel(context.Canceled)
		delete(t.inflight, session)
	}
	for id, cancel := range t.anon {
		cancel(context.Canceled)
		delete(t.anon, id)
	}
}

// wait blocks until every render started before close has released.
func (t *tracker) wait() {
	t.wg.Wait()
}
