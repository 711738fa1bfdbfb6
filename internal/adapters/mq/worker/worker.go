// Package worker resolves roster enrichment batches on a bounded pool.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/okian/pitchcard/internal/adapters/mq/queue"
	"github.com/okian/pitchcard/internal/domain/model"
	"github.com/okian/pitchcard/pkg/logger"
	"github.com/okian/pitchcard/pkg/metrics"
)

const (
	defaultBatchTimeout = 5 * time.Second
	poolShutdownTimeout = 30 * time.Second
)

// Batch is what workers read off the queue.
type Batch = queue.Batch

// People looks up person records for a set of MLBAM ids.
type People interface {
	People(ctx context.Context, ids []int) ([]model.Bio, error)
}

// Sink receives enriched players. It must be safe for concurrent use.
type Sink interface {
	Collect(ctx context.Context, players []model.Player)
}

// Queue defines how workers receive batches.
type Queue interface {
	Dequeue(ctx context.Context) <-chan Batch
}

// Worker processes batches until its queue is drained.
type Worker interface {
	Run(ctx context.Context)
	Shutdown(ctx context.Context) error
}

// InMemoryWorker implements Worker.
type InMemoryWorker struct {
	queue        Queue
	people       People
	sink         Sink
	name         string
	batchTimeout time.Duration
	active       *atomic.Int64

	shutdown chan struct{}
	done     chan struct{}

	logger logger.Logger
}

// NewInMemoryWorker creates a new worker with configuration options.
func NewInMemoryWorker(q Queue, people People, sink Sink, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:        q,
		people:       people,
		sink:         sink,
		name:         "enrich-worker",
		batchTimeout: defaultBatchTimeout,
		shutdown:     make(chan struct{}),
		done:         make(chan struct{}),
		logger:       logger.Get().Named("worker"),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.name != "enrich-worker" {
		w.logger = w.logger.Named(w.name)
	}
	return w
}

// Run consumes batches until the queue closes, ctx ends or Shutdown is called.
func (w *InMemoryWorker) Run(ctx context.Context) {
	defer close(w.done)

	batches := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case b, ok := <-batches:
			if !ok {
				return
			}
			if err := w.process(ctx, b); err != nil {
				w.logger.Warn(ctx, "batch fell back to unknown",
					logger.Int("batch", b.Seq),
					logger.Int("players", len(b.Players)),
					logger.Error(err),
				)
			}
		}
	}
}

// Shutdown gracefully stops the worker.
func (w *InMemoryWorker) Shutdown(ctx context.Context) error {
	close(w.shutdown)
	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// process resolves one batch. The batch always reaches the sink; a failed
// lookup only downgrades its players to Unknown.
func (w *InMemoryWorker) process(ctx context.Context, b Batch) error {
	if w.active != nil {
		metrics.UpdateEnrichWorkersActive(int(w.active.Add(1)))
		defer func() { metrics.UpdateEnrichWorkersActive(int(w.active.Add(-1))) }()
	}

	callCtx, cancel := context.WithTimeout(ctx, w.batchTimeout)
	defer cancel()

	bios, err := w.people.People(callCtx, b.IDs())
	if err != nil {
		metrics.RecordEnrichBatch("error")
		metrics.RecordErrorByComponent("worker", "people_lookup")
		bios = nil
	} else {
		metrics.RecordEnrichBatch("ok")
	}

	players, missing := Merge(b.Players, bios)
	if missing > 0 {
		metrics.RecordEnrichFallbacks(missing)
	}
	w.sink.Collect(ctx, players)

	if err != nil {
		return fmt.Errorf("people lookup for batch %d: %w", b.Seq, err)
	}
	return nil
}

// Merge copies team and position from bios onto players. Players without a
// bio get Unknown team and position; every player leaves with level Unknown
// until team levels are resolved. It returns the number of players without a
// bio.
func Merge(players []model.Player, bios []model.Bio) ([]model.Player, int) {
	byID := make(map[int]model.Bio, len(bios))
	for _, b := range bios {
		byID[b.ID] = b
	}

	out := make([]model.Player, len(players))
	missing := 0
	for i, p := range players {
		p.Team, p.Position, p.Level, p.TeamID = model.Unknown, model.Unknown, model.Unknown, 0
		if bio, ok := byID[p.ID]; ok {
			if bio.TeamName != "" {
				p.Team = bio.TeamName
			}
			if bio.Position != "" {
				p.Position = bio.Position
			}
			p.TeamID = bio.TeamID
		} else {
			missing++
		}
		out[i] = p
	}
	return out, missing
}

// Pool manages a fixed set of workers sharing one queue.
type Pool struct {
	workers []*InMemoryWorker
	queue   Queue
	active  atomic.Int64
	logger  logger.Logger
}

// NewPool creates a pool of workerCount workers; opts apply to every worker.
func NewPool(workerCount int, q Queue, people People, sink Sink, opts ...Option) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU()
	}

	pool := &Pool{
		workers: make([]*InMemoryWorker, workerCount),
		queue:   q,
		logger:  logger.Get().Named("worker-pool"),
	}
	for i := 0; i < workerCount; i++ {
		wopts := append([]Option{WithName("enrich-worker-" + strconv.Itoa(i))}, opts...)
		w := NewInMemoryWorker(q, people, sink, wopts...)
		w.active = &pool.active
		pool.workers[i] = w
	}
	metrics.UpdateEnrichWorkersActive(0)
	return pool
}

// Size returns the number of workers.
func (p *Pool) Size() int { return len(p.workers) }

// Start starts all workers in the pool.
func (p *Pool) Start(ctx context.Context) {
	for _, w := range p.workers {
		go w.Run(ctx)
	}
}

// Wait blocks until every worker has stopped, which happens once the queue
// is closed and drained, or until ctx ends.
func (p *Pool) Wait(ctx context.Context) error {
	for _, w := range p.workers {
		select {
		case <-w.done:
		case <-ctx.Done():
			return fmt.Errorf("waiting for workers: %w", ctx.Err())
		}
	}
	return nil
}

// Shutdown closes the queue and stops all workers.
func (p *Pool) Shutdown(ctx context.Context) error {
	if closer, ok := p.queue.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()

	for i, w := range p.workers {
		select {
		case <-w.done:
			continue
		default:
		}
		if err := w.Shutdown(shutdownCtx); err != nil {
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker_id", i))
		}
	}
	return nil
}
