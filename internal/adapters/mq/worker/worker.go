// Package worker parses statbook files in parallel. Parsing shares no state,
// so files are handed out through a queue; results are returned in input
// order for the sequential fold.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/jamstats/internal/adapters/mq/queue"
	"github.com/okian/jamstats/internal/domain/model"
	"github.com/okian/jamstats/pkg/logger"
	"github.com/okian/jamstats/pkg/metrics"
)

// Parser turns one statbook file into a game.
type Parser interface {
	Parse(ctx context.Context, path string) (*model.Game, error)
}

// Result is the outcome of one job.
type Result struct {
	Seq  int
	Path string
	Game *model.Game
}

// InMemoryWorker parses jobs read from a shared channel.
type InMemoryWorker struct {
	parser Parser
	name   string
	active *atomic.Int64

	logger logger.Logger
}

// NewInMemoryWorker creates a new worker with configuration options.
func NewInMemoryWorker(parser Parser, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		parser: parser,
		name:   "worker",
		active: &atomic.Int64{},
		logger: logger.Get().Named("worker"),
	}

	for _, opt := range opts {
		opt(w)
	}

	if w.name != "worker" {
		w.logger = w.logger.Named(w.name)
	}

	return w
}

// Run parses jobs until jobs is closed or ctx is done. The first parse error
// stops the worker and is returned.
func (w *InMemoryWorker) Run(ctx context.Context, jobs <-chan queue.Job, results chan<- Result) error {
	metrics.UpdateWorkerActiveCount(int(w.active.Add(1)))
	defer func() { metrics.UpdateWorkerActiveCount(int(w.active.Add(-1))) }()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case job, ok := <-jobs:
			if !ok {
				return nil
			}
			res, err := w.process(ctx, job)
			if err != nil {
				return err
			}
			select {
			case results <- res:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}

func (w *InMemoryWorker) process(ctx context.Context, job queue.Job) (Result, error) {
	start := time.Now()
	g, err := w.parser.Parse(ctx, job.Path)
	latency := float64(time.Since(start).Milliseconds())
	metrics.RecordWorkerProcessingLatency(latency)

	if err != nil {
		metrics.RecordParseError()
		metrics.RecordWorkerError()
		metrics.RecordErrorByComponent("worker", "parse_error")
		w.logger.Error(ctx, "parse failed",
			logger.String("path", job.Path),
			logger.Error(err),
		)
		return Result{}, fmt.Errorf("parse %s: %w", job.Path, err)
	}

	metrics.RecordGameParsed(latency)
	w.logger.Debug(ctx, "parsed game",
		logger.String("path", job.Path),
		logger.String("team1", g.Team1),
		logger.String("team2", g.Team2),
		logger.Int("jams", len(g.Lineups)),
	)
	return Result{Seq: job.Seq, Path: job.Path, Game: g}, nil
}

// Pool runs a fixed number of workers over one batch of files.
type Pool struct {
	size          int
	queueCapacity int
	parser        Parser
	active        *atomic.Int64

	logger logger.Logger
}

// NewPool creates a pool of workerCount workers; values below one use the
// number of CPUs.
func NewPool(workerCount int, parser Parser, opts ...PoolOption) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU()
	}

	p := &Pool{
		size:   workerCount,
		parser: parser,
		active: &atomic.Int64{},
		logger: logger.Get().Named("worker-pool"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Size returns the number of workers.
func (p *Pool) Size() int { return p.size }

// ParseAll parses every path and returns the games in the order of paths.
// The first failure cancels the remaining work.
func (p *Pool) ParseAll(ctx context.Context, paths []string) ([]*model.Game, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var qopts []queue.Option
	if p.queueCapacity > 0 {
		qopts = append(qopts, queue.WithCapacity(p.queueCapacity))
	}
	q := queue.NewInMemoryQueue(qopts...)

	g, gctx := errgroup.WithContext(ctx)
	results := make(chan Result, len(paths))

	g.Go(func() error {
		defer q.Close()
		for i, path := range paths {
			if err := q.Enqueue(gctx, queue.Job{Seq: i, Path: path}); err != nil {
				return err
			}
		}
		return nil
	})

	jobs := q.Dequeue(gctx)
	for i := 0; i < p.size; i++ {
		w := NewInMemoryWorker(p.parser,
			WithName("worker-"+strconv.Itoa(i)),
			withActiveCounter(p.active),
		)
		g.Go(func() error { return w.Run(gctx, jobs, results) })
	}

	err := g.Wait()
	close(results)
	if err != nil {
		return nil, err
	}

	games := make([]*model.Game, len(paths))
	for res := range results {
		games[res.Seq] = res.Game
	}
	for i, game := range games {
		if game == nil {
			return nil, fmt.Errorf("%w: %s", ErrMissingResult, paths[i])
		}
	}
	p.logger.Info(ctx, "parsed batch",
		logger.Int("files", len(paths)),
		logger.Int("workers", p.size),
	)
	return games, nil
}
