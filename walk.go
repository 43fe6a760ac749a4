package depsolve

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-logr/logr"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// walk carries the per-solve state shared by every branch, including the first error
// that stopped the solve. Branches never share paths, only the walk.
type walk[ID Ident[ID]] struct {
	ctx     context.Context
	opts    options
	log     logr.Logger
	// Bounds the goroutines of the whole walk, not of a single branching point.
	sem     *semaphore.Weighted
	errLock sync.Mutex
	err     error
}

// plainWalk is used by the exported Solve and Resolve methods: no hooks and no limits.
func plainWalk[ID Ident[ID]]() *walk[ID] {
	return newWalk[ID](context.Background(), options{})
}

func newWalk[ID Ident[ID]](ctx context.Context, opts options) *walk[ID] {
	log := opts.logger
	if log.GetSink() == nil {
		log = logr.Discard()
	}
	w := &walk[ID]{
		ctx:  ctx,
		opts: opts,
		log:  log,
	}
	if opts.concurrency > 0 {
		w.sem = semaphore.NewWeighted(int64(opts.concurrency))
	}
	return w
}

// halted reports whether the walk must stop before visiting node on path.
func (w *walk[ID]) halted(node *Node[ID], path Path[ID]) bool {
	if w.Err() != nil {
		return true
	}
	if err := w.ctx.Err(); err != nil {
		w.stop(err)
		return true
	}
	if w.opts.maxDepth > 0 && path.Len() > w.opts.maxDepth {
		w.stop(ErrDepthExceeded{MaxDepth: w.opts.maxDepth, NodeID: fmt.Sprint(node.ID)})
		return true
	}
	return false
}

func (w *walk[ID]) stop(err error) {
	w.errLock.Lock()
	defer w.errLock.Unlock()
	if w.err == nil {
		w.err = err
	}
}

// Err returns the error that stopped the walk, if any.
func (w *walk[ID]) Err() error {
	w.errLock.Lock()
	defer w.errLock.Unlock()
	return w.err
}

func (w *walk[ID]) visit(node *Node[ID], path Path[ID]) {
	if w.opts.metrics != nil {
		w.opts.metrics.nodesVisited.Inc()
	}
	w.log.V(2).Info("visiting node", "node", fmt.Sprint(node.ID), "depth", path.Len())
}

func (w *walk[ID]) conflict(node *Node[ID], path Path[ID], cause Cause[ID]) {
	if w.opts.metrics != nil {
		w.opts.metrics.conflicts.Inc()
	}
	w.log.V(1).Info("identity conflict", "node", fmt.Sprint(node.ID), "path", path.String(), "cause", cause.String())
}

func (w *walk[ID]) pruned(megapath Path[ID]) {
	if w.opts.metrics != nil {
		w.opts.metrics.megapathsPruned.Inc()
	}
	w.log.V(1).Info("conjunction members conflict", "path", megapath.String())
}

// each runs fn for 0..n-1 and returns the results by index. With concurrency enabled a call gets
// its own goroutine while the walk has a free slot and runs inline otherwise, so nested fan-outs
// never wait on each other. The result order is the same either way.
func (w *walk[ID]) each(n int, fn func(i int) Resolved[ID]) []Resolved[ID] {
	results := make([]Resolved[ID], n)
	if w.sem == nil || n < 2 {
		for i := range n {
			results[i] = fn(i)
		}
		return results
	}
	var g errgroup.Group
	for i := range n {
		if !w.sem.TryAcquire(1) {
			results[i] = fn(i)
			continue
		}
		g.Go(func() error {
			defer w.sem.Release(1)
			results[i] = fn(i)
			return nil
		})
	}
	_ = g.Wait()
	return results
}
