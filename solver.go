package depsolve

import (
	"context"
	"fmt"
	"time"

	"github.com/go-logr/logr"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("go.arcalot.io/depsolve")

type options struct {
	logger      logr.Logger
	metrics     *Metrics
	concurrency int
	maxDepth    int
}

// Option configures a Solver.
type Option func(*options)

// WithLogger sets the sink for trace output. Conflicts and pruned joins are logged at V(1), every
// visited node at V(2).
func WithLogger(logger logr.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithMetrics records solver activity in the specified collectors.
func WithMetrics(metrics *Metrics) Option {
	return func(o *options) {
		o.metrics = metrics
	}
}

// WithConcurrency solves alternatives and conjunction members on up to limit extra goroutines
// for the whole solve. A limit of 0 or less solves sequentially.
func WithConcurrency(limit int) Option {
	return func(o *options) {
		o.concurrency = limit
	}
}

// WithMaxDepth stops the solve with ErrDepthExceeded once a path would hold more than depth
// nodes. A depth of 0 or less disables the limit.
func WithMaxDepth(depth int) Option {
	return func(o *options) {
		o.maxDepth = depth
	}
}

// Solver runs resolutions under the configured Options.
// A Solver holds no per-solve state and can be used from several goroutines at once.
type Solver[ID Ident[ID]] struct {
	opts options
}

// NewSolver creates a Solver with the specified options.
func NewSolver[ID Ident[ID]](opts ...Option) *Solver[ID] {
	s := &Solver[ID]{}
	for _, opt := range opts {
		opt(&s.opts)
	}
	return s
}

// Solve resolves root from an empty path.
//
// The returned error is only set if the solve was stopped early, by cancellation of ctx or by
// the depth limit; the Resolved returned alongside it is incomplete. An unsatisfiable root is
// not an error: it is reported by a Resolved without paths.
func (s *Solver[ID]) Solve(ctx context.Context, root *Node[ID]) (Resolved[ID], error) {
	if root == nil {
		panic(ErrNilNode{})
	}
	ctx, span := tracer.Start(ctx, "depsolve.Solve",
		trace.WithAttributes(attribute.String("depsolve.root", fmt.Sprint(root.ID))),
	)
	defer span.End()

	start := time.Now()
	w := newWalk[ID](ctx, s.opts)
	result := root.solve(w, NewPath[ID]())
	err := w.Err()
	elapsed := time.Since(start)

	outcome := resultFailure
	switch {
	case err != nil:
		outcome = resultError
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	case result.IsSuccess():
		outcome = resultSuccess
	}
	span.SetAttributes(
		attribute.Int("depsolve.paths", len(result.Paths)),
		attribute.String("depsolve.result", outcome),
	)
	if s.opts.metrics != nil {
		s.opts.metrics.observeSolve(outcome, elapsed)
	}

	if err != nil {
		w.log.Error(err, "solve stopped", "root", fmt.Sprint(root.ID), "duration", elapsed)
		return result, err
	}
	w.log.Info("solve finished",
		"root", fmt.Sprint(root.ID),
		"result", outcome,
		"paths", len(result.Paths),
		"cause", result.Cause.String(),
		"duration", elapsed,
	)
	return result, nil
}
