package structgen

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Runner executes independent sample streams, possibly concurrently.
// Plugging a custom Runner in is the seam for workflow engines; the
// default is errgroup-backed.
type Runner interface {
	Go(fn func() error)
	Wait() error
}

// DefaultRunner returns an errgroup-backed runner sized to the machine.
func DefaultRunner(ctx context.Context) Runner {
	return NewLimitedRunner(ctx, runtime.NumCPU())
}

// NewLimitedRunner creates a runner that keeps at most maxConcurrency
// streams in flight. A stream scheduled after the group context is
// canceled is not started; Wait reports the first error.
func NewLimitedRunner(ctx context.Context, maxConcurrency int) Runner {
	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(maxConcurrency)
	return &streamRunner{ctx: gctx, eg: eg}
}

type streamRunner struct {
	ctx context.Context // canceled once any stream fails
	eg  *errgroup.Group
}

func (r *streamRunner) Go(fn func() error) {
	r.eg.Go(func() error {
		if err := r.ctx.Err(); err != nil {
			return err
		}
		return fn()
	})
}

func (r *streamRunner) Wait() error { return r.eg.Wait() }
