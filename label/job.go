package label

import "context"

// JobContext is polled by a running job to find out whether its result is
// still wanted.
type JobContext interface {
	IsCancelled() bool
}

// Job is a unit of work executed by a worker.
type Job[T any] interface {
	Run(jc JobContext) T
}

// JobFunc adapts a function to Job.
type JobFunc[T any] func(jc JobContext) T

func (f JobFunc[T]) Run(jc JobContext) T {
	return f(jc)
}

type contextJob struct {
	ctx context.Context
}

func (c contextJob) IsCancelled() bool {
	return c.ctx.Err() != nil
}

// ContextJob reports cancellation once ctx is done.
func ContextJob(ctx context.Context) JobContext {
	return contextJob{ctx: ctx}
}

type backgroundJob struct{}

func (backgroundJob) IsCancelled() bool { return false }

// Background is a JobContext that is never cancelled.
var Background JobContext = backgroundJob{}
