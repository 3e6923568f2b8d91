package client

import (
	"context"
	"time"
)

// FutureResult is the caller-facing handle of an asynchronous operation. Progress is
// made only inside IsDone, Get and GetWithTimeout, on the calling goroutine.
type FutureResult[R any] interface {
	// IsDone reports whether the operation has completed, polling once if it has not.
	IsDone(ctx context.Context) (bool, error)
	// Get waits without a time bound for the result.
	Get(ctx context.Context) (R, error)
	// GetWithTimeout waits at most roughly timeout for the result.
	GetWithTimeout(ctx context.Context, timeout time.Duration) (R, error)
	// PollingURI returns the URI being polled.
	PollingURI() string
}

// PollResult adapts a poll handler and a poller into a FutureResult.
type PollResult[P, R any] struct {
	poller  *Poller
	handler PollHandler[P, R]
}

var _ FutureResult[TaskStatus] = (*PollResult[TaskStatusResponse, TaskStatus])(nil)

// NewPollResult creates the future of handler, polled through poller.
func NewPollResult[P, R any](poller *Poller, handler PollHandler[P, R]) *PollResult[P, R] {
	return &PollResult[P, R]{poller: poller, handler: handler}
}

func (r *PollResult[P, R]) IsDone(ctx context.Context) (bool, error) {
	if r.handler.IsDone() {
		return true, nil
	}
	return PollOnce(ctx, r.poller, r.handler)
}

func (r *PollResult[P, R]) Get(ctx context.Context) (R, error) {
	return Poll(ctx, r.poller, r.handler, 0)
}

func (r *PollResult[P, R]) GetWithTimeout(ctx context.Context, timeout time.Duration) (R, error) {
	if r.handler.IsDone() {
		return r.handler.Result(), nil
	}
	return Poll(ctx, r.poller, r.handler, timeout)
}

func (r *PollResult[P, R]) PollingURI() string {
	return r.handler.PollingURI()
}
