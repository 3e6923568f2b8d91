package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"
)

// errServerStatus marks a 5xx response inside the circuit breaker.
var errServerStatus = errors.New("server error status")

// Poller issues poll requests for handlers. It holds no per-operation state and may be
// shared; a single handler must not be polled from several goroutines at once.
type Poller struct {
	rest     *resty.Client
	interval time.Duration
	logger   zerolog.Logger
	metrics  *Metrics
	breaker  *gobreaker.CircuitBreaker[*resty.Response]

	now  func() time.Time
	wait func(ctx context.Context, d time.Duration) error
}

// NewPoller creates a poller issuing requests through rest and sleeping interval
// between attempts. A non-positive interval selects DefaultPollInterval.
func NewPoller(rest *resty.Client, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Poller{
		rest:     rest,
		interval: interval,
		logger:   zerolog.Nop(),
		now:      time.Now,
		wait:     waitForNextPoll,
	}
}

// Interval returns the sleep between poll attempts.
func (p *Poller) Interval() time.Duration {
	return p.interval
}

// PollOnce performs a single poll attempt for h and reports whether h is done.
// A handler that is already done is not polled again.
func PollOnce[P, R any](ctx context.Context, p *Poller, h PollHandler[P, R]) (bool, error) {
	if p == nil {
		return false, ErrNilPoller
	}
	if h == nil {
		return false, ErrNilHandler
	}
	if h.IsDone() {
		return true, nil
	}

	uri := h.PollingURI()
	resp, restErr := p.get(ctx, uri)
	if restErr != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			p.metrics.observeAttempt(outcomeInterrupted)
			return false, &PollError{Kind: KindInterrupted, URI: uri, Cause: ctxErr}
		}

		p.metrics.observeAttempt(outcomeTransportError)
		p.logger.Debug().Err(restErr).Str("uri", uri).Msg("poll request failed")
		if err := h.HandlePollException(restErr); err != nil {
			return false, err
		}
		return false, &PollError{
			Kind:    KindHandlerContract,
			URI:     uri,
			Status:  restErr.StatusCode,
			Handler: fmt.Sprintf("%T", h),
			Cause:   restErr,
		}
	}

	p.logger.Debug().
		Str("uri", uri).
		Int("status", resp.StatusCode).
		Str("request-id", resp.RequestID).
		Msg("poll attempt")

	if h.IsFinished(resp) {
		p.metrics.observeAttempt(outcomeFinished)
		data, err := decodePayload[P](resp)
		if err != nil {
			return false, &PollError{Kind: KindTransport, URI: uri, Status: resp.StatusCode, Cause: err}
		}
		if err := h.HandlePollResult(data); err != nil {
			return false, err
		}
	} else if resp.IsClientError() {
		p.metrics.observeAttempt(outcomeClientError)
		return false, &PollError{Kind: KindClientError, URI: uri, Status: resp.StatusCode, Cause: newRestError(resp, nil)}
	} else {
		p.metrics.observeAttempt(outcomePending)
	}

	return h.IsDone(), nil
}

// Poll polls h until it is done and returns its result. A positive timeout bounds the
// total wait; it is checked between attempts and does not abort a request in flight.
// Cancelling ctx while waiting between attempts ends polling with KindInterrupted and
// leaves the handler as it was.
func Poll[P, R any](ctx context.Context, p *Poller, h PollHandler[P, R], timeout time.Duration) (R, error) {
	var zero R
	if p == nil {
		return zero, ErrNilPoller
	}
	if h == nil {
		return zero, ErrNilHandler
	}

	start := p.now()
	result, err := poll(ctx, p, h, timeout, start)
	p.metrics.observeWait(resultLabel(err), p.now().Sub(start))
	return result, err
}

func poll[P, R any](ctx context.Context, p *Poller, h PollHandler[P, R], timeout time.Duration, start time.Time) (R, error) {
	var zero R
	for attempt := 1; ; attempt++ {
		done, err := PollOnce(ctx, p, h)
		if err != nil {
			return zero, err
		}
		if done {
			return h.Result(), nil
		}

		if timeout > 0 && p.now().Sub(start) > timeout {
			return zero, &PollError{
				Kind:  KindTimeout,
				URI:   h.PollingURI(),
				Cause: fmt.Errorf("not finished after %s (%d attempts)", timeout, attempt),
			}
		}

		if err := p.wait(ctx, p.interval); err != nil {
			return zero, &PollError{Kind: KindInterrupted, URI: h.PollingURI(), Cause: err}
		}
	}
}

// get issues one GET for uri. A nil RestError means a non-5xx response was received.
func (p *Poller) get(ctx context.Context, uri string) (*Response, *RestError) {
	fetch := func() (*resty.Response, error) {
		resp, err := p.rest.R().SetContext(ctx).Get(uri)
		if err != nil {
			return resp, err
		}
		if resp.StatusCode() >= 500 {
			return resp, errServerStatus
		}
		return resp, nil
	}

	var (
		resp *resty.Response
		err  error
	)
	if p.breaker != nil {
		resp, err = p.breaker.Execute(fetch)
	} else {
		resp, err = fetch()
	}

	if errors.Is(err, errServerStatus) {
		return nil, newRestError(newResponse(resp), nil)
	}
	if err != nil {
		return nil, newRestError(newResponse(resp), err)
	}
	return newResponse(resp), nil
}

// waitForNextPoll blocks for d or until ctx is done.
func waitForNextPoll(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
