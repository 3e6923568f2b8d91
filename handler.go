package client

import (
	"bytes"
	"fmt"
	"net/http"
	"sync"

	"github.com/goccy/go-json"
)

// NoContent is the poll payload type of handlers that do not want the response body decoded.
type NoContent struct{}

// PollHandler defines how one asynchronous operation is recognized as finished and
// how its result is extracted. P is the payload decoded from the finishing response,
// R the final result. Handlers perform no I/O; polling is driven by PollOnce and Poll.
type PollHandler[P, R any] interface {
	// PollingURI returns the URI polled for the whole lifetime of the handler.
	PollingURI() string
	// IsFinished reports whether the response ends polling.
	IsFinished(resp *Response) bool
	// IsDone reports whether a result has been recorded.
	IsDone() bool
	// Result returns the recorded result, the zero value before IsDone.
	Result() R
	// HandlePollResult receives the payload decoded from a finishing response.
	HandlePollResult(data P) error
	// HandlePollException receives a transport-level failure and must return a non-nil error.
	HandlePollException(err *RestError) error
}

// BasePollHandler keeps the completion state of a handler. Concrete handlers embed it
// and implement HandlePollResult.
//
// The result is a set-once cell: the first SetResult wins and later calls are ignored.
// The cell is mutex guarded, but nothing prevents two goroutines polling the same
// handler from both issuing requests; a handler must have a single poller.
type BasePollHandler[R any] struct {
	uri string

	mu     sync.Mutex
	done   bool
	result R
}

// NewBasePollHandler creates the state for a handler polling uri.
func NewBasePollHandler[R any](uri string) *BasePollHandler[R] {
	return &BasePollHandler[R]{uri: uri}
}

func (h *BasePollHandler[R]) PollingURI() string {
	return h.uri
}

// IsFinished finishes polling on HTTP 200.
func (h *BasePollHandler[R]) IsFinished(resp *Response) bool {
	return resp.StatusCode == http.StatusOK
}

func (h *BasePollHandler[R]) IsDone() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.done
}

func (h *BasePollHandler[R]) Result() R {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.result
}

// SetResult records the result and marks the handler done. It reports false when a
// result was already recorded, in which case the stored value is kept.
func (h *BasePollHandler[R]) SetResult(result R) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.done {
		return false
	}
	h.result = result
	h.done = true
	return true
}

// HandlePollException converts a transport failure into a poll error.
func (h *BasePollHandler[R]) HandlePollException(err *RestError) error {
	return &PollError{Kind: KindTransport, URI: h.uri, Status: err.StatusCode, Cause: err}
}

// decodePayload decodes a finishing response into the poll payload type.
// NoContent skips decoding and []byte receives the raw body.
func decodePayload[P any](resp *Response) (P, error) {
	var data P
	switch target := any(&data).(type) {
	case *NoContent:
		return data, nil
	case *[]byte:
		*target = bytes.Clone(resp.Body)
		return data, nil
	}

	if len(bytes.TrimSpace(resp.Body)) == 0 {
		return data, nil
	}
	if err := json.Unmarshal(resp.Body, &data); err != nil {
		return data, fmt.Errorf("decode %T: %w", data, err)
	}
	return data, nil
}
