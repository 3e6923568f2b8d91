package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
)

// step is one canned response of a sequenceServer.
type step struct {
	status int
	body   string
	header map[string]string
}

// sequenceServer answers successive requests with its steps, repeating the last one.
type sequenceServer struct {
	*httptest.Server

	mu    sync.Mutex
	steps []step
	hits  int
}

func newSequenceServer(t *testing.T, steps ...step) *sequenceServer {
	t.Helper()

	s := &sequenceServer{steps: steps}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		idx := s.hits
		if idx >= len(s.steps) {
			idx = len(s.steps) - 1
		}
		s.hits++
		st := s.steps[idx]
		s.mu.Unlock()

		for k, v := range st.header {
			w.Header().Set(k, v)
		}
		w.WriteHeader(st.status)
		_, _ = w.Write([]byte(st.body))
	}))
	t.Cleanup(s.Close)
	return s
}

func (s *sequenceServer) Hits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits
}

// sleepRecorder replaces the poller's wait and records requested sleeps.
type sleepRecorder struct {
	mu     sync.Mutex
	sleeps []time.Duration
}

func (r *sleepRecorder) wait(ctx context.Context, d time.Duration) error {
	r.mu.Lock()
	r.sleeps = append(r.sleeps, d)
	r.mu.Unlock()
	return ctx.Err()
}

func (r *sleepRecorder) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sleeps)
}

// newTestPoller returns a poller against baseURL that never really sleeps.
func newTestPoller(baseURL string) (*Poller, *sleepRecorder) {
	p := NewPoller(resty.New().SetBaseURL(baseURL), time.Second)
	rec := &sleepRecorder{}
	p.wait = rec.wait
	return p, rec
}

// silentHandler violates the contract by swallowing transport failures.
type silentHandler struct {
	*SimplePollHandler[[]byte]
}

func (h *silentHandler) HandlePollException(*RestError) error {
	return nil
}
