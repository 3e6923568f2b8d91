package client

import (
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBasePollHandlerSetResultOnce(t *testing.T) {
	h := NewBasePollHandler[string]("/gdc/tasks/1")
	assert.False(t, h.IsDone())
	assert.Empty(t, h.Result())

	assert.True(t, h.SetResult("first"))
	assert.False(t, h.SetResult("second"))

	assert.True(t, h.IsDone())
	assert.Equal(t, "first", h.Result())
	assert.Equal(t, "/gdc/tasks/1", h.PollingURI())
}

func TestBasePollHandlerConcurrentSetResult(t *testing.T) {
	h := NewBasePollHandler[int]("/gdc/tasks/1")

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	for i := 1; i <= 50; i++ {
		wg.Add(1)
		go func(v int) {
			defer wg.Done()
			if h.SetResult(v) {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, wins)
	assert.True(t, h.IsDone())
	assert.NotZero(t, h.Result())
}

func TestBasePollHandlerIsFinished(t *testing.T) {
	h := NewBasePollHandler[[]byte]("/gdc/tasks/1")

	tests := []struct {
		status int
		want   bool
	}{
		{http.StatusOK, true},
		{http.StatusCreated, false},
		{http.StatusAccepted, false},
		{http.StatusNoContent, false},
		{http.StatusNotFound, false},
		{http.StatusInternalServerError, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, h.IsFinished(&Response{StatusCode: tt.status}), "status %d", tt.status)
	}
}

func TestBasePollHandlerHandlePollException(t *testing.T) {
	h := NewBasePollHandler[[]byte]("/gdc/tasks/1")
	restErr := &RestError{StatusCode: http.StatusBadGateway, Status: "502 Bad Gateway"}

	err := h.HandlePollException(restErr)
	require.Error(t, err)

	assert.ErrorIs(t, err, ErrPollTransport)
	var pollErr *PollError
	require.ErrorAs(t, err, &pollErr)
	assert.Equal(t, "/gdc/tasks/1", pollErr.URI)
	assert.Equal(t, http.StatusBadGateway, pollErr.Status)
	assert.Same(t, restErr, pollErr.Cause)
	assert.False(t, h.IsDone())
}

func TestDecodePayload(t *testing.T) {
	t.Run("struct", func(t *testing.T) {
		got, err := decodePayload[exportState](&Response{Body: []byte(`{"state":"ready"}`)})
		require.NoError(t, err)
		assert.Equal(t, "ready", got.State)
	})

	t.Run("raw bytes", func(t *testing.T) {
		body := []byte("a,b\n1,2\n")
		got, err := decodePayload[[]byte](&Response{Body: body})
		require.NoError(t, err)
		assert.Equal(t, body, got)

		body[0] = 'x'
		assert.Equal(t, byte('a'), got[0])
	})

	t.Run("no content", func(t *testing.T) {
		_, err := decodePayload[NoContent](&Response{Body: []byte("<html>")})
		assert.NoError(t, err)
	})

	t.Run("empty body", func(t *testing.T) {
		got, err := decodePayload[exportState](&Response{Body: []byte("  ")})
		require.NoError(t, err)
		assert.Zero(t, got)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := decodePayload[exportState](&Response{Body: []byte(`{"state":1}`)})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "decode client.exportState")
	})
}
