package client

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  *RestError
		want string
	}{
		{
			name: "transport",
			err:  &RestError{Cause: errors.New("connection refused")},
			want: "request failed (request-id: unknown): connection refused",
		},
		{
			name: "status only",
			err:  &RestError{StatusCode: 502, Status: "502 Bad Gateway", RequestID: "r1"},
			want: "request failed with status 502: 502 Bad Gateway (request-id: r1)",
		},
		{
			name: "parameters",
			err: &RestError{
				StatusCode: 400,
				Message:    "Project %s has no dataset %s",
				Parameters: []any{"p1", "orders"},
			},
			want: "request failed with status 400: Project p1 has no dataset orders (request-id: unknown)",
		},
		{
			name: "missing parameter",
			err:  &RestError{StatusCode: 400, Message: "%s and %s", Parameters: []any{"a"}},
			want: "request failed with status 400: a and %s (request-id: unknown)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestNewRestErrorDecodesEnvelope(t *testing.T) {
	resp := &Response{
		StatusCode: http.StatusBadRequest,
		Status:     "400 Bad Request",
		RequestID:  "from-header",
		Body: []byte(`{"error":{"message":"bad %s","parameters":["maql"],"errorClass":"InvalidMAQL",` +
			`"component":"md","errorId":"e-1","errorCode":"gdc.md.maql","requestId":"from-body"}}`),
	}

	err := newRestError(resp, nil)

	assert.Equal(t, http.StatusBadRequest, err.StatusCode)
	assert.Equal(t, "from-body", err.RequestID)
	assert.Equal(t, "InvalidMAQL", err.ErrorClass)
	assert.Equal(t, "md", err.Component)
	assert.Equal(t, "e-1", err.ErrorID)
	assert.Equal(t, "gdc.md.maql", err.ErrorCode)
	assert.Equal(t, "request failed with status 400: bad maql (request-id: from-body)", err.Error())
}

func TestNewRestErrorIgnoresForeignBody(t *testing.T) {
	resp := &Response{StatusCode: 500, Status: "500 Internal Server Error", RequestID: "r1", Body: []byte("<html>oops</html>")}

	err := newRestError(resp, nil)

	assert.Empty(t, err.Message)
	assert.Equal(t, "r1", err.RequestID)
	assert.Nil(t, newRestError(nil, nil).Cause)
}

func TestPollErrorKinds(t *testing.T) {
	all := []error{ErrPollTransport, ErrClientStatus, ErrPollTimeout, ErrPollInterrupted, ErrHandlerContract}
	kinds := []ErrorKind{KindTransport, KindClientError, KindTimeout, KindInterrupted, KindHandlerContract}

	for i, kind := range kinds {
		t.Run(kind.String(), func(t *testing.T) {
			err := error(&PollError{Kind: kind, URI: "/gdc/tasks/1"})
			for j, sentinel := range all {
				assert.Equal(t, i == j, errors.Is(err, sentinel), "sentinel %v", sentinel)
			}
		})
	}
}

func TestPollErrorMessage(t *testing.T) {
	tests := []struct {
		err  *PollError
		want string
	}{
		{
			err:  &PollError{Kind: KindClientError, URI: "/t", Status: 404},
			want: "polling /t returned client error HTTP status 404",
		},
		{
			err:  &PollError{Kind: KindTimeout, URI: "/t"},
			want: "polling /t timed out",
		},
		{
			err:  &PollError{Kind: KindInterrupted, URI: "/t", Cause: context.Canceled},
			want: "polling /t was interrupted: context canceled",
		},
		{
			err:  &PollError{Kind: KindHandlerContract, URI: "/t", Handler: "*client.myHandler"},
			want: "polling /t: handler *client.myHandler didn't handle exception",
		},
		{
			err:  &PollError{Kind: KindTransport, URI: "/t"},
			want: "polling /t failed",
		},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.err.Error())
	}
}

func TestPollErrorUnwrapsCause(t *testing.T) {
	restErr := &RestError{StatusCode: 503}
	err := error(&PollError{Kind: KindTransport, URI: "/t", Cause: restErr})

	var got *RestError
	require.ErrorAs(t, err, &got)
	assert.Same(t, restErr, got)
	assert.Equal(t, "transport", resultLabel(err))
	assert.Equal(t, "client_error", resultLabel(&PollError{Kind: KindClientError}))
	assert.Equal(t, "handler_error", resultLabel(errors.New("boom")))
	assert.Equal(t, "done", resultLabel(nil))
}

func TestErrOperation(t *testing.T) {
	err := errOperation(OperationPullETL, ErrMissingPollLink)
	assert.ErrorIs(t, err, ErrMissingPollLink)
	assert.Equal(t, "etl pull failed: response does not contain a polling link", err.Error())
}
