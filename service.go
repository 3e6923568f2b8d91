package client

import (
	"context"
	"fmt"
	"net/url"
)

// execute issues one request and decodes a 2xx body into result whatever its content type.
// Non-2xx responses and transport failures become a *RestError wrapped with operation.
func (c *client) execute(ctx context.Context, operation Operation, method, uri string, body, result any) (*Response, error) {
	req := c.restyClient.R().SetContext(ctx)
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, uri)
	if err != nil {
		return nil, errOperation(operation, newRestError(newResponse(resp), err))
	}

	r := newResponse(resp)
	if !resp.IsSuccess() {
		return nil, errOperation(operation, newRestError(r, nil))
	}

	if result != nil && len(r.Body) > 0 {
		if err := r.JSON(result); err != nil {
			return nil, errOperation(operation, fmt.Errorf("decode response: %w", err))
		}
	}

	c.logger.Debug().
		Str("operation", string(operation)).
		Str("uri", uri).
		Int("status", r.StatusCode).
		Str("request-id", r.RequestID).
		Msg("request completed")

	return r, nil
}

// PollURI returns a future whose result is the body of the first HTTP 200 returned by uri.
func (c *client) PollURI(uri string) FutureResult[[]byte] {
	return NewPollResult(c.poller, NewSimplePollHandler[[]byte](uri))
}

// AwaitURI returns a future completed by the first HTTP 200 or 204 returned by uri.
func (c *client) AwaitURI(uri string) FutureResult[NoContent] {
	return NewPollResult(c.poller, NewCompletionPollHandler(uri))
}

func expandEndpoint(template, projectID string) string {
	return fmt.Sprintf(template, url.PathEscape(projectID))
}
