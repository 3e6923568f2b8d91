package client

import (
	"context"

	"github.com/go-resty/resty/v2"
)

// PullETL loads data previously uploaded to dir into the project and returns a future
// of the load task status.
func (c *client) PullETL(ctx context.Context, projectID, dir string) (FutureResult[TaskStatus], error) {
	if projectID == "" {
		return nil, ErrEmptyProjectID
	}

	if dir == "" {
		return nil, ErrEmptyPullDir
	}

	var result PullTaskResponse
	if _, err := c.execute(ctx, OperationPullETL, resty.MethodPost, expandEndpoint(EndpointETLPull, projectID), PullRequest{PullIntegration: dir}, &result); err != nil {
		return nil, err
	}

	if result.PullTask.Links.Poll == "" {
		return nil, errOperation(OperationPullETL, ErrMissingPollLink)
	}

	return NewPollResult(c.poller, NewTaskStatusPollHandler(result.PullTask.Links.Poll)), nil
}
