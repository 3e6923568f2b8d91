package client

import (
	"context"

	"github.com/go-resty/resty/v2"
)

// UpdateProjectModel executes a MAQL DDL script and returns a future of the task status.
func (c *client) UpdateProjectModel(ctx context.Context, projectID, maql string) (FutureResult[TaskStatus], error) {
	if projectID == "" {
		return nil, ErrEmptyProjectID
	}

	if maql == "" {
		return nil, ErrEmptyMAQL
	}

	var req ModelManageRequest
	req.Manage.MAQL = maql

	var result LinkEntries
	if _, err := c.execute(ctx, OperationUpdateModel, resty.MethodPost, expandEndpoint(EndpointModelManage, projectID), req, &result); err != nil {
		return nil, err
	}

	for _, entry := range result.Entries {
		if entry.Category == linkCategoryTasksStatus && entry.Link != "" {
			return NewPollResult(c.poller, NewTaskStatusPollHandler(entry.Link)), nil
		}
	}

	return nil, errOperation(OperationUpdateModel, ErrMissingPollLink)
}
