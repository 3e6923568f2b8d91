package client

import (
	"context"

	"github.com/go-resty/resty/v2"
)

const (
	defaultProjectDriver      = "Pg"
	defaultProjectEnvironment = "PRODUCTION"
)

// CreateProject submits a new project and returns a future completed once it is ENABLED.
func (c *client) CreateProject(ctx context.Context, req ProjectRequest) (FutureResult[*Project], error) {
	if req.Title == "" {
		return nil, ErrEmptyTitle
	}

	if req.AuthorizationToken == "" {
		return nil, ErrEmptyAuthToken
	}

	if req.Driver == "" {
		req.Driver = defaultProjectDriver
	}

	if req.Environment == "" {
		req.Environment = defaultProjectEnvironment
	}

	var body ProjectResponse
	body.Project.Meta.Title = req.Title
	body.Project.Meta.Summary = req.Summary
	body.Project.Content.AuthorizationToken = req.AuthorizationToken
	body.Project.Content.Driver = req.Driver
	body.Project.Content.Environment = req.Environment
	body.Project.Content.GuidedNavigation = "1"

	var result URIResponse
	if _, err := c.execute(ctx, OperationCreateProject, resty.MethodPost, EndpointProjects, body, &result); err != nil {
		return nil, err
	}

	if result.URI == "" {
		return nil, errOperation(OperationCreateProject, ErrMissingPollLink)
	}

	return NewPollResult(c.poller, NewProjectPollHandler(result.URI)), nil
}

// GetProject fetches the project at uri.
func (c *client) GetProject(ctx context.Context, uri string) (*Project, error) {
	if uri == "" {
		return nil, ErrEmptyURI
	}

	var result ProjectResponse
	if _, err := c.execute(ctx, OperationGetProject, resty.MethodGet, uri, nil, &result); err != nil {
		return nil, err
	}

	return &result.Project, nil
}

// RemoveProject deletes the project at uri.
func (c *client) RemoveProject(ctx context.Context, uri string) error {
	if uri == "" {
		return ErrEmptyURI
	}

	_, err := c.execute(ctx, OperationRemoveProject, resty.MethodDelete, uri, nil, nil)
	return err
}
