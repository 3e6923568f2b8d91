package client

import (
	"context"
	"io"
)

// Info provides metadata about the client
type Info interface {
	Name() string
	Version() string
}

// AsyncPoller exposes generic polling of arbitrary URIs
type AsyncPoller interface {
	Poller() *Poller
	PollURI(uri string) FutureResult[[]byte]
	AwaitURI(uri string) FutureResult[NoContent]
}

// Exporter handles report export operations
type Exporter interface {
	ExportReport(ctx context.Context, reportURI string, format ExportFormat) (FutureResult[[]byte], error)
	ExportReportTo(ctx context.Context, reportURI string, format ExportFormat, w io.Writer) error
}

// ModelManager handles logical data model operations
type ModelManager interface {
	UpdateProjectModel(ctx context.Context, projectID, maql string) (FutureResult[TaskStatus], error)
}

// DataLoader handles data load operations
type DataLoader interface {
	PullETL(ctx context.Context, projectID, dir string) (FutureResult[TaskStatus], error)
}

// ProjectManager handles project lifecycle operations
type ProjectManager interface {
	CreateProject(ctx context.Context, req ProjectRequest) (FutureResult[*Project], error)
	GetProject(ctx context.Context, uri string) (*Project, error)
	RemoveProject(ctx context.Context, uri string) error
}

// Client combines all platform operations
type Client interface {
	Info
	AsyncPoller
	Exporter
	ModelManager
	DataLoader
	ProjectManager
}
