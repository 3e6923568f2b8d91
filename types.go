package client

import (
	"fmt"
	"path"
	"strings"
)

// ExportFormat enumerates supported report export formats.
type ExportFormat string

const (
	FormatCSV  ExportFormat = "csv"
	FormatXLS  ExportFormat = "xls"
	FormatXLSX ExportFormat = "xlsx"
	FormatPDF  ExportFormat = "pdf"
)

// Operation names service calls in errors and logs.
type Operation string

const (
	OperationExportReport  Operation = "export report"
	OperationUpdateModel   Operation = "update project model"
	OperationPullETL       Operation = "etl pull"
	OperationCreateProject Operation = "create project"
	OperationGetProject    Operation = "get project"
	OperationRemoveProject Operation = "remove project"
)

// URIResponse is the common {"uri": ...} reply of asynchronous submissions.
type URIResponse struct {
	URI string `json:"uri"`
}

// ExportRequest asks the exporter to render a report.
type ExportRequest struct {
	ResultReq struct {
		Format ExportFormat `json:"format"`
		Report string       `json:"report"`
	} `json:"result_req"`
}

// TaskMessage is one localized message of a task status, keyed by level (error, warning, info).
type TaskMessage map[string]struct {
	Message    string `json:"message"`
	Parameters []any  `json:"parameters,omitempty"`
}

// TaskStatus is the state of a server side task.
type TaskStatus struct {
	Status   string        `json:"status"`
	Messages []TaskMessage `json:"messages,omitempty"`
	Links    *struct {
		Poll string `json:"poll"`
	} `json:"links,omitempty"`
}

// TaskStatusResponse wraps a task status resource.
type TaskStatusResponse struct {
	TaskStatus TaskStatus `json:"wTaskStatus"`
}

// IsSuccess reports a finished task without errors.
func (s TaskStatus) IsSuccess() bool {
	return s.Status == TaskStatusOK || s.Status == TaskStatusWarning
}

// IsFinished reports a task that is no longer running.
func (s TaskStatus) IsFinished() bool {
	return s.Status != "" && s.Status != TaskStatusRunning
}

// MessageText joins all messages into a single line.
func (s TaskStatus) MessageText() string {
	var parts []string
	for _, msg := range s.Messages {
		for level, m := range msg {
			text := (&RestError{Message: m.Message, Parameters: m.Parameters}).formattedMessage()
			parts = append(parts, level+": "+text)
		}
	}
	return strings.Join(parts, "; ")
}

// TaskError reports a task that finished in the ERROR state.
type TaskError struct {
	URI    string
	Status TaskStatus
}

func (e *TaskError) Error() string {
	if text := e.Status.MessageText(); text != "" {
		return fmt.Sprintf("task %s finished with status %s: %s", e.URI, e.Status.Status, text)
	}
	return fmt.Sprintf("task %s finished with status %s", e.URI, e.Status.Status)
}

// ModelManageRequest carries a MAQL DDL script.
type ModelManageRequest struct {
	Manage struct {
		MAQL string `json:"maql"`
	} `json:"manage"`
}

// LinkEntries lists links returned by asynchronous submissions.
type LinkEntries struct {
	Entries []struct {
		Link     string `json:"link"`
		Category string `json:"category"`
	} `json:"entries"`
}

// PullRequest asks the platform to load data uploaded to dir.
type PullRequest struct {
	PullIntegration string `json:"pullIntegration"`
}

// PullTaskResponse is the reply to a PullRequest.
type PullTaskResponse struct {
	PullTask struct {
		Links struct {
			Poll string `json:"poll"`
		} `json:"links"`
	} `json:"pull2Task"`
}

// Project is a workspace on the platform.
type Project struct {
	Content struct {
		AuthorizationToken string `json:"authorizationToken,omitempty"`
		Driver             string `json:"driver,omitempty"`
		Environment        string `json:"environment,omitempty"`
		GuidedNavigation   string `json:"guidedNavigation,omitempty"`
		State              string `json:"state,omitempty"`
	} `json:"content"`
	Meta struct {
		Title   string `json:"title"`
		Summary string `json:"summary,omitempty"`
		Created string `json:"created,omitempty"`
		Updated string `json:"updated,omitempty"`
	} `json:"meta"`
	Links *struct {
		Self string `json:"self"`
	} `json:"links,omitempty"`
}

// ProjectResponse wraps a project resource.
type ProjectResponse struct {
	Project Project `json:"project"`
}

// URI returns the self link of the project.
func (p *Project) URI() string {
	if p.Links == nil {
		return ""
	}
	return p.Links.Self
}

// ID returns the last segment of the project URI.
func (p *Project) ID() string {
	if uri := p.URI(); uri != "" {
		return path.Base(uri)
	}
	return ""
}

// ProjectRequest describes a project to create.
type ProjectRequest struct {
	Title              string
	Summary            string
	AuthorizationToken string
	// Driver defaults to "Pg".
	Driver string
	// Environment defaults to "PRODUCTION".
	Environment string
}
