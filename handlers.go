package client

import (
	"fmt"
	"net/http"
)

// SimplePollHandler records the decoded payload of the first HTTP 200 as the result.
type SimplePollHandler[T any] struct {
	*BasePollHandler[T]
}

func NewSimplePollHandler[T any](uri string) *SimplePollHandler[T] {
	return &SimplePollHandler[T]{BasePollHandler: NewBasePollHandler[T](uri)}
}

func (h *SimplePollHandler[T]) HandlePollResult(data T) error {
	h.SetResult(data)
	return nil
}

// CompletionPollHandler finishes on HTTP 200 or 204 without reading the body.
type CompletionPollHandler struct {
	*BasePollHandler[NoContent]
}

func NewCompletionPollHandler(uri string) *CompletionPollHandler {
	return &CompletionPollHandler{BasePollHandler: NewBasePollHandler[NoContent](uri)}
}

func (h *CompletionPollHandler) IsFinished(resp *Response) bool {
	return resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusNoContent
}

func (h *CompletionPollHandler) HandlePollResult(data NoContent) error {
	h.SetResult(data)
	return nil
}

// TaskStatusPollHandler polls a wTaskStatus resource. The server answers 200 for
// running tasks too, so a response is finished only once the status leaves RUNNING.
type TaskStatusPollHandler struct {
	*BasePollHandler[TaskStatus]
}

func NewTaskStatusPollHandler(uri string) *TaskStatusPollHandler {
	return &TaskStatusPollHandler{BasePollHandler: NewBasePollHandler[TaskStatus](uri)}
}

// IsFinished peeks at the buffered body. A body that cannot be decoded finishes
// polling so the decode error reaches the caller.
func (h *TaskStatusPollHandler) IsFinished(resp *Response) bool {
	if resp.StatusCode != http.StatusOK {
		return false
	}
	var data TaskStatusResponse
	if err := resp.JSON(&data); err != nil {
		return true
	}
	return data.TaskStatus.Status != TaskStatusRunning
}

func (h *TaskStatusPollHandler) HandlePollResult(data TaskStatusResponse) error {
	status := data.TaskStatus
	if !status.IsSuccess() {
		return &TaskError{URI: h.PollingURI(), Status: status}
	}
	h.SetResult(status)
	return nil
}

// ExportPollHandler polls an export result. 202 means the export is still rendering,
// 200 carries the exported bytes and 204 means the report produced no data.
type ExportPollHandler struct {
	*BasePollHandler[[]byte]
	lastStatus int
}

func NewExportPollHandler(uri string) *ExportPollHandler {
	return &ExportPollHandler{BasePollHandler: NewBasePollHandler[[]byte](uri)}
}

func (h *ExportPollHandler) IsFinished(resp *Response) bool {
	h.lastStatus = resp.StatusCode
	return resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusNoContent
}

func (h *ExportPollHandler) HandlePollResult(data []byte) error {
	if h.lastStatus == http.StatusNoContent {
		return fmt.Errorf("export %s: %w", h.PollingURI(), ErrNoDataExport)
	}
	h.SetResult(data)
	return nil
}

// ProjectPollHandler waits for a newly created project to become ENABLED.
type ProjectPollHandler struct {
	*BasePollHandler[*Project]
}

func NewProjectPollHandler(uri string) *ProjectPollHandler {
	return &ProjectPollHandler{BasePollHandler: NewBasePollHandler[*Project](uri)}
}

func (h *ProjectPollHandler) HandlePollResult(data ProjectResponse) error {
	project := data.Project
	switch project.Content.State {
	case ProjectStateEnabled:
		h.SetResult(&project)
		return nil
	case ProjectStateDeleted, ProjectStateArchived, ProjectStateDisabled:
		return fmt.Errorf("project %s is %s: %w", h.PollingURI(), project.Content.State, ErrProjectCreation)
	default:
		return nil
	}
}

var (
	_ PollHandler[[]byte, []byte]                 = (*SimplePollHandler[[]byte])(nil)
	_ PollHandler[NoContent, NoContent]           = (*CompletionPollHandler)(nil)
	_ PollHandler[TaskStatusResponse, TaskStatus] = (*TaskStatusPollHandler)(nil)
	_ PollHandler[[]byte, []byte]                 = (*ExportPollHandler)(nil)
	_ PollHandler[ProjectResponse, *Project]      = (*ProjectPollHandler)(nil)
)
