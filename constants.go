package client

import "time"

const (
	ServiceName         = "analytics"
	DefaultBaseURL      = "https://secure.gooddata.com"
	DefaultTimeout      = 1 * time.Minute
	ProcessingTimeout   = 30 * time.Minute
	DefaultPollInterval = 5 * time.Second
	APIVersion          = "gdc"
	RequestIDHeader     = "X-GDC-REQUEST"
	DefaultUserAgent    = "analytics-client/1.0"
)

// Task states reported by wTaskStatus resources.
const (
	TaskStatusOK      = "OK"
	TaskStatusError   = "ERROR"
	TaskStatusRunning = "RUNNING"
	TaskStatusWarning = "WARNING"
)

// Project states reported by the project resource.
const (
	ProjectStateEnabled   = "ENABLED"
	ProjectStateLoading   = "LOADING"
	ProjectStatePreparing = "PREPARING"
	ProjectStateDisabled  = "DISABLED"
	ProjectStateDeleted   = "DELETED"
	ProjectStateArchived  = "ARCHIVED"
)

// Link category of a model update task.
const linkCategoryTasksStatus = "tasks-status"

// API endpoints
const (
	EndpointProjects       = "/" + APIVersion + "/projects"
	EndpointExportExecutor = "/" + APIVersion + "/exporter/executor"
	EndpointModelManage    = "/" + APIVersion + "/md/%s/ldm/manage2"
	EndpointETLPull        = "/" + APIVersion + "/md/%s/etl/pull2"
)
