package client

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

var (
	ErrEmptyURI          = errors.New("uri cannot be empty")
	ErrEmptyProjectID    = errors.New("project id cannot be empty")
	ErrEmptyMAQL         = errors.New("maql cannot be empty")
	ErrEmptyPullDir      = errors.New("pull directory cannot be empty")
	ErrEmptyExportFormat = errors.New("export format cannot be empty")
	ErrEmptyTitle        = errors.New("project title cannot be empty")
	ErrEmptyAuthToken    = errors.New("project authorization token cannot be empty")
	ErrNilHandler        = errors.New("poll handler cannot be nil")
	ErrNilPoller         = errors.New("poller cannot be nil")
	ErrNilWriter         = errors.New("writer cannot be nil")
	ErrMissingPollLink   = errors.New("response does not contain a polling link")
	ErrNoDataExport      = errors.New("export returned no data")
	ErrProjectCreation   = errors.New("project creation failed")
)

// Sentinels matched by errors.Is against a *PollError of the corresponding kind.
var (
	ErrPollTransport   = errors.New("poll transport failure")
	ErrClientStatus    = errors.New("poll returned client error status")
	ErrPollTimeout     = errors.New("poll timed out")
	ErrPollInterrupted = errors.New("poll interrupted")
	ErrHandlerContract = errors.New("poll handler did not raise an error")
)

// ErrorKind classifies poll failures.
type ErrorKind int

const (
	KindTransport ErrorKind = iota + 1
	KindClientError
	KindTimeout
	KindInterrupted
	KindHandlerContract
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindClientError:
		return "client error"
	case KindTimeout:
		return "timeout"
	case KindInterrupted:
		return "interrupted"
	case KindHandlerContract:
		return "handler contract"
	default:
		return "unknown"
	}
}

func (k ErrorKind) sentinel() error {
	switch k {
	case KindTransport:
		return ErrPollTransport
	case KindClientError:
		return ErrClientStatus
	case KindTimeout:
		return ErrPollTimeout
	case KindInterrupted:
		return ErrPollInterrupted
	case KindHandlerContract:
		return ErrHandlerContract
	default:
		return nil
	}
}

// PollError is returned for every failure of a polling operation.
type PollError struct {
	Kind ErrorKind
	// URI is the polling URI of the handler.
	URI string
	// Status is the HTTP status of the last response, zero when none was received.
	Status int
	// Handler names the handler type for contract violations.
	Handler string
	Cause   error
}

func (e *PollError) Error() string {
	var b strings.Builder
	b.WriteString("polling ")
	b.WriteString(e.URI)
	switch e.Kind {
	case KindClientError:
		fmt.Fprintf(&b, " returned client error HTTP status %d", e.Status)
	case KindTimeout:
		b.WriteString(" timed out")
	case KindInterrupted:
		b.WriteString(" was interrupted")
	case KindHandlerContract:
		fmt.Fprintf(&b, ": handler %s didn't handle exception", e.Handler)
	default:
		b.WriteString(" failed")
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

func (e *PollError) Unwrap() error {
	return e.Cause
}

// Is matches the sentinel of the error's kind.
func (e *PollError) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}

// RestError describes a failed HTTP exchange with the platform.
type RestError struct {
	StatusCode int
	Status     string
	RequestID  string
	Message    string
	Parameters []any
	ErrorClass string
	Component  string
	ErrorID    string
	ErrorCode  string
	// Cause is set when no response was received.
	Cause error
}

type errorEnvelope struct {
	Error *struct {
		Message    string `json:"message"`
		Parameters []any  `json:"parameters"`
		ErrorClass string `json:"errorClass"`
		Component  string `json:"component"`
		ErrorID    string `json:"errorId"`
		ErrorCode  string `json:"errorCode"`
		RequestID  string `json:"requestId"`
	} `json:"error"`
}

func (e *RestError) Error() string {
	requestID := normalizeRequestID(e.RequestID)
	if e.Cause != nil && e.StatusCode == 0 {
		return fmt.Sprintf("request failed (request-id: %s): %v", requestID, e.Cause)
	}

	msg := e.formattedMessage()
	if msg == "" {
		return fmt.Sprintf("request failed with status %d: %s (request-id: %s)", e.StatusCode, e.Status, requestID)
	}
	return fmt.Sprintf("request failed with status %d: %s (request-id: %s)", e.StatusCode, msg, requestID)
}

func (e *RestError) Unwrap() error {
	return e.Cause
}

// formattedMessage substitutes %s placeholders with the error parameters in order.
func (e *RestError) formattedMessage() string {
	if len(e.Parameters) == 0 {
		return e.Message
	}
	parts := strings.Split(e.Message, "%s")
	var b strings.Builder
	for i, part := range parts {
		b.WriteString(part)
		if i == len(parts)-1 {
			break
		}
		if i < len(e.Parameters) {
			fmt.Fprint(&b, e.Parameters[i])
		} else {
			b.WriteString("%s")
		}
	}
	return b.String()
}

// newRestError builds a RestError from a buffered response, a transport error, or both.
func newRestError(resp *Response, cause error) *RestError {
	restErr := &RestError{Cause: cause}
	if resp == nil {
		return restErr
	}

	restErr.StatusCode = resp.StatusCode
	restErr.Status = resp.Status
	restErr.RequestID = resp.RequestID

	var envelope errorEnvelope
	if len(resp.Body) > 0 && json.Unmarshal(resp.Body, &envelope) == nil && envelope.Error != nil {
		restErr.Message = envelope.Error.Message
		restErr.Parameters = envelope.Error.Parameters
		restErr.ErrorClass = envelope.Error.ErrorClass
		restErr.Component = envelope.Error.Component
		restErr.ErrorID = envelope.Error.ErrorID
		restErr.ErrorCode = envelope.Error.ErrorCode
		if envelope.Error.RequestID != "" {
			restErr.RequestID = envelope.Error.RequestID
		}
	}
	return restErr
}

// errOperation wraps a failure of a named service call.
func errOperation(operation Operation, err error) error {
	return fmt.Errorf("%s failed: %w", operation, err)
}

func normalizeRequestID(requestID string) string {
	if requestID == "" {
		return "unknown"
	}
	return requestID
}
