package client

import (
	"net/http"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
)

// Response is a fully buffered HTTP response handed to poll handlers.
type Response struct {
	StatusCode int
	Status     string
	Header     http.Header
	Body       []byte
	// RequestID is the X-GDC-REQUEST id of the exchange.
	RequestID string
}

// newResponse copies status, headers and the already buffered body out of a resty response.
func newResponse(resp *resty.Response) *Response {
	if resp == nil || resp.RawResponse == nil {
		return nil
	}

	r := &Response{
		StatusCode: resp.StatusCode(),
		Status:     resp.Status(),
		Header:     resp.Header().Clone(),
		Body:       resp.Body(),
	}
	r.RequestID = r.Header.Get(RequestIDHeader)
	if r.RequestID == "" && resp.Request != nil {
		r.RequestID = resp.Request.Header.Get(RequestIDHeader)
	}
	return r
}

// JSON decodes the body into target.
func (r *Response) JSON(target any) error {
	return json.Unmarshal(r.Body, target)
}

// IsSuccess reports a 2xx status.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// IsClientError reports a 4xx status.
func (r *Response) IsClientError() bool {
	return r.StatusCode >= 400 && r.StatusCode < 500
}

// IsServerError reports a 5xx status.
func (r *Response) IsServerError() bool {
	return r.StatusCode >= 500
}
