package client

import (
	"context"
	"fmt"
	"io"

	"github.com/go-resty/resty/v2"
)

// ExportReport submits a report export and returns a future of the exported bytes.
func (c *client) ExportReport(ctx context.Context, reportURI string, format ExportFormat) (FutureResult[[]byte], error) {
	if reportURI == "" {
		return nil, ErrEmptyURI
	}

	if format == "" {
		return nil, ErrEmptyExportFormat
	}

	var req ExportRequest
	req.ResultReq.Format = format
	req.ResultReq.Report = reportURI

	var result URIResponse
	if _, err := c.execute(ctx, OperationExportReport, resty.MethodPost, EndpointExportExecutor, req, &result); err != nil {
		return nil, err
	}

	if result.URI == "" {
		return nil, errOperation(OperationExportReport, ErrMissingPollLink)
	}

	return NewPollResult(c.poller, NewExportPollHandler(result.URI)), nil
}

// ExportReportTo exports a report and writes it to w, waiting at most the processing timeout.
func (c *client) ExportReportTo(ctx context.Context, reportURI string, format ExportFormat, w io.Writer) error {
	if w == nil {
		return ErrNilWriter
	}

	future, err := c.ExportReport(ctx, reportURI, format)
	if err != nil {
		return err
	}

	data, err := future.GetWithTimeout(ctx, c.processingTimeout)
	if err != nil {
		return err
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write export of %s failed: %w", reportURI, err)
	}

	return nil
}
