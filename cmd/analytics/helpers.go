package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	client "github.com/hsn0918/analytics-client"
)

func buildClient(cfg *Config, logger zerolog.Logger, reg prometheus.Registerer) client.Client {
	options := []client.Option{
		client.WithBaseURL(cfg.BaseURL),
		client.WithTimeout(cfg.Timeout),
		client.WithAuthToken(cfg.Token),
		client.WithPollInterval(cfg.PollInterval),
		client.WithProcessingTimeout(cfg.ProcessingTimeout),
		client.WithLogger(logger),
	}
	if cfg.RateLimit > 0 {
		options = append(options, client.WithRateLimit(cfg.RateLimit, cfg.RateBurst))
	}
	if reg != nil {
		options = append(options, client.WithMetrics(reg))
	}
	return client.NewClient(options...)
}

func parseExportFormat(format string) (client.ExportFormat, error) {
	switch strings.ToLower(format) {
	case string(client.FormatCSV):
		return client.FormatCSV, nil
	case string(client.FormatXLS):
		return client.FormatXLS, nil
	case string(client.FormatXLSX):
		return client.FormatXLSX, nil
	case string(client.FormatPDF):
		return client.FormatPDF, nil
	default:
		return "", fmt.Errorf("unsupported export format: %s", format)
	}
}

// requestIDOf returns the request id carried by a failed platform call.
func requestIDOf(err error) string {
	var restErr *client.RestError
	if errors.As(err, &restErr) {
		return restErr.RequestID
	}
	return ""
}

// outputName derives a file name from the last segment of a URI.
func outputName(uri, ext string) string {
	base := path.Base(strings.TrimRight(uri, "/"))
	if base == "." || base == "/" || base == "" {
		base = "result"
	}
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return base + ext
}

func writeFile(target string, data []byte) error {
	if dir := filepath.Dir(target); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

// readInput reads a file, or standard input when name is "-".
func readInput(name string, stdin io.Reader) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(stdin)
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return data, nil
}
