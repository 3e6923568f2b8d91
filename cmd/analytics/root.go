package main

import (
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	client "github.com/hsn0918/analytics-client"
)

type cliOptions struct {
	configPath string
	cfg        *Config
	log        zerolog.Logger
	registry   *prometheus.Registry
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{log: zerolog.Nop()}

	cmd := &cobra.Command{
		Use:           "analytics",
		Short:         "Analytics platform API CLI helper",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.load(cmd)
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return opts.flushMetrics()
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "Path to a YAML config file (or set "+configPathEnvVar+")")
	flags.String("base-url", client.DefaultBaseURL, "Base URL of the platform API")
	flags.String("token", "", "Bearer token for API requests (or set ANALYTICS_TOKEN)")
	flags.Duration("timeout", client.DefaultTimeout, "HTTP timeout for API requests")
	flags.Duration("poll-interval", client.DefaultPollInterval, "Sleep between two poll requests")
	flags.Duration("processing-timeout", client.ProcessingTimeout, "Timeout for long running operations, 0 waits forever")
	flags.String("fail-log", defaultFailLog, "Path to write failed task logs")
	flags.String("log-level", defaultLogLevel, "Log level: trace|debug|info|warn|error|disabled")
	flags.String("log-format", defaultLogFormat, "Log format: console|json")
	flags.Float64("rate-limit", 0, "Maximum requests per second, 0 disables limiting")
	flags.Int("rate-burst", defaultRateBurst, "Request burst allowed by --rate-limit")
	flags.String("metrics-file", "", "Write polling metrics in Prometheus text format to this file")

	cmd.AddCommand(newPollCmd(opts))
	cmd.AddCommand(newExportCmd(opts))
	cmd.AddCommand(newModelCmd(opts))
	cmd.AddCommand(newETLCmd(opts))
	cmd.AddCommand(newProjectCmd(opts))
	cmd.AddCommand(newCompletionCmd())

	return cmd
}

func (o *cliOptions) load(cmd *cobra.Command) error {
	path := o.configPath
	if path == "" {
		path = os.Getenv(configPathEnvVar)
	}

	cfg, err := loadConfig(path, cmd.Flags())
	if err != nil {
		return err
	}
	o.cfg = cfg
	o.log = newLogger(cmd.OutOrStdout(), cfg.LogLevel, cfg.LogFormat)
	if cfg.MetricsFile != "" {
		o.registry = prometheus.NewRegistry()
	}
	return nil
}

func (o *cliOptions) newClient() client.Client {
	var reg prometheus.Registerer
	if o.registry != nil {
		reg = o.registry
	}
	return buildClient(o.cfg, o.log, reg)
}

func (o *cliOptions) flushMetrics() error {
	if o.registry == nil || o.cfg == nil || o.cfg.MetricsFile == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(o.cfg.MetricsFile, o.registry); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	return nil
}

// fail records err for target in the fail log and returns it.
func (o *cliOptions) fail(target string, err error) error {
	failLog := defaultFailLog
	if o.cfg != nil {
		failLog = o.cfg.FailLog
	}
	if logErr := logFailure(failLog, requestIDOf(err), target, err); logErr != nil {
		return fmt.Errorf("%w; also failed to write fail log: %v", err, logErr)
	}
	return err
}
