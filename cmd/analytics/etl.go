package main

import (
	"errors"

	"github.com/spf13/cobra"
)

func newETLCmd(opts *cliOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "etl",
		Short: "Load data into projects",
	}
	cmd.AddCommand(newETLPullCmd(opts))
	return cmd
}

type etlPullOptions struct {
	project string
	dir     string
	wait    bool
	opts    *cliOptions
}

func newETLPullCmd(opts *cliOptions) *cobra.Command {
	eo := &etlPullOptions{opts: opts}

	cmd := &cobra.Command{
		Use:               "pull",
		Short:             "Load previously uploaded data into a project",
		ValidArgsFunction: positionalAlwaysFlags,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return eo.run(cmd)
		},
	}

	cmd.Flags().StringVar(&eo.project, "project", "", "Project id")
	cmd.Flags().StringVar(&eo.dir, "dir", "", "Upload directory holding the data and its manifest")
	cmd.Flags().BoolVar(&eo.wait, "wait", true, "Wait for the load task to finish")

	return cmd
}

func (o *etlPullOptions) run(cmd *cobra.Command) error {
	if o.project == "" {
		return o.opts.fail(o.dir, errors.New("flag --project is required"))
	}
	if o.dir == "" {
		return o.opts.fail(o.project, errors.New("flag --dir is required"))
	}

	ctx := cmd.Context()
	future, err := o.opts.newClient().PullETL(ctx, o.project, o.dir)
	if err != nil {
		o.opts.log.Error().Err(err).Str("project", o.project).Str("request-id", requestIDOf(err)).Msg("ETL pull failed")
		return o.opts.fail(o.dir, err)
	}

	return o.opts.awaitTask(ctx, o.dir, future, o.wait)
}
