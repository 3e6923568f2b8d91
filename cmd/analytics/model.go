package main

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"
)

func newModelCmd(opts *cliOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "model",
		Short: "Manage the logical data model of a project",
	}
	cmd.AddCommand(newModelUpdateCmd(opts))
	return cmd
}

type modelUpdateOptions struct {
	project  string
	maqlFile string
	wait     bool
	opts     *cliOptions
}

func newModelUpdateCmd(opts *cliOptions) *cobra.Command {
	mo := &modelUpdateOptions{opts: opts}

	cmd := &cobra.Command{
		Use:               "update",
		Short:             "Execute a MAQL DDL script against a project",
		ValidArgsFunction: positionalAlwaysFlags,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return mo.run(cmd)
		},
	}

	cmd.Flags().StringVar(&mo.project, "project", "", "Project id")
	cmd.Flags().StringVar(&mo.maqlFile, "maql", "", "File containing the MAQL script, - reads standard input")
	cmd.Flags().BoolVar(&mo.wait, "wait", true, "Wait for the model update task to finish")

	return cmd
}

func (o *modelUpdateOptions) run(cmd *cobra.Command) error {
	if o.project == "" {
		return o.opts.fail(o.project, errors.New("flag --project is required"))
	}
	if o.maqlFile == "" {
		return o.opts.fail(o.project, errors.New("flag --maql is required"))
	}

	script, err := readInput(o.maqlFile, cmd.InOrStdin())
	if err != nil {
		return o.opts.fail(o.project, err)
	}

	ctx := cmd.Context()
	future, err := o.opts.newClient().UpdateProjectModel(ctx, o.project, strings.TrimSpace(string(script)))
	if err != nil {
		o.opts.log.Error().Err(err).Str("project", o.project).Str("request-id", requestIDOf(err)).Msg("Model update failed")
		return o.opts.fail(o.project, err)
	}

	return o.opts.awaitTask(ctx, o.project, future, o.wait)
}
