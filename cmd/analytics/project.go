package main

import (
	"errors"

	"github.com/spf13/cobra"

	client "github.com/hsn0918/analytics-client"
)

func newProjectCmd(opts *cliOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Create and remove projects",
	}
	cmd.AddCommand(newProjectCreateCmd(opts))
	cmd.AddCommand(newProjectRemoveCmd(opts))
	return cmd
}

type projectCreateOptions struct {
	req  client.ProjectRequest
	wait bool
	opts *cliOptions
}

func newProjectCreateCmd(opts *cliOptions) *cobra.Command {
	po := &projectCreateOptions{opts: opts}

	cmd := &cobra.Command{
		Use:               "create",
		Short:             "Create a project and wait until it is enabled",
		ValidArgsFunction: positionalAlwaysFlags,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return po.run(cmd)
		},
	}

	cmd.Flags().StringVar(&po.req.Title, "title", "", "Project title")
	cmd.Flags().StringVar(&po.req.Summary, "summary", "", "Project summary")
	cmd.Flags().StringVar(&po.req.AuthorizationToken, "auth-token", "", "Project authorization token")
	cmd.Flags().StringVar(&po.req.Driver, "driver", "", "Database driver (defaults to Pg)")
	cmd.Flags().StringVar(&po.req.Environment, "environment", "", "Project environment (defaults to PRODUCTION)")
	cmd.Flags().BoolVar(&po.wait, "wait", true, "Wait for the project to become enabled")

	return cmd
}

func (o *projectCreateOptions) run(cmd *cobra.Command) error {
	if o.req.Title == "" {
		return o.opts.fail("", errors.New("flag --title is required"))
	}
	if o.req.AuthorizationToken == "" {
		return o.opts.fail(o.req.Title, errors.New("flag --auth-token is required"))
	}

	ctx := cmd.Context()
	future, err := o.opts.newClient().CreateProject(ctx, o.req)
	if err != nil {
		o.opts.log.Error().Err(err).Str("title", o.req.Title).Str("request-id", requestIDOf(err)).Msg("Project creation failed")
		return o.opts.fail(o.req.Title, err)
	}

	if !o.wait {
		o.opts.log.Info().Str("title", o.req.Title).Str("uri", future.PollingURI()).Msg("Project submitted")
		return nil
	}

	project, err := future.GetWithTimeout(ctx, o.opts.cfg.ProcessingTimeout)
	if err != nil {
		o.opts.log.Error().Err(err).Str("title", o.req.Title).Str("uri", future.PollingURI()).Msg("Project creation failed")
		return o.opts.fail(future.PollingURI(), err)
	}

	uri := project.URI()
	if uri == "" {
		uri = future.PollingURI()
	}
	o.opts.log.Info().Str("title", o.req.Title).Str("uri", uri).Str("state", project.Content.State).Msg("Project enabled")
	return nil
}

func newProjectRemoveCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "remove URI",
		Short: "Delete a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.newClient().RemoveProject(cmd.Context(), args[0]); err != nil {
				opts.log.Error().Err(err).Str("uri", args[0]).Str("request-id", requestIDOf(err)).Msg("Project removal failed")
				return opts.fail(args[0], err)
			}
			opts.log.Info().Str("uri", args[0]).Msg("Project removed")
			return nil
		},
	}
}
