package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	client "github.com/hsn0918/analytics-client"
)

type pollOptions struct {
	concurrency int
	outputDir   string
	noBody      bool
	opts        *cliOptions
}

func newPollCmd(opts *cliOptions) *cobra.Command {
	po := &pollOptions{opts: opts}

	cmd := &cobra.Command{
		Use:               "poll URI...",
		Short:             "Poll one or more asynchronous resources until they finish",
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: positionalAlwaysFlags,
		RunE: func(cmd *cobra.Command, args []string) error {
			return po.run(cmd.Context(), args)
		},
	}

	cmd.Flags().IntVar(&po.concurrency, "concurrency", defaultConcurrent, "Number of resources polled concurrently")
	cmd.Flags().StringVar(&po.outputDir, "output-dir", "", "Directory to store the final response bodies")
	cmd.Flags().BoolVar(&po.noBody, "no-body", false, "Also accept 204 No Content and ignore response bodies")

	return cmd
}

func (o *pollOptions) run(ctx context.Context, uris []string) error {
	if o.concurrency <= 0 {
		o.concurrency = defaultConcurrent
	}

	cli := o.opts.newClient()
	if len(uris) == 1 {
		return o.pollOne(ctx, cli, uris[0])
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(o.concurrency)

	var (
		errs []error
		mu   sync.Mutex
	)

	for _, uri := range uris {
		eg.Go(func() error {
			if err := o.pollOne(ctx, cli, uri); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	if len(errs) > 0 {
		return fmt.Errorf("batch completed with %d errors, first: %w", len(errs), errs[0])
	}

	return nil
}

func (o *pollOptions) pollOne(ctx context.Context, cli client.Client, uri string) error {
	timeout := o.opts.cfg.ProcessingTimeout

	if o.noBody {
		if _, err := cli.AwaitURI(uri).GetWithTimeout(ctx, timeout); err != nil {
			o.opts.log.Error().Err(err).Str("uri", uri).Str("request-id", requestIDOf(err)).Msg("Poll failed")
			return o.opts.fail(uri, err)
		}
		o.opts.log.Info().Str("uri", uri).Msg("Finished")
		return nil
	}

	data, err := cli.PollURI(uri).GetWithTimeout(ctx, timeout)
	if err != nil {
		o.opts.log.Error().Err(err).Str("uri", uri).Str("request-id", requestIDOf(err)).Msg("Poll failed")
		return o.opts.fail(uri, err)
	}

	o.opts.log.Info().Str("uri", uri).Int("bytes", len(data)).Msg("Finished")

	if o.outputDir == "" {
		return nil
	}

	target := filepath.Join(o.outputDir, outputName(uri, ""))
	if err := writeFile(target, data); err != nil {
		return o.opts.fail(uri, err)
	}
	o.opts.log.Info().Str("uri", uri).Str("path", target).Msg("Saved response")
	return nil
}
