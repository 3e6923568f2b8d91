package main

import (
	"context"

	client "github.com/hsn0918/analytics-client"
)

// awaitTask waits for a task future unless wait is false, in which case it only
// reports the URI to poll later.
func (o *cliOptions) awaitTask(ctx context.Context, target string, future client.FutureResult[client.TaskStatus], wait bool) error {
	if !wait {
		o.log.Info().Str("target", target).Str("poll", future.PollingURI()).Msg("Task submitted")
		return nil
	}

	status, err := future.GetWithTimeout(ctx, o.cfg.ProcessingTimeout)
	if err != nil {
		o.log.Error().Err(err).Str("target", target).Str("poll", future.PollingURI()).Msg("Task failed")
		return o.fail(target, err)
	}

	event := o.log.Info()
	if status.Status == client.TaskStatusWarning {
		event = o.log.Warn()
	}
	if text := status.MessageText(); text != "" {
		event = event.Str("messages", text)
	}
	event.Str("target", target).Str("status", status.Status).Msg("Task finished")
	return nil
}
