package main

import (
	"context"
	"fmt"
	"io"

	"medical-qa-bot/internal/app"
	"medical-qa-bot/internal/chat"
	"medical-qa-bot/internal/common/metrics"
	"medical-qa-bot/internal/common/observability"
)

// startApp loads every store. When announce is set the progress lines are
// printed to out, as the interactive surfaces expect.
func startApp(ctx context.Context, out io.Writer, announce bool) (*app.App, func(), error) {
	if announce {
		fmt.Fprintln(out, chat.StartupMessage)
	}

	var opts []app.Option
	obs, err := observability.New(cfg.App.Name)
	if err != nil {
		log.Warn("Answer timing disabled", map[string]interface{}{"error": err.Error()})
	} else {
		opts = append(opts, app.WithObserver(obs))
	}

	a, err := app.New(ctx, cfg, log, opts...)
	if err != nil {
		if obs != nil {
			_ = obs.Shutdown()
		}
		return nil, nil, err
	}

	if announce {
		fmt.Fprintln(out, chat.ReadyMessage)
	}

	cleanup := func() {
		a.Close()
		if cfg.Metrics.Enabled {
			if err := metrics.WriteTextfile(cfg.Metrics.TextfilePath); err != nil {
				log.Warn("Failed to write metrics", map[string]interface{}{"error": err.Error()})
			}
		}
		if obs != nil {
			if err := obs.Shutdown(); err != nil {
				log.Warn("Failed to shut down meter provider", map[string]interface{}{"error": err.Error()})
			}
		}
	}
	return a, cleanup, nil
}
