// Command visitnote serves POST /process_transcription: audio in, visit
// prescription PDF out.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/kbukum/visitnote/bootstrap"
	"github.com/kbukum/visitnote/component"
	"github.com/kbukum/visitnote/observability"
	"github.com/kbukum/visitnote/server"
	"github.com/kbukum/visitnote/storage"
	_ "github.com/kbukum/visitnote/storage/gcs"
	_ "github.com/kbukum/visitnote/storage/local"
	_ "github.com/kbukum/visitnote/storage/memory"
	_ "github.com/kbukum/visitnote/storage/s3"
	"github.com/kbukum/visitnote/util"
	"github.com/kbukum/visitnote/version"
)

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cfg.Version = util.Coalesce(cfg.Version, version.Get().Version)

	app, err := bootstrap.NewApp(cfg)
	if err != nil {
		return err
	}
	log := app.Logger

	telemetry := observability.NewTelemetry(cfg.Observability)
	store := storage.NewComponent(cfg.Storage, log)

	srv := server.New(cfg.Server, log.WithComponent("http"))
	srv.ApplyMiddleware()

	pipe := &pipeline{
		cfg:       cfg,
		server:    srv,
		telemetry: telemetry,
		storage:   store,
		checker:   app.Components.HealthAll,
		routes:    app.Summary.TrackRoute,
		log:       log,
	}

	for _, c := range []component.Component{telemetry, store, pipe, server.NewComponent(srv)} {
		if err := app.RegisterComponent(c); err != nil {
			return err
		}
	}

	return app.Run(ctx)
}
