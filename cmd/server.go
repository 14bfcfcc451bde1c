package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/example/tablefinder/internal/attempts"
	"github.com/example/tablefinder/internal/auth"
	"github.com/example/tablefinder/internal/availability"
	"github.com/example/tablefinder/internal/backend"
	"github.com/example/tablefinder/internal/bookings"
	"github.com/example/tablefinder/internal/catalog"
	"github.com/example/tablefinder/internal/config"
	"github.com/example/tablefinder/internal/db"
	"github.com/example/tablefinder/internal/events"
	"github.com/example/tablefinder/internal/logging"
	"github.com/example/tablefinder/internal/migrate"
	"github.com/example/tablefinder/internal/scheduler"
	"github.com/example/tablefinder/internal/web"
	"github.com/spf13/cobra"
)

func newServerCmd() *cobra.Command {
	var migrateUp bool

	cmd := &cobra.Command{
		Use:   "server",
		Short: "Run the JSON API and the catalog refresher",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := cfg.RequireSessionKeys(); err != nil {
				return err
			}
			log, err := logging.New(cfg.LogLevel, cfg.LogFormat)
			if err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			var checks []func(context.Context) error

			// attempt log
			var attemptRepo *attempts.Repo
			if cfg.DatabaseURL != "" {
				d, err := db.Open(ctx, cfg.DatabaseURL)
				if err != nil {
					return err
				}
				defer d.Close()
				if migrateUp {
					applied, err := migrate.Up(ctx, d)
					if err != nil {
						return err
					}
					if len(applied) > 0 {
						log.WithField("migrations", applied).Info("migrations applied")
					}
				}
				attemptRepo = attempts.NewRepo(d)
				checks = append(checks, d.Ping)
			} else {
				log.Info("DATABASE_URL not set, booking attempts will not be recorded")
			}

			// catalog
			client := backend.New(cfg.BackendURL, cfg.BackendTimeout)
			rdb, err := catalog.OpenRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
			if err != nil {
				return err
			}
			var store catalog.Store
			if rdb != nil {
				defer rdb.Close()
				store = rdb
				checks = append(checks, func(ctx context.Context) error { return rdb.Ping(ctx).Err() })
			}
			cat := catalog.NewCached(client, store, cfg.CatalogCacheTTL, log)
			refresher := &scheduler.Scheduler{
				Name:     "catalog refresh",
				Interval: cfg.CatalogRefresh,
				Log:      log,
				Task: func(ctx context.Context) error {
					_, err := cat.Refresh(ctx)
					return err
				},
			}
			go func() { _ = refresher.Run(ctx) }()

			publisher := events.NewWriter(cfg.KafkaBrokers, cfg.KafkaTopic)
			defer func() {
				if err := publisher.Close(); err != nil {
					log.WithError(err).Warn("close event writer")
				}
			}()

			svc := &bookings.Service{
				Backend:  client,
				Catalog:  cat,
				Resolver: availability.NewResolver(cfg.Location),
				Events:   publisher,
				Log:      log,
			}
			ws := &web.Server{
				Auth:     auth.NewStore(cfg.CookieHashKey, cfg.CookieBlockKey),
				Bookings: svc,
				Backend:  client,
				Log:      log,
				Location: cfg.Location,
				Health: func(ctx context.Context) error {
					for _, check := range checks {
						if err := check(ctx); err != nil {
							return err
						}
					}
					return nil
				},
			}
			if attemptRepo != nil {
				svc.Attempts = attemptRepo
				ws.Attempts = attemptRepo
			}

			if err := web.Start(ctx, cfg.ListenAddr, ws.Routes(), log); err != nil {
				return fmt.Errorf("web server: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&migrateUp, "migrate", true, "run database migrations on startup")

	cmd.Flags().Lookup("migrate").NoOptDefVal = "true"
	return cmd
}
