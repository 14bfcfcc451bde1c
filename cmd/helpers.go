package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/example/tablefinder/internal/attempts"
	"github.com/example/tablefinder/internal/availability"
	"github.com/example/tablefinder/internal/backend"
	"github.com/example/tablefinder/internal/bookings"
	"github.com/example/tablefinder/internal/config"
	"github.com/example/tablefinder/internal/db"
	"github.com/example/tablefinder/internal/events"
	"github.com/example/tablefinder/internal/logging"
	"github.com/sirupsen/logrus"
)

// app is what every client-side command needs: settings, a logger and the backend client.
type app struct {
	cfg    config.Config
	log    *logrus.Logger
	client *backend.Client
}

func loadApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log, err := logging.NewWithOutput(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, err
	}
	return &app{cfg: cfg, log: log, client: backend.New(cfg.BackendURL, cfg.BackendTimeout)}, nil
}

func (a *app) token() (string, error) {
	if tokenFlag != "" {
		return tokenFlag, nil
	}
	if a.cfg.BackendToken != "" {
		return a.cfg.BackendToken, nil
	}
	return "", errors.New("not logged in: pass --token or set BACKEND_TOKEN (see `tablefinder login`)")
}

// service builds a bookings service against the live catalog. When DATABASE_URL is set
// bookings are also written to the attempt log; the returned func releases what was opened.
func (a *app) service(ctx context.Context) (*bookings.Service, func(), error) {
	svc := &bookings.Service{
		Backend:  a.client,
		Catalog:  a.client,
		Resolver: availability.NewResolver(a.cfg.Location),
		Log:      a.log,
	}
	closers := []func(){}
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	if a.cfg.DatabaseURL != "" {
		d, err := db.Open(ctx, a.cfg.DatabaseURL)
		if err != nil {
			return nil, cleanup, err
		}
		closers = append(closers, d.Close)
		svc.Attempts = attempts.NewRepo(d)
	}
	if w := events.NewWriter(a.cfg.KafkaBrokers, a.cfg.KafkaTopic); w != nil {
		closers = append(closers, func() {
			if err := w.Close(); err != nil {
				a.log.WithError(err).Warn("close event writer")
			}
		})
		svc.Events = w
	}
	return svc, cleanup, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 2, 2, 2, ' ', 0)
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

// readJSON decodes path into dest; "-" reads stdin.
func readJSON(path string, stdin io.Reader, dest any) error {
	var r io.Reader = stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
