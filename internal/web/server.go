// Package web serves the JSON API used by the browser front end.
package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/example/tablefinder/internal/attempts"
	"github.com/example/tablefinder/internal/auth"
	"github.com/example/tablefinder/internal/availability"
	"github.com/example/tablefinder/internal/backend"
	"github.com/example/tablefinder/internal/bookings"
	"github.com/example/tablefinder/internal/restaurant"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type Bookings interface {
	Search(ctx context.Context, f availability.Filter) ([]availability.Match, error)
	Book(ctx context.Context, token string, req bookings.BookRequest) (restaurant.Reservation, error)
	Reservations(ctx context.Context, token string) ([]restaurant.Reservation, error)
	Cancel(ctx context.Context, token string, id int64) error
	Review(ctx context.Context, token string, id int64, rating int, comment string) error
}

// Backend covers the login, manager and admin calls that pass straight through.
type Backend interface {
	Login(ctx context.Context, username, password string) (backend.Session, error)

	CreateListing(ctx context.Context, token string, l restaurant.Listing) (restaurant.Restaurant, error)
	ManagerRestaurants(ctx context.Context, token string) ([]restaurant.Restaurant, error)
	ManagerRestaurant(ctx context.Context, token string, id int64) (restaurant.Restaurant, error)
	UpdateListing(ctx context.Context, token string, id int64, u restaurant.ListingUpdate) (restaurant.Restaurant, error)

	AdminRestaurants(ctx context.Context, token string) ([]restaurant.Restaurant, error)
	PendingRestaurants(ctx context.Context, token string) ([]restaurant.Restaurant, error)
	ApproveRestaurant(ctx context.Context, token string, id int64) (restaurant.Restaurant, error)
	RejectRestaurant(ctx context.Context, token string, id int64) (restaurant.Restaurant, error)
	RemoveRestaurant(ctx context.Context, token string, id int64) error
}

type AttemptLog interface {
	Recent(ctx context.Context, limit int) ([]attempts.Attempt, error)
}

// Server needs Auth, Bookings and Backend. Attempts and Health are optional.
type Server struct {
	Auth     *auth.Store
	Bookings Bookings
	Backend  Backend
	Attempts AttemptLog
	Health   func(ctx context.Context) error

	Log      logrus.FieldLogger
	Location *time.Location
	Now      func() time.Time
}

func (s *Server) Routes() http.Handler {
	r := mux.NewRouter()
	r.Use(s.logRequests)

	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/login", s.handleLogin).Methods(http.MethodPost)
	r.HandleFunc("/logout", s.handleLogout).Methods(http.MethodPost)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/search", s.handleSearch).Methods(http.MethodGet)

	customer := api.NewRoute().Subrouter()
	customer.Use(s.Auth.RequireAuth)
	customer.HandleFunc("/bookings", s.handleBook).Methods(http.MethodPost)
	customer.HandleFunc("/reservations", s.handleReservations).Methods(http.MethodGet)
	customer.HandleFunc("/reservations/{id:[0-9]+}/cancel", s.handleCancel).Methods(http.MethodPost)
	customer.HandleFunc("/reservations/{id:[0-9]+}/review", s.handleReview).Methods(http.MethodPost)

	manager := api.PathPrefix("/manager").Subrouter()
	manager.Use(s.Auth.RequireAuth, auth.RequireRole(auth.RoleManager))
	manager.HandleFunc("/restaurants", s.handleManagerList).Methods(http.MethodGet)
	manager.HandleFunc("/restaurants", s.handleManagerCreate).Methods(http.MethodPost)
	manager.HandleFunc("/restaurants/{id:[0-9]+}", s.handleManagerShow).Methods(http.MethodGet)
	manager.HandleFunc("/restaurants/{id:[0-9]+}", s.handleManagerUpdate).Methods(http.MethodPut)

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(s.Auth.RequireAuth, auth.RequireRole(auth.RoleAdmin))
	admin.HandleFunc("/restaurants", s.handleAdminList).Methods(http.MethodGet)
	admin.HandleFunc("/restaurants/pending", s.handleAdminPending).Methods(http.MethodGet)
	admin.HandleFunc("/restaurants/{id:[0-9]+}/approve", s.handleAdminApprove).Methods(http.MethodPost)
	admin.HandleFunc("/restaurants/{id:[0-9]+}/reject", s.handleAdminReject).Methods(http.MethodPost)
	admin.HandleFunc("/restaurants/{id:[0-9]+}", s.handleAdminRemove).Methods(http.MethodDelete)
	admin.HandleFunc("/analytics", s.handleAnalytics).Methods(http.MethodGet)
	admin.HandleFunc("/attempts", s.handleAttempts).Methods(http.MethodGet)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.Health != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()
		if err := s.Health(ctx); err != nil {
			s.logger(r).WithError(err).Warn("health check failed")
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func Start(ctx context.Context, addr string, h http.Handler, log logrus.FieldLogger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	log.WithField("addr", addr).Info("listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
