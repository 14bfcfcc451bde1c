package web

import (
	"context"
	"net/http"
	"strconv"

	"github.com/example/tablefinder/internal/analytics"
	"github.com/example/tablefinder/internal/auth"
	"github.com/example/tablefinder/internal/internaltypes"
	"github.com/example/tablefinder/internal/restaurant"
)

const defaultAttemptLimit = 50

func (s *Server) handleManagerList(w http.ResponseWriter, r *http.Request) {
	sess, _ := auth.SessionFromContext(r.Context())
	list, err := s.Backend.ManagerRestaurants(r.Context(), sess.Token)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleManagerCreate(w http.ResponseWriter, r *http.Request) {
	sess, _ := auth.SessionFromContext(r.Context())
	var l restaurant.Listing
	if err := decodeJSON(r, &l); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := l.Validate(); err != nil {
		s.writeError(w, r, err)
		return
	}
	created, err := s.Backend.CreateListing(r.Context(), sess.Token, l)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleManagerShow(w http.ResponseWriter, r *http.Request) {
	sess, _ := auth.SessionFromContext(r.Context())
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	rest, err := s.Backend.ManagerRestaurant(r.Context(), sess.Token, id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rest)
}

func (s *Server) handleManagerUpdate(w http.ResponseWriter, r *http.Request) {
	sess, _ := auth.SessionFromContext(r.Context())
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var u restaurant.ListingUpdate
	if err := decodeJSON(r, &u); err != nil {
		s.writeError(w, r, err)
		return
	}
	if u.Empty() {
		s.writeError(w, r, internaltypes.Invalid("body", "Nothing to update."))
		return
	}
	if err := u.Validate(); err != nil {
		s.writeError(w, r, err)
		return
	}
	rest, err := s.Backend.UpdateListing(r.Context(), sess.Token, id, u)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rest)
}

func (s *Server) handleAdminList(w http.ResponseWriter, r *http.Request) {
	sess, _ := auth.SessionFromContext(r.Context())
	list, err := s.Backend.AdminRestaurants(r.Context(), sess.Token)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleAdminPending(w http.ResponseWriter, r *http.Request) {
	sess, _ := auth.SessionFromContext(r.Context())
	list, err := s.Backend.PendingRestaurants(r.Context(), sess.Token)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleAdminApprove(w http.ResponseWriter, r *http.Request) {
	s.adminDecision(w, r, s.Backend.ApproveRestaurant)
}

func (s *Server) handleAdminReject(w http.ResponseWriter, r *http.Request) {
	s.adminDecision(w, r, s.Backend.RejectRestaurant)
}

func (s *Server) adminDecision(w http.ResponseWriter, r *http.Request, decide func(ctx context.Context, token string, id int64) (restaurant.Restaurant, error)) {
	sess, _ := auth.SessionFromContext(r.Context())
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	rest, err := decide(r.Context(), sess.Token, id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rest)
}

func (s *Server) handleAdminRemove(w http.ResponseWriter, r *http.Request) {
	sess, _ := auth.SessionFromContext(r.Context())
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.Backend.RemoveRestaurant(r.Context(), sess.Token, id); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	sess, _ := auth.SessionFromContext(r.Context())
	list, err := s.Backend.AdminRestaurants(r.Context(), sess.Token)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, analytics.Summarize(list, s.now(), s.Location))
}

func (s *Server) handleAttempts(w http.ResponseWriter, r *http.Request) {
	if s.Attempts == nil {
		writeJSON(w, http.StatusOK, []any{})
		return
	}
	limit := defaultAttemptLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			s.writeError(w, r, internaltypes.Invalid("limit", "limit must be a positive number."))
			return
		}
		limit = n
	}
	list, err := s.Attempts.Recent(r.Context(), limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}
