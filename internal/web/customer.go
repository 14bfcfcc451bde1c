package web

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/example/tablefinder/internal/auth"
	"github.com/example/tablefinder/internal/availability"
	"github.com/example/tablefinder/internal/bookings"
	"github.com/example/tablefinder/internal/internaltypes"
	"github.com/sirupsen/logrus"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var in loginRequest
	if err := decodeJSON(r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}
	in.Username = strings.TrimSpace(in.Username)
	if in.Username == "" || in.Password == "" {
		s.writeError(w, r, internaltypes.Invalid("username", "Please enter your username and password."))
		return
	}
	sess, err := s.Backend.Login(r.Context(), in.Username, in.Password)
	if err != nil {
		var ue *internaltypes.UpstreamError
		if errors.As(err, &ue) && ue.StatusCode >= 400 && ue.StatusCode < 500 {
			writeJSON(w, http.StatusUnauthorized, errorBody{Error: "Invalid username or password."})
			return
		}
		s.writeError(w, r, err)
		return
	}
	role := sess.Role
	if role == "" {
		role = auth.RoleCustomer
	}
	if err := s.Auth.SetSession(w, r, auth.Session{Username: in.Username, Role: role, Token: sess.AccessToken}); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.logger(r).WithFields(logrus.Fields{"username": in.Username, "role": role}).Info("login")
	writeJSON(w, http.StatusOK, loginResponse{Username: in.Username, Role: role})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.Auth.ClearSession(w)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	party, _ := strconv.Atoi(strings.TrimSpace(q.Get("party_size")))
	f := availability.Filter{
		Date:      strings.TrimSpace(q.Get("date")),
		Time:      strings.TrimSpace(q.Get("time")),
		PartySize: party,
		Location:  q.Get("location"),
	}
	matches, err := s.Bookings.Search(r.Context(), f)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, matches)
}

func (s *Server) handleBook(w http.ResponseWriter, r *http.Request) {
	sess, _ := auth.SessionFromContext(r.Context())
	var in bookings.BookRequest
	if err := decodeJSON(r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := s.Bookings.Book(r.Context(), sess.Token, in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func (s *Server) handleReservations(w http.ResponseWriter, r *http.Request) {
	sess, _ := auth.SessionFromContext(r.Context())
	list, err := s.Bookings.Reservations(r.Context(), sess.Token)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleCancel(w http.ResponseWriter, r *http.Request) {
	sess, _ := auth.SessionFromContext(r.Context())
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.Bookings.Cancel(r.Context(), sess.Token, id); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type reviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

func (s *Server) handleReview(w http.ResponseWriter, r *http.Request) {
	sess, _ := auth.SessionFromContext(r.Context())
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var in reviewRequest
	if err := decodeJSON(r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.Bookings.Review(r.Context(), sess.Token, id, in.Rating, strings.TrimSpace(in.Comment)); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
