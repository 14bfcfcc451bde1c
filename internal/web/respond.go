package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/example/tablefinder/internal/internaltypes"
	"github.com/gorilla/mux"
)

type errorBody struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps err onto a status code. Only validation messages reach the client verbatim.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		ve *internaltypes.ValidationError
		ue *internaltypes.UpstreamError
	)
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: ve.Message, Field: ve.Field})
	case errors.Is(err, internaltypes.ErrNoTableAvailable):
		writeJSON(w, http.StatusConflict, errorBody{Error: "No suitable table available for your party size."})
	case errors.Is(err, internaltypes.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody{Error: "Not found."})
	case errors.As(err, &ue) && ue.StatusCode == http.StatusForbidden:
		writeJSON(w, http.StatusForbidden, errorBody{Error: "You do not have access to this page."})
	case errors.Is(err, internaltypes.ErrUnauthorized):
		writeJSON(w, http.StatusUnauthorized, errorBody{Error: "Please log in."})
	case ue != nil || errors.As(err, &ue):
		s.logger(r).WithError(err).Warn("backend call failed")
		writeJSON(w, http.StatusBadGateway, errorBody{Error: "The reservation service is unavailable. Please try again."})
	default:
		s.logger(r).WithError(err).Error("request failed")
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "Something went wrong."})
	}
}

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return internaltypes.Invalid("body", "Invalid JSON body.")
	}
	return nil
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		return 0, internaltypes.Invalid("id", "Invalid id.")
	}
	return id, nil
}
