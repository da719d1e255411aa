package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/naufaladrian/be-report-app/internal/errs"
)

type errorResponse struct {
	Error string `json:"error"`
}

func toJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps the error taxonomy to a status code and a {"error": msg}
// body. Anything outside the taxonomy is a 500 with the message logged
// server-side.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errs.ErrInvalid):
		toJSON(w, http.StatusBadRequest, errorResponse{Error: detail(err, "Invalid input")})
	case errors.Is(err, errs.ErrUnauthorized):
		toJSON(w, http.StatusUnauthorized, errorResponse{Error: detail(err, "Unauthorized")})
	case errors.Is(err, errs.ErrNotFound):
		toJSON(w, http.StatusNotFound, errorResponse{Error: "Not found"})
	case errors.Is(err, errs.ErrConflict):
		toJSON(w, http.StatusConflict, errorResponse{Error: detail(err, "Conflict")})
	default:
		log.Printf("internal error: %v", err)
		toJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
	}
}

func detail(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	return err.Error()
}

// Recover converts a panicking handler into a 500 {"error": msg} response so
// no request ever dies without a JSON body.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("panic serving %s %s: %v", r.Method, r.URL.Path, rec)
				toJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal server error"})
			}
		}()
		next.ServeHTTP(w, r)
	})
}
