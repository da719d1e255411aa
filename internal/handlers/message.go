package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/naufaladrian/be-report-app/internal/errs"
)

// GetMessage handles GET /message with a plain greeting.
func GetMessage(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("Hello from the report API"))
}

type postMessageRequest struct {
	Name string `json:"name"`
}

// PostMessage handles POST /message, echoing a greeting for the given name.
func PostMessage(w http.ResponseWriter, r *http.Request) {
	var req postMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errs.Invalid("invalid request body"))
		return
	}
	toJSON(w, http.StatusOK, map[string]string{"message": "Hello, " + req.Name})
}
