package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/naufaladrian/be-report-app/internal/errs"
	"github.com/naufaladrian/be-report-app/internal/middleware"
	"github.com/naufaladrian/be-report-app/internal/models"
	"github.com/naufaladrian/be-report-app/internal/services"
)

// maxUploadSize bounds the in-memory multipart buffer (10MB).
const maxUploadSize = 10 << 20

// ReportService is the report surface the report handlers depend on.
type ReportService interface {
	List(ctx context.Context, latitude, longitude, radius string) ([]models.Report, error)
	Create(ctx context.Context, ownerID string, in services.CreateReportInput) (models.Report, error)
	GetByID(ctx context.Context, id string) (models.Report, error)
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
}

type ReportHandler struct {
	reports ReportService
}

func NewReportHandler(reports ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// List handles GET /reports with an optional latitude/longitude/radius
// bounding-box filter.
func (h *ReportHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	reports, err := h.reports.List(r.Context(), q.Get("latitude"), q.Get("longitude"), q.Get("radius"))
	if err != nil {
		writeError(w, err)
		return
	}
	toJSON(w, http.StatusOK, reports)
}

// Create handles POST /reports. The auth middleware has already verified the
// token by the time the multipart body is parsed here.
func (h *ReportHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		// Only reachable when the route is registered without RequireAuth.
		writeError(w, fmt.Errorf("%w: missing token claims", errs.ErrUnauthorized))
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, errs.Invalid("failed to parse form"))
		return
	}

	in := services.CreateReportInput{
		Latitude:    r.FormValue("latitude"),
		Longitude:   r.FormValue("longitude"),
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
	}

	if file, _, err := r.FormFile("image"); err == nil {
		defer file.Close()
		data, err := io.ReadAll(file)
		if err != nil {
			writeError(w, errs.Invalid("failed to read image"))
			return
		}
		in.Image = data
	}

	rep, err := h.reports.Create(r.Context(), claims.ID, in)
	if err != nil {
		writeError(w, err)
		return
	}

	toJSON(w, http.StatusCreated, map[string]any{"success": true, "report": rep})
}

// GetByID handles GET /reports/{id}.
func (h *ReportHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	rep, err := h.reports.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	toJSON(w, http.StatusOK, rep)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus handles PUT /reports/{id}/status.
func (h *ReportHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errs.Invalid("invalid request body"))
		return
	}

	if err := h.reports.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req.Status); err != nil {
		writeError(w, err)
		return
	}

	toJSON(w, http.StatusOK, map[string]any{"success": true})
}

// Delete handles DELETE /reports/{id}.
func (h *ReportHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.reports.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	toJSON(w, http.StatusOK, map[string]any{"success": true})
}
