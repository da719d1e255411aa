package services

import (
	"context"
	"log"
	"strconv"

	"github.com/google/uuid"

	"github.com/naufaladrian/be-report-app/internal/errs"
	"github.com/naufaladrian/be-report-app/internal/models"
)

// ReportStore is the persistence surface the report service needs.
type ReportStore interface {
	Insert(ctx context.Context, rep models.Report) error
	SelectAll(ctx context.Context) ([]models.Report, error)
	SelectWithinBox(ctx context.Context, lat, lon, radius float64) ([]models.Report, error)
	SelectByID(ctx context.Context, id string) (models.Report, error)
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
}

// Uploader stores image bytes on the external host and returns a durable URL.
type Uploader interface {
	Upload(ctx context.Context, data []byte) (string, error)
}

// CreateReportInput carries the raw multipart fields of a report submission.
// Latitude and longitude arrive as strings and are coerced here.
type CreateReportInput struct {
	Latitude    string
	Longitude   string
	Title       string
	Description string
	Image       []byte
}

// ReportService validates input and orchestrates the uploader and the store.
type ReportService struct {
	store    ReportStore
	uploader Uploader
}

func NewReportService(store ReportStore, uploader Uploader) *ReportService {
	return &ReportService{store: store, uploader: uploader}
}

// List returns all reports, or only those inside the bounding box when
// latitude, longitude and radius are all supplied. The filter is
// all-or-nothing: a partial filter is ignored and the full list is returned.
func (s *ReportService) List(ctx context.Context, latitude, longitude, radius string) ([]models.Report, error) {
	if latitude != "" && longitude != "" && radius != "" {
		lat, errLat := strconv.ParseFloat(latitude, 64)
		lon, errLon := strconv.ParseFloat(longitude, 64)
		rad, errRad := strconv.ParseFloat(radius, 64)
		if errLat != nil || errLon != nil || errRad != nil {
			return nil, errs.Invalid("invalid query parameters")
		}
		return s.store.SelectWithinBox(ctx, lat, lon, rad)
	}

	return s.store.SelectAll(ctx)
}

// Create uploads the image and inserts the report row with a fresh id.
// The upload happens first: a report row is never written without a photo
// URL. The reverse does not hold: if the insert fails after a successful
// upload the image is orphaned on the host.
func (s *ReportService) Create(ctx context.Context, ownerID string, in CreateReportInput) (models.Report, error) {
	if in.Latitude == "" || in.Longitude == "" || in.Title == "" || in.Description == "" || len(in.Image) == 0 {
		return models.Report{}, errs.Invalid("latitude, longitude, title, description and image are required")
	}

	lat, errLat := strconv.ParseFloat(in.Latitude, 64)
	lon, errLon := strconv.ParseFloat(in.Longitude, 64)
	if errLat != nil || errLon != nil {
		return models.Report{}, errs.Invalid("latitude and longitude must be numeric")
	}

	photoURL, err := s.uploader.Upload(ctx, in.Image)
	if err != nil {
		return models.Report{}, err
	}

	rep := models.Report{
		ID:          uuid.NewString(),
		UserID:      ownerID,
		Latitude:    lat,
		Longitude:   lon,
		Title:       in.Title,
		Description: in.Description,
		PhotoURL:    photoURL,
		Status:      models.StatusNew,
	}

	if err := s.store.Insert(ctx, rep); err != nil {
		// The uploaded image is orphaned here; there is no cleanup path.
		log.Printf("report insert failed after upload, orphaned image %s: %v", photoURL, err)
		return models.Report{}, err
	}

	return rep, nil
}

// GetByID returns a single report or errs.ErrNotFound.
func (s *ReportService) GetByID(ctx context.Context, id string) (models.Report, error) {
	return s.store.SelectByID(ctx, id)
}

// UpdateStatus moves a report to one of the known statuses. The value is
// validated before the store is touched, so a bogus status never depends on
// whether the id exists.
func (s *ReportService) UpdateStatus(ctx context.Context, id, status string) error {
	if !models.ValidStatus(status) {
		return errs.Invalid("status must be one of new, progress, resolved")
	}
	return s.store.UpdateStatus(ctx, id, status)
}

// Delete removes a report, reporting errs.ErrNotFound for unknown ids.
func (s *ReportService) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}
