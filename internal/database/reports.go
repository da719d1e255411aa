package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/naufaladrian/be-report-app/internal/errs"
	"github.com/naufaladrian/be-report-app/internal/models"
)

// ReportStore runs parameterized SQL for report rows. Ids arrive as opaque
// strings from the URL path; anything that is not a valid UUID cannot match a
// row, so it is treated as not-found instead of being handed to Postgres.
type ReportStore struct {
	db *sql.DB
}

func NewReportStore(db *sql.DB) *ReportStore {
	return &ReportStore{db: db}
}

const reportColumns = `id, user_id, latitude, longitude, title, description, photo_url, status, created_at`

func scanReport(row interface{ Scan(...any) error }) (models.Report, error) {
	var rep models.Report
	err := row.Scan(&rep.ID, &rep.UserID, &rep.Latitude, &rep.Longitude,
		&rep.Title, &rep.Description, &rep.PhotoURL, &rep.Status, &rep.CreatedAt)
	return rep, err
}

// Insert writes a new report row.
func (s *ReportStore) Insert(ctx context.Context, rep models.Report) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO reports (id, user_id, latitude, longitude, title, description, photo_url, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, rep.ID, rep.UserID, rep.Latitude, rep.Longitude, rep.Title, rep.Description, rep.PhotoURL, rep.Status)
	return err
}

// SelectAll returns every report.
func (s *ReportStore) SelectAll(ctx context.Context) ([]models.Report, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+reportColumns+` FROM reports`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectReports(rows)
}

// SelectWithinBox returns reports inside the rectangle
// latitude in [lat-r, lat+r], longitude in [lon-r, lon+r].
func (s *ReportStore) SelectWithinBox(ctx context.Context, lat, lon, radius float64) ([]models.Report, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+reportColumns+` FROM reports
		WHERE (latitude BETWEEN $1 AND $2) AND (longitude BETWEEN $3 AND $4)
	`, lat-radius, lat+radius, lon-radius, lon+radius)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectReports(rows)
}

// SelectByID returns the report with the given id, or errs.ErrNotFound.
func (s *ReportStore) SelectByID(ctx context.Context, id string) (models.Report, error) {
	if _, err := uuid.Parse(id); err != nil {
		return models.Report{}, errs.ErrNotFound
	}
	rep, err := scanReport(s.db.QueryRowContext(ctx,
		`SELECT `+reportColumns+` FROM reports WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Report{}, errs.ErrNotFound
		}
		return models.Report{}, err
	}
	return rep, nil
}

// UpdateStatus sets the status of the report with the given id.
// Returns errs.ErrNotFound when no row was affected.
func (s *ReportStore) UpdateStatus(ctx context.Context, id, status string) error {
	if _, err := uuid.Parse(id); err != nil {
		return errs.ErrNotFound
	}
	res, err := s.db.ExecContext(ctx, `UPDATE reports SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	return checkAffected(res)
}

// Delete removes the report with the given id.
// Returns errs.ErrNotFound when no row was affected.
func (s *ReportStore) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return errs.ErrNotFound
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM reports WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffected(res)
}

func checkAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func collectReports(rows *sql.Rows) ([]models.Report, error) {
	reports := []models.Report{}
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, rep)
	}
	return reports, rows.Err()
}
