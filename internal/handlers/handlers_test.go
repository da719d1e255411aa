package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/naufaladrian/be-report-app/internal/errs"
	"github.com/naufaladrian/be-report-app/internal/handlers"
	"github.com/naufaladrian/be-report-app/internal/models"
	"github.com/naufaladrian/be-report-app/internal/routes"
	"github.com/naufaladrian/be-report-app/internal/services"
)

// In-memory stores standing in for Postgres.

type memUserStore struct {
	byEmail map[string]models.User
}

func (m *memUserStore) Insert(_ context.Context, u models.User) error {
	if _, ok := m.byEmail[u.Email]; ok {
		return fmt.Errorf("%w: email already registered", errs.ErrConflict)
	}
	m.byEmail[u.Email] = u
	return nil
}

func (m *memUserStore) GetByEmail(_ context.Context, email string) (models.User, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return models.User{}, errs.ErrNotFound
	}
	return u, nil
}

type memReportStore struct {
	reports map[string]models.Report
	order   []string
}

func (m *memReportStore) Insert(_ context.Context, rep models.Report) error {
	m.reports[rep.ID] = rep
	m.order = append(m.order, rep.ID)
	return nil
}

func (m *memReportStore) SelectAll(_ context.Context) ([]models.Report, error) {
	out := []models.Report{}
	for _, id := range m.order {
		out = append(out, m.reports[id])
	}
	return out, nil
}

func (m *memReportStore) SelectWithinBox(_ context.Context, lat, lon, radius float64) ([]models.Report, error) {
	out := []models.Report{}
	for _, id := range m.order {
		rep := m.reports[id]
		if rep.Latitude >= lat-radius && rep.Latitude <= lat+radius &&
			rep.Longitude >= lon-radius && rep.Longitude <= lon+radius {
			out = append(out, rep)
		}
	}
	return out, nil
}

func (m *memReportStore) SelectByID(_ context.Context, id string) (models.Report, error) {
	rep, ok := m.reports[id]
	if !ok {
		return models.Report{}, errs.ErrNotFound
	}
	return rep, nil
}

func (m *memReportStore) UpdateStatus(_ context.Context, id, status string) error {
	rep, ok := m.reports[id]
	if !ok {
		return errs.ErrNotFound
	}
	rep.Status = status
	m.reports[id] = rep
	return nil
}

func (m *memReportStore) Delete(_ context.Context, id string) error {
	if _, ok := m.reports[id]; !ok {
		return errs.ErrNotFound
	}
	delete(m.reports, id)
	for i, v := range m.order {
		if v == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

type fakeUploader struct {
	calls int
	err   error
}

func (f *fakeUploader) Upload(_ context.Context, _ []byte) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return "https://img.example.com/report_images/fake.jpg", nil
}

type env struct {
	handler  http.Handler
	users    *memUserStore
	reports  *memReportStore
	uploader *fakeUploader
	creds    *services.CredentialService
}

func setup(t *testing.T) *env {
	t.Helper()

	users := &memUserStore{byEmail: make(map[string]models.User)}
	reports := &memReportStore{reports: make(map[string]models.Report)}
	uploader := &fakeUploader{}

	creds := services.NewCredentialService(users, "test-secret")
	reportSvc := services.NewReportService(reports, uploader)

	r := chi.NewRouter()
	r.Use(handlers.Recover)
	routes.SetupRoutes(r, handlers.NewAuthHandler(creds), handlers.NewReportHandler(reportSvc), creds)

	return &env{handler: r, users: users, reports: reports, uploader: uploader, creds: creds}
}

func (e *env) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func jsonRequest(t *testing.T, method, path string, body any) *http.Request {
	t.Helper()
	b, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// token registers a user (if needed) and logs in, returning a live token.
func (e *env) token(t *testing.T) string {
	t.Helper()
	ctx := context.Background()
	if _, err := e.users.GetByEmail(ctx, "reporter@example.com"); err != nil {
		if err := e.creds.Register(ctx, "Reporter", "reporter@example.com", "secret-pw"); err != nil {
			t.Fatalf("register: %v", err)
		}
	}
	token, _, err := e.creds.Login(ctx, "reporter@example.com", "secret-pw")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	return token
}

// multipartReport builds a multipart report submission. Empty fields are
// omitted entirely, mimicking a client that leaves them out.
func multipartReport(t *testing.T, fields map[string]string, image []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if v == "" {
			continue
		}
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field %s: %v", k, err)
		}
	}
	if image != nil {
		fw, err := mw.CreateFormFile("image", "photo.jpg")
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := fw.Write(image); err != nil {
			t.Fatalf("write image: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/reports", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

func readAll(t *testing.T, r io.Reader) string {
	t.Helper()
	b, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	return string(b)
}
