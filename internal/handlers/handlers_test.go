package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/davmoha/voucher-automation/internal/models"
	"github.com/davmoha/voucher-automation/internal/services/distributor"
)

type fakeClassStore struct {
	classes []*models.ClassSession
	created *models.ClassSessionCreate
	err     error
}

func (f *fakeClassStore) Create(ctx context.Context, class *models.ClassSessionCreate) (*models.ClassSession, error) {
	f.created = class
	if f.err != nil {
		return nil, f.err
	}
	return &models.ClassSession{ID: 1, CertificationType: class.CertificationType, ClassDate: class.ClassDate}, nil
}

func (f *fakeClassStore) GetAll(ctx context.Context) ([]*models.ClassSession, error) {
	return f.classes, f.err
}

type fakeVoucherStore struct {
	vouchers []*models.Voucher
	created  *models.VoucherCreate
	err      error
}

func (f *fakeVoucherStore) Create(ctx context.Context, voucher *models.VoucherCreate) (*models.Voucher, error) {
	f.created = voucher
	if f.err != nil {
		return nil, f.err
	}
	return &models.Voucher{ID: 1, CertificationType: voucher.CertificationType, Status: models.VoucherStatusAvailable, VoucherCode: "GEN-1"}, nil
}

func (f *fakeVoucherStore) GetAll(ctx context.Context) ([]*models.Voucher, error) {
	return f.vouchers, f.err
}

type fakeDistStore struct {
	dists []*models.Distribution
	err   error
}

func (f *fakeDistStore) GetAll(ctx context.Context) ([]*models.Distribution, error) {
	return f.dists, f.err
}

type fakeStatsStore struct {
	stats *models.Stats
	err   error
}

func (f *fakeStatsStore) Snapshot(ctx context.Context, now time.Time) (*models.Stats, error) {
	return f.stats, f.err
}

type fakeDistributor struct {
	result *distributor.Result
	err    error
	event  *models.WinnerEvent
}

func (f *fakeDistributor) Distribute(ctx context.Context, event *models.WinnerEvent) (*distributor.Result, error) {
	f.event = event
	return f.result, f.err
}

type fakeHealth struct {
	err error
}

func (f *fakeHealth) HealthCheck(ctx context.Context) error {
	return f.err
}

type env struct {
	classes  *fakeClassStore
	vouchers *fakeVoucherStore
	dists    *fakeDistStore
	stats    *fakeStatsStore
	dist     *fakeDistributor
	health   *fakeHealth
	handler  http.Handler
}

func newEnv() *env {
	e := &env{
		classes:  &fakeClassStore{},
		vouchers: &fakeVoucherStore{},
		dists:    &fakeDistStore{},
		stats:    &fakeStatsStore{stats: &models.Stats{}},
		dist:     &fakeDistributor{result: &distributor.Result{VoucherCode: "CPR-9F3A", ClassDate: time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC), EmailSent: true}},
		health:   &fakeHealth{},
	}
	server := NewServer(e.classes, e.vouchers, e.dists, e.stats, e.dist, e.health,
		clockwork.NewFakeClockAt(time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)), zap.NewNop())
	e.handler = server.Handler()
	return e
}

func doRequest(t *testing.T, handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestUnknownRouteReturns404(t *testing.T) {
	e := newEnv()

	rec := doRequest(t, e.handler, http.MethodGet, "/api/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Route not found", decodeBody(t, rec)["error"])

	// Method mismatch on a known path gets the same uniform 404.
	rec = doRequest(t, e.handler, http.MethodPost, "/api/health", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Route not found", decodeBody(t, rec)["error"])
}

func TestCORSPreflight(t *testing.T) {
	e := newEnv()

	req := httptest.NewRequest(http.MethodOptions, "/api/webhook/winner", nil)
	req.Header.Set("Origin", "https://dashboard.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestHealth(t *testing.T) {
	e := newEnv()

	rec := doRequest(t, e.handler, http.MethodGet, "/api/health", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "2026-03-15T12:00:00Z", body["timestamp"])
	assert.Equal(t, "connected", body["database"])
}

func TestWinnerWebhook_Success(t *testing.T) {
	e := newEnv()

	rec := doRequest(t, e.handler, http.MethodPost, "/api/webhook/winner",
		`{"contact_id":"crm-123","first_name":"Jordan","last_name":"Lee","email":"jordan@example.com","certification_type":"CPR"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "CPR-9F3A", body["voucher_code"])
	assert.Equal(t, "2026-03-20", body["class_date"])
	assert.Equal(t, true, body["email_sent"])

	require.NotNil(t, e.dist.event)
	assert.Equal(t, "crm-123", e.dist.event.ContactID)
}

func TestWinnerWebhook_ValidationError(t *testing.T) {
	e := newEnv()
	e.dist.result = nil
	e.dist.err = &models.ValidationError{Missing: []string{"email"}}

	rec := doRequest(t, e.handler, http.MethodPost, "/api/webhook/winner", `{"certification_type":"CPR"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeBody(t, rec)["error"], "email")
}

func TestWinnerWebhook_NoVoucherReturns404WithType(t *testing.T) {
	e := newEnv()
	e.dist.result = nil
	e.dist.err = &distributor.ResolutionError{Err: distributor.ErrNoVoucherAvailable, CertificationType: "CPR"}

	rec := doRequest(t, e.handler, http.MethodPost, "/api/webhook/winner",
		`{"email":"jordan@example.com","certification_type":"CPR"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "CPR", body["certification_type"])
	assert.Contains(t, body["error"], "no voucher available")
}

func TestWinnerWebhook_SendFailureReturns500(t *testing.T) {
	e := newEnv()
	e.dist.result = nil
	e.dist.err = errors.New("failed to email voucher: ses throttled")

	rec := doRequest(t, e.handler, http.MethodPost, "/api/webhook/winner",
		`{"email":"jordan@example.com","certification_type":"CPR"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, decodeBody(t, rec)["error"], "ses throttled")
}

func TestWinnerWebhook_InvalidJSON(t *testing.T) {
	e := newEnv()

	rec := doRequest(t, e.handler, http.MethodPost, "/api/webhook/winner", "{not json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateVoucher_ForcesAvailableStatus(t *testing.T) {
	e := newEnv()

	rec := doRequest(t, e.handler, http.MethodPost, "/api/vouchers",
		`{"certification_type":"CPR","status":"Used","voucher_code":"CPR-0001"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	require.NotNil(t, e.vouchers.created)
	assert.Equal(t, models.VoucherStatusAvailable, e.vouchers.created.Status)
	assert.Equal(t, "Available", decodeBody(t, rec)["status"])
}

func TestCreateClass(t *testing.T) {
	e := newEnv()

	rec := doRequest(t, e.handler, http.MethodPost, "/api/classes",
		`{"certification_type":"CPR","class_date":"2026-04-01T00:00:00Z","class_time":"9:00 AM"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, e.classes.created)
	assert.Equal(t, "CPR", e.classes.created.CertificationType)
}

func TestCreateClass_MissingCertificationType(t *testing.T) {
	e := newEnv()

	rec := doRequest(t, e.handler, http.MethodPost, "/api/classes", `{"class_time":"9:00 AM"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListEndpointsReturnEmptyArrays(t *testing.T) {
	e := newEnv()

	for _, path := range []string{"/api/classes", "/api/vouchers", "/api/distributions"} {
		rec := doRequest(t, e.handler, http.MethodGet, path, "")
		require.Equal(t, http.StatusOK, rec.Code, path)
		assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()), path)
	}
}

func TestListClasses_StoreErrorReturns500(t *testing.T) {
	e := newEnv()
	e.classes.err = errors.New("db down")

	rec := doRequest(t, e.handler, http.MethodGet, "/api/classes", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestStats(t *testing.T) {
	e := newEnv()
	e.stats.stats = &models.Stats{
		AvailableVouchers:  3,
		UsedVouchers:       2,
		UpcomingClasses:    1,
		TotalDistributions: 5,
	}

	rec := doRequest(t, e.handler, http.MethodGet, "/api/stats", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.EqualValues(t, 3, body["availableVouchers"])
	assert.EqualValues(t, 2, body["usedVouchers"])
	assert.EqualValues(t, 1, body["upcomingClasses"])
	assert.EqualValues(t, 5, body["totalDistributions"])
}
