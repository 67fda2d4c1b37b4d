package server

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rgehrsitz/finhealth/internal/calculation"
	"github.com/rgehrsitz/finhealth/internal/domain"
	"github.com/rgehrsitz/finhealth/internal/store"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const netWorthBody = `{
  "income": {"salary": 4500, "otherIncome": 500},
  "expenses": {"propertyLoanRepayment": 2000, "otherExpenses": 1000},
  "assets": {"savings": 38000, "retirementFund": 12000},
  "liabilities": {"propertyFinancingBalance": 20000}
}`

func newTestServer(t *testing.T) (*Server, *store.MemoryStore, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&logs)
	logger.SetFormatter(&logrus.JSONFormatter{})

	s := store.NewMemoryStore()
	return New(calculation.NewEngine(s), logger), s, &logs
}

func do(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHealth(t *testing.T) {
	srv, _, _ := newTestServer(t)
	rec := do(t, srv, http.MethodGet, "/healthz", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	_, err := uuid.Parse(rec.Header().Get(HeaderRequestID))
	assert.NoError(t, err, "Should assign a request id")
}

func TestRequestIDIsReused(t *testing.T) {
	srv, _, logs := newTestServer(t)
	id := uuid.NewString()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(HeaderRequestID, id)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, id, rec.Header().Get(HeaderRequestID))
	assert.Contains(t, logs.String(), id)
	assert.Contains(t, logs.String(), `"path":"/healthz"`)
}

func TestNetWorth(t *testing.T) {
	srv, s, _ := newTestServer(t)
	rec := do(t, srv, http.MethodPost, "/api/networth", netWorthBody)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res domain.NetWorthResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "30000", res.Ratios.NetWorth.String())
	assert.Equal(t, "10", res.Ratios.WealthRatio.String())
	assert.Equal(t, "Healthy", res.Health.Label)
	assert.Equal(t, domain.TierHealthy, res.Health.Tier)

	v, ok, err := s.Get(context.Background(), store.KeyTotalAssets)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "50000", v)
}

func TestNetWorth_Form(t *testing.T) {
	srv, s, _ := newTestServer(t)
	form := url.Values{
		domain.FieldSalary:      {"RM 4,500"},
		domain.FieldSavings:     {"1,000"},
		domain.FieldOtherIncome: {"abc"},
	}
	req := httptest.NewRequest(http.MethodPost, "/api/networth", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	snap, err := store.LoadSnapshot(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, "4500", snap.Income.String())
	assert.Equal(t, "1000", snap.Assets.String())
}

func TestErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
		body   string
		code   int
		status string
	}{
		{"coverage without snapshot", http.MethodPost, "/api/coverage", `{"term":"10y"}`, http.StatusUnprocessableEntity, StatusInputMissing},
		{"needs gap without coverage", http.MethodPost, "/api/needs-gap", `{"basis":"income"}`, http.StatusUnprocessableEntity, StatusInputMissing},
		{"unknown term", http.MethodPost, "/api/coverage", `{"term":"20y"}`, http.StatusBadRequest, StatusInvalid},
		{"negative input", http.MethodPost, "/api/networth", `{"income":{"salary":-1}}`, http.StatusBadRequest, StatusInvalid},
		{"bad retirement ages", http.MethodPost, "/api/retirement", `{"currentAge":40,"retirementAge":40,"maxAge":80}`, http.StatusBadRequest, StatusInvalid},
		{"malformed body", http.MethodPost, "/api/networth", `{"income":`, http.StatusBadRequest, StatusInvalid},
		{"unknown field", http.MethodPost, "/api/coverage", `{"years":10}`, http.StatusBadRequest, StatusInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _, _ := newTestServer(t)
			rec := do(t, srv, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.code, rec.Code, rec.Body.String())
			body := decodeError(t, rec)
			assert.Equal(t, tt.status, body.Status)
			assert.NotEmpty(t, body.Message)
		})
	}
}

func TestErrorResponse_Internal(t *testing.T) {
	code, body := errorResponse(io.ErrUnexpectedEOF)
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, StatusError, body.Status)
	assert.Equal(t, "internal error", body.Message, "internal details stay in the log")
}

func TestFullFlow(t *testing.T) {
	srv, _, _ := newTestServer(t)

	require.Equal(t, http.StatusOK, do(t, srv, http.MethodPost, "/api/networth", netWorthBody).Code)

	rec := do(t, srv, http.MethodPost, "/api/coverage", `{"term":"tenYear"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var cov domain.CoverageEstimate
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cov))
	assert.Equal(t, "600000", cov.CoverageIncome.String())

	rec = do(t, srv, http.MethodPost, "/api/needs-gap", `{"basis":"income","life":100000}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var gap domain.NeedsGapResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &gap))
	assert.Equal(t, "470000", gap.Gap.String())
	assert.Equal(t, domain.GapShortfall, gap.Classification.Status)

	plan := `{"currentAge":30,"retirementAge":60,"maxAge":85,"currentSalary":60000,"expensePct":0.7,
	  "inflationRate":0.03,"retirementReturn":0.05,"epfReturn":0.06,"annualContribution":6000,"salaryGrowth":0.04}`
	rec = do(t, srv, http.MethodPost, "/api/retirement", plan)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var proj domain.RetirementProjection
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &proj))
	assert.Equal(t, "12000", proj.ExistingFund.String(), "stored retirement fund value is used")

	rec = do(t, srv, http.MethodGet, "/api/snapshot", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var snap SnapshotResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Equal(t, "5000", snap.Snapshot.Income.String())
	assert.Equal(t, "income", snap.Values[store.KeyCoverageBase])

	rec = do(t, srv, http.MethodDelete, "/api/snapshot", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = do(t, srv, http.MethodPost, "/api/coverage", `{"term":"1y"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, "cleared store has no snapshot")
}

func TestMethodNotAllowed(t *testing.T) {
	srv, _, _ := newTestServer(t)
	rec := do(t, srv, http.MethodGet, "/api/networth", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, StatusInvalid, decodeError(t, rec).Status)

	rec = do(t, srv, http.MethodPut, "/api/snapshot", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = do(t, srv, http.MethodGet, "/api/unknown", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
