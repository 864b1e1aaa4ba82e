package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Patrickdoranlearning/MOSEE/internal/common"
	"github.com/Patrickdoranlearning/MOSEE/internal/interfaces"
	"github.com/Patrickdoranlearning/MOSEE/internal/models"
)

type stubService struct {
	reports   map[string]*models.IntelligenceReport
	profiles  []*models.InvestmentProfile
	snapshots []*models.ProfileSnapshot
}

func (s *stubService) Analyze(_ context.Context, ticker string) (*models.IntelligenceReport, error) {
	if r, ok := s.reports[ticker]; ok {
		return r, nil
	}
	return nil, fmt.Errorf("no data for %s", ticker)
}

func (s *stubService) Screen(_ context.Context, _ []string, _ interfaces.ScreenOptions) ([]*models.InvestmentProfile, error) {
	return s.profiles, nil
}

func (s *stubService) History(_ context.Context, _ string, _ int) ([]*models.ProfileSnapshot, error) {
	return s.snapshots, nil
}

func (s *stubService) MonthOverMonth(_ context.Context, _ string) (*models.SnapshotDelta, error) {
	return nil, fmt.Errorf("no current snapshot")
}

func newTestMux() http.Handler {
	service := &stubService{
		reports: map[string]*models.IntelligenceReport{
			"ACME": {Ticker: "ACME", Verdict: models.VerdictBuy},
		},
		profiles: []*models.InvestmentProfile{
			{Ticker: "ACME", Rank: 1, Percentile: 100},
		},
		snapshots: []*models.ProfileSnapshot{
			{Ticker: "ACME", Month: "2026-08"},
		},
	}
	return buildMux(service, common.NewDefaultConfig())
}

func TestHealthEndpoint(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestMux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestAnalyzeEndpoint(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestMux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/analyze?ticker=acme", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var report models.IntelligenceReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, "ACME", report.Ticker)
	assert.Equal(t, models.VerdictBuy, report.Verdict)
}

func TestAnalyzeEndpointRequiresTicker(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestMux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/analyze", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyzeEndpointUpstreamError(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestMux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/analyze?ticker=NOPE", nil))
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestScreenEndpoint(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestMux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/screen?tickers=ACME,ZEN&style=garp", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Count    int                        `json:"count"`
		Profiles []models.InvestmentProfile `json:"profiles"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
	require.Len(t, resp.Profiles, 1)
	assert.Equal(t, "ACME", resp.Profiles[0].Ticker)
}

func TestScreenEndpointUnknownPreset(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestMux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/screen?preset=bogus", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHistoryEndpoint(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestMux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/history?ticker=ACME&months=6", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Ticker    string                   `json:"ticker"`
		Snapshots []models.ProfileSnapshot `json:"snapshots"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ACME", resp.Ticker)
	assert.Len(t, resp.Snapshots, 1)
}

func TestMethodNotAllowed(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestMux().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/analyze", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
