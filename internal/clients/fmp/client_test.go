package fmp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Patrickdoranlearning/MOSEE/internal/models"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("apikey") == "" {
			http.Error(w, "missing api key", http.StatusForbidden)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasPrefix(r.URL.Path, "/income-statement/"):
			// most recent first, as the vendor sends it
			w.Write([]byte(`[
				{"date":"2025-12-31","revenue":1200,"grossProfit":480,"operatingIncome":300,"netIncome":240,"interestExpense":10,"incomeTaxExpense":60,"weightedAverageShsOut":100},
				{"date":"2024-12-31","revenue":"1000","grossProfit":400,"operatingIncome":250,"netIncome":200,"interestExpense":12,"incomeTaxExpense":50,"weightedAverageShsOut":100}
			]`))
		case strings.HasPrefix(r.URL.Path, "/balance-sheet-statement/"):
			w.Write([]byte(`[
				{"date":"2025-12-31","cashAndCashEquivalents":500,"totalCurrentAssets":900,"totalCurrentLiabilities":400,"totalAssets":3000,"totalLiabilities":1200,"goodwillAndIntangibleAssets":100,"propertyPlantEquipmentNet":800,"inventory":150,"totalDebt":600,"longTermDebt":500,"totalStockholdersEquity":1800},
				{"date":"2024-12-31","cashAndCashEquivalents":400,"totalCurrentAssets":800,"totalCurrentLiabilities":380,"totalAssets":2800,"totalLiabilities":1150,"goodwillAndIntangibleAssets":90,"propertyPlantEquipmentNet":760,"inventory":140,"totalDebt":620,"longTermDebt":520,"totalStockholdersEquity":1650}
			]`))
		case strings.HasPrefix(r.URL.Path, "/cash-flow-statement/"):
			w.Write([]byte(`[
				{"date":"2025-12-31","netIncome":240,"depreciationAndAmortization":50,"capitalExpenditure":-40,"freeCashFlow":250,"dividendsPaid":-30,"commonStockRepurchased":-20},
				{"date":"2024-12-31","netIncome":200,"depreciationAndAmortization":48,"capitalExpenditure":-38,"freeCashFlow":210,"dividendsPaid":-28,"commonStockRepurchased":0}
			]`))
		case strings.HasPrefix(r.URL.Path, "/profile/"):
			w.Write([]byte(`[
				{"symbol":"ACME","companyName":"Acme Corp","country":"United States","industry":"Widgets","currency":"USD","price":25.5,"mktCap":2550}
			]`))
		default:
			http.NotFound(w, r)
		}
	}))
}

func TestGetStatements(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL), WithRateLimit(100))
	fs, err := client.GetStatements(context.Background(), "ACME")
	require.NoError(t, err)

	assert.Equal(t, "ACME", fs.Ticker)
	assert.Equal(t, 25.5, fs.CurrentPrice)
	assert.Equal(t, 2550.0, fs.MarketCap)
	assert.Equal(t, 100.0, fs.SharesOutstanding)
	assert.Equal(t, "USD", fs.Currency)

	// series are reversed to oldest first; the string "1000" parses too
	assert.Equal(t, models.Series{1000, 1200}, fs.Income.Line(models.LineRevenue))
	assert.Equal(t, models.Series{200, 240}, fs.CashFlow.Line(models.LineNetIncome))
	assert.Equal(t, models.Series{-38, -40}, fs.CashFlow.Line(models.LineCapex))
	assert.Equal(t, models.Series{1650, 1800}, fs.BalanceSheet.Line(models.LineEquity))
	assert.Equal(t, 2, fs.CashFlow.Years())
}

func TestGetCompanyInfo(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL), WithRateLimit(100))
	info, err := client.GetCompanyInfo(context.Background(), "ACME")
	require.NoError(t, err)

	assert.Equal(t, "Acme Corp", info.Name)
	assert.Equal(t, "United States", info.Country)
	assert.Equal(t, "Widgets", info.Industry)
	assert.Equal(t, "small", info.CapSize)
}

func TestGetStatementsAPIError(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()

	client := NewClient("", WithBaseURL(srv.URL), WithRateLimit(100))
	_, err := client.GetStatements(context.Background(), "ACME")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
}

func TestCapSize(t *testing.T) {
	tests := []struct {
		marketCap float64
		expected  string
	}{
		{500e9, "mega"},
		{50e9, "large"},
		{5e9, "mid"},
		{500e6, "small"},
		{0, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, CapSize(tt.marketCap))
	}
}

func TestFlexFloat64(t *testing.T) {
	var f flexFloat64
	require.NoError(t, f.UnmarshalJSON([]byte(`"3.14"`)))
	assert.Equal(t, flexFloat64(3.14), f)

	require.NoError(t, f.UnmarshalJSON([]byte(`"N/A"`)))
	assert.Equal(t, flexFloat64(0), f)

	require.NoError(t, f.UnmarshalJSON([]byte(`42`)))
	assert.Equal(t, flexFloat64(42), f)

	assert.Error(t, f.UnmarshalJSON([]byte(`{}`)))
}
