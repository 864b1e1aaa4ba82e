// Package fmp provides a client for the Financial Modeling Prep API.
// It maps vendor statements to the canonical line-item names the metric
// extractor consumes, with series ordered oldest first.
package fmp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/Patrickdoranlearning/MOSEE/internal/common"
	"github.com/Patrickdoranlearning/MOSEE/internal/models"
)

// flexFloat64 handles JSON values that may be either a number or a string.
type flexFloat64 float64

func (f *flexFloat64) UnmarshalJSON(data []byte) error {
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*f = flexFloat64(num)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s == "" || s == "N/A" {
			*f = 0
			return nil
		}
		num, err := strconv.ParseFloat(s, 64)
		if err != nil {
			*f = 0
			return nil
		}
		*f = flexFloat64(num)
		return nil
	}
	return fmt.Errorf("cannot unmarshal %s into float64", string(data))
}

const (
	DefaultBaseURL   = "https://financialmodelingprep.com/api/v3"
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 5 // requests per second
	DefaultYears     = 10
)

// Client retrieves fundamentals from FMP.
type Client struct {
	baseURL    string
	apiKey     string
	years      int
	httpClient *http.Client
	logger     *common.Logger
	limiter    *rate.Limiter
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the rate limit
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithYears sets how many annual statements to request
func WithYears(years int) ClientOption {
	return func(c *Client) {
		c.years = years
	}
}

// NewClient creates a new FMP client
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		years:   DefaultYears,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:  common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError represents an API error
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("FMP API error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

// get performs a rate-limited GET request
func (c *Client) get(ctx context.Context, path string, params url.Values, result interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	if params == nil {
		params = url.Values{}
	}
	params.Set("apikey", c.apiKey)

	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	c.logger.Debug().Str("url", c.baseURL+path).Msg("FMP API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
			Endpoint:   path,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// incomeRow is one annual income statement, most recent first on the wire.
type incomeRow struct {
	Date             string      `json:"date"`
	Revenue          flexFloat64 `json:"revenue"`
	GrossProfit      flexFloat64 `json:"grossProfit"`
	OperatingIncome  flexFloat64 `json:"operatingIncome"`
	NetIncome        flexFloat64 `json:"netIncome"`
	InterestExpense  flexFloat64 `json:"interestExpense"`
	IncomeTaxExpense flexFloat64 `json:"incomeTaxExpense"`
	WeightedShares   flexFloat64 `json:"weightedAverageShsOut"`
}

type balanceRow struct {
	Date               string      `json:"date"`
	Cash               flexFloat64 `json:"cashAndCashEquivalents"`
	CurrentAssets      flexFloat64 `json:"totalCurrentAssets"`
	CurrentLiabilities flexFloat64 `json:"totalCurrentLiabilities"`
	TotalAssets        flexFloat64 `json:"totalAssets"`
	TotalLiabilities   flexFloat64 `json:"totalLiabilities"`
	Intangibles        flexFloat64 `json:"goodwillAndIntangibleAssets"`
	NetPPE             flexFloat64 `json:"propertyPlantEquipmentNet"`
	Inventory          flexFloat64 `json:"inventory"`
	TotalDebt          flexFloat64 `json:"totalDebt"`
	LongTermDebt       flexFloat64 `json:"longTermDebt"`
	Equity             flexFloat64 `json:"totalStockholdersEquity"`
}

type cashFlowRow struct {
	Date          string      `json:"date"`
	NetIncome     flexFloat64 `json:"netIncome"`
	Depreciation  flexFloat64 `json:"depreciationAndAmortization"`
	Capex         flexFloat64 `json:"capitalExpenditure"`
	FreeCashFlow  flexFloat64 `json:"freeCashFlow"`
	DividendsPaid flexFloat64 `json:"dividendsPaid"`
	Buybacks      flexFloat64 `json:"commonStockRepurchased"`
}

type profileRow struct {
	Symbol      string      `json:"symbol"`
	CompanyName string      `json:"companyName"`
	Country     string      `json:"country"`
	Industry    string      `json:"industry"`
	Currency    string      `json:"currency"`
	Price       flexFloat64 `json:"price"`
	MarketCap   flexFloat64 `json:"mktCap"`
}

// GetStatements retrieves annual statements and market scalars for a ticker.
func (c *Client) GetStatements(ctx context.Context, ticker string) (*models.FinancialStatements, error) {
	params := url.Values{}
	params.Set("period", "annual")
	params.Set("limit", strconv.Itoa(c.years))

	var income []incomeRow
	if err := c.get(ctx, "/income-statement/"+ticker, params, &income); err != nil {
		return nil, fmt.Errorf("failed to get income statement for %s: %w", ticker, err)
	}

	var balance []balanceRow
	if err := c.get(ctx, "/balance-sheet-statement/"+ticker, params, &balance); err != nil {
		return nil, fmt.Errorf("failed to get balance sheet for %s: %w", ticker, err)
	}

	var cashFlow []cashFlowRow
	if err := c.get(ctx, "/cash-flow-statement/"+ticker, params, &cashFlow); err != nil {
		return nil, fmt.Errorf("failed to get cash flow statement for %s: %w", ticker, err)
	}

	var profiles []profileRow
	if err := c.get(ctx, "/profile/"+ticker, nil, &profiles); err != nil {
		return nil, fmt.Errorf("failed to get profile for %s: %w", ticker, err)
	}

	fs := &models.FinancialStatements{
		Ticker:       ticker,
		Income:       incomeStatement(income),
		BalanceSheet: balanceStatement(balance),
		CashFlow:     cashFlowStatement(cashFlow),
		AsOf:         time.Now().UTC(),
	}

	if len(income) > 0 {
		fs.SharesOutstanding = float64(income[0].WeightedShares)
	}
	if len(profiles) > 0 {
		p := profiles[0]
		fs.CurrentPrice = float64(p.Price)
		fs.AveragePrice = float64(p.Price)
		fs.MarketCap = float64(p.MarketCap)
		fs.Currency = p.Currency
		if fs.SharesOutstanding == 0 && p.Price > 0 {
			fs.SharesOutstanding = float64(p.MarketCap) / float64(p.Price)
		}
	}

	c.logger.Debug().
		Str("ticker", ticker).
		Int("income_years", len(income)).
		Int("balance_years", len(balance)).
		Int("cashflow_years", len(cashFlow)).
		Msg("FMP statements retrieved")

	return fs, nil
}

// GetCompanyInfo retrieves descriptive company fields.
func (c *Client) GetCompanyInfo(ctx context.Context, ticker string) (*models.CompanyInfo, error) {
	var profiles []profileRow
	if err := c.get(ctx, "/profile/"+ticker, nil, &profiles); err != nil {
		return nil, fmt.Errorf("failed to get profile for %s: %w", ticker, err)
	}
	if len(profiles) == 0 {
		return nil, fmt.Errorf("no profile data for %s", ticker)
	}
	p := profiles[0]
	return &models.CompanyInfo{
		Ticker:   ticker,
		Name:     p.CompanyName,
		Country:  p.Country,
		Industry: p.Industry,
		Currency: p.Currency,
		CapSize:  CapSize(float64(p.MarketCap)),
	}, nil
}

// CapSize classifies market capitalization into the screening buckets.
func CapSize(marketCap float64) string {
	switch {
	case marketCap >= 200e9:
		return "mega"
	case marketCap >= 10e9:
		return "large"
	case marketCap >= 2e9:
		return "mid"
	case marketCap > 0:
		return "small"
	default:
		return ""
	}
}

// Wire rows arrive most recent first; canonical series are oldest first.

func incomeStatement(rows []incomeRow) models.Statement {
	st := models.Statement{}
	n := len(rows)
	for i := n - 1; i >= 0; i-- {
		r := rows[i]
		appendLine(st, models.LineRevenue, r.Revenue)
		appendLine(st, models.LineGrossProfit, r.GrossProfit)
		appendLine(st, models.LineEBIT, r.OperatingIncome)
		appendLine(st, models.LineNetIncome, r.NetIncome)
		appendLine(st, models.LineInterestExpense, r.InterestExpense)
		appendLine(st, models.LineIncomeTax, r.IncomeTaxExpense)
	}
	return st
}

func balanceStatement(rows []balanceRow) models.Statement {
	st := models.Statement{}
	n := len(rows)
	for i := n - 1; i >= 0; i-- {
		r := rows[i]
		appendLine(st, models.LineCash, r.Cash)
		appendLine(st, models.LineCurrentAssets, r.CurrentAssets)
		appendLine(st, models.LineCurrentLiabilities, r.CurrentLiabilities)
		appendLine(st, models.LineTotalAssets, r.TotalAssets)
		appendLine(st, models.LineTotalLiabilities, r.TotalLiabilities)
		appendLine(st, models.LineIntangibleAssets, r.Intangibles)
		appendLine(st, models.LineNetPPE, r.NetPPE)
		appendLine(st, models.LineInventory, r.Inventory)
		appendLine(st, models.LineTotalDebt, r.TotalDebt)
		appendLine(st, models.LineLongTermDebt, r.LongTermDebt)
		appendLine(st, models.LineEquity, r.Equity)
	}
	return st
}

func cashFlowStatement(rows []cashFlowRow) models.Statement {
	st := models.Statement{}
	n := len(rows)
	for i := n - 1; i >= 0; i-- {
		r := rows[i]
		appendLine(st, models.LineNetIncome, r.NetIncome)
		appendLine(st, models.LineDepreciation, r.Depreciation)
		appendLine(st, models.LineCapex, r.Capex)
		appendLine(st, models.LineFreeCashFlow, r.FreeCashFlow)
		appendLine(st, models.LineDividendsPaid, r.DividendsPaid)
		appendLine(st, models.LineBuybacks, r.Buybacks)
	}
	return st
}

func appendLine(st models.Statement, name string, v flexFloat64) {
	st[name] = append(st[name], float64(v))
}
