// Package interfaces defines the service contracts for MOSEE
package interfaces

import (
	"context"

	"github.com/Patrickdoranlearning/MOSEE/internal/models"
)

// FundamentalsClient retrieves normalized statements and company
// descriptors from the financial data provider.
type FundamentalsClient interface {
	// GetStatements retrieves annual statements plus current market
	// scalars, normalized to canonical line-item names with series
	// ordered oldest first.
	GetStatements(ctx context.Context, ticker string) (*models.FinancialStatements, error)

	// GetCompanyInfo retrieves descriptive fields used for filtering.
	GetCompanyInfo(ctx context.Context, ticker string) (*models.CompanyInfo, error)
}
