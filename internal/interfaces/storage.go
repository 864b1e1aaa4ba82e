// Package interfaces defines the service contracts for MOSEE
package interfaces

import (
	"context"

	"github.com/Patrickdoranlearning/MOSEE/internal/models"
)

// StorageManager coordinates the storage areas.
type StorageManager interface {
	HistoryStore() HistoryStore
	Close() error
}

// HistoryStore persists monthly profile snapshots. One snapshot per
// ticker per month; re-saving within a month overwrites.
type HistoryStore interface {
	// SaveSnapshot upserts the snapshot for its ticker and month.
	SaveSnapshot(ctx context.Context, snapshot *models.ProfileSnapshot) error

	// GetSnapshot retrieves one ticker's snapshot for a month (YYYY-MM).
	GetSnapshot(ctx context.Context, ticker, month string) (*models.ProfileSnapshot, error)

	// PreviousSnapshot returns the most recent snapshot strictly before
	// the given month, or nil when none exists.
	PreviousSnapshot(ctx context.Context, ticker, month string) (*models.ProfileSnapshot, error)

	// TickerHistory lists a ticker's snapshots in chronological order,
	// at most limit entries (0 = all).
	TickerHistory(ctx context.Context, ticker string, limit int) ([]*models.ProfileSnapshot, error)

	// Months lists the months with stored data, most recent first.
	Months(ctx context.Context) ([]string, error)

	Close() error
}
