// Package historydb implements HistoryStore using BadgerHold.
// It keeps one profile snapshot per ticker per month.
package historydb

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/timshannon/badgerhold/v4"

	"github.com/Patrickdoranlearning/MOSEE/internal/common"
	"github.com/Patrickdoranlearning/MOSEE/internal/models"
)

// Store implements interfaces.HistoryStore using BadgerHold.
type Store struct {
	db     *badgerhold.Store
	logger *common.Logger
}

// NewStore creates a history store backed by BadgerHold.
func NewStore(logger *common.Logger, path string) (*Store, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create historydb path %s: %w", path, err)
	}
	opts := badgerhold.DefaultOptions
	opts.Dir = path
	opts.ValueDir = path
	opts.Logger = nil
	db, err := badgerhold.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open historydb at %s: %w", path, err)
	}
	logger.Info().Str("path", path).Msg("HistoryDB opened")
	return &Store{db: db, logger: logger}, nil
}

// keySep is the composite key separator. A null byte prevents collisions
// with tickers containing "-" or ":".
const keySep = "\x00"

func snapshotKey(ticker, month string) string {
	return ticker + keySep + month
}

func (s *Store) SaveSnapshot(_ context.Context, snapshot *models.ProfileSnapshot) error {
	if snapshot.Ticker == "" || snapshot.Month == "" {
		return fmt.Errorf("snapshot requires ticker and month, got %q / %q", snapshot.Ticker, snapshot.Month)
	}
	snapshot.ID = snapshotKey(snapshot.Ticker, snapshot.Month)
	if snapshot.CreatedAt.IsZero() {
		snapshot.CreatedAt = time.Now().UTC()
	}
	if err := s.db.Upsert(snapshot.ID, snapshot); err != nil {
		return fmt.Errorf("failed to save snapshot %s/%s: %w", snapshot.Ticker, snapshot.Month, err)
	}
	return nil
}

func (s *Store) GetSnapshot(_ context.Context, ticker, month string) (*models.ProfileSnapshot, error) {
	var snap models.ProfileSnapshot
	if err := s.db.Get(snapshotKey(ticker, month), &snap); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("no snapshot for %s in %s", ticker, month)
		}
		return nil, fmt.Errorf("failed to get snapshot %s/%s: %w", ticker, month, err)
	}
	return &snap, nil
}

func (s *Store) PreviousSnapshot(_ context.Context, ticker, month string) (*models.ProfileSnapshot, error) {
	snaps, err := s.tickerSnapshots(ticker)
	if err != nil {
		return nil, err
	}
	var prev *models.ProfileSnapshot
	for i := range snaps {
		if snaps[i].Month >= month {
			continue
		}
		if prev == nil || snaps[i].Month > prev.Month {
			prev = snaps[i]
		}
	}
	return prev, nil
}

func (s *Store) TickerHistory(_ context.Context, ticker string, limit int) ([]*models.ProfileSnapshot, error) {
	snaps, err := s.tickerSnapshots(ticker)
	if err != nil {
		return nil, err
	}
	// YYYY-MM sorts chronologically as text
	sort.Slice(snaps, func(i, j int) bool { return snaps[i].Month < snaps[j].Month })
	if limit > 0 && len(snaps) > limit {
		snaps = snaps[len(snaps)-limit:]
	}
	return snaps, nil
}

func (s *Store) Months(_ context.Context) ([]string, error) {
	var all []models.ProfileSnapshot
	if err := s.db.Find(&all, nil); err != nil {
		return nil, fmt.Errorf("failed to list months: %w", err)
	}
	seen := map[string]bool{}
	var months []string
	for i := range all {
		if !seen[all[i].Month] {
			seen[all[i].Month] = true
			months = append(months, all[i].Month)
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(months)))
	return months, nil
}

func (s *Store) tickerSnapshots(ticker string) ([]*models.ProfileSnapshot, error) {
	var found []models.ProfileSnapshot
	if err := s.db.Find(&found, badgerhold.Where("Ticker").Eq(ticker).Index("Ticker")); err != nil {
		return nil, fmt.Errorf("failed to query snapshots for %s: %w", ticker, err)
	}
	result := make([]*models.ProfileSnapshot, 0, len(found))
	for i := range found {
		snap := found[i]
		result = append(result, &snap)
	}
	return result, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Compare builds the month-over-month delta between two snapshots of the
// same ticker. Previous may be nil, in which case there is no delta.
func Compare(current, previous *models.ProfileSnapshot) *models.SnapshotDelta {
	if current == nil || previous == nil {
		return nil
	}
	delta := &models.SnapshotDelta{
		Ticker:      current.Ticker,
		FromMonth:   previous.Month,
		ToMonth:     current.Month,
		VerdictFrom: previous.Profile.Verdict,
		VerdictTo:   current.Profile.Verdict,
	}
	if previous.Profile.CurrentPrice > 0 {
		delta.PriceChange = (current.Profile.CurrentPrice - previous.Profile.CurrentPrice) /
			previous.Profile.CurrentPrice * 100
	}
	delta.QualityChange = current.Profile.QualityScore - previous.Profile.QualityScore
	_, delta.BestMoSFrom = previous.Profile.MOSEE.MOS.Best()
	_, delta.BestMoSTo = current.Profile.MOSEE.MOS.Best()
	return delta
}
