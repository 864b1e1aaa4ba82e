package historydb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Patrickdoranlearning/MOSEE/internal/common"
	"github.com/Patrickdoranlearning/MOSEE/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(common.NewSilentLogger(), t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func snapshotFixture(ticker, month string, price, quality float64) *models.ProfileSnapshot {
	return &models.ProfileSnapshot{
		Ticker: ticker,
		Month:  month,
		Profile: models.InvestmentProfile{
			Ticker:       ticker,
			CurrentPrice: price,
			QualityScore: quality,
			Verdict:      models.VerdictHold,
			MOSEE: models.MOSEEScores{
				MOS: models.MOSScores{
					DCF: models.DefinedRatio(price / 100),
					PAD: models.UndefinedRatio(),
				},
				EarningsEquity: models.DefinedRatio(0.08),
			},
		},
		CreatedAt: time.Now().UTC(),
	}
}

func TestSaveSnapshotUpsertsByMonth(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveSnapshot(ctx, snapshotFixture("ACME", "2026-08", 50, 70)))
	require.NoError(t, store.SaveSnapshot(ctx, snapshotFixture("ACME", "2026-08", 55, 72)))

	snap, err := store.GetSnapshot(ctx, "ACME", "2026-08")
	require.NoError(t, err)
	assert.Equal(t, 55.0, snap.Profile.CurrentPrice)

	history, err := store.TickerHistory(ctx, "ACME", 0)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestSaveSnapshotRequiresKey(t *testing.T) {
	store := newTestStore(t)
	err := store.SaveSnapshot(context.Background(), &models.ProfileSnapshot{Ticker: "ACME"})
	assert.Error(t, err)
}

func TestGetSnapshotNotFound(t *testing.T) {
	store := newTestStore(t)
	_, err := store.GetSnapshot(context.Background(), "ACME", "2026-01")
	assert.ErrorContains(t, err, "no snapshot")
}

func TestPreviousSnapshot(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveSnapshot(ctx, snapshotFixture("ACME", "2026-05", 40, 60)))
	require.NoError(t, store.SaveSnapshot(ctx, snapshotFixture("ACME", "2026-07", 45, 65)))
	require.NoError(t, store.SaveSnapshot(ctx, snapshotFixture("OTHR", "2026-07", 10, 30)))

	prev, err := store.PreviousSnapshot(ctx, "ACME", "2026-08")
	require.NoError(t, err)
	require.NotNil(t, prev)
	assert.Equal(t, "2026-07", prev.Month)

	prev, err = store.PreviousSnapshot(ctx, "ACME", "2026-05")
	require.NoError(t, err)
	assert.Nil(t, prev)
}

func TestTickerHistoryOrderAndLimit(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, month := range []string{"2026-03", "2026-01", "2026-02"} {
		require.NoError(t, store.SaveSnapshot(ctx, snapshotFixture("ACME", month, 50, 70)))
	}

	history, err := store.TickerHistory(ctx, "ACME", 0)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, "2026-01", history[0].Month)
	assert.Equal(t, "2026-03", history[2].Month)

	history, err = store.TickerHistory(ctx, "ACME", 2)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "2026-02", history[0].Month)
}

func TestMonths(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveSnapshot(ctx, snapshotFixture("ACME", "2026-01", 50, 70)))
	require.NoError(t, store.SaveSnapshot(ctx, snapshotFixture("OTHR", "2026-02", 10, 30)))
	require.NoError(t, store.SaveSnapshot(ctx, snapshotFixture("ACME", "2026-02", 52, 71)))

	months, err := store.Months(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-02", "2026-01"}, months)
}

func TestCompare(t *testing.T) {
	prev := snapshotFixture("ACME", "2026-07", 40, 60)
	curr := snapshotFixture("ACME", "2026-08", 50, 72)
	curr.Profile.Verdict = models.VerdictBuy

	delta := Compare(curr, prev)
	require.NotNil(t, delta)
	assert.Equal(t, "2026-07", delta.FromMonth)
	assert.Equal(t, "2026-08", delta.ToMonth)
	assert.InDelta(t, 25.0, delta.PriceChange, 1e-9)
	assert.InDelta(t, 12.0, delta.QualityChange, 1e-9)
	assert.Equal(t, models.VerdictHold, delta.VerdictFrom)
	assert.Equal(t, models.VerdictBuy, delta.VerdictTo)
	assert.InDelta(t, 0.4, delta.BestMoSFrom.Value, 1e-9)
	assert.InDelta(t, 0.5, delta.BestMoSTo.Value, 1e-9)

	assert.Nil(t, Compare(curr, nil))
}
