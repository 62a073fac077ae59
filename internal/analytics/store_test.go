package analytics

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(context.Background(), filepath.Join(t.TempDir(), "analytics.db"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestHashIPIsStableAndOpaque(t *testing.T) {
	store := openTestStore(t)

	a := store.HashIP("203.0.113.7")
	require.Len(t, a, 16)
	require.Equal(t, a, store.HashIP("203.0.113.7"))
	require.NotEqual(t, a, store.HashIP("203.0.113.8"))
	require.NotContains(t, a, "203")
}

func TestStatsCountsVisitsAndOutcomes(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now.Add(-10 * 24 * time.Hour) }
	require.NoError(t, store.RecordVisit(ctx, "10.0.0.1", "curl", "/"))

	store.now = func() time.Time { return now.Add(-2 * 24 * time.Hour) }
	require.NoError(t, store.RecordVisit(ctx, "10.0.0.2", "firefox", "/"))

	store.now = func() time.Time { return now.Add(-time.Hour) }
	require.NoError(t, store.RecordVisit(ctx, "10.0.0.1", "curl", "/contact-form"))
	require.NoError(t, store.RecordContact(ctx, "sending"))
	require.NoError(t, store.RecordContact(ctx, "failed"))
	require.NoError(t, store.RecordContact(ctx, "sending"))
	require.NoError(t, store.RecordContact(ctx, "sent"))

	store.now = func() time.Time { return now }
	stats, err := store.Stats(ctx)
	require.NoError(t, err)

	require.EqualValues(t, 3, stats.TotalVisitors)
	require.EqualValues(t, 2, stats.UniqueVisitors)
	require.EqualValues(t, 1, stats.VisitorsToday)
	require.EqualValues(t, 2, stats.VisitorsThisWeek)
	require.Equal(t, ContactStats{Attempts: 2, Sent: 1, Failed: 1}, stats.Contact)
	require.Equal(t, []PathStat{{Path: "/", Views: 2}, {Path: "/contact-form", Views: 1}}, stats.TopPaths)

	require.Len(t, stats.RecentVisitors, 3)
	require.Equal(t, "/contact-form", stats.RecentVisitors[0].Path)
	require.NotEqual(t, "10.0.0.1", stats.RecentVisitors[0].HashedIP)
}

func TestCleanupRemovesOldRecords(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now.AddDate(-2, 0, 0) }
	require.NoError(t, store.RecordVisit(ctx, "10.0.0.1", "curl", "/"))
	require.NoError(t, store.RecordContact(ctx, "sent"))

	store.now = func() time.Time { return now }
	require.NoError(t, store.RecordVisit(ctx, "10.0.0.2", "curl", "/"))

	removed, err := store.Cleanup(ctx, 365*24*time.Hour)
	require.NoError(t, err)
	require.EqualValues(t, 2, removed)

	visitors, err := store.RecentVisitors(ctx, 10)
	require.NoError(t, err)
	require.Len(t, visitors, 1)
}
