package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/momo1113/babyTracker-sub000/internal"
)

func newTestFileStorage(t *testing.T) *FileStorage {
	t.Helper()
	s, err := NewFileStorage(t.TempDir(), internal.NewZapLogger(zap.NewNop().Sugar()))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestFileStorage_FeedingRoundTrip(t *testing.T) {
	s := newTestFileStorage(t)
	ctx := context.Background()

	log := &internal.FeedingLog{
		ID:          "f1",
		UserID:      "u1",
		FeedingType: "Bottle",
		Amount:      "4",
		Unit:        "oz",
		Timestamp:   time.Date(2025, 7, 18, 9, 0, 0, 0, time.Local),
		Notes:       "morning",
		CreatedAt:   time.Now(),
	}
	require.NoError(t, s.SaveFeedingLog(ctx, log))

	logs, err := s.ListFeedingLogs(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "f1", logs[0].ID)
	assert.Equal(t, "u1", logs[0].UserID)
	assert.Equal(t, "Bottle", logs[0].FeedingType)
	assert.Equal(t, "4", logs[0].Amount)
	assert.Equal(t, "morning", logs[0].Notes)
}

func TestFileStorage_UserIsolation(t *testing.T) {
	s := newTestFileStorage(t)
	ctx := context.Background()

	require.NoError(t, s.SaveDiaperLog(ctx, &internal.DiaperLog{ID: "d1", UserID: "u1", Type: "Pee", Timestamp: time.Now()}))
	require.NoError(t, s.SaveDiaperLog(ctx, &internal.DiaperLog{ID: "d2", UserID: "u2", Type: "Poop", Timestamp: time.Now()}))

	logs, err := s.ListDiaperLogs(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "d1", logs[0].ID)

	logs, err = s.ListDiaperLogs(ctx, "u3")
	require.NoError(t, err)
	assert.Empty(t, logs)
}

func TestFileStorage_RangeInclusiveBothEnds(t *testing.T) {
	s := newTestFileStorage(t)
	ctx := context.Background()

	dayStart := time.Date(2025, 7, 18, 0, 0, 0, 0, time.Local)
	dayEnd := time.Date(2025, 7, 18, 23, 59, 59, int(999*time.Millisecond), time.Local)

	stamps := map[string]time.Time{
		"at-start":    dayStart,
		"at-end":      dayEnd,
		"before":      dayStart.Add(-time.Millisecond),
		"after":       dayEnd.Add(time.Millisecond),
		"mid-morning": time.Date(2025, 7, 18, 9, 30, 0, 0, time.Local),
	}
	for id, ts := range stamps {
		require.NoError(t, s.SaveFeedingLog(ctx, &internal.FeedingLog{ID: id, UserID: "u1", FeedingType: "Formula", Timestamp: ts}))
	}

	logs, err := s.ListFeedingLogsInRange(ctx, "u1", dayStart, dayEnd)
	require.NoError(t, err)
	got := make([]string, 0, len(logs))
	for _, l := range logs {
		got = append(got, l.ID)
	}
	assert.ElementsMatch(t, []string{"at-start", "at-end", "mid-morning"}, got)
}

func TestFileStorage_SleepRangeKeyedOnStartTime(t *testing.T) {
	s := newTestFileStorage(t)
	ctx := context.Background()

	dayStart := time.Date(2025, 7, 18, 0, 0, 0, 0, time.Local)
	dayEnd := time.Date(2025, 7, 18, 23, 59, 59, int(999*time.Millisecond), time.Local)

	// Started yesterday, ended today: excluded.
	require.NoError(t, s.SaveSleepLog(ctx, &internal.SleepLog{
		ID: "s1", UserID: "u1", Type: "Night Sleep",
		StartTime: dayStart.Add(-2 * time.Hour),
		EndTime:   dayStart.Add(5 * time.Hour),
	}))
	// Started today, ended tomorrow: included.
	require.NoError(t, s.SaveSleepLog(ctx, &internal.SleepLog{
		ID: "s2", UserID: "u1", Type: "Night Sleep",
		StartTime: dayEnd.Add(-time.Hour),
		EndTime:   dayEnd.Add(6 * time.Hour),
	}))

	logs, err := s.ListSleepLogsInRange(ctx, "u1", dayStart, dayEnd)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "s2", logs[0].ID)
}

func TestFileStorage_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	logger := internal.NewZapLogger(zap.NewNop().Sugar())

	s, err := NewFileStorage(dir, logger)
	require.NoError(t, err)
	require.NoError(t, s.SaveFeedingLog(context.Background(), &internal.FeedingLog{
		ID: "f1", UserID: "u1", FeedingType: "Breast", Side: "Left", Timestamp: time.Now(),
	}))
	require.NoError(t, s.Close())

	reopened, err := NewFileStorage(dir, logger)
	require.NoError(t, err)
	defer reopened.Close()

	logs, err := reopened.ListFeedingLogs(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "Left", logs[0].Side)
}

func TestFileStorage_ProfileNotFound(t *testing.T) {
	s := newTestFileStorage(t)

	_, err := s.GetProfile(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStorage_MutateProfileUpsertAndMerge(t *testing.T) {
	s := newTestFileStorage(t)
	ctx := context.Background()

	p, err := s.MutateProfile(ctx, "u1", func(p *internal.BabyProfile, exists bool) error {
		assert.False(t, exists)
		p.Name = "June"
		p.GrowthData = []internal.GrowthEntry{{Date: "2025-07-01", Weight: "6.2", Height: "60"}}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "u1", p.UserID)
	assert.False(t, p.UpdatedAt.IsZero())

	// Same date wins over the stored entry.
	p, err = s.MutateProfile(ctx, "u1", func(p *internal.BabyProfile, exists bool) error {
		assert.True(t, exists)
		for i := range p.GrowthData {
			if p.GrowthData[i].Date == "2025-07-01" {
				p.GrowthData[i].Weight = "6.4"
			}
		}
		return nil
	})
	require.NoError(t, err)
	require.Len(t, p.GrowthData, 1)
	assert.Equal(t, "6.4", p.GrowthData[0].Weight)

	stored, err := s.GetProfile(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "June", stored.Name)
}

func TestFileStorage_ProfileSnapshotsDoNotAliasStore(t *testing.T) {
	s := newTestFileStorage(t)
	ctx := context.Background()

	_, err := s.MutateProfile(ctx, "u1", func(p *internal.BabyProfile, exists bool) error {
		p.Name = "June"
		p.GrowthData = []internal.GrowthEntry{
			{Date: "2025-07-01", Weight: "6.2"},
			{Date: "2025-08-01", Weight: "6.8"},
		}
		return nil
	})
	require.NoError(t, err)

	snapshot, err := s.GetProfile(ctx, "u1")
	require.NoError(t, err)

	// A delete-style compaction inside fn must not write through into
	// snapshots handed out earlier.
	_, err = s.MutateProfile(ctx, "u1", func(p *internal.BabyProfile, exists bool) error {
		kept := p.GrowthData[:0]
		for _, e := range p.GrowthData {
			if e.Date != "2025-07-01" {
				kept = append(kept, e)
			}
		}
		p.GrowthData = kept
		return nil
	})
	require.NoError(t, err)

	require.Len(t, snapshot.GrowthData, 2)
	assert.Equal(t, "2025-07-01", snapshot.GrowthData[0].Date)
	assert.Equal(t, "6.2", snapshot.GrowthData[0].Weight)

	stored, err := s.GetProfile(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, stored.GrowthData, 1)
	assert.Equal(t, "2025-08-01", stored.GrowthData[0].Date)
}

func TestFileStorage_MutateProfileErrorLeavesStateUntouched(t *testing.T) {
	s := newTestFileStorage(t)
	ctx := context.Background()

	_, err := s.MutateProfile(ctx, "u1", func(p *internal.BabyProfile, exists bool) error {
		if !exists {
			return ErrNotFound
		}
		return nil
	})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.GetProfile(ctx, "u1")
	assert.ErrorIs(t, err, ErrNotFound)
}
