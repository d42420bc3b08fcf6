package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/momo1113/babyTracker-sub000/internal"
	"github.com/momo1113/babyTracker-sub000/internal/storage"
)

var ErrInvalidDate = errors.New("invalid date")

// TimelineEntry is one row of a day's merged history view.
type TimelineEntry struct {
	Type    string    `json:"type"`
	Icon    string    `json:"icon"`
	Time    time.Time `json:"time"`
	Ago     string    `json:"ago"`
	Details string    `json:"details"`
}

// DayRange resolves a calendar date ("YYYY-MM-DD" or "today") into the
// day's first and last millisecond in local wall-clock time.
func DayRange(date string, now time.Time) (time.Time, time.Time, error) {
	var y int
	var m time.Month
	var d int
	if date == "today" {
		y, m, d = now.Date()
	} else {
		parsed, err := time.ParseInLocation("2006-01-02", date, time.Local)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, date)
		}
		y, m, d = parsed.Date()
	}
	start := time.Date(y, m, d, 0, 0, 0, 0, time.Local)
	end := time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), time.Local)
	return start, end, nil
}

// BuildDayTimeline fans out the three range reads concurrently and
// merges the results into one list sorted ascending by resolved
// instant. Sleep sessions resolve to their start time, so a session
// belongs to the day it started on. If any leg fails the whole call
// fails. An empty day yields an empty slice, not an error.
func BuildDayTimeline(
	ctx context.Context,
	feedings storage.FeedingLogRepository,
	diapers storage.DiaperLogRepository,
	sleeps storage.SleepLogRepository,
	userID, date string,
	now time.Time,
) ([]TimelineEntry, error) {
	start, end, err := DayRange(date, now)
	if err != nil {
		return nil, err
	}

	var fLogs []internal.FeedingLog
	var dLogs []internal.DiaperLog
	var sLogs []internal.SleepLog

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		fLogs, err = feedings.ListFeedingLogsInRange(gctx, userID, start, end)
		return err
	})
	g.Go(func() error {
		var err error
		dLogs, err = diapers.ListDiaperLogsInRange(gctx, userID, start, end)
		return err
	})
	g.Go(func() error {
		var err error
		sLogs, err = sleeps.ListSleepLogsInRange(gctx, userID, start, end)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Merge order is Feeding, Diaper, Sleep; the stable sort keeps that
	// order for entries sharing an instant.
	entries := make([]TimelineEntry, 0, len(fLogs)+len(dLogs)+len(sLogs))
	for i := range fLogs {
		l := &fLogs[i]
		entries = append(entries, TimelineEntry{
			Type:    internal.KindFeeding,
			Icon:    feedingIcon(l.FeedingType),
			Time:    l.Timestamp,
			Ago:     RelativeTime(l.Timestamp, now),
			Details: FormatFeedingDetails(l),
		})
	}
	for i := range dLogs {
		l := &dLogs[i]
		entries = append(entries, TimelineEntry{
			Type:    internal.KindDiaper,
			Icon:    "diaper",
			Time:    l.Timestamp,
			Ago:     RelativeTime(l.Timestamp, now),
			Details: FormatDiaperDetails(l),
		})
	}
	for i := range sLogs {
		l := &sLogs[i]
		entries = append(entries, TimelineEntry{
			Type:    internal.KindSleep,
			Icon:    "sleep",
			Time:    l.StartTime,
			Ago:     RelativeTime(l.StartTime, now),
			Details: FormatSleepDetails(l),
		})
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Time.Before(entries[j].Time) })
	return entries, nil
}

func feedingIcon(feedingType string) string {
	if feedingType == internal.FeedingBreast {
		return "breast"
	}
	return "bottle"
}
