package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/momo1113/babyTracker-sub000/internal"
)

const detailSeparator = " • "

// FormatFeedingDetails renders a feeding for the timeline view:
// "Breast (Left) • 10 minutes" or "Bottle • 4 oz", with notes appended
// when present.
func FormatFeedingDetails(l *internal.FeedingLog) string {
	var parts []string
	if l.FeedingType == internal.FeedingBreast {
		parts = append(parts, fmt.Sprintf("%s (%s)", l.FeedingType, l.Side))
		if l.Duration != "" {
			parts = append(parts, l.Duration+" minutes")
		}
	} else {
		parts = append(parts, l.FeedingType)
		if l.Amount != "" && l.Unit != "" {
			parts = append(parts, l.Amount+" "+l.Unit)
		}
	}
	if l.Notes != "" {
		parts = append(parts, l.Notes)
	}
	return strings.Join(parts, detailSeparator)
}

// FormatDiaperDetails joins type, color, consistency and notes,
// skipping absent fields.
func FormatDiaperDetails(l *internal.DiaperLog) string {
	parts := []string{l.Type}
	if l.Color != "" {
		parts = append(parts, l.Color)
	}
	if l.Consistency != "" {
		parts = append(parts, l.Consistency)
	}
	if l.Notes != "" {
		parts = append(parts, l.Notes)
	}
	return strings.Join(parts, detailSeparator)
}

// FormatSleepDetails renders duration, quality and location, with
// notes appended when present.
func FormatSleepDetails(l *internal.SleepLog) string {
	parts := []string{
		FormatSleepDuration(SleepDurationMinutes(l.StartTime, l.EndTime)),
		l.Quality,
		l.Location,
	}
	if l.Notes != "" {
		parts = append(parts, l.Notes)
	}
	return strings.Join(parts, detailSeparator)
}

// SleepDurationMinutes floors the session length to whole minutes.
// Duration math here floors; relative-time humanization rounds.
func SleepDurationMinutes(start, end time.Time) int {
	return int(end.Sub(start).Minutes())
}

// FormatSleepDuration renders "<h>h <m>m" from an hour up, "<m> min"
// below.
func FormatSleepDuration(minutes int) string {
	if minutes >= 60 {
		return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
	}
	return fmt.Sprintf("%d min", minutes)
}

// RelativeTime humanizes an instant against now ("5 minutes ago").
// Future instants, e.g. from clock skew, render as "from now" instead
// of failing.
func RelativeTime(t, now time.Time) string {
	return humanize.RelTime(t, now, "ago", "from now")
}

// CountByKind tallies timeline entries per kind, zero-initialized so
// absent kinds still report 0.
func CountByKind(entries []TimelineEntry) map[string]int {
	counts := map[string]int{
		internal.KindFeeding: 0,
		internal.KindDiaper:  0,
		internal.KindSleep:   0,
	}
	for _, e := range entries {
		counts[e.Type]++
	}
	return counts
}
