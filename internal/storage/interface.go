package storage

import (
	"context"
	"errors"
	"time"

	"github.com/momo1113/babyTracker-sub000/internal"
)

var (
	// ErrNotFound means the requested document does not exist. An empty
	// result set from a List call is not ErrNotFound.
	ErrNotFound = errors.New("storage: not found")
	// ErrStoreUnavailable wraps transient backing-store failures,
	// including per-call timeouts.
	ErrStoreUnavailable = errors.New("storage: unavailable")
)

// Range reads are inclusive on both ends. Saves are append-only: an
// existing document is never overwritten.

type FeedingLogRepository interface {
	SaveFeedingLog(ctx context.Context, log *internal.FeedingLog) error
	ListFeedingLogs(ctx context.Context, userID string) ([]internal.FeedingLog, error)
	ListFeedingLogsInRange(ctx context.Context, userID string, start, end time.Time) ([]internal.FeedingLog, error)
}

type DiaperLogRepository interface {
	SaveDiaperLog(ctx context.Context, log *internal.DiaperLog) error
	ListDiaperLogs(ctx context.Context, userID string) ([]internal.DiaperLog, error)
	ListDiaperLogsInRange(ctx context.Context, userID string, start, end time.Time) ([]internal.DiaperLog, error)
}

// Sleep range reads filter on StartTime: a session belongs to the day
// it started on.
type SleepLogRepository interface {
	SaveSleepLog(ctx context.Context, log *internal.SleepLog) error
	ListSleepLogs(ctx context.Context, userID string) ([]internal.SleepLog, error)
	ListSleepLogsInRange(ctx context.Context, userID string, start, end time.Time) ([]internal.SleepLog, error)
}

// ProfileRepository treats the profile as a single document.
// MutateProfile runs fn inside one read-modify-write so concurrent
// growth edits cannot drop each other's writes; exists tells fn whether
// the document was already there. Returning an error from fn aborts
// the write and propagates unchanged.
type ProfileRepository interface {
	GetProfile(ctx context.Context, userID string) (*internal.BabyProfile, error)
	MutateProfile(ctx context.Context, userID string, fn func(p *internal.BabyProfile, exists bool) error) (*internal.BabyProfile, error)
}
