package api

import (
	"github.com/momo1113/babyTracker-sub000/internal"
	"github.com/momo1113/babyTracker-sub000/internal/storage"
)

type App interface {
	Logger() internal.Logger
	FeedingRepo() storage.FeedingLogRepository
	DiaperRepo() storage.DiaperLogRepository
	SleepRepo() storage.SleepLogRepository
	ProfileRepo() storage.ProfileRepository
}
