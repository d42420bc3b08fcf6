package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/momo1113/babyTracker-sub000/internal"
	"github.com/momo1113/babyTracker-sub000/internal/storage"
)

type SleepLogRequest struct {
	StartTime string `json:"startTime" validate:"required"`
	EndTime   string `json:"endTime" validate:"required"`
	Type      string `json:"type" validate:"required,oneof=Nap 'Night Sleep'"`
	Location  string `json:"location" validate:"required,oneof=Crib Stroller Arms 'Car Seat'"`
	Quality   string `json:"quality" validate:"required,oneof=Good Interrupted Fussy"`
	Notes     string `json:"notes,omitempty"`
}

func ValidateSleepLogRequest(req *SleepLogRequest) error {
	if err := validate.Struct(req); err != nil {
		return firstRuleError(err)
	}
	start, err := ParseInstant(req.StartTime)
	if err != nil {
		return err
	}
	end, err := ParseInstant(req.EndTime)
	if err != nil {
		return err
	}
	if !end.After(start) {
		return errors.New("'endTime' must be after 'startTime'")
	}
	return nil
}

func CreateSleepLog(ctx context.Context, repo storage.SleepLogRepository, user *internal.User, req *SleepLogRequest) (*internal.SleepLog, error) {
	start, err := ParseInstant(req.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := ParseInstant(req.EndTime)
	if err != nil {
		return nil, err
	}
	log := &internal.SleepLog{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		StartTime: start,
		EndTime:   end,
		Type:      req.Type,
		Location:  req.Location,
		Quality:   req.Quality,
		Notes:     req.Notes,
		CreatedAt: time.Now(),
	}
	if err := repo.SaveSleepLog(ctx, log); err != nil {
		return nil, err
	}
	return log, nil
}
