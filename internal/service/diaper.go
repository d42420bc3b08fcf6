package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/momo1113/babyTracker-sub000/internal"
	"github.com/momo1113/babyTracker-sub000/internal/storage"
)

type DiaperLogRequest struct {
	Type        string `json:"type" validate:"required,oneof=Pee Poop Both"`
	Consistency string `json:"consistency,omitempty" validate:"omitempty,oneof=Soft Firm Loose Watery"`
	Color       string `json:"color,omitempty" validate:"omitempty,oneof=Yellow Brown Green"`
	Timestamp   string `json:"timestamp" validate:"required"`
	Notes       string `json:"notes,omitempty"`
}

// ValidateDiaperLogRequest requires consistency and color for Poop and
// Both. For Pee the fields are tolerated and cleared at create time
// rather than rejected.
func ValidateDiaperLogRequest(req *DiaperLogRequest) error {
	if err := validate.Struct(req); err != nil {
		return firstRuleError(err)
	}
	if _, err := ParseInstant(req.Timestamp); err != nil {
		return err
	}
	if req.Type != internal.DiaperPee {
		if req.Consistency == "" {
			return errors.New("'consistency' is required for poop diapers")
		}
		if req.Color == "" {
			return errors.New("'color' is required for poop diapers")
		}
	}
	return nil
}

func CreateDiaperLog(ctx context.Context, repo storage.DiaperLogRepository, user *internal.User, req *DiaperLogRequest) (*internal.DiaperLog, error) {
	ts, err := ParseInstant(req.Timestamp)
	if err != nil {
		return nil, err
	}
	log := &internal.DiaperLog{
		ID:          uuid.NewString(),
		UserID:      user.ID,
		Type:        req.Type,
		Consistency: req.Consistency,
		Color:       req.Color,
		Timestamp:   ts,
		Notes:       req.Notes,
		CreatedAt:   time.Now(),
	}
	if log.Type == internal.DiaperPee {
		log.Consistency = ""
		log.Color = ""
	}
	if err := repo.SaveDiaperLog(ctx, log); err != nil {
		return nil, err
	}
	return log, nil
}
