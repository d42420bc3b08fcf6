package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/momo1113/babyTracker-sub000/internal"
	"github.com/momo1113/babyTracker-sub000/internal/storage"
)

type FeedingLogRequest struct {
	FeedingType string `json:"feedingType" validate:"required,oneof=Breast Bottle Formula"`
	Side        string `json:"side,omitempty" validate:"omitempty,oneof=Left Right Both"`
	Amount      string `json:"amount,omitempty" validate:"omitempty,numeric"`
	Unit        string `json:"unit,omitempty" validate:"omitempty,oneof=oz ml"`
	Duration    string `json:"duration,omitempty" validate:"omitempty,numeric"`
	Timestamp   string `json:"timestamp" validate:"required"`
	Notes       string `json:"notes,omitempty"`
}

// ValidateFeedingLogRequest enforces the per-type field rules: breast
// feedings carry a side and no amount, bottle and formula feedings
// carry amount and unit and no side.
func ValidateFeedingLogRequest(req *FeedingLogRequest) error {
	if err := validate.Struct(req); err != nil {
		return firstRuleError(err)
	}
	if _, err := ParseInstant(req.Timestamp); err != nil {
		return err
	}
	switch req.FeedingType {
	case internal.FeedingBreast:
		if req.Side == "" {
			return errors.New("'side' is required for breast feeding")
		}
		if req.Amount != "" || req.Unit != "" {
			return errors.New("'amount' and 'unit' are not allowed for breast feeding")
		}
	default: // Bottle, Formula
		if req.Amount == "" {
			return errors.New("'amount' is required for bottle and formula feeding")
		}
		if req.Unit == "" {
			return errors.New("'unit' is required for bottle and formula feeding")
		}
	}
	return nil
}

// CreateFeedingLog persists a validated request for the authenticated
// user. The side field is dropped for bottle and formula entries.
func CreateFeedingLog(ctx context.Context, repo storage.FeedingLogRepository, user *internal.User, req *FeedingLogRequest) (*internal.FeedingLog, error) {
	ts, err := ParseInstant(req.Timestamp)
	if err != nil {
		return nil, err
	}
	log := &internal.FeedingLog{
		ID:          uuid.NewString(),
		UserID:      user.ID,
		FeedingType: req.FeedingType,
		Side:        req.Side,
		Amount:      req.Amount,
		Unit:        req.Unit,
		Duration:    req.Duration,
		Timestamp:   ts,
		Notes:       req.Notes,
		CreatedAt:   time.Now(),
	}
	if log.FeedingType != internal.FeedingBreast {
		log.Side = ""
	}
	if err := repo.SaveFeedingLog(ctx, log); err != nil {
		return nil, err
	}
	return log, nil
}
