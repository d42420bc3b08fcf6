package service

import (
	"context"
	"sort"

	"github.com/momo1113/babyTracker-sub000/internal"
	"github.com/momo1113/babyTracker-sub000/internal/storage"
)

type GrowthEntryRequest struct {
	Date   string `json:"date" validate:"required,datetime=2006-01-02"`
	Weight string `json:"weight,omitempty" validate:"omitempty,numeric"`
	Height string `json:"height,omitempty" validate:"omitempty,numeric"`
}

type ProfileRequest struct {
	Name       string               `json:"name" validate:"required"`
	DOB        string               `json:"dob" validate:"required,datetime=2006-01-02"`
	Gender     string               `json:"gender,omitempty" validate:"omitempty,oneof=Male Female Other"`
	PhotoURL   string               `json:"photoUrl,omitempty" validate:"omitempty,url"`
	GrowthData []GrowthEntryRequest `json:"growthData,omitempty" validate:"dive"`
}

type GrowthDeleteRequest struct {
	Dates []string `json:"dates" validate:"required,min=1,dive,datetime=2006-01-02"`
}

func ValidateProfileRequest(req *ProfileRequest) error {
	if err := validate.Struct(req); err != nil {
		return firstRuleError(err)
	}
	return nil
}

func ValidateGrowthDeleteRequest(req *GrowthDeleteRequest) error {
	if err := validate.Struct(req); err != nil {
		return firstRuleError(err)
	}
	return nil
}

// SaveProfile upserts the caller's profile. Growth entries merge by
// date, last write wins, and the merged list stays sorted by date.
func SaveProfile(ctx context.Context, repo storage.ProfileRepository, user *internal.User, req *ProfileRequest) (*internal.BabyProfile, error) {
	return repo.MutateProfile(ctx, user.ID, func(p *internal.BabyProfile, exists bool) error {
		p.Name = req.Name
		p.DOB = req.DOB
		p.Gender = req.Gender
		p.PhotoURL = req.PhotoURL

		byDate := make(map[string]internal.GrowthEntry, len(p.GrowthData))
		for _, e := range p.GrowthData {
			byDate[e.Date] = e
		}
		for _, e := range req.GrowthData {
			byDate[e.Date] = internal.GrowthEntry{Date: e.Date, Weight: e.Weight, Height: e.Height}
		}
		merged := make([]internal.GrowthEntry, 0, len(byDate))
		for _, e := range byDate {
			merged = append(merged, e)
		}
		sort.Slice(merged, func(i, j int) bool { return merged[i].Date < merged[j].Date })
		p.GrowthData = merged
		return nil
	})
}

// DeleteGrowthEntries removes growth entries by date key inside one
// read-modify-write. Unknown dates are ignored; a missing profile is
// ErrNotFound.
func DeleteGrowthEntries(ctx context.Context, repo storage.ProfileRepository, user *internal.User, dates []string) (*internal.BabyProfile, error) {
	drop := make(map[string]bool, len(dates))
	for _, d := range dates {
		drop[d] = true
	}
	return repo.MutateProfile(ctx, user.ID, func(p *internal.BabyProfile, exists bool) error {
		if !exists {
			return storage.ErrNotFound
		}
		// A fresh slice, not in-place compaction: the incoming slice
		// may be shared with snapshots already handed out.
		kept := make([]internal.GrowthEntry, 0, len(p.GrowthData))
		for _, e := range p.GrowthData {
			if !drop[e.Date] {
				kept = append(kept, e)
			}
		}
		p.GrowthData = kept
		return nil
	})
}
