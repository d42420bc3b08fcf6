package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momo1113/babyTracker-sub000/internal"
	"github.com/momo1113/babyTracker-sub000/internal/storage"
)

func (f *fakeRepos) GetProfile(ctx context.Context, userID string) (*internal.BabyProfile, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.profile == nil {
		return nil, storage.ErrNotFound
	}
	return f.profile, nil
}

func (f *fakeRepos) MutateProfile(ctx context.Context, userID string, fn func(p *internal.BabyProfile, exists bool) error) (*internal.BabyProfile, error) {
	if f.err != nil {
		return nil, f.err
	}
	p := f.profile
	exists := p != nil
	if !exists {
		p = &internal.BabyProfile{UserID: userID}
	}
	if err := fn(p, exists); err != nil {
		return nil, err
	}
	f.profile = p
	return p, nil
}

func TestSaveProfile_MergesGrowthByDate(t *testing.T) {
	repos := &fakeRepos{profile: &internal.BabyProfile{
		UserID: "u1",
		GrowthData: []internal.GrowthEntry{
			{Date: "2025-07-01", Weight: "6.2", Height: "60"},
		},
	}}
	user := &internal.User{ID: "u1"}

	p, err := SaveProfile(context.Background(), repos, user, &ProfileRequest{
		Name: "June",
		DOB:  "2025-05-01",
		GrowthData: []GrowthEntryRequest{
			{Date: "2025-07-01", Weight: "6.4"},
			{Date: "2025-08-01", Weight: "6.8"},
		},
	})
	require.NoError(t, err)
	require.Len(t, p.GrowthData, 2)
	assert.Equal(t, "2025-07-01", p.GrowthData[0].Date)
	assert.Equal(t, "6.4", p.GrowthData[0].Weight)
	assert.Equal(t, "2025-08-01", p.GrowthData[1].Date)
}

func TestDeleteGrowthEntries_RemovesByDate(t *testing.T) {
	repos := &fakeRepos{profile: &internal.BabyProfile{
		UserID: "u1",
		GrowthData: []internal.GrowthEntry{
			{Date: "2025-07-01", Weight: "6.2"},
			{Date: "2025-08-01", Weight: "6.8"},
		},
	}}

	p, err := DeleteGrowthEntries(context.Background(), repos, &internal.User{ID: "u1"}, []string{"2025-07-01", "2025-12-31"})
	require.NoError(t, err)
	require.Len(t, p.GrowthData, 1)
	assert.Equal(t, "2025-08-01", p.GrowthData[0].Date)
}

func TestDeleteGrowthEntries_MissingProfile(t *testing.T) {
	repos := &fakeRepos{}
	_, err := DeleteGrowthEntries(context.Background(), repos, &internal.User{ID: "u1"}, []string{"2025-07-01"})
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestDeleteGrowthEntries_LeavesPriorSliceIntact(t *testing.T) {
	orig := []internal.GrowthEntry{
		{Date: "2025-07-01", Weight: "6.2"},
		{Date: "2025-08-01", Weight: "6.8"},
	}
	repos := &fakeRepos{profile: &internal.BabyProfile{UserID: "u1", GrowthData: orig}}

	p, err := DeleteGrowthEntries(context.Background(), repos, &internal.User{ID: "u1"}, []string{"2025-07-01"})
	require.NoError(t, err)
	require.Len(t, p.GrowthData, 1)

	// The compaction must build a fresh slice, not shuffle entries
	// inside the array the caller may still hold.
	assert.Equal(t, "2025-07-01", orig[0].Date)
	assert.Equal(t, "6.2", orig[0].Weight)
}
