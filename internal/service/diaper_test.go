package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momo1113/babyTracker-sub000/internal"
)

func TestValidateDiaperLogRequest_Pee(t *testing.T) {
	req := DiaperLogRequest{Type: "Pee", Timestamp: "2025-07-18T09:30:00"}
	assert.NoError(t, ValidateDiaperLogRequest(&req))

	// Extra fields on Pee are tolerated, not rejected.
	req = DiaperLogRequest{Type: "Pee", Consistency: "Soft", Color: "Yellow", Timestamp: "2025-07-18T09:30:00"}
	assert.NoError(t, ValidateDiaperLogRequest(&req))
}

func TestValidateDiaperLogRequest_PoopAndBoth(t *testing.T) {
	for _, typ := range []string{"Poop", "Both"} {
		req := DiaperLogRequest{Type: typ, Consistency: "Soft", Color: "Yellow", Timestamp: "2025-07-18T09:30:00"}
		assert.NoError(t, ValidateDiaperLogRequest(&req), "type %s", typ)

		req = DiaperLogRequest{Type: typ, Color: "Yellow", Timestamp: "2025-07-18T09:30:00"}
		assert.Error(t, ValidateDiaperLogRequest(&req), "missing consistency for %s", typ)

		req = DiaperLogRequest{Type: typ, Consistency: "Soft", Timestamp: "2025-07-18T09:30:00"}
		assert.Error(t, ValidateDiaperLogRequest(&req), "missing color for %s", typ)
	}

	// Bad enums
	req := DiaperLogRequest{Type: "Poop", Consistency: "Runny", Color: "Yellow", Timestamp: "2025-07-18T09:30:00"}
	assert.Error(t, ValidateDiaperLogRequest(&req))
	req = DiaperLogRequest{Type: "Poop", Consistency: "Soft", Color: "Purple", Timestamp: "2025-07-18T09:30:00"}
	assert.Error(t, ValidateDiaperLogRequest(&req))
}

func TestCreateDiaperLog_ClearsFieldsForPee(t *testing.T) {
	repos := &fakeRepos{}
	user := &internal.User{ID: "u1"}
	req := DiaperLogRequest{Type: "Pee", Consistency: "Soft", Color: "Yellow", Timestamp: "2025-07-18T09:30:00"}
	require.NoError(t, ValidateDiaperLogRequest(&req))

	log, err := CreateDiaperLog(context.Background(), repos, user, &req)
	require.NoError(t, err)
	assert.Equal(t, "u1", log.UserID)
	assert.Empty(t, log.Consistency)
	assert.Empty(t, log.Color)
	assert.NotEmpty(t, log.ID)
	require.Len(t, repos.diapers, 1)
	assert.Empty(t, repos.diapers[0].Consistency)
}
