package internal

import "time"

// User is the authenticated caller as resolved by the auth provider.
// UserID on every log comes from here, never from the request body.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// Event kinds as they appear in merged timelines.
const (
	KindFeeding = "Feeding"
	KindDiaper  = "Diaper"
	KindSleep   = "Sleep"
)

const (
	FeedingBreast  = "Breast"
	FeedingBottle  = "Bottle"
	FeedingFormula = "Formula"
)

const (
	SideLeft  = "Left"
	SideRight = "Right"
	SideBoth  = "Both"
)

const (
	DiaperPee  = "Pee"
	DiaperPoop = "Poop"
	DiaperBoth = "Both"
)

const (
	SleepNap   = "Nap"
	SleepNight = "Night Sleep"
)

// FeedingLog is one feeding event. Amount and Duration stay numeric
// strings for wire fidelity with the mobile client.
type FeedingLog struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	FeedingType string    `json:"feedingType"`
	Side        string    `json:"side,omitempty"`
	Amount      string    `json:"amount,omitempty"`
	Unit        string    `json:"unit,omitempty"`     // oz or ml
	Duration    string    `json:"duration,omitempty"` // minutes
	Timestamp   time.Time `json:"timestamp"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// DiaperLog is one diaper change. Consistency and Color are only set
// when Type is Poop or Both.
type DiaperLog struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Type        string    `json:"type"`
	Consistency string    `json:"consistency,omitempty"`
	Color       string    `json:"color,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// SleepLog is one sleep session bounded by StartTime and EndTime.
// CreatedAt records when the entry was saved.
type SleepLog struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Type      string    `json:"type"`     // Nap or Night Sleep
	Location  string    `json:"location"` // Crib, Stroller, Arms, Car Seat
	Quality   string    `json:"quality"`  // Good, Interrupted, Fussy
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// GrowthEntry is one weight/height measurement, unique per date within
// a profile. Duplicate dates resolve last-write-wins on save.
type GrowthEntry struct {
	Date   string `json:"date"` // YYYY-MM-DD
	Weight string `json:"weight,omitempty"`
	Height string `json:"height,omitempty"`
}

// BabyProfile is the per-user profile document, one per user.
type BabyProfile struct {
	UserID     string        `json:"userId"`
	Name       string        `json:"name"`
	DOB        string        `json:"dob"` // YYYY-MM-DD
	Gender     string        `json:"gender,omitempty"`
	PhotoURL   string        `json:"photoUrl,omitempty"`
	GrowthData []GrowthEntry `json:"growthData,omitempty"`
	UpdatedAt  time.Time     `json:"updatedAt"`
}
