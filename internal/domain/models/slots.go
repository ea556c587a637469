package models

import "time"

// SlotSource tags where a time-slot candidate came from.
type SlotSource string

const (
	SourceHistorical SlotSource = "historical"
	SourceExternal   SlotSource = "external-insight"
	SourceFallback   SlotSource = "fallback"
)

// TimeSlotCandidate is a scored, dated start/end window proposed for a
// booking. Ephemeral; a caller may persist the one it selects.
type TimeSlotCandidate struct {
	Date          time.Time
	StartTime     time.Time
	EndTime       time.Time
	DurationHours float64
	Score         float64
	Source        SlotSource
	Reasoning     string
	Rank          int
	Confidence    string // "high", "medium", "low"
}

// SlotSuggestions is the full recommender response.
type SlotSuggestions struct {
	PetID       string
	SitterID    string
	Suggestions []TimeSlotCandidate
	Confidence  float64
	Factors     []string
	ComputedAt  time.Time
}

// Interval is a half-open [Start,End) time range.
type Interval struct {
	Start time.Time
	End   time.Time
}

// AvailabilityWindow is a sitter's remaining open time on one day, derived
// on demand from confirmed and in-progress bookings.
type AvailabilityWindow struct {
	SitterID         string
	Date             time.Time
	OpenHour         int
	CloseHour        int
	ExistingBookings []Interval
	FreeIntervals    []Interval
}

// SitterRecommendation pairs a candidate sitter with its trust output.
type SitterRecommendation struct {
	Sitter        *SitterRecord
	Compatibility float64 // upstream matchmaking signal, pass-through
	TrustScore    *TrustScoreResult
	Combined      float64
	MatchReasons  []string
	Slots         []TimeSlotCandidate // populated by recommendWithTiming only
}

// CandidateSitter is the orchestrator input: a sitter id plus the
// compatibility score computed by the (external) matchmaking stage.
type CandidateSitter struct {
	SitterID      string
	Compatibility float64
}
