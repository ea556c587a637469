package models

import "time"

// Review is a single owner review left for a sitter.
type Review struct {
	Text      string
	Rating    float64 // 1..5
	CreatedAt time.Time
}

// CompletedBooking is the slice of booking history the scorer cares about.
type CompletedBooking struct {
	StartTime time.Time
	EndTime   time.Time
	Rating    float64 // 0 if never rated
	Success   bool
}

// SitterRecord aggregates a sitter's track record. Owned by the data store;
// read-only in this service.
type SitterRecord struct {
	ID                 string
	Name               string
	Bio                string
	Reviews            []Review
	CompletedBookings  []CompletedBooking
	ResponseTimeHours  float64
	CompletionRate     float64 // percent, 0..100
	VerificationStatus bool    // identity verified
	BackgroundChecked  bool
	Insured            bool
	Certifications     []string
	ExperienceYears    float64
	OnTimeRate         float64 // 0..1
	CancellationRate   float64 // 0..1
	CommunicationScore float64 // 0..5
	EmergencyContacts  int
	HourlyRate         float64
	OpenHour           int // 0 means unset; fall back to configured default window
	CloseHour          int
}

// TimeBand is a declared preference for a part of the day with how sure we
// are about it.
type TimeBand struct {
	StartHour  int
	EndHour    int
	Confidence float64 // 0..1
}

// PetProfile carries the per-pet signals used by slot recommendation.
type PetProfile struct {
	ID           string
	OwnerID      string
	Name         string
	Species      string
	Morning      TimeBand
	Afternoon    TimeBand
	Evening      TimeBand
	FeedingHours []int // hours of day, 0..23
}

// OwnerPreferences filters slot candidates on behalf of the requesting owner.
type OwnerPreferences struct {
	PreferredTime string  // "morning", "afternoon", "evening", "flexible" or empty
	DurationHours float64 // requested care duration
	MaxHourlyRate float64 // 0 = no cap
}
