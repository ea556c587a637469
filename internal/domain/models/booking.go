package models

import "time"

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	StatusPending    BookingStatus = "PENDING"
	StatusConfirmed  BookingStatus = "CONFIRMED"
	StatusInProgress BookingStatus = "IN_PROGRESS"
	StatusCompleted  BookingStatus = "COMPLETED"
	StatusCancelled  BookingStatus = "CANCELLED"
)

// Terminal reports whether the status has no outgoing transitions.
func (s BookingStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Booking is the persisted booking record. Created through the lifecycle
// use case only; status moves forward along the transition table.
type Booking struct {
	ID                  string
	OwnerID             string
	SitterID            string
	PetIDs              []string
	StartTime           time.Time
	EndTime             time.Time
	Status              BookingStatus
	HourlyRate          float64
	TotalAmount         float64
	SpecialInstructions string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// DurationHours returns the booked duration in hours.
func (b *Booking) DurationHours() float64 {
	return b.EndTime.Sub(b.StartTime).Hours()
}

// Overlaps applies the half-open interval test: touching endpoints do not
// conflict.
func (b *Booking) Overlaps(start, end time.Time) bool {
	return b.StartTime.Before(end) && b.EndTime.After(start)
}

// ActorRole identifies who is requesting a booking mutation.
type ActorRole string

const (
	RoleOwner  ActorRole = "owner"
	RoleSitter ActorRole = "sitter"
	RoleAdmin  ActorRole = "admin"
)

// BookingOutcome is the append-only history row recorded when a booking
// completes, consumed by slot recommendation.
type BookingOutcome struct {
	PetID         string
	SitterID      string
	Date          time.Time
	StartHour     int
	DayOfWeek     int // time.Weekday
	DurationHours float64
	Rating        float64
	Success       bool
}
