package repository

import (
	"context"
	"time"

	"PawMatch/internal/domain/models"
)

// DataStore is the marketplace record store this subsystem reads and writes.
// Persistence, transactions and ownership of the records live behind it.
type DataStore interface {
	GetSitter(ctx context.Context, id string) (*models.SitterRecord, error)
	GetBooking(ctx context.Context, id string) (*models.Booking, error)
	GetBookingsForSitter(ctx context.Context, sitterID string, from, to time.Time) ([]*models.Booking, error)
	CreateBooking(ctx context.Context, b *models.Booking) error
	UpdateBookingStatus(ctx context.Context, id string, status models.BookingStatus) error
	GetPet(ctx context.Context, id string) (*models.PetProfile, error)
	GetPetsByOwner(ctx context.Context, ownerID string) ([]*models.PetProfile, error)
	Health(ctx context.Context) error
	Close() error
}

// BookingHistory is the append-only outcome log feeding slot recommendation.
type BookingHistory interface {
	Record(ctx context.Context, o *models.BookingOutcome) error
	ForPair(ctx context.Context, petID, sitterID string, limit int) ([]*models.BookingOutcome, error)
	Health(ctx context.Context) error
	Close() error
}

// NotificationEvent is the typed event name delivered to a recipient.
type NotificationEvent string

const (
	EventBookingCreated NotificationEvent = "booking.created"
	EventStatusChanged  NotificationEvent = "booking.status_changed"
)

// Notifier delivers typed events. Fire-and-forget from this subsystem's
// perspective: delivery failures are logged downstream, never surfaced as
// booking-operation failures.
type Notifier interface {
	Send(ctx context.Context, event NotificationEvent, recipientID string, payload interface{}) error
	Close() error
}

// Metrics records domain-level counters and latencies.
type Metrics interface {
	RecordScoreComputed(kind string)
	RecordFallback(signal string)
	RecordBookingCreated()
	RecordConflictRejected(kind string)
	RecordLatency(op string, seconds float64)
}
