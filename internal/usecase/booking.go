package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"PawMatch/internal/domain/models"
	domrepo "PawMatch/internal/domain/repository"
	applogger "PawMatch/pkg/logger"
)

// transitions is the full lifecycle table. Anything absent fails with
// InvalidTransition and leaves the stored status untouched.
var transitions = map[models.BookingStatus][]models.BookingStatus{
	models.StatusPending:    {models.StatusConfirmed, models.StatusCancelled},
	models.StatusConfirmed:  {models.StatusInProgress, models.StatusCancelled},
	models.StatusInProgress: {models.StatusCompleted},
	models.StatusCompleted:  {},
	models.StatusCancelled:  {},
}

func transitionAllowed(from, to models.BookingStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CreateBookingParams are the validated inputs to Create.
type CreateBookingParams struct {
	OwnerID             string
	SitterID            string
	PetIDs              []string
	Start               time.Time
	End                 time.Time
	HourlyRate          float64 // 0 = use the sitter's listed rate
	SpecialInstructions string
	ApplyDiscount       bool
}

// BookingLifecycle creates bookings and drives their status transitions.
// It is the only writer of booking records in this service.
type BookingLifecycle struct {
	store        domrepo.DataStore
	availability *AvailabilityIndex
	notifier     domrepo.Notifier
	history      domrepo.BookingHistory
	metrics      domrepo.Metrics
	logger       *applogger.Logger
	discount     float64 // multiplier applied when ApplyDiscount is set
}

func NewBookingLifecycle(store domrepo.DataStore, avail *AvailabilityIndex, notifier domrepo.Notifier, history domrepo.BookingHistory, metrics domrepo.Metrics, discount float64, l *applogger.Logger) *BookingLifecycle {
	if discount <= 0 || discount > 1 {
		discount = 0.95
	}
	return &BookingLifecycle{store: store, availability: avail, notifier: notifier, history: history, metrics: metrics, logger: l, discount: discount}
}

// Create validates, prices and persists a PENDING booking, then notifies the
// sitter. The availability predicate applied here is the same one used for
// any later reschedule.
func (b *BookingLifecycle) Create(ctx context.Context, p CreateBookingParams) (*models.Booking, error) {
	if p.OwnerID == "" || p.SitterID == "" {
		return nil, models.ValidationErrorf("owner and sitter ids are required")
	}
	if len(p.PetIDs) == 0 {
		return nil, models.ValidationErrorf("at least one pet is required")
	}
	if !p.Start.Before(p.End) {
		return nil, models.ValidationErrorf("start %s must precede end %s", p.Start, p.End)
	}

	owned, err := b.store.GetPetsByOwner(ctx, p.OwnerID)
	if err != nil {
		return nil, models.DataError("get pets", err)
	}
	ownedSet := make(map[string]bool, len(owned))
	for _, pet := range owned {
		ownedSet[pet.ID] = true
	}
	for _, id := range p.PetIDs {
		if !ownedSet[id] {
			return nil, models.ValidationErrorf("pet %s does not belong to owner %s", id, p.OwnerID)
		}
	}

	free, err := b.availability.IsAvailable(ctx, p.SitterID, p.Start, p.End)
	if err != nil {
		return nil, err
	}
	if !free {
		if b.metrics != nil {
			b.metrics.RecordConflictRejected("availability")
		}
		return nil, models.ConflictErrorf("sitter %s is not available %s-%s", p.SitterID, p.Start, p.End)
	}

	rate := p.HourlyRate
	if rate <= 0 {
		sitter, err := b.store.GetSitter(ctx, p.SitterID)
		if err != nil {
			return nil, models.DataError("get sitter", err)
		}
		rate = sitter.HourlyRate
	}

	now := time.Now()
	booking := &models.Booking{
		ID:                  uuid.NewString(),
		OwnerID:             p.OwnerID,
		SitterID:            p.SitterID,
		PetIDs:              p.PetIDs,
		StartTime:           p.Start,
		EndTime:             p.End,
		Status:              models.StatusPending,
		HourlyRate:          rate,
		SpecialInstructions: p.SpecialInstructions,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	booking.TotalAmount = totalAmount(rate, booking.DurationHours(), len(p.PetIDs), p.ApplyDiscount, b.discount)

	if err := b.store.CreateBooking(ctx, booking); err != nil {
		return nil, models.DataError("create booking", err)
	}
	if b.metrics != nil {
		b.metrics.RecordBookingCreated()
	}
	b.availability.Invalidate(ctx, p.SitterID)
	b.notify(ctx, domrepo.EventBookingCreated, p.SitterID, booking)

	return booking, nil
}

// totalAmount derives the immutable booking price: rate x hours x pet
// multiplier, with the optional discount applied on request.
func totalAmount(rate, hours float64, pets int, applyDiscount bool, discount float64) float64 {
	mult := float64(pets)
	if mult < 1 {
		mult = 1
	}
	amount := rate * hours * mult
	if applyDiscount {
		amount *= discount
	}
	return amount
}

// UpdateStatus moves a booking along the lifecycle table after authorizing
// the actor, then notifies the counterparty.
func (b *BookingLifecycle) UpdateStatus(ctx context.Context, bookingID, actorID string, role models.ActorRole, newStatus models.BookingStatus) (*models.Booking, error) {
	booking, err := b.store.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, models.DataError("get booking", err)
	}

	if err := authorize(booking, actorID, role, newStatus); err != nil {
		return nil, err
	}
	if !transitionAllowed(booking.Status, newStatus) {
		if b.metrics != nil {
			b.metrics.RecordConflictRejected("transition")
		}
		return nil, models.TransitionError(booking.Status, newStatus)
	}

	if err := b.store.UpdateBookingStatus(ctx, bookingID, newStatus); err != nil {
		return nil, models.DataError("update status", err)
	}
	booking.Status = newStatus
	booking.UpdatedAt = time.Now()
	b.availability.Invalidate(ctx, booking.SitterID)

	if newStatus == models.StatusCompleted {
		b.recordOutcomes(ctx, booking)
	}

	switch role {
	case models.RoleOwner:
		b.notify(ctx, domrepo.EventStatusChanged, booking.SitterID, booking)
	case models.RoleSitter:
		b.notify(ctx, domrepo.EventStatusChanged, booking.OwnerID, booking)
	default:
		b.notify(ctx, domrepo.EventStatusChanged, booking.OwnerID, booking)
		b.notify(ctx, domrepo.EventStatusChanged, booking.SitterID, booking)
	}
	return booking, nil
}

// Cancel is UpdateStatus specialized to CANCELLED; the lifecycle table
// already restricts it to PENDING and CONFIRMED bookings.
func (b *BookingLifecycle) Cancel(ctx context.Context, bookingID, actorID string, role models.ActorRole) (*models.Booking, error) {
	return b.UpdateStatus(ctx, bookingID, actorID, role, models.StatusCancelled)
}

// authorize checks who may act. Owner and sitter parties act on their own
// bookings; admins on any. A sitter may only cancel while still PENDING.
func authorize(booking *models.Booking, actorID string, role models.ActorRole, newStatus models.BookingStatus) error {
	switch role {
	case models.RoleAdmin:
		return nil
	case models.RoleOwner:
		if booking.OwnerID != actorID {
			return models.ErrUnauthorized
		}
		return nil
	case models.RoleSitter:
		if booking.SitterID != actorID {
			return models.ErrUnauthorized
		}
		if newStatus == models.StatusCancelled && booking.Status != models.StatusPending {
			return models.ErrUnauthorized
		}
		return nil
	default:
		return models.ErrUnauthorized
	}
}

// recordOutcomes appends one history row per pet. Best effort: history
// failures never fail the completion itself.
func (b *BookingLifecycle) recordOutcomes(ctx context.Context, booking *models.Booking) {
	if b.history == nil {
		return
	}
	for _, petID := range booking.PetIDs {
		o := &models.BookingOutcome{
			PetID:         petID,
			SitterID:      booking.SitterID,
			Date:          booking.StartTime,
			StartHour:     booking.StartTime.Hour(),
			DayOfWeek:     int(booking.StartTime.Weekday()),
			DurationHours: booking.DurationHours(),
			Success:       true,
		}
		if err := b.history.Record(ctx, o); err != nil && b.logger != nil {
			b.logger.Warn("history record failed", applogger.Error(err), applogger.String("booking", booking.ID))
		}
	}
}

func (b *BookingLifecycle) notify(ctx context.Context, event domrepo.NotificationEvent, recipient string, booking *models.Booking) {
	if b.notifier == nil {
		return
	}
	payload := map[string]interface{}{
		"booking_id": booking.ID,
		"status":     booking.Status,
		"start":      booking.StartTime,
		"end":        booking.EndTime,
	}
	if err := b.notifier.Send(ctx, event, recipient, payload); err != nil && b.logger != nil {
		b.logger.Warn("notify failed", applogger.Error(err), applogger.String("event", string(event)))
	}
}
