package usecase

import (
	"context"
	"errors"
	"math"
	"testing"

	"PawMatch/internal/domain/models"
	domrepo "PawMatch/internal/domain/repository"
)

type lifecycleFixture struct {
	store    *fakeStore
	notifier *fakeNotifier
	history  *fakeHistory
	metrics  *fakeMetrics
	bl       *BookingLifecycle
}

func newLifecycle(t *testing.T) *lifecycleFixture {
	t.Helper()
	store := newFakeStore()
	store.sitters["sit1"] = &models.SitterRecord{ID: "sit1", HourlyRate: 20}
	store.pets["p1"] = &models.PetProfile{ID: "p1", OwnerID: "o1"}
	store.pets["p2"] = &models.PetProfile{ID: "p2", OwnerID: "o1"}
	notifier := &fakeNotifier{}
	history := &fakeHistory{}
	metrics := newFakeMetrics()
	idx := NewAvailabilityIndex(store, nil, 0, 8, 18, testLogger(t))
	bl := NewBookingLifecycle(store, idx, notifier, history, metrics, 0.95, testLogger(t))
	return &lifecycleFixture{store: store, notifier: notifier, history: history, metrics: metrics, bl: bl}
}

func createParams() CreateBookingParams {
	return CreateBookingParams{
		OwnerID:  "o1",
		SitterID: "sit1",
		PetIDs:   []string{"p1"},
		Start:    day(10),
		End:      day(14),
	}
}

func TestTransitionTable(t *testing.T) {
	allowed := map[models.BookingStatus][]models.BookingStatus{
		models.StatusPending:    {models.StatusConfirmed, models.StatusCancelled},
		models.StatusConfirmed:  {models.StatusInProgress, models.StatusCancelled},
		models.StatusInProgress: {models.StatusCompleted},
		models.StatusCompleted:  {},
		models.StatusCancelled:  {},
	}
	all := []models.BookingStatus{
		models.StatusPending, models.StatusConfirmed, models.StatusInProgress,
		models.StatusCompleted, models.StatusCancelled,
	}
	for from, tos := range allowed {
		ok := map[models.BookingStatus]bool{}
		for _, to := range tos {
			ok[to] = true
		}
		for _, to := range all {
			if got := transitionAllowed(from, to); got != ok[to] {
				t.Fatalf("%s -> %s: got %v, want %v", from, to, got, ok[to])
			}
		}
	}
}

func TestCreateBooking(t *testing.T) {
	f := newLifecycle(t)
	b, err := f.bl.Create(context.Background(), createParams())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Status != models.StatusPending {
		t.Fatalf("new booking must be PENDING, got %s", b.Status)
	}
	if b.ID == "" {
		t.Fatalf("missing id")
	}
	if b.HourlyRate != 20 {
		t.Fatalf("sitter rate fallback expected, got %v", b.HourlyRate)
	}
	if b.TotalAmount != 80 {
		t.Fatalf("total = %v, want 20*4h", b.TotalAmount)
	}
	if len(f.notifier.sent) != 1 || f.notifier.sent[0].recipient != "sit1" || f.notifier.sent[0].event != domrepo.EventBookingCreated {
		t.Fatalf("sitter must be notified: %+v", f.notifier.sent)
	}
	if f.metrics.bookings != 1 {
		t.Fatalf("booking counter not recorded")
	}
}

func TestCreateBookingDiscountAndPets(t *testing.T) {
	f := newLifecycle(t)
	p := createParams()
	p.PetIDs = []string{"p1", "p2"}
	p.HourlyRate = 10
	p.ApplyDiscount = true
	b, err := f.bl.Create(context.Background(), p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := 10.0 * 4 * 2 * 0.95
	if math.Abs(b.TotalAmount-want) > 1e-9 {
		t.Fatalf("total = %v, want %v", b.TotalAmount, want)
	}
}

func TestCreateBookingConflict(t *testing.T) {
	f := newLifecycle(t)
	seedBooking(f.store, "b0", models.StatusConfirmed, day(10), day(18))

	p := createParams()
	p.Start, p.End = day(16), day(20)
	_, err := f.bl.Create(context.Background(), p)
	if !errors.Is(err, models.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if len(f.store.created) != 0 {
		t.Fatalf("conflicting booking must not persist")
	}
	if f.metrics.conflicts["availability"] != 1 {
		t.Fatalf("conflict not recorded")
	}
}

func TestCreateBookingAdjacentAllowed(t *testing.T) {
	f := newLifecycle(t)
	seedBooking(f.store, "b0", models.StatusConfirmed, day(10), day(18))

	p := createParams()
	p.Start, p.End = day(18), day(22)
	if _, err := f.bl.Create(context.Background(), p); err != nil {
		t.Fatalf("touching bookings must not conflict: %v", err)
	}
}

func TestCreateBookingRejectsForeignPet(t *testing.T) {
	f := newLifecycle(t)
	f.store.pets["px"] = &models.PetProfile{ID: "px", OwnerID: "someone-else"}

	p := createParams()
	p.PetIDs = []string{"px"}
	_, err := f.bl.Create(context.Background(), p)
	if !errors.Is(err, models.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateStatusAuthorization(t *testing.T) {
	f := newLifecycle(t)
	seedBooking(f.store, "b1", models.StatusConfirmed, day(10), day(14))

	// A sitter may cancel only while the booking is still PENDING.
	_, err := f.bl.UpdateStatus(context.Background(), "b1", "sit1", models.RoleSitter, models.StatusCancelled)
	if !errors.Is(err, models.ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}

	// Strangers never act.
	_, err = f.bl.UpdateStatus(context.Background(), "b1", "mallory", models.RoleOwner, models.StatusCancelled)
	if !errors.Is(err, models.ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}

	// The owner cancels their own CONFIRMED booking.
	b, err := f.bl.UpdateStatus(context.Background(), "b1", "o1", models.RoleOwner, models.StatusCancelled)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Status != models.StatusCancelled {
		t.Fatalf("status = %s", b.Status)
	}
}

func TestUpdateStatusUnknownBooking(t *testing.T) {
	f := newLifecycle(t)

	_, err := f.bl.UpdateStatus(context.Background(), "ghost", "o1", models.RoleOwner, models.StatusCancelled)
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if errors.Is(err, models.ErrDataUnavailable) {
		t.Fatalf("missing booking must not read as a store outage: %v", err)
	}
}

func TestUpdateStatusInvalidTransition(t *testing.T) {
	f := newLifecycle(t)
	seedBooking(f.store, "b1", models.StatusPending, day(10), day(14))

	_, err := f.bl.UpdateStatus(context.Background(), "b1", "admin", models.RoleAdmin, models.StatusCompleted)
	if !errors.Is(err, models.ErrInvalidTransition) {
		t.Fatalf("expected invalid transition, got %v", err)
	}
	if f.metrics.conflicts["transition"] != 1 {
		t.Fatalf("transition rejection not recorded")
	}
}

func TestCompletionRecordsOutcomes(t *testing.T) {
	f := newLifecycle(t)
	f.store.bookings["b1"] = &models.Booking{
		ID:        "b1",
		OwnerID:   "o1",
		SitterID:  "sit1",
		PetIDs:    []string{"p1", "p2"},
		StartTime: day(9),
		EndTime:   day(17),
		Status:    models.StatusInProgress,
	}

	_, err := f.bl.UpdateStatus(context.Background(), "b1", "sit1", models.RoleSitter, models.StatusCompleted)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(f.history.recorded) != 2 {
		t.Fatalf("expected one outcome per pet, got %d", len(f.history.recorded))
	}
	o := f.history.recorded[0]
	if o.StartHour != 9 || o.DurationHours != 8 || !o.Success {
		t.Fatalf("outcome mapped wrong: %+v", o)
	}
	// Sitter acted, so the owner hears about it.
	last := f.notifier.sent[len(f.notifier.sent)-1]
	if last.recipient != "o1" || last.event != domrepo.EventStatusChanged {
		t.Fatalf("counterparty notification wrong: %+v", last)
	}
}

func TestCompletionSurvivesHistoryFailure(t *testing.T) {
	f := newLifecycle(t)
	f.history.fail = true
	f.store.bookings["b1"] = &models.Booking{
		ID: "b1", OwnerID: "o1", SitterID: "sit1", PetIDs: []string{"p1"},
		StartTime: day(9), EndTime: day(17), Status: models.StatusInProgress,
	}

	b, err := f.bl.UpdateStatus(context.Background(), "b1", "o1", models.RoleOwner, models.StatusCompleted)
	if err != nil {
		t.Fatalf("history failure must not fail completion: %v", err)
	}
	if b.Status != models.StatusCompleted {
		t.Fatalf("status = %s", b.Status)
	}
}

func TestCancelHelper(t *testing.T) {
	f := newLifecycle(t)
	seedBooking(f.store, "b1", models.StatusPending, day(10), day(14))

	b, err := f.bl.Cancel(context.Background(), "b1", "sit1", models.RoleSitter)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Status != models.StatusCancelled {
		t.Fatalf("status = %s", b.Status)
	}
}
