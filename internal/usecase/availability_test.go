package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"PawMatch/internal/domain/models"
	"PawMatch/pkg/cache"
)

func day(hour int) time.Time {
	return time.Date(2026, 9, 10, hour, 0, 0, 0, time.UTC)
}

func seedBooking(store *fakeStore, id string, status models.BookingStatus, start, end time.Time) {
	store.bookings[id] = &models.Booking{
		ID:        id,
		OwnerID:   "o1",
		SitterID:  "sit1",
		PetIDs:    []string{"p1"},
		StartTime: start,
		EndTime:   end,
		Status:    status,
	}
}

func newIndex(t *testing.T, store *fakeStore, c cache.Cache) *AvailabilityIndex {
	t.Helper()
	return NewAvailabilityIndex(store, c, time.Minute, 8, 18, testLogger(t))
}

func TestIsAvailableTouchingEndpoints(t *testing.T) {
	store := newFakeStore()
	store.sitters["sit1"] = &models.SitterRecord{ID: "sit1"}
	seedBooking(store, "b1", models.StatusConfirmed, day(12), day(14))
	idx := newIndex(t, store, nil)

	ok, err := idx.IsAvailable(context.Background(), "sit1", day(10), day(12))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatalf("touching endpoint must not conflict")
	}
	ok, _ = idx.IsAvailable(context.Background(), "sit1", day(14), day(16))
	if !ok {
		t.Fatalf("booking end touching query start must not conflict")
	}
}

func TestIsAvailableOverlap(t *testing.T) {
	store := newFakeStore()
	seedBooking(store, "b1", models.StatusConfirmed, day(12), day(14))
	idx := newIndex(t, store, nil)

	ok, _ := idx.IsAvailable(context.Background(), "sit1", day(13), day(15))
	if ok {
		t.Fatalf("overlap must conflict")
	}
}

func TestIsAvailablePendingDoesNotBlock(t *testing.T) {
	store := newFakeStore()
	seedBooking(store, "b1", models.StatusPending, day(12), day(14))
	seedBooking(store, "b2", models.StatusCancelled, day(12), day(14))
	seedBooking(store, "b3", models.StatusCompleted, day(12), day(14))
	idx := newIndex(t, store, nil)

	ok, _ := idx.IsAvailable(context.Background(), "sit1", day(12), day(14))
	if !ok {
		t.Fatalf("only CONFIRMED and IN_PROGRESS block time")
	}
}

func TestIsAvailableRejectsInvertedRange(t *testing.T) {
	idx := newIndex(t, newFakeStore(), nil)
	_, err := idx.IsAvailable(context.Background(), "sit1", day(14), day(12))
	if !errors.Is(err, models.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestFreeWindowsSubtractsBookings(t *testing.T) {
	store := newFakeStore()
	store.sitters["sit1"] = &models.SitterRecord{ID: "sit1"}
	seedBooking(store, "b1", models.StatusConfirmed, day(10), day(12))
	idx := newIndex(t, store, nil)

	windows, err := idx.FreeWindows(context.Background(), "sit1", day(0), day(23))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(windows) != 1 {
		t.Fatalf("expected 1 day, got %d", len(windows))
	}
	w := windows[0]
	if w.OpenHour != 8 || w.CloseHour != 18 {
		t.Fatalf("default window expected, got %d-%d", w.OpenHour, w.CloseHour)
	}
	if len(w.FreeIntervals) != 2 {
		t.Fatalf("expected 2 free intervals, got %v", w.FreeIntervals)
	}
	if !w.FreeIntervals[0].Start.Equal(day(8)) || !w.FreeIntervals[0].End.Equal(day(10)) {
		t.Fatalf("first interval wrong: %v", w.FreeIntervals[0])
	}
	if !w.FreeIntervals[1].Start.Equal(day(12)) || !w.FreeIntervals[1].End.Equal(day(18)) {
		t.Fatalf("second interval wrong: %v", w.FreeIntervals[1])
	}
}

func TestFreeWindowsUsesSitterHours(t *testing.T) {
	store := newFakeStore()
	store.sitters["sit1"] = &models.SitterRecord{ID: "sit1", OpenHour: 6, CloseHour: 22}
	idx := newIndex(t, store, nil)

	windows, err := idx.FreeWindows(context.Background(), "sit1", day(0), day(23))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if windows[0].OpenHour != 6 || windows[0].CloseHour != 22 {
		t.Fatalf("sitter hours expected, got %d-%d", windows[0].OpenHour, windows[0].CloseHour)
	}
}

func TestFreeWindowsCachedUntilInvalidate(t *testing.T) {
	store := newFakeStore()
	store.sitters["sit1"] = &models.SitterRecord{ID: "sit1"}
	c := cache.NewMemoryCache()
	defer c.Close()
	idx := newIndex(t, store, c)
	ctx := context.Background()

	first, err := idx.FreeWindows(ctx, "sit1", day(0), day(23))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	seedBooking(store, "b1", models.StatusConfirmed, day(10), day(12))
	cached, _ := idx.FreeWindows(ctx, "sit1", day(0), day(23))
	if len(cached[0].FreeIntervals) != len(first[0].FreeIntervals) {
		t.Fatalf("expected cached response before invalidation")
	}

	idx.Invalidate(ctx, "sit1")
	fresh, _ := idx.FreeWindows(ctx, "sit1", day(0), day(23))
	if len(fresh[0].FreeIntervals) != 2 {
		t.Fatalf("expected fresh windows after invalidation, got %v", fresh[0].FreeIntervals)
	}
}
