package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"PawMatch/internal/domain/models"
	domrepo "PawMatch/internal/domain/repository"
	domsvc "PawMatch/internal/domain/service"
	applogger "PawMatch/pkg/logger"
)

func testLogger(t *testing.T) *applogger.Logger {
	t.Helper()
	l, err := applogger.New(&applogger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return l
}

var errStore = errors.New("store down")

type fakeStore struct {
	mu       sync.Mutex
	sitters  map[string]*models.SitterRecord
	bookings map[string]*models.Booking
	pets     map[string]*models.PetProfile
	failAll  bool
	created  []*models.Booking
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		sitters:  map[string]*models.SitterRecord{},
		bookings: map[string]*models.Booking{},
		pets:     map[string]*models.PetProfile{},
	}
}

func (f *fakeStore) GetSitter(_ context.Context, id string) (*models.SitterRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return nil, errStore
	}
	s, ok := f.sitters[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return s, nil
}

func (f *fakeStore) GetBooking(_ context.Context, id string) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return nil, errStore
	}
	b, ok := f.bookings[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return b, nil
}

func (f *fakeStore) GetBookingsForSitter(_ context.Context, sitterID string, from, to time.Time) ([]*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return nil, errStore
	}
	var out []*models.Booking
	for _, b := range f.bookings {
		if b.SitterID == sitterID && b.Overlaps(from, to) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeStore) CreateBooking(_ context.Context, b *models.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return errStore
	}
	f.bookings[b.ID] = b
	f.created = append(f.created, b)
	return nil
}

func (f *fakeStore) UpdateBookingStatus(_ context.Context, id string, status models.BookingStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return errStore
	}
	b, ok := f.bookings[id]
	if !ok {
		return models.ErrNotFound
	}
	b.Status = status
	return nil
}

func (f *fakeStore) GetPet(_ context.Context, id string) (*models.PetProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return nil, errStore
	}
	p, ok := f.pets[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return p, nil
}

func (f *fakeStore) GetPetsByOwner(_ context.Context, ownerID string) ([]*models.PetProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return nil, errStore
	}
	var out []*models.PetProfile
	for _, p := range f.pets {
		if p.OwnerID == ownerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeStore) Health(context.Context) error { return nil }
func (f *fakeStore) Close() error                 { return nil }

type fakeInsight struct {
	sentiment  float64
	trust      float64
	strengths  []string
	slots      []domsvc.SuggestedSlot
	fail       bool
	slotCalled bool
}

func (f *fakeInsight) JudgeSentiment(context.Context, []string) (domsvc.SentimentJudgment, error) {
	if f.fail {
		return domsvc.SentimentJudgment{}, errors.New("insight down")
	}
	return domsvc.SentimentJudgment{Score: f.sentiment}, nil
}

func (f *fakeInsight) JudgeTrustworthiness(context.Context, *models.SitterRecord) (domsvc.TrustJudgment, error) {
	if f.fail {
		return domsvc.TrustJudgment{}, errors.New("insight down")
	}
	return domsvc.TrustJudgment{Score: f.trust, Strengths: f.strengths}, nil
}

func (f *fakeInsight) SuggestTimeSlots(context.Context, domsvc.SlotContext) ([]domsvc.SuggestedSlot, error) {
	f.slotCalled = true
	if f.fail {
		return nil, errors.New("insight down")
	}
	return f.slots, nil
}

type fakeHistory struct {
	mu       sync.Mutex
	outcomes []*models.BookingOutcome
	recorded []*models.BookingOutcome
	fail     bool
}

func (f *fakeHistory) Record(_ context.Context, o *models.BookingOutcome) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("history down")
	}
	f.recorded = append(f.recorded, o)
	return nil
}

func (f *fakeHistory) ForPair(_ context.Context, petID, sitterID string, limit int) ([]*models.BookingOutcome, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return nil, errors.New("history down")
	}
	return f.outcomes, nil
}

func (f *fakeHistory) Health(context.Context) error { return nil }
func (f *fakeHistory) Close() error                 { return nil }

type sentNotification struct {
	event     domrepo.NotificationEvent
	recipient string
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []sentNotification
}

func (f *fakeNotifier) Send(_ context.Context, event domrepo.NotificationEvent, recipientID string, _ interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentNotification{event: event, recipient: recipientID})
	return nil
}

func (f *fakeNotifier) Close() error { return nil }

type fakeMetrics struct {
	mu        sync.Mutex
	scores    map[string]int
	fallbacks map[string]int
	conflicts map[string]int
	bookings  int
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{scores: map[string]int{}, fallbacks: map[string]int{}, conflicts: map[string]int{}}
}

func (f *fakeMetrics) RecordScoreComputed(kind string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scores[kind]++
}

func (f *fakeMetrics) RecordFallback(signal string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fallbacks[signal]++
}

func (f *fakeMetrics) RecordBookingCreated() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bookings++
}

func (f *fakeMetrics) RecordConflictRejected(kind string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.conflicts[kind]++
}

func (f *fakeMetrics) RecordLatency(string, float64) {}
