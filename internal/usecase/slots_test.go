package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"PawMatch/internal/domain/models"
	domsvc "PawMatch/internal/domain/service"
)

func testPet() *models.PetProfile {
	return &models.PetProfile{
		ID:           "p1",
		OwnerID:      "o1",
		Name:         "Rex",
		Species:      "dog",
		Morning:      models.TimeBand{StartHour: 8, EndHour: 11, Confidence: 0.9},
		FeedingHours: []int{8, 17},
	}
}

func newRecommender(t *testing.T, store *fakeStore, history *fakeHistory, ins *fakeInsight) *TimeSlotRecommender {
	t.Helper()
	var provider domsvc.InsightProvider
	if ins != nil {
		provider = ins
	}
	r := NewTimeSlotRecommender(store, history, provider, newFakeMetrics(), testLogger(t))
	r.now = func() time.Time { return time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC) }
	return r
}

func TestSuggestMissingPetFails(t *testing.T) {
	r := newRecommender(t, newFakeStore(), &fakeHistory{}, nil)
	_, err := r.Suggest(context.Background(), "p1", "sit1", models.OwnerPreferences{}, 7)
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if errors.Is(err, models.ErrDataUnavailable) {
		t.Fatalf("missing pet must not read as a store outage: %v", err)
	}
}

func TestSuggestCandidateInvariants(t *testing.T) {
	store := newFakeStore()
	store.pets["p1"] = testPet()
	r := newRecommender(t, store, &fakeHistory{}, nil)

	res, err := r.Suggest(context.Background(), "p1", "sit1", models.OwnerPreferences{}, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Suggestions) == 0 {
		t.Fatalf("expected candidates")
	}
	tomorrow := time.Date(2026, 9, 11, 0, 0, 0, 0, time.UTC)
	for i, c := range res.Suggestions {
		if c.Rank != i+1 {
			t.Fatalf("rank %d at position %d", c.Rank, i)
		}
		if i > 0 && res.Suggestions[i-1].Score < c.Score {
			t.Fatalf("not sorted by score at %d", i)
		}
		if c.Source == models.SourceHistorical && c.Score <= minCandidateCut {
			t.Fatalf("pattern candidate below cut survived: %v", c.Score)
		}
		if c.DurationHours < minWindowHours || c.DurationHours > maxWindowHours {
			t.Fatalf("duration out of range: %v", c.DurationHours)
		}
		if c.Date.Before(tomorrow) {
			t.Fatalf("candidate before tomorrow: %v", c.Date)
		}
		if c.Confidence == "" {
			t.Fatalf("missing confidence label")
		}
	}
	if res.Confidence < 0 || res.Confidence > 1 {
		t.Fatalf("confidence out of bounds: %v", res.Confidence)
	}
}

func TestSuggestHistoryFailureFallsBack(t *testing.T) {
	store := newFakeStore()
	store.pets["p1"] = testPet()
	r := newRecommender(t, store, &fakeHistory{fail: true}, nil)

	res, err := r.Suggest(context.Background(), "p1", "sit1", models.OwnerPreferences{}, 2)
	if err != nil {
		t.Fatalf("history failure must not surface: %v", err)
	}
	fallbacks := 0
	for _, c := range res.Suggestions {
		if c.Source == models.SourceFallback {
			fallbacks++
			if c.Reasoning != "Standard care hours" || c.Score != 0.7 {
				t.Fatalf("unexpected fallback candidate: %+v", c)
			}
		}
	}
	if fallbacks == 0 {
		t.Fatalf("expected standard-hours fallback candidates")
	}
}

func TestSuggestExternalSlots(t *testing.T) {
	store := newFakeStore()
	store.pets["p1"] = testPet()
	ins := &fakeInsight{slots: []domsvc.SuggestedSlot{
		{Date: time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC), StartHour: 9, EndHour: 15, Confidence: 0.95, Reasoning: "calm mid-day stretch"},
	}}
	r := newRecommender(t, store, &fakeHistory{}, ins)

	res, err := r.Suggest(context.Background(), "p1", "sit1", models.OwnerPreferences{}, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	found := false
	for _, c := range res.Suggestions {
		if c.Source == models.SourceExternal {
			found = true
			if c.DurationHours != 6 || c.Score != 0.95 {
				t.Fatalf("external candidate mapped wrong: %+v", c)
			}
		}
		if c.Source == models.SourceFallback {
			t.Fatalf("fallback must not appear when the provider answered")
		}
	}
	if !found {
		t.Fatalf("expected external candidate")
	}
}

func TestSuggestMorningPreference(t *testing.T) {
	store := newFakeStore()
	store.pets["p1"] = testPet()
	r := newRecommender(t, store, &fakeHistory{}, nil)

	res, err := r.Suggest(context.Background(), "p1", "sit1", models.OwnerPreferences{PreferredTime: "morning"}, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, c := range res.Suggestions {
		if c.StartTime.Hour() > 12 {
			t.Fatalf("afternoon start %d survived morning preference", c.StartTime.Hour())
		}
	}
}

func TestSuggestDurationFilter(t *testing.T) {
	store := newFakeStore()
	store.pets["p1"] = testPet()
	r := newRecommender(t, store, &fakeHistory{}, nil)

	res, err := r.Suggest(context.Background(), "p1", "sit1", models.OwnerPreferences{DurationHours: 4}, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, c := range res.Suggestions {
		if c.DurationHours > 6 {
			t.Fatalf("duration %v outside tolerance of requested 4h", c.DurationHours)
		}
	}
}

func TestHourScoresSharpenedByHistory(t *testing.T) {
	r := newRecommender(t, newFakeStore(), &fakeHistory{}, nil)

	outcomes := []*models.BookingOutcome{
		{StartHour: 9, Success: false},
		{StartHour: 9, Success: false},
		{StartHour: 9, Success: false},
	}
	scores := r.hourScores(outcomes)
	if scores[9] >= peakHourScore {
		t.Fatalf("repeated failures at 9:00 must lower its score, got %v", scores[9])
	}
	if scores[10] != peakHourScore {
		t.Fatalf("hours without outcomes keep the heuristic, got %v", scores[10])
	}

	// Below three outcomes the heuristic stands untouched.
	scores = r.hourScores(outcomes[:2])
	if scores[9] != peakHourScore {
		t.Fatalf("sparse history must not adjust, got %v", scores[9])
	}
}
