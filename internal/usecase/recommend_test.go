package usecase

import (
	"context"
	"testing"

	"PawMatch/internal/domain/models"
)

func newOrchestrator(t *testing.T, store *fakeStore) *RecommendationOrchestrator {
	t.Helper()
	scorer := newScorer(t, store, nil)
	slots := newRecommender(t, store, &fakeHistory{}, nil)
	return NewRecommendationOrchestrator(scorer, slots, testLogger(t))
}

func TestRecommendEmptyInput(t *testing.T) {
	o := newOrchestrator(t, newFakeStore())
	recs := o.Recommend(context.Background(), nil, 5)
	if recs == nil || len(recs) != 0 {
		t.Fatalf("empty input must yield empty non-nil result, got %v", recs)
	}
}

func TestRecommendRanksByCombined(t *testing.T) {
	store := newFakeStore()
	store.sitters["a"] = &models.SitterRecord{ID: "a"}
	store.sitters["b"] = &models.SitterRecord{ID: "b"}
	o := newOrchestrator(t, store)

	recs := o.Recommend(context.Background(), []models.CandidateSitter{
		{SitterID: "a", Compatibility: 0.2},
		{SitterID: "b", Compatibility: 0.9},
	}, 5)
	if len(recs) != 2 {
		t.Fatalf("expected 2, got %d", len(recs))
	}
	if recs[0].Sitter.ID != "b" {
		t.Fatalf("higher compatibility must rank first, got %s", recs[0].Sitter.ID)
	}
	if recs[0].Combined <= recs[1].Combined {
		t.Fatalf("combined not descending")
	}
}

func TestRecommendTieBreaksByID(t *testing.T) {
	store := newFakeStore()
	store.sitters["b"] = &models.SitterRecord{ID: "b"}
	store.sitters["a"] = &models.SitterRecord{ID: "a"}
	o := newOrchestrator(t, store)

	recs := o.Recommend(context.Background(), []models.CandidateSitter{
		{SitterID: "b", Compatibility: 0.5},
		{SitterID: "a", Compatibility: 0.5},
	}, 5)
	if recs[0].Sitter.ID != "a" || recs[1].Sitter.ID != "b" {
		t.Fatalf("exact ties break by id ascending: %s, %s", recs[0].Sitter.ID, recs[1].Sitter.ID)
	}
}

func TestRecommendSkipsFailedCandidates(t *testing.T) {
	store := newFakeStore()
	store.sitters["a"] = &models.SitterRecord{ID: "a"}
	o := newOrchestrator(t, store)

	recs := o.Recommend(context.Background(), []models.CandidateSitter{
		{SitterID: "a", Compatibility: 0.5},
		{SitterID: "missing", Compatibility: 0.9},
	}, 5)
	if len(recs) != 1 || recs[0].Sitter.ID != "a" {
		t.Fatalf("unloadable candidates must be skipped: %v", recs)
	}
}

func TestRecommendAppliesLimit(t *testing.T) {
	store := newFakeStore()
	for _, id := range []string{"a", "b", "c"} {
		store.sitters[id] = &models.SitterRecord{ID: id}
	}
	o := newOrchestrator(t, store)

	recs := o.Recommend(context.Background(), []models.CandidateSitter{
		{SitterID: "a", Compatibility: 0.1},
		{SitterID: "b", Compatibility: 0.5},
		{SitterID: "c", Compatibility: 0.9},
	}, 2)
	if len(recs) != 2 {
		t.Fatalf("limit not applied: %d", len(recs))
	}
	if recs[0].Sitter.ID != "c" || recs[1].Sitter.ID != "b" {
		t.Fatalf("limit must keep the best: %s, %s", recs[0].Sitter.ID, recs[1].Sitter.ID)
	}
}

func TestRecommendWithTimingAttachesSlots(t *testing.T) {
	store := newFakeStore()
	store.sitters["a"] = &models.SitterRecord{ID: "a"}
	store.pets["p1"] = testPet()
	o := newOrchestrator(t, store)

	recs := o.RecommendWithTiming(context.Background(), "p1", models.OwnerPreferences{},
		[]models.CandidateSitter{{SitterID: "a", Compatibility: 0.9}}, 5, 3)
	if len(recs) != 1 {
		t.Fatalf("expected 1 recommendation")
	}
	if len(recs[0].Slots) == 0 {
		t.Fatalf("top recommendation must carry slots")
	}
}

func TestRecommendWithTimingSlotFailureLeavesEmpty(t *testing.T) {
	store := newFakeStore()
	store.sitters["a"] = &models.SitterRecord{ID: "a"}
	// No pet record: the slot path fails while the ranking survives.
	o := newOrchestrator(t, store)

	recs := o.RecommendWithTiming(context.Background(), "ghost", models.OwnerPreferences{},
		[]models.CandidateSitter{{SitterID: "a", Compatibility: 0.9}}, 5, 3)
	if len(recs) != 1 {
		t.Fatalf("expected 1 recommendation")
	}
	if len(recs[0].Slots) != 0 {
		t.Fatalf("failed slot lookup must leave slots empty")
	}
}

func TestMatchReasons(t *testing.T) {
	trust := &models.TrustScoreResult{Score: 0.9, Factors: []string{"Fast response times"}}
	reasons := matchReasons(0.85, trust)
	if len(reasons) != 3 {
		t.Fatalf("expected 3 reasons, got %v", reasons)
	}
	if reasons[0] != "Strong pet compatibility" || reasons[1] != "Highly trusted sitter" {
		t.Fatalf("fixed reasons first: %v", reasons)
	}
}
