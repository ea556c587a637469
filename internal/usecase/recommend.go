package usecase

import (
	"context"
	"sort"
	"sync"

	"PawMatch/internal/domain/models"
	applogger "PawMatch/pkg/logger"
)

const (
	compatibilityWeight = 0.6
	trustWeight         = 0.4
	timedSitters        = 3
)

// RecommendationOrchestrator composes trust scoring and slot recommendation
// into one ranked response. The compatibility score arrives precomputed from
// the upstream matchmaking stage.
type RecommendationOrchestrator struct {
	scorer *TrustScorer
	slots  *TimeSlotRecommender
	logger *applogger.Logger
}

func NewRecommendationOrchestrator(scorer *TrustScorer, slots *TimeSlotRecommender, l *applogger.Logger) *RecommendationOrchestrator {
	return &RecommendationOrchestrator{scorer: scorer, slots: slots, logger: l}
}

// Recommend scores every candidate concurrently and ranks the survivors.
// An empty candidate list yields an empty result, never an error; candidates
// whose records cannot be loaded are skipped.
func (o *RecommendationOrchestrator) Recommend(ctx context.Context, candidates []models.CandidateSitter, limit int) []*models.SitterRecommendation {
	if len(candidates) == 0 {
		return []*models.SitterRecommendation{}
	}
	if limit <= 0 {
		limit = len(candidates)
	}

	type item struct {
		rec *models.SitterRecommendation
		err error
	}
	ch := make(chan item, len(candidates))
	var wg sync.WaitGroup
	for _, c := range candidates {
		wg.Add(1)
		go func(c models.CandidateSitter) {
			defer wg.Done()
			sitter, err := o.scorer.store.GetSitter(ctx, c.SitterID)
			if err != nil {
				ch <- item{err: err}
				return
			}
			trust := o.scorer.ScoreRecord(ctx, sitter)
			rec := &models.SitterRecommendation{
				Sitter:        sitter,
				Compatibility: c.Compatibility,
				TrustScore:    trust,
				Combined:      compatibilityWeight*c.Compatibility + trustWeight*trust.Score,
				MatchReasons:  matchReasons(c.Compatibility, trust),
			}
			ch <- item{rec: rec}
		}(c)
	}
	go func() { wg.Wait(); close(ch) }()

	recs := make([]*models.SitterRecommendation, 0, len(candidates))
	for it := range ch {
		if it.err != nil {
			if o.logger != nil {
				o.logger.Warn("candidate skipped", applogger.Error(it.err))
			}
			continue
		}
		recs = append(recs, it.rec)
	}

	sort.Slice(recs, func(i, j int) bool {
		if recs[i].Combined != recs[j].Combined {
			return recs[i].Combined > recs[j].Combined
		}
		if recs[i].TrustScore.Confidence != recs[j].TrustScore.Confidence {
			return recs[i].TrustScore.Confidence > recs[j].TrustScore.Confidence
		}
		return recs[i].Sitter.ID < recs[j].Sitter.ID
	})
	if len(recs) > limit {
		recs = recs[:limit]
	}
	return recs
}

// RecommendWithTiming additionally attaches slot suggestions for the top
// ranked sitters. Slot failures leave the recommendation without timing
// rather than failing the whole response.
func (o *RecommendationOrchestrator) RecommendWithTiming(ctx context.Context, petID string, prefs models.OwnerPreferences, candidates []models.CandidateSitter, limit, days int) []*models.SitterRecommendation {
	recs := o.Recommend(ctx, candidates, limit)

	n := timedSitters
	if n > len(recs) {
		n = len(recs)
	}
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(rec *models.SitterRecommendation) {
			defer wg.Done()
			res, err := o.slots.Suggest(ctx, petID, rec.Sitter.ID, prefs, days)
			if err != nil {
				if o.logger != nil {
					o.logger.Warn("slot suggestion failed", applogger.Error(err), applogger.String("sitter", rec.Sitter.ID))
				}
				return
			}
			rec.Slots = res.Suggestions
		}(recs[i])
	}
	wg.Wait()
	return recs
}

func matchReasons(compat float64, trust *models.TrustScoreResult) []string {
	reasons := make([]string, 0, len(trust.Factors)+2)
	if compat >= 0.8 {
		reasons = append(reasons, "Strong pet compatibility")
	}
	if trust.Score >= 0.8 {
		reasons = append(reasons, "Highly trusted sitter")
	}
	reasons = append(reasons, trust.Factors...)
	return reasons
}
