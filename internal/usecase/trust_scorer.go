package usecase

import (
	"context"
	"sync"
	"time"

	"PawMatch/internal/domain/models"
	domrepo "PawMatch/internal/domain/repository"
	domsvc "PawMatch/internal/domain/service"
	"PawMatch/internal/services/features"
	applogger "PawMatch/pkg/logger"
)

const (
	sentimentLocalWeight    = 0.7
	sentimentExternalWeight = 0.3
	neutralTrustEstimate    = 0.5
	insightTimeout          = 2 * time.Second
)

// adjustment is one pure business rule applied to the running score. The
// running value is clamped after every step, so ordering is observable.
type adjustment struct {
	when  func(s *models.SitterRecord) bool
	delta float64
}

var trustAdjustments = []adjustment{
	{func(s *models.SitterRecord) bool { return s.VerificationStatus }, 0.10},
	{func(s *models.SitterRecord) bool { return s.ExperienceYears >= 3 }, 0.05},
	{func(s *models.SitterRecord) bool { return s.CancellationRate > 0.2 }, -0.15},
	{func(s *models.SitterRecord) bool { return s.ResponseTimeHours > 48 }, -0.10},
}

// factorRule maps a feature threshold to its human-readable label.
type factorRule struct {
	value     func(v models.FeatureVector) float64
	threshold float64
	label     string
}

var factorRules = []factorRule{
	{func(v models.FeatureVector) float64 { return v.Sentiment }, 0.8, "Excellent review sentiment"},
	{func(v models.FeatureVector) float64 { return v.Reliability }, 0.8, "Reliable booking patterns"},
	{func(v models.FeatureVector) float64 { return v.Rating }, 0.8, "Highly rated by owners"},
	{func(v models.FeatureVector) float64 { return v.ResponseTime }, 0.8, "Fast response times"},
	{func(v models.FeatureVector) float64 { return v.Completion }, 0.9, "Consistently completes bookings"},
	{func(v models.FeatureVector) float64 { return v.Verification }, 0.99, "Fully verified profile"},
	{func(v models.FeatureVector) float64 { return v.BookingConsistency }, 0.8, "Steady booking cadence"},
}

// TrustScorer combines the feature vector with the optional external trust
// estimate into a bounded score, confidence and explanatory factors.
type TrustScorer struct {
	store     domrepo.DataStore
	insight   domsvc.InsightProvider
	extractor *features.Extractor
	metrics   domrepo.Metrics
	logger    *applogger.Logger
}

func NewTrustScorer(store domrepo.DataStore, insight domsvc.InsightProvider, extractor *features.Extractor, metrics domrepo.Metrics, l *applogger.Logger) *TrustScorer {
	ts := &TrustScorer{store: store, insight: insight, extractor: extractor, metrics: metrics, logger: l}
	if metrics != nil {
		extractor.OnFallback(func() { metrics.RecordFallback("sentiment") })
	}
	return ts
}

// Score loads the sitter and scores it. The only error path is the store
// lookup; everything downstream degrades to its fallback.
func (t *TrustScorer) Score(ctx context.Context, sitterID string) (*models.TrustScoreResult, error) {
	sitter, err := t.store.GetSitter(ctx, sitterID)
	if err != nil {
		return nil, models.DataError("get sitter", err)
	}
	return t.ScoreRecord(ctx, sitter), nil
}

// ScoreRecord scores an already loaded record. Never fails.
func (t *TrustScorer) ScoreRecord(ctx context.Context, sitter *models.SitterRecord) *models.TrustScoreResult {
	start := time.Now()

	// Feature extraction (holds the sentiment call) and the trust judgment
	// are independent signals; gather them concurrently and join.
	var (
		wg        sync.WaitGroup
		vec       models.FeatureVector
		judgment  domsvc.TrustJudgment
		strengths []string
	)
	judgment.Score = neutralTrustEstimate

	wg.Add(1)
	go func() {
		defer wg.Done()
		vec = t.extractor.Extract(ctx, sitter)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		if t.insight == nil {
			return
		}
		ictx, cancel := context.WithTimeout(ctx, insightTimeout)
		defer cancel()
		j, err := t.insight.JudgeTrustworthiness(ictx, sitter)
		if err != nil {
			// No retry: the score must never block on the external call.
			if t.metrics != nil {
				t.metrics.RecordFallback("trustworthiness")
			}
			if t.logger != nil {
				t.logger.Debug("trust judgment fallback", applogger.Error(err))
			}
			return
		}
		judgment.Score = models.Clamp01(j.Score)
		strengths = j.Strengths
	}()

	wg.Wait()

	vec.Sentiment = models.Clamp01(sentimentLocalWeight*vec.Sentiment + sentimentExternalWeight*judgment.Score)

	score := vec.Mean()
	for _, a := range trustAdjustments {
		if a.when(sitter) {
			score = models.Clamp01(score + a.delta)
		}
	}

	factors := make([]string, 0, len(factorRules)+len(strengths))
	for _, r := range factorRules {
		if r.value(vec) > r.threshold {
			factors = append(factors, r.label)
		}
	}
	factors = append(factors, strengths...)

	if t.metrics != nil {
		t.metrics.RecordScoreComputed("trust")
		t.metrics.RecordLatency("trust_score", time.Since(start).Seconds())
	}

	return &models.TrustScoreResult{
		SitterID:   sitter.ID,
		Score:      models.Clamp01(score),
		Confidence: trustConfidence(sitter),
		Factors:    factors,
		ComputedAt: time.Now(),
	}
}

// trustConfidence is independent of the score: it reflects how much evidence
// backs the estimate, not how good the sitter looks.
func trustConfidence(s *models.SitterRecord) float64 {
	c := 0.5
	if len(s.CompletedBookings) >= 10 {
		c += 0.2
	}
	if len(s.CompletedBookings) >= 50 {
		c += 0.1
	}
	if len(s.Reviews) >= 5 {
		c += 0.1
	}
	if len(s.Reviews) >= 20 {
		c += 0.1
	}
	if s.VerificationStatus {
		c += 0.1
	}
	if s.BackgroundChecked {
		c += 0.1
	}
	return models.Clamp01(c)
}
