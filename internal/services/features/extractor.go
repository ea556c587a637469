package features

import (
	"context"
	"math"
	"sort"

	"PawMatch/internal/domain/models"
	domsvc "PawMatch/internal/domain/service"
)

// Normalization ceilings for count-like inputs.
const (
	maxResponseHours  = 48.0
	maxExperienceYrs  = 10.0
	maxBookingVolume  = 100.0
	maxEmergencyCount = 3.0
	maxCertifications = 5.0
	neutralSentiment  = 0.5
)

// Extractor turns a raw sitter record into the fixed 15-feature vector.
// Pure arithmetic except for the review-sentiment feature, which may consult
// the external classifier and falls back to the neutral prior on any failure.
type Extractor struct {
	insight    domsvc.InsightProvider
	onFallback func()
}

// NewExtractor builds an extractor. insight may be nil; sentiment then stays
// at the neutral prior.
func NewExtractor(insight domsvc.InsightProvider) *Extractor {
	return &Extractor{insight: insight}
}

// OnFallback registers a hook fired whenever the sentiment call falls back.
func (e *Extractor) OnFallback(fn func()) { e.onFallback = fn }

// Extract never fails: malformed or missing fields resolve to their
// documented defaults and every element is clamped to [0,1].
func (e *Extractor) Extract(ctx context.Context, sitter *models.SitterRecord) models.FeatureVector {
	if sitter == nil {
		return models.FeatureVector{Sentiment: neutralSentiment, BookingConsistency: neutralSentiment}.Clamped()
	}

	v := models.FeatureVector{
		Sentiment:          e.sentiment(ctx, sitter.Reviews),
		ResponseTime:       1 - sitter.ResponseTimeHours/maxResponseHours,
		Completion:         sitter.CompletionRate / 100,
		Rating:             averageRating(sitter.Reviews) / 5,
		Reliability:        0.5*sitter.OnTimeRate + 0.5*(1-sitter.CancellationRate),
		Verification:       verificationShare(sitter),
		Experience:         sitter.ExperienceYears / maxExperienceYrs,
		BookingVolume:      float64(len(sitter.CompletedBookings)) / maxBookingVolume,
		Communication:      sitter.CommunicationScore / 5,
		EmergencyContacts:  float64(sitter.EmergencyContacts) / maxEmergencyCount,
		Certifications:     float64(len(sitter.Certifications)) / maxCertifications,
		BackgroundCheck:    boolFeature(sitter.BackgroundChecked),
		Insurance:          boolFeature(sitter.Insured),
		IdentityVerified:   boolFeature(sitter.VerificationStatus),
		BookingConsistency: ConsistencyScore(sitter.CompletedBookings),
	}
	return v.Clamped()
}

func (e *Extractor) sentiment(ctx context.Context, reviews []models.Review) float64 {
	if e.insight == nil || len(reviews) == 0 {
		return neutralSentiment
	}
	texts := make([]string, 0, len(reviews))
	for _, r := range reviews {
		if r.Text != "" {
			texts = append(texts, r.Text)
		}
	}
	if len(texts) == 0 {
		return neutralSentiment
	}
	j, err := e.insight.JudgeSentiment(ctx, texts)
	if err != nil {
		if e.onFallback != nil {
			e.onFallback()
		}
		return neutralSentiment
	}
	return models.Clamp01(j.Score)
}

// ConsistencyScore measures how regular a sitter's booking cadence is via
// the coefficient of variation over inter-booking gaps:
// clamp(1 - stddev(gaps)/mean(gaps)/2, 0, 1). Fewer than two completed
// bookings yields the neutral prior.
func ConsistencyScore(completed []models.CompletedBooking) float64 {
	if len(completed) < 2 {
		return neutralSentiment
	}
	ordered := make([]models.CompletedBooking, len(completed))
	copy(ordered, completed)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].StartTime.Before(ordered[j].StartTime) })

	gaps := make([]float64, 0, len(ordered)-1)
	for i := 1; i < len(ordered); i++ {
		gaps = append(gaps, ordered[i].StartTime.Sub(ordered[i-1].StartTime).Hours())
	}

	mean := 0.0
	for _, g := range gaps {
		mean += g
	}
	mean /= float64(len(gaps))
	if mean <= 0 {
		return 0
	}

	variance := 0.0
	for _, g := range gaps {
		d := g - mean
		variance += d * d
	}
	variance /= float64(len(gaps))

	return models.Clamp01(1 - math.Sqrt(variance)/mean/2)
}

func averageRating(reviews []models.Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	sum := 0.0
	for _, r := range reviews {
		sum += r.Rating
	}
	return sum / float64(len(reviews))
}

func verificationShare(s *models.SitterRecord) float64 {
	n := 0
	if s.VerificationStatus {
		n++
	}
	if s.BackgroundChecked {
		n++
	}
	if s.Insured {
		n++
	}
	return float64(n) / 3
}

func boolFeature(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
