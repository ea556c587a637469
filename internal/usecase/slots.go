package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"PawMatch/internal/domain/models"
	domrepo "PawMatch/internal/domain/repository"
	domsvc "PawMatch/internal/domain/service"
	applogger "PawMatch/pkg/logger"
)

const (
	minWindowHours    = 4
	maxWindowHours    = 12
	earliestStart     = 6
	latestStart       = 18
	minCandidateCut   = 0.6
	topPerDay         = 3
	peakHourScore     = 0.8
	baselineScore     = 0.4
	durationTolerance = 2.0
	historyLimit      = 200
)

// peakHours get the elevated heuristic score when no learned signal exists.
var peakHours = map[int]bool{8: true, 9: true, 10: true, 14: true, 15: true, 16: true, 17: true}

// TimeSlotRecommender scores candidate booking windows per day from
// historical outcomes, pet patterns and the optional external suggestion
// signal, then filters and ranks them for the requesting owner.
type TimeSlotRecommender struct {
	store   domrepo.DataStore
	history domrepo.BookingHistory
	insight domsvc.InsightProvider
	metrics domrepo.Metrics
	logger  *applogger.Logger
	now     func() time.Time
}

func NewTimeSlotRecommender(store domrepo.DataStore, history domrepo.BookingHistory, insight domsvc.InsightProvider, metrics domrepo.Metrics, l *applogger.Logger) *TimeSlotRecommender {
	return &TimeSlotRecommender{store: store, history: history, insight: insight, metrics: metrics, logger: l, now: time.Now}
}

// Suggest produces ranked slot candidates for the (pet, sitter) pair over the
// next days. Only the pet lookup is fatal; every other signal degrades to its
// documented fallback.
func (r *TimeSlotRecommender) Suggest(ctx context.Context, petID, sitterID string, prefs models.OwnerPreferences, days int) (*models.SlotSuggestions, error) {
	if days <= 0 {
		days = 7
	}
	pet, err := r.store.GetPet(ctx, petID)
	if err != nil {
		return nil, models.DataError("get pet", err)
	}

	// History and external suggestions are independent signals: gather
	// concurrently, join, degrade each on its own failure.
	var (
		wg       sync.WaitGroup
		outcomes []*models.BookingOutcome
		external []domsvc.SuggestedSlot
		extOK    bool
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		hs, err := r.history.ForPair(ctx, petID, sitterID, historyLimit)
		if err != nil {
			if r.metrics != nil {
				r.metrics.RecordFallback("history")
			}
			if r.logger != nil {
				r.logger.Warn("history unavailable, proceeding without", applogger.Error(err))
			}
			return
		}
		outcomes = hs
	}()
	wg.Add(1)
	go func() {
		defer wg.Done()
		if r.insight == nil {
			return
		}
		ictx, cancel := context.WithTimeout(ctx, insightTimeout)
		defer cancel()
		ss, err := r.insight.SuggestTimeSlots(ictx, domsvc.SlotContext{PetID: petID, SitterID: sitterID, Days: days})
		if err != nil || len(ss) == 0 {
			if r.metrics != nil {
				r.metrics.RecordFallback("slots")
			}
			return
		}
		external, extOK = ss, true
	}()
	wg.Wait()

	hourScores := r.hourScores(outcomes)
	base := dateOf(r.now()).AddDate(0, 0, 1) // start with tomorrow

	candidates := r.patternCandidates(base, days, hourScores, pet)
	candidates = append(candidates, r.externalCandidates(base, days, external, extOK)...)
	candidates = filterByPreferences(candidates, prefs)

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].StartTime.Before(candidates[j].StartTime)
	})
	for i := range candidates {
		candidates[i].Rank = i + 1
		candidates[i].Confidence = confidenceLabel(candidates[i].Score)
	}

	if r.metrics != nil {
		r.metrics.RecordScoreComputed("slots")
	}

	return &models.SlotSuggestions{
		PetID:       petID,
		SitterID:    sitterID,
		Suggestions: candidates,
		Confidence:  suggestionConfidence(len(outcomes), pet),
		Factors:     slotFactors(candidates),
		ComputedAt:  time.Now(),
	}, nil
}

// hourScores builds the per-hour score for a representative day. Without a
// learned model the fixed peak-hour heuristic applies; historical outcomes,
// when present, sharpen individual hours by their observed success share.
func (r *TimeSlotRecommender) hourScores(outcomes []*models.BookingOutcome) [24]float64 {
	var scores [24]float64
	for h := 0; h < 24; h++ {
		if peakHours[h] {
			scores[h] = peakHourScore
		} else {
			scores[h] = baselineScore
		}
	}
	if len(outcomes) < 3 {
		return scores
	}
	var total, success [24]int
	for _, o := range outcomes {
		if o.StartHour < 0 || o.StartHour > 23 {
			continue
		}
		total[o.StartHour]++
		if o.Success {
			success[o.StartHour]++
		}
	}
	for h := 0; h < 24; h++ {
		if total[h] == 0 {
			continue
		}
		observed := float64(success[h]) / float64(total[h])
		scores[h] = models.Clamp01(0.6*scores[h] + 0.4*observed)
	}
	return scores
}

// patternCandidates slides a 4-12h window across each day, scoring it by the
// average hour score plus the pet's band and feeding overlaps. Windows at or
// below the cut are discarded; the top 3 per day survive.
func (r *TimeSlotRecommender) patternCandidates(base time.Time, days int, hourScores [24]float64, pet *models.PetProfile) []models.TimeSlotCandidate {
	var out []models.TimeSlotCandidate
	for d := 0; d < days; d++ {
		day := base.AddDate(0, 0, d)
		var daily []models.TimeSlotCandidate
		for width := minWindowHours; width <= maxWindowHours; width++ {
			for start := earliestStart; start <= latestStart; start++ {
				end := start + width
				if end > 24 {
					continue
				}
				sum := 0.0
				for h := start; h < end; h++ {
					sum += hourScores[h]
				}
				score := sum / float64(width)
				score += bandBonus(start, end, pet.Morning) + bandBonus(start, end, pet.Afternoon) + bandBonus(start, end, pet.Evening)
				score += feedingBonus(start, end, pet.FeedingHours)
				score = models.Clamp01(score)
				if score <= minCandidateCut {
					continue
				}
				daily = append(daily, models.TimeSlotCandidate{
					Date:          day,
					StartTime:     day.Add(time.Duration(start) * time.Hour),
					EndTime:       day.Add(time.Duration(end) * time.Hour),
					DurationHours: float64(width),
					Score:         score,
					Source:        models.SourceHistorical,
					Reasoning:     fmt.Sprintf("%d:00-%d:00 matches the pet's routine", start, end),
				})
			}
		}
		sort.Slice(daily, func(i, j int) bool { return daily[i].Score > daily[j].Score })
		if len(daily) > topPerDay {
			daily = daily[:topPerDay]
		}
		out = append(out, daily...)
	}
	return out
}

// externalCandidates maps provider suggestions into candidates, or emits the
// fixed standard-hours fallback when the provider gave nothing.
func (r *TimeSlotRecommender) externalCandidates(base time.Time, days int, external []domsvc.SuggestedSlot, extOK bool) []models.TimeSlotCandidate {
	if !extOK {
		out := make([]models.TimeSlotCandidate, 0, days)
		for d := 0; d < days; d++ {
			day := base.AddDate(0, 0, d)
			out = append(out, models.TimeSlotCandidate{
				Date:          day,
				StartTime:     day.Add(9 * time.Hour),
				EndTime:       day.Add(17 * time.Hour),
				DurationHours: 8,
				Score:         0.7,
				Source:        models.SourceFallback,
				Reasoning:     "Standard care hours",
			})
		}
		return out
	}
	out := make([]models.TimeSlotCandidate, 0, len(external))
	for _, s := range external {
		if s.EndHour <= s.StartHour {
			continue
		}
		day := dateOf(s.Date)
		out = append(out, models.TimeSlotCandidate{
			Date:          day,
			StartTime:     day.Add(time.Duration(s.StartHour) * time.Hour),
			EndTime:       day.Add(time.Duration(s.EndHour) * time.Hour),
			DurationHours: float64(s.EndHour - s.StartHour),
			Score:         models.Clamp01(s.Confidence),
			Source:        models.SourceExternal,
			Reasoning:     s.Reasoning,
		})
	}
	return out
}

// filterByPreferences drops candidates too far from the requested duration or
// incompatible with a stated part-of-day preference. Flexible or absent
// preferences filter nothing.
func filterByPreferences(cands []models.TimeSlotCandidate, prefs models.OwnerPreferences) []models.TimeSlotCandidate {
	out := cands[:0]
	for _, c := range cands {
		if prefs.DurationHours > 0 {
			diff := c.DurationHours - prefs.DurationHours
			if diff < -durationTolerance || diff > durationTolerance {
				continue
			}
		}
		if !startCompatible(c.StartTime.Hour(), prefs.PreferredTime) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func startCompatible(startHour int, preferred string) bool {
	switch preferred {
	case "morning":
		return startHour <= 12
	case "afternoon":
		return startHour >= 12 && startHour <= 16
	case "evening":
		return startHour >= 16
	default: // "flexible" or unset
		return true
	}
}

// bandBonus rewards window overlap with a declared preference band, weighted
// by the band's confidence.
func bandBonus(start, end int, band models.TimeBand) float64 {
	if band.EndHour <= band.StartHour || band.Confidence <= 0 {
		return 0
	}
	overlap := overlapHours(start, end, band.StartHour, band.EndHour)
	if overlap <= 0 {
		return 0
	}
	frac := float64(overlap) / float64(band.EndHour-band.StartHour)
	return frac * band.Confidence * 0.2
}

func feedingBonus(start, end int, feeding []int) float64 {
	if len(feeding) == 0 {
		return 0
	}
	covered := 0
	for _, h := range feeding {
		if h >= start && h < end {
			covered++
		}
	}
	return float64(covered) / float64(len(feeding)) * 0.1
}

func overlapHours(aStart, aEnd, bStart, bEnd int) int {
	lo := aStart
	if bStart > lo {
		lo = bStart
	}
	hi := aEnd
	if bEnd < hi {
		hi = bEnd
	}
	return hi - lo
}

func confidenceLabel(score float64) string {
	switch {
	case score >= 0.8:
		return "high"
	case score >= 0.6:
		return "medium"
	default:
		return "low"
	}
}

// suggestionConfidence reflects evidence volume plus how sure the pet's
// declared bands are.
func suggestionConfidence(historyCount int, pet *models.PetProfile) float64 {
	c := 0.5
	if historyCount >= 5 {
		c += 0.2
	}
	if historyCount >= 10 {
		c += 0.1
	}
	avgBand := (pet.Morning.Confidence + pet.Afternoon.Confidence + pet.Evening.Confidence) / 3
	c += avgBand * 0.2
	return models.Clamp01(c)
}

func slotFactors(cands []models.TimeSlotCandidate) []string {
	seen := map[string]bool{}
	var out []string
	add := func(label string) {
		if !seen[label] {
			seen[label] = true
			out = append(out, label)
		}
	}
	for _, c := range cands {
		if c.Score >= 0.8 {
			add("High historical success rate")
		}
		if c.Source == models.SourceExternal {
			add("AI-optimized timing")
		}
		if c.DurationHours >= 6 {
			add("Extended care period")
		}
	}
	return out
}
