package service

import (
	"context"
	"time"

	"PawMatch/internal/domain/models"
)

// SentimentJudgment is an external classifier's read on a batch of review
// texts.
type SentimentJudgment struct {
	Score float64 // 0..1
}

// TrustJudgment is an external model's read on a sitter profile.
type TrustJudgment struct {
	Score       float64 // 0..1
	Strengths   []string
	RiskFactors []string
}

// SuggestedSlot is one externally proposed booking window.
type SuggestedSlot struct {
	Date       time.Time
	StartHour  int
	EndHour    int
	Confidence float64
	Reasoning  string
}

// SlotContext is what the external provider gets to reason over.
type SlotContext struct {
	PetID    string
	SitterID string
	Days     int
	History  []*models.BookingOutcome
}

// InsightProvider is the single narrow interface over the external
// language-model service. Any call may fail; every caller owns a
// deterministic fallback and must never propagate these failures.
type InsightProvider interface {
	JudgeSentiment(ctx context.Context, texts []string) (SentimentJudgment, error)
	JudgeTrustworthiness(ctx context.Context, sitter *models.SitterRecord) (TrustJudgment, error)
	SuggestTimeSlots(ctx context.Context, sc SlotContext) ([]SuggestedSlot, error)
}
