package insight

import (
	"context"
	"errors"

	models "PawMatch/internal/domain/models"
	domsvc "PawMatch/internal/domain/service"
)

// ErrDisabled is returned by Disabled for every judgment, pushing callers
// onto their heuristic fallbacks.
var ErrDisabled = errors.New("insight provider disabled")

// Disabled satisfies the provider interface when no external model service
// is configured.
type Disabled struct{}

func NewDisabled() Disabled { return Disabled{} }

func (Disabled) JudgeSentiment(context.Context, []string) (domsvc.SentimentJudgment, error) {
	return domsvc.SentimentJudgment{}, ErrDisabled
}

func (Disabled) JudgeTrustworthiness(context.Context, *models.SitterRecord) (domsvc.TrustJudgment, error) {
	return domsvc.TrustJudgment{}, ErrDisabled
}

func (Disabled) SuggestTimeSlots(context.Context, domsvc.SlotContext) ([]domsvc.SuggestedSlot, error) {
	return nil, ErrDisabled
}

var _ domsvc.InsightProvider = Disabled{}
