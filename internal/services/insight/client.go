package insight

import (
	"context"
	"fmt"
	"time"

	"PawMatch/internal/domain/models"
	domsvc "PawMatch/internal/domain/service"
	xhttp "PawMatch/pkg/http"
)

// HTTPProvider implements InsightProvider against the model service over
// JSON POST. The timeout is short by contract; callers fall back on any
// error and never retry.
type HTTPProvider struct {
	baseURL string
	client  *xhttp.Client
}

// NewHTTPProvider builds the provider with timeout and base URL.
func NewHTTPProvider(baseURL string, timeout time.Duration) *HTTPProvider {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &HTTPProvider{
		baseURL: baseURL,
		client:  xhttp.NewClient(xhttp.WithTimeout(timeout)),
	}
}

func (p *HTTPProvider) postJSON(ctx context.Context, path string, payload interface{}, dest interface{}) error {
	if p.client == nil || p.baseURL == "" {
		return fmt.Errorf("insight http client not initialized")
	}
	err := p.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodPost,
		URL:    p.baseURL + path,
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
		Body: payload,
	}, dest)
	if err != nil {
		return fmt.Errorf("post %s: %w", path, err)
	}
	return nil
}

type sentimentReq struct {
	Texts []string `json:"texts"`
}

type sentimentResp struct {
	Score float64 `json:"score"`
}

func (p *HTTPProvider) JudgeSentiment(ctx context.Context, texts []string) (domsvc.SentimentJudgment, error) {
	var sr sentimentResp
	if err := p.postJSON(ctx, "/sentiment/judge", sentimentReq{Texts: texts}, &sr); err != nil {
		return domsvc.SentimentJudgment{}, err
	}
	return domsvc.SentimentJudgment{Score: sr.Score}, nil
}

type trustReq struct {
	Name              string   `json:"name"`
	Bio               string   `json:"bio"`
	ExperienceYears   float64  `json:"experience_years"`
	CompletedBookings int      `json:"completed_bookings"`
	CancellationRate  float64  `json:"cancellation_rate"`
	Certifications    []string `json:"certifications"`
}

type trustResp struct {
	Score       float64  `json:"score"`
	Strengths   []string `json:"strengths"`
	RiskFactors []string `json:"risk_factors"`
}

func (p *HTTPProvider) JudgeTrustworthiness(ctx context.Context, sitter *models.SitterRecord) (domsvc.TrustJudgment, error) {
	req := trustReq{
		Name:              sitter.Name,
		Bio:               sitter.Bio,
		ExperienceYears:   sitter.ExperienceYears,
		CompletedBookings: len(sitter.CompletedBookings),
		CancellationRate:  sitter.CancellationRate,
		Certifications:    sitter.Certifications,
	}
	var tr trustResp
	if err := p.postJSON(ctx, "/trust/judge", req, &tr); err != nil {
		return domsvc.TrustJudgment{}, err
	}
	return domsvc.TrustJudgment{Score: tr.Score, Strengths: tr.Strengths, RiskFactors: tr.RiskFactors}, nil
}

type slotsReq struct {
	PetID    string `json:"pet_id"`
	SitterID string `json:"sitter_id"`
	Days     int    `json:"days"`
}

type slotsResp struct {
	Slots []struct {
		Date       string  `json:"date"`
		StartHour  int     `json:"start_hour"`
		EndHour    int     `json:"end_hour"`
		Confidence float64 `json:"confidence"`
		Reasoning  string  `json:"reasoning"`
	} `json:"slots"`
}

func (p *HTTPProvider) SuggestTimeSlots(ctx context.Context, sc domsvc.SlotContext) ([]domsvc.SuggestedSlot, error) {
	var sr slotsResp
	if err := p.postJSON(ctx, "/slots/suggest", slotsReq{PetID: sc.PetID, SitterID: sc.SitterID, Days: sc.Days}, &sr); err != nil {
		return nil, err
	}
	out := make([]domsvc.SuggestedSlot, 0, len(sr.Slots))
	for _, s := range sr.Slots {
		date, err := time.Parse("2006-01-02", s.Date)
		if err != nil {
			continue
		}
		out = append(out, domsvc.SuggestedSlot{
			Date:       date,
			StartHour:  s.StartHour,
			EndHour:    s.EndHour,
			Confidence: s.Confidence,
			Reasoning:  s.Reasoning,
		})
	}
	return out, nil
}

var _ domsvc.InsightProvider = (*HTTPProvider)(nil)
