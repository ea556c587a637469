package api

import (
	"github.com/labstack/echo/v4"

	models "PawMatch/internal/domain/models"
	xhttp "PawMatch/pkg/http"
)

func candidatesFromRequest(in []models.RecommendCandidate) []models.CandidateSitter {
	out := make([]models.CandidateSitter, 0, len(in))
	for _, c := range in {
		out = append(out, models.CandidateSitter{SitterID: c.SitterID, Compatibility: c.Compatibility})
	}
	return out
}

// Recommend serves POST /api/recommendations: ranked sitters without slot
// timing.
func (h *Handler) Recommend(c echo.Context) error {
	req := &models.RecommendRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res := h.orchestrator.Recommend(c.Request().Context(), candidatesFromRequest(req.Candidates), req.Limit)
	return xhttp.SuccessResponse(c, res)
}

// RecommendWithTiming serves POST /api/recommendations/timing: ranked sitters
// with slot suggestions attached to the top results.
func (h *Handler) RecommendWithTiming(c echo.Context) error {
	req := &models.RecommendRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	prefs := models.OwnerPreferences{
		PreferredTime: req.PreferredTime,
		DurationHours: req.DurationHours,
	}
	res := h.orchestrator.RecommendWithTiming(c.Request().Context(), req.PetID, prefs, candidatesFromRequest(req.Candidates), req.Limit, 7)
	return xhttp.SuccessResponse(c, res)
}
