package api

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	models "PawMatch/internal/domain/models"
	xhttp "PawMatch/pkg/http"
	applogger "PawMatch/pkg/logger"
)

// TrustScore serves GET /api/sitters/:id/trust-score. Responses are cached
// per sitter for the configured TTL; misses recompute.
func (h *Handler) TrustScore(c echo.Context) error {
	req := &models.TrustScoreRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	if !h.rl.Allow(c.RealIP()+":trust", 5, 2) {
		h.logger.Warn("trust_score rate_limited", applogger.String("remote", c.RealIP()))
		return xhttp.DataResponse(c, http.StatusTooManyRequests, "rate limited")
	}

	ctx := c.Request().Context()
	cacheKey := "trust:" + req.SitterID
	if b, ok, err := h.cache.GetBytes(ctx, cacheKey); err != nil {
		h.logger.Warn("trust_score cache_get_error", applogger.Error(err))
	} else if ok {
		return xhttp.SuccessResponse(c, json.RawMessage(b))
	}

	res, err := h.scorer.Score(ctx, req.SitterID)
	if err != nil {
		h.logger.Error("trust_score error", applogger.String("sitter_id", req.SitterID), applogger.Error(err))
		return errorResponse(c, err)
	}

	if b, err := json.Marshal(res); err == nil {
		if err := h.cache.SetBytes(ctx, cacheKey, b, h.trustTTL); err != nil {
			h.logger.Warn("trust_score cache_set_error", applogger.Error(err))
		}
	}
	return xhttp.SuccessResponse(c, res)
}
