package api

import (
	"github.com/labstack/echo/v4"

	models "PawMatch/internal/domain/models"
	xhttp "PawMatch/pkg/http"
	applogger "PawMatch/pkg/logger"
)

// Availability serves GET /api/sitters/:id/availability. from/to accept
// RFC3339 or date-only values; the range is half-open.
func (h *Handler) Availability(c echo.Context) error {
	req := &models.AvailabilityRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	from, ok := xhttp.ParseTime(req.From)
	if !ok {
		return errorResponse(c, models.ValidationErrorf("invalid from time %q", req.From))
	}
	to, ok := xhttp.ParseTime(req.To)
	if !ok {
		return errorResponse(c, models.ValidationErrorf("invalid to time %q", req.To))
	}
	if !from.Before(to) {
		return errorResponse(c, models.ValidationErrorf("from must be before to"))
	}

	windows, err := h.availability.FreeWindows(c.Request().Context(), req.SitterID, from, to)
	if err != nil {
		h.logger.Error("availability error", applogger.String("sitter_id", req.SitterID), applogger.Error(err))
		return errorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, windows)
}
