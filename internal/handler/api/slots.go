package api

import (
	"github.com/labstack/echo/v4"

	models "PawMatch/internal/domain/models"
	xhttp "PawMatch/pkg/http"
	applogger "PawMatch/pkg/logger"
)

// SuggestSlots serves POST /api/slots/suggest.
func (h *Handler) SuggestSlots(c echo.Context) error {
	req := &models.SlotSuggestRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	prefs := models.OwnerPreferences{
		PreferredTime: req.PreferredTime,
		DurationHours: req.DurationHours,
	}
	res, err := h.slots.Suggest(c.Request().Context(), req.PetID, req.SitterID, prefs, req.Days)
	if err != nil {
		h.logger.Error("slot suggest error",
			applogger.String("pet_id", req.PetID),
			applogger.String("sitter_id", req.SitterID),
			applogger.Error(err))
		return errorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}
