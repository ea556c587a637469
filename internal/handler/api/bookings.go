package api

import (
	"github.com/labstack/echo/v4"

	models "PawMatch/internal/domain/models"
	"PawMatch/internal/usecase"
	xhttp "PawMatch/pkg/http"
	applogger "PawMatch/pkg/logger"
)

// CreateBooking serves POST /api/bookings.
func (h *Handler) CreateBooking(c echo.Context) error {
	req := &models.CreateBookingRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	start, ok := xhttp.ParseTime(req.StartTime)
	if !ok {
		return errorResponse(c, models.ValidationErrorf("invalid start_time %q", req.StartTime))
	}
	end, ok := xhttp.ParseTime(req.EndTime)
	if !ok {
		return errorResponse(c, models.ValidationErrorf("invalid end_time %q", req.EndTime))
	}

	booking, err := h.lifecycle.Create(c.Request().Context(), usecase.CreateBookingParams{
		OwnerID:             req.OwnerID,
		SitterID:            req.SitterID,
		PetIDs:              req.PetIDs,
		Start:               start,
		End:                 end,
		HourlyRate:          req.HourlyRate,
		SpecialInstructions: req.SpecialInstructions,
		ApplyDiscount:       req.ApplyDiscount,
	})
	if err != nil {
		h.logger.Warn("create booking rejected",
			applogger.String("owner_id", req.OwnerID),
			applogger.String("sitter_id", req.SitterID),
			applogger.Error(err))
		return errorResponse(c, err)
	}

	h.hub.Broadcast(BookingEvent{
		Type:    "booking.created",
		Booking: booking,
	})
	return xhttp.CreatedResponse(c, booking)
}

// UpdateBookingStatus serves PATCH /api/bookings/:id/status.
func (h *Handler) UpdateBookingStatus(c echo.Context) error {
	req := &models.UpdateStatusRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	booking, err := h.lifecycle.UpdateStatus(
		c.Request().Context(),
		req.BookingID,
		req.ActorID,
		models.ActorRole(req.ActorRole),
		models.BookingStatus(req.Status),
	)
	if err != nil {
		h.logger.Warn("status update rejected",
			applogger.String("booking_id", req.BookingID),
			applogger.String("status", req.Status),
			applogger.Error(err))
		return errorResponse(c, err)
	}

	h.hub.Broadcast(BookingEvent{
		Type:    "booking.status_changed",
		Booking: booking,
	})
	return xhttp.SuccessResponse(c, booking)
}
