package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	models "PawMatch/internal/domain/models"
	xhttp "PawMatch/pkg/http"
)

// fromDomainError maps the booking error taxonomy onto HTTP statuses so the
// caller gets a distinct, actionable error per cause.
func fromDomainError(err error) *xhttp.AppError {
	switch {
	case errors.Is(err, models.ErrValidation):
		return xhttp.BadRequestError(err.Error())
	case errors.Is(err, models.ErrInvalidTransition), errors.Is(err, models.ErrConflict):
		return xhttp.ConflictError(err.Error())
	case errors.Is(err, models.ErrUnauthorized):
		return xhttp.ForbiddenError(err.Error())
	case errors.Is(err, models.ErrNotFound):
		return xhttp.NotFoundError(err.Error())
	case errors.Is(err, models.ErrDataUnavailable):
		return xhttp.NewAppError("ERR_DATA_UNAVAILABLE", err.Error(), http.StatusServiceUnavailable)
	default:
		return xhttp.InternalError(err.Error())
	}
}

// errorResponse writes a domain error as the standard error envelope.
func errorResponse(c echo.Context, err error) error {
	return xhttp.AppErrorResponse(c, fromDomainError(err))
}
