package api

import (
	"log/slog"
	"net/http"

	resdto "meeting-room-booking/internal/handler/dto/response"
	"meeting-room-booking/internal/handler/httperr"
	"meeting-room-booking/internal/handler/middleware"
	"meeting-room-booking/internal/pkg/errs"
	"meeting-room-booking/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

var errMissingAuthContext = errs.New("auth context missing from request")

// respondError maps usecase sentinels onto HTTP statuses. Anything unrecognised is a 500.
func respondError(c *gin.Context, err error) {
	var conflict *commands.ConflictError
	switch {
	case errs.As(err, &conflict):
		httperr.AbortWithError(c, http.StatusConflict, err, "Reservation conflicts with existing reservations",
			gin.H{"conflicts": resdto.FromReservationViews(conflict.Conflicts)})
	case errs.Is(err, errs.ErrReservationConflict):
		httperr.AbortWithError(c, http.StatusConflict, err, "Reservation conflicts with existing reservations", nil)
	case errs.Is(err, errs.ErrInvalidWindow):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid time window", nil)
	case errs.Is(err, errs.ErrInvalidCursor):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid cursor", nil)
	case errs.Is(err, errs.ErrDomainValidation):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Validation failed", nil)
	case errs.Is(err, errs.ErrForbidden):
		httperr.AbortWithError(c, http.StatusForbidden, err, "Insufficient permissions", nil)
	case errs.Is(err, errs.ErrRoomNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Room not found", nil)
	case errs.Is(err, errs.ErrReservationNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Reservation not found", nil)
	case errs.Is(err, errs.ErrRoomInactive):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Room is inactive", nil)
	case errs.Is(err, errs.ErrReservationCanceled):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Reservation is canceled", nil)
	case errs.Is(err, errs.ErrDuplicateReservation):
		httperr.AbortWithError(c, http.StatusConflict, err, "Duplicate reservation request with different parameters", nil)
	case errs.Is(err, errs.ErrIdempotencyInProgress):
		httperr.AbortWithError(c, http.StatusConflict, err, "Reservation request is currently being processed", nil)
	default:
		slog.ErrorContext(c.Request.Context(), "unhandled usecase error",
			"path", c.FullPath(),
			"request_id", middleware.GetRequestID(c),
			"error", err.Error(),
			"details", errs.Details(err),
			"stack", errs.ExtractStackLines(err, 12))
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}
