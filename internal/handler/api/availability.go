package api

import (
	"net/http"

	reqdto "meeting-room-booking/internal/handler/dto/request"
	resdto "meeting-room-booking/internal/handler/dto/response"
	"meeting-room-booking/internal/handler/httperr"
	"meeting-room-booking/internal/pkg/errs"
	"meeting-room-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AvailabilityHandler struct {
	q queries.AvailabilityQueries
}

func NewAvailabilityHandler(q queries.AvailabilityQueries) *AvailabilityHandler {
	return &AvailabilityHandler{q: q}
}

// @Summary Room availability
// @Description Partition of [start,end) into alternating free and busy segments
// @Tags availability
// @Produce json
// @Security BearerAuth
// @Param id path string true "Room ID"
// @Param start query string true "Window start (RFC3339)"
// @Param end query string true "Window end (RFC3339)"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /rooms/{id}/availability [get]
func (h *AvailabilityHandler) Availability(c *gin.Context) {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	var query reqdto.WindowQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}

	slots, err := h.q.CheckAvailability(c.Request.Context(), roomID, query.Start, query.End)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.NewAvailabilityResponse(roomID, query.Start, query.End, slots))
}

// @Summary Conflicting reservations
// @Tags availability
// @Produce json
// @Security BearerAuth
// @Param id path string true "Room ID"
// @Param start query string true "Window start (RFC3339)"
// @Param end query string true "Window end (RFC3339)"
// @Param excludeId query string false "Reservation to ignore"
// @Success 200 {object} resdto.ConflictsResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /rooms/{id}/conflicts [get]
func (h *AvailabilityHandler) Conflicts(c *gin.Context) {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	var query reqdto.ConflictsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}

	conflicts, err := h.q.FindConflicts(c.Request.Context(), roomID, query.Start, query.End, query.ExcludeUUID())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.NewConflictsResponse(conflicts))
}

// @Summary Next free slot
// @Description Earliest free window of the given length. A miss is reported as found=false.
// @Tags availability
// @Produce json
// @Security BearerAuth
// @Param id path string true "Room ID"
// @Param durationMinutes query int true "Slot length in minutes"
// @Param notBefore query string false "Earliest start (RFC3339), defaults to now"
// @Success 200 {object} resdto.NextSlotResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /rooms/{id}/next-slot [get]
func (h *AvailabilityHandler) NextSlot(c *gin.Context) {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	var query reqdto.NextSlotQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}

	window, err := h.q.SuggestSlot(c.Request.Context(), roomID, query.DurationMinutes, query.NotBefore)
	if err != nil {
		if errs.Is(err, errs.ErrNoSlotAvailable) {
			c.JSON(http.StatusOK, resdto.NewNextSlotResponse(nil))
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.NewNextSlotResponse(window))
}
