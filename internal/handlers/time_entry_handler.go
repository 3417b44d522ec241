package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/liftwerk/zeiterfassung-api/internal/services"
)

type TimeEntryHandler struct {
	entryService *services.TimeEntryService
}

func NewTimeEntryHandler(entryService *services.TimeEntryService) *TimeEntryHandler {
	return &TimeEntryHandler{entryService: entryService}
}

// @Summary List Time Entries
// @Description Entries visible to the caller, newest first
// @Tags TimeTracking
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/zeiterfassung/entries [get]
func (h *TimeEntryHandler) Index(c *gin.Context) {
	entries, err := h.entryService.List(c.Request.Context(), actorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "entries": entries})
}

// @Summary Clock In
// @Description Opens a time entry; only one open entry per user
// @Tags TimeTracking
// @Accept json
// @Produce json
// @Param request body services.ClockInRequest false "Clock-in details"
// @Success 201 {object} map[string]interface{}
// @Failure 422 {object} map[string]string
// @Router /api/zeiterfassung/clock-in [post]
func (h *TimeEntryHandler) ClockIn(c *gin.Context) {
	var req services.ClockInRequest
	c.ShouldBindJSON(&req)

	entry, err := h.entryService.ClockIn(c.Request.Context(), actorFrom(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "entry": entry})
}

// @Summary Clock Out
// @Description Closes the caller's open entry and derives worked hours
// @Tags TimeTracking
// @Accept json
// @Produce json
// @Param request body services.ClockOutRequest false "Break window"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /api/zeiterfassung/clock-out [post]
func (h *TimeEntryHandler) ClockOut(c *gin.Context) {
	var req services.ClockOutRequest
	c.ShouldBindJSON(&req)

	entry, err := h.entryService.ClockOut(c.Request.Context(), actorFrom(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "entry": entry})
}

// @Summary Update Time Entry
// @Description Partial update; unknown fields are ignored
// @Tags TimeTracking
// @Accept json
// @Produce json
// @Param id path int true "Entry ID"
// @Success 200 {object} map[string]interface{}
// @Router /api/zeiterfassung/entry/{id} [put]
func (h *TimeEntryHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var partial map[string]interface{}
	if err := c.ShouldBindJSON(&partial); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	entry, err := h.entryService.Update(c.Request.Context(), actorFrom(c), id, partial)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "entry": entry})
}

// @Summary Delete Time Entry
// @Description Deleting an unknown id is not an error
// @Tags TimeTracking
// @Produce json
// @Param id path int true "Entry ID"
// @Success 200 {object} map[string]interface{}
// @Router /api/zeiterfassung/entry/{id} [delete]
func (h *TimeEntryHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	deleted, err := h.entryService.Delete(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "deleted": deleted})
}

// @Summary Approve Time Entry
// @Tags TimeTracking
// @Produce json
// @Param id path int true "Entry ID"
// @Success 200 {object} map[string]interface{}
// @Failure 422 {object} map[string]string
// @Router /api/zeiterfassung/entry/{id}/approve [post]
func (h *TimeEntryHandler) Approve(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	entry, err := h.entryService.Approve(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "entry": entry})
}

// @Summary Reject Time Entry
// @Tags TimeTracking
// @Produce json
// @Param id path int true "Entry ID"
// @Success 200 {object} map[string]interface{}
// @Failure 422 {object} map[string]string
// @Router /api/zeiterfassung/entry/{id}/reject [post]
func (h *TimeEntryHandler) Reject(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	entry, err := h.entryService.Reject(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "entry": entry})
}
