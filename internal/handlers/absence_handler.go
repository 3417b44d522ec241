package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/liftwerk/zeiterfassung-api/internal/services"
)

type AbsenceHandler struct {
	absenceService *services.AbsenceService
}

func NewAbsenceHandler(absenceService *services.AbsenceService) *AbsenceHandler {
	return &AbsenceHandler{absenceService: absenceService}
}

// Vacation requests

// @Summary List Vacation Requests
// @Tags Absences
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/antraege/vacation [get]
func (h *AbsenceHandler) VacationIndex(c *gin.Context) {
	vacations, err := h.absenceService.ListVacations(c.Request.Context(), actorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "vacations": vacations})
}

// @Summary Create Vacation Request
// @Tags Absences
// @Accept json
// @Produce json
// @Param request body services.CreateAbsenceRequest true "Date range"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /api/antraege/vacation [post]
func (h *AbsenceHandler) VacationCreate(c *gin.Context) {
	var req services.CreateAbsenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	vacation, err := h.absenceService.CreateVacation(c.Request.Context(), actorFrom(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "vacation": vacation})
}

// @Summary Update Vacation Request
// @Tags Absences
// @Accept json
// @Produce json
// @Param id path int true "Request ID"
// @Success 200 {object} map[string]interface{}
// @Router /api/antraege/vacation/{id} [put]
func (h *AbsenceHandler) VacationUpdate(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var partial map[string]interface{}
	if err := c.ShouldBindJSON(&partial); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	vacation, err := h.absenceService.UpdateVacation(c.Request.Context(), actorFrom(c), id, partial)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "vacation": vacation})
}

// @Summary Delete Vacation Request
// @Tags Absences
// @Produce json
// @Param id path int true "Request ID"
// @Success 200 {object} map[string]interface{}
// @Router /api/antraege/vacation/{id} [delete]
func (h *AbsenceHandler) VacationDelete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	deleted, err := h.absenceService.DeleteVacation(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "deleted": deleted})
}

// @Summary Approve Vacation Request
// @Tags Absences
// @Produce json
// @Param id path int true "Request ID"
// @Success 200 {object} map[string]interface{}
// @Failure 422 {object} map[string]string
// @Router /api/antraege/vacation/{id}/approve [post]
func (h *AbsenceHandler) VacationApprove(c *gin.Context) {
	h.reviewVacation(c, true)
}

// @Summary Reject Vacation Request
// @Tags Absences
// @Produce json
// @Param id path int true "Request ID"
// @Success 200 {object} map[string]interface{}
// @Failure 422 {object} map[string]string
// @Router /api/antraege/vacation/{id}/reject [post]
func (h *AbsenceHandler) VacationReject(c *gin.Context) {
	h.reviewVacation(c, false)
}

func (h *AbsenceHandler) reviewVacation(c *gin.Context, approve bool) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	vacation, err := h.absenceService.ReviewVacation(c.Request.Context(), actorFrom(c), id, approve)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "vacation": vacation})
}

// Sick leaves

// @Summary List Sick Leaves
// @Tags Absences
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/antraege/sick-leave [get]
func (h *AbsenceHandler) SickLeaveIndex(c *gin.Context) {
	leaves, err := h.absenceService.ListSickLeaves(c.Request.Context(), actorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "sick_leaves": leaves})
}

// @Summary Create Sick Leave
// @Tags Absences
// @Accept json
// @Produce json
// @Param request body services.CreateAbsenceRequest true "Date range"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /api/antraege/sick-leave [post]
func (h *AbsenceHandler) SickLeaveCreate(c *gin.Context) {
	var req services.CreateAbsenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	leave, err := h.absenceService.CreateSickLeave(c.Request.Context(), actorFrom(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "sick_leave": leave})
}

// @Summary Update Sick Leave
// @Tags Absences
// @Accept json
// @Produce json
// @Param id path int true "Sick Leave ID"
// @Success 200 {object} map[string]interface{}
// @Router /api/antraege/sick-leave/{id} [put]
func (h *AbsenceHandler) SickLeaveUpdate(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var partial map[string]interface{}
	if err := c.ShouldBindJSON(&partial); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	leave, err := h.absenceService.UpdateSickLeave(c.Request.Context(), actorFrom(c), id, partial)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "sick_leave": leave})
}

// @Summary Delete Sick Leave
// @Tags Absences
// @Produce json
// @Param id path int true "Sick Leave ID"
// @Success 200 {object} map[string]interface{}
// @Router /api/antraege/sick-leave/{id} [delete]
func (h *AbsenceHandler) SickLeaveDelete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	deleted, err := h.absenceService.DeleteSickLeave(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "deleted": deleted})
}

// @Summary Approve Sick Leave
// @Tags Absences
// @Produce json
// @Param id path int true "Sick Leave ID"
// @Success 200 {object} map[string]interface{}
// @Failure 422 {object} map[string]string
// @Router /api/antraege/sick-leave/{id}/approve [post]
func (h *AbsenceHandler) SickLeaveApprove(c *gin.Context) {
	h.reviewSickLeave(c, true)
}

// @Summary Reject Sick Leave
// @Tags Absences
// @Produce json
// @Param id path int true "Sick Leave ID"
// @Success 200 {object} map[string]interface{}
// @Failure 422 {object} map[string]string
// @Router /api/antraege/sick-leave/{id}/reject [post]
func (h *AbsenceHandler) SickLeaveReject(c *gin.Context) {
	h.reviewSickLeave(c, false)
}

func (h *AbsenceHandler) reviewSickLeave(c *gin.Context, approve bool) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	leave, err := h.absenceService.ReviewSickLeave(c.Request.Context(), actorFrom(c), id, approve)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "sick_leave": leave})
}
