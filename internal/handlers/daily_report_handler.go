package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/liftwerk/zeiterfassung-api/internal/services"
)

type DailyReportHandler struct {
	reportService *services.DailyReportService
}

func NewDailyReportHandler(reportService *services.DailyReportService) *DailyReportHandler {
	return &DailyReportHandler{reportService: reportService}
}

// @Summary List Daily Reports
// @Description Reports visible to the caller, newest first
// @Tags DailyReports
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/auftraege/daily-reports [get]
func (h *DailyReportHandler) Index(c *gin.Context) {
	reports, err := h.reportService.List(c.Request.Context(), actorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "reports": reports})
}

// @Summary Create Daily Report
// @Tags DailyReports
// @Accept json
// @Produce json
// @Param request body services.CreateDailyReportRequest true "Report"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /api/auftraege/daily-report [post]
func (h *DailyReportHandler) Create(c *gin.Context) {
	var req services.CreateDailyReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	report, err := h.reportService.Create(c.Request.Context(), actorFrom(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "report": report})
}

// @Summary Update Daily Report
// @Description Partial update; unknown fields are ignored
// @Tags DailyReports
// @Accept json
// @Produce json
// @Param id path int true "Report ID"
// @Success 200 {object} map[string]interface{}
// @Router /api/auftraege/daily-report/{id} [put]
func (h *DailyReportHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var partial map[string]interface{}
	if err := c.ShouldBindJSON(&partial); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	report, err := h.reportService.Update(c.Request.Context(), actorFrom(c), id, partial)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "report": report})
}

// @Summary Delete Daily Report
// @Description Deleting an unknown id is not an error
// @Tags DailyReports
// @Produce json
// @Param id path int true "Report ID"
// @Success 200 {object} map[string]interface{}
// @Router /api/auftraege/daily-report/{id} [delete]
func (h *DailyReportHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	deleted, err := h.reportService.Delete(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "deleted": deleted})
}

// @Summary Approve Daily Report
// @Tags DailyReports
// @Produce json
// @Param id path int true "Report ID"
// @Success 200 {object} map[string]interface{}
// @Failure 422 {object} map[string]string
// @Router /api/auftraege/daily-report/{id}/approve [post]
func (h *DailyReportHandler) Approve(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	report, err := h.reportService.Approve(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "report": report})
}

// @Summary Reject Daily Report
// @Tags DailyReports
// @Produce json
// @Param id path int true "Report ID"
// @Success 200 {object} map[string]interface{}
// @Failure 422 {object} map[string]string
// @Router /api/auftraege/daily-report/{id}/reject [post]
func (h *DailyReportHandler) Reject(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	report, err := h.reportService.Reject(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "report": report})
}
