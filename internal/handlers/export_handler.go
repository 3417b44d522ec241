package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/liftwerk/zeiterfassung-api/internal/services"
)

type ExportHandler struct {
	exportService *services.ExportService
	reportService *services.ReportService
}

func NewExportHandler(exportService *services.ExportService, reportService *services.ReportService) *ExportHandler {
	return &ExportHandler{exportService: exportService, reportService: reportService}
}

// monthParams reads user_id, year and month from the query string.
// Year and month default to the current calendar month.
func monthParams(c *gin.Context) (userID uint, year, month int, ok bool) {
	now := time.Now()
	year, _ = strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(now.Year())))
	month, _ = strconv.Atoi(c.DefaultQuery("month", strconv.Itoa(int(now.Month()))))
	if month < 1 || month > 12 || year < 2000 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid month or year"})
		return 0, 0, 0, false
	}
	id, _ := strconv.ParseUint(c.Query("user_id"), 10, 32)
	return uint(id), year, month, true
}

// @Summary Payroll Export
// @Description Monthly time entries as an XLSX workbook. user_id 0 or absent exports all users.
// @Tags Payroll
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param user_id query int false "User ID"
// @Param year query int false "Year (YYYY)"
// @Param month query int false "Month (1-12)"
// @Success 200 {file} file "workbook"
// @Router /api/lohn/export [get]
func (h *ExportHandler) PayrollXLSX(c *gin.Context) {
	userID, year, month, ok := monthParams(c)
	if !ok {
		return
	}

	data, err := h.exportService.PayrollXLSX(c.Request.Context(), actorFrom(c), userID, year, month)
	if err != nil {
		respondError(c, err)
		return
	}

	filename := fmt.Sprintf("stundennachweis_%04d-%02d.xlsx", year, month)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// @Summary Timesheet PDF
// @Description One user's calendar month as a printable PDF timesheet
// @Tags Payroll
// @Produce application/pdf
// @Param user_id query int true "User ID"
// @Param year query int false "Year (YYYY)"
// @Param month query int false "Month (1-12)"
// @Success 200 {file} file "timesheet"
// @Failure 404 {object} map[string]string
// @Router /api/reports/timesheet_pdf [get]
func (h *ExportHandler) TimesheetPDF(c *gin.Context) {
	userID, year, month, ok := monthParams(c)
	if !ok {
		return
	}
	if userID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
		return
	}

	data, err := h.reportService.TimesheetPDF(c.Request.Context(), actorFrom(c), userID, year, month)
	if err != nil {
		respondError(c, err)
		return
	}

	filename := fmt.Sprintf("stundennachweis_%d_%04d-%02d.pdf", userID, year, month)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", data)
}
