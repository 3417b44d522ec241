package services

import (
	"bytes"
	"context"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/liftwerk/zeiterfassung-api/internal/models"
	"github.com/liftwerk/zeiterfassung-api/internal/repository"
)

// ReportService renders printable monthly timesheets
type ReportService struct {
	entryRepo repository.TimeEntryRepository
	userRepo  repository.UserRepository
	audit     *AuditService
}

// NewReportService creates a new report service
func NewReportService(entryRepo repository.TimeEntryRepository, userRepo repository.UserRepository, audit *AuditService) *ReportService {
	return &ReportService{entryRepo: entryRepo, userRepo: userRepo, audit: audit}
}

// TimesheetPDF renders one user's calendar month as a PDF timesheet
func (s *ReportService) TimesheetPDF(ctx context.Context, actor Actor, userID uint, year, month int) ([]byte, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, ErrNotFound
	}
	entries, err := s.entryRepo.ListForMonth(ctx, userID, year, month)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Stundennachweis", false)
	pdf.AddPage()
	// Core fonts are cp1252, umlauts need the translator
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Stundennachweis")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 8, tr(fmt.Sprintf("%s - %04d-%02d", user.FullName, year, month)))
	pdf.Ln(10)

	headers := []string{"Datum", "Kommen", "Gehen", "Stunden", "Überstunden", "Status"}
	widths := []float64{30, 25, 25, 25, 30, 30}

	pdf.SetFont("Helvetica", "B", 10)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, tr(h), "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	var totalHours, overtimeHours float64
	for _, entry := range entries {
		clockOut := "-"
		if entry.ClockOut != nil {
			clockOut = entry.ClockOut.Format("15:04")
		}
		cols := []string{
			entry.WorkDate,
			entry.ClockIn.Format("15:04"),
			clockOut,
			fmt.Sprintf("%.2f", entry.TotalHours),
			fmt.Sprintf("%.2f", entry.OvertimeHours),
			entry.Status,
		}
		for i, c := range cols {
			pdf.CellFormat(widths[i], 7, c, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
		totalHours += entry.TotalHours
		overtimeHours += entry.OvertimeHours
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.Cell(0, 8, tr(fmt.Sprintf("Summe: %.2f Stunden, davon %.2f Überstunden", totalHours, overtimeHours)))

	buf := new(bytes.Buffer)
	if err := pdf.Output(buf); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, &actor.ID, models.AuditActionExport, "time_entry", 0,
		fmt.Sprintf("timesheet pdf %04d-%02d user=%d", year, month, userID), actor.IP, actor.UserAgent)
	return buf.Bytes(), nil
}
