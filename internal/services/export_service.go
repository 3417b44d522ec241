package services

import (
	"bytes"
	"context"
	"fmt"

	"github.com/liftwerk/zeiterfassung-api/internal/models"
	"github.com/liftwerk/zeiterfassung-api/internal/repository"
	"github.com/xuri/excelize/v2"
)

// ExportService produces the monthly payroll workbook
type ExportService struct {
	entryRepo repository.TimeEntryRepository
	audit     *AuditService
}

// NewExportService creates a new export service
func NewExportService(entryRepo repository.TimeEntryRepository, audit *AuditService) *ExportService {
	return &ExportService{entryRepo: entryRepo, audit: audit}
}

// PayrollXLSX renders one calendar month of time entries as an XLSX
// workbook. userID 0 exports all users.
func (s *ExportService) PayrollXLSX(ctx context.Context, actor Actor, userID uint, year, month int) ([]byte, error) {
	entries, err := s.entryRepo.ListForMonth(ctx, userID, year, month)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Stundennachweis"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Datum", "Mitarbeiter", "Kommen", "Gehen", "Stunden", "Regulär", "Überstunden", "Tätigkeit", "Status"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	var totalHours, overtimeHours float64
	for row, entry := range entries {
		clockOut := ""
		if entry.ClockOut != nil {
			clockOut = entry.ClockOut.Format("15:04")
		}
		values := []interface{}{
			entry.WorkDate,
			entry.User.FullName,
			entry.ClockIn.Format("15:04"),
			clockOut,
			entry.TotalHours,
			entry.RegularHours,
			entry.OvertimeHours,
			entry.WorkType,
			entry.Status,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
		totalHours += entry.TotalHours
		overtimeHours += entry.OvertimeHours
	}

	sumRow := len(entries) + 3
	f.SetCellValue(sheet, fmt.Sprintf("A%d", sumRow), "Summe")
	f.SetCellValue(sheet, fmt.Sprintf("E%d", sumRow), totalHours)
	f.SetCellValue(sheet, fmt.Sprintf("G%d", sumRow), overtimeHours)

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, &actor.ID, models.AuditActionExport, "time_entry", 0,
		fmt.Sprintf("payroll xlsx %04d-%02d user=%d", year, month, userID), actor.IP, actor.UserAgent)
	return buf.Bytes(), nil
}
