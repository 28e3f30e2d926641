package exporter

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/stafflane/backoffice-go/internal/domain/report"
)

const detailedSheet = "Attendance"

// DetailedReportXLSX renders a detailed attendance report as a spreadsheet.
// The caller owns the returned file and must Close it.
func DetailedReportXLSX(rep report.DetailedReport) (*excelize.File, error) {
	f := excelize.NewFile()
	index, err := f.NewSheet(detailedSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}

	headers := []interface{}{"Date", "Day Type", "Check In", "Check Out", "Worked Hours", "Late Hours", "Overtime Hours", "Auto Closed"}
	if err := f.SetSheetRow(detailedSheet, "A1", &headers); err != nil {
		return nil, fmt.Errorf("failed to write header row: %w", err)
	}

	for i, row := range rep.Rows {
		checkIn := ""
		if row.CheckInTime != nil {
			checkIn = *row.CheckInTime
		}
		checkOut := ""
		if row.CheckOutTime != nil {
			checkOut = *row.CheckOutTime
		}
		autoClosed := ""
		if row.AutoClosed {
			autoClosed = "yes"
		}
		cells := []interface{}{
			row.Date,
			row.DayType,
			checkIn,
			checkOut,
			row.WorkedHours.InexactFloat64(),
			row.LateHours.InexactFloat64(),
			row.OvertimeHours.InexactFloat64(),
			autoClosed,
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(detailedSheet, cell, &cells); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	return f, nil
}
