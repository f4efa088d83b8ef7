// Package export renders payment reports as spreadsheets.
package export

import (
	"fmt"
	"rental/internal/domains/report/model/dto"

	"github.com/xuri/excelize/v2"
)

const SheetPayments = "Payments"

var paymentHeaders = []any{"Unit", "Date", "Customer", "Phone", "Cash", "Transfer", "Total"}

// PaymentsXLSX writes one row per booking followed by a totals row.
func PaymentsXLSX(res dto.PaymentsResponse) (_ []byte, err error) {
	file := excelize.NewFile()
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close workbook: %w", cerr)
		}
	}()

	if err = file.SetSheetName("Sheet1", SheetPayments); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	bold, err := file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create style: %w", err)
	}

	if err = file.SetSheetRow(SheetPayments, "A1", &paymentHeaders); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	for i, row := range res.Bookings {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("failed to locate row: %w", err)
		}

		values := []any{
			row.UnitName,
			row.StartDate,
			row.CustomerName,
			row.CustomerPhone,
			row.Cash.InexactFloat64(),
			row.Transfer.InexactFloat64(),
			row.Total.InexactFloat64(),
		}

		if err = file.SetSheetRow(SheetPayments, cell, &values); err != nil {
			return nil, fmt.Errorf("failed to write row: %w", err)
		}
	}

	totalRow := len(res.Bookings) + 2

	cell, err := excelize.CoordinatesToCellName(1, totalRow)
	if err != nil {
		return nil, fmt.Errorf("failed to locate totals: %w", err)
	}

	totals := []any{
		"Total", "", "", "",
		res.TotalCash.InexactFloat64(),
		res.TotalTransfer.InexactFloat64(),
		res.TotalAll.InexactFloat64(),
	}

	if err = file.SetSheetRow(SheetPayments, cell, &totals); err != nil {
		return nil, fmt.Errorf("failed to write totals: %w", err)
	}

	last, _ := excelize.CoordinatesToCellName(len(paymentHeaders), totalRow)
	if err = file.SetCellStyle(SheetPayments, "A1", "G1", bold); err != nil {
		return nil, fmt.Errorf("failed to style header: %w", err)
	}

	if err = file.SetCellStyle(SheetPayments, cell, last, bold); err != nil {
		return nil, fmt.Errorf("failed to style totals: %w", err)
	}

	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	return buf.Bytes(), nil
}
