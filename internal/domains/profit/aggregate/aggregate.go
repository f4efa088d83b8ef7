// Package aggregate computes per unit profit from bookings, expenses and owner percentages.
// Everything here is pure so the report endpoints recompute it on every request.
package aggregate

import (
	bookingModel "rental/internal/domains/booking/model"
	expenseModel "rental/internal/domains/expense/model"
	unitModel "rental/internal/domains/unit/model"

	"github.com/shopspring/decimal"
)

var (
	DefaultPercentage = decimal.NewFromInt(50)

	hundred = decimal.NewFromInt(100)
)

type UnitProfit struct {
	UnitID       string          `json:"unit_id"`
	UnitName     string          `json:"unit_name"`
	OwnerID      string          `json:"owner_id"`
	BookingCount int             `json:"booking_count"`
	BookingTotal decimal.Decimal `json:"total_booking_amount"`
	ExpenseTotal decimal.Decimal `json:"total_expenses"`
	NetTotal     decimal.Decimal `json:"net_total"`
	Percentage   decimal.Decimal `json:"percentage"`
	Profit       decimal.Decimal `json:"profit"`
}

type Report struct {
	Units        []UnitProfit    `json:"units"`
	BookingTotal decimal.Decimal `json:"total_booking_amount"`
	ExpenseTotal decimal.Decimal `json:"total_expenses"`
	NetTotal     decimal.Decimal `json:"net_total"`
	Profit       decimal.Decimal `json:"profit"`
}

// Profit is net * percentage / 100.
func Profit(net, percentage decimal.Decimal) decimal.Decimal {
	return net.Mul(percentage).Div(hundred)
}

// PercentageOf returns the recorded percentage of an owner or the default.
func PercentageOf(percentages map[string]decimal.Decimal, ownerID string) decimal.Decimal {
	if percentage, ok := percentages[ownerID]; ok {
		return percentage
	}

	return DefaultPercentage
}

// Build groups bookings and expenses by unit, keeping the order of units.
// Rows referencing a unit outside the list are ignored.
func Build(
	units []unitModel.Unit,
	bookings []bookingModel.Booking,
	expenses []expenseModel.Expense,
	percentages map[string]decimal.Decimal,
) Report {
	report := Report{
		Units:        make([]UnitProfit, 0, len(units)),
		BookingTotal: decimal.Zero,
		ExpenseTotal: decimal.Zero,
		NetTotal:     decimal.Zero,
		Profit:       decimal.Zero,
	}

	index := make(map[string]int, len(units))

	for _, unit := range units {
		index[unit.ID] = len(report.Units)
		report.Units = append(report.Units, UnitProfit{
			UnitID:       unit.ID,
			UnitName:     unit.Name,
			OwnerID:      unit.Owner(),
			BookingTotal: decimal.Zero,
			ExpenseTotal: decimal.Zero,
		})
	}

	for _, booking := range bookings {
		if i, ok := index[booking.UnitID]; ok {
			report.Units[i].BookingCount++
			report.Units[i].BookingTotal = report.Units[i].BookingTotal.Add(booking.Revenue())
		}
	}

	for _, expense := range expenses {
		if i, ok := index[expense.UnitID]; ok {
			report.Units[i].ExpenseTotal = report.Units[i].ExpenseTotal.Add(expense.Amount)
		}
	}

	for i := range report.Units {
		row := &report.Units[i]

		row.NetTotal = row.BookingTotal.Sub(row.ExpenseTotal)
		row.Percentage = PercentageOf(percentages, row.OwnerID)
		row.Profit = Profit(row.NetTotal, row.Percentage)

		report.BookingTotal = report.BookingTotal.Add(row.BookingTotal)
		report.ExpenseTotal = report.ExpenseTotal.Add(row.ExpenseTotal)
		report.NetTotal = report.NetTotal.Add(row.NetTotal)
		report.Profit = report.Profit.Add(row.Profit)
	}

	return report
}
