package dto

import (
	bookingModel "rental/internal/domains/booking/model"
	"rental/internal/domains/report/period"
	"rental/shared/constant"

	"github.com/shopspring/decimal"
)

type PaymentsRequest struct {
	UnitID     string `json:"unit_id"`
	ReportType string `json:"report_type" validate:"omitempty,oneof=all daily weekly monthly"`
	Date       string `json:"date"`
}

type PaymentRow struct {
	ID            string          `json:"id"`
	UnitID        string          `json:"unit_id"`
	UnitName      string          `json:"unit_name"`
	StartDate     string          `json:"start_date"`
	EndDate       string          `json:"end_date"`
	CustomerName  string          `json:"customer_name"`
	CustomerPhone string          `json:"customer_phone"`
	Cash          decimal.Decimal `json:"cash_amount"`
	Transfer      decimal.Decimal `json:"transfer_amount"`
	Total         decimal.Decimal `json:"total_amount"`
}

func (p *PaymentRow) FromModel(m bookingModel.Booking) {
	p.ID = m.ID
	p.UnitID = m.UnitID
	p.UnitName = m.UnitName
	p.StartDate = m.StartDate.Format(constant.DateOnlyFormat)
	p.EndDate = m.EndDate.Format(constant.DateOnlyFormat)
	p.CustomerName = m.CustomerName
	p.CustomerPhone = m.CustomerPhone
	p.Cash = m.CashAmount
	p.Transfer = m.TransferAmount
	p.Total = m.TotalAmount()
}

type PaymentsResponse struct {
	ReportType       string          `json:"report_type"`
	From             *string         `json:"from,omitempty"`
	To               *string         `json:"to,omitempty"`
	Bookings         []PaymentRow    `json:"bookings"`
	CashBookings     []PaymentRow    `json:"cash_bookings"`
	TransferBookings []PaymentRow    `json:"transfer_bookings"`
	TotalCash        decimal.Decimal `json:"total_cash"`
	TotalTransfer    decimal.Decimal `json:"total_transfer"`
	TotalAll         decimal.Decimal `json:"total_all"`
}

// FromModels keeps the order of models. A booking paid both ways shows in both lists.
func (p *PaymentsResponse) FromModels(reportType string, window *period.Window, models []bookingModel.Booking) {
	p.ReportType = reportType
	if p.ReportType == constant.Empty {
		p.ReportType = period.All
	}

	if window != nil {
		from := window.From.Format(constant.DateOnlyFormat)
		to := window.To.Format(constant.DateOnlyFormat)

		p.From = &from
		p.To = &to
	}

	p.Bookings = make([]PaymentRow, 0, len(models))
	p.CashBookings = []PaymentRow{}
	p.TransferBookings = []PaymentRow{}
	p.TotalCash = decimal.Zero
	p.TotalTransfer = decimal.Zero

	for _, m := range models {
		var row PaymentRow

		row.FromModel(m)
		p.Bookings = append(p.Bookings, row)

		if row.Cash.IsPositive() {
			p.CashBookings = append(p.CashBookings, row)
			p.TotalCash = p.TotalCash.Add(row.Cash)
		}

		if row.Transfer.IsPositive() {
			p.TransferBookings = append(p.TransferBookings, row)
			p.TotalTransfer = p.TotalTransfer.Add(row.Transfer)
		}
	}

	p.TotalAll = p.TotalCash.Add(p.TotalTransfer)
}
