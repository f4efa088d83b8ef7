package dto

import (
	"rental/internal/domains/booking/model"
	"rental/shared"
	"rental/shared/constant"
	gDto "rental/shared/dto"
	gModel "rental/shared/model"
	"rental/shared/timezone"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	EventColor       = "#dc3545"
	EventTitleOwner  = "Owner booking"
	EventTitleBooked = "Booked"
)

type CreateBookingRequest struct {
	StartDate      string `json:"start_date"       validate:"required,date"`
	EndDate        string `json:"end_date"         validate:"required,date"`
	CustomerName   string `json:"customer_name"    validate:"omitempty,max=100"`
	CustomerPhone  string `json:"customer_phone"   validate:"omitempty,max=20"`
	Notes          string `json:"notes"            validate:"omitempty,max=500"`
	PricePerDay    string `json:"price_per_day"    validate:"omitempty,decimal"`
	CashAmount     string `json:"cash_amount"      validate:"omitempty,decimal"`
	TransferAmount string `json:"transfer_amount"  validate:"omitempty,decimal"`
	IsOwnerBooking bool   `json:"is_owner_booking"`
}

// Dates parses the requested range. Both values must already have passed validation.
func (c *CreateBookingRequest) Dates() (start, end time.Time, err error) {
	return parseRange(c.StartDate, c.EndDate)
}

func (c *CreateBookingRequest) ToModel(user, unitID string, start, end time.Time) model.Booking {
	return model.Booking{
		ID:             uuid.NewString(),
		UnitID:         unitID,
		StartDate:      start,
		EndDate:        end,
		CustomerName:   c.CustomerName,
		CustomerPhone:  c.CustomerPhone,
		Notes:          c.Notes,
		PricePerDay:    nullDecimal(c.PricePerDay),
		CashAmount:     amount(c.CashAmount),
		TransferAmount: amount(c.TransferAmount),
		IsOwnerBooking: c.IsOwnerBooking,
		UserID:         &user,
		Metadata:       gModel.NewMetadata(user),
	}
}

type UpdateBookingRequest struct {
	StartDate      string `json:"start_date"       validate:"omitempty,date"`
	EndDate        string `json:"end_date"         validate:"omitempty,date"`
	CustomerName   string `json:"customer_name"    validate:"omitempty,max=100"`
	CustomerPhone  string `json:"customer_phone"   validate:"omitempty,max=20"`
	Notes          string `json:"notes"            validate:"omitempty,max=500"`
	PricePerDay    string `json:"price_per_day"    validate:"omitempty,decimal"`
	CashAmount     string `json:"cash_amount"      validate:"omitempty,decimal"`
	TransferAmount string `json:"transfer_amount"  validate:"omitempty,decimal"`
	IsOwnerBooking *bool  `json:"is_owner_booking"`
}

func (u *UpdateBookingRequest) IsEmpty() bool {
	return u.StartDate == constant.Empty && u.EndDate == constant.Empty &&
		u.CustomerName == constant.Empty && u.CustomerPhone == constant.Empty &&
		u.Notes == constant.Empty && u.PricePerDay == constant.Empty &&
		u.CashAmount == constant.Empty && u.TransferAmount == constant.Empty &&
		u.IsOwnerBooking == nil
}

// Range merges the requested dates over the current booking so a partial update keeps the other bound.
func (u *UpdateBookingRequest) Range(current model.Booking) (start, end time.Time, err error) {
	startDate, endDate := u.StartDate, u.EndDate

	if startDate == constant.Empty {
		startDate = current.StartDate.Format(constant.DateOnlyFormat)
	}

	if endDate == constant.Empty {
		endDate = current.EndDate.Format(constant.DateOnlyFormat)
	}

	return parseRange(startDate, endDate)
}

// ToFields lists the columns to write. Dates are taken from the merged range.
func (u *UpdateBookingRequest) ToFields(user string, start, end time.Time) map[string]any {
	fields := map[string]any{
		model.FieldStartDate:     start,
		model.FieldEndDate:       end,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	set := func(field, value string) {
		if value != constant.Empty {
			fields[field] = value
		}
	}

	set(model.FieldCustomerName, u.CustomerName)
	set(model.FieldCustomerPhone, u.CustomerPhone)
	set(model.FieldNotes, u.Notes)

	if u.PricePerDay != constant.Empty {
		fields[model.FieldPricePerDay] = decimal.RequireFromString(u.PricePerDay)
	}

	if u.CashAmount != constant.Empty {
		fields[model.FieldCashAmount] = decimal.RequireFromString(u.CashAmount)
	}

	if u.TransferAmount != constant.Empty {
		fields[model.FieldTransferAmount] = decimal.RequireFromString(u.TransferAmount)
	}

	if u.IsOwnerBooking != nil {
		fields[model.FieldIsOwnerBooking] = *u.IsOwnerBooking
	}

	return fields
}

type BookingResponse struct {
	ID             string           `json:"id"`
	UnitID         string           `json:"unit_id"`
	UnitName       string           `json:"unit_name"`
	StartDate      string           `json:"start_date"`
	EndDate        string           `json:"end_date"`
	CustomerName   string           `json:"customer_name"`
	CustomerPhone  string           `json:"customer_phone"`
	Notes          string           `json:"notes"`
	PricePerDay    *decimal.Decimal `json:"price_per_day"`
	CashAmount     decimal.Decimal  `json:"cash_amount"`
	TransferAmount decimal.Decimal  `json:"transfer_amount"`
	TotalAmount    decimal.Decimal  `json:"total_amount"`
	IsOwnerBooking bool             `json:"is_owner_booking"`
	gDto.Metadata
}

func (b *BookingResponse) FromModel(m model.Booking) {
	b.ID = m.ID
	b.UnitID = m.UnitID
	b.UnitName = m.UnitName
	b.StartDate = m.StartDate.Format(constant.DateOnlyFormat)
	b.EndDate = m.EndDate.Format(constant.DateOnlyFormat)
	b.CustomerName = m.CustomerName
	b.CustomerPhone = m.CustomerPhone
	b.Notes = m.Notes
	b.CashAmount = m.CashAmount
	b.TransferAmount = m.TransferAmount
	b.TotalAmount = m.TotalAmount()
	b.IsOwnerBooking = m.IsOwnerBooking

	if m.PricePerDay.Valid {
		price := m.PricePerDay.Decimal
		b.PricePerDay = &price
	}

	b.Metadata.FromModel(m.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (g *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	g.TotalPage = shared.CalculateTotalPage(totalData, limit)
	g.TotalData = totalData
	g.Bookings = make([]BookingResponse, 0, len(models))

	for _, m := range models {
		var res BookingResponse

		res.FromModel(m)
		g.Bookings = append(g.Bookings, res)
	}
}

type CalendarEvent struct {
	Date           string           `json:"date"`
	Title          string           `json:"title"`
	Color          string           `json:"color"`
	Price          *decimal.Decimal `json:"price"`
	Notes          string           `json:"notes"`
	IsOwnerBooking bool             `json:"is_owner_booking"`
}

type EventsResponse struct {
	UnitName string          `json:"unit_name"`
	Events   []CalendarEvent `json:"events"`
}

// FromModels expands every booking into one event per occupied day.
func (e *EventsResponse) FromModels(unitName string, models []model.Booking) {
	e.UnitName = unitName
	e.Events = make([]CalendarEvent, 0, len(models))

	for _, m := range models {
		title := EventTitleBooked
		if m.IsOwnerBooking {
			title = EventTitleOwner
		}

		var price *decimal.Decimal
		if m.PricePerDay.Valid {
			value := m.PricePerDay.Decimal
			price = &value
		}

		for day := m.StartDate; !day.After(m.EndDate); day = day.AddDate(0, 0, 1) {
			e.Events = append(e.Events, CalendarEvent{
				Date:           day.Format(constant.DateOnlyFormat),
				Title:          title,
				Color:          EventColor,
				Price:          price,
				Notes:          m.Notes,
				IsOwnerBooking: m.IsOwnerBooking,
			})
		}
	}
}

// BookingEvent is the payload published on the booking topic.
type BookingEvent struct {
	Event      string          `json:"event"`
	BookingID  string          `json:"booking_id"`
	UnitID     string          `json:"unit_id"`
	StartDate  string          `json:"start_date"`
	EndDate    string          `json:"end_date"`
	Amount     decimal.Decimal `json:"amount"`
	Actor      string          `json:"actor"`
	OccurredAt time.Time       `json:"occurred_at"`
}

func NewBookingEvent(event, actor string, m model.Booking) BookingEvent {
	return BookingEvent{
		Event:      event,
		BookingID:  m.ID,
		UnitID:     m.UnitID,
		StartDate:  m.StartDate.Format(constant.DateOnlyFormat),
		EndDate:    m.EndDate.Format(constant.DateOnlyFormat),
		Amount:     m.TotalAmount(),
		Actor:      actor,
		OccurredAt: timezone.Now(),
	}
}

func parseRange(startDate, endDate string) (start, end time.Time, err error) {
	start, err = time.Parse(constant.DateOnlyFormat, startDate)
	if err != nil {
		return start, end, err
	}

	end, err = time.Parse(constant.DateOnlyFormat, endDate)

	return start, end, err
}

func nullDecimal(value string) decimal.NullDecimal {
	if value == constant.Empty {
		return decimal.NullDecimal{}
	}

	return decimal.NewNullDecimal(decimal.RequireFromString(value))
}

func amount(value string) decimal.Decimal {
	if value == constant.Empty {
		return decimal.Zero
	}

	return decimal.RequireFromString(value)
}
