package dto_test

import (
	"rental/internal/domains/booking/model"
	"rental/internal/domains/booking/model/dto"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func day(value string) time.Time {
	parsed, _ := time.Parse(time.DateOnly, value)

	return parsed
}

func TestCreateBookingRequest_ToModel(t *testing.T) {
	req := dto.CreateBookingRequest{
		StartDate:    "2024-05-01",
		EndDate:      "2024-05-01",
		CustomerName: "Walk-in",
		CashAmount:   "300",
	}

	start, end, err := req.Dates()
	assert.NoError(t, err)

	booking := req.ToModel("user-1", "unit-1", start, end)

	assert.NotEmpty(t, booking.ID)
	assert.Equal(t, "unit-1", booking.UnitID)
	assert.Equal(t, day("2024-05-01"), booking.StartDate)
	assert.False(t, booking.PricePerDay.Valid)
	assert.True(t, decimal.NewFromInt(300).Equal(booking.CashAmount))
	assert.True(t, booking.TransferAmount.IsZero())
	assert.Equal(t, "user-1", booking.CreatedByUser())
	assert.Equal(t, "user-1", booking.CreatedBy)
}

func TestCreateBookingRequest_Dates(t *testing.T) {
	req := dto.CreateBookingRequest{StartDate: "2024-05-01", EndDate: "01/05/2024"}

	_, _, err := req.Dates()

	assert.Error(t, err)
}

func TestUpdateBookingRequest_Range(t *testing.T) {
	current := model.Booking{StartDate: day("2024-05-01"), EndDate: day("2024-05-01")}

	t.Run("keeps current bounds", func(t *testing.T) {
		req := dto.UpdateBookingRequest{Notes: "late check-in"}

		start, end, err := req.Range(current)

		assert.NoError(t, err)
		assert.Equal(t, current.StartDate, start)
		assert.Equal(t, current.EndDate, end)
	})

	t.Run("moves one bound", func(t *testing.T) {
		req := dto.UpdateBookingRequest{EndDate: "2024-05-02"}

		start, end, err := req.Range(current)

		assert.NoError(t, err)
		assert.Equal(t, day("2024-05-01"), start)
		assert.Equal(t, day("2024-05-02"), end)
	})
}

func TestUpdateBookingRequest_ToFields(t *testing.T) {
	owner := true
	req := dto.UpdateBookingRequest{Notes: "paid", TransferAmount: "120.5", IsOwnerBooking: &owner}

	assert.False(t, req.IsEmpty())
	assert.True(t, (&dto.UpdateBookingRequest{}).IsEmpty())

	fields := req.ToFields("admin-1", day("2024-05-01"), day("2024-05-01"))

	assert.Equal(t, "paid", fields[model.FieldNotes])
	assert.Equal(t, true, fields[model.FieldIsOwnerBooking])
	assert.True(t, decimal.RequireFromString("120.5").Equal(fields[model.FieldTransferAmount].(decimal.Decimal)))
	assert.NotContains(t, fields, model.FieldCashAmount)
	assert.NotContains(t, fields, model.FieldCustomerName)
	assert.Equal(t, "admin-1", fields["modified_by"])
}

func TestEventsResponse_FromModels(t *testing.T) {
	bookings := []model.Booking{
		{
			StartDate:      day("2024-05-01"),
			EndDate:        day("2024-05-01"),
			PricePerDay:    decimal.NewNullDecimal(decimal.NewFromInt(250)),
			Notes:          "family",
			IsOwnerBooking: true,
		},
		{StartDate: day("2024-05-03"), EndDate: day("2024-05-04")},
	}

	var res dto.EventsResponse

	res.FromModels("Chalet A", bookings)

	assert.Equal(t, "Chalet A", res.UnitName)
	assert.Len(t, res.Events, 3)

	assert.Equal(t, "2024-05-01", res.Events[0].Date)
	assert.Equal(t, dto.EventTitleOwner, res.Events[0].Title)
	assert.Equal(t, dto.EventColor, res.Events[0].Color)
	assert.True(t, decimal.NewFromInt(250).Equal(*res.Events[0].Price))
	assert.Equal(t, "family", res.Events[0].Notes)

	assert.Equal(t, "2024-05-03", res.Events[1].Date)
	assert.Equal(t, "2024-05-04", res.Events[2].Date)
	assert.Equal(t, dto.EventTitleBooked, res.Events[2].Title)
	assert.Nil(t, res.Events[2].Price)
}

func TestBookingResponse_FromModel(t *testing.T) {
	var res dto.BookingResponse

	res.FromModel(model.Booking{
		ID:             "b-1",
		UnitName:       "Chalet A",
		StartDate:      day("2024-05-01"),
		EndDate:        day("2024-05-01"),
		CashAmount:     decimal.NewFromInt(300),
		TransferAmount: decimal.NewFromInt(200),
	})

	assert.Equal(t, "2024-05-01", res.StartDate)
	assert.Equal(t, "Chalet A", res.UnitName)
	assert.Nil(t, res.PricePerDay)
	assert.True(t, decimal.NewFromInt(500).Equal(res.TotalAmount))
}
