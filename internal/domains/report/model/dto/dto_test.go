package dto_test

import (
	bookingModel "rental/internal/domains/booking/model"
	"rental/internal/domains/report/model/dto"
	"rental/internal/domains/report/period"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func day(s string) time.Time {
	t, _ := time.Parse(time.DateOnly, s)

	return t
}

func TestPaymentsResponse_FromModels(t *testing.T) {
	models := []bookingModel.Booking{
		{ID: "b3", UnitName: "Chalet A", StartDate: day("2024-05-20"), EndDate: day("2024-05-20"), CashAmount: decimal.NewFromInt(300), TransferAmount: decimal.NewFromInt(200)},
		{ID: "b2", UnitName: "Chalet A", StartDate: day("2024-05-18"), EndDate: day("2024-05-18"), TransferAmount: decimal.NewFromInt(450)},
		{ID: "b1", UnitName: "Chalet B", StartDate: day("2024-05-10"), EndDate: day("2024-05-10"), CashAmount: decimal.NewFromInt(100)},
		{ID: "b0", UnitName: "Chalet B", StartDate: day("2024-05-01"), EndDate: day("2024-05-01")},
	}

	window, _ := period.Of(period.Monthly, "2024-05-15")

	var res dto.PaymentsResponse

	res.FromModels(period.Monthly, &window, models)

	assert.Equal(t, period.Monthly, res.ReportType)
	assert.Equal(t, "2024-05-01", *res.From)
	assert.Equal(t, "2024-05-31", *res.To)
	assert.Len(t, res.Bookings, 4)
	assert.Equal(t, "b3", res.Bookings[0].ID)

	assert.Len(t, res.CashBookings, 2)
	assert.Equal(t, "b3", res.CashBookings[0].ID)
	assert.Equal(t, "b1", res.CashBookings[1].ID)

	assert.Len(t, res.TransferBookings, 2)
	assert.Equal(t, "b3", res.TransferBookings[0].ID)
	assert.Equal(t, "b2", res.TransferBookings[1].ID)

	assert.True(t, res.TotalCash.Equal(decimal.NewFromInt(400)))
	assert.True(t, res.TotalTransfer.Equal(decimal.NewFromInt(650)))
	assert.True(t, res.TotalAll.Equal(decimal.NewFromInt(1050)))
	assert.True(t, res.Bookings[0].Total.Equal(decimal.NewFromInt(500)))
}

func TestPaymentsResponse_FromModelsEmpty(t *testing.T) {
	var res dto.PaymentsResponse

	res.FromModels("", nil, nil)

	assert.Equal(t, period.All, res.ReportType)
	assert.Nil(t, res.From)
	assert.NotNil(t, res.Bookings)
	assert.NotNil(t, res.CashBookings)
	assert.True(t, res.TotalAll.IsZero())
}
