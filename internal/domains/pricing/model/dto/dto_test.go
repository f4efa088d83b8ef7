package dto_test

import (
	"rental/internal/domains/pricing/model"
	"rental/internal/domains/pricing/model/dto"
	"rental/shared/constant"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestUpsertWeekdayRequest_ToModel(t *testing.T) {
	day := 0
	req := dto.UpsertWeekdayRequest{DayOfWeek: &day, Price: "350.50"}

	pricing := req.ToModel("admin-1", "unit-1")

	assert.NotEmpty(t, pricing.ID)
	assert.Equal(t, "unit-1", pricing.UnitID)
	assert.Equal(t, 0, pricing.DayOfWeek)
	assert.True(t, decimal.RequireFromString("350.5").Equal(pricing.Price))
	assert.Equal(t, "admin-1", pricing.CreatedBy)
}

func TestCreateHolidayRequest_ToModel(t *testing.T) {
	req := dto.CreateHolidayRequest{Name: "National day", Date: "2024-09-23", Price: "900"}

	holiday, err := req.ToModel("admin-1", "unit-1")

	assert.NoError(t, err)
	assert.Equal(t, time.Date(2024, 9, 23, 0, 0, 0, 0, time.UTC), holiday.Date)
	assert.Equal(t, "National day", holiday.Name)

	_, err = (&dto.CreateHolidayRequest{Date: "23-09-2024", Price: "1"}).ToModel("admin-1", "unit-1")
	assert.Error(t, err)
}

func TestUpdateHolidayRequest_ToFields(t *testing.T) {
	assert.True(t, dto.UpdateHolidayRequest{}.IsEmpty())

	fields := dto.UpdateHolidayRequest{Price: "120"}.ToFields("admin-1")

	assert.Equal(t, "admin-1", fields[constant.FieldModifiedBy])
	assert.NotContains(t, fields, model.FieldName)
	assert.True(t, decimal.NewFromInt(120).Equal(fields[model.FieldPrice].(decimal.Decimal)))
}

func TestUnitPricingResponse_FromModels(t *testing.T) {
	var res dto.UnitPricingResponse
	res.FromModels("unit-1",
		[]model.WeekdayPricing{{ID: "w-1", DayOfWeek: 4, Price: decimal.NewFromInt(300)}},
		nil,
		[]model.Holiday{{ID: "h-1", Date: time.Date(2024, 9, 23, 0, 0, 0, 0, time.UTC), Price: decimal.NewFromInt(900)}},
	)

	assert.Equal(t, "unit-1", res.UnitID)
	assert.Len(t, res.Weekdays, 1)
	assert.NotNil(t, res.Specials)
	assert.Empty(t, res.Specials)
	assert.Equal(t, "2024-09-23", res.Holidays[0].Date)
}
