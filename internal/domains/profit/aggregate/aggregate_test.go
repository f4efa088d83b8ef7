package aggregate_test

import (
	bookingModel "rental/internal/domains/booking/model"
	expenseModel "rental/internal/domains/expense/model"
	"rental/internal/domains/profit/aggregate"
	unitModel "rental/internal/domains/unit/model"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(value int64) decimal.Decimal {
	return decimal.NewFromInt(value)
}

func day(value string) time.Time {
	parsed, _ := time.Parse(time.DateOnly, value)

	return parsed
}

func TestProfit(t *testing.T) {
	tests := []struct {
		name       string
		net        decimal.Decimal
		percentage decimal.Decimal
		want       decimal.Decimal
	}{
		{"recorded percentage", dec(1000), dec(30), dec(300)},
		{"default percentage", dec(400), aggregate.DefaultPercentage, dec(200)},
		{"negative net", dec(-100), dec(50), dec(-50)},
		{"fractional", dec(333), dec(10), decimal.RequireFromString("33.3")},
		{"zero percentage", dec(1000), dec(0), dec(0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := aggregate.Profit(tt.net, tt.percentage)

			assert.True(t, tt.want.Equal(got), "want %s got %s", tt.want, got)
		})
	}
}

func TestPercentageOf(t *testing.T) {
	percentages := map[string]decimal.Decimal{"owner-1": dec(30)}

	assert.True(t, dec(30).Equal(aggregate.PercentageOf(percentages, "owner-1")))
	assert.True(t, dec(50).Equal(aggregate.PercentageOf(percentages, "owner-2")))
	assert.True(t, dec(50).Equal(aggregate.PercentageOf(nil, "")))
}

func TestBuild(t *testing.T) {
	owner := "owner-1"
	units := []unitModel.Unit{
		{ID: "unit-1", Name: "Chalet A", OwnerID: &owner},
		{ID: "unit-2", Name: "Chalet B"},
	}

	bookings := []bookingModel.Booking{
		{UnitID: "unit-1", StartDate: day("2024-05-01"), EndDate: day("2024-05-01"), CashAmount: dec(300)},
		{UnitID: "unit-1", StartDate: day("2024-05-02"), EndDate: day("2024-05-02"), TransferAmount: dec(200)},
		{
			UnitID:      "unit-2",
			StartDate:   day("2024-05-03"),
			EndDate:     day("2024-05-03"),
			PricePerDay: decimal.NewNullDecimal(dec(150)),
		},
		{UnitID: "unit-9", StartDate: day("2024-05-03"), EndDate: day("2024-05-03"), CashAmount: dec(999)},
	}

	expenses := []expenseModel.Expense{
		{UnitID: "unit-1", Amount: dec(100)},
		{UnitID: "unit-2", Amount: dec(50)},
	}

	t.Run("default percentage", func(t *testing.T) {
		report := aggregate.Build(units, bookings, expenses, nil)

		assert.Len(t, report.Units, 2)

		first := report.Units[0]
		assert.Equal(t, "Chalet A", first.UnitName)
		assert.Equal(t, 2, first.BookingCount)
		assert.True(t, dec(500).Equal(first.BookingTotal))
		assert.True(t, dec(100).Equal(first.ExpenseTotal))
		assert.True(t, dec(400).Equal(first.NetTotal))
		assert.True(t, dec(50).Equal(first.Percentage))
		assert.True(t, dec(200).Equal(first.Profit))

		second := report.Units[1]
		assert.True(t, dec(150).Equal(second.BookingTotal))
		assert.True(t, dec(100).Equal(second.NetTotal))
		assert.True(t, dec(50).Equal(second.Profit))

		assert.True(t, dec(650).Equal(report.BookingTotal))
		assert.True(t, dec(150).Equal(report.ExpenseTotal))
		assert.True(t, dec(500).Equal(report.NetTotal))
		assert.True(t, dec(250).Equal(report.Profit))
	})

	t.Run("recorded percentage", func(t *testing.T) {
		report := aggregate.Build(units, bookings, expenses, map[string]decimal.Decimal{owner: dec(30)})

		assert.True(t, dec(30).Equal(report.Units[0].Percentage))
		assert.True(t, dec(120).Equal(report.Units[0].Profit))
	})

	t.Run("no units", func(t *testing.T) {
		report := aggregate.Build(nil, bookings, expenses, nil)

		assert.Empty(t, report.Units)
		assert.True(t, report.Profit.IsZero())
	})
}
