package model

import (
	"rental/shared/model"
	"time"

	"github.com/shopspring/decimal"
)

const (
	WeekdayTableName  = "weekday_pricings"
	WeekdayEntityName = "weekday_pricing"
	SpecialTableName  = "special_pricings"
	SpecialEntityName = "special_pricing"
	HolidayTableName  = "holidays"
	HolidayEntityName = "holiday"

	FieldID          = "id"
	FieldUnitID      = "unit_id"
	FieldPrice       = "price"
	FieldDayOfWeek   = "day_of_week"
	FieldPricingType = "pricing_type"
	FieldNightNumber = "night_number"
	FieldName        = "name"
	FieldHolidayDate = "holiday_date"
)

const (
	PricingTypeEidAlFitr = "eid_al_fitr"
	PricingTypeEidAlAdha = "eid_al_adha"
	PricingTypeHoliday   = "holiday"
)

const (
	SourceHoliday = "holiday"
	SourceSpecial = "special"
	SourceWeekday = "weekday"
	SourceNone    = "none"
)

// WeekdayPricing is the base nightly price for one day of the week, 0=Monday..6=Sunday.
type WeekdayPricing struct {
	ID        string          `db:"id"`
	UnitID    string          `db:"unit_id"`
	DayOfWeek int             `db:"day_of_week"`
	Price     decimal.Decimal `db:"price"`
	model.Metadata
}

// SpecialPricing is the price of a given night inside a named holiday period.
type SpecialPricing struct {
	ID          string          `db:"id"`
	UnitID      string          `db:"unit_id"`
	PricingType string          `db:"pricing_type"`
	NightNumber int             `db:"night_number"`
	Price       decimal.Decimal `db:"price"`
	model.Metadata
}

// Holiday is a dated one-off price override.
type Holiday struct {
	ID     string          `db:"id"`
	UnitID string          `db:"unit_id"`
	Name   string          `db:"name"`
	Date   time.Time       `db:"holiday_date"`
	Price  decimal.Decimal `db:"price"`
	model.Metadata
}

// DayOfWeek maps a date onto the Monday based index used by weekday pricing.
func DayOfWeek(date time.Time) int {
	return (int(date.Weekday()) + 6) % 7
}
