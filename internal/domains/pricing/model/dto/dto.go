package dto

import (
	"rental/internal/domains/pricing/model"
	"rental/shared/constant"
	gDto "rental/shared/dto"
	gModel "rental/shared/model"
	"rental/shared/timezone"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type UpsertWeekdayRequest struct {
	DayOfWeek *int   `json:"day_of_week" validate:"required,min=0,max=6"`
	Price     string `json:"price"       validate:"required,decimal"`
}

func (u *UpsertWeekdayRequest) ToModel(user, unitID string) model.WeekdayPricing {
	return model.WeekdayPricing{
		ID:        uuid.NewString(),
		UnitID:    unitID,
		DayOfWeek: *u.DayOfWeek,
		Price:     decimal.RequireFromString(u.Price),
		Metadata:  gModel.NewMetadata(user),
	}
}

type UpsertSpecialRequest struct {
	PricingType string `json:"pricing_type" validate:"required,oneof=eid_al_fitr eid_al_adha holiday"`
	NightNumber int    `json:"night_number" validate:"required,min=1,max=6"`
	Price       string `json:"price"        validate:"required,decimal"`
}

func (u *UpsertSpecialRequest) ToModel(user, unitID string) model.SpecialPricing {
	return model.SpecialPricing{
		ID:          uuid.NewString(),
		UnitID:      unitID,
		PricingType: u.PricingType,
		NightNumber: u.NightNumber,
		Price:       decimal.RequireFromString(u.Price),
		Metadata:    gModel.NewMetadata(user),
	}
}

type CreateHolidayRequest struct {
	Name  string `json:"name"  validate:"required,max=100"`
	Date  string `json:"date"  validate:"required,date"`
	Price string `json:"price" validate:"required,decimal"`
}

func (c *CreateHolidayRequest) ToModel(user, unitID string) (model.Holiday, error) {
	date, err := time.Parse(constant.DateOnlyFormat, c.Date)
	if err != nil {
		return model.Holiday{}, err
	}

	return model.Holiday{
		ID:       uuid.NewString(),
		UnitID:   unitID,
		Name:     c.Name,
		Date:     date,
		Price:    decimal.RequireFromString(c.Price),
		Metadata: gModel.NewMetadata(user),
	}, nil
}

type UpdateHolidayRequest struct {
	Name  string `json:"name"  validate:"omitempty,max=100"`
	Date  string `json:"date"  validate:"omitempty,date"`
	Price string `json:"price" validate:"omitempty,decimal"`
}

func (u UpdateHolidayRequest) IsEmpty() bool {
	return u.Name == "" && u.Date == "" && u.Price == ""
}

// ToFields returns the changed columns; the validator has already vetted the formats.
func (u UpdateHolidayRequest) ToFields(user string) map[string]any {
	fields := map[string]any{
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if u.Name != "" {
		fields[model.FieldName] = u.Name
	}

	if u.Date != "" {
		fields[model.FieldHolidayDate] = u.Date
	}

	if u.Price != "" {
		fields[model.FieldPrice] = decimal.RequireFromString(u.Price)
	}

	return fields
}

type ResolvePriceRequest struct {
	Date        string `json:"date"         validate:"required,date"`
	PricingType string `json:"pricing_type" validate:"omitempty,oneof=eid_al_fitr eid_al_adha holiday"`
	Night       int    `json:"night"        validate:"omitempty,min=1,max=6"`
}

type ResolvedPriceResponse struct {
	Date   string           `json:"date"`
	Price  *decimal.Decimal `json:"price"`
	Source string           `json:"source"`
}

type WeekdayPricingResponse struct {
	ID        string          `json:"id"`
	DayOfWeek int             `json:"day_of_week"`
	Price     decimal.Decimal `json:"price"`
	gDto.Metadata
}

type SpecialPricingResponse struct {
	ID          string          `json:"id"`
	PricingType string          `json:"pricing_type"`
	NightNumber int             `json:"night_number"`
	Price       decimal.Decimal `json:"price"`
	gDto.Metadata
}

type HolidayResponse struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Date  string          `json:"date"`
	Price decimal.Decimal `json:"price"`
	gDto.Metadata
}

type UnitPricingResponse struct {
	UnitID   string                   `json:"unit_id"`
	Weekdays []WeekdayPricingResponse `json:"weekdays"`
	Specials []SpecialPricingResponse `json:"specials"`
	Holidays []HolidayResponse        `json:"holidays"`
}

func (r *UnitPricingResponse) FromModels(unitID string, weekdays []model.WeekdayPricing, specials []model.SpecialPricing, holidays []model.Holiday) {
	r.UnitID = unitID

	r.Weekdays = make([]WeekdayPricingResponse, len(weekdays))
	for i, mod := range weekdays {
		r.Weekdays[i] = WeekdayPricingResponse{ID: mod.ID, DayOfWeek: mod.DayOfWeek, Price: mod.Price}
		r.Weekdays[i].Metadata.FromModel(mod.Metadata)
	}

	r.Specials = make([]SpecialPricingResponse, len(specials))
	for i, mod := range specials {
		r.Specials[i] = SpecialPricingResponse{ID: mod.ID, PricingType: mod.PricingType, NightNumber: mod.NightNumber, Price: mod.Price}
		r.Specials[i].Metadata.FromModel(mod.Metadata)
	}

	r.Holidays = make([]HolidayResponse, len(holidays))
	for i, mod := range holidays {
		r.Holidays[i] = HolidayResponse{ID: mod.ID, Name: mod.Name, Date: mod.Date.Format(constant.DateOnlyFormat), Price: mod.Price}
		r.Holidays[i].Metadata.FromModel(mod.Metadata)
	}
}
