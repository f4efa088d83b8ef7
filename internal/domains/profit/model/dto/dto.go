package dto

import (
	"rental/internal/domains/profit/model"
	"rental/shared"
	gDto "rental/shared/dto"
	gModel "rental/shared/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var maxPercentage = decimal.NewFromInt(100)

type UpsertPercentageRequest struct {
	OwnerID    string `json:"owner_id"   validate:"required,uuid"`
	Percentage string `json:"percentage" validate:"required,decimal"`
}

// InRange reports whether the percentage lies in [0, 100]. The decimal tag already rejects negatives.
func (u *UpsertPercentageRequest) InRange() bool {
	return decimal.RequireFromString(u.Percentage).LessThanOrEqual(maxPercentage)
}

func (u *UpsertPercentageRequest) ToModel(user string) model.ProfitPercentage {
	return model.ProfitPercentage{
		ID:         uuid.NewString(),
		OwnerID:    u.OwnerID,
		Percentage: decimal.RequireFromString(u.Percentage),
		Metadata:   gModel.NewMetadata(user),
	}
}

type PercentageResponse struct {
	ID         string          `json:"id"`
	OwnerID    string          `json:"owner_id"`
	OwnerName  string          `json:"owner_name"`
	OwnerEmail string          `json:"owner_email"`
	Percentage decimal.Decimal `json:"percentage"`
	gDto.Metadata
}

func (p *PercentageResponse) FromModel(m model.ProfitPercentage) {
	p.ID = m.ID
	p.OwnerID = m.OwnerID
	p.OwnerEmail = m.OwnerEmail
	p.Percentage = m.Percentage

	if m.OwnerName != nil {
		p.OwnerName = *m.OwnerName
	}

	p.Metadata.FromModel(m.Metadata)
}

type GetPercentagesResponse struct {
	Percentages []PercentageResponse `json:"percentages"`
	TotalPage   int                  `json:"total_page"`
	TotalData   int                  `json:"total_data"`
}

func (g *GetPercentagesResponse) FromModels(models []model.ProfitPercentage, totalData, limit int) {
	g.TotalPage = shared.CalculateTotalPage(totalData, limit)
	g.TotalData = totalData
	g.Percentages = make([]PercentageResponse, 0, len(models))

	for _, m := range models {
		var res PercentageResponse

		res.FromModel(m)
		g.Percentages = append(g.Percentages, res)
	}
}
