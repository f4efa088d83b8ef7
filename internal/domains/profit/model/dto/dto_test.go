package dto_test

import (
	"rental/internal/domains/profit/model"
	"rental/internal/domains/profit/model/dto"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestUpsertPercentageRequest_InRange(t *testing.T) {
	tests := []struct {
		percentage string
		want       bool
	}{
		{"0", true},
		{"30", true},
		{"100", true},
		{"100.01", false},
		{"250", false},
	}

	for _, tt := range tests {
		t.Run(tt.percentage, func(t *testing.T) {
			req := dto.UpsertPercentageRequest{OwnerID: "owner-1", Percentage: tt.percentage}

			assert.Equal(t, tt.want, req.InRange())
		})
	}
}

func TestUpsertPercentageRequest_ToModel(t *testing.T) {
	req := dto.UpsertPercentageRequest{OwnerID: "owner-1", Percentage: "37.5"}

	m := req.ToModel("admin-1")

	assert.NotEmpty(t, m.ID)
	assert.Equal(t, "owner-1", m.OwnerID)
	assert.True(t, decimal.RequireFromString("37.5").Equal(m.Percentage))
	assert.Equal(t, "admin-1", m.CreatedBy)
}

func TestGetPercentagesResponse_FromModels(t *testing.T) {
	name := "Sara Owner"

	var res dto.GetPercentagesResponse

	res.FromModels([]model.ProfitPercentage{
		{ID: "p-1", OwnerID: "owner-1", OwnerName: &name, Percentage: decimal.NewFromInt(30)},
		{ID: "p-2", OwnerID: "owner-2", OwnerEmail: "b@example.com", Percentage: decimal.NewFromInt(50)},
	}, 2, 10)

	assert.Len(t, res.Percentages, 2)
	assert.Equal(t, "Sara Owner", res.Percentages[0].OwnerName)
	assert.Empty(t, res.Percentages[1].OwnerName)
	assert.Equal(t, 1, res.TotalPage)
}
