package model

import (
	"rental/shared/model"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "profit_percentages"
	EntityName = "profit_percentage"

	FieldID         = "id"
	FieldOwnerID    = "owner_id"
	FieldPercentage = "percentage"
)

type ProfitPercentage struct {
	ID         string          `db:"id"`
	OwnerID    string          `db:"owner_id"`
	Percentage decimal.Decimal `db:"percentage"`
	OwnerName  *string         `db:"owner_name"  table:"users" column:"full_name"`
	OwnerEmail string          `db:"owner_email" table:"users" column:"email"`
	model.Metadata
}

func (ProfitPercentage) GetJoinQuery() string {
	return "LEFT JOIN users ON users.id = profit_percentages.owner_id"
}
