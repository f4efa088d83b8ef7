package model

import (
	"rental/shared/constant"
	"rental/shared/model"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "expenses"
	EntityName = "expense"

	FieldID          = "id"
	FieldUnitID      = "unit_id"
	FieldOwnerID     = "owner_id"
	FieldCategory    = "category"
	FieldAmount      = "amount"
	FieldDescription = "description"
	FieldInvoice     = "invoice"
)

// SortableFields are the columns a client may order listings by.
var SortableFields = []string{
	TableName + "." + FieldAmount,
	TableName + "." + FieldCategory,
	TableName + "." + constant.FieldCreatedAt,
}

const (
	CategoryMaintenance = "maintenance"
	CategoryCleaning    = "cleaning"
	CategoryUtilities   = "utilities"
	CategoryFurnishing  = "furnishing"
	CategorySupplies    = "supplies"
	CategoryMarketing   = "marketing"
	CategoryOther       = "other"
)

type Expense struct {
	ID          string          `db:"id"`
	UnitID      string          `db:"unit_id"`
	OwnerID     *string         `db:"owner_id"`
	Category    string          `db:"category"`
	Amount      decimal.Decimal `db:"amount"`
	Description string          `db:"description"`
	Invoice     string          `db:"invoice"`
	UnitName    string          `db:"unit_name" table:"units" column:"name"`
	model.Metadata
}

func (Expense) GetJoinQuery() string {
	return "LEFT JOIN units ON units.id = expenses.unit_id"
}

func (e Expense) Owner() string {
	if e.OwnerID == nil {
		return ""
	}

	return *e.OwnerID
}
