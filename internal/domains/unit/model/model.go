package model

import (
	"rental/shared/constant"
	"rental/shared/model"
)

const (
	TableName  = "units"
	EntityName = "unit"

	FieldID          = "id"
	FieldName        = "name"
	FieldDescription = "description"
	FieldImage       = "image"
	FieldIsAvailable = "is_available"
	FieldOwnerID     = "owner_id"
)

// SortableFields are the columns a client may order listings by.
var SortableFields = []string{
	TableName + "." + FieldName,
	TableName + "." + constant.FieldCreatedAt,
}

type Unit struct {
	ID          string  `db:"id"`
	Name        string  `db:"name"`
	Description string  `db:"description"`
	Image       string  `db:"image"`
	IsAvailable bool    `db:"is_available"`
	OwnerID     *string `db:"owner_id"`
	model.Metadata
}

// Owner returns the owner id or an empty string for unassigned units.
func (u Unit) Owner() string {
	if u.OwnerID == nil {
		return ""
	}

	return *u.OwnerID
}
