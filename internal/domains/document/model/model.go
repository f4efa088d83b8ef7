package model

import (
	"rental/shared/constant"
	"rental/shared/model"
)

const (
	TableName  = "documents"
	EntityName = "document"

	FieldID      = "id"
	FieldOwnerID = "owner_id"
	FieldKind    = "kind"
	FieldTitle   = "title"
	FieldFile    = "file"
)

// SortableFields are the columns a client may order listings by.
var SortableFields = []string{
	TableName + "." + FieldTitle,
	TableName + "." + FieldKind,
	TableName + "." + constant.FieldCreatedAt,
}

const (
	KindReport   = "report"
	KindContract = "contract"
)

// Document is a PDF shared with a unit owner.
type Document struct {
	ID        string  `db:"id"`
	OwnerID   string  `db:"owner_id"`
	Kind      string  `db:"kind"`
	Title     string  `db:"title"`
	File      string  `db:"file"`
	OwnerName *string `db:"owner_name" table:"users" column:"full_name"`
	model.Metadata
}

func (Document) GetJoinQuery() string {
	return "LEFT JOIN users ON users.id = documents.owner_id"
}
