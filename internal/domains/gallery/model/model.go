package model

import "rental/shared/model"

const (
	TableName  = "gallery_images"
	EntityName = "gallery"

	FieldID        = "id"
	FieldUnitID    = "unit_id"
	FieldImage     = "image"
	FieldCaption   = "caption"
	FieldSortOrder = "sort_order"
)

// GalleryImage is a single photo attached to a unit.
type GalleryImage struct {
	ID        string `db:"id"`
	UnitID    string `db:"unit_id"`
	Image     string `db:"image"`
	Caption   string `db:"caption"`
	SortOrder int    `db:"sort_order"`
	model.Metadata
}
