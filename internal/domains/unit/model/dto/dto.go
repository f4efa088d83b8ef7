package dto

import (
	"mime/multipart"
	"rental/internal/domains/unit/model"
	"rental/shared"
	gDto "rental/shared/dto"
	gModel "rental/shared/model"

	"github.com/google/uuid"
)

type CreateUnitRequest struct {
	Name        string                `json:"name"         validate:"required,max=100"`
	Description string                `json:"description"  validate:"omitempty,max=1000"`
	OwnerID     *string               `json:"owner_id"     validate:"omitempty,uuid"`
	IsAvailable *bool                 `json:"is_available" validate:"omitempty"`
	Image       *multipart.FileHeader `json:"image"        validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=2"`
	ImageFile   multipart.File        `json:"-"`
}

func (c *CreateUnitRequest) ToModel(user string, imageURL string) model.Unit {
	available := true
	if c.IsAvailable != nil {
		available = *c.IsAvailable
	}

	return model.Unit{
		ID:          uuid.NewString(),
		Name:        c.Name,
		Description: c.Description,
		Image:       imageURL,
		IsAvailable: available,
		OwnerID:     c.OwnerID,
		Metadata:    gModel.NewMetadata(user),
	}
}

type UpdateUnitRequest struct {
	Name        string                `db:"name"         json:"name"         validate:"omitempty,max=100"`
	Description string                `db:"description"  json:"description"  validate:"omitempty,max=1000"`
	OwnerID     *string               `db:"owner_id"     json:"owner_id"     validate:"omitempty,uuid"`
	IsAvailable *bool                 `db:"is_available" json:"is_available" validate:"omitempty"`
	Image       *multipart.FileHeader `json:"image"        validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=2"`
	ImageFile   multipart.File        `json:"-"`
}

func (u UpdateUnitRequest) IsEmpty() bool {
	return u.Name == "" && u.Description == "" && u.OwnerID == nil && u.IsAvailable == nil && u.Image == nil
}

type UnitResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	IsAvailable bool    `json:"is_available"`
	OwnerID     *string `json:"owner_id,omitempty"`
	gDto.Metadata
}

func (r *UnitResponse) FromModel(model model.Unit) {
	r.ID = model.ID
	r.Name = model.Name
	r.Description = model.Description
	r.Image = model.Image
	r.IsAvailable = model.IsAvailable
	r.OwnerID = model.OwnerID
	r.Metadata.FromModel(model.Metadata)
}

// Owner returns the owner id or an empty string for unassigned units.
func (r UnitResponse) Owner() string {
	if r.OwnerID == nil {
		return ""
	}

	return *r.OwnerID
}

type GetUnitsResponse struct {
	Units     []UnitResponse `json:"units"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetUnitsResponse) FromModels(models []model.Unit, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Units = make([]UnitResponse, len(models))
	for i, mod := range models {
		r.Units[i].FromModel(mod)
	}
}
