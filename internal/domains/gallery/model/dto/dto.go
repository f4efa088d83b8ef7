package dto

import (
	"mime/multipart"
	"rental/internal/domains/gallery/model"
	"rental/shared"
	gDto "rental/shared/dto"
	gModel "rental/shared/model"

	"github.com/google/uuid"
)

type UploadImageRequest struct {
	Caption   string                `json:"caption"    validate:"omitempty,max=255"`
	SortOrder int                   `json:"sort_order" validate:"gte=0"`
	Image     *multipart.FileHeader `json:"image"      validate:"required,mimetypes=image/png image/jpg image/jpeg image/webp,maxfilesize=5"`
	ImageFile multipart.File        `json:"-"`
}

func (u *UploadImageRequest) ToModel(user, unitID, imageURL string) model.GalleryImage {
	return model.GalleryImage{
		ID:        uuid.NewString(),
		UnitID:    unitID,
		Image:     imageURL,
		Caption:   u.Caption,
		SortOrder: u.SortOrder,
		Metadata:  gModel.NewMetadata(user),
	}
}

type UpdateImageRequest struct {
	Caption   string `db:"caption"    json:"caption"    validate:"omitempty,max=255"`
	SortOrder *int   `db:"sort_order" json:"sort_order" validate:"omitempty,gte=0"`
}

func (u UpdateImageRequest) IsEmpty() bool {
	return u.Caption == "" && u.SortOrder == nil
}

type GalleryImageResponse struct {
	ID        string `json:"id"`
	UnitID    string `json:"unit_id"`
	Image     string `json:"image"`
	Caption   string `json:"caption"`
	SortOrder int    `json:"sort_order"`
	gDto.Metadata
}

func (r *GalleryImageResponse) FromModel(model model.GalleryImage) {
	r.ID = model.ID
	r.UnitID = model.UnitID
	r.Image = model.Image
	r.Caption = model.Caption
	r.SortOrder = model.SortOrder
	r.Metadata.FromModel(model.Metadata)
}

type GetGalleryImagesResponse struct {
	Images    []GalleryImageResponse `json:"images"`
	TotalPage int                    `json:"total_page"`
	TotalData int                    `json:"total_data"`
}

func (r *GetGalleryImagesResponse) FromModels(models []model.GalleryImage, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Images = make([]GalleryImageResponse, len(models))
	for i, mod := range models {
		r.Images[i].FromModel(mod)
	}
}
