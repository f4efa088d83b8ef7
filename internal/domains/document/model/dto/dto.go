package dto

import (
	"mime/multipart"
	"rental/internal/domains/document/model"
	"rental/shared"
	gDto "rental/shared/dto"
	gModel "rental/shared/model"

	"github.com/google/uuid"
)

type UploadDocumentRequest struct {
	OwnerID  string                `json:"owner_id" validate:"required,uuid"`
	Kind     string                `json:"kind"     validate:"required,oneof=report contract"`
	Title    string                `json:"title"    validate:"required,max=255"`
	File     *multipart.FileHeader `json:"file"     validate:"required,mimetypes=application/pdf,maxfilesize=10"`
	FileData multipart.File        `json:"-"`
}

func (u *UploadDocumentRequest) ToModel(user, fileURL string) model.Document {
	return model.Document{
		ID:       uuid.NewString(),
		OwnerID:  u.OwnerID,
		Kind:     u.Kind,
		Title:    u.Title,
		File:     fileURL,
		Metadata: gModel.NewMetadata(user),
	}
}

type DocumentResponse struct {
	ID        string `json:"id"`
	OwnerID   string `json:"owner_id"`
	OwnerName string `json:"owner_name"`
	Kind      string `json:"kind"`
	Title     string `json:"title"`
	File      string `json:"file"`
	gDto.Metadata
}

func (d *DocumentResponse) FromModel(m model.Document) {
	d.ID = m.ID
	d.OwnerID = m.OwnerID
	d.Kind = m.Kind
	d.Title = m.Title
	d.File = m.File

	if m.OwnerName != nil {
		d.OwnerName = *m.OwnerName
	}

	d.Metadata.FromModel(m.Metadata)
}

type GetDocumentsResponse struct {
	Documents []DocumentResponse `json:"documents"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (g *GetDocumentsResponse) FromModels(models []model.Document, totalData, limit int) {
	g.TotalData = totalData
	g.TotalPage = shared.CalculateTotalPage(totalData, limit)

	g.Documents = make([]DocumentResponse, len(models))
	for i, m := range models {
		g.Documents[i].FromModel(m)
	}
}
