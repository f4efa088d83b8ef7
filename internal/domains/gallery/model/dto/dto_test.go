package dto_test

import (
	"rental/internal/domains/gallery/model"
	"rental/internal/domains/gallery/model/dto"
	gModel "rental/shared/model"
	"rental/shared/timezone"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUploadImageRequest_ToModel(t *testing.T) {
	req := dto.UploadImageRequest{
		Caption:   "Pool view",
		SortOrder: 2,
	}

	image := req.ToModel("admin-1", "unit-1", "https://cdn.example.com/gallery/a.jpg")

	assert.NotEmpty(t, image.ID, "expected ID to be generated")
	assert.Equal(t, "unit-1", image.UnitID)
	assert.Equal(t, "https://cdn.example.com/gallery/a.jpg", image.Image)
	assert.Equal(t, "Pool view", image.Caption)
	assert.Equal(t, 2, image.SortOrder)
	assert.Equal(t, "admin-1", image.CreatedBy)
	assert.False(t, image.CreatedAt.IsZero(), "expected CreatedAt to be set")
}

func TestUpdateImageRequest_IsEmpty(t *testing.T) {
	order := 0

	assert.True(t, dto.UpdateImageRequest{}.IsEmpty())
	assert.False(t, dto.UpdateImageRequest{Caption: "x"}.IsEmpty())
	assert.False(t, dto.UpdateImageRequest{SortOrder: &order}.IsEmpty())
}

func TestGetGalleryImagesResponse_FromModels(t *testing.T) {
	now := timezone.Now()
	models := []model.GalleryImage{
		{ID: "img-1", UnitID: "unit-1", Image: "a.jpg", Metadata: gModel.Metadata{CreatedAt: now, ModifiedAt: now}},
		{ID: "img-2", UnitID: "unit-1", Image: "b.jpg", SortOrder: 1, Metadata: gModel.Metadata{CreatedAt: now, ModifiedAt: now}},
	}

	var res dto.GetGalleryImagesResponse
	res.FromModels(models, 12, 10)

	assert.Len(t, res.Images, 2)
	assert.Equal(t, 12, res.TotalData)
	assert.Equal(t, 2, res.TotalPage)
	assert.Equal(t, "img-2", res.Images[1].ID)
	assert.Equal(t, 1, res.Images[1].SortOrder)
}

func TestGetGalleryImagesResponse_FromModels_EmptyList(t *testing.T) {
	var res dto.GetGalleryImagesResponse
	res.FromModels([]model.GalleryImage{}, 0, 10)

	assert.NotNil(t, res.Images)
	assert.Empty(t, res.Images)
	assert.Equal(t, 1, res.TotalPage)
}
