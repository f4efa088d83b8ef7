package service_test

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"rental/config"
	"rental/infras/otel/mocks"
	s3Mocks "rental/infras/s3/mocks"
	galleryMocks "rental/internal/domains/gallery/mocks"
	"rental/internal/domains/gallery/model"
	"rental/internal/domains/gallery/model/dto"
	"rental/internal/domains/gallery/service"
	unitMocks "rental/internal/domains/unit/mocks"
	unitModel "rental/internal/domains/unit/model"
	cacheMocks "rental/shared/cache/mocks"
	"rental/shared/constant"
	gDto "rental/shared/dto"
	"rental/shared/failure"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	svc   service.Gallery
	repo  *galleryMocks.MockGallery
	units *unitMocks.MockUnit
	cache *cacheMocks.MockRedisCache
	s3    *s3Mocks.MockS3
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := fixture{
		repo:  galleryMocks.NewMockGallery(ctrl),
		units: unitMocks.NewMockUnit(ctrl),
		cache: cacheMocks.NewMockRedisCache(ctrl),
		s3:    s3Mocks.NewMockS3(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.External.S3.BucketName = "rental"

	f.svc = service.New(f.repo, f.units, cfg, f.cache, mocks.NewOtel(), f.s3)

	return f
}

func asActor(id, role string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, id)

	return context.WithValue(ctx, constant.ContextKeyUserRole, role)
}

func TestGalleryService_Upload(t *testing.T) {
	image := &multipart.FileHeader{Filename: "pool.jpg"}

	t.Run("staff uploads image", func(t *testing.T) {
		f := newFixture(t)

		f.units.EXPECT().Get(gomock.Any(), gomock.Any()).Return(unitModel.Unit{ID: "unit-1"}, nil)
		f.s3.EXPECT().
			UploadFile(gomock.Any(), "rental", model.EntityName, gomock.Any(), image, gomock.Any()).
			Return("https://cdn.example.com/gallery/pool.jpg", nil)
		f.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, img model.GalleryImage) error {
				assert.Equal(t, "unit-1", img.UnitID)
				assert.Equal(t, "Pool", img.Caption)
				assert.Equal(t, "admin-1", img.CreatedBy)

				return nil
			})
		f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		res, err := f.svc.Upload(asActor("admin-1", constant.RoleAdmin), "unit-1", dto.UploadImageRequest{Caption: "Pool", Image: image})

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/gallery/pool.jpg", res.Image)
	})

	t.Run("owner cannot upload", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Upload(asActor("owner-1", constant.RoleUser), "unit-1", dto.UploadImageRequest{Image: image})

		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	})

	t.Run("unknown unit", func(t *testing.T) {
		f := newFixture(t)

		f.units.EXPECT().Get(gomock.Any(), gomock.Any()).Return(unitModel.Unit{}, nil)

		_, err := f.svc.Upload(asActor("admin-1", constant.RoleAdmin), "unit-404", dto.UploadImageRequest{Image: image})

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("insert failure removes uploaded object", func(t *testing.T) {
		f := newFixture(t)

		f.units.EXPECT().Get(gomock.Any(), gomock.Any()).Return(unitModel.Unit{ID: "unit-1"}, nil)
		f.s3.EXPECT().UploadFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("url", nil)
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("db down"))
		f.s3.EXPECT().DeleteFile(gomock.Any(), "rental", model.EntityName, gomock.Any()).Return(nil)

		_, err := f.svc.Upload(asActor("admin-1", constant.RoleAdmin), "unit-1", dto.UploadImageRequest{Image: image})

		assert.Error(t, err)
		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	})
}

func TestGalleryService_GetAll(t *testing.T) {
	owner := "owner-1"
	unit := unitModel.Unit{ID: "unit-1", OwnerID: &owner}
	params := gDto.QueryParams{Page: 1, Limit: 10}

	tests := []struct {
		name     string
		ctx      context.Context
		wantCode int
	}{
		{"staff lists images", asActor("admin-1", constant.RoleAdmin), 0},
		{"owner lists own unit images", asActor(owner, constant.RoleUser), 0},
		{"other owner is forbidden", asActor("owner-2", constant.RoleUser), http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			f.units.EXPECT().Get(gomock.Any(), gomock.Any()).Return(unit, nil)

			if tt.wantCode == 0 {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).Times(2)
				f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)
				f.repo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, p gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.GalleryImage, error) {
						assert.Equal(t, model.FieldSortOrder, p.SortBy)
						assert.Equal(t, gDto.SortDirAsc, p.SortDir)

						return []model.GalleryImage{{ID: "img-1", UnitID: "unit-1"}}, nil
					})
				f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			}

			res, err := f.svc.GetAll(tt.ctx, "unit-1", params)

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Len(t, res.Images, 1)
			assert.Equal(t, 1, res.TotalData)
		})
	}
}

func TestGalleryService_Update(t *testing.T) {
	caption := dto.UpdateImageRequest{Caption: "Garden"}

	t.Run("empty request", func(t *testing.T) {
		f := newFixture(t)

		err := f.svc.Update(asActor("admin-1", constant.RoleAdmin), dto.UpdateImageRequest{}, "img-1")

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := f.svc.Update(asActor("admin-1", constant.RoleAdmin), caption, "img-404")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("updates caption", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, "Garden", fields[model.FieldCaption])

				return nil
			})
		f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		err := f.svc.Update(asActor("admin-1", constant.RoleAdmin), caption, "img-1")

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
	})
}

func TestGalleryService_Delete(t *testing.T) {
	t.Run("removes row and object", func(t *testing.T) {
		f := newFixture(t)
		current := model.GalleryImage{ID: "img-1", Image: "https://cdn.example.com/gallery/pool.jpg"}

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(current, nil)
		f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
		f.s3.EXPECT().GetObjectNameFromURL("rental", current.Image).Return("pool.jpg")
		f.s3.EXPECT().DeleteFile(gomock.Any(), "rental", model.EntityName, "pool.jpg").Return(nil)
		f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		err := f.svc.Delete(asActor("admin-1", constant.RoleAdmin), "img-1")

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.GalleryImage{}, nil)

		err := f.svc.Delete(asActor("admin-1", constant.RoleAdmin), "img-404")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("owner is forbidden", func(t *testing.T) {
		f := newFixture(t)

		err := f.svc.Delete(asActor("owner-1", constant.RoleUser), "img-1")

		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	})
}
