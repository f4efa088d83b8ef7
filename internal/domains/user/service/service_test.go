package service_test

import (
	"context"
	"errors"
	"fmt"
	"rental/config"
	"rental/infras/otel/mocks"
	userMocks "rental/internal/domains/user/mocks"
	"rental/internal/domains/user/model"
	"rental/internal/domains/user/model/dto"
	"rental/internal/domains/user/service"
	cacheMocks "rental/shared/cache/mocks"
	"rental/shared/constant"
	"rental/shared/failure"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newService(t *testing.T) (service.User, *userMocks.MockUser, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockRepo := userMocks.NewMockUser(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.Booking.PhoneRegion = "SA"

	return service.New(mockRepo, cfg, mockCache, mocks.NewOtel()), mockRepo, mockCache
}

func TestUserService_Create(t *testing.T) {
	phone := "0501234567"
	badPhone := "12"

	tests := []struct {
		name      string
		req       dto.CreateUserRequest
		setupMock func(repo *userMocks.MockUser, cache *cacheMocks.MockRedisCache)
		wantCode  int
	}{
		{
			name: "creates owner with normalized phone",
			req:  dto.CreateUserRequest{Email: "owner@example.com", Password: "password123", PhoneNumber: &phone},
			setupMock: func(repo *userMocks.MockUser, cache *cacheMocks.MockRedisCache) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, user model.User) error {
						assert.Equal(t, "+966501234567", *user.PhoneNumber)
						assert.Equal(t, constant.RoleUser, user.Level)
						assert.Equal(t, "admin-1", user.CreatedBy)

						return nil
					})
				cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
		},
		{
			name:      "rejects invalid phone",
			req:       dto.CreateUserRequest{Email: "owner@example.com", Password: "password123", PhoneNumber: &badPhone},
			setupMock: func(_ *userMocks.MockUser, _ *cacheMocks.MockRedisCache) {},
			wantCode:  400,
		},
		{
			name: "rejects duplicate email",
			req:  dto.CreateUserRequest{Email: "owner@example.com", Password: "password123"},
			setupMock: func(repo *userMocks.MockUser, _ *cacheMocks.MockRedisCache) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantCode: 409,
		},
		{
			name: "email taken by a concurrent signup",
			req:  dto.CreateUserRequest{Email: "owner@example.com", Password: "password123"},
			setupMock: func(repo *userMocks.MockUser, _ *cacheMocks.MockRedisCache) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
					Return(fmt.Errorf("failed to insert data (user): %w", &pq.Error{Code: constant.PqErrorCodeUniqueViolation}))
			},
			wantCode: 409,
		},
		{
			name:      "admin cannot create a superadmin",
			req:       dto.CreateUserRequest{Email: "root@example.com", Password: "password123", Level: constant.RoleSuperAdmin},
			setupMock: func(_ *userMocks.MockUser, _ *cacheMocks.MockRedisCache) {},
			wantCode:  403,
		},
		{
			name: "repository error",
			req:  dto.CreateUserRequest{Email: "owner@example.com", Password: "password123"},
			setupMock: func(repo *userMocks.MockUser, _ *cacheMocks.MockRedisCache) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, errors.New("db down"))
			},
			wantCode: 500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, cache := newService(t)
			tt.setupMock(repo, cache)

			err := svc.Create(actorContext("admin-1", constant.RoleAdmin), tt.req)

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode == 0 {
				assert.NoError(t, err)

				return
			}

			assert.Error(t, err)
			assert.Equal(t, tt.wantCode, failure.GetCode(err))
		})
	}
}

func TestUserService_Get(t *testing.T) {
	name := "Abu Saleh"

	t.Run("cache miss loads from repository", func(t *testing.T) {
		svc, repo, cache := newService(t)

		cache.EXPECT().Get(gomock.Any(), "user:get:u-1", gomock.Any()).Return(errors.New("cache miss"))
		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{ID: "u-1", Email: "a@b.c", FullName: &name}, nil)
		cache.EXPECT().Save(gomock.Any(), "user:get:u-1", gomock.Any(), 3600).Return(nil).AnyTimes()

		res, err := svc.Get(context.Background(), "u-1")

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
		assert.Equal(t, "Abu Saleh", res.DisplayName)
	})

	t.Run("missing user", func(t *testing.T) {
		svc, repo, cache := newService(t)

		cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{}, nil)

		_, err := svc.Get(context.Background(), "u-404")

		assert.Equal(t, 404, failure.GetCode(err))
	})
}

func TestUserService_Update(t *testing.T) {
	t.Run("empty request", func(t *testing.T) {
		svc, _, _ := newService(t)

		err := svc.Update(context.Background(), dto.UpdateUserRequest{}, "u-1")

		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("unknown user", func(t *testing.T) {
		svc, repo, _ := newService(t)
		level := constant.RoleAdmin

		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{}, nil)

		err := svc.Update(context.Background(), dto.UpdateUserRequest{Level: &level}, "u-1")

		assert.Equal(t, 404, failure.GetCode(err))
	})

	t.Run("updates and invalidates caches", func(t *testing.T) {
		svc, repo, cache := newService(t)
		level := constant.RoleAdmin

		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{ID: "u-1", Level: constant.RoleUser}, nil)
		repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
				assert.Equal(t, &level, fields[model.FieldLevel])

				return nil
			})
		cache.EXPECT().Delete(gomock.Any(), "user:get:u-1").Return(nil).AnyTimes()
		cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		err := svc.Update(actorContext("admin-1", constant.RoleAdmin), dto.UpdateUserRequest{Level: &level}, "u-1")

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
	})

	t.Run("admin cannot demote a superadmin", func(t *testing.T) {
		svc, repo, _ := newService(t)
		level := constant.RoleUser

		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{ID: "u-1", Level: constant.RoleSuperAdmin}, nil)

		err := svc.Update(actorContext("admin-1", constant.RoleAdmin), dto.UpdateUserRequest{Level: &level}, "u-1")

		assert.Equal(t, 403, failure.GetCode(err))
	})

	t.Run("superadmin can promote", func(t *testing.T) {
		svc, repo, cache := newService(t)
		level := constant.RoleSuperAdmin

		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{ID: "u-1", Level: constant.RoleAdmin}, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
		cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		err := svc.Update(actorContext("root-1", constant.RoleSuperAdmin), dto.UpdateUserRequest{Level: &level}, "u-1")

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
	})
}

func TestUserService_Delete(t *testing.T) {
	t.Run("refuses self deletion", func(t *testing.T) {
		svc, _, _ := newService(t)

		err := svc.Delete(actorContext("admin-1", constant.RoleAdmin), "admin-1")

		assert.Equal(t, 403, failure.GetCode(err))
	})

	t.Run("unknown user", func(t *testing.T) {
		svc, repo, _ := newService(t)

		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := svc.Delete(actorContext("admin-1", constant.RoleAdmin), "u-404")

		assert.Equal(t, 404, failure.GetCode(err))
	})

	t.Run("deletes and invalidates caches", func(t *testing.T) {
		svc, repo, cache := newService(t)

		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
		cache.EXPECT().Delete(gomock.Any(), "user:get:u-1").Return(nil).AnyTimes()
		cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		err := svc.Delete(actorContext("admin-1", constant.RoleAdmin), "u-1")

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
	})
}

func actorContext(id, role string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, id)

	return context.WithValue(ctx, constant.ContextKeyUserRole, role)
}
