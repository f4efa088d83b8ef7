package repository

//go:generate go run go.uber.org/mock/mockgen -source=./holiday.go -destination=../mocks/holiday_mock.go -package=mocks

import (
	"context"
	"rental/infras/otel"
	"rental/infras/postgres"
	"rental/internal/domains/pricing/model"
	gDto "rental/shared/dto"
	gRepo "rental/shared/repository"
)

type Holiday interface {
	Insert(ctx context.Context, model model.Holiday) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Holiday, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Holiday, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type holidayImpl struct {
	gRepo.Repository[model.Holiday]
}

func NewHoliday(db *postgres.Connection, otel otel.Otel) Holiday {
	return &holidayImpl{
		Repository: gRepo.NewRepository[model.Holiday](model.HolidayEntityName, model.HolidayTableName, model.FieldID, db, otel),
	}
}
