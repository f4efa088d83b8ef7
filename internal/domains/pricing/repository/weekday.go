package repository

//go:generate go run go.uber.org/mock/mockgen -source=./weekday.go -destination=../mocks/weekday_mock.go -package=mocks

import (
	"context"
	"rental/infras/otel"
	"rental/infras/postgres"
	"rental/internal/domains/pricing/model"
	gDto "rental/shared/dto"
	gRepo "rental/shared/repository"
)

type Weekday interface {
	Upsert(ctx context.Context, model model.WeekdayPricing) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.WeekdayPricing, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.WeekdayPricing, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type weekdayImpl struct {
	gRepo.Repository[model.WeekdayPricing]
}

func NewWeekday(db *postgres.Connection, otel otel.Otel) Weekday {
	return &weekdayImpl{
		Repository: gRepo.NewRepository[model.WeekdayPricing](model.WeekdayEntityName, model.WeekdayTableName, model.FieldID, db, otel),
	}
}

// Upsert keeps a single price per unit and day of week.
func (r *weekdayImpl) Upsert(ctx context.Context, row model.WeekdayPricing) error {
	return r.Repository.Upsert(ctx, row, []string{model.FieldUnitID, model.FieldDayOfWeek}, model.FieldPrice) //nolint:wrapcheck
}
