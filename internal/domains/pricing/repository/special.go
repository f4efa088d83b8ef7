package repository

//go:generate go run go.uber.org/mock/mockgen -source=./special.go -destination=../mocks/special_mock.go -package=mocks

import (
	"context"
	"rental/infras/otel"
	"rental/infras/postgres"
	"rental/internal/domains/pricing/model"
	gDto "rental/shared/dto"
	gRepo "rental/shared/repository"
)

type Special interface {
	Upsert(ctx context.Context, model model.SpecialPricing) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.SpecialPricing, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.SpecialPricing, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type specialImpl struct {
	gRepo.Repository[model.SpecialPricing]
}

func NewSpecial(db *postgres.Connection, otel otel.Otel) Special {
	return &specialImpl{
		Repository: gRepo.NewRepository[model.SpecialPricing](model.SpecialEntityName, model.SpecialTableName, model.FieldID, db, otel),
	}
}

// Upsert keeps a single price per unit, occasion and night.
func (r *specialImpl) Upsert(ctx context.Context, row model.SpecialPricing) error {
	return r.Repository.Upsert(ctx, row, []string{model.FieldUnitID, model.FieldPricingType, model.FieldNightNumber}, model.FieldPrice) //nolint:wrapcheck
}
