package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"rental/infras/otel"
	"rental/infras/postgres"
	"rental/internal/domains/profit/model"
	gDto "rental/shared/dto"
	gRepo "rental/shared/repository"
)

type Percentage interface {
	Upsert(ctx context.Context, model model.ProfitPercentage) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.ProfitPercentage, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.ProfitPercentage, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.ProfitPercentage]
}

func New(db *postgres.Connection, otel otel.Otel) Percentage {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.ProfitPercentage](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

// Upsert keeps a single percentage per owner.
func (r *repositoryImpl) Upsert(ctx context.Context, row model.ProfitPercentage) error {
	return r.Repository.Upsert(ctx, row, []string{model.FieldOwnerID}, model.FieldPercentage) //nolint:wrapcheck
}
