package service

import (
	"context"
	"fmt"
	"rental/config"
	"rental/infras/otel"
	bookingModel "rental/internal/domains/booking/model"
	bookingRepo "rental/internal/domains/booking/repository"
	"rental/internal/domains/report/export"
	"rental/internal/domains/report/model/dto"
	"rental/internal/domains/report/period"
	unitModel "rental/internal/domains/unit/model"
	unitRepo "rental/internal/domains/unit/repository"
	"rental/permissions"
	"rental/shared"
	"rental/shared/constant"
	gDto "rental/shared/dto"
	"rental/shared/validator"

	"github.com/rs/zerolog/log"
)

const (
	argPeriodFrom = "period_from"
	argPeriodTo   = "period_to"
)

type Report interface {
	Payments(ctx context.Context, req dto.PaymentsRequest) (dto.PaymentsResponse, error)
	PaymentsXLSX(ctx context.Context, req dto.PaymentsRequest) ([]byte, error)
}

type serviceImpl struct {
	bookingRepo bookingRepo.Booking
	unitRepo    unitRepo.Unit
	cfg         *config.Config
	otel        otel.Otel
}

func New(bookingRepo bookingRepo.Booking, unitRepo unitRepo.Unit, cfg *config.Config, otel otel.Otel) Report {
	return &serviceImpl{
		bookingRepo: bookingRepo,
		unitRepo:    unitRepo,
		cfg:         cfg,
		otel:        otel,
	}
}

func (s *serviceImpl) Payments(ctx context.Context, req dto.PaymentsRequest) (res dto.PaymentsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Payments")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = permissions.Check(permissions.ActorFromContext(ctx), permissions.ActionViewReport, permissions.Resource{}); err != nil {
		return res, err
	}

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err //nolint:wrapcheck
	}

	filter := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	if req.UnitID != constant.Empty {
		exist, err := s.unitRepo.Exist(ctx, shared.FilterByID(req.UnitID, unitModel.FieldID, unitModel.TableName))
		if err != nil {
			log.Error().Err(err).Msg("failed to check unit")

			return res, fmt.Errorf("failed to check unit: %w", err)
		}

		// an unknown unit widens the report instead of failing it
		if exist {
			filter.Filters = append(filter.Filters, shared.Eq(bookingModel.TableName, bookingModel.FieldUnitID, req.UnitID))
		}
	}

	var window *period.Window

	if w, ok := period.Of(req.ReportType, req.Date); ok {
		window = &w

		filter.Filters = append(filter.Filters,
			gDto.Filter{
				ArgName:  argPeriodFrom,
				Field:    bookingModel.FieldStartDate,
				Value:    w.From,
				Operator: gDto.FilterOperatorGreaterEq,
				Table:    bookingModel.TableName,
			},
			gDto.Filter{
				ArgName:  argPeriodTo,
				Field:    bookingModel.FieldStartDate,
				Value:    w.To,
				Operator: gDto.FilterOperatorLessEq,
				Table:    bookingModel.TableName,
			},
		)
	}

	params := gDto.QueryParams{
		SortBy:  bookingModel.TableName + "." + bookingModel.FieldStartDate,
		SortDir: gDto.SortDirDesc,
	}

	bookings, err := s.bookingRepo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(req.ReportType, window, bookings)

	return res, nil
}

func (s *serviceImpl) PaymentsXLSX(ctx context.Context, req dto.PaymentsRequest) (_ []byte, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".PaymentsXLSX")
	defer scope.End()
	defer scope.TraceIfError(err)

	res, err := s.Payments(ctx, req)
	if err != nil {
		return nil, err
	}

	payload, err := export.PaymentsXLSX(res)
	if err != nil {
		log.Error().Err(err).Msg("failed to render payments workbook")

		return nil, fmt.Errorf("failed to render payments workbook: %w", err)
	}

	return payload, nil
}
