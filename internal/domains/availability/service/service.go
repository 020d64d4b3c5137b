package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"litrato/infras/otel"
	"litrato/internal/domains/availability/model/dto"
	"litrato/internal/domains/availability/repository"
	"litrato/internal/domains/availability/schedule"
	packageService "litrato/internal/domains/packages/service"
	"litrato/shared/constant"
	"litrato/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	defaultSummaryDays = 30
	maxSummaryDays     = 366
)

type Availability interface {
	Day(ctx context.Context, rawDate, packageID string) (dto.DailyAvailabilityResponse, error)
	Summary(ctx context.Context, rawFrom, rawTo string) (dto.SummaryResponse, error)
	Occupancy(ctx context.Context, packageID string, day time.Time) ([]schedule.BookingInterval, error)
	// OccupancyTx loads, inside tx, the active intervals a write for
	// packageID on day has to be checked against.
	OccupancyTx(ctx context.Context, tx *sqlx.Tx, packageID string, day time.Time) ([]schedule.BookingInterval, error)
	Rules() schedule.Rules
}

type serviceImpl struct {
	repo     repository.Availability
	packages packageService.Package
	rules    schedule.Rules
	otel     otel.Otel
}

func New(repo repository.Availability, packages packageService.Package, rules schedule.Rules, otel otel.Otel) Availability {
	return &serviceImpl{
		repo:     repo,
		packages: packages,
		rules:    rules,
		otel:     otel,
	}
}

func (s *serviceImpl) Rules() schedule.Rules {
	return s.rules
}

// scopeFilter is the package filter for occupancy reads. Under the global
// scope every package shares one calendar.
func (s *serviceImpl) scopeFilter(packageID string) string {
	if s.rules.Scope == schedule.ScopeGlobal {
		return constant.Empty
	}

	return packageID
}

func (s *serviceImpl) Day(ctx context.Context, rawDate, packageID string) (res dto.DailyAvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Day")
	defer scope.End()
	defer scope.TraceIfError(&err)

	day, err := s.rules.ParseDay(rawDate, timezone.Now())
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	packages, err := s.packages.Catalog(ctx, packageID)
	if err != nil {
		return res, fmt.Errorf("failed to load packages: %w", err)
	}

	records, err := s.repo.ActiveRecords(ctx, day.AddDate(0, 0, -1), day.AddDate(0, 0, 1), s.scopeFilter(packageID))
	if err != nil {
		log.Error().Err(err).Str("date", rawDate).Msg("failed to load occupancy")

		return res, fmt.Errorf("failed to load occupancy: %w", err)
	}

	res.FromSchedule(s.rules.ComputeDailyAvailability(day, packages, records))

	return res, nil
}

func (s *serviceImpl) Summary(ctx context.Context, rawFrom, rawTo string) (res dto.SummaryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Summary")
	defer scope.End()
	defer scope.TraceIfError(&err)

	now := timezone.Now()

	from := s.rules.StartOfDay(now)
	if rawFrom != constant.Empty {
		if from, err = s.rules.ParseDay(rawFrom, now); err != nil {
			return res, err //nolint:wrapcheck
		}
	}

	to := from.AddDate(0, 0, defaultSummaryDays)
	if rawTo != constant.Empty {
		if to, err = s.rules.ParseDay(rawTo, now); err != nil {
			return res, err //nolint:wrapcheck
		}
	}

	if to.Before(from) || to.After(from.AddDate(0, 0, maxSummaryDays)) {
		return res, schedule.ErrInvalidDate
	}

	counts, err := s.repo.BookingCounts(ctx, from, to)
	if err != nil {
		log.Error().Err(err).Msg("failed to load booking counts")

		return res, fmt.Errorf("failed to load booking counts: %w", err)
	}

	res.From = from.Format(constant.DayFormat)
	res.To = to.Format(constant.DayFormat)
	res.Counts = counts

	return res, nil
}

// Occupancy is the read-only counterpart of OccupancyTx, used for preflight
// checks that commit nothing.
func (s *serviceImpl) Occupancy(ctx context.Context, packageID string, day time.Time) ([]schedule.BookingInterval, error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Occupancy")
	defer scope.End()

	day = s.rules.StartOfDay(day)

	records, err := s.repo.ActiveRecords(ctx, day.AddDate(0, 0, -1), day.AddDate(0, 0, 1), s.scopeFilter(packageID))
	if err != nil {
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to load occupancy: %w", err)
	}

	return s.rules.ActiveIntervals(records), nil
}

func (s *serviceImpl) OccupancyTx(ctx context.Context, tx *sqlx.Tx, packageID string, day time.Time) ([]schedule.BookingInterval, error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".OccupancyTx")
	defer scope.End()

	day = s.rules.StartOfDay(day)

	records, err := s.repo.ActiveRecordsTx(ctx, tx, day.AddDate(0, 0, -1), day.AddDate(0, 0, 1), s.scopeFilter(packageID))
	if err != nil {
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to load occupancy: %w", err)
	}

	return s.rules.ActiveIntervals(records), nil
}
