package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"litrato/infras/otel"
	"litrato/infras/postgres"
	"litrato/internal/domains/availability/schedule"
	"litrato/shared/constant"
	"litrato/shared/logger"
	"litrato/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const entityName = "availability"

// Active rows of both sources over an inclusive event_date range. A request
// that was promoted into a booking is left out; the booking stands for it.
const activeRecordsQuery = `
SELECT 'request' AS source, r.id, '' AS request_id, r.package_id, r.status,
       r.event_start, r.event_end, r.extension_duration
  FROM booking_requests r
 WHERE r.status = ANY(:request_statuses)
   AND r.event_date BETWEEN :from AND :to
   AND (CAST(:package_id AS TEXT) = '' OR r.package_id = :package_id)
   AND NOT EXISTS (SELECT 1 FROM bookings b WHERE b.request_id = r.id)
UNION ALL
SELECT 'booking' AS source, b.id, COALESCE(b.request_id, '') AS request_id, b.package_id, b.status,
       b.event_start, b.event_end, b.extension_duration
  FROM bookings b
 WHERE b.status = ANY(:booking_statuses)
   AND b.event_date BETWEEN :from AND :to
   AND (CAST(:package_id AS TEXT) = '' OR b.package_id = :package_id)
 ORDER BY event_start, id`

const bookingCountsQuery = `
SELECT to_char(event_date, 'YYYY-MM-DD') AS day, COUNT(*) AS total
  FROM bookings
 WHERE status = ANY(:booking_statuses)
   AND event_date BETWEEN :from AND :to
 GROUP BY event_date
 ORDER BY event_date`

// Availability reads calendar occupancy straight from postgres. Nothing here
// is cached.
type Availability interface {
	// ActiveRecords loads active requests and bookings whose event_date falls
	// in [from, to]. An empty packageID loads every package.
	ActiveRecords(ctx context.Context, from, to time.Time, packageID string) ([]schedule.Record, error)
	ActiveRecordsTx(ctx context.Context, tx *sqlx.Tx, from, to time.Time, packageID string) ([]schedule.Record, error)
	BookingCounts(ctx context.Context, from, to time.Time) (map[string]int, error)
}

type recordRow struct {
	Source         string    `db:"source"`
	ID             string    `db:"id"`
	RequestID      string    `db:"request_id"`
	PackageID      string    `db:"package_id"`
	Status         string    `db:"status"`
	EventStart     time.Time `db:"event_start"`
	EventEnd       time.Time `db:"event_end"`
	ExtensionHours int       `db:"extension_duration"`
}

func (r recordRow) toRecord() schedule.Record {
	return schedule.Record{
		Ref:            schedule.Ref{Source: schedule.Source(r.Source), ID: r.ID},
		RequestID:      r.RequestID,
		PackageID:      r.PackageID,
		Status:         r.Status,
		EventStart:     timezone.Wall(r.EventStart),
		EventEnd:       timezone.Wall(r.EventEnd),
		ExtensionHours: r.ExtensionHours,
	}
}

type countRow struct {
	Day   string `db:"day"`
	Total int    `db:"total"`
}

type repositoryImpl struct {
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Availability {
	return &repositoryImpl{
		db:   db,
		otel: otel,
	}
}

func rangeArgs(from, to time.Time) map[string]any {
	return map[string]any{
		"from":             from.Format(constant.DayFormat),
		"to":               to.Format(constant.DayFormat),
		"request_statuses": pq.Array(schedule.ActiveStatuses(schedule.SourceRequest)),
		"booking_statuses": pq.Array(schedule.ActiveStatuses(schedule.SourceBooking)),
	}
}

func (repo *repositoryImpl) ActiveRecords(ctx context.Context, from, to time.Time, packageID string) ([]schedule.Record, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.ActiveRecords", constant.OtelRepositoryScopeName, entityName))
	defer scope.End()

	return repo.activeRecords(ctx, repo.db.Read, from, to, packageID)
}

func (repo *repositoryImpl) ActiveRecordsTx(ctx context.Context, tx *sqlx.Tx, from, to time.Time, packageID string) ([]schedule.Record, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.ActiveRecordsTx", constant.OtelRepositoryScopeName, entityName))
	defer scope.End()

	return repo.activeRecords(ctx, tx, from, to, packageID)
}

func (repo *repositoryImpl) activeRecords(ctx context.Context, ext sqlx.ExtContext, from, to time.Time, packageID string) ([]schedule.Record, error) {
	args := rangeArgs(from, to)
	args["package_id"] = packageID

	query, params, err := ext.BindNamed(activeRecordsQuery, args)
	if err != nil {
		return nil, fmt.Errorf("failed to bind active records query: %w", err)
	}

	var rows []recordRow
	if err := sqlx.SelectContext(ctx, ext, &rows, query, params...); err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to load active records: %w", err)
	}

	records := make([]schedule.Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, row.toRecord())
	}

	return records, nil
}

func (repo *repositoryImpl) BookingCounts(ctx context.Context, from, to time.Time) (map[string]int, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.BookingCounts", constant.OtelRepositoryScopeName, entityName))
	defer scope.End()

	query, params, err := repo.db.Read.BindNamed(bookingCountsQuery, rangeArgs(from, to))
	if err != nil {
		return nil, fmt.Errorf("failed to bind booking counts query: %w", err)
	}

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var rows []countRow
	if err := repo.db.Read.SelectContext(ctx, &rows, query, params...); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to count bookings: %w", err)
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.Day] = row.Total
	}

	return counts, nil
}
