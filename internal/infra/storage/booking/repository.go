package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SlotOptimizer/internal/domain"
	"github.com/m04kA/SMC-SlotOptimizer/pkg/dbmetrics"
	"github.com/m04kA/SMC-SlotOptimizer/pkg/psqlbuilder"
)

var bookingColumns = []string{
	"id",
	"therapist_id",
	"booking_date",
	"start_time",
	"end_time",
	"duration_minutes",
	"service",
	"notes",
	"status",
}

// Repository репозиторий для чтения бронирований
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("%w: GetByID - scan: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetByDate получает бронирования на день, отсортированные по терапевту и времени начала.
// Внутри транзакции читает из её снимка.
func (r *Repository) GetByDate(ctx context.Context, filter domain.DayBookingsFilter) ([]domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildDayQuery(filter)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByDate - scan: %v", ErrScanRow, err)
		}
		bookings = append(bookings, *booking)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByDate - rows: %v", ErrScanRow, err)
	}

	return bookings, nil
}

func buildDayQuery(filter domain.DayBookingsFilter) (string, []interface{}, error) {
	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"booking_date": filter.Date.Format(domain.DateFormat)})

	// Фильтрация по терапевтам (если указаны)
	if len(filter.TherapistIDs) > 0 {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"therapist_id": filter.TherapistIDs})
	}

	if !filter.IncludeInactive {
		inactive := make([]string, len(domain.InactiveStatuses))
		for i, s := range domain.InactiveStatuses {
			inactive[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": inactive})
	}

	return selectBuilder.OrderBy("therapist_id ASC", "start_time ASC", "id ASC").ToSql()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		booking domain.Booking
		service sql.NullString
		notes   sql.NullString
		status  string
	)

	err := row.Scan(
		&booking.ID,
		&booking.TherapistID,
		&booking.Date,
		&booking.Start,
		&booking.End,
		&booking.DurationMinutes,
		&service,
		&notes,
		&status,
	)
	if err != nil {
		return nil, err
	}

	booking.Service = service.String
	if notes.Valid {
		booking.Notes = &notes.String
	}
	booking.Status = domain.BookingStatus(status)

	return &booking, nil
}
