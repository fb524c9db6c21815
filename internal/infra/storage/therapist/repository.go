package therapist

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SlotOptimizer/internal/domain"
	"github.com/m04kA/SMC-SlotOptimizer/pkg/dbmetrics"
	"github.com/m04kA/SMC-SlotOptimizer/pkg/psqlbuilder"
	"github.com/m04kA/SMC-SlotOptimizer/pkg/types"
)

// Repository репозиторий терапевтов и их рабочих окон
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория терапевтов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListActive возвращает активных терапевтов с рабочими окнами, отсортированных по ID.
// Терапевт без окон возвращается с пустым Availability.
func (r *Repository) ListActive(ctx context.Context) ([]domain.Therapist, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildListActiveQuery()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	var collected []therapistRow
	for rows.Next() {
		var row therapistRow
		if err := rows.Scan(&row.id, &row.name, &row.active, &row.weekday, &row.start, &row.end); err != nil {
			return nil, fmt.Errorf("%w: ListActive - scan row: %v", ErrScanRow, err)
		}
		collected = append(collected, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActive - rows: %v", ErrScanRow, err)
	}

	return assemble(collected)
}

func buildListActiveQuery() (string, []interface{}, error) {
	return psqlbuilder.Select(
		"t.id",
		"t.name",
		"t.active",
		"a.weekday",
		"a.start_time",
		"a.end_time",
	).
		From("therapists t").
		LeftJoin("therapist_availability a ON a.therapist_id = t.id").
		Where(squirrel.Eq{"t.active": true}).
		OrderBy("t.id ASC", "a.weekday ASC NULLS LAST", "a.start_time ASC NULLS LAST").
		ToSql()
}

// therapistRow строка LEFT JOIN: поля окна пустые, если окон нет
type therapistRow struct {
	id      string
	name    string
	active  bool
	weekday sql.NullInt16
	start   types.TimeString
	end     types.TimeString
}

// assemble сворачивает строки JOIN в терапевтов, сохраняя порядок
func assemble(rows []therapistRow) ([]domain.Therapist, error) {
	therapists := make([]domain.Therapist, 0)
	for _, row := range rows {
		if len(therapists) == 0 || therapists[len(therapists)-1].ID != row.id {
			therapists = append(therapists, domain.Therapist{
				ID:           row.id,
				Name:         row.name,
				Active:       row.active,
				Availability: make([]domain.AvailabilityWindow, 0),
			})
		}
		if !row.weekday.Valid {
			continue
		}
		if row.weekday.Int16 < 0 || row.weekday.Int16 > 6 {
			return nil, fmt.Errorf("%w: therapist %s weekday %d", ErrInvalidWeekday, row.id, row.weekday.Int16)
		}

		current := &therapists[len(therapists)-1]
		current.Availability = append(current.Availability, domain.AvailabilityWindow{
			Weekday: time.Weekday(row.weekday.Int16),
			Start:   row.start,
			End:     row.end,
		})
	}
	return therapists, nil
}
