package get_day_schedule

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SlotOptimizer/internal/domain"
)

type ScheduleService interface {
	GetDaySchedule(ctx context.Context, date time.Time) (*domain.DaySchedule, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
