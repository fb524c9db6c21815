package find_best_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SlotOptimizer/internal/domain"
)

// ScheduleService источник расписания дня
type ScheduleService interface {
	GetDaySchedule(ctx context.Context, date time.Time) (*domain.DaySchedule, error)
}

// Metrics метрики движка
type Metrics interface {
	ObserveEngine(operation string, d time.Duration)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
