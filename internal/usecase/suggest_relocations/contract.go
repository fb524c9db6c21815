package suggest_relocations

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SlotOptimizer/internal/domain"
	"github.com/m04kA/SMC-SlotOptimizer/internal/integrations/matchingoptimizer"
)

// ScheduleService источник расписания дня
type ScheduleService interface {
	GetDaySchedule(ctx context.Context, date time.Time) (*domain.DaySchedule, error)
}

// OptimizerClient клиент внешнего оптимизатора размещения
type OptimizerClient interface {
	Optimize(ctx context.Context, req *matchingoptimizer.OptimizeRequest) (*matchingoptimizer.OptimizeResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
