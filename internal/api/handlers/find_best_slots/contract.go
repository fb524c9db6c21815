package find_best_slots

import (
	"context"

	findBestSlots "github.com/m04kA/SMC-SlotOptimizer/internal/usecase/find_best_slots"
)

type FindBestSlotsUseCase interface {
	Execute(ctx context.Context, req *findBestSlots.Request) (*findBestSlots.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
