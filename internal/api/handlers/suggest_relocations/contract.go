package suggest_relocations

import (
	"context"

	suggestRelocations "github.com/m04kA/SMC-SlotOptimizer/internal/usecase/suggest_relocations"
)

type SuggestRelocationsUseCase interface {
	Execute(ctx context.Context, req *suggestRelocations.Request) (*suggestRelocations.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
