package propose_swaps

import (
	"context"

	proposeSwaps "github.com/m04kA/SMC-SlotOptimizer/internal/usecase/propose_swaps"
)

type ProposeSwapsUseCase interface {
	Execute(ctx context.Context, req *proposeSwaps.Request) (*proposeSwaps.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
