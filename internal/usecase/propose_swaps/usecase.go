package propose_swaps

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/m04kA/SMC-SlotOptimizer/internal/domain"
	"github.com/m04kA/SMC-SlotOptimizer/internal/slotengine"
)

const engineOperation = "swap_proposals"

// UseCase use case поиска обменов бронированиями между терапевтами
type UseCase struct {
	scheduleSvc ScheduleService
	engine      *slotengine.Engine
	defaults    slotengine.Params
	limits      Limits
	metrics     Metrics
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	scheduleSvc ScheduleService,
	engine *slotengine.Engine,
	defaults slotengine.Params,
	limits Limits,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		scheduleSvc: scheduleSvc,
		engine:      engine,
		defaults:    defaults,
		limits:      limits,
		metrics:     metrics,
		logger:      logger,
	}
}

type searchResult struct {
	proposals []slotengine.SwapProposal
	err       error
}

// Execute выполняет поиск обменов.
// Поиск прерывается по ctx: перебор останавливается перед следующим обменом,
// результат незавершённого поиска отбрасывается.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ProposeSwaps: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем расписание дня
	schedule, err := uc.loadSchedule(ctx, req)
	if err != nil {
		return nil, err
	}
	bookings := schedule.ActiveBookings()

	// 3. Проверяем лимиты перебора
	if err := checkLimits(bookings, uc.limits); err != nil {
		uc.logger.Warn("ProposeSwaps: %v", err)
		return nil, err
	}

	params := req.Params.WithDefaults(uc.defaults)

	// 4. Поиск со сбором статистики через trace
	var evaluated, rejected, unchanged int64
	engine := uc.engine.WithTrace(func(tr slotengine.SwapTrace) {
		// после отмены ответ уже отдан, досчитанные пары не учитываем
		if ctx.Err() != nil {
			return
		}
		switch tr.Outcome {
		case slotengine.TraceEvaluated:
			atomic.AddInt64(&evaluated, 1)
		case slotengine.TraceRejectedOverlap:
			atomic.AddInt64(&rejected, 1)
		case slotengine.TraceUnchanged:
			atomic.AddInt64(&unchanged, 1)
		}
		uc.metrics.IncSwapPair(string(tr.Outcome))
	})

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTimeout, err)
	}

	started := time.Now()
	done := make(chan searchResult, 1)
	go func() {
		proposals, err := engine.ProposeSwapOptionsContext(ctx, bookings, req.DurationMinutes, params)
		done <- searchResult{proposals: proposals, err: err}
	}()

	var result searchResult
	select {
	case <-ctx.Done():
		uc.logger.Warn("ProposeSwaps: search aborted after %s: %v", time.Since(started), ctx.Err())
		return nil, fmt.Errorf("%w: %w", ErrTimeout, ctx.Err())
	case result = <-done:
	}
	elapsed := time.Since(started)
	uc.metrics.ObserveEngine(engineOperation, elapsed)

	if result.err != nil {
		if errors.Is(result.err, context.DeadlineExceeded) || errors.Is(result.err, context.Canceled) {
			uc.logger.Warn("ProposeSwaps: search aborted after %s: %v", elapsed, result.err)
			return nil, fmt.Errorf("%w: %w", ErrTimeout, result.err)
		}
		if slotengine.IsInputError(result.err) {
			uc.logger.Warn("ProposeSwaps: invalid schedule: %v", result.err)
			return nil, fmt.Errorf("%w: %w", ErrInvalidInput, result.err)
		}
		uc.logger.Error("ProposeSwaps: engine failed: %v", result.err)
		return nil, fmt.Errorf("%w: ProposeSwaps - engine: %v", ErrInternal, result.err)
	}

	uc.recordProposals(result.proposals)

	stats := Stats{
		Evaluated:       int(atomic.LoadInt64(&evaluated)),
		RejectedOverlap: int(atomic.LoadInt64(&rejected)),
		Unchanged:       int(atomic.LoadInt64(&unchanged)),
	}
	uc.logger.Info("ProposeSwaps: date=%s, duration=%d, bookings=%d, proposals=%d, evaluated=%d, rejected=%d, unchanged=%d, took=%s",
		formatDate(schedule.Date), req.DurationMinutes, len(bookings), len(result.proposals),
		stats.Evaluated, stats.RejectedOverlap, stats.Unchanged, elapsed)

	return &Response{
		Date:            schedule.Date,
		DurationMinutes: req.DurationMinutes,
		Proposals:       result.proposals,
		Stats:           stats,
	}, nil
}

func (uc *UseCase) loadSchedule(ctx context.Context, req *Request) (*domain.DaySchedule, error) {
	if req.Bookings != nil {
		return domain.NewInlineSchedule(req.Bookings), nil
	}

	schedule, err := uc.scheduleSvc.GetDaySchedule(ctx, req.Date)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return nil, fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		uc.logger.Error("ProposeSwaps: failed to get schedule for date=%s: %v", formatDate(req.Date), err)
		return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}
	return schedule, nil
}

func (uc *UseCase) recordProposals(proposals []slotengine.SwapProposal) {
	counts := make(map[slotengine.Kind]int)
	for _, p := range proposals {
		counts[p.Kind]++
	}
	for kind, n := range counts {
		uc.metrics.AddProposals(string(kind), n)
	}
}

func formatDate(date time.Time) string {
	if date.IsZero() {
		return "inline"
	}
	return date.Format(domain.DateFormat)
}
