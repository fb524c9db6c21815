package suggest_relocations

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SlotOptimizer/internal/domain"
	"github.com/m04kA/SMC-SlotOptimizer/internal/integrations/matchingoptimizer"
	"github.com/m04kA/SMC-SlotOptimizer/internal/slotengine"
	"github.com/m04kA/SMC-SlotOptimizer/pkg/types"
)

// UseCase use case подбора размещения новой записи с переносами существующих.
// Расчёт выполняет внешний оптимизатор.
type UseCase struct {
	scheduleSvc ScheduleService
	optimizer   OptimizerClient // nil - интеграция выключена
	defaultDay  slotengine.Params
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	scheduleSvc ScheduleService,
	optimizer OptimizerClient,
	defaultDay slotengine.Params,
	logger Logger,
) *UseCase {
	return &UseCase{
		scheduleSvc: scheduleSvc,
		optimizer:   optimizer,
		defaultDay:  defaultDay,
		logger:      logger,
	}
}

// Execute выполняет use case
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("SuggestRelocations: validation failed: %v", err)
		return nil, err
	}

	if uc.optimizer == nil {
		return nil, ErrOptimizerDisabled
	}

	day := req.Date.Format(domain.DateFormat)

	// 2. Получаем расписание дня
	schedule, err := uc.scheduleSvc.GetDaySchedule(ctx, req.Date)
	if err != nil {
		uc.logger.Error("SuggestRelocations: failed to get schedule for date=%s: %v", day, err)
		return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}

	// 3. Формируем запрос к оптимизатору
	optReq, err := uc.buildRequest(schedule, req)
	if err != nil {
		uc.logger.Error("SuggestRelocations: failed to build request for date=%s: %v", day, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	if len(optReq.Therapists) == 0 {
		uc.logger.Info("SuggestRelocations: no therapists work on %s", day)
		return &Response{Date: req.Date, Gaps: []Gap{}, Relocations: []Relocation{}}, nil
	}

	// 4. Вызываем оптимизатор
	optResp, err := uc.optimizer.Optimize(ctx, optReq)
	if err != nil {
		if errors.Is(err, matchingoptimizer.ErrInvalidRequest) {
			uc.logger.Warn("SuggestRelocations: optimizer rejected request for date=%s: %v", day, err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		uc.logger.Error("SuggestRelocations: optimizer failed for date=%s: %v", day, err)
		return nil, fmt.Errorf("%w: %v", ErrOptimizerUnavailable, err)
	}

	// 5. Переводим минуты обратно в HH:mm
	resp, err := fromOptimizerResponse(req, optResp)
	if err != nil {
		uc.logger.Error("SuggestRelocations: invalid optimizer response for date=%s: %v", day, err)
		return nil, fmt.Errorf("%w: %v", ErrOptimizerUnavailable, err)
	}

	uc.logger.Info("SuggestRelocations: date=%s, duration=%d, gaps=%d, relocations=%d, weight=%.2f",
		day, req.DurationMinutes, len(resp.Gaps), len(resp.Relocations), resp.TotalWeight)
	return resp, nil
}

func (uc *UseCase) buildRequest(schedule *domain.DaySchedule, req *Request) (*matchingoptimizer.OptimizeRequest, error) {
	weekday := req.Date.Weekday()

	defaultStart, err := uc.defaultDay.DayStart.Minutes()
	if err != nil {
		return nil, fmt.Errorf("default day start: %w", err)
	}
	defaultEnd, err := uc.defaultDay.DayEnd.Minutes()
	if err != nil {
		return nil, fmt.Errorf("default day end: %w", err)
	}

	optReq := &matchingoptimizer.OptimizeRequest{
		Bookings:   make([]matchingoptimizer.Booking, 0, len(schedule.Bookings)),
		Therapists: make([]matchingoptimizer.Therapist, 0, len(schedule.Therapists)),
	}

	windowStart, windowEnd := types.MinutesPerDay, 0
	for _, t := range schedule.Therapists {
		windows := make([]matchingoptimizer.Window, 0)
		if len(t.Availability) == 0 {
			// Без расписания терапевт работает стандартный день
			windows = append(windows, matchingoptimizer.Window{StartTime: defaultStart, EndTime: defaultEnd})
		}
		for _, w := range t.WindowsFor(weekday) {
			start, err := w.Start.Minutes()
			if err != nil {
				return nil, fmt.Errorf("therapist %s window: %w", t.ID, err)
			}
			end, err := w.End.Minutes()
			if err != nil {
				return nil, fmt.Errorf("therapist %s window: %w", t.ID, err)
			}
			windows = append(windows, matchingoptimizer.Window{StartTime: start, EndTime: end})
		}
		if len(windows) == 0 {
			continue
		}

		for _, w := range windows {
			windowStart = min(windowStart, w.StartTime)
			windowEnd = max(windowEnd, w.EndTime)
		}
		optReq.Therapists = append(optReq.Therapists, matchingoptimizer.Therapist{ID: t.ID, Availability: windows})
	}

	for _, b := range schedule.ActiveBookings() {
		interval, err := slotengine.NewBookingInterval(b)
		if err != nil {
			return nil, fmt.Errorf("booking %s: %w", b.ID, err)
		}
		optReq.Bookings = append(optReq.Bookings, matchingoptimizer.Booking{
			ID:              interval.ID,
			TherapistID:     interval.TherapistID,
			StartTime:       interval.Start,
			EndTime:         interval.End,
			DurationMinutes: interval.DurationMinutes,
		})
	}

	if !req.WindowStart.IsZero() {
		windowStart, _ = req.WindowStart.Minutes()
	}
	if !req.WindowEnd.IsZero() {
		windowEnd, _ = req.WindowEnd.Minutes()
	}

	optReq.NewRequest = matchingoptimizer.NewRequest{
		Duration:    req.DurationMinutes,
		WindowStart: windowStart,
		WindowEnd:   windowEnd,
	}
	return optReq, nil
}

func fromOptimizerResponse(req *Request, resp *matchingoptimizer.OptimizeResponse) (*Response, error) {
	result := &Response{
		Date:        req.Date,
		Gaps:        make([]Gap, 0, len(resp.Slots)),
		Relocations: make([]Relocation, 0, len(resp.Relocations)),
		TotalWeight: resp.TotalWeight,
	}

	for _, s := range resp.Slots {
		if !inDay(s.Start) || !inDay(s.End) || s.Start >= s.End {
			return nil, fmt.Errorf("gap %d-%d of therapist %s is outside the day", s.Start, s.End, s.TherapistID)
		}
		result.Gaps = append(result.Gaps, Gap{
			TherapistID: s.TherapistID,
			Start:       types.FromMinutes(s.Start),
			End:         types.FromMinutes(s.End),
		})
	}

	for _, r := range resp.Relocations {
		if !inDay(r.Slot) {
			return nil, fmt.Errorf("relocation of booking %s to %d is outside the day", r.BookingID, r.Slot)
		}
		result.Relocations = append(result.Relocations, Relocation{
			BookingID:       r.BookingID,
			FromTherapistID: r.FromTherapistID,
			ToTherapistID:   r.ToTherapistID,
			Slot:            types.FromMinutes(r.Slot),
		})
	}

	return result, nil
}

func inDay(minutes int) bool {
	return minutes >= 0 && minutes <= types.MinutesPerDay
}
