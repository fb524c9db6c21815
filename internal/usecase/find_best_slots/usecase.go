package find_best_slots

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SlotOptimizer/internal/domain"
	"github.com/m04kA/SMC-SlotOptimizer/internal/slotengine"
)

const engineOperation = "best_slots"

// UseCase use case подбора лучших слотов по терапевтам
type UseCase struct {
	scheduleSvc ScheduleService
	engine      *slotengine.Engine
	defaults    slotengine.Params
	metrics     Metrics
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	scheduleSvc ScheduleService,
	engine *slotengine.Engine,
	defaults slotengine.Params,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		scheduleSvc: scheduleSvc,
		engine:      engine,
		defaults:    defaults,
		metrics:     metrics,
		logger:      logger,
	}
}

// target разрешённая цель поиска
type target struct {
	duration     int
	therapistIDs []string
	excludeID    string
}

// Execute выполняет use case подбора слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("FindBestSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем расписание дня
	schedule, err := uc.loadSchedule(ctx, req)
	if err != nil {
		return nil, err
	}

	// 3. Определяем длительность и терапевтов
	tgt, err := uc.resolveTarget(req, schedule)
	if err != nil {
		return nil, err
	}

	params := req.Params.WithDefaults(uc.defaults)

	uc.logger.Info("FindBestSlots: date=%s, duration=%d, therapists=%d, exclude=%q",
		formatDate(schedule.Date), tgt.duration, len(tgt.therapistIDs), tgt.excludeID)

	// 4. Классифицируем слоты каждого терапевта
	started := time.Now()
	result := make([]TherapistSlots, 0, len(tgt.therapistIDs))
	for _, therapistID := range tgt.therapistIDs {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: FindBestSlots - %v", ErrInternal, err)
		}

		bookings := schedule.ActiveBookingsOf(therapistID, tgt.excludeID)
		slots, err := uc.engine.FindBestScheduleSlots(tgt.duration, bookings, params)
		if err != nil {
			if slotengine.IsInputError(err) {
				uc.logger.Warn("FindBestSlots: invalid schedule of therapist=%s: %v", therapistID, err)
				return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
			}
			uc.logger.Error("FindBestSlots: engine failed for therapist=%s: %v", therapistID, err)
			return nil, fmt.Errorf("%w: FindBestSlots - engine: %v", ErrInternal, err)
		}

		result = append(result, TherapistSlots{TherapistID: therapistID, Slots: slots})
	}
	uc.metrics.ObserveEngine(engineOperation, time.Since(started))

	uc.logger.Info("FindBestSlots: classified slots for %d therapists in %s", len(result), time.Since(started))

	return &Response{
		Date:            schedule.Date,
		DurationMinutes: tgt.duration,
		EditedBookingID: tgt.excludeID,
		Therapists:      result,
	}, nil
}

func (uc *UseCase) loadSchedule(ctx context.Context, req *Request) (*domain.DaySchedule, error) {
	if req.Bookings != nil {
		return domain.NewInlineSchedule(req.Bookings), nil
	}

	schedule, err := uc.scheduleSvc.GetDaySchedule(ctx, req.Date)
	if err != nil {
		uc.logger.Error("FindBestSlots: failed to get schedule for date=%s: %v", formatDate(req.Date), err)
		return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}
	return schedule, nil
}

func (uc *UseCase) resolveTarget(req *Request, schedule *domain.DaySchedule) (target, error) {
	inline := req.Bookings != nil

	switch t := req.Target.(type) {
	case domain.NewSlotRequest:
		if t.TherapistID == nil {
			return target{duration: t.DurationMinutes, therapistIDs: workingTherapists(schedule)}, nil
		}
		if !inline && !schedule.HasTherapist(*t.TherapistID) {
			uc.logger.Warn("FindBestSlots: therapist=%s not found on %s", *t.TherapistID, formatDate(schedule.Date))
			return target{}, ErrTherapistNotFound
		}
		return target{duration: t.DurationMinutes, therapistIDs: []string{*t.TherapistID}}, nil

	case domain.EditBookingRequest:
		booking, ok := schedule.FindBooking(t.BookingID)
		if !ok || !booking.IsActive() {
			uc.logger.Warn("FindBestSlots: booking=%s not found", t.BookingID)
			return target{}, ErrBookingNotFound
		}

		duration := t.DurationMinutes
		if duration == 0 {
			interval, err := slotengine.NewBookingInterval(booking)
			if err != nil {
				return target{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
			}
			duration = interval.DurationMinutes
		}

		// Перенос возможен к любому терапевту, включая текущего
		return target{duration: duration, therapistIDs: workingTherapists(schedule), excludeID: booking.ID}, nil
	}

	return target{}, fmt.Errorf("%w: unsupported target %T", ErrInvalidInput, req.Target)
}

// workingTherapists терапевты, работающие в этот день.
// Терапевт из ростера с расписанием, но без окон на этот день недели, пропускается.
func workingTherapists(schedule *domain.DaySchedule) []string {
	off := make(map[string]struct{})
	if !schedule.Date.IsZero() {
		weekday := schedule.Date.Weekday()
		for _, t := range schedule.Therapists {
			if len(t.Availability) > 0 && !t.WorksOn(weekday) {
				off[t.ID] = struct{}{}
			}
		}
	}

	ids := make([]string, 0)
	for _, id := range schedule.TherapistIDs() {
		if _, skip := off[id]; skip && len(schedule.ActiveBookingsOf(id, "")) == 0 {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

func formatDate(date time.Time) string {
	if date.IsZero() {
		return "inline"
	}
	return date.Format(domain.DateFormat)
}
