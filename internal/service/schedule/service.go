package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SlotOptimizer/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SlotOptimizer/internal/infra/storage/booking"
)

// Service сервис чтения расписания дня
type Service struct {
	bookingRepo   BookingRepository
	therapistRepo TherapistRepository
	txManager     TransactionManager
	logger        Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(
	bookingRepo BookingRepository,
	therapistRepo TherapistRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:   bookingRepo,
		therapistRepo: therapistRepo,
		txManager:     txManager,
		logger:        logger,
	}
}

// GetDaySchedule получает активных терапевтов и активные бронирования на дату.
// Оба чтения выполняются в одной read-only транзакции.
func (s *Service) GetDaySchedule(ctx context.Context, date time.Time) (*domain.DaySchedule, error) {
	if date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	day := date.Format(domain.DateFormat)
	s.logger.Info("GetDaySchedule: loading schedule for date=%s", day)

	schedule := &domain.DaySchedule{Date: date}

	err := s.txManager.DoReadOnly(ctx, func(ctx context.Context) error {
		therapists, err := s.therapistRepo.ListActive(ctx)
		if err != nil {
			return fmt.Errorf("list therapists: %w", err)
		}

		bookings, err := s.bookingRepo.GetByDate(ctx, domain.DayBookingsFilter{Date: date})
		if err != nil {
			return fmt.Errorf("get bookings: %w", err)
		}

		schedule.Therapists = therapists
		schedule.Bookings = bookings
		return nil
	})
	if err != nil {
		s.logger.Error("GetDaySchedule: failed to load schedule for date=%s: %v", day, err)
		return nil, fmt.Errorf("%w: GetDaySchedule - %v", ErrInternal, err)
	}

	s.logger.Info("GetDaySchedule: date=%s, therapists=%d, bookings=%d",
		day, len(schedule.Therapists), len(schedule.Bookings))
	return schedule, nil
}

// GetBooking получает бронирование по ID в любом статусе
func (s *Service) GetBooking(ctx context.Context, id string) (*domain.Booking, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: booking id is required", ErrInvalidInput)
	}

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetBooking: booking id=%s not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetBooking: repository error for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetBooking - repository error: %v", ErrInternal, err)
	}

	return booking, nil
}
