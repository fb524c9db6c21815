package schedule

import (
	"context"

	"github.com/m04kA/SMC-SlotOptimizer/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	GetByDate(ctx context.Context, filter domain.DayBookingsFilter) ([]domain.Booking, error)
}

// TherapistRepository интерфейс репозитория терапевтов
type TherapistRepository interface {
	ListActive(ctx context.Context) ([]domain.Therapist, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
