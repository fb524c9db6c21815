package slotengine

import (
	"errors"

	"github.com/m04kA/SMC-SlotOptimizer/pkg/types"
)

var (
	// ErrInvalidDuration возвращается при неположительной длительности слота
	ErrInvalidDuration = errors.New("slotengine: duration must be positive")

	// ErrInvalidDayWindow возвращается, когда начало рабочего дня не раньше его конца
	ErrInvalidDayWindow = errors.New("slotengine: day start must be before day end")

	// ErrInvalidBooking возвращается для бронирования с некорректным интервалом
	ErrInvalidBooking = errors.New("slotengine: invalid booking interval")
)

// IsInputError true, если ошибка вызвана входными данными, а не сбоем движка
func IsInputError(err error) bool {
	return errors.Is(err, ErrInvalidDuration) ||
		errors.Is(err, ErrInvalidDayWindow) ||
		errors.Is(err, ErrInvalidBooking) ||
		errors.Is(err, types.ErrInvalidTimeString)
}
