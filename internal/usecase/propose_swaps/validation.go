package propose_swaps

import (
	"fmt"

	"github.com/m04kA/SMC-SlotOptimizer/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Bookings == nil && req.Date.IsZero() {
		return fmt.Errorf("%w: either date or bookings is required", ErrInvalidInput)
	}
	if req.DurationMinutes < domain.MinDurationMinutes || req.DurationMinutes > domain.MaxDurationMinutes {
		return fmt.Errorf("%w: duration must be between %d and %d minutes",
			ErrInvalidInput, domain.MinDurationMinutes, domain.MaxDurationMinutes)
	}
	if req.Params.MinGapMinutes < 0 || req.Params.MinGapMinutes > domain.MaxMinGapMinutes {
		return fmt.Errorf("%w: minGap must be between 0 and %d", ErrInvalidInput, domain.MaxMinGapMinutes)
	}
	return nil
}

// checkLimits проверяет, что перебор пар укладывается в ограничения
func checkLimits(bookings []domain.Booking, limits Limits) error {
	order, groups := domain.GroupByTherapist(bookings)

	if limits.MaxTherapists > 0 && len(order) > limits.MaxTherapists {
		return fmt.Errorf("%w: %d therapists, limit %d", ErrTooManyBookings, len(order), limits.MaxTherapists)
	}
	if limits.MaxBookingsPerTherapist > 0 {
		for _, id := range order {
			if n := len(groups[id]); n > limits.MaxBookingsPerTherapist {
				return fmt.Errorf("%w: therapist %s has %d bookings, limit %d",
					ErrTooManyBookings, id, n, limits.MaxBookingsPerTherapist)
			}
		}
	}
	return nil
}
