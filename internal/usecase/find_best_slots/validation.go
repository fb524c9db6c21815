package find_best_slots

import (
	"fmt"

	"github.com/m04kA/SMC-SlotOptimizer/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Bookings == nil && req.Date.IsZero() {
		return fmt.Errorf("%w: either date or bookings is required", ErrInvalidInput)
	}

	switch target := req.Target.(type) {
	case domain.NewSlotRequest:
		if err := validateDuration(target.DurationMinutes); err != nil {
			return err
		}
		if target.TherapistID != nil && *target.TherapistID == "" {
			return fmt.Errorf("%w: therapistId must not be empty", ErrInvalidInput)
		}
	case domain.EditBookingRequest:
		if target.BookingID == "" {
			return fmt.Errorf("%w: bookingId is required", ErrInvalidInput)
		}
		if target.DurationMinutes != 0 {
			if err := validateDuration(target.DurationMinutes); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("%w: target is required", ErrInvalidInput)
	}

	if req.Params.MinGapMinutes < 0 || req.Params.MinGapMinutes > domain.MaxMinGapMinutes {
		return fmt.Errorf("%w: minGap must be between 0 and %d", ErrInvalidInput, domain.MaxMinGapMinutes)
	}

	return nil
}

func validateDuration(duration int) error {
	if duration < domain.MinDurationMinutes || duration > domain.MaxDurationMinutes {
		return fmt.Errorf("%w: duration must be between %d and %d minutes",
			ErrInvalidInput, domain.MinDurationMinutes, domain.MaxDurationMinutes)
	}
	return nil
}
