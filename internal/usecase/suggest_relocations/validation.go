package suggest_relocations

import (
	"fmt"

	"github.com/m04kA/SMC-SlotOptimizer/internal/domain"
	"github.com/m04kA/SMC-SlotOptimizer/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if req.DurationMinutes < domain.MinDurationMinutes || req.DurationMinutes > domain.MaxDurationMinutes {
		return fmt.Errorf("%w: duration must be between %d and %d minutes",
			ErrInvalidInput, domain.MinDurationMinutes, domain.MaxDurationMinutes)
	}
	if err := validateOptionalTime("windowStart", req.WindowStart); err != nil {
		return err
	}
	if err := validateOptionalTime("windowEnd", req.WindowEnd); err != nil {
		return err
	}
	if !req.WindowStart.IsZero() && !req.WindowEnd.IsZero() && !req.WindowStart.IsBefore(req.WindowEnd) {
		return fmt.Errorf("%w: windowStart must be before windowEnd", ErrInvalidInput)
	}
	return nil
}

func validateOptionalTime(name string, t types.TimeString) error {
	if t.IsZero() {
		return nil
	}
	if err := t.Validate(); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidInput, name, err)
	}
	return nil
}
