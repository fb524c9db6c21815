package domain

import "github.com/m04kA/SMC-SlotOptimizer/pkg/types"

// Default engine parameters
const (
	DefaultMinGapMinutes = 60
	DefaultStepMinutes   = 15
	DefaultDayStart      = types.TimeString("08:00")
	DefaultDayEnd        = types.TimeString("18:00")
)

// Business validation constants
const (
	MinDurationMinutes = 5
	MaxDurationMinutes = 480 // 8 hours
	MaxMinGapMinutes   = 480
)

// DateFormat формат даты дня, YYYY-MM-DD
const DateFormat = "2006-01-02"

// InactiveStatuses статусы, не занимающие время терапевта
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
	StatusNoShow,
}
