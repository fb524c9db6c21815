package slotengine

import (
	"fmt"
	"sort"

	"github.com/m04kA/SMC-SlotOptimizer/internal/domain"
	"github.com/m04kA/SMC-SlotOptimizer/pkg/types"
)

// Interval полуоткрытый интервал [Start, End) в минутах от полуночи
type Interval struct {
	Start int
	End   int
}

// Contains true, если other целиком лежит внутри i
func (i Interval) Contains(other Interval) bool {
	return i.Start <= other.Start && other.End <= i.End
}

// BookingInterval бронирование, приведённое к минутам
type BookingInterval struct {
	ID              string
	TherapistID     string
	Start           int
	End             int
	DurationMinutes int
}

// Interval возвращает занятый интервал
func (b BookingInterval) Interval() Interval {
	return Interval{Start: b.Start, End: b.End}
}

// NewBookingInterval разбирает время бронирования.
// Если End пуст, он вычисляется из DurationMinutes; если DurationMinutes == 0, длительность берётся из End.
func NewBookingInterval(b domain.Booking) (BookingInterval, error) {
	start, err := b.Start.Minutes()
	if err != nil {
		return BookingInterval{}, err
	}

	var end int
	switch {
	case !b.End.IsZero():
		end, err = b.End.Minutes()
		if err != nil {
			return BookingInterval{}, err
		}
	case b.DurationMinutes > 0:
		end = start + b.DurationMinutes
	default:
		return BookingInterval{}, fmt.Errorf("%w: booking %s has neither end nor duration", ErrInvalidBooking, b.ID)
	}

	if start >= end || end > types.MinutesPerDay {
		return BookingInterval{}, fmt.Errorf("%w: booking %s spans %s-%s", ErrInvalidBooking, b.ID, b.Start, types.FromMinutes(end))
	}

	duration := end - start
	if b.DurationMinutes != 0 && b.DurationMinutes != duration {
		return BookingInterval{}, fmt.Errorf("%w: booking %s lasts %d min but declares %d",
			ErrInvalidBooking, b.ID, duration, b.DurationMinutes)
	}

	return BookingInterval{
		ID:              b.ID,
		TherapistID:     b.TherapistID,
		Start:           start,
		End:             end,
		DurationMinutes: duration,
	}, nil
}

// ToIntervals переводит бронирования в минуты и сортирует по началу.
// Сортировка стабильная: при равном начале сохраняется входной порядок.
func ToIntervals(bookings []domain.Booking) ([]BookingInterval, error) {
	intervals := make([]BookingInterval, 0, len(bookings))
	for _, b := range bookings {
		bi, err := NewBookingInterval(b)
		if err != nil {
			return nil, err
		}
		intervals = append(intervals, bi)
	}

	sortByStart(intervals)
	return intervals, nil
}

func sortByStart(intervals []BookingInterval) {
	sort.SliceStable(intervals, func(i, j int) bool {
		return intervals[i].Start < intervals[j].Start
	})
}

// hasOverlap проверяет расписание на двойное бронирование. Ожидает отсортированный по началу слайс.
func hasOverlap(sorted []BookingInterval) bool {
	if len(sorted) < 2 {
		return false
	}
	end := sorted[0].End
	for _, iv := range sorted[1:] {
		if iv.Start < end {
			return true
		}
		if iv.End > end {
			end = iv.End
		}
	}
	return false
}
