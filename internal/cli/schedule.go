package cli

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SlotOptimizer/internal/domain"
)

// fileSchedule serves a day file the way the database-backed schedule service does.
// Undated bookings belong to every requested day.
type fileSchedule struct {
	therapists []domain.Therapist
	bookings   []domain.Booking
}

func newFileSchedule(day *DayFile) (*fileSchedule, error) {
	therapists, err := day.DomainTherapists()
	if err != nil {
		return nil, err
	}
	bookings, err := day.DomainBookings()
	if err != nil {
		return nil, err
	}
	return &fileSchedule{therapists: therapists, bookings: bookings}, nil
}

func (s *fileSchedule) GetDaySchedule(_ context.Context, date time.Time) (*domain.DaySchedule, error) {
	bookings := make([]domain.Booking, 0, len(s.bookings))
	for _, b := range s.bookings {
		if !b.Date.IsZero() && !sameDay(b.Date, date) {
			continue
		}
		if !b.IsActive() {
			continue
		}
		bookings = append(bookings, b)
	}

	return &domain.DaySchedule{
		Date:       date,
		Therapists: s.therapists,
		Bookings:   bookings,
	}, nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
