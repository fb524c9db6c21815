package schedule

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotOptimizer/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SlotOptimizer/internal/infra/storage/booking"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeBookingRepo struct {
	bookings []domain.Booking
	err      error
	filter   domain.DayBookingsFilter
}

func (r *fakeBookingRepo) GetByID(_ context.Context, id string) (*domain.Booking, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, b := range r.bookings {
		if b.ID == id {
			return &b, nil
		}
	}
	return nil, fmt.Errorf("%w: id=%s", bookingRepo.ErrBookingNotFound, id)
}

func (r *fakeBookingRepo) GetByDate(_ context.Context, filter domain.DayBookingsFilter) ([]domain.Booking, error) {
	r.filter = filter
	return r.bookings, r.err
}

type fakeTherapistRepo struct {
	therapists []domain.Therapist
	err        error
}

func (r *fakeTherapistRepo) ListActive(context.Context) ([]domain.Therapist, error) {
	return r.therapists, r.err
}

type fakeTxManager struct {
	calls int
}

func (m *fakeTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

func TestGetDaySchedule(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	bookings := &fakeBookingRepo{bookings: []domain.Booking{{ID: "a1", TherapistID: "A"}}}
	therapists := &fakeTherapistRepo{therapists: []domain.Therapist{{ID: "A"}, {ID: "B"}}}
	tx := &fakeTxManager{}

	svc := NewService(bookings, therapists, tx, nopLogger{})
	schedule, err := svc.GetDaySchedule(context.Background(), day)

	require.NoError(t, err)
	assert.Equal(t, 1, tx.calls)
	assert.Equal(t, day, bookings.filter.Date)
	assert.False(t, bookings.filter.IncludeInactive)
	assert.Len(t, schedule.Therapists, 2)
	assert.Len(t, schedule.Bookings, 1)
	assert.Equal(t, day, schedule.Date)
}

func TestGetDaySchedule_Errors(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	svc := NewService(&fakeBookingRepo{}, &fakeTherapistRepo{}, &fakeTxManager{}, nopLogger{})
	_, err := svc.GetDaySchedule(context.Background(), time.Time{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	svc = NewService(&fakeBookingRepo{err: errors.New("db down")}, &fakeTherapistRepo{}, &fakeTxManager{}, nopLogger{})
	_, err = svc.GetDaySchedule(context.Background(), day)
	assert.ErrorIs(t, err, ErrInternal)

	svc = NewService(&fakeBookingRepo{}, &fakeTherapistRepo{err: errors.New("db down")}, &fakeTxManager{}, nopLogger{})
	_, err = svc.GetDaySchedule(context.Background(), day)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestGetBooking(t *testing.T) {
	repo := &fakeBookingRepo{bookings: []domain.Booking{{ID: "a1", TherapistID: "A", Status: domain.StatusCancelled}}}
	svc := NewService(repo, &fakeTherapistRepo{}, &fakeTxManager{}, nopLogger{})

	booking, err := svc.GetBooking(context.Background(), "a1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, booking.Status)

	_, err = svc.GetBooking(context.Background(), "zz")
	assert.ErrorIs(t, err, ErrBookingNotFound)

	_, err = svc.GetBooking(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	svc = NewService(&fakeBookingRepo{err: errors.New("db down")}, &fakeTherapistRepo{}, &fakeTxManager{}, nopLogger{})
	_, err = svc.GetBooking(context.Background(), "a1")
	assert.ErrorIs(t, err, ErrInternal)
}
