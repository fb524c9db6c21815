package find_best_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotOptimizer/internal/domain"
	"github.com/m04kA/SMC-SlotOptimizer/internal/slotengine"
	"github.com/m04kA/SMC-SlotOptimizer/pkg/ptr"
	"github.com/m04kA/SMC-SlotOptimizer/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeMetrics struct {
	observed []string
}

func (m *fakeMetrics) ObserveEngine(operation string, _ time.Duration) {
	m.observed = append(m.observed, operation)
}

type fakeScheduleService struct {
	schedule *domain.DaySchedule
	err      error
	calls    int
}

func (s *fakeScheduleService) GetDaySchedule(_ context.Context, date time.Time) (*domain.DaySchedule, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	s.schedule.Date = date
	return s.schedule, nil
}

var monday = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func booking(id, therapistID, start, end string) domain.Booking {
	return domain.Booking{
		ID:          id,
		TherapistID: therapistID,
		Start:       types.TimeString(start),
		End:         types.TimeString(end),
		Status:      domain.StatusConfirmed,
	}
}

func newUseCase(svc ScheduleService, m Metrics) *UseCase {
	return NewUseCase(svc, slotengine.NewEngine(slotengine.Options{}), slotengine.DefaultParams(), m, nopLogger{})
}

func TestExecute_InlineGroupsByTherapist(t *testing.T) {
	svc := &fakeScheduleService{}
	m := &fakeMetrics{}
	uc := newUseCase(svc, m)

	resp, err := uc.Execute(context.Background(), &Request{
		Bookings: []domain.Booking{
			booking("1", "A", "09:00", "10:00"),
			booking("b1", "B", "08:00", "18:00"),
			booking("2", "A", "12:00", "14:00"),
			booking("3", "A", "15:30", "16:15"),
		},
		Target: domain.NewSlotRequest{DurationMinutes: 90},
	})
	require.NoError(t, err)

	assert.Zero(t, svc.calls)
	assert.Equal(t, []string{"best_slots"}, m.observed)
	assert.Equal(t, 90, resp.DurationMinutes)
	require.Len(t, resp.Therapists, 2)

	assert.Equal(t, "A", resp.Therapists[0].TherapistID)
	assert.Equal(t, []string{"10:00", "10:30", "14:00", "16:15", "16:30"}, resp.Therapists[0].Slots.Strict)
	assert.Equal(t, []string{"10:15"}, resp.Therapists[0].Slots.Bad)

	assert.Equal(t, "B", resp.Therapists[1].TherapistID)
	assert.Zero(t, resp.Therapists[1].Slots.Total())
}

func TestExecute_FromScheduleSkipsDayOff(t *testing.T) {
	svc := &fakeScheduleService{schedule: &domain.DaySchedule{
		Therapists: []domain.Therapist{
			{ID: "A", Availability: []domain.AvailabilityWindow{{Weekday: time.Monday, Start: "08:00", End: "18:00"}}},
			{ID: "C", Availability: []domain.AvailabilityWindow{{Weekday: time.Wednesday, Start: "08:00", End: "18:00"}}},
			{ID: "D"},
		},
		Bookings: []domain.Booking{booking("a1", "A", "08:00", "09:00")},
	}}
	uc := newUseCase(svc, &fakeMetrics{})

	resp, err := uc.Execute(context.Background(), &Request{
		Date:   monday,
		Target: domain.NewSlotRequest{DurationMinutes: 60},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, svc.calls)
	assert.Equal(t, monday, resp.Date)
	require.Len(t, resp.Therapists, 2)
	assert.Equal(t, "A", resp.Therapists[0].TherapistID)
	assert.Equal(t, "D", resp.Therapists[1].TherapistID)
	assert.Contains(t, resp.Therapists[0].Slots.Strict, "09:00")
}

func TestExecute_SingleTherapist(t *testing.T) {
	svc := &fakeScheduleService{schedule: &domain.DaySchedule{
		Therapists: []domain.Therapist{{ID: "A"}, {ID: "B"}},
	}}
	uc := newUseCase(svc, &fakeMetrics{})

	resp, err := uc.Execute(context.Background(), &Request{
		Date:   monday,
		Target: domain.NewSlotRequest{DurationMinutes: 60, TherapistID: ptr.Ptr("B")},
	})
	require.NoError(t, err)
	require.Len(t, resp.Therapists, 1)
	assert.Equal(t, "B", resp.Therapists[0].TherapistID)

	_, err = uc.Execute(context.Background(), &Request{
		Date:   monday,
		Target: domain.NewSlotRequest{DurationMinutes: 60, TherapistID: ptr.Ptr("Z")},
	})
	assert.ErrorIs(t, err, ErrTherapistNotFound)
}

func TestExecute_EditExcludesBooking(t *testing.T) {
	svc := &fakeScheduleService{schedule: &domain.DaySchedule{
		Bookings: []domain.Booking{
			booking("a1", "A", "09:00", "10:30"),
			booking("a2", "A", "12:00", "13:00"),
			booking("b1", "B", "08:00", "16:30"),
		},
	}}
	uc := newUseCase(svc, &fakeMetrics{})

	resp, err := uc.Execute(context.Background(), &Request{
		Date:   monday,
		Target: domain.EditBookingRequest{BookingID: "a1"},
	})
	require.NoError(t, err)

	assert.Equal(t, 90, resp.DurationMinutes)
	assert.Equal(t, "a1", resp.EditedBookingID)
	require.Len(t, resp.Therapists, 2)

	// без a1 у A свободно 08:00-12:00
	assert.Contains(t, resp.Therapists[0].Slots.Strict, "08:00")
	assert.Contains(t, resp.Therapists[0].Slots.Strict, "10:30")
	assert.Equal(t, []string{"16:30"}, resp.Therapists[1].Slots.Strict)
}

func TestExecute_EditErrors(t *testing.T) {
	cancelled := booking("a9", "A", "09:00", "10:00")
	cancelled.Status = domain.StatusCancelled

	svc := &fakeScheduleService{schedule: &domain.DaySchedule{
		Bookings: []domain.Booking{booking("a1", "A", "09:00", "10:30"), cancelled},
	}}
	uc := newUseCase(svc, &fakeMetrics{})

	_, err := uc.Execute(context.Background(), &Request{Date: monday, Target: domain.EditBookingRequest{BookingID: "zz"}})
	assert.ErrorIs(t, err, ErrBookingNotFound)

	_, err = uc.Execute(context.Background(), &Request{Date: monday, Target: domain.EditBookingRequest{BookingID: "a9"}})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  *Request
	}{
		{name: "no source", req: &Request{Target: domain.NewSlotRequest{DurationMinutes: 60}}},
		{name: "no target", req: &Request{Date: monday}},
		{name: "short duration", req: &Request{Date: monday, Target: domain.NewSlotRequest{DurationMinutes: 2}}},
		{name: "long duration", req: &Request{Date: monday, Target: domain.NewSlotRequest{DurationMinutes: 600}}},
		{name: "empty therapist", req: &Request{Date: monday, Target: domain.NewSlotRequest{DurationMinutes: 60, TherapistID: ptr.Ptr("")}}},
		{name: "empty booking id", req: &Request{Date: monday, Target: domain.EditBookingRequest{}}},
		{name: "negative min gap", req: &Request{Date: monday, Target: domain.NewSlotRequest{DurationMinutes: 60}, Params: slotengine.Params{MinGapMinutes: -5}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newUseCase(&fakeScheduleService{}, &fakeMetrics{})
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_EngineInputErrors(t *testing.T) {
	uc := newUseCase(&fakeScheduleService{}, &fakeMetrics{})

	_, err := uc.Execute(context.Background(), &Request{
		Bookings: []domain.Booking{booking("1", "A", "9am", "10:00")},
		Target:   domain.NewSlotRequest{DurationMinutes: 60},
	})
	require.ErrorIs(t, err, ErrInvalidInput)
	var parseErr *types.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "9am", parseErr.Value)

	_, err = uc.Execute(context.Background(), &Request{
		Bookings: []domain.Booking{},
		Target:   domain.NewSlotRequest{DurationMinutes: 60, TherapistID: ptr.Ptr("A")},
		Params:   slotengine.Params{DayStart: "18:00", DayEnd: "08:00"},
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_ScheduleFailure(t *testing.T) {
	uc := newUseCase(&fakeScheduleService{err: errors.New("db down")}, &fakeMetrics{})

	_, err := uc.Execute(context.Background(), &Request{Date: monday, Target: domain.NewSlotRequest{DurationMinutes: 60}})
	assert.ErrorIs(t, err, ErrInternal)
}
