package suggest_relocations

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotOptimizer/internal/domain"
	"github.com/m04kA/SMC-SlotOptimizer/internal/integrations/matchingoptimizer"
	"github.com/m04kA/SMC-SlotOptimizer/internal/slotengine"
	"github.com/m04kA/SMC-SlotOptimizer/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeScheduleService struct {
	schedule *domain.DaySchedule
	err      error
}

func (s *fakeScheduleService) GetDaySchedule(_ context.Context, date time.Time) (*domain.DaySchedule, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.schedule.Date = date
	return s.schedule, nil
}

type fakeOptimizer struct {
	received *matchingoptimizer.OptimizeRequest
	resp     *matchingoptimizer.OptimizeResponse
	err      error
}

func (o *fakeOptimizer) Optimize(_ context.Context, req *matchingoptimizer.OptimizeRequest) (*matchingoptimizer.OptimizeResponse, error) {
	o.received = req
	return o.resp, o.err
}

var monday = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func daySchedule() *domain.DaySchedule {
	cancelled := domain.Booking{ID: "a9", TherapistID: "A", Start: "15:00", DurationMinutes: 60, Status: domain.StatusCancelled}
	return &domain.DaySchedule{
		Therapists: []domain.Therapist{
			{ID: "A", Availability: []domain.AvailabilityWindow{
				{Weekday: time.Monday, Start: "09:00", End: "13:00"},
				{Weekday: time.Monday, Start: "14:00", End: "19:00"},
			}},
			{ID: "B", Availability: []domain.AvailabilityWindow{{Weekday: time.Tuesday, Start: "08:00", End: "18:00"}}},
			{ID: "C"},
		},
		Bookings: []domain.Booking{
			{ID: "a1", TherapistID: "A", Start: "09:00", End: "10:30", Status: domain.StatusConfirmed},
			cancelled,
		},
	}
}

func newUseCase(svc ScheduleService, opt OptimizerClient) *UseCase {
	return NewUseCase(svc, opt, slotengine.DefaultParams(), nopLogger{})
}

func TestExecute_BuildsRequestAndMapsResponse(t *testing.T) {
	opt := &fakeOptimizer{resp: &matchingoptimizer.OptimizeResponse{
		Slots: []matchingoptimizer.Gap{{TherapistID: "C", Start: 480, End: 570}},
		Relocations: []matchingoptimizer.Relocation{
			{BookingID: "a1", FromTherapistID: "A", ToTherapistID: "C", Slot: 600},
		},
		TotalWeight: 2.5,
	}}
	uc := newUseCase(&fakeScheduleService{schedule: daySchedule()}, opt)

	resp, err := uc.Execute(context.Background(), &Request{Date: monday, DurationMinutes: 90})
	require.NoError(t, err)

	sent := opt.received
	require.NotNil(t, sent)
	require.Len(t, sent.Therapists, 2, "B does not work on Monday")
	assert.Equal(t, "A", sent.Therapists[0].ID)
	assert.Equal(t, []matchingoptimizer.Window{{StartTime: 540, EndTime: 780}, {StartTime: 840, EndTime: 1140}}, sent.Therapists[0].Availability)
	assert.Equal(t, []matchingoptimizer.Window{{StartTime: 480, EndTime: 1080}}, sent.Therapists[1].Availability)

	require.Len(t, sent.Bookings, 1, "cancelled bookings are not sent")
	assert.Equal(t, matchingoptimizer.Booking{ID: "a1", TherapistID: "A", StartTime: 540, EndTime: 630, DurationMinutes: 90}, sent.Bookings[0])
	assert.Equal(t, matchingoptimizer.NewRequest{Duration: 90, WindowStart: 480, WindowEnd: 1140}, sent.NewRequest)

	assert.Equal(t, monday, resp.Date)
	assert.Equal(t, []Gap{{TherapistID: "C", Start: "08:00", End: "09:30"}}, resp.Gaps)
	assert.Equal(t, []Relocation{{BookingID: "a1", FromTherapistID: "A", ToTherapistID: "C", Slot: "10:00"}}, resp.Relocations)
	assert.Equal(t, 2.5, resp.TotalWeight)
}

func TestExecute_ExplicitWindow(t *testing.T) {
	opt := &fakeOptimizer{resp: &matchingoptimizer.OptimizeResponse{}}
	uc := newUseCase(&fakeScheduleService{schedule: daySchedule()}, opt)

	_, err := uc.Execute(context.Background(), &Request{
		Date:            monday,
		DurationMinutes: 60,
		WindowStart:     types.TimeString("12:00"),
		WindowEnd:       types.TimeString("16:00"),
	})
	require.NoError(t, err)
	assert.Equal(t, 720, opt.received.NewRequest.WindowStart)
	assert.Equal(t, 960, opt.received.NewRequest.WindowEnd)
}

func TestExecute_NoTherapistsWorking(t *testing.T) {
	opt := &fakeOptimizer{}
	schedule := &domain.DaySchedule{Therapists: []domain.Therapist{
		{ID: "B", Availability: []domain.AvailabilityWindow{{Weekday: time.Tuesday, Start: "08:00", End: "18:00"}}},
	}}
	uc := newUseCase(&fakeScheduleService{schedule: schedule}, opt)

	resp, err := uc.Execute(context.Background(), &Request{Date: monday, DurationMinutes: 60})
	require.NoError(t, err)
	assert.Nil(t, opt.received)
	assert.Empty(t, resp.Gaps)
	assert.Empty(t, resp.Relocations)
}

func TestExecute_Errors(t *testing.T) {
	tests := []struct {
		name    string
		svc     ScheduleService
		opt     OptimizerClient
		req     *Request
		wantErr error
	}{
		{
			name:    "disabled",
			svc:     &fakeScheduleService{schedule: daySchedule()},
			req:     &Request{Date: monday, DurationMinutes: 60},
			wantErr: ErrOptimizerDisabled,
		},
		{
			name:    "missing date",
			svc:     &fakeScheduleService{schedule: daySchedule()},
			opt:     &fakeOptimizer{},
			req:     &Request{DurationMinutes: 60},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "inverted window",
			svc:     &fakeScheduleService{schedule: daySchedule()},
			opt:     &fakeOptimizer{},
			req:     &Request{Date: monday, DurationMinutes: 60, WindowStart: "16:00", WindowEnd: "12:00"},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "malformed window",
			svc:     &fakeScheduleService{schedule: daySchedule()},
			opt:     &fakeOptimizer{},
			req:     &Request{Date: monday, DurationMinutes: 60, WindowStart: "noon"},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "schedule failure",
			svc:     &fakeScheduleService{err: errors.New("db down")},
			opt:     &fakeOptimizer{},
			req:     &Request{Date: monday, DurationMinutes: 60},
			wantErr: ErrInternal,
		},
		{
			name:    "optimizer rejects",
			svc:     &fakeScheduleService{schedule: daySchedule()},
			opt:     &fakeOptimizer{err: fmt.Errorf("%w: bad window", matchingoptimizer.ErrInvalidRequest)},
			req:     &Request{Date: monday, DurationMinutes: 60},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "optimizer down",
			svc:     &fakeScheduleService{schedule: daySchedule()},
			opt:     &fakeOptimizer{err: matchingoptimizer.ErrUnavailable},
			req:     &Request{Date: monday, DurationMinutes: 60},
			wantErr: ErrOptimizerUnavailable,
		},
		{
			name: "optimizer returns garbage",
			svc:  &fakeScheduleService{schedule: daySchedule()},
			opt: &fakeOptimizer{resp: &matchingoptimizer.OptimizeResponse{
				Slots: []matchingoptimizer.Gap{{TherapistID: "A", Start: 2000, End: 2100}},
			}},
			req:     &Request{Date: monday, DurationMinutes: 60},
			wantErr: ErrOptimizerUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newUseCase(tt.svc, tt.opt)
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
