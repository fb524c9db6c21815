package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGroupByTherapist_KeepsFirstAppearanceOrder(t *testing.T) {
	bookings := []Booking{
		{ID: "b1", TherapistID: "B"},
		{ID: "a1", TherapistID: "A"},
		{ID: "b2", TherapistID: "B"},
	}

	order, groups := GroupByTherapist(bookings)

	assert.Equal(t, []string{"B", "A"}, order)
	assert.Len(t, groups["B"], 2)
	assert.Equal(t, "b2", groups["B"][1].ID)
	assert.Len(t, groups["A"], 1)
}

func TestBooking_WithTherapistDoesNotMutate(t *testing.T) {
	b := Booking{ID: "a1", TherapistID: "A"}
	moved := b.WithTherapist("B")

	assert.Equal(t, "A", b.TherapistID)
	assert.Equal(t, "B", moved.TherapistID)
}

func TestBooking_IsActive(t *testing.T) {
	assert.True(t, (&Booking{Status: StatusConfirmed}).IsActive())
	assert.True(t, (&Booking{}).IsActive())
	assert.False(t, (&Booking{Status: StatusCancelled}).IsActive())
	assert.False(t, (&Booking{Status: StatusNoShow}).IsActive())
}

func TestTherapist_WindowsFor(t *testing.T) {
	th := Therapist{
		ID: "A",
		Availability: []AvailabilityWindow{
			{Weekday: time.Monday, Start: "08:00", End: "12:00"},
			{Weekday: time.Monday, Start: "13:00", End: "18:00"},
			{Weekday: time.Tuesday, Start: "10:00", End: "16:00"},
		},
	}

	assert.Len(t, th.WindowsFor(time.Monday), 2)
	assert.True(t, th.WorksOn(time.Tuesday))
	assert.False(t, th.WorksOn(time.Sunday))
}

func TestDaySchedule(t *testing.T) {
	s := &DaySchedule{
		Therapists: []Therapist{{ID: "A"}, {ID: "C"}},
		Bookings: []Booking{
			{ID: "a1", TherapistID: "A", Status: StatusConfirmed},
			{ID: "b1", TherapistID: "B", Status: StatusPending},
			{ID: "a2", TherapistID: "A", Status: StatusCancelled},
			{ID: "a3", TherapistID: "A", Status: StatusConfirmed},
		},
	}

	assert.Equal(t, []string{"A", "C", "B"}, s.TherapistIDs())
	assert.True(t, s.HasTherapist("B"))
	assert.False(t, s.HasTherapist("D"))

	b, ok := s.FindBooking("a2")
	assert.True(t, ok)
	assert.Equal(t, StatusCancelled, b.Status)
	_, ok = s.FindBooking("zz")
	assert.False(t, ok)

	active := s.ActiveBookingsOf("A", "a3")
	assert.Len(t, active, 1)
	assert.Equal(t, "a1", active[0].ID)
	assert.Len(t, s.ActiveBookings(), 3)
}

func TestNewInlineSchedule_TakesDateFromBookings(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	s := NewInlineSchedule([]Booking{{ID: "a1"}, {ID: "a2", Date: day}})

	assert.Equal(t, day, s.Date)
	assert.Empty(t, s.Therapists)
}
