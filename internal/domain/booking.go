package domain

import (
	"time"

	"github.com/m04kA/SMC-SlotOptimizer/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
	StatusNoShow    BookingStatus = "no_show"
)

// Booking represents a therapist appointment on a single workday
type Booking struct {
	ID              string
	TherapistID     string
	Date            time.Time
	Start           types.TimeString
	End             types.TimeString // может быть пустым, тогда конец = Start + DurationMinutes
	DurationMinutes int              // может быть 0, тогда длительность = End - Start
	Service         string
	Notes           *string
	Status          BookingStatus
}

// IsActive returns true if the booking occupies therapist time
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled && b.Status != StatusNoShow
}

// WithTherapist returns a copy of the booking assigned to another therapist
func (b Booking) WithTherapist(therapistID string) Booking {
	b.TherapistID = therapistID
	return b
}

// DayBookingsFilter фильтр для получения бронирований на день
type DayBookingsFilter struct {
	Date            time.Time // Обязательный параметр
	TherapistIDs    []string  // Пусто - все терапевты
	IncludeInactive bool      // Включать ли отменённые и no-show
}

// GroupByTherapist группирует бронирования по терапевту.
// Порядок терапевтов - порядок первого появления во входном списке.
func GroupByTherapist(bookings []Booking) (order []string, groups map[string][]Booking) {
	groups = make(map[string][]Booking)
	for _, b := range bookings {
		if _, ok := groups[b.TherapistID]; !ok {
			order = append(order, b.TherapistID)
		}
		groups[b.TherapistID] = append(groups[b.TherapistID], b)
	}
	return order, groups
}
