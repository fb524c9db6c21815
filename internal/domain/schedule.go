package domain

import "time"

// DaySchedule терапевты и их бронирования на один день
type DaySchedule struct {
	Date       time.Time
	Therapists []Therapist
	Bookings   []Booking
}

// TherapistIDs returns therapists in roster order followed by therapists
// that only appear in bookings, in order of first appearance.
func (s *DaySchedule) TherapistIDs() []string {
	seen := make(map[string]struct{}, len(s.Therapists))
	ids := make([]string, 0, len(s.Therapists))
	for _, t := range s.Therapists {
		if _, ok := seen[t.ID]; ok {
			continue
		}
		seen[t.ID] = struct{}{}
		ids = append(ids, t.ID)
	}
	for _, b := range s.Bookings {
		if _, ok := seen[b.TherapistID]; ok {
			continue
		}
		seen[b.TherapistID] = struct{}{}
		ids = append(ids, b.TherapistID)
	}
	return ids
}

// HasTherapist returns true if the therapist is on the roster or has bookings that day
func (s *DaySchedule) HasTherapist(id string) bool {
	for _, tid := range s.TherapistIDs() {
		if tid == id {
			return true
		}
	}
	return false
}

// FindBooking returns the booking with the given ID
func (s *DaySchedule) FindBooking(id string) (Booking, bool) {
	for _, b := range s.Bookings {
		if b.ID == id {
			return b, true
		}
	}
	return Booking{}, false
}

// ActiveBookingsOf returns the therapist's active bookings, skipping excludeID
func (s *DaySchedule) ActiveBookingsOf(therapistID, excludeID string) []Booking {
	result := make([]Booking, 0)
	for _, b := range s.Bookings {
		if b.TherapistID != therapistID || !b.IsActive() {
			continue
		}
		if excludeID != "" && b.ID == excludeID {
			continue
		}
		result = append(result, b)
	}
	return result
}

// ActiveBookings returns all active bookings of the day
func (s *DaySchedule) ActiveBookings() []Booking {
	result := make([]Booking, 0, len(s.Bookings))
	for _, b := range s.Bookings {
		if b.IsActive() {
			result = append(result, b)
		}
	}
	return result
}

// NewInlineSchedule строит расписание только из бронирований, без ростера терапевтов
func NewInlineSchedule(bookings []Booking) *DaySchedule {
	s := &DaySchedule{Bookings: bookings}
	for _, b := range bookings {
		if !b.Date.IsZero() {
			s.Date = b.Date
			break
		}
	}
	return s
}
