package get_day_schedule

import (
	"github.com/m04kA/SMC-SlotOptimizer/internal/api/handlers"
	"github.com/m04kA/SMC-SlotOptimizer/internal/domain"
)

// DayScheduleResponse HTTP response model
type DayScheduleResponse struct {
	Date       string                `json:"date"`
	Therapists []TherapistResponse   `json:"therapists"`
	Bookings   []handlers.BookingDTO `json:"bookings"`
}

type TherapistResponse struct {
	ID           string               `json:"id"`
	Name         string               `json:"name,omitempty"`
	Availability []AvailabilityWindow `json:"availability"`
}

type AvailabilityWindow struct {
	Weekday string `json:"weekday"`
	Start   string `json:"start"`
	End     string `json:"end"`
}

// FromDomain конвертирует расписание дня в HTTP response.
// therapistID != "" оставляет только бронирования этого терапевта.
func FromDomain(schedule *domain.DaySchedule, therapistID string) *DayScheduleResponse {
	therapists := make([]TherapistResponse, 0, len(schedule.Therapists))
	for _, t := range schedule.Therapists {
		if therapistID != "" && t.ID != therapistID {
			continue
		}
		windows := make([]AvailabilityWindow, len(t.Availability))
		for i, w := range t.Availability {
			windows[i] = AvailabilityWindow{
				Weekday: w.Weekday.String(),
				Start:   w.Start.String(),
				End:     w.End.String(),
			}
		}
		therapists = append(therapists, TherapistResponse{ID: t.ID, Name: t.Name, Availability: windows})
	}

	bookings := make([]handlers.BookingDTO, 0, len(schedule.Bookings))
	for _, b := range schedule.Bookings {
		if therapistID != "" && b.TherapistID != therapistID {
			continue
		}
		bookings = append(bookings, handlers.FromDomainBooking(b))
	}

	return &DayScheduleResponse{
		Date:       schedule.Date.Format(domain.DateFormat),
		Therapists: therapists,
		Bookings:   bookings,
	}
}
