package handlers

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SlotOptimizer/internal/domain"
	"github.com/m04kA/SMC-SlotOptimizer/pkg/types"
)

// BookingDTO бронирование в теле запросов и ответов
type BookingDTO struct {
	ID              string  `json:"id"`
	TherapistID     string  `json:"therapistId"`
	Date            string  `json:"date,omitempty"`    // "2025-10-15"
	StartTime       string  `json:"startTime"`         // "10:00"
	EndTime         string  `json:"endTime,omitempty"` // пусто - startTime + durationMinutes
	DurationMinutes int     `json:"durationMinutes,omitempty"`
	Service         string  `json:"service,omitempty"`
	Notes           *string `json:"notes,omitempty"`
	Status          string  `json:"status,omitempty"`
}

// ToDomain конвертирует DTO в доменное бронирование.
// Время не валидируется здесь: ошибки разбора возвращает движок.
func (b BookingDTO) ToDomain() (domain.Booking, error) {
	var date time.Time
	if b.Date != "" {
		parsed, err := time.Parse(domain.DateFormat, b.Date)
		if err != nil {
			return domain.Booking{}, fmt.Errorf("booking %s: %w", b.ID, ErrInvalidDate)
		}
		date = parsed
	}

	status := domain.BookingStatus(b.Status)
	if status == "" {
		status = domain.StatusConfirmed
	}

	return domain.Booking{
		ID:              b.ID,
		TherapistID:     b.TherapistID,
		Date:            date,
		Start:           types.TimeString(b.StartTime),
		End:             types.TimeString(b.EndTime),
		DurationMinutes: b.DurationMinutes,
		Service:         b.Service,
		Notes:           b.Notes,
		Status:          status,
	}, nil
}

// ToDomainBookings конвертирует список; nil превращается в пустой список
func ToDomainBookings(dtos []BookingDTO) ([]domain.Booking, error) {
	bookings := make([]domain.Booking, 0, len(dtos))
	for _, dto := range dtos {
		b, err := dto.ToDomain()
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, nil
}

// FromDomainBooking конвертирует доменное бронирование в DTO
func FromDomainBooking(b domain.Booking) BookingDTO {
	dto := BookingDTO{
		ID:              b.ID,
		TherapistID:     b.TherapistID,
		StartTime:       b.Start.String(),
		EndTime:         b.End.String(),
		DurationMinutes: b.DurationMinutes,
		Service:         b.Service,
		Notes:           b.Notes,
		Status:          string(b.Status),
	}
	if !b.Date.IsZero() {
		dto.Date = b.Date.Format(domain.DateFormat)
	}
	return dto
}
