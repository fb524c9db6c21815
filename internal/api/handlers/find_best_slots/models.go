package find_best_slots

import (
	"time"

	"github.com/m04kA/SMC-SlotOptimizer/internal/api/handlers"
	"github.com/m04kA/SMC-SlotOptimizer/internal/domain"
	"github.com/m04kA/SMC-SlotOptimizer/internal/slotengine"
	findBestSlots "github.com/m04kA/SMC-SlotOptimizer/internal/usecase/find_best_slots"
	"github.com/m04kA/SMC-SlotOptimizer/pkg/types"
)

// FindBestSlotsRequest тело POST /slots/best
type FindBestSlotsRequest struct {
	Duration      int                   `json:"duration"`
	TherapistID   *string               `json:"therapistId,omitempty"`
	EditBookingID *string               `json:"editBookingId,omitempty"`
	MinGapMinutes int                   `json:"minGapMinutes,omitempty"`
	DayStart      string                `json:"dayStart,omitempty"`
	DayEnd        string                `json:"dayEnd,omitempty"`
	Bookings      []handlers.BookingDTO `json:"bookings"`
}

// FindBestSlotsResponse HTTP response model
type FindBestSlotsResponse struct {
	Date            string           `json:"date,omitempty"`
	DurationMinutes int              `json:"durationMinutes"`
	EditedBookingID string           `json:"editedBookingId,omitempty"`
	Therapists      []TherapistSlots `json:"therapists"`
}

// TherapistSlots слоты одного терапевта
type TherapistSlots struct {
	TherapistID string    `json:"therapistId"`
	BestSlots   BestSlots `json:"bestSlots"`
}

// BestSlots классификация слотов
type BestSlots struct {
	Strict     []string          `json:"strict"`
	Soft       []string          `json:"soft"`
	Bad        []string          `json:"bad"`
	BadReasons map[string]string `json:"badReasons"`
}

// queryParams общие параметры GET и POST запросов
type queryParams struct {
	duration      int
	therapistID   *string
	editBookingID *string
	params        slotengine.Params
}

func (q queryParams) target() domain.SlotRequest {
	if q.editBookingID != nil {
		return domain.EditBookingRequest{BookingID: *q.editBookingID, DurationMinutes: q.duration}
	}
	return domain.NewSlotRequest{DurationMinutes: q.duration, TherapistID: q.therapistID}
}

// ToUseCaseRequest конвертирует тело запроса в запрос use case
func (r *FindBestSlotsRequest) ToUseCaseRequest() (*findBestSlots.Request, error) {
	bookings, err := handlers.ToDomainBookings(r.Bookings)
	if err != nil {
		return nil, err
	}

	q := queryParams{
		duration:      r.Duration,
		therapistID:   r.TherapistID,
		editBookingID: r.EditBookingID,
		params: slotengine.Params{
			MinGapMinutes: r.MinGapMinutes,
			DayStart:      types.TimeString(r.DayStart),
			DayEnd:        types.TimeString(r.DayEnd),
		},
	}

	return &findBestSlots.Request{
		Bookings: bookings,
		Target:   q.target(),
		Params:   q.params,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *findBestSlots.Response) *FindBestSlotsResponse {
	therapists := make([]TherapistSlots, len(resp.Therapists))
	for i, t := range resp.Therapists {
		therapists[i] = TherapistSlots{
			TherapistID: t.TherapistID,
			BestSlots:   toBestSlots(t.Slots),
		}
	}

	return &FindBestSlotsResponse{
		Date:            formatDate(resp.Date),
		DurationMinutes: resp.DurationMinutes,
		EditedBookingID: resp.EditedBookingID,
		Therapists:      therapists,
	}
}

func toBestSlots(sc *slotengine.SlotClassification) BestSlots {
	best := BestSlots{
		Strict:     make([]string, 0),
		Soft:       make([]string, 0),
		Bad:        make([]string, 0),
		BadReasons: make(map[string]string),
	}
	if sc == nil {
		return best
	}
	best.Strict = append(best.Strict, sc.Strict...)
	best.Soft = append(best.Soft, sc.Soft...)
	best.Bad = append(best.Bad, sc.Bad...)
	for slot, reason := range sc.BadReasons {
		best.BadReasons[slot] = reason
	}
	return best
}

func formatDate(date time.Time) string {
	if date.IsZero() {
		return ""
	}
	return date.Format(domain.DateFormat)
}
