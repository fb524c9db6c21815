package propose_swaps

import (
	"github.com/m04kA/SMC-SlotOptimizer/internal/api/handlers"
	"github.com/m04kA/SMC-SlotOptimizer/internal/domain"
	"github.com/m04kA/SMC-SlotOptimizer/internal/slotengine"
	proposeSwaps "github.com/m04kA/SMC-SlotOptimizer/internal/usecase/propose_swaps"
	"github.com/m04kA/SMC-SlotOptimizer/pkg/types"
)

// ProposeSwapsRequest тело POST /swaps/proposals
type ProposeSwapsRequest struct {
	Duration      int                   `json:"duration"`
	MinGapMinutes int                   `json:"minGapMinutes,omitempty"`
	DayStart      string                `json:"dayStart,omitempty"`
	DayEnd        string                `json:"dayEnd,omitempty"`
	Bookings      []handlers.BookingDTO `json:"bookings"`
}

// ToUseCaseRequest конвертирует тело запроса в запрос use case
func (r *ProposeSwapsRequest) ToUseCaseRequest() (*proposeSwaps.Request, error) {
	bookings, err := handlers.ToDomainBookings(r.Bookings)
	if err != nil {
		return nil, err
	}

	return &proposeSwaps.Request{
		Bookings:        bookings,
		DurationMinutes: r.Duration,
		Params: slotengine.Params{
			MinGapMinutes: r.MinGapMinutes,
			DayStart:      types.TimeString(r.DayStart),
			DayEnd:        types.TimeString(r.DayEnd),
		},
	}, nil
}

// ProposeSwapsResponse HTTP response model
type ProposeSwapsResponse struct {
	Date            string     `json:"date,omitempty"`
	DurationMinutes int        `json:"durationMinutes"`
	Proposals       []Proposal `json:"proposals"`
	Stats           Stats      `json:"stats"`
}

// Proposal предложение обмена
type Proposal struct {
	Slot        string              `json:"slot"`
	TherapistID string              `json:"therapistId"`
	Kind        string              `json:"kind"`
	SwapOut     handlers.BookingDTO `json:"swapOut"`
	SwapIn      handlers.BookingDTO `json:"swapIn"`
}

// Stats счётчики рассмотренных пар
type Stats struct {
	Evaluated       int `json:"evaluated"`
	RejectedOverlap int `json:"rejectedOverlap"`
	Unchanged       int `json:"unchanged"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *proposeSwaps.Response) *ProposeSwapsResponse {
	proposals := make([]Proposal, len(resp.Proposals))
	for i, p := range resp.Proposals {
		proposals[i] = Proposal{
			Slot:        p.Slot,
			TherapistID: p.TherapistID,
			Kind:        string(p.Kind),
			SwapOut:     handlers.FromDomainBooking(p.SwapOut),
			SwapIn:      handlers.FromDomainBooking(p.SwapIn),
		}
	}

	out := &ProposeSwapsResponse{
		DurationMinutes: resp.DurationMinutes,
		Proposals:       proposals,
		Stats: Stats{
			Evaluated:       resp.Stats.Evaluated,
			RejectedOverlap: resp.Stats.RejectedOverlap,
			Unchanged:       resp.Stats.Unchanged,
		},
	}
	if !resp.Date.IsZero() {
		out.Date = resp.Date.Format(domain.DateFormat)
	}
	return out
}
