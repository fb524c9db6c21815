package suggest_relocations

import (
	"time"

	"github.com/m04kA/SMC-SlotOptimizer/internal/domain"
	suggestRelocations "github.com/m04kA/SMC-SlotOptimizer/internal/usecase/suggest_relocations"
	"github.com/m04kA/SMC-SlotOptimizer/pkg/types"
)

// SuggestRelocationsRequest тело POST /days/{date}/relocations
type SuggestRelocationsRequest struct {
	Duration    int    `json:"duration"`
	WindowStart string `json:"windowStart,omitempty"`
	WindowEnd   string `json:"windowEnd,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP request в usecase request
func (r *SuggestRelocationsRequest) ToUseCaseRequest(date time.Time) *suggestRelocations.Request {
	return &suggestRelocations.Request{
		Date:            date,
		DurationMinutes: r.Duration,
		WindowStart:     types.TimeString(r.WindowStart),
		WindowEnd:       types.TimeString(r.WindowEnd),
	}
}

// SuggestRelocationsResponse HTTP response model
type SuggestRelocationsResponse struct {
	Date        string       `json:"date"`
	Gaps        []Gap        `json:"gaps"`
	Relocations []Relocation `json:"relocations"`
	TotalWeight float64      `json:"totalWeight"`
}

type Gap struct {
	TherapistID string `json:"therapistId"`
	Start       string `json:"start"`
	End         string `json:"end"`
}

type Relocation struct {
	BookingID       string `json:"bookingId"`
	FromTherapistID string `json:"fromTherapistId"`
	ToTherapistID   string `json:"toTherapistId"`
	Slot            string `json:"slot"`
}

// FromUseCaseResponse конвертирует usecase response в HTTP response
func FromUseCaseResponse(resp *suggestRelocations.Response) *SuggestRelocationsResponse {
	gaps := make([]Gap, len(resp.Gaps))
	for i, g := range resp.Gaps {
		gaps[i] = Gap{TherapistID: g.TherapistID, Start: g.Start.String(), End: g.End.String()}
	}

	relocations := make([]Relocation, len(resp.Relocations))
	for i, r := range resp.Relocations {
		relocations[i] = Relocation{
			BookingID:       r.BookingID,
			FromTherapistID: r.FromTherapistID,
			ToTherapistID:   r.ToTherapistID,
			Slot:            r.Slot.String(),
		}
	}

	return &SuggestRelocationsResponse{
		Date:        resp.Date.Format(domain.DateFormat),
		Gaps:        gaps,
		Relocations: relocations,
		TotalWeight: resp.TotalWeight,
	}
}
