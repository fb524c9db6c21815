package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/m04kA/SMC-SlotOptimizer/internal/domain"
	"github.com/m04kA/SMC-SlotOptimizer/internal/slotengine"
	"github.com/m04kA/SMC-SlotOptimizer/pkg/types"
)

type candidatesView struct {
	Date            string                   `json:"date,omitempty" yaml:"date,omitempty"`
	DurationMinutes int                      `json:"durationMinutes" yaml:"durationMinutes"`
	Therapists      []therapistCandidateView `json:"therapists" yaml:"therapists"`
}

type therapistCandidateView struct {
	TherapistID string          `json:"therapistId" yaml:"therapistId"`
	Candidates  []candidateView `json:"candidates" yaml:"candidates"`
}

type candidateView struct {
	Start     string `json:"start" yaml:"start"`
	End       string `json:"end" yaml:"end"`
	GapBefore int    `json:"gapBefore" yaml:"gapBefore"`
	GapAfter  int    `json:"gapAfter" yaml:"gapAfter"`
}

// listCandidates dumps the unclassified candidate grid of every therapist.
func listCandidates(ctx context.Context, loaded *input, engine *slotengine.Engine, params slotengine.Params, duration int, therapist string) (candidatesView, error) {
	schedule := domain.NewInlineSchedule(loaded.bookings)
	if loaded.bookings == nil {
		var err error
		schedule, err = loaded.schedule.GetDaySchedule(ctx, loaded.date)
		if err != nil {
			return candidatesView{}, err
		}
	}

	view := candidatesView{DurationMinutes: duration, Therapists: make([]therapistCandidateView, 0)}
	if !schedule.Date.IsZero() {
		view.Date = schedule.Date.Format(domain.DateFormat)
	}

	if therapist != "" && !schedule.HasTherapist(therapist) {
		return candidatesView{}, fmt.Errorf("therapist %s not found", therapist)
	}

	for _, id := range schedule.TherapistIDs() {
		if therapist != "" && id != therapist {
			continue
		}
		candidates, err := engine.Candidates(duration, schedule.ActiveBookingsOf(id, ""), params)
		if err != nil {
			return candidatesView{}, err
		}

		tv := therapistCandidateView{TherapistID: id, Candidates: make([]candidateView, 0, len(candidates))}
		for _, c := range candidates {
			tv.Candidates = append(tv.Candidates, candidateView{
				Start:     types.FromMinutes(c.SlotStart).String(),
				End:       types.FromMinutes(c.SlotEnd).String(),
				GapBefore: c.GapBefore(),
				GapAfter:  c.GapAfter(),
			})
		}
		view.Therapists = append(view.Therapists, tv)
	}
	return view, nil
}

func writeCandidatesText(w io.Writer, view candidatesView) error {
	header := fmt.Sprintf("Duration: %d min | candidates", view.DurationMinutes)
	if view.Date != "" {
		header = view.Date + " | " + header
	}
	if _, err := fmt.Fprintln(w, header); err != nil {
		return err
	}

	for _, t := range view.Therapists {
		if _, err := fmt.Fprintf(w, "\nTherapist %s\n", t.TherapistID); err != nil {
			return err
		}
		if len(t.Candidates) == 0 {
			if _, err := fmt.Fprintln(w, "  -"); err != nil {
				return err
			}
			continue
		}
		for _, c := range t.Candidates {
			if _, err := fmt.Fprintf(w, "  %s-%s  before %d  after %d\n", c.Start, c.End, c.GapBefore, c.GapAfter); err != nil {
				return err
			}
		}
	}
	return nil
}
