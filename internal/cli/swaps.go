package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-SlotOptimizer/internal/domain"
	"github.com/m04kA/SMC-SlotOptimizer/internal/slotengine"
	proposeSwaps "github.com/m04kA/SMC-SlotOptimizer/internal/usecase/propose_swaps"
	"github.com/m04kA/SMC-SlotOptimizer/pkg/metrics"
)

type swapsView struct {
	Date            string         `json:"date,omitempty" yaml:"date,omitempty"`
	DurationMinutes int            `json:"durationMinutes" yaml:"durationMinutes"`
	Proposals       []proposalView `json:"proposals" yaml:"proposals"`
	Stats           statsView      `json:"stats" yaml:"stats"`
}

type proposalView struct {
	Slot        string      `json:"slot" yaml:"slot"`
	TherapistID string      `json:"therapistId" yaml:"therapistId"`
	Kind        string      `json:"kind" yaml:"kind"`
	SwapOut     bookingView `json:"swapOut" yaml:"swapOut"`
	SwapIn      bookingView `json:"swapIn" yaml:"swapIn"`
}

type bookingView struct {
	ID          string `json:"id" yaml:"id"`
	TherapistID string `json:"therapistId" yaml:"therapistId"`
	Start       string `json:"start" yaml:"start"`
	End         string `json:"end,omitempty" yaml:"end,omitempty"`
}

type statsView struct {
	Evaluated       int `json:"evaluated" yaml:"evaluated"`
	RejectedOverlap int `json:"rejectedOverlap" yaml:"rejectedOverlap"`
	Unchanged       int `json:"unchanged" yaml:"unchanged"`
}

func newSwapsCommand(root *rootOptions) *cobra.Command {
	var (
		in       inputFlags
		duration int
	)

	cmd := &cobra.Command{
		Use:   "swaps",
		Short: "Propose cross-therapist booking swaps that open a slot",
		Example: `  slotctl swaps -f day.yaml --duration 90
  slotctl swaps -f day.json --date 2025-03-10 --duration 60 --workers 4 -o yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			loaded, err := in.load()
			if err != nil {
				return err
			}
			engine, err := in.engine()
			if err != nil {
				return err
			}
			log, closeLog, err := root.logger()
			if err != nil {
				return err
			}
			defer closeLog()

			var noMetrics *metrics.Metrics
			uc := proposeSwaps.NewUseCase(loaded.schedule, engine, slotengine.DefaultParams(), proposeSwaps.Limits{}, noMetrics, log)
			resp, err := uc.Execute(cmd.Context(), &proposeSwaps.Request{
				Date:            loaded.date,
				Bookings:        loaded.bookings,
				DurationMinutes: duration,
				Params:          in.params(),
			})
			if err != nil {
				return err
			}

			view := toSwapsView(resp)
			if in.output == formatText {
				return writeSwapsText(cmd.OutOrStdout(), view)
			}
			return writeStructured(cmd.OutOrStdout(), in.output, view)
		},
	}

	in.register(cmd)
	cmd.Flags().IntVarP(&duration, "duration", "d", 0, "Session length in minutes")

	return cmd
}

func toBookingView(b domain.Booking) bookingView {
	return bookingView{ID: b.ID, TherapistID: b.TherapistID, Start: b.Start.String(), End: b.End.String()}
}

func toSwapsView(resp *proposeSwaps.Response) swapsView {
	view := swapsView{
		DurationMinutes: resp.DurationMinutes,
		Proposals:       make([]proposalView, 0, len(resp.Proposals)),
		Stats: statsView{
			Evaluated:       resp.Stats.Evaluated,
			RejectedOverlap: resp.Stats.RejectedOverlap,
			Unchanged:       resp.Stats.Unchanged,
		},
	}
	if !resp.Date.IsZero() {
		view.Date = resp.Date.Format(domain.DateFormat)
	}

	for _, p := range resp.Proposals {
		view.Proposals = append(view.Proposals, proposalView{
			Slot:        p.Slot,
			TherapistID: p.TherapistID,
			Kind:        string(p.Kind),
			SwapOut:     toBookingView(p.SwapOut),
			SwapIn:      toBookingView(p.SwapIn),
		})
	}
	return view
}

func writeSwapsText(w io.Writer, view swapsView) error {
	header := fmt.Sprintf("Duration: %d min | pairs: %d evaluated, %d overlapping, %d unchanged",
		view.DurationMinutes, view.Stats.Evaluated, view.Stats.RejectedOverlap, view.Stats.Unchanged)
	if view.Date != "" {
		header = view.Date + " | " + header
	}
	if _, err := fmt.Fprintln(w, header); err != nil {
		return err
	}

	if len(view.Proposals) == 0 {
		_, err := fmt.Fprintln(w, "No swap opens a slot.")
		return err
	}

	for _, p := range view.Proposals {
		if _, err := fmt.Fprintf(w, "%s %s %-6s give %s (%s) to %s, take %s (%s)\n",
			p.TherapistID, p.Slot, p.Kind,
			p.SwapOut.ID, p.SwapOut.Start, p.SwapIn.TherapistID,
			p.SwapIn.ID, p.SwapIn.Start); err != nil {
			return err
		}
	}
	return nil
}
